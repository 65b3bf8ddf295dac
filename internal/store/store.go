// Package store persists users and tracked events in MongoDB.
package store

import "github.com/pkg/errors"

var (
	ErrNotFound  = errors.New("store: not found")
	ErrDuplicate = errors.New("store: duplicate key")
)
