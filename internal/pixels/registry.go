// Package pixels lists the conversion pixels a user can reach through their
// ad accounts and stores the one they pick.
package pixels

import (
	"context"
	"strings"

	"pixeltrack/internal/audit"
	"pixeltrack/internal/errmsg"
	"pixeltrack/internal/graph"
	"pixeltrack/internal/metrics"
	"pixeltrack/internal/models"
	"pixeltrack/internal/store"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Graph is the part of the ad platform client the registry needs.
type Graph interface {
	AdAccounts(ctx context.Context, token string) ([]graph.AdAccount, error)
	OwnedPixels(ctx context.Context, token string, accountID string) ([]graph.Pixel, error)
}

type Registry struct {
	graph Graph
	users store.UserStore
}

func NewRegistry(g Graph, users store.UserStore) *Registry {
	return &Registry{graph: g, users: users}
}

// ListAvailable flattens the owned pixels of every ad account of user, in
// account order. An account whose pixel query fails contributes nothing.
func (r *Registry) ListAvailable(ctx context.Context, user *models.User) ([]models.Pixel, error) {
	if !user.HasAccessToken() {
		metrics.PixelLookups.WithLabelValues(metrics.ResultNoToken).Inc()
		return nil, errmsg.PixelMissingToken
	}

	accounts, err := r.graph.AdAccounts(ctx, user.AccessToken)
	if err != nil {
		return nil, classify(user, err)
	}

	out := []models.Pixel{}
	for _, account := range accounts {
		accountID := account.ID
		if accountID == "" {
			accountID = account.AccountID
		}

		pixels, err := r.graph.OwnedPixels(ctx, user.AccessToken, accountID)
		if err != nil {
			log.WithError(err).
				WithField("user", user.ID.Hex()).
				WithField("account", accountID).
				Warn("skipping ad account, pixel lookup failed")
			continue
		}

		for _, p := range pixels {
			out = append(out, models.Pixel{ID: p.ID, Name: p.Name})
		}
	}

	if len(out) == 0 {
		metrics.PixelLookups.WithLabelValues(metrics.ResultEmpty).Inc()
		return nil, errmsg.PixelNoneFound
	}

	metrics.PixelLookups.WithLabelValues(metrics.ResultOK).Inc()
	return out, nil
}

func classify(user *models.User, err error) error {
	switch {
	case graph.IsPermissionError(err):
		metrics.PixelLookups.WithLabelValues(metrics.ResultPermission).Inc()
		return errmsg.PixelMissingPermissions
	case graph.IsTokenError(err):
		metrics.PixelLookups.WithLabelValues(metrics.ResultTokenError).Inc()
		return errmsg.PixelInvalidToken
	}

	metrics.PixelLookups.WithLabelValues(metrics.ResultLookupError).Inc()
	log.WithError(err).WithField("user", user.ID.Hex()).Error("ad account lookup failed")
	return errmsg.PixelLookupFailed
}

// Select makes pixelID the active pixel of user and returns the stored record.
func (r *Registry) Select(ctx context.Context, user *models.User, pixelID string) (*models.User, error) {
	pixelID = strings.TrimSpace(pixelID)
	if pixelID == "" {
		return nil, errmsg.PixelIDRequired
	}

	updated, err := r.users.SetSelectedPixel(ctx, user.ID, pixelID)
	if err != nil {
		return nil, errors.Wrap(err, "pixels: select")
	}

	if audit.Em != nil {
		audit.Em.PixelSelected(updated.ID.Hex(), pixelID)
	}

	return updated, nil
}
