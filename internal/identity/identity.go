// Package identity maps identity-provider profiles onto local users.
package identity

import (
	"context"
	"strings"
	"time"

	"pixeltrack/internal/audit"
	"pixeltrack/internal/errmsg"
	"pixeltrack/internal/models"
	"pixeltrack/internal/oauth"
	"pixeltrack/internal/store"

	"github.com/pkg/errors"
)

type Resolver struct {
	users store.UserStore
	now   func() time.Time
}

func NewResolver(users store.UserStore) *Resolver {
	return &Resolver{
		users: users,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// ResolveOrCreate returns the user for profile, creating it on first login.
// The access token always replaces the stored one.
func (r *Resolver) ResolveOrCreate(ctx context.Context, profile oauth.Profile, accessToken string) (*models.User, error) {
	externalID := strings.TrimSpace(profile.ExternalID)
	if externalID == "" || strings.TrimSpace(accessToken) == "" {
		return nil, errmsg.IdentityProfileInvalid
	}

	existing, err := r.users.FindByExternalID(ctx, externalID)
	if err == nil {
		return r.refresh(ctx, existing, accessToken)
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	user := &models.User{
		ExternalID:  externalID,
		DisplayName: strings.TrimSpace(profile.DisplayName),
		Email:       strings.TrimSpace(profile.Email),
		AccessToken: accessToken,
		CreatedAt:   r.now(),
	}

	err = r.users.Create(ctx, user)
	if errors.Is(err, store.ErrDuplicate) {
		// lost a race against a concurrent first login
		existing, err = r.users.FindByExternalID(ctx, externalID)
		if err != nil {
			return nil, errors.Wrap(err, "identity: reload after duplicate")
		}
		return r.refresh(ctx, existing, accessToken)
	}
	if err != nil {
		return nil, err
	}

	if audit.Em != nil {
		audit.Em.UserCreated(user.ID.Hex(), externalID)
		audit.Em.UserLogin(user.ID.Hex())
	}

	return user, nil
}

func (r *Resolver) refresh(ctx context.Context, user *models.User, accessToken string) (*models.User, error) {
	updated, err := r.users.UpdateAccessToken(ctx, user.ID, accessToken)
	if err != nil {
		return nil, errors.Wrap(err, "identity: update access token")
	}

	if audit.Em != nil {
		audit.Em.UserLogin(updated.ID.Hex())
	}

	return updated, nil
}
