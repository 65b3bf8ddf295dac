// Package oauth is the boundary to the external identity provider. Callers
// only see the two protocol steps: building the redirect URL and exchanging
// the returned authorization code for a profile and access token.
package oauth

import (
	"context"
	"strings"

	"pixeltrack/internal/graph"

	"github.com/pkg/errors"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/facebook"
)

// Scopes needed to read the user's ad accounts and pixels.
var Scopes = []string{"email", "public_profile", "ads_management", "business_management"}

type Profile struct {
	ExternalID  string
	DisplayName string
	Email       string
}

type Provider interface {
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (Profile, string, error)
}

// ProfileFetcher loads the profile for an access token.
type ProfileFetcher interface {
	Me(ctx context.Context, token string) (graph.Profile, error)
}

type Facebook struct {
	config  *oauth2.Config
	profile ProfileFetcher
}

func NewFacebook(clientID string, clientSecret string, redirectURL string, profile ProfileFetcher) *Facebook {
	return &Facebook{
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Endpoint:     facebook.Endpoint,
			Scopes:       Scopes,
		},
		profile: profile,
	}
}

func (f *Facebook) AuthCodeURL(state string) string {
	return f.config.AuthCodeURL(state)
}

func (f *Facebook) Exchange(ctx context.Context, code string) (Profile, string, error) {
	tok, err := f.config.Exchange(ctx, code)
	if err != nil {
		return Profile{}, "", errors.Wrap(err, "oauth: exchange code")
	}

	me, err := f.profile.Me(ctx, tok.AccessToken)
	if err != nil {
		return Profile{}, "", errors.Wrap(err, "oauth: fetch profile")
	}

	return Profile{
		ExternalID:  strings.TrimSpace(me.ID),
		DisplayName: strings.TrimSpace(me.Name),
		Email:       strings.TrimSpace(me.Email),
	}, tok.AccessToken, nil
}
