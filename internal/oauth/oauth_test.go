package oauth

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"pixeltrack/internal/graph"

	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

type stubProfile struct {
	gotToken string
	profile  graph.Profile
}

func (s *stubProfile) Me(ctx context.Context, token string) (graph.Profile, error) {
	s.gotToken = token
	return s.profile, nil
}

func TestAuthCodeURLCarriesStateAndScopes(t *testing.T) {
	fb := NewFacebook("app-id", "secret", "http://localhost/auth/callback", &stubProfile{})

	raw := fb.AuthCodeURL("state-123")
	u, err := url.Parse(raw)
	require.NoError(t, err)

	q := u.Query()
	require.Equal(t, "state-123", q.Get("state"))
	require.Equal(t, "app-id", q.Get("client_id"))
	require.Equal(t, "http://localhost/auth/callback", q.Get("redirect_uri"))
	require.Equal(t, "email public_profile ads_management business_management", q.Get("scope"))
}

func TestExchangeResolvesProfile(t *testing.T) {
	tokenSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		require.Equal(t, "the-code", r.Form.Get("code"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"access_token":"fb-token","token_type":"bearer","expires_in":3600}`)
	}))
	t.Cleanup(tokenSrv.Close)

	profile := &stubProfile{profile: graph.Profile{ID: " 1001 ", Name: "Ana Pop", Email: "ana@example.com"}}
	fb := NewFacebook("app-id", "secret", "http://localhost/auth/callback", profile)
	fb.config.Endpoint = oauth2.Endpoint{
		AuthURL:  tokenSrv.URL + "/dialog/oauth",
		TokenURL: tokenSrv.URL + "/oauth/access_token",
	}

	p, token, err := fb.Exchange(context.Background(), "the-code")
	require.NoError(t, err)
	require.Equal(t, "fb-token", token)
	require.Equal(t, "fb-token", profile.gotToken)
	require.Equal(t, Profile{ExternalID: "1001", DisplayName: "Ana Pop", Email: "ana@example.com"}, p)
}
