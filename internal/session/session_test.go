package session

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"pixeltrack/internal/errmsg"
	"pixeltrack/internal/models"
	"pixeltrack/internal/testutil"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/require"
)

func newManager(t *testing.T) (*Manager, *miniredis.Miniredis, *testutil.MemUsers) {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	users := testutil.NewMemUsers()
	return NewManager(rdb, users, []byte("test-secret"), time.Hour), mr, users
}

func seedUser(t *testing.T, users *testutil.MemUsers) *models.User {
	t.Helper()
	u := &models.User{ExternalID: "fb-1", DisplayName: "Ana", AccessToken: "tok"}
	require.NoError(t, users.Create(context.Background(), u))
	return u
}

func TestCreateResolveDestroy(t *testing.T) {
	m, mr, users := newManager(t)
	ctx := context.Background()
	u := seedUser(t, users)

	token, err := m.Create(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, mr.Keys(), 1)

	got, err := m.Resolve(ctx, token)
	require.NoError(t, err)
	require.Equal(t, u.ID, got.ID)

	require.NoError(t, m.Destroy(ctx, token))
	_, err = m.Resolve(ctx, token)
	require.ErrorIs(t, err, ErrInvalidSession)
}

func TestResolveRejectsForeignSignature(t *testing.T) {
	m, _, users := newManager(t)
	ctx := context.Background()
	u := seedUser(t, users)

	other := NewManager(m.rdb, users, []byte("other-secret"), time.Hour)
	token, err := other.Create(ctx, u.ID)
	require.NoError(t, err)

	_, err = m.Resolve(ctx, token)
	require.ErrorIs(t, err, ErrInvalidSession)

	_, err = m.Resolve(ctx, "not-a-token")
	require.ErrorIs(t, err, ErrInvalidSession)
}

func TestSessionExpiresWithTTL(t *testing.T) {
	m, mr, users := newManager(t)
	ctx := context.Background()
	u := seedUser(t, users)

	token, err := m.Create(ctx, u.ID)
	require.NoError(t, err)

	mr.FastForward(2 * time.Hour)

	_, err = m.Resolve(ctx, token)
	require.ErrorIs(t, err, ErrInvalidSession)
}

func TestStateIsSingleUse(t *testing.T) {
	m, _, _ := newManager(t)
	ctx := context.Background()

	state, err := m.NewState(ctx)
	require.NoError(t, err)

	ok, err := m.ConsumeState(ctx, state)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = m.ConsumeState(ctx, state)
	require.NoError(t, err)
	require.False(t, ok)

	ok, err = m.ConsumeState(ctx, "never-issued")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestRequireUser(t *testing.T) {
	m, _, users := newManager(t)
	u := seedUser(t, users)

	token, err := m.Create(context.Background(), u.ID)
	require.NoError(t, err)

	app := fiber.New()
	app.Get("/me", m.RequireUser(), func(c fiber.Ctx) error {
		user, ok := CurrentUser(c)
		require.True(t, ok)
		return c.JSON(user)
	})

	t.Run("no token", func(t *testing.T) {
		body, res := testutil.RequestRunner(t, app, testutil.Request{Method: http.MethodGet, Path: "/me"})
		testutil.ResponseErrorCheck(t, errmsg.Unauthenticated, body, res.StatusCode)
	})

	t.Run("bearer token", func(t *testing.T) {
		body, res := testutil.RequestRunner(t, app, testutil.Request{Method: http.MethodGet, Path: "/me", Token: &token})
		require.Equal(t, http.StatusOK, res.StatusCode)

		var got map[string]any
		require.NoError(t, json.Unmarshal(body, &got))
		require.Equal(t, u.ID.Hex(), got["id"])
		_, leaked := got["accessToken"]
		require.False(t, leaked)
	})

	t.Run("cookie", func(t *testing.T) {
		_, res := testutil.RequestRunner(t, app, testutil.Request{
			Method:  http.MethodGet,
			Path:    "/me",
			Cookies: []*http.Cookie{{Name: CookieName, Value: token}},
		})
		require.Equal(t, http.StatusOK, res.StatusCode)
	})

	t.Run("revoked session", func(t *testing.T) {
		require.NoError(t, m.Destroy(context.Background(), token))
		body, res := testutil.RequestRunner(t, app, testutil.Request{Method: http.MethodGet, Path: "/me", Token: &token})
		testutil.ResponseErrorCheck(t, errmsg.Unauthenticated, body, res.StatusCode)
	})
}
