package internal

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"pixeltrack/internal/auth"
	"pixeltrack/internal/crm"
	"pixeltrack/internal/errmsg"
	"pixeltrack/internal/graph"
	"pixeltrack/internal/models"
	"pixeltrack/internal/oauth"
	"pixeltrack/internal/session"
	"pixeltrack/internal/testutil"
	"pixeltrack/internal/tracking"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type fakeProvider struct{}

func (fakeProvider) AuthCodeURL(state string) string {
	return "https://idp.test/dialog/oauth?state=" + url.QueryEscape(state)
}

func (fakeProvider) Exchange(ctx context.Context, code string) (oauth.Profile, string, error) {
	return oauth.Profile{ExternalID: "1001", DisplayName: "Ana Pop", Email: "ana@example.com"}, "fb-token-" + code, nil
}

// platform fakes the Graph API: one ad account owning one pixel, and a
// conversions endpoint that records what it receives.
type platform struct {
	mu       sync.Mutex
	received []map[string]any
}

func (p *platform) handler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/v21.0/me/adaccounts":
			_, _ = io.WriteString(w, `{"data":[{"id":"act_1","account_id":"1"}]}`)
		case "/v21.0/act_1/owned_pixels":
			_, _ = io.WriteString(w, `{"data":[{"id":"px-1","name":"Main pixel"}]}`)
		case "/v21.0/px-1/events":
			var body struct {
				Data []map[string]any `json:"data"`
			}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			p.mu.Lock()
			p.received = append(p.received, body.Data...)
			p.mu.Unlock()
			_, _ = io.WriteString(w, `{"events_received":1,"fbtrace_id":"trace-1"}`)
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `{"error":{"message":"unknown path","code":100}}`)
		}
	}
}

type harness struct {
	app      *fiber.App
	users    *testutil.MemUsers
	events   *testutil.MemEvents
	platform *platform
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	p := &platform{}
	srv := httptest.NewServer(p.handler(t))
	t.Cleanup(srv.Close)
	gc := graph.NewClient(srv.URL, "v21.0", "", 2*time.Second)

	h := &harness{
		users:    testutil.NewMemUsers(),
		events:   testutil.NewMemEvents(),
		platform: p,
	}

	h.app = NewApp(Deps{
		Users:      h.users,
		Events:     h.events,
		Redis:      rdb,
		Provider:   fakeProvider{},
		PixelGraph: gc,
		Sender:     gc,
		Forwarder:  crm.NewLogForwarder(),
		LeadRules:  tracking.DefaultLeadRules(),
		Auth: auth.Config{
			SuccessURL: "http://dashboard.test/dashboard",
			FailureURL: "/",
		},
		SessionSecret: []byte("test-secret"),
		SessionTTL:    time.Hour,
		GraphTimeout:  2 * time.Second,
	})

	return h
}

func (h *harness) login(t *testing.T, code string) *http.Cookie {
	t.Helper()

	_, res := testutil.RequestRunner(t, h.app, testutil.Request{Method: http.MethodGet, Path: "/auth/login"})
	require.Equal(t, http.StatusFound, res.StatusCode)

	location, err := url.Parse(res.Header.Get("Location"))
	require.NoError(t, err)
	state := location.Query().Get("state")
	require.NotEmpty(t, state)

	_, res = testutil.RequestRunner(t, h.app, testutil.Request{
		Method: http.MethodGet,
		Path:   "/auth/callback?code=" + code + "&state=" + url.QueryEscape(state),
	})
	require.Equal(t, http.StatusFound, res.StatusCode)
	require.Equal(t, "http://dashboard.test/dashboard", res.Header.Get("Location"))

	for _, c := range res.Cookies() {
		if c.Name == session.CookieName && c.Value != "" {
			require.True(t, c.HttpOnly)
			return c
		}
	}
	t.Fatal("session cookie not set")
	return nil
}

func TestMetaRoutes(t *testing.T) {
	h := newHarness(t)

	body, res := testutil.RequestRunner(t, h.app, testutil.Request{Method: http.MethodGet, Path: "/ping"})
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Equal(t, "PONG", string(body))

	_, res = testutil.RequestRunner(t, h.app, testutil.Request{Method: http.MethodGet, Path: "/metrics"})
	require.Equal(t, http.StatusOK, res.StatusCode)
}

func TestProtectedRoutesRequireSession(t *testing.T) {
	h := newHarness(t)

	for _, r := range []testutil.Request{
		{Method: http.MethodGet, Path: "/user"},
		{Method: http.MethodGet, Path: "/user/pixels"},
		{Method: http.MethodPost, Path: "/user/pixel", Body: []byte(`{"pixelId":"px-1"}`)},
		{Method: http.MethodPost, Path: "/events", Body: []byte(`{"eventName":"Lead","eventId":"e"}`)},
		{Method: http.MethodGet, Path: "/events"},
		{Method: http.MethodPost, Path: "/events/crm", Body: []byte(`{"name":"a","contact":"b"}`)},
		{Method: http.MethodGet, Path: "/auth/token"},
	} {
		body, res := testutil.RequestRunner(t, h.app, r)
		testutil.ResponseErrorCheck(t, errmsg.Unauthenticated, body, res.StatusCode)
	}

	require.Empty(t, h.events.All())
}

func TestCallbackRejectsUnknownState(t *testing.T) {
	h := newHarness(t)

	_, res := testutil.RequestRunner(t, h.app, testutil.Request{
		Method: http.MethodGet,
		Path:   "/auth/callback?code=abc&state=forged",
	})
	require.Equal(t, http.StatusFound, res.StatusCode)
	require.Equal(t, "/", res.Header.Get("Location"))
	require.Empty(t, res.Cookies())
	require.Zero(t, h.users.Count())
}

func TestRelayFlow(t *testing.T) {
	h := newHarness(t)
	cookie := h.login(t, "abc")
	cookies := []*http.Cookie{cookie}

	body, res := testutil.RequestRunner(t, h.app, testutil.Request{Method: http.MethodGet, Path: "/user", Cookies: cookies})
	require.Equal(t, http.StatusOK, res.StatusCode)
	var user map[string]any
	require.NoError(t, json.Unmarshal(body, &user))
	require.Equal(t, "1001", user["externalId"])
	require.NotContains(t, string(body), "fb-token")

	body, res = testutil.RequestRunner(t, h.app, testutil.Request{Method: http.MethodGet, Path: "/auth/token", Cookies: cookies})
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.JSONEq(t, `{"message":"token is valid","hasToken":true,"userId":"1001"}`, string(body))

	event := testutil.MustJSON(t, map[string]any{
		"eventName":      "Lead",
		"eventId":        "evt-1",
		"eventTime":      "2026-05-04T10:30:15Z",
		"eventSourceUrl": "https://shop.example/?utm_source=newsletter",
	})

	body, res = testutil.RequestRunner(t, h.app, testutil.Request{Method: http.MethodPost, Path: "/events", Body: event, Cookies: cookies})
	testutil.ResponseErrorCheck(t, errmsg.EventNoPixelSelected, body, res.StatusCode)
	require.Empty(t, h.events.All())

	body, res = testutil.RequestRunner(t, h.app, testutil.Request{Method: http.MethodGet, Path: "/user/pixels", Cookies: cookies})
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.JSONEq(t, `[{"id":"px-1","name":"Main pixel"}]`, string(body))

	_, res = testutil.RequestRunner(t, h.app, testutil.Request{
		Method:  http.MethodPost,
		Path:    "/user/pixel",
		Body:    []byte(`{"pixelId":"px-1"}`),
		Cookies: cookies,
	})
	require.Equal(t, http.StatusOK, res.StatusCode)

	body, res = testutil.RequestRunner(t, h.app, testutil.Request{Method: http.MethodPost, Path: "/events", Body: event, Cookies: cookies})
	require.Equal(t, http.StatusCreated, res.StatusCode)
	var recorded models.Event
	require.NoError(t, json.Unmarshal(body, &recorded))
	require.Equal(t, "px-1", recorded.PixelID)
	require.Equal(t, "newsletter", recorded.LeadSource)

	require.Len(t, h.platform.received, 1)
	sent := h.platform.received[0]
	require.Equal(t, "evt-1", sent["event_id"])
	require.Equal(t, "website", sent["action_source"])
	require.EqualValues(t, 1777890615, sent["event_time"])

	body, res = testutil.RequestRunner(t, h.app, testutil.Request{Method: http.MethodPost, Path: "/events", Body: event, Cookies: cookies})
	testutil.ResponseErrorCheck(t, errmsg.EventDuplicate, body, res.StatusCode)
	require.Len(t, h.platform.received, 1)

	body, res = testutil.RequestRunner(t, h.app, testutil.Request{Method: http.MethodGet, Path: "/events", Cookies: cookies})
	require.Equal(t, http.StatusOK, res.StatusCode)
	var listed []models.Event
	require.NoError(t, json.Unmarshal(body, &listed))
	require.Len(t, listed, 1)
	require.Equal(t, models.DeliveryDelivered, listed[0].Delivery.Status)

	body, res = testutil.RequestRunner(t, h.app, testutil.Request{
		Method:  http.MethodPost,
		Path:    "/events/crm",
		Body:    []byte(`{"name":"Ion","contact":"ion@example.com","source":"newsletter","event_name":"Lead"}`),
		Cookies: cookies,
	})
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Contains(t, string(body), "lead data sent to CRM")

	_, res = testutil.RequestRunner(t, h.app, testutil.Request{Method: http.MethodGet, Path: "/auth/logout", Cookies: cookies})
	require.Equal(t, http.StatusFound, res.StatusCode)

	body, res = testutil.RequestRunner(t, h.app, testutil.Request{Method: http.MethodGet, Path: "/user", Cookies: cookies})
	testutil.ResponseErrorCheck(t, errmsg.Unauthenticated, body, res.StatusCode)
}

func TestSecondLoginRefreshesToken(t *testing.T) {
	h := newHarness(t)

	h.login(t, "first")
	h.login(t, "second")

	require.Equal(t, 1, h.users.Count())
	u, err := h.users.FindByExternalID(context.Background(), "1001")
	require.NoError(t, err)
	require.Equal(t, "fb-token-second", u.AccessToken)
}

func TestEnsureIndexesReportsUnreachableDatabase(t *testing.T) {
	client, err := mongo.Connect(context.Background(), options.Client().
		ApplyURI("mongodb://127.0.0.1:1").
		SetServerSelectionTimeout(200*time.Millisecond))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Disconnect(context.Background()) })

	err = ensureIndexes(context.Background(), client.Database("pixeltrack_test"), 2*time.Second)
	require.Error(t, err)
}
