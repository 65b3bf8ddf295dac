package graph

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, "v21.0", "", 2*time.Second)
}

func TestAdAccountsFollowsCursor(t *testing.T) {
	var calls int
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		require.Equal(t, "/v21.0/me/adaccounts", r.URL.Path)
		require.Equal(t, "tok", r.URL.Query().Get("access_token"))

		if r.URL.Query().Get("after") == "" {
			_, _ = io.WriteString(w, `{"data":[{"id":"act_1"}],"paging":{"cursors":{"after":"c1"},"next":"https://x/next"}}`)
			return
		}
		require.Equal(t, "c1", r.URL.Query().Get("after"))
		_, _ = io.WriteString(w, `{"data":[{"id":"act_2"}],"paging":{"cursors":{"after":"c2"}}}`)
	})

	accounts, err := c.AdAccounts(context.Background(), "tok")
	require.NoError(t, err)
	require.Equal(t, 2, calls)
	require.Equal(t, []AdAccount{{ID: "act_1"}, {ID: "act_2"}}, accounts)
}

func TestOwnedPixelsPrefixesAccount(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v21.0/act_42/owned_pixels", r.URL.Path)
		_, _ = io.WriteString(w, `{"data":[{"id":"p1","name":"Main"}]}`)
	})

	pixels, err := c.OwnedPixels(context.Background(), "tok", "42")
	require.NoError(t, err)
	require.Equal(t, []Pixel{{ID: "p1", Name: "Main"}}, pixels)
}

func TestSendEventsPostsDataEnvelope(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v21.0/px1/events", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body struct {
			Data          []map[string]any `json:"data"`
			TestEventCode string           `json:"test_event_code"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Len(t, body.Data, 1)
		require.Equal(t, "Lead", body.Data[0]["event_name"])
		require.Equal(t, "evt-1", body.Data[0]["event_id"])
		require.Equal(t, "TEST123", body.TestEventCode)

		_, _ = io.WriteString(w, `{"events_received":1,"messages":[],"fbtrace_id":"trace-1"}`)
	})
	c.TestEventCode = "TEST123"

	res, err := c.SendEvents(context.Background(), "tok", "px1", []ServerEvent{{
		EventName:    "Lead",
		EventTime:    1700000000,
		ActionSource: ActionSourceWebsite,
		EventID:      "evt-1",
	}})
	require.NoError(t, err)
	require.Equal(t, 1, res.EventsReceived)
	require.Equal(t, "trace-1", res.FBTraceID)
}

func TestAppSecretProofIsSent(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Len(t, r.URL.Query().Get("appsecret_proof"), 64)
		_, _ = io.WriteString(w, `{"id":"1","name":"Ana"}`)
	})
	c.AppSecret = "secret"

	p, err := c.Me(context.Background(), "tok")
	require.NoError(t, err)
	require.Equal(t, "Ana", p.Name)
}

func TestErrorClassification(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("access_token") {
		case "expired":
			w.WriteHeader(http.StatusBadRequest)
			_, _ = io.WriteString(w, `{"error":{"message":"Session has expired","type":"OAuthException","code":190}}`)
		case "noperm":
			w.WriteHeader(http.StatusForbidden)
			_, _ = io.WriteString(w, `{"error":{"message":"(#200) Missing permissions","type":"OAuthException","code":200}}`)
		default:
			w.WriteHeader(http.StatusBadGateway)
			_, _ = io.WriteString(w, `upstream down`)
		}
	})

	_, err := c.AdAccounts(context.Background(), "expired")
	require.True(t, IsTokenError(err))
	require.False(t, IsPermissionError(err))

	_, err = c.AdAccounts(context.Background(), "noperm")
	require.True(t, IsPermissionError(err))
	require.False(t, IsTokenError(err))

	_, err = c.AdAccounts(context.Background(), "other")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusBadGateway, apiErr.Status)
	require.Equal(t, "upstream down", apiErr.Message)
}

func TestTimeoutIsAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	t.Cleanup(srv.Close)

	c := NewClient(srv.URL, "v21.0", "", 20*time.Millisecond)
	_, err := c.SendEvents(context.Background(), "secret-token", "px", []ServerEvent{{EventName: "Lead", EventID: "e"}})
	require.Error(t, err)
	require.NotContains(t, err.Error(), "secret-token")
}
