package graph

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/pkg/errors"
)

const ActionSourceWebsite = "website"

// ServerEvent is one entry of the conversions endpoint "data" array.
type ServerEvent struct {
	EventName      string         `json:"event_name"`
	EventTime      int64          `json:"event_time"`
	ActionSource   string         `json:"action_source"`
	EventSourceURL string         `json:"event_source_url,omitempty"`
	EventID        string         `json:"event_id"`
	UserData       UserData       `json:"user_data"`
	CustomData     map[string]any `json:"custom_data,omitempty"`
}

// UserData carries the matching signals. Email holds lowercase hex SHA-256
// digests only.
type UserData struct {
	ClientIPAddress string   `json:"client_ip_address,omitempty"`
	ClientUserAgent string   `json:"client_user_agent,omitempty"`
	FBC             string   `json:"fbc,omitempty"`
	FBP             string   `json:"fbp,omitempty"`
	Email           []string `json:"em,omitempty"`
}

type eventsRequest struct {
	Data          []ServerEvent `json:"data"`
	TestEventCode string        `json:"test_event_code,omitempty"`
}

type EventsResponse struct {
	EventsReceived int      `json:"events_received"`
	Messages       []string `json:"messages"`
	FBTraceID      string   `json:"fbtrace_id"`
}

// SendEvents posts events to the conversions endpoint of pixelID.
func (c *Client) SendEvents(ctx context.Context, token string, pixelID string, events []ServerEvent) (*EventsResponse, error) {
	pixelID = strings.TrimSpace(pixelID)
	if pixelID == "" {
		return nil, errors.New("graph: empty pixel id")
	}
	if len(events) == 0 {
		return nil, errors.New("graph: no events to send")
	}

	body := eventsRequest{
		Data:          events,
		TestEventCode: c.TestEventCode,
	}

	var res EventsResponse
	p := params{
		AccessToken:    token,
		AppSecretProof: c.proof(token),
	}
	if err := c.do(ctx, http.MethodPost, "/"+url.PathEscape(pixelID)+"/events", p, body, &res); err != nil {
		return nil, err
	}

	return &res, nil
}
