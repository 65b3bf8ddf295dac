// Package ws relays a user's recorded events to the dashboard over a
// WebSocket. Events travel through Redis pub/sub so any instance can serve
// the socket.
package ws

import (
	"encoding/json"
	"strings"

	"pixeltrack/internal/env"

	githubws "github.com/fasthttp/websocket"
	"github.com/valyala/fasthttp"
)

// Upgrader upgrades HTTP connections to WebSocket connections.
var Upgrader = githubws.FastHTTPUpgrader{
	CheckOrigin: func(ctx *fasthttp.RequestCtx) bool {
		allowed := strings.TrimSpace(env.CORS_ORIGIN)
		if allowed == "" {
			return true
		}

		origin := string(ctx.Request.Header.Peek("Origin"))
		return origin == "" || origin == allowed
	},
}

// WriteStatus sends a status message to the websocket client.
func WriteStatus(conn *githubws.Conn, status string, message string) error {
	payload, err := json.Marshal(map[string]string{
		"type":    status,
		"message": message,
	})
	if err != nil {
		return err
	}
	return conn.WriteMessage(githubws.TextMessage, payload)
}

// WriteEvent wraps an already encoded event and sends it to the client.
func WriteEvent(conn *githubws.Conn, event []byte) error {
	payload, err := json.Marshal(map[string]any{
		"type":  "event",
		"event": json.RawMessage(event),
	})
	if err != nil {
		return err
	}
	return conn.WriteMessage(githubws.TextMessage, payload)
}
