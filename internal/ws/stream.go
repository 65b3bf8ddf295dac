package ws

import (
	"context"
	"errors"
	"sync"

	"github.com/fasthttp/websocket"
	"github.com/gofiber/fiber/v3"
	"github.com/valyala/fasthttp"
)

var errClientClosed = errors.New("websocket closed by client")

// EventWriter sends encoded events over one WebSocket connection.
type EventWriter struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (w *EventWriter) Send(event []byte) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := WriteEvent(w.conn, event); err != nil {
		return errClientClosed
	}
	return nil
}

func (w *EventWriter) WriteStatus(level, message string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	_ = WriteStatus(w.conn, level, message)
}

// StreamWebSocket upgrades to WebSocket and runs streamer until it returns
// or the client goes away.
func StreamWebSocket(c fiber.Ctx, streamer func(ctx context.Context, writer *EventWriter) error) error {
	type requestCtxProvider interface {
		RequestCtx() *fasthttp.RequestCtx
	}

	provider, ok := any(c).(requestCtxProvider)
	if !ok {
		return fiber.ErrInternalServerError
	}

	return Upgrader.Upgrade(provider.RequestCtx(), func(conn *websocket.Conn) {
		defer conn.Close()

		closed := make(chan struct{})
		var once sync.Once
		go func() {
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					once.Do(func() { close(closed) })
					return
				}
			}
		}()

		writer := &EventWriter{conn: conn}

		streamCtx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go func() {
			select {
			case <-closed:
				cancel()
			case <-streamCtx.Done():
			}
		}()

		writer.WriteStatus("info", "event stream started")

		err := streamer(streamCtx, writer)
		if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, errClientClosed) {
			writer.WriteStatus("error", "event stream failed")
		}

		writer.WriteStatus("info", "event stream ended")
	})
}
