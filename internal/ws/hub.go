package ws

import (
	"context"
	"encoding/json"

	"pixeltrack/internal/models"

	"github.com/go-redis/redis/v8"
	"github.com/pkg/errors"
)

type Hub struct {
	rdb *redis.Client
}

func NewHub(rdb *redis.Client) *Hub {
	return &Hub{rdb: rdb}
}

func Channel(userID string) string {
	return "events:" + userID
}

// Publish announces a recorded event on the owner's channel.
func (h *Hub) Publish(ctx context.Context, userID string, evt models.Event) error {
	payload, err := json.Marshal(evt)
	if err != nil {
		return errors.Wrap(err, "ws: encode event")
	}
	return errors.Wrap(h.rdb.Publish(ctx, Channel(userID), payload).Err(), "ws: publish")
}

// Subscribe calls fn with every event published for userID until ctx ends
// or fn fails.
func (h *Hub) Subscribe(ctx context.Context, userID string, fn func(event []byte) error) error {
	sub := h.rdb.Subscribe(ctx, Channel(userID))
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		return errors.Wrap(err, "ws: subscribe")
	}

	messages := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-messages:
			if !ok {
				return nil
			}
			if err := fn([]byte(msg.Payload)); err != nil {
				return err
			}
		}
	}
}
