// Package testutil holds in-memory stores and HTTP helpers shared by tests.
package testutil

import (
	"context"
	"sort"
	"sync"

	"pixeltrack/internal/models"
	"pixeltrack/internal/store"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemUsers is an in-memory store.UserStore with a unique externalId.
type MemUsers struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]models.User
}

func NewMemUsers() *MemUsers {
	return &MemUsers{users: map[primitive.ObjectID]models.User{}}
}

func (m *MemUsers) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &u, nil
}

func (m *MemUsers) FindByExternalID(ctx context.Context, externalID string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.ExternalID == externalID {
			found := u
			return &found, nil
		}
	}
	return nil, store.ErrNotFound
}

func (m *MemUsers) Create(ctx context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.ExternalID == user.ExternalID {
			return store.ErrDuplicate
		}
	}
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	m.users[user.ID] = *user
	return nil
}

func (m *MemUsers) UpdateAccessToken(ctx context.Context, id primitive.ObjectID, token string) (*models.User, error) {
	return m.update(id, func(u *models.User) { u.AccessToken = token })
}

func (m *MemUsers) SetSelectedPixel(ctx context.Context, id primitive.ObjectID, pixelID string) (*models.User, error) {
	return m.update(id, func(u *models.User) { u.SelectedPixelID = pixelID })
}

func (m *MemUsers) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.users)
}

func (m *MemUsers) update(id primitive.ObjectID, fn func(u *models.User)) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	fn(&u)
	m.users[id] = u
	return &u, nil
}

// MemEvents is an in-memory store.EventStore with a unique eventId.
type MemEvents struct {
	mu     sync.Mutex
	events []models.Event

	// InsertErr, when set, is returned by Insert instead of storing.
	InsertErr error
}

func NewMemEvents() *MemEvents {
	return &MemEvents{}
}

func (m *MemEvents) Insert(ctx context.Context, evt *models.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.InsertErr != nil {
		return m.InsertErr
	}
	for _, e := range m.events {
		if e.EventID == evt.EventID {
			return store.ErrDuplicate
		}
	}
	if evt.ID.IsZero() {
		evt.ID = primitive.NewObjectID()
	}
	m.events = append(m.events, *evt)
	return nil
}

func (m *MemEvents) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := []models.Event{}
	for _, e := range m.events {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].EventTime.After(out[j].EventTime)
	})
	return out, nil
}

func (m *MemEvents) UpdateDelivery(ctx context.Context, id primitive.ObjectID, delivery models.Delivery) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.events {
		if m.events[i].ID == id {
			m.events[i].Delivery = delivery
			return nil
		}
	}
	return store.ErrNotFound
}

func (m *MemEvents) CountByUser(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var n int64
	for _, e := range m.events {
		if e.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (m *MemEvents) All() []models.Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.Event(nil), m.events...)
}
