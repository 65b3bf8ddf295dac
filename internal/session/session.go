// Package session keeps logged-in users in Redis. The browser only holds a
// signed token naming the Redis session, so logout and expiry are enforced
// server-side.
package session

import (
	"context"
	"strings"
	"time"

	"pixeltrack/internal/models"
	"pixeltrack/internal/store"

	sj "github.com/brianvoe/sjwt"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	CookieName = "pt_session"

	sessionPrefix = "session:"
	statePrefix   = "oauth_state:"

	StateTTL = 10 * time.Minute
)

var ErrInvalidSession = errors.New("session: invalid or expired")

type claims struct {
	SessionID string `json:"sid"`
	UserID    string `json:"uid"`
}

type Manager struct {
	rdb    *redis.Client
	users  store.UserStore
	secret []byte
	ttl    time.Duration

	// Secure marks the session cookie as HTTPS only.
	Secure bool
}

func NewManager(rdb *redis.Client, users store.UserStore, secret []byte, ttl time.Duration) *Manager {
	return &Manager{
		rdb:    rdb,
		users:  users,
		secret: secret,
		ttl:    ttl,
	}
}

// Create opens a session for userID and returns the signed token.
func (m *Manager) Create(ctx context.Context, userID primitive.ObjectID) (string, error) {
	sid := uuid.NewString()

	if err := m.rdb.Set(ctx, sessionPrefix+sid, userID.Hex(), m.ttl).Err(); err != nil {
		return "", errors.Wrap(err, "session: store")
	}

	c, err := sj.ToClaims(claims{SessionID: sid, UserID: userID.Hex()})
	if err != nil {
		return "", errors.Wrap(err, "session: claims")
	}
	c.SetExpiresAt(time.Now().Add(m.ttl))

	return c.Generate(m.secret), nil
}

// Resolve returns the user behind token. Every failure is ErrInvalidSession
// except store and cache outages.
func (m *Manager) Resolve(ctx context.Context, token string) (*models.User, error) {
	cl, err := m.parse(token)
	if err != nil {
		return nil, err
	}

	stored, err := m.rdb.Get(ctx, sessionPrefix+cl.SessionID).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrInvalidSession
	}
	if err != nil {
		return nil, errors.Wrap(err, "session: load")
	}
	if stored != cl.UserID {
		return nil, ErrInvalidSession
	}

	id, err := primitive.ObjectIDFromHex(stored)
	if err != nil {
		return nil, ErrInvalidSession
	}

	user, err := m.users.FindByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrInvalidSession
	}
	if err != nil {
		return nil, err
	}

	return user, nil
}

// Destroy removes the session behind token. Unknown or malformed tokens are
// not an error.
func (m *Manager) Destroy(ctx context.Context, token string) error {
	cl, err := m.parse(token)
	if err != nil {
		return nil
	}
	return errors.Wrap(m.rdb.Del(ctx, sessionPrefix+cl.SessionID).Err(), "session: delete")
}

func (m *Manager) parse(token string) (claims, error) {
	var cl claims

	token = strings.TrimSpace(token)
	if token == "" || !sj.Verify(token, m.secret) {
		return cl, ErrInvalidSession
	}

	parsed, err := sj.Parse(token)
	if err != nil {
		return cl, ErrInvalidSession
	}
	if err := parsed.Validate(); err != nil {
		return cl, ErrInvalidSession
	}
	if err := parsed.ToStruct(&cl); err != nil || cl.SessionID == "" || cl.UserID == "" {
		return cl, ErrInvalidSession
	}

	return cl, nil
}

// NewState issues a single use OAuth state value.
func (m *Manager) NewState(ctx context.Context) (string, error) {
	state := uuid.NewString()
	if err := m.rdb.Set(ctx, statePrefix+state, "1", StateTTL).Err(); err != nil {
		return "", errors.Wrap(err, "session: store oauth state")
	}
	return state, nil
}

// ConsumeState reports whether state was issued and not used yet.
func (m *Manager) ConsumeState(ctx context.Context, state string) (bool, error) {
	state = strings.TrimSpace(state)
	if state == "" {
		return false, nil
	}

	_, err := m.rdb.GetDel(ctx, statePrefix+state).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, errors.Wrap(err, "session: consume oauth state")
	}
	return true, nil
}
