package internal

import (
	"context"
	"strings"
	"time"

	"pixeltrack/internal/audit"
	"pixeltrack/internal/auth"
	"pixeltrack/internal/crm"
	"pixeltrack/internal/db"
	"pixeltrack/internal/env"
	"pixeltrack/internal/graph"
	"pixeltrack/internal/identity"
	"pixeltrack/internal/logging"
	"pixeltrack/internal/metrics"
	"pixeltrack/internal/oauth"
	"pixeltrack/internal/pixels"
	"pixeltrack/internal/session"
	"pixeltrack/internal/store"
	"pixeltrack/internal/swagger"
	"pixeltrack/internal/tracking"
	"pixeltrack/internal/ws"

	"github.com/go-redis/redis/v8"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	recoverer "github.com/gofiber/fiber/v3/middleware/recover"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
)

// Deps are the collaborators NewApp wires into routes.
type Deps struct {
	Users  store.UserStore
	Events store.EventStore
	Redis  *redis.Client

	Provider   oauth.Provider
	PixelGraph pixels.Graph
	Sender     tracking.Sender
	Forwarder  crm.Forwarder
	LeadRules  tracking.LeadRules

	Auth          auth.Config
	SessionSecret []byte
	SessionTTL    time.Duration
	CookieSecure  bool
	GraphTimeout  time.Duration
	CORSOrigin    string
	ProxyHeader   string
}

func NewApp(d Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:     "pixeltrack",
		ProxyHeader: d.ProxyHeader,
	})

	app.Use(recoverer.New())
	app.Use(logging.Middleware())
	if d.CORSOrigin != "" {
		app.Use(cors.New(cors.Config{
			AllowOrigins:     []string{d.CORSOrigin},
			AllowCredentials: true,
		}))
	}

	sessions := session.NewManager(d.Redis, d.Users, d.SessionSecret, d.SessionTTL)
	sessions.Secure = d.CookieSecure
	requireUser := sessions.RequireUser()

	hub := ws.NewHub(d.Redis)

	app.Get("/ping", pingHandler)
	app.Get("/version", versionHandler)
	app.Get("/metrics", metrics.Handler())

	auth.Routes(app, d.Provider, identity.NewResolver(d.Users), sessions, d.Auth)
	pixels.Routes(app, pixels.NewRegistry(d.PixelGraph, d.Users), requireUser)

	pipeline := tracking.NewPipeline(d.Events, d.Sender, hub, d.LeadRules, d.GraphTimeout)
	events := tracking.Routes(app, pipeline, hub, requireUser)
	crm.Routes(events, d.Forwarder)

	swagger.Register(app)

	return app
}

// pingHandler godoc
// @Summary Liveness probe
// @Tags Meta
// @Produce plain
// @Success 200 {string} string "PONG"
// @Router /ping [get]
func pingHandler(c fiber.Ctx) error {
	return c.SendString("PONG")
}

// versionHandler godoc
// @Summary Service version
// @Tags Meta
// @Produce plain
// @Success 200 {string} string "v0.1.0"
// @Router /version [get]
func versionHandler(c fiber.Ctx) error {
	return c.SendString("v" + env.VERSION)
}

func SetupApp(deployment string, envRoot string, appVersion string) *fiber.App {
	env.Init(envRoot, appVersion)

	deploy := strings.TrimSpace(deployment)

	if err := logging.Init(env.LOG_LEVEL, deploy); err != nil {
		log.WithError(err).Fatal("invalid LOG_LEVEL")
		return nil
	}

	if err := db.InitDB(env.MONGO_DATABASE); err != nil {
		log.WithError(err).Fatal("could not connect to MongoDB")
		return nil
	}

	if err := db.InitCache(); err != nil {
		log.WithError(err).Fatal("could not connect to Redis")
		return nil
	}

	if err := ensureIndexes(db.Ctx, db.Database, 30*time.Second); err != nil {
		log.WithError(err).Fatal("could not ensure indexes")
		return nil
	}

	if db.Audit != nil {
		audit.Em = audit.NewEmitter(audit.NewMongoSink(db.Audit), deploy)
	} else {
		audit.Em = nil
	}

	rules, err := tracking.LoadLeadRules(env.LEADSOURCE_RULES)
	if err != nil {
		log.WithError(err).Fatal("could not load lead source rules")
		return nil
	}

	gc := graph.NewClient(env.GRAPH_API_URL, env.GRAPH_API_VERSION, env.FACEBOOK_APP_SECRET, env.GRAPH_TIMEOUT)
	gc.TestEventCode = env.GRAPH_TEST_EVENT_CODE

	return NewApp(Deps{
		Users:  store.NewMongoUsers(db.Users),
		Events: store.NewMongoEvents(db.Events),
		Redis:  db.RDB,

		Provider:   oauth.NewFacebook(env.FACEBOOK_APP_ID, env.FACEBOOK_APP_SECRET, env.OAUTH_CALLBACK_URL, gc),
		PixelGraph: gc,
		Sender:     gc,
		Forwarder:  crm.NewLogForwarder(),
		LeadRules:  rules,

		Auth: auth.Config{
			SuccessURL: env.DASHBOARD_URL,
			FailureURL: env.LOGIN_FAILURE_URL,
		},
		SessionSecret: env.SESSION_SECRET,
		SessionTTL:    env.SESSION_TTL,
		CookieSecure:  env.COOKIE_SECURE,
		GraphTimeout:  env.GRAPH_TIMEOUT,
		CORSOrigin:    env.CORS_ORIGIN,
		ProxyHeader:   env.PROXY_HEADER,
	})
}

// ensureIndexes must succeed before serving: duplicate events are only
// rejected through the unique eventId index.
func ensureIndexes(ctx context.Context, database *mongo.Database, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	return store.EnsureIndexes(ctx, database)
}
