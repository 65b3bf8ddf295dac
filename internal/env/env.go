package env

import (
	"errors"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

// actual environment variables
var MONGO_URI string
var MONGO_DATABASE string
var REDIS_ADDR string
var REDIS_PASSWORD string
var REDIS_DB int

var SESSION_SECRET []byte
var SESSION_TTL time.Duration
var COOKIE_SECURE bool

var FACEBOOK_APP_ID string
var FACEBOOK_APP_SECRET string
var OAUTH_CALLBACK_URL string
var DASHBOARD_URL string
var LOGIN_FAILURE_URL string

var GRAPH_API_URL string
var GRAPH_API_VERSION string
var GRAPH_TIMEOUT time.Duration
var GRAPH_TEST_EVENT_CODE string

var CORS_ORIGIN string
var PROXY_HEADER string
var LOG_LEVEL string
var LEADSOURCE_RULES string
var PREFORK bool

// this is required
var VERSION string

func Init(envRoot string, appVersion string) {
	loadEnv(envRoot)
	loadVersion(appVersion)

	PREFORK, _ = strconv.ParseBool(os.Getenv("PREFORK"))
	COOKIE_SECURE, _ = strconv.ParseBool(os.Getenv("COOKIE_SECURE"))

	MONGO_URI = getString("MONGO_URI", "mongodb://127.0.0.1:27017")
	MONGO_DATABASE = getString("MONGO_DATABASE", "pixeltrack")
	REDIS_ADDR = getString("REDIS_ADDR", "127.0.0.1:6379")
	REDIS_PASSWORD = os.Getenv("REDIS_PASSWORD")
	REDIS_DB, _ = strconv.Atoi(os.Getenv("REDIS_DB"))

	SESSION_SECRET = []byte(os.Getenv("SESSION_SECRET"))
	SESSION_TTL = getDuration("SESSION_TTL", 7*24*time.Hour)

	FACEBOOK_APP_ID = strings.TrimSpace(os.Getenv("FACEBOOK_APP_ID"))
	FACEBOOK_APP_SECRET = strings.TrimSpace(os.Getenv("FACEBOOK_APP_SECRET"))
	OAUTH_CALLBACK_URL = getString("OAUTH_CALLBACK_URL", "http://localhost:5001/auth/callback")
	DASHBOARD_URL = getString("DASHBOARD_URL", "http://localhost:3000/dashboard")
	LOGIN_FAILURE_URL = getString("LOGIN_FAILURE_URL", "/")

	GRAPH_API_URL = getString("GRAPH_API_URL", "https://graph.facebook.com")
	GRAPH_API_VERSION = getString("GRAPH_API_VERSION", "v21.0")
	GRAPH_TIMEOUT = getDuration("GRAPH_TIMEOUT", 10*time.Second)
	GRAPH_TEST_EVENT_CODE = strings.TrimSpace(os.Getenv("GRAPH_TEST_EVENT_CODE"))

	CORS_ORIGIN = strings.TrimSpace(os.Getenv("CORS_ORIGIN"))
	PROXY_HEADER = strings.TrimSpace(os.Getenv("PROXY_HEADER"))
	LOG_LEVEL = getString("LOG_LEVEL", "info")
	LEADSOURCE_RULES = strings.TrimSpace(os.Getenv("LEADSOURCE_RULES"))

	if len(SESSION_SECRET) == 0 {
		log.Warn("SESSION_SECRET is empty, session tokens are signed with an empty key")
	}
}

func loadEnv(envRoot string) {
	if envRoot == "" {
		envRoot = repoRoot()
	}

	path := path.Join(envRoot, ".env")
	if err := godotenv.Overload(path); err != nil {
		// the process environment is enough on its own
		if errors.Is(err, fs.ErrNotExist) {
			log.Debugf("no env file at %s, using process environment", path)
			return
		}
		log.Fatalf("failed to load env file %s: %v", path, err)
	}
}

func loadVersion(appVersion string) {
	if appVersion != "" {
		VERSION = appVersion
		return
	}

	data, err := os.ReadFile(filepath.Join(repoRoot(), "VERSION"))
	if err != nil {
		log.Warnf("failed to read version file from repo root: %v", err)
		VERSION = "unknown"
		return
	}

	trimmed := strings.TrimSpace(string(data))
	if trimmed != "" {
		VERSION = trimmed
	} else {
		VERSION = "unknown"
	}
}

func getString(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		log.Warnf("invalid %s %q, using %s", key, raw, fallback)
		return fallback
	}
	return d
}

func repoRoot() string {
	_, b, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(b), "../..")
}
