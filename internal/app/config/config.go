// Package config reads the process configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	platformdb "stock_sentiment/internal/platform/db"
	"stock_sentiment/internal/platform/externalapi/tickertick"
	platformredis "stock_sentiment/internal/platform/redis"
)

const (
	StoreMongo = "mongo"

	DefaultWebAddr            = ":5000"
	DefaultAnalysisAddr       = ":5002"
	DefaultMongoURI           = "mongodb://localhost:27017/stock_sentiment"
	DefaultAnalysisServiceURL = "http://llm:5002"
	DefaultAnalysisTimeout    = 90 * time.Second
	DefaultSessionTTL         = 24 * time.Hour
	DefaultCacheTTL           = 5 * time.Minute
	DefaultServiceTokenTTL    = 2 * time.Minute

	// responseMargin covers persisting and writing the reply after the model returns.
	responseMargin = 30 * time.Second
)

// Config is shared by both binaries; each reads the fields it needs.
type Config struct {
	WebAddr      string
	AnalysisAddr string

	StoreDriver string // mongo, postgres or sqlite
	MongoURI    string
	DB          platformdb.Config
	Redis       platformredis.Config

	ServiceJWTSecret   string
	ServiceTokenTTL    time.Duration
	AnalysisServiceURL string

	LLMProvider     string
	LLMModel        string
	AnalysisTimeout time.Duration
	TickerTick      tickertick.Config

	SessionTTL         time.Duration
	CookieSecure       bool
	CORSAllowedOrigins []string
	CacheTTL           time.Duration

	LogLevel  string
	LogFormat string
}

// Load reads the environment. Malformed durations or booleans are errors; missing
// values take their defaults.
func Load() (Config, error) {
	cfg := Config{
		WebAddr:            getenv("WEB_ADDR", DefaultWebAddr),
		AnalysisAddr:       getenv("ANALYSIS_ADDR", DefaultAnalysisAddr),
		StoreDriver:        strings.ToLower(getenv("STORE_DRIVER", StoreMongo)),
		MongoURI:           getenv("MONGO_URI", DefaultMongoURI),
		DB:                 platformdb.LoadConfigFromEnv(),
		Redis:              platformredis.LoadConfig(),
		ServiceJWTSecret:   os.Getenv("SERVICE_JWT_SECRET"),
		AnalysisServiceURL: getenv("ANALYSIS_SERVICE_URL", DefaultAnalysisServiceURL),
		LLMProvider:        os.Getenv("LLM_API_PROVIDER"),
		LLMModel:           os.Getenv("LLM_MODEL"),
		TickerTick:         tickertick.LoadConfig(),
		CORSAllowedOrigins: splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),
		LogLevel:           getenv("LOG_LEVEL", "info"),
		LogFormat:          getenv("LOG_FORMAT", "json"),
	}
	cfg.DB.Driver = cfg.StoreDriver

	var err error
	if cfg.AnalysisTimeout, err = durationEnv("ANALYSIS_TIMEOUT", DefaultAnalysisTimeout); err != nil {
		return Config{}, err
	}
	if cfg.SessionTTL, err = durationEnv("SESSION_TTL", DefaultSessionTTL); err != nil {
		return Config{}, err
	}
	if cfg.CacheTTL, err = durationEnv("CACHE_TTL", DefaultCacheTTL); err != nil {
		return Config{}, err
	}
	if cfg.ServiceTokenTTL, err = durationEnv("SERVICE_TOKEN_TTL", DefaultServiceTokenTTL); err != nil {
		return Config{}, err
	}
	if cfg.CookieSecure, err = boolEnv("COOKIE_SECURE", false); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ModelTimeout bounds one outbound model request. It never outlives the analysis itself.
func (c Config) ModelTimeout() time.Duration {
	return c.AnalysisTimeout
}

// ProxyTimeout is how long the web service waits for the analysis service.
func (c Config) ProxyTimeout() time.Duration {
	return c.AnalysisTimeout + responseMargin
}

// UsesMongo reports whether the document store is selected.
func (c Config) UsesMongo() bool {
	return c.StoreDriver == StoreMongo
}

func getenv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

// durationEnv accepts Go durations ("90s") and bare seconds ("90").
func durationEnv(key string, def time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s %q: want a positive duration like 90s", key, v)
	}
	return d, nil
}

func boolEnv(key string, def bool) (bool, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return b, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
