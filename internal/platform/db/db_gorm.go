// Package db opens the relational store used when STORE_DRIVER is postgres or sqlite.
package db

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	defaultConnectTimeout = 60 * time.Second
)

// retryInterval is the pause between connection attempts.
var retryInterval = 3 * time.Second

// Config holds relational database settings.
type Config struct {
	Driver       string
	User         string
	Password     string
	Name         string
	Host         string
	Port         string
	SSLMode      string
	InstanceName string // Cloud SQL instance; takes precedence over Host/Port
	SQLitePath   string
}

// LoadConfigFromEnv reads DB_* variables. STORE_DRIVER selects the driver.
func LoadConfigFromEnv() Config {
	return Config{
		Driver:       os.Getenv("STORE_DRIVER"),
		User:         os.Getenv("DB_USER"),
		Password:     os.Getenv("DB_PASSWORD"),
		Name:         os.Getenv("DB_NAME"),
		Host:         os.Getenv("DB_HOST"),
		Port:         os.Getenv("DB_PORT"),
		SSLMode:      os.Getenv("DB_SSLMODE"),
		InstanceName: os.Getenv("INSTANCE_CONNECTION_NAME"),
		SQLitePath:   os.Getenv("SQLITE_PATH"),
	}
}

// BuildDSN renders a postgres keyword/value DSN.
func BuildDSN(cfg Config) string {
	sslmode := cfg.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}
	host, port := cfg.Host, cfg.Port
	if cfg.InstanceName != "" {
		host, port = "/cloudsql/"+cfg.InstanceName, ""
	}

	parts := []string{
		"host=" + host,
		"user=" + cfg.User,
		"password=" + cfg.Password,
		"dbname=" + cfg.Name,
	}
	if port != "" {
		parts = append(parts, "port="+port)
	}
	parts = append(parts, "sslmode="+sslmode, "TimeZone=UTC")
	return strings.Join(parts, " ")
}

// Opener opens a gorm connection for a DSN. Swappable in tests.
type Opener func(dsn string) (*gorm.DB, error)

// ConnectWithRetry calls opener until it succeeds or timeout elapses.
func ConnectWithRetry(dsn string, timeout time.Duration, opener Opener) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for {
		db, err := opener(dsn)
		if err == nil {
			return db, nil
		}
		if time.Now().Add(retryInterval).After(deadline) {
			return nil, fmt.Errorf("db connect failed after %s: %w", timeout, err)
		}
		slog.Warn("db connect failed, retrying", "error", err, "retry_in", retryInterval)
		time.Sleep(retryInterval)
	}
}

// gormConfig translates driver errors (e.g. unique violations to gorm.ErrDuplicatedKey).
func gormConfig() *gorm.Config {
	return &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
	}
}

// OpenPostgres is the production Opener.
func OpenPostgres(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(dsn), gormConfig())
}

// OpenSQLite opens a sqlite database. One connection keeps ":memory:" databases
// and write locking consistent.
func OpenSQLite(path string) (*gorm.DB, error) {
	if path == "" {
		path = ":memory:"
	}
	db, err := gorm.Open(sqlite.Open(path), gormConfig())
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	return db, nil
}

// Open connects according to cfg.Driver.
func Open(cfg Config) (*gorm.DB, error) {
	switch cfg.Driver {
	case DriverSQLite:
		return OpenSQLite(cfg.SQLitePath)
	case DriverPostgres:
		return ConnectWithRetry(BuildDSN(cfg), defaultConnectTimeout, OpenPostgres)
	default:
		return nil, fmt.Errorf("unsupported relational driver %q", cfg.Driver)
	}
}

// Ping checks the underlying connection pool.
func Ping(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// Close releases the connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
