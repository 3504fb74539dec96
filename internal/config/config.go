package config // package config loads application configuration from environment variables

import (
	"fmt"
	"log"
	"os"
)

// Config holds all runtime configuration values. Each field corresponds to
// one or more environment variables. The database can be configured either
// with a full DSN (DATABASE_URL) or with discrete DB_* parts; Load fails
// fast when neither complete form is supplied.
type Config struct {
	Port      string // HTTP port to listen on (APP_PORT, default 5000)
	DSN       string // MySQL data source name
	SecretKey string // secret used to sign the flash session cookie
	StaticDir string // root directory for static assets and uploads
}

// Load reads configuration from the environment and returns a Config.
// Missing database settings are a startup error: the application must not
// begin serving requests against an unspecified store.
func Load() Config {
	return Config{
		Port:      getenv("APP_PORT", "5000"),
		DSN:       databaseDSN(),
		SecretKey: getenv("SECRET_KEY", "dev-key"),
		StaticDir: getenv("STATIC_DIR", "static"),
	}
}

// databaseDSN builds the MySQL DSN from the environment. DATABASE_URL takes
// precedence when set; otherwise the DSN is assembled from DB_USER, DB_PASS
// (optional), DB_HOST, DB_PORT and DB_NAME. If neither form is complete the
// application exits with a fatal log message.
func databaseDSN() string {
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		return dsn
	}
	user := os.Getenv("DB_USER")
	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")
	name := os.Getenv("DB_NAME")
	if user == "" || host == "" || port == "" || name == "" {
		log.Fatalf("database configuration missing: set DATABASE_URL or DB_USER/DB_HOST/DB_PORT/DB_NAME")
	}
	auth := user
	if pass := os.Getenv("DB_PASS"); pass != "" {
		auth = fmt.Sprintf("%s:%s", user, pass)
	}
	// parseTime=true -> DATETIME -> time.Time | loc=UTC keeps times consistent
	return fmt.Sprintf("%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
		auth, host, port, name)
}

// getenv returns the value of an environment variable or a default when the
// variable is unset or empty.
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
