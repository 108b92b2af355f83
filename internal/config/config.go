package config // package config loads application configuration from environment variables

import (
	"os"   // os provides access to environment variables
	"time" // time parses durations and locations

	"github.com/joho/godotenv"    // godotenv seeds the environment from a .env file
	"github.com/sirupsen/logrus" // logrus reports configuration errors and halts execution
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.
type Config struct {
	Env               string         // application environment (e.g. "dev", "prod")
	Port              string         // HTTP port to listen on
	APIBaseURL        string         // base URL of the cinema backend, e.g. http://localhost:8000
	APITimeout        time.Duration  // per-request timeout for backend calls
	Location          *time.Location // time zone used to lay out showtime days
	LogLevel          string         // logrus level name
	JWTSecret         string         // secret used to sign console session tokens
	AdminUser         string         // console operator login
	AdminPasswordHash string         // bcrypt hash of the operator password
	AccessTTLMin      int            // session token time-to-live in minutes
}

// Load reads configuration values from the environment, after seeding it from
// a .env file when one exists.  Required variables are enforced by must()
// and missing values cause the program to exit with a fatal log message.
func Load() Config {
	_ = godotenv.Load() // a missing .env is fine; real env vars win anyway
	return Config{
		Env:               must("APP_ENV"),
		Port:              must("APP_PORT"),
		APIBaseURL:        must("API_BASE_URL"),
		APITimeout:        envDur("API_TIMEOUT", 10*time.Second),
		Location:          mustLocation(envStr("APP_TIMEZONE", "UTC")),
		LogLevel:          envStr("LOG_LEVEL", "info"),
		JWTSecret:         must("JWT_SECRET"),
		AdminUser:         must("ADMIN_USER"),
		AdminPasswordHash: must("ADMIN_PASSWORD_HASH"),
		AccessTTLMin:      envInt("ACCESS_TOKEN_TTL_MIN", 480),
	}
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		logrus.Fatalf("missing required env var: %s", key)
	}
	return v
}

// mustLocation resolves an IANA zone name and exits when it is unknown.
func mustLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		logrus.Fatalf("invalid APP_TIMEZONE %q: %v", name, err)
	}
	return loc
}
