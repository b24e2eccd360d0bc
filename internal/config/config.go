package config // package config loads application configuration from environment variables

import (
    "log"      // log is used to report configuration errors and halt execution
    "os"       // os provides access to environment variables
    "strconv"  // strconv converts strings to other types
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  The types reflect how the values are used in
// the application: strings for identifiers and secrets, ints for durations and costs.
type Config struct {
    Env           string // application environment (e.g. "dev", "prod")
    Port          string // HTTP port to listen on
    DBUser        string // database username
    DBPass        string // database password (optional)
    DBHost        string // database host address
    DBPort        string // database port number
    DBName        string // database name
    JWTSecret     string // secret used to sign JWTs
    AccessTTLMin  int    // access token time‑to‑live in minutes
    BcryptCost    int    // bcrypt cost for password hashing
    LockCancelled bool   // reject edits/cancels of an already-cancelled reservation
}

// Load reads configuration values from environment variables and returns a
// Config.  Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.  The access token
// TTL defaults to one hour and the bcrypt cost to 10 when unset.
func Load() Config {
    return Config{
        Env:           must("APP_ENV"),      // environment (dev/test/prod)
        Port:          must("APP_PORT"),     // port to bind the HTTP server
        DBUser:        must("DB_USER"),      // database user
        DBPass:        os.Getenv("DB_PASS"), // database password (empty allowed)
        DBHost:        must("DB_HOST"),      // database host
        DBPort:        must("DB_PORT"),      // database port
        DBName:        must("DB_NAME"),      // database name
        JWTSecret:     must("JWT_SECRET"),   // secret used for signing JWTs
        AccessTTLMin:  intOr("ACCESS_TOKEN_TTL_MIN", 60), // TTL for access tokens in minutes
        BcryptCost:    intOr("BCRYPT_COST", 10),          // bcrypt cost factor
        LockCancelled: boolOr("RESERVATION_LOCK_CANCELLED", false), // cancelled-reservation edit policy
    }
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
    v, ok := os.LookupEnv(key)
    if !ok || v == "" {
        log.Fatalf("missing required env var: %s", key)
    }
    return v
}

// intOr retrieves an optional integer environment variable, returning the
// provided default when the variable is unset.  A set but non-numeric
// value is a configuration error and exits the program.
func intOr(key string, def int) int {
    s := os.Getenv(key)
    if s == "" {
        return def
    }
    n, err := strconv.Atoi(s)
    if err != nil {
        log.Fatalf("invalid int for %s: %q", key, s)
    }
    return n
}

// boolOr retrieves an optional boolean environment variable ("true"/"1"),
// returning the provided default when unset.
func boolOr(key string, def bool) bool {
    s := os.Getenv(key)
    if s == "" {
        return def
    }
    return s == "true" || s == "1"
}
