package config // package config loads application configuration from environment variables

import (
	"log"     // log is used to report configuration errors and halt execution
	"os"      // os provides access to environment variables
	"strconv" // strconv converts strings to other types
	"strings" // strings splits the admin allowlist
)

// Config holds all runtime configuration values. Each field corresponds
// to an environment variable. The types reflect how the values are used
// in the application: strings for identifiers and secrets, ints for
// durations and costs.
type Config struct {
	Env             string   // application environment (e.g. "dev", "prod")
	Port            string   // HTTP port to listen on
	DBUser          string   // database username
	DBPass          string   // database password (optional)
	DBHost          string   // database host address
	DBPort          string   // database port number
	DBName          string   // database name
	SessionTTLMin   int      // session time-to-live in minutes
	BcryptCost      int      // bcrypt cost for password hashing
	PasswordEntropy float64  // minimum password entropy accepted at registration
	AdminUsers      []string // bootstrap usernames granted the admin role on registration
}

// Load reads configuration values from environment variables and
// returns a Config. Required variables are enforced by must() and
// missing values cause the program to exit with a fatal log message.
func Load() Config {
	return Config{
		Env:             must("APP_ENV"),                      // environment (dev/test/prod)
		Port:            must("APP_PORT"),                     // port to bind the HTTP server
		DBUser:          must("DB_USER"),                      // database user
		DBPass:          os.Getenv("DB_PASS"),                 // database password (empty allowed)
		DBHost:          must("DB_HOST"),                      // database host
		DBPort:          must("DB_PORT"),                      // database port
		DBName:          must("DB_NAME"),                      // database name
		SessionTTLMin:   mustInt("SESSION_TTL_MIN"),           // session lifetime in minutes
		BcryptCost:      mustInt("BCRYPT_COST"),               // bcrypt cost factor
		PasswordEntropy: envFloat("PASSWORD_MIN_ENTROPY", 60), // strength threshold, 60 bits by default
		AdminUsers:      splitList(os.Getenv("ADMIN_USERS")),  // comma-separated allowlist, may be empty
	}
}

// must retrieves the value of a required environment variable. If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// mustInt is like must() but converts the retrieved string into an integer.
// If conversion fails, the application logs a fatal error and exits.
func mustInt(key string) int {
	s := must(key)
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}

// envFloat reads an optional float variable, falling back to the
// default when unset or malformed.
func envFloat(key string, def float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}

// splitList parses a comma-separated list, trimming whitespace and
// dropping empty entries.
func splitList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
