package config // package config loads application configuration from environment variables

import (
    "log"     // log is used to report configuration errors and halt execution
    "os"      // os provides access to environment variables
    "strconv" // strconv converts strings to other types
)

// Config holds all runtime configuration values. Each field
// corresponds to an environment variable. Secrets required for
// issuing tokens are enforced at startup: a server that cannot
// sign cookies must fail loudly here, not at request time.
type Config struct {
    Env        string // application environment (e.g. "dev", "prod")
    Port       string // HTTP port to listen on
    DBUser     string // database username
    DBPass     string // database password (optional)
    DBHost     string // database host address
    DBPort     string // database port number
    DBName     string // database name
    AuthSecret string // secret used to sign session cookie tokens
    CookieName string // name of the session cookie
    SessionTTL int    // session lifetime in hours

    DefaultHotelID uint64 // tenant assigned to first-sight OAuth users
    BcryptCost     int    // bcrypt cost for password hashing

    GoogleClientID     string // OAuth client id (empty disables Google login)
    GoogleClientSecret string // OAuth client secret
    GoogleRedirectURL  string // OAuth callback URL
}

// Load reads configuration values from environment variables and
// returns a Config. Required variables are enforced by must() and
// missing values cause the program to exit with a fatal log message.
func Load() Config {
    return Config{
        Env:        must("APP_ENV"),
        Port:       must("APP_PORT"),
        DBUser:     must("DB_USER"),
        DBPass:     os.Getenv("DB_PASS"), // empty allowed
        DBHost:     must("DB_HOST"),
        DBPort:     must("DB_PORT"),
        DBName:     must("DB_NAME"),
        AuthSecret: must("AUTH_SECRET"),
        CookieName: getenv("AUTH_COOKIE_NAME", "hta_session"),
        SessionTTL: mustInt("SESSION_TTL_HOURS"),

        DefaultHotelID: mustUint("DEFAULT_HOTEL_ID"),
        BcryptCost:     mustInt("BCRYPT_COST"),

        GoogleClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
        GoogleClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
        GoogleRedirectURL:  os.Getenv("GOOGLE_REDIRECT_URL"),
    }
}

// must retrieves the value of a required environment variable. If
// the variable is unset or empty, the application logs a fatal
// error and exits.
func must(key string) string {
    v, ok := os.LookupEnv(key)
    if !ok || v == "" {
        log.Fatalf("missing required env var: %s", key)
    }
    return v
}

// mustInt is like must() but converts the retrieved string into an
// integer. If conversion fails, the application logs a fatal error
// and exits.
func mustInt(key string) int {
    s := must(key)
    n, err := strconv.Atoi(s)
    if err != nil {
        log.Fatalf("invalid int for %s: %q", key, s)
    }
    return n
}

// mustUint is like mustInt for unsigned 64-bit values.
func mustUint(key string) uint64 {
    s := must(key)
    n, err := strconv.ParseUint(s, 10, 64)
    if err != nil {
        log.Fatalf("invalid uint for %s: %q", key, s)
    }
    return n
}
