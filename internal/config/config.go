package config // package config loads application configuration from environment variables

import (
	"log"
	"os"
	"strconv"
)

// Config holds all runtime configuration values.  Each field corresponds
// to an environment variable.  Secrets and identifiers are strings, TTLs
// and costs are ints, the bot-check threshold is a float.
type Config struct {
	Env            string  // application environment (e.g. "dev", "prod")
	Port           string  // HTTP port to listen on
	DBUser         string  // database username
	DBPass         string  // database password (optional)
	DBHost         string  // database host address
	DBPort         string  // database port number
	DBName         string  // database name
	JWTSecret      string  // secret used to sign JWTs
	AccessTTLMin   int     // access token time-to-live in minutes
	RefreshTTLDays int     // refresh token time-to-live in days
	BcryptCost     int     // bcrypt cost for password hashing
	CORSOrigin     string  // single origin allowed on the public API
	CaptchaSecret  string  // reCAPTCHA secret for siteverify
	CaptchaMin     float64 // minimum trust score to accept a booking
	SMTPHost       string  // mail server host
	SMTPPort       string  // mail server port
	SMTPUser       string  // mail account username
	SMTPPass       string  // mail account password
	MailFrom       string  // From address on guest emails
	ContactEmail   string  // reply address shown in guest emails
}

// Load reads configuration values from environment variables and returns
// a Config.  Required variables are enforced by must(); a missing value
// exits the process with a fatal log message.
func Load() Config {
	return Config{
		Env:            must("APP_ENV"),
		Port:           must("APP_PORT"),
		DBUser:         must("DB_USER"),
		DBPass:         os.Getenv("DB_PASS"), // empty allowed
		DBHost:         must("DB_HOST"),
		DBPort:         must("DB_PORT"),
		DBName:         must("DB_NAME"),
		JWTSecret:      must("JWT_SECRET"),
		AccessTTLMin:   mustInt("ACCESS_TOKEN_TTL_MIN"),
		RefreshTTLDays: mustInt("REFRESH_TOKEN_TTL_DAYS"),
		BcryptCost:     mustInt("BCRYPT_COST"),
		CORSOrigin:     must("CORS_ORIGIN"),
		CaptchaSecret:  must("RECAPTCHA_SECRET"),
		CaptchaMin:     envFloat("RECAPTCHA_MIN_SCORE", 0.5),
		SMTPHost:       must("EMAIL_HOST"),
		SMTPPort:       getenv("EMAIL_PORT", "587"),
		SMTPUser:       must("EMAIL_USER"),
		SMTPPass:       must("EMAIL_PASS"),
		MailFrom:       getenv("EMAIL_FROM", os.Getenv("EMAIL_USER")),
		ContactEmail:   getenv("CONTACT_EMAIL", "info@athenesolijf.nl"),
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

// mustInt is like must() but converts the retrieved string to an integer.
func mustInt(key string) int {
	s := must(key)
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}

// envFloat reads an optional float variable with a default.
func envFloat(key string, def float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Fatalf("invalid float for %s: %q", key, v)
	}
	return f
}
