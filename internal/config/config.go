package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration required by the console process.
// All values must come from env (or an env-file loaded in main).
// No business logic should depend on raw environment variables.
type Config struct {
	App      AppConfig
	Platform PlatformConfig
	Redis    RedisConfig
	Auth     AuthConfig
	CORS     CORSConfig
}

type AppConfig struct {
	Env  string
	Port int
}

// PlatformConfig points the console at the execution platform backend.
// The backend owns persistence, call placement and telemetry; the console
// only talks to it over HTTP.
type PlatformConfig struct {
	BaseURL string

	// APIKey is sent as a bearer token on every backend request.
	// Optional in local/dev, required in production.
	APIKey string

	RequestTimeout time.Duration
}

// RedisConfig is optional. When Addr is empty the console falls back to
// in-process edit-session locks, which is correct for a single replica.
type RedisConfig struct {
	Addr string
}

type AuthConfig struct {
	JWTSecret      string
	JWTIssuer      string
	JWTAudience    string
	AccessTokenTTL time.Duration
}

type CORSConfig struct {
	// AllowedOrigins is a comma-separated env value, split on load.
	AllowedOrigins []string
}

func Load() (Config, error) {
	c := Config{}
	var parseErrs []error

	c.App.Env = strings.TrimSpace(os.Getenv("APP_ENV"))
	{
		n, err := mustInt("APP_PORT")
		n, parseErrs = appendParseErr(parseErrs, n, err)
		c.App.Port = n
	}

	c.Platform.BaseURL = strings.TrimSpace(os.Getenv("PLATFORM_BASE_URL"))
	c.Platform.APIKey = os.Getenv("PLATFORM_API_KEY")
	c.Platform.RequestTimeout = mustDuration("PLATFORM_REQUEST_TIMEOUT")

	c.Redis.Addr = strings.TrimSpace(os.Getenv("REDIS_ADDR"))

	c.Auth.JWTSecret = os.Getenv("JWT_SECRET")
	c.Auth.JWTIssuer = strings.TrimSpace(os.Getenv("JWT_ISSUER"))
	c.Auth.JWTAudience = strings.TrimSpace(os.Getenv("JWT_AUDIENCE"))
	c.Auth.AccessTokenTTL = mustDuration("JWT_ACCESS_TTL")

	if raw := strings.TrimSpace(os.Getenv("CORS_ALLOWED_ORIGINS")); raw != "" {
		for _, o := range strings.Split(raw, ",") {
			if o = strings.TrimSpace(o); o != "" {
				c.CORS.AllowedOrigins = append(c.CORS.AllowedOrigins, o)
			}
		}
	}

	if err := joinErrors(parseErrs); err != nil {
		return Config{}, err
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c *Config) Validate() error {
	var errs []error

	if c.App.Env == "" {
		errs = append(errs, errors.New("APP_ENV is required"))
	} else if !isValidEnv(c.App.Env) {
		errs = append(errs, fmt.Errorf("APP_ENV must be one of local, dev, staging, production, got %q", c.App.Env))
	}
	if c.App.Port <= 0 || c.App.Port > 65535 {
		errs = append(errs, fmt.Errorf("APP_PORT must be a valid port, got %d", c.App.Port))
	}

	if c.Platform.BaseURL == "" {
		errs = append(errs, errors.New("PLATFORM_BASE_URL is required"))
	} else if u, err := url.Parse(c.Platform.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("PLATFORM_BASE_URL must be an absolute URL, got %q", c.Platform.BaseURL))
	}
	if c.IsProduction() && c.Platform.APIKey == "" {
		errs = append(errs, errors.New("PLATFORM_API_KEY is required in production"))
	}
	if c.Platform.RequestTimeout <= 0 {
		c.Platform.RequestTimeout = 30 * time.Second
	}

	if c.Auth.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}
	if c.IsProduction() {
		if c.Auth.JWTIssuer == "" {
			errs = append(errs, errors.New("JWT_ISSUER is required in production"))
		}
		if c.Auth.JWTAudience == "" {
			errs = append(errs, errors.New("JWT_AUDIENCE is required in production"))
		}
	}
	if c.Auth.AccessTokenTTL <= 0 {
		// Short-lived operator sessions; refresh by logging in again.
		c.Auth.AccessTokenTTL = 8 * time.Hour
	}

	return joinErrors(errs)
}

func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

func (c *Config) HTTPAddr() string {
	return fmt.Sprintf(":%d", c.App.Port)
}

func mustInt(key string) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return 0, fmt.Errorf("%s is required", key)
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q", key, v)
	}
	return n, nil
}

func mustDuration(key string) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return 0
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0
	}
	return d
}

func appendParseErr(errs []error, n int, err error) (int, []error) {
	if err != nil {
		errs = append(errs, err)
	}
	return n, errs
}

func isValidEnv(v string) bool {
	switch v {
	case "local", "dev", "staging", "production":
		return true
	default:
		return false
	}
}

func joinErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	if len(errs) == 1 {
		return errs[0]
	}
	var b strings.Builder
	b.WriteString("config errors:\n")
	for _, e := range errs {
		b.WriteString("- ")
		b.WriteString(e.Error())
		b.WriteString("\n")
	}
	return errors.New(strings.TrimSpace(b.String()))
}
