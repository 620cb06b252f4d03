// Package config reads service settings from the environment. A .env file in
// the working directory is loaded first when present. Any key can instead be
// read from a file named by KEY_FILE, which is how container secrets are
// mounted.
package config

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

type Postgres struct {
	Host     string
	Port     string
	User     string
	Password string
	DB       string
}

// ConnString builds a lib/pq connection URL.
func (p Postgres) ConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", p.User, p.Password, p.Host, p.Port, p.DB)
}

type Config struct {
	HTTPAddr        string
	Postgres        Postgres
	JWTSecret       string
	GoogleClientID  string
	AllowedOrigins  []string
	AuthRedirectURL string
	CookieDomain    string
	CookieSameSite  http.SameSite
	CookieSecure    bool
	LogLevel        zerolog.Level
	DefaultDuration int
	WeekStartsOn    time.Weekday
}

var defaults = map[string]any{
	"http.addr":         "0.0.0.0:8080",
	"postgres.host":     "localhost",
	"postgres.port":     "5432",
	"allowed.origins":   "",
	"auth.redirect.url": "/",
	"cookie.samesite":   "lax",
	"cookie.secure":     true,
	"log.level":         "info",
	"default.duration":  60,
	"week.starts.on":    1,
}

// Load reads .env, if any, and then the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}
	return fromEnv(newEnv())
}

type env struct {
	v *viper.Viper
}

func newEnv() *env {
	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for k, def := range defaults {
		v.SetDefault(k, def)
	}
	return &env{v: v}
}

// get returns key, preferring the contents of the file named by key.file.
func (e *env) get(key string) (string, error) {
	filename := e.v.GetString(key + ".file")
	if filename == "" {
		return e.v.GetString(key), nil
	}
	data, err := os.ReadFile(filename)
	if err != nil {
		return "", fmt.Errorf("failed to read secret %s: %w", key, err)
	}
	return strings.TrimSpace(string(data)), nil
}

func (e *env) list(key string) []string {
	var out []string
	for _, s := range strings.Split(e.v.GetString(key), ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// fromEnv builds the config from e without reading .env.
func fromEnv(e *env) (*Config, error) {
	cfg := &Config{
		HTTPAddr: e.v.GetString("http.addr"),
		Postgres: Postgres{
			Host: e.v.GetString("postgres.host"),
			Port: e.v.GetString("postgres.port"),
			User: e.v.GetString("postgres.user"),
			DB:   e.v.GetString("postgres.db"),
		},
		GoogleClientID:  e.v.GetString("google.client.id"),
		AllowedOrigins:  e.list("allowed.origins"),
		AuthRedirectURL: e.v.GetString("auth.redirect.url"),
		CookieDomain:    e.v.GetString("cookie.domain"),
	}

	var err error
	if cfg.Postgres.Password, err = e.get("postgres.password"); err != nil {
		return nil, err
	}
	if cfg.JWTSecret, err = e.get("jwt.secret"); err != nil {
		return nil, err
	}
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET or JWT_SECRET_FILE must be set")
	}

	if cfg.CookieSameSite, err = parseSameSite(e.v.GetString("cookie.samesite")); err != nil {
		return nil, err
	}
	if cfg.CookieSecure, err = cast.ToBoolE(e.v.Get("cookie.secure")); err != nil {
		return nil, fmt.Errorf("invalid COOKIE_SECURE: %w", err)
	}
	if cfg.LogLevel, err = zerolog.ParseLevel(strings.ToLower(e.v.GetString("log.level"))); err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	if cfg.DefaultDuration, err = cast.ToIntE(e.v.Get("default.duration")); err != nil || cfg.DefaultDuration <= 0 {
		return nil, fmt.Errorf("invalid DEFAULT_DURATION %q", e.v.GetString("default.duration"))
	}
	weekStart, err := cast.ToIntE(e.v.Get("week.starts.on"))
	if err != nil || weekStart < 0 || weekStart > 6 {
		return nil, fmt.Errorf("invalid WEEK_STARTS_ON %q", e.v.GetString("week.starts.on"))
	}
	cfg.WeekStartsOn = time.Weekday(weekStart)

	return cfg, nil
}

func parseSameSite(s string) (http.SameSite, error) {
	switch strings.ToLower(s) {
	case "", "lax":
		return http.SameSiteLaxMode, nil
	case "strict":
		return http.SameSiteStrictMode, nil
	case "none":
		return http.SameSiteNoneMode, nil
	}
	return 0, fmt.Errorf("invalid COOKIE_SAMESITE %q", s)
}
