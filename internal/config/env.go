package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// EnvConfigFile names the optional TOML file that provides base values.
// Environment variables always win over the file.
const EnvConfigFile = "ROUTEADMIN_CONFIG"

const (
	defaultAppAddr    = ":8080"
	defaultAPITimeout = 15 * time.Second
	defaultSessionTTL = 12 * time.Hour
)

type Env struct {
	AppAddr     string
	GinMode     string
	APIURL      string
	APITimeout  time.Duration
	SessionKey  string
	SessionTTL  time.Duration
	CORSOrigins []string
	AuditDriver string
	AuditDSN    string
	PDFFont     string
}

// fileConfig mirrors the TOML layout:
//
//	addr = ":8080"
//	[api]
//	url = "http://localhost:5000"
//	timeout = "15s"
//	[session]
//	secret = "..."
//	ttl = "12h"
//	[cors]
//	allowed_origins = ["http://localhost:3000"]
//	[audit]
//	driver = "sqlite3"
//	dsn = "audit.db"
//	[export]
//	font = "/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf"
type fileConfig struct {
	Addr    string `toml:"addr"`
	GinMode string `toml:"gin_mode"`
	API     struct {
		URL     string `toml:"url"`
		Timeout string `toml:"timeout"`
	} `toml:"api"`
	Session struct {
		Secret string `toml:"secret"`
		TTL    string `toml:"ttl"`
	} `toml:"session"`
	CORS struct {
		AllowedOrigins []string `toml:"allowed_origins"`
	} `toml:"cors"`
	Audit struct {
		Driver string `toml:"driver"`
		DSN    string `toml:"dsn"`
	} `toml:"audit"`
	Export struct {
		Font string `toml:"font"`
	} `toml:"export"`
}

// LoadEnv builds the configuration from the optional file and the environment.
func LoadEnv() (Env, error) {
	var fc fileConfig
	if path := strings.TrimSpace(os.Getenv(EnvConfigFile)); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Env{}, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := parseFile(raw, &fc); err != nil {
			return Env{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	return fromSources(fc, os.Getenv)
}

// parseFile decodes a TOML config document.
func parseFile(raw []byte, dst *fileConfig) error {
	return toml.Unmarshal(raw, dst)
}

func fromSources(fc fileConfig, getenv func(string) string) (Env, error) {
	pick := func(key, fileVal string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return strings.TrimSpace(fileVal)
	}

	env := Env{
		AppAddr:     pick("APP_ADDR", fc.Addr),
		GinMode:     pick("GIN_MODE", fc.GinMode),
		APIURL:      strings.TrimRight(pick("API_URL", fc.API.URL), "/"),
		SessionKey:  pick("SESSION_SECRET", fc.Session.Secret),
		AuditDriver: strings.ToLower(pick("AUDIT_DRIVER", fc.Audit.Driver)),
		AuditDSN:    pick("AUDIT_DSN", fc.Audit.DSN),
		PDFFont:     pick("PDF_FONT", fc.Export.Font),
	}
	if env.AppAddr == "" {
		env.AppAddr = defaultAppAddr
	}

	var err error
	if env.APITimeout, err = parseDuration(pick("ROUTES_API_TIMEOUT", fc.API.Timeout), defaultAPITimeout); err != nil {
		return Env{}, fmt.Errorf("ROUTES_API_TIMEOUT: %w", err)
	}
	if env.SessionTTL, err = parseDuration(pick("SESSION_TTL", fc.Session.TTL), defaultSessionTTL); err != nil {
		return Env{}, fmt.Errorf("SESSION_TTL: %w", err)
	}

	if raw := strings.TrimSpace(getenv("CORS_ALLOWED_ORIGINS")); raw != "" {
		env.CORSOrigins = splitList(raw)
	} else {
		env.CORSOrigins = append([]string(nil), fc.CORS.AllowedOrigins...)
	}

	switch env.AuditDriver {
	case "", "mysql", "sqlite3", "pgx":
	default:
		return Env{}, fmt.Errorf("AUDIT_DRIVER: unsupported driver %q (mysql, sqlite3 or pgx)", env.AuditDriver)
	}
	if env.AuditDriver != "" && env.AuditDSN == "" {
		return Env{}, fmt.Errorf("AUDIT_DSN is required when AUDIT_DRIVER=%s", env.AuditDriver)
	}
	return env, nil
}

func parseDuration(raw string, fallback time.Duration) (time.Duration, error) {
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, fmt.Errorf("must be positive, got %s", raw)
	}
	return d, nil
}

func splitList(raw string) []string {
	out := []string{}
	for _, p := range strings.Split(raw, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
