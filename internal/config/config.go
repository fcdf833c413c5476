package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	// Database
	DBDriver string // "sqlite3" | "postgres"
	DBConn   string // DSN or file path for sqlite

	// Feeds
	PerPage int // max entries per feed page

	// Sessions
	SessionTTL           time.Duration // how long a login stays valid
	SessionSweepInterval time.Duration // expiry sweep interval for the memory store

	// Redis session backend (optional, empty addr => in-memory sessions)
	RedisAddr           string
	RedisUser           string
	RedisPassword       string
	RedisDB             int
	RedisDialTimeout    time.Duration
	RedisReadTimeout    time.Duration
	RedisWriteTimeout   time.Duration
	RedisPoolSize       int
	RedisConnectTimeout time.Duration // total time to retry connecting
	RedisRetryInterval  time.Duration // initial wait between retries, grows exponentially
	RedisMaxWait        time.Duration // cap on wait between retries
	RedisPingTimeout    time.Duration // timeout for each ping attempt

	// Bookmark import (optional, both must be set to run an import)
	ImportFile string // path to a bookmarks YAML file
	ImportUser string // username the imported bookmarks belong to

	// Access restrictions
	AllowedHosts []string // optional, restrict access to specific Host headers
	TrustProxy   bool     // true => trust X-Forwarded-For headers

	// Login rate limiting
	LoginBurst        int // bucket capacity per client IP
	LoginRefillPerMin int // tokens refilled per minute
}

func Load() *Config {
	cfg := &Config{
		// Server settings
		ListenPort:      getenv("MINIMARKS_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("MINIMARKS_SHUTDOWN_TIMEOUT", 5*time.Second),

		// Logging
		LogLevel:  getenv("MINIMARKS_LOG_LEVEL", "info"),
		PrettyLog: mustBool("MINIMARKS_PRETTY_LOG", true),

		// Database
		DBDriver: getenv("MINIMARKS_DB_DRIVER", "sqlite3"),
		DBConn:   getenv("MINIMARKS_DB_CONN", "./minimarks.db"),

		// Feeds
		PerPage: getenvInt("MINIMARKS_PER_PAGE", 30),

		// Sessions
		SessionTTL:           mustDuration("MINIMARKS_SESSION_TTL", 7*24*time.Hour),
		SessionSweepInterval: mustDuration("MINIMARKS_SESSION_SWEEP_INTERVAL", 10*time.Minute),

		// Redis settings
		RedisAddr:           getenv("MINIMARKS_REDIS_ADDR", ""),
		RedisUser:           getenv("MINIMARKS_REDIS_USERNAME", "default"),
		RedisPassword:       getenv("MINIMARKS_REDIS_PASSWORD", ""),
		RedisDB:             getenvInt("MINIMARKS_REDIS_DB", 0),
		RedisDialTimeout:    mustDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisReadTimeout:    mustDuration("REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWriteTimeout:   mustDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisPoolSize:       getenvInt("REDIS_POOL_SIZE", 10),
		RedisConnectTimeout: mustDuration("REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:  mustDuration("REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisMaxWait:        mustDuration("REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:    mustDuration("REDIS_PING_TIMEOUT", 5*time.Second),

		// Bookmark import
		ImportFile: getenv("MINIMARKS_IMPORT_FILE", ""),
		ImportUser: getenv("MINIMARKS_IMPORT_USER", ""),

		// Access restrictions
		AllowedHosts: splitAndTrim(getenv("MINIMARKS_ALLOWED_HOSTS", "")),
		TrustProxy:   mustBool("MINIMARKS_TRUST_PROXY", false),

		// Login rate limiting
		LoginBurst:        getenvInt("MINIMARKS_LOGIN_BURST", 10),
		LoginRefillPerMin: getenvInt("MINIMARKS_LOGIN_REFILL_PER_MIN", 6),
	}

	if cfg.PerPage < 1 {
		panic("FATAL: MINIMARKS_PER_PAGE must be >= 1")
	}
	if cfg.ImportFile != "" && cfg.ImportUser == "" {
		panic("FATAL: MINIMARKS_IMPORT_USER is required when MINIMARKS_IMPORT_FILE is set")
	}

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		cfgCopy := *cfg
		if cfg.RedisPassword != "" {
			cfgCopy.RedisPassword = "***REDACTED***"
		}
		log.Printf("[DEBUG] cfg: %+v\n", cfgCopy)
	}

	return cfg
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		trimmed := strings.TrimSpace(part)
		trimmed = strings.Trim(trimmed, `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
