package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"
)

type Config struct {
	ListenAddr      string        // ex: ":3000"
	ShutdownTimeout time.Duration // ex: 5s

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	// HTTP server timeouts. WriteTimeout bounds the whole response including
	// the upstream summarization call, so it defaults generously; deadlines on
	// the AI call itself are an operator concern, not part of the contract.
	ReadHeaderTimeout time.Duration
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration

	// MongoDB
	MongoURI            string        // connection string, required at startup
	MongoDatabase       string        // database name (default: "snippetd")
	MongoConnectTimeout time.Duration // total time to retry connecting (ex: 30s)
	MongoPingTimeout    time.Duration // timeout for each ping attempt (ex: 5s)
	MongoRetryInterval  time.Duration // initial wait between retries, grows exponentially
	MongoMaxWait        time.Duration // max wait between retries (ex: 10s)
	MongoWarnThreshold  int           // warn after this many attempts

	// OpenAI. The API key is deliberately NOT required here: the summarizer
	// establishes its credentialed client lazily on first use and fails there
	// when the key is absent.
	OpenAIAPIKey  string
	OpenAIModel   string // default: "gpt-3.5-turbo"
	OpenAIBaseURL string // optional override (proxies, fakes in tests)
}

func Load() *Config {
	cfg := &Config{
		// Server settings
		ListenAddr:      getenv("SNIPPETD_LISTEN_ADDR", ":3000"),
		ShutdownTimeout: mustDuration("SNIPPETD_SHUTDOWN_TIMEOUT", 5*time.Second),

		// Logging
		LogLevel:  getenv("SNIPPETD_LOG_LEVEL", "info"),
		PrettyLog: mustBool("SNIPPETD_PRETTY_LOG", true),

		// HTTP timeouts
		ReadHeaderTimeout: mustDuration("SNIPPETD_READ_HEADER_TIMEOUT", 5*time.Second),
		ReadTimeout:       mustDuration("SNIPPETD_READ_TIMEOUT", 15*time.Second),
		WriteTimeout:      mustDuration("SNIPPETD_WRITE_TIMEOUT", 120*time.Second),
		IdleTimeout:       mustDuration("SNIPPETD_IDLE_TIMEOUT", 60*time.Second),

		// MongoDB settings
		MongoURI:            requireEnv("MONGODB_URI"),
		MongoDatabase:       getenv("MONGODB_DATABASE", "snippetd"),
		MongoConnectTimeout: mustDuration("MONGODB_CONNECT_TIMEOUT", 30*time.Second),
		MongoPingTimeout:    mustDuration("MONGODB_PING_TIMEOUT", 5*time.Second),
		MongoRetryInterval:  mustDuration("MONGODB_RETRY_INTERVAL", 2*time.Second),
		MongoMaxWait:        mustDuration("MONGODB_MAX_WAIT", 10*time.Second),
		MongoWarnThreshold:  getenvInt("MONGODB_WARN_THRESHOLD", 3),

		// OpenAI settings
		OpenAIAPIKey:  getenv("OPENAI_API_KEY", ""),
		OpenAIModel:   getenv("OPENAI_MODEL", "gpt-3.5-turbo"),
		OpenAIBaseURL: getenv("OPENAI_BASE_URL", ""),
	}

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		cfgCopy := *cfg
		cfgCopy.MongoURI = "***REDACTED***"
		if cfg.OpenAIAPIKey != "" {
			cfgCopy.OpenAIAPIKey = "***REDACTED***"
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

func requireEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		panic(fmt.Sprintf("❌ FATAL: Required environment variable %s is not set", key))
	}
	return v
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
