package config

import (
	"errors"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var ErrMissingAPIBaseURL = errors.New("config: API_BASE_URL is required")

type Config struct {
	ListenAddr string
	LogLevel   string

	APIBaseURL      string
	APITimeout      time.Duration
	APIMaxBodyBytes int

	SearchDebounce time.Duration

	TokenDB string

	KafkaBrokers []string
	EventsTopic  string

	CSRFSecure bool
}

// LoadConfig reads an optional env file and then the process environment.
func LoadConfig(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			log.Printf("Notice: %s file not found: %v. Using system environment variables", envFile, err)
		}
	}

	cfg := &Config{
		ListenAddr:      EnvDefault("LISTEN_ADDR", ":8080"),
		LogLevel:        EnvDefault("LOG_LEVEL", "info"),
		APIBaseURL:      strings.TrimRight(os.Getenv("API_BASE_URL"), "/"),
		APITimeout:      EnvDurationDefault("API_TIMEOUT", 5*time.Second),
		APIMaxBodyBytes: EnvIntDefault("API_MAX_BODY_BYTES", 4<<20),
		SearchDebounce:  EnvDurationDefault("SEARCH_DEBOUNCE", 500*time.Millisecond),
		TokenDB:         EnvDefault("TOKEN_DB", "vitrine.db"),
		KafkaBrokers:    CSV(os.Getenv("KAFKA_BROKERS")),
		EventsTopic:     EnvDefault("EVENTS_TOPIC", "storefront_events"),
		CSRFSecure:      EnvBoolDefault("CSRF_SECURE", false),
	}

	if cfg.APIBaseURL == "" {
		return nil, ErrMissingAPIBaseURL
	}
	return cfg, nil
}

func CSV(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func EnvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func EnvIntDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func EnvDurationDefault(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d < 0 {
		return def
	}
	return d
}

func EnvBoolDefault(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}
