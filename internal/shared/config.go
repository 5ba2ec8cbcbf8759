package shared

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv      string
	LogLevel    string
	HTTPAddr    string
	MetricsAddr string
	LocalesPath string

	RedisAddr string
	RedisDB   int
	RedisPass string
	CacheTTL  time.Duration

	SerperBase    string
	SerperKey     string
	SearchRPS     int
	SearchResults int

	LLMProvider   string
	OpenAIKey     string
	OpenAIModel   string
	OpenAIBaseURL string
	GeminiKey     string
	GeminiModel   string

	EngineTimeout time.Duration

	PlannerWorkers  int
	PlannerRequests string
	PlannerOut      string
}

// Load reads the environment, after merging an optional .env file in the working directory.
// Values already set in the process environment win over the file.
func Load() Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Msg(".env could not be read")
	}

	c := Config{
		AppEnv:      env("APP_ENV", "prod"),
		LogLevel:    env("LOG_LEVEL", "info"),
		HTTPAddr:    env("HTTP_ADDR", ":8080"),
		MetricsAddr: env("METRICS_ADDR", ":9100"),
		LocalesPath: env("LOCALES_PATH", ""),

		RedisAddr: env("REDIS_ADDR", ""),
		RedisDB:   atoi("REDIS_DB", 0),
		RedisPass: env("REDIS_PASSWORD", ""),
		CacheTTL:  time.Duration(atoi("CACHE_TTL_SECONDS", 3600)) * time.Second,

		SerperBase:    env("SERPER_BASE_URL", "https://google.serper.dev"),
		SerperKey:     env("SERPER_API_KEY", ""),
		SearchRPS:     atoi("SEARCH_RPS", 5),
		SearchResults: atoi("SEARCH_RESULTS", 5),

		LLMProvider:   strings.ToLower(env("LLM_PROVIDER", "openai")),
		OpenAIKey:     env("OPENAI_API_KEY", ""),
		OpenAIModel:   env("OPENAI_MODEL", "gpt-4o-mini"),
		OpenAIBaseURL: env("OPENAI_BASE_URL", ""),
		GeminiKey:     env("GEMINI_API_KEY", ""),
		GeminiModel:   env("GEMINI_MODEL", "gemini-2.0-flash"),

		EngineTimeout: time.Duration(atoi("ENGINE_TIMEOUT_SECONDS", 600)) * time.Second,

		PlannerWorkers:  atoi("PLANNER_WORKERS", 2),
		PlannerRequests: env("PLANNER_REQUESTS", "trips.yaml"),
		PlannerOut:      env("PLANNER_OUT", "out"),
	}
	if c.SerperKey == "" {
		log.Warn().Msg("SERPER_API_KEY is empty; it must be supplied before planning")
	}
	return c
}

// LLMKey is the startup key for the configured provider.
func (c Config) LLMKey() string {
	if c.LLMProvider == "gemini" {
		return c.GeminiKey
	}
	return c.OpenAIKey
}

// LLMModel is the model name for the configured provider.
func (c Config) LLMModel() string {
	if c.LLMProvider == "gemini" {
		return c.GeminiModel
	}
	return c.OpenAIModel
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func atoi(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		log.Warn().Str("key", k).Str("value", v).Msg("not an integer, using default")
	}
	return def
}
