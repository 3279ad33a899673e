package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/apex/log"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Port string

	DefaultOracle string

	OllamaURL    string
	OllamaModel  string
	OpenAIAPIKey string
	OpenAIModel  string
	OpenAIURL    string
	GeminiAPIKey string
	GeminiModel  string

	OracleTimeout  time.Duration
	MaxUploadBytes int64
	PromptDir      string

	LogLevel  string
	LogFormat string

	TelegramBotToken string
	WebhookURL       string
}

// fileValues holds keys read from CONFIG_FILE. Environment variables win over it.
var fileValues = map[string]string{}

func mustEnv(k string) string {
	v := getEnv(k, "")
	if v == "" {
		log.Fatalf("missing required env %s", k)
	}
	return v
}

func getEnv(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	if v := strings.TrimSpace(fileValues[k]); v != "" {
		return v
	}
	return def
}

func getDuration(k string, def time.Duration) time.Duration {
	v := getEnv(k, "")
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil && d > 0 {
		return d
	}
	// bare integers are seconds
	if n, err := strconv.Atoi(v); err == nil && n > 0 {
		return time.Duration(n) * time.Second
	}
	log.Warnf("config: bad duration %s=%q, using %s", k, v, def)
	return def
}

func getInt64(k string, def int64) int64 {
	v := getEnv(k, "")
	if v == "" {
		return def
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n <= 0 {
		log.Warnf("config: bad integer %s=%q, using %d", k, v, def)
		return def
	}
	return n
}

// loadFile reads a flat YAML mapping of KEY: value pairs.
func loadFile(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	raw := make(map[string]any)
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	out := make(map[string]string, len(raw))
	for k, v := range raw {
		switch t := v.(type) {
		case string:
			out[strings.ToUpper(k)] = t
		case int:
			out[strings.ToUpper(k)] = strconv.Itoa(t)
		case bool:
			out[strings.ToUpper(k)] = strconv.FormatBool(t)
		case float64:
			out[strings.ToUpper(k)] = strconv.FormatFloat(t, 'f', -1, 64)
		}
	}
	return out, nil
}

// Load собирает конфиг из .env, CONFIG_FILE и переменных окружения.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.WithError(err).Warn("config: .env not loaded")
	}

	fileValues = map[string]string{}
	if p := strings.TrimSpace(os.Getenv("CONFIG_FILE")); p != "" {
		vals, err := loadFile(p)
		if err != nil {
			log.WithError(err).Fatalf("config: cannot read %s", p)
		}
		fileValues = vals
	}

	return &Config{
		Port: getEnv("PORT", "8000"),

		DefaultOracle: strings.ToLower(getEnv("DEFAULT_ORACLE", "ollama")),

		OllamaURL:    getEnv("OLLAMA_URL", "http://localhost:11434"),
		OllamaModel:  getEnv("OLLAMA_MODEL", "llava:7b"),
		OpenAIAPIKey: getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:  getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		OpenAIURL:    getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-2.5-flash"),

		OracleTimeout:  getDuration("ORACLE_TIMEOUT", 120*time.Second),
		MaxUploadBytes: getInt64("MAX_UPLOAD_BYTES", 10<<20),
		PromptDir:      getEnv("PROMPT_DIR", ""),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "text"),

		WebhookURL: getEnv("WEBHOOK_URL", ""),
	}
}

// RequireTelegram заполняет токен бота; без него бот не стартует.
func (c *Config) RequireTelegram() {
	c.TelegramBotToken = mustEnv("TELEGRAM_BOT_TOKEN")
}
