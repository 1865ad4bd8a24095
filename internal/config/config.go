package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Ai       AIConfig
	Otel     OtelConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
	DraftStore         string // "memory" or "redis"
	DraftTTLMinutes    int
	EventsTopic        string
}

type DatabaseConfig struct {
	Connection string
}

type AIConfig struct {
	LLMProvider      string // "groq", "huggingface" or "ollama"
	LLMBaseURL       string
	GroqAPIKey       string
	HuggingFaceKey   string
	OllamaBaseURL    string
	ModelName        string
	ExtractModel     string
	ToolModel        string
	Temperature      float64
	Timezone         string
	SeedDemoHCPs     bool
	ExtractMaxTokens int
}

type OtelConfig struct {
	Enabled      bool
	Endpoint     string
	ServiceName  string
	InsecureHTTP bool
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	modelName := getEnv("MODEL_NAME", "llama-3.3-70b-versatile")

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173,http://127.0.0.1:5173"),
			NatsURL:            getEnv("NATS_URL", ""),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
			DraftStore:         strings.ToLower(getEnv("DRAFT_STORE", "memory")),
			DraftTTLMinutes:    getEnvAsInt("DRAFT_TTL_MINUTES", 60),
			EventsTopic:        getEnv("EVENTS_TOPIC", "interaction.events"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_URL", "sqlite://app.db"),
		},
		Ai: AIConfig{
			LLMProvider:      strings.ToLower(getEnv("LLM_PROVIDER", "groq")),
			LLMBaseURL:       getEnv("LLM_BASE_URL", ""),
			GroqAPIKey:       getEnv("GROQ_API_KEY", ""),
			HuggingFaceKey:   getEnv("HUGGINGFACE_API_KEY", ""),
			OllamaBaseURL:    getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			ModelName:        modelName,
			ExtractModel:     getEnv("EXTRACT_MODEL", modelName),
			ToolModel:        getEnv("TOOL_MODEL", "llama-3.1-8b-instant"),
			Temperature:      getEnvAsFloat("LLM_TEMPERATURE", 0.2),
			Timezone:         getEnv("AGENT_TIMEZONE", "Asia/Kolkata"),
			SeedDemoHCPs:     getEnvAsBool("SEED_DEMO_HCPS", true),
			ExtractMaxTokens: getEnvAsInt("EXTRACT_MAX_TOKENS", 800),
		},
		Otel: OtelConfig{
			Enabled:      getEnvAsBool("OTEL_ENABLED", false),
			Endpoint:     getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
			ServiceName:  getEnv("OTEL_SERVICE_NAME", "hcp-crm-be"),
			InsecureHTTP: getEnvAsBool("OTEL_EXPORTER_OTLP_INSECURE", true),
		},
	}
}

// APIKey returns the credential for the configured provider.
func (c AIConfig) APIKey() string {
	switch c.LLMProvider {
	case "huggingface":
		return c.HuggingFaceKey
	case "ollama":
		return ""
	default:
		return c.GroqAPIKey
	}
}

// BaseURL returns the endpoint for the configured provider ("" means provider default).
func (c AIConfig) BaseURL() string {
	if c.LLMBaseURL != "" {
		return c.LLMBaseURL
	}
	if c.LLMProvider == "ollama" {
		return c.OllamaBaseURL
	}
	return ""
}

func (c AppConfig) CorsOrigins() []string {
	var out []string
	for _, o := range strings.Split(c.CorsAllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}
