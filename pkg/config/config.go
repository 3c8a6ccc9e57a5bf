package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config holds the environment configuration for the SDK
type Config struct {
	LLM        LLMConfig
	Redis      RedisConfig
	Postgres   PostgresConfig
	Tracing    TracingConfig
	Transcript TranscriptConfig
}

// LLMConfig holds per-provider credentials and defaults
type LLMConfig struct {
	OpenAI    OpenAIConfig
	Anthropic AnthropicConfig
	Gemini    GeminiConfig
}

// OpenAIConfig holds OpenAI settings
type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// AnthropicConfig holds Anthropic-on-Bedrock settings
type AnthropicConfig struct {
	Model     string
	Region    string
	MaxTokens int
}

// GeminiConfig holds Google Gemini settings
type GeminiConfig struct {
	APIKey string
	Model  string
}

// RedisConfig holds Redis connection settings
type RedisConfig struct {
	Address  string
	Password string
	DB       int
}

// PostgresConfig holds Postgres connection settings
type PostgresConfig struct {
	DSN string
}

// TracingConfig holds OpenTelemetry exporter settings
type TracingConfig struct {
	Enabled     bool
	Endpoint    string
	Protocol    string // grpc or http
	ServiceName string
	Insecure    bool
}

// TranscriptConfig holds transcript persistence settings
type TranscriptConfig struct {
	Type            string // local or gcs
	Path            string
	Bucket          string
	Prefix          string
	CredentialsFile string
}

// LoadFromEnv reads configuration from AGENTCHAT_-prefixed environment
// variables, falling back to defaults where a variable is unset
func LoadFromEnv() *Config {
	v := viper.New()
	v.SetEnvPrefix("AGENTCHAT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("llm.openai.model", "gpt-4o-mini")
	v.SetDefault("llm.openai.base_url", "")
	v.SetDefault("llm.anthropic.model", "anthropic.claude-3-5-sonnet-20241022-v2:0")
	v.SetDefault("llm.anthropic.region", "us-east-1")
	v.SetDefault("llm.anthropic.max_tokens", 1024)
	v.SetDefault("llm.gemini.model", "gemini-2.5-flash")
	v.SetDefault("redis.address", "localhost:6379")
	v.SetDefault("redis.db", 0)
	v.SetDefault("tracing.enabled", false)
	v.SetDefault("tracing.endpoint", "localhost:4317")
	v.SetDefault("tracing.protocol", "grpc")
	v.SetDefault("tracing.service_name", "agentchat")
	v.SetDefault("tracing.insecure", true)
	v.SetDefault("transcript.type", "local")
	v.SetDefault("transcript.path", "./transcripts")

	return &Config{
		LLM: LLMConfig{
			OpenAI: OpenAIConfig{
				APIKey:  v.GetString("llm.openai.api_key"),
				Model:   v.GetString("llm.openai.model"),
				BaseURL: v.GetString("llm.openai.base_url"),
			},
			Anthropic: AnthropicConfig{
				Model:     v.GetString("llm.anthropic.model"),
				Region:    v.GetString("llm.anthropic.region"),
				MaxTokens: v.GetInt("llm.anthropic.max_tokens"),
			},
			Gemini: GeminiConfig{
				APIKey: v.GetString("llm.gemini.api_key"),
				Model:  v.GetString("llm.gemini.model"),
			},
		},
		Redis: RedisConfig{
			Address:  v.GetString("redis.address"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		Postgres: PostgresConfig{
			DSN: v.GetString("postgres.dsn"),
		},
		Tracing: TracingConfig{
			Enabled:     v.GetBool("tracing.enabled"),
			Endpoint:    v.GetString("tracing.endpoint"),
			Protocol:    v.GetString("tracing.protocol"),
			ServiceName: v.GetString("tracing.service_name"),
			Insecure:    v.GetBool("tracing.insecure"),
		},
		Transcript: TranscriptConfig{
			Type:            v.GetString("transcript.type"),
			Path:            v.GetString("transcript.path"),
			Bucket:          v.GetString("transcript.bucket"),
			Prefix:          v.GetString("transcript.prefix"),
			CredentialsFile: v.GetString("transcript.credentials_file"),
		},
	}
}
