package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config captures the full runtime configuration for the analyzer service.
// It is loaded once at startup and never mutated afterwards.
type Config struct {
	App     AppConfig
	HTTP    HTTPConfig
	Azure   AzureConfig
	Google  GoogleConfig
	Kafka   KafkaConfig
	Tracing TracingConfig
	Upload  UploadConfig
}

type AppConfig struct {
	Name        string `env:"APP_NAME" envDefault:"snapcal-analyzer"`
	Environment string `env:"APP_ENV" envDefault:"development"`
	Version     string `env:"APP_VERSION" envDefault:"0.1.0"`
	LogLevel    string `env:"APP_LOG_LEVEL" envDefault:"info"`
}

type HTTPConfig struct {
	Addr         string        `env:"HTTP_ADDR" envDefault:":8080"`
	ReadTimeout  time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"30s"`
	WriteTimeout time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"120s"`
	IdleTimeout  time.Duration `env:"HTTP_IDLE_TIMEOUT" envDefault:"120s"`
}

// AzureConfig points at the Azure OpenAI deployment used for extraction.
type AzureConfig struct {
	Endpoint   string        `env:"AZURE_OPENAI_ENDPOINT"`
	APIKey     string        `env:"AZURE_OPENAI_API_KEY"`
	Deployment string        `env:"AZURE_DEPLOYMENT_NAME"`
	APIVersion string        `env:"AZURE_OPENAI_API_VERSION" envDefault:"2025-01-01-preview"`
	MaxTokens  int           `env:"AZURE_OPENAI_MAX_TOKENS" envDefault:"500"`
	Timeout    time.Duration `env:"AZURE_OPENAI_TIMEOUT" envDefault:"60s"`
}

// GoogleConfig identifies the target calendar and its service-account key.
// CredentialsJSON is the raw key material, not a file path.
type GoogleConfig struct {
	CredentialsJSON string        `env:"GOOGLE_CREDENTIALS_JSON"`
	CalendarID      string        `env:"GOOGLE_CALENDAR_ID"`
	Timezone        string        `env:"CALENDAR_TIMEZONE" envDefault:"Asia/Seoul"`
	Timeout         time.Duration `env:"GOOGLE_CALENDAR_TIMEOUT" envDefault:"30s"`
}

// KafkaConfig controls the created-event announcement topic. Announcements
// are disabled when no brokers are configured.
type KafkaConfig struct {
	Brokers      []string      `env:"KAFKA_BROKERS" envSeparator:","`
	CreatedTopic string        `env:"KAFKA_CREATED_TOPIC" envDefault:"snapcal.events.created"`
	BatchTimeout time.Duration `env:"KAFKA_BATCH_TIMEOUT" envDefault:"1s"`
}

type TracingConfig struct {
	Endpoint     string  `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	Insecure     bool    `env:"OTEL_EXPORTER_OTLP_INSECURE" envDefault:"true"`
	SampleRatio  float64 `env:"OTEL_TRACES_SAMPLER_RATIO" envDefault:"1.0"`
	ResourceAttr string  `env:"OTEL_RESOURCE_ATTRIBUTES" envDefault:"service.namespace=snapcal"`
}

type UploadConfig struct {
	MaxSizeBytes      int64 `env:"UPLOAD_MAX_SIZE_BYTES" envDefault:"20971520"`
	MultipartMemBytes int64 `env:"UPLOAD_MULTIPART_MEM_BYTES" envDefault:"10485760"`
}

// Load parses environment variables into Config and validates required
// credentials so misconfiguration fails at startup, not on the first request.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the credentials the pipeline cannot run without.
func (c *Config) Validate() error {
	if c.Azure.Endpoint == "" {
		return fmt.Errorf("AZURE_OPENAI_ENDPOINT is required")
	}
	if c.Azure.APIKey == "" {
		return fmt.Errorf("AZURE_OPENAI_API_KEY is required")
	}
	if c.Azure.Deployment == "" {
		return fmt.Errorf("AZURE_DEPLOYMENT_NAME is required")
	}
	if c.Google.CredentialsJSON == "" {
		return fmt.Errorf("GOOGLE_CREDENTIALS_JSON is required (service-account key JSON)")
	}
	if c.Google.CalendarID == "" {
		return fmt.Errorf("GOOGLE_CALENDAR_ID is required")
	}
	return nil
}
