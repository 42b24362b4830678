package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	DatabaseURL string `envconfig:"DATABASE_URL" required:"true"`
	Port        string `envconfig:"PORT" default:"8080"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`

	JWTSecret string        `envconfig:"JWT_SECRET" required:"true"`
	JWTExpiry time.Duration `envconfig:"JWT_EXPIRY" default:"24h"`

	MinIOEndpoint  string `envconfig:"MINIO_ENDPOINT" required:"true"`
	MinIOAccessKey string `envconfig:"MINIO_ACCESS_KEY" required:"true"`
	MinIOSecretKey string `envconfig:"MINIO_SECRET_KEY" required:"true"`
	MinIOUseSSL    bool   `envconfig:"MINIO_USE_SSL" default:"false"`
	MinIOBucket    string `envconfig:"MINIO_BUCKET" default:"property-photos"`

	KafkaBrokers         string `envconfig:"KAFKA_BROKERS" required:"true"`
	KafkaPublishingTopic string `envconfig:"KAFKA_PUBLISHING_TOPIC" default:"crm.publishing.events"`

	// Simulation constants for the listing platforms. The defaults mirror
	// the rates and latency window the marketplaces were modelled with.
	OLXSuccessRate      float64       `envconfig:"OLX_SUCCESS_RATE" default:"0.90"`
	ZapSuccessRate      float64       `envconfig:"ZAP_SUCCESS_RATE" default:"0.85"`
	VivaRealSuccessRate float64       `envconfig:"VIVAREAL_SUCCESS_RATE" default:"0.80"`
	PlatformLatencyMin  time.Duration `envconfig:"PLATFORM_LATENCY_MIN" default:"1s"`
	PlatformLatencyMax  time.Duration `envconfig:"PLATFORM_LATENCY_MAX" default:"3s"`
}

func LoadConfig() (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		fmt.Printf("Warning: error loading .env file: %v\n", err)
	}

	config := &Config{}

	err = envconfig.Process("", config)
	if err != nil {
		return nil, fmt.Errorf("error processing envconfig: %w", err)
	}

	return config, nil
}
