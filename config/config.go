package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// NATSConfig addresses one bot's durable command queue
type NATSConfig struct {
	URL          string
	StreamName   string
	Subject      string
	ConsumerName string
}

// IsConfigured returns true if all required NATS configuration is present
func (c NATSConfig) IsConfigured() bool {
	return c.URL != "" &&
		c.StreamName != "" &&
		c.Subject != "" &&
		c.ConsumerName != ""
}

// NotificationsConfig holds the Pinpoint wiring for the raid-alert fan-out
type NotificationsConfig struct {
	PinpointApplicationID string
	OriginationNumber     string
}

// IsConfigured returns true if all required notification configuration is present
func (c NotificationsConfig) IsConfigured() bool {
	return c.PinpointApplicationID != "" &&
		c.OriginationNumber != ""
}

type AppConfig struct {
	// Core configuration (always required)
	DatabaseURL    string
	DatabaseSchema string
	BotSecretName  string
	Port           string // Optional with default "8080"
	Environment    string

	NATSConfig          NATSConfig
	NotificationsConfig NotificationsConfig

	// WorkerBatchSize caps how many queued commands one fetch pulls
	WorkerBatchSize int
}

func LoadConfig() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		fmt.Println("⚠️ Could not load .env file, continuing with system env vars")
	}

	databaseURL, err := getEnvRequired("DB_URL")
	if err != nil {
		return nil, err
	}

	databaseSchema, err := getEnvRequired("DB_SCHEMA")
	if err != nil {
		return nil, err
	}

	botSecretName, err := getEnvRequired("BOT_SECRET_NAME")
	if err != nil {
		return nil, err
	}

	natsURL, err := getEnvRequired("NATS_URL")
	if err != nil {
		return nil, err
	}

	batchSize, err := strconv.Atoi(getEnvWithDefault("WORKER_BATCH_SIZE", "10"))
	if err != nil || batchSize < 1 {
		return nil, fmt.Errorf("WORKER_BATCH_SIZE must be a positive integer")
	}

	config := &AppConfig{
		DatabaseURL:    databaseURL,
		DatabaseSchema: databaseSchema,
		BotSecretName:  botSecretName,
		Port:           getEnvWithDefault("PORT", "8080"),
		Environment:    getEnvWithDefault("ENVIRONMENT", "dev"),

		NATSConfig: NATSConfig{
			URL:          natsURL,
			StreamName:   getEnvWithDefault("NATS_STREAM_NAME", "COMMANDS"),
			Subject:      getEnvWithDefault("NATS_SUBJECT", "commands.interactions"),
			ConsumerName: getEnvWithDefault("NATS_CONSUMER_NAME", "command-worker"),
		},
		NotificationsConfig: NotificationsConfig{
			PinpointApplicationID: getEnvWithDefault("PINPOINT_APP_ID", ""),
			OriginationNumber:     getEnvWithDefault("ORIGINATION_NUMBER", ""),
		},
		WorkerBatchSize: batchSize,
	}

	return config, nil
}

func getEnvRequired(key string) (string, error) {
	value := os.Getenv(key)
	if value == "" {
		return "", fmt.Errorf("%s is not set", key)
	}
	return value, nil
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
