// Package config loads service configuration from the environment, with an
// optional .env file for local development.
package config

import (
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds every tunable of the hub.
type Config struct {
	Port        string `envconfig:"PORT" default:"8083"`
	HistoryFile string `envconfig:"HISTORY_FILE" default:"data/messages.json"`
	UploadDir   string `envconfig:"UPLOAD_DIR" default:"uploads"`
	PublicDir   string `envconfig:"PUBLIC_DIR" default:"public"`
	ReplayLimit int    `envconfig:"REPLAY_LIMIT" default:"50"`

	AMQPURL      string `envconfig:"AMQP_URL"`
	AMQPExchange string `envconfig:"AMQP_EXCHANGE" default:"hub.audit"`
	OTLPEndpoint string `envconfig:"OTLP_ENDPOINT"`
	Environment  string `envconfig:"ENVIRONMENT" default:"dev"`
}

// Load reads the optional .env file and then the process environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
