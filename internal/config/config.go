package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all configuration for the application
type Config struct {
	// Application settings
	Port       string `envconfig:"PORT" default:"8080"`
	GinMode    string `envconfig:"GIN_MODE" default:"debug"`
	BaseURL    string `envconfig:"BASE_URL" default:"http://localhost:8080"`
	MongodbURL string `envconfig:"MONGODB_URL" required:"true"`
	ValkeyURL  string `envconfig:"VALKEY_URL" required:"true"`

	// Discord OAuth2 credentials
	DiscordClientID     string `envconfig:"DISCORD_CLIENT_ID" required:"true"`
	DiscordClientSecret string `envconfig:"DISCORD_CLIENT_SECRET" required:"true"`
	DiscordRedirectURL  string `envconfig:"DISCORD_REDIRECT_URL" required:"true"`

	// Secret used to sign the OAuth2 state parameter
	StateSecret string `envconfig:"STATE_SECRET" required:"true"`
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment: %w", err)
	}
	return &cfg, nil
}
