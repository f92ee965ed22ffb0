package config

import (
	"fmt"
	"time"
)

// ClientConfig is the configuration view used by the interactive client.
type ClientConfig struct {
	App     App
	Adapter Adapter
	Storage Storage
	Workers Workers
}

// DevServerConfig is the configuration view used by the development backend.
type DevServerConfig struct {
	Address      string
	TokenSignKey string
	TokenTTL     time.Duration
	Latency      time.Duration
}

// GetClientConfig builds and validates the client configuration from args
// (without the program name) and the process environment.
func GetClientConfig(args []string) (*ClientConfig, error) {
	cfg, err := GetStructuredConfig(args)
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := &ClientConfig{
		App:     cfg.App,
		Adapter: cfg.Adapter,
		Storage: cfg.Storage,
		Workers: cfg.Workers,
	}

	return clientCfg, clientCfg.validate()
}

// GetDevServerConfig builds and validates the development backend
// configuration. The dev server always issues tokens the way the mock
// backend does, so it reuses the App mock settings.
func GetDevServerConfig(args []string) (*DevServerConfig, error) {
	cfg, err := GetStructuredConfig(args)
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	devCfg := &DevServerConfig{
		Address:      cfg.DevServer.Address,
		TokenSignKey: cfg.App.TokenSignKey,
		TokenTTL:     cfg.App.MockTokenTTL,
		Latency:      cfg.App.MockLatency,
	}

	return devCfg, devCfg.validate()
}
