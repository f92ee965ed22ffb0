package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validClientConfig() *ClientConfig {
	d := defaults()
	return &ClientConfig{App: d.App, Adapter: d.Adapter, Storage: d.Storage, Workers: d.Workers}
}

func TestClientConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ClientConfig)
		want   error
	}{
		{name: "defaults are valid", mutate: func(*ClientConfig) {}},
		{name: "empty dsn", mutate: func(c *ClientConfig) { c.Storage.DSN = "" }, want: ErrInvalidStorageConfigs},
		{name: "empty slot key", mutate: func(c *ClientConfig) { c.Storage.SlotKey = "" }, want: ErrInvalidStorageConfigs},
		{name: "no backend address", mutate: func(c *ClientConfig) { c.Adapter.HTTPAddress = "" }, want: ErrInvalidAdapterConfigs},
		{name: "mock ignores backend address", mutate: func(c *ClientConfig) {
			c.App.Mock = true
			c.Adapter.HTTPAddress = ""
		}},
		{name: "mock without sign key", mutate: func(c *ClientConfig) {
			c.App.Mock = true
			c.App.TokenSignKey = ""
		}, want: ErrInvalidAppConfigs},
		{name: "negative latency", mutate: func(c *ClientConfig) {
			c.App.Mock = true
			c.App.MockLatency = -time.Second
		}, want: ErrInvalidAppConfigs},
		{name: "zero expiry interval", mutate: func(c *ClientConfig) { c.Workers.ExpiryCheckInterval = 0 }, want: ErrInvalidWorkerConfigs},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validClientConfig()
			tt.mutate(cfg)
			err := cfg.validate()
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestDevServerConfig_Validate(t *testing.T) {
	cfg := &DevServerConfig{Address: "localhost:5000", TokenSignKey: "k", TokenTTL: time.Hour}
	assert.NoError(t, cfg.validate())

	cfg.Address = ""
	assert.ErrorIs(t, cfg.validate(), ErrInvalidDevServerConfigs)
}
