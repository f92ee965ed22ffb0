// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container. It is
// populated by merging values from environment variables, command-line
// flags and an optional JSON file, then filled with [defaults].
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App selects the authentication backend and tunes the mock one.
	App App `envPrefix:"APP_"`

	// Adapter holds the address and timeout of the HTTP auth backend.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Storage holds the durable key-value slot settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Workers holds background job settings.
	Workers Workers `envPrefix:"WORKERS_"`

	// DevServer holds the listen address of the local development backend.
	DevServer DevServer `envPrefix:"DEVSERVER_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level settings.
type App struct {
	// Mock replaces the HTTP backend with the in-process mock backend.
	// Env: APP_MOCK
	Mock bool `env:"MOCK"`

	// TokenSignKey signs the HS256 tokens issued by the mock backend.
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// MockTokenTTL is the lifetime of tokens issued by the mock backend.
	// Env: APP_MOCK_TOKEN_TTL
	MockTokenTTL time.Duration `env:"MOCK_TOKEN_TTL"`

	// MockLatency simulates a network round trip in the mock backend.
	// Env: APP_MOCK_LATENCY
	MockLatency time.Duration `env:"MOCK_LATENCY"`
}

// Adapter holds settings of the HTTP authentication backend.
type Adapter struct {
	// HTTPAddress is the backend base URL, with or without scheme
	// (e.g. "localhost:5000" or "https://api.example.com").
	// Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds a single outbound request (e.g. "15s").
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Storage holds settings of the durable key-value slot substrate.
type Storage struct {
	// DSN selects the backend: ":memory:", a "*.json" file, a
	// "postgres://" URL, or any other value as an SQLite file path.
	// Env: STORAGE_DSN
	DSN string `env:"DSN"`

	// SlotKey is the key under which the session snapshot is stored.
	// Env: STORAGE_SLOT_KEY
	SlotKey string `env:"SLOT_KEY"`
}

// Workers holds background job settings.
type Workers struct {
	// ExpiryCheckInterval is how often the session token expiry is checked.
	// Env: WORKERS_EXPIRY_CHECK_INTERVAL
	ExpiryCheckInterval time.Duration `env:"EXPIRY_CHECK_INTERVAL"`
}

// DevServer holds settings of the local development backend.
type DevServer struct {
	// Address is the listen address in "host:port" form.
	// Env: DEVSERVER_ADDRESS
	Address string `env:"ADDRESS"`
}

const (
	DefaultSlotKey = "auth-storage"
	DefaultDSN     = "bullbear.db"
)

// defaults returns the values used for every field left empty by all
// configuration sources.
func defaults() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			TokenSignKey: "bullbear-dev-sign-key",
			MockTokenTTL: 24 * time.Hour,
		},
		Adapter: Adapter{
			HTTPAddress:    "localhost:5000",
			RequestTimeout: 15 * time.Second,
		},
		Storage: Storage{
			DSN:     DefaultDSN,
			SlotKey: DefaultSlotKey,
		},
		Workers: Workers{
			ExpiryCheckInterval: time.Minute,
		},
		DevServer: DevServer{
			Address: "localhost:5000",
		},
	}
}

// GetStructuredConfig loads and merges the configuration from all sources in
// the following priority order (first non-zero value wins):
//  1. Environment variables
//  2. Command-line flags (args, without the program name)
//  3. JSON file (path resolved from sources 1 and 2)
//  4. Built-in defaults
func GetStructuredConfig(args []string) (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags(args).
		withJSON().
		build()
}
