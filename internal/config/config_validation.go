// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

func (cfg *ClientConfig) validate() error {
	if cfg.Storage.DSN == "" || cfg.Storage.SlotKey == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.App.Mock {
		if cfg.App.TokenSignKey == "" || cfg.App.MockTokenTTL <= 0 || cfg.App.MockLatency < 0 {
			return ErrInvalidAppConfigs
		}
	} else if cfg.Adapter.HTTPAddress == "" || cfg.Adapter.RequestTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Workers.ExpiryCheckInterval <= 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}

func (cfg *DevServerConfig) validate() error {
	if cfg.Address == "" {
		return ErrInvalidDevServerConfigs
	}

	if cfg.TokenSignKey == "" || cfg.TokenTTL <= 0 || cfg.Latency < 0 {
		return ErrInvalidAppConfigs
	}

	return nil
}
