package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] in the JSON file layout.
// Durations are written as strings such as "15s".
type StructuredJSONConfig struct {
	App struct {
		Mock         bool     `json:"mock"`
		TokenSignKey string   `json:"token_sign_key"`
		MockTokenTTL Duration `json:"mock_token_ttl"`
		MockLatency  Duration `json:"mock_latency"`
	} `json:"app"`

	Adapter struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"adapter"`

	Storage struct {
		DSN     string `json:"dsn"`
		SlotKey string `json:"slot_key"`
	} `json:"storage"`

	Workers struct {
		ExpiryCheckInterval Duration `json:"expiry_check_interval"`
	} `json:"workers"`

	DevServer struct {
		Address string `json:"address"`
	} `json:"dev_server"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	return &StructuredConfig{
		App: App{
			Mock:         jsonCfg.App.Mock,
			TokenSignKey: jsonCfg.App.TokenSignKey,
			MockTokenTTL: time.Duration(jsonCfg.App.MockTokenTTL),
			MockLatency:  time.Duration(jsonCfg.App.MockLatency),
		},
		Adapter: Adapter{
			HTTPAddress:    jsonCfg.Adapter.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Adapter.RequestTimeout),
		},
		Storage: Storage{
			DSN:     jsonCfg.Storage.DSN,
			SlotKey: jsonCfg.Storage.SlotKey,
		},
		Workers: Workers{
			ExpiryCheckInterval: time.Duration(jsonCfg.Workers.ExpiryCheckInterval),
		},
		DevServer: DevServer{
			Address: jsonCfg.DevServer.Address,
		},
	}, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling
// from strings like "1h", "30s" as well as raw nanosecond numbers.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return fmt.Errorf("invalid duration %s", string(b))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
