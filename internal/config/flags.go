package config

import (
	"errors"
	"flag"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses the configuration flags from args (without the program
// name).
//
// Flags:
//
//	-a dev server listen address in format [host]:[port]
//	-adapter-address auth backend base URL
//	-request-timeout backend request timeout (e.g., "15s")
//	-d storage DSN
//	-slot-key storage key of the session snapshot
//	-mock use the in-process mock backend
//	-token-sign-key mock token signing key
//	-mock-token-ttl mock token lifetime (e.g., "24h")
//	-mock-latency simulated mock backend latency (e.g., "500ms")
//	-expiry-check-interval token expiry check interval (e.g., "1m")
//	-c/-config json file path with configs
func ParseFlags(args []string) (*StructuredConfig, error) {
	var devServerAddress NetAddress
	var adapterAddress string
	var requestTimeout time.Duration
	var dsn string
	var slotKey string
	var mock bool
	var tokenSignKey string
	var mockTokenTTL time.Duration
	var mockLatency time.Duration
	var expiryCheckInterval time.Duration
	var jsonConfigPath string

	fs := flag.NewFlagSet("bullbear", flag.ContinueOnError)
	fs.Var(&devServerAddress, "a", "Dev server net address host:port")
	fs.StringVar(&adapterAddress, "adapter-address", "", "Auth backend base URL")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Backend request timeout (e.g., 15s)")
	fs.StringVar(&dsn, "d", "", "Storage DSN")
	fs.StringVar(&slotKey, "slot-key", "", "Storage key of the session snapshot")
	fs.BoolVar(&mock, "mock", false, "Use the in-process mock backend")
	fs.StringVar(&tokenSignKey, "token-sign-key", "", "Mock token signing key")
	fs.DurationVar(&mockTokenTTL, "mock-token-ttl", 0, "Mock token lifetime (e.g., 24h)")
	fs.DurationVar(&mockLatency, "mock-latency", 0, "Simulated mock backend latency (e.g., 500ms)")
	fs.DurationVar(&expiryCheckInterval, "expiry-check-interval", 0, "Token expiry check interval (e.g., 1m)")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	return &StructuredConfig{
		App: App{
			Mock:         mock,
			TokenSignKey: tokenSignKey,
			MockTokenTTL: mockTokenTTL,
			MockLatency:  mockLatency,
		},
		Adapter: Adapter{
			HTTPAddress:    adapterAddress,
			RequestTimeout: requestTimeout,
		},
		Storage: Storage{
			DSN:     dsn,
			SlotKey: slotKey,
		},
		Workers: Workers{
			ExpiryCheckInterval: expiryCheckInterval,
		},
		DevServer: DevServer{
			Address: devServerAddress.String(),
		},
		JSONFilePath: jsonConfigPath,
	}, nil
}

// String returns a canonical host:port string for a NetAddress, or an empty
// string when neither part is set.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range and checks IP correctness unless host is
// "localhost".
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 || port > 65535 {
		return errors.New("port number must be in range 1..65535")
	}

	if host != "localhost" {
		if ip := net.ParseIP(host); ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
