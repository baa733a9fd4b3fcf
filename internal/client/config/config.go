// Package config handles configuration for the client component.
package config

import (
	"flag"
	"os"
)

// Config holds runtime settings for the Passport CLI client.
type Config struct {
	ServerAddr string
	Token      string
}

// Load builds the client Config from defaults, environment variables and
// command-line flags, and returns the remaining positional arguments
// (the command and its arguments).
func Load(args []string) (*Config, []string, error) {
	cfg := &Config{
		ServerAddr: "http://localhost:8080",
	}

	if v, ok := os.LookupEnv("PASSPORT_SERVER"); ok {
		cfg.ServerAddr = v
	}
	if v, ok := os.LookupEnv("PASSPORT_TOKEN"); ok {
		cfg.Token = v
	}

	fs := flag.NewFlagSet("passport", flag.ContinueOnError)
	fs.StringVar(&cfg.ServerAddr, "s", cfg.ServerAddr, "server base URL")
	fs.StringVar(&cfg.Token, "t", cfg.Token, "bearer token for authenticated commands")

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return cfg, fs.Args(), nil
}
