package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config parameterizes the serve subcommand. All fields can come from
// a YAML file; missing keys keep their defaults.
type Config struct {
	// Listen is the TCP address the console listens on.
	Listen string `yaml:"listen"`

	// Prompt overrides the engine's default prompt when non-empty.
	Prompt string `yaml:"prompt"`

	// Banner is printed to each client on connect when non-empty.
	Banner string `yaml:"banner"`

	// Telnet enables stripping of telnet IAC sequences from input.
	Telnet bool `yaml:"telnet"`

	// Poll is the engine polling interval.
	Poll time.Duration `yaml:"poll"`
}

func defaultConfig() Config {
	return Config{
		Listen: ":7001",
		Telnet: true,
		Poll:   10 * time.Millisecond,
	}
}

// loadConfig returns the defaults, overlaid with the YAML file at path
// when one is given.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	if path != "" {
		k := koanf.New(".")
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return cfg, fmt.Errorf("load config %q: %w", path, err)
		}
		if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "yaml"}); err != nil {
			return cfg, fmt.Errorf("parse config %q: %w", path, err)
		}
	}
	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Listen == "" {
		return errors.New("listen address is empty")
	}
	if c.Poll <= 0 {
		return fmt.Errorf("poll interval %s is not positive", c.Poll)
	}
	return nil
}
