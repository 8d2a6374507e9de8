package api

import (
	"github.com/goccy/go-yaml"
)

type Config struct {
	Log         bool   `yaml:"log"`
	BindAddress string `yaml:"bindAddress"`
	BindPort    uint16 `yaml:"bindPort"`

	// Metrics exposes the Prometheus registry under /metrics.
	Metrics bool `yaml:"metrics"`
}

var DefaultConfig = Config{
	Log:         true,
	BindAddress: "127.0.0.1",
	BindPort:    7777,
	Metrics:     true,
}

func (c *Config) UnmarshalYAML(b []byte) error {
	// Needed to break recursive calls into UnmarshalYAML
	type config Config

	def := config(DefaultConfig)

	if err := yaml.Unmarshal(b, &def); err != nil {
		return err
	}

	*c = Config(def)

	return nil
}
