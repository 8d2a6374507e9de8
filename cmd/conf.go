package main

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/scitags/rtquery/api"
	"github.com/scitags/rtquery/metrics"
	"github.com/scitags/rtquery/rtnl"
)

type Config struct {
	Rtnl    *rtnl.Config    `yaml:"rtnl"`
	Api     *api.Config     `yaml:"api"`
	Metrics *metrics.Config `yaml:"metrics"`
}

func (c Config) String() string {
	m, err := yaml.MarshalWithOptions(c, yaml.Indent(2), yaml.IndentSequence(true))
	if err != nil {
		return "marshalling error..."
	}
	return string(m)
}

// defaultConfig holds copies of every section's defaults.
func defaultConfig() Config {
	rc, ac, mc := rtnl.DefaultConfig, api.DefaultConfig, metrics.DefaultConfig
	return Config{Rtnl: &rc, Api: &ac, Metrics: &mc}
}

func (c *Config) UnmarshalYAML(b []byte) error {
	// Needed to break recursive calls into UnmarshalYAML
	type config Config

	def := config(defaultConfig())

	if err := yaml.Unmarshal(b, &def); err != nil {
		return err
	}

	*c = Config(def)

	return nil
}

// ReadConf parses the configuration at path. An empty path yields the
// defaults.
func ReadConf(path string) (*Config, error) {
	if path == "" {
		conf := defaultConfig()
		return &conf, nil
	}

	r, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading the configuration file: %w", err)
	}

	conf := Config{}
	if err := yaml.Unmarshal(r, &conf); err != nil {
		return nil, fmt.Errorf("error unmarshaling the configuration: %w", err)
	}

	return &conf, nil
}
