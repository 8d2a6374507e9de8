package metrics

import (
	"github.com/goccy/go-yaml"
)

type Config struct {
	Log bool `yaml:"log"`

	// Namespace prefixes every metric name.
	Namespace string `yaml:"namespace"`

	// GoCollectors adds the Go runtime and process collectors to the
	// registry.
	GoCollectors bool `yaml:"goCollectors"`
}

var DefaultConfig = Config{
	Log:          true,
	Namespace:    "rtquery",
	GoCollectors: false,
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
