package rtnl

import (
	"log/slog"

	"github.com/goccy/go-yaml"
)

type Config struct {
	// Namespace is a network namespace name (as in ip-netns(8)) or an
	// absolute path to a namespace file. Empty means our own namespace.
	Namespace string `yaml:"namespace"`

	// Resolver picks the interface name resolution backend: rtnl, handle
	// or net.
	Resolver string `yaml:"resolver"`

	// Strict enables NETLINK_GET_STRICT_CHK so that the kernel itself
	// filters dumps on the request header.
	Strict bool `yaml:"strict"`

	// Log enables diagnostics on the default logger.
	Log bool `yaml:"log"`

	// Logger overrides the default logger when Log is set.
	Logger *slog.Logger `yaml:"-"`

	// Observer is notified about every dump session.
	Observer Observer `yaml:"-"`
}

var DefaultConfig = Config{
	Namespace: "",
	Resolver:  ResolverRtnl,
	Strict:    false,
	Log:       true,
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
