package main

import (
	"fmt"
	"log/slog"

	"github.com/scitags/rtquery/rtnl"
	"github.com/scitags/rtquery/types"
	"github.com/spf13/cobra"
)

func init() {
	for _, cmd := range []*cobra.Command{addressesCmd, routesCmd} {
		cmd.Flags().BoolP("ipv4", "4", false, "only query IPv4")
		cmd.Flags().BoolP("ipv6", "6", false, "only query IPv6")
		cmd.MarkFlagsMutuallyExclusive("ipv4", "ipv6")
	}
}

var (
	interfacesCmd = &cobra.Command{
		Use:     "interfaces",
		Aliases: []string{"links"},
		Short:   "Dump the network interfaces.",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(func(c *rtnl.Client) error {
				set, err := c.Interfaces()
				if err != nil {
					return err
				}
				return render(cmd.OutOrStdout(), outputFlag, set)
			})
		},
	}

	addressesCmd = &cobra.Command{
		Use:     "addresses",
		Aliases: []string{"addrs"},
		Short:   "Dump the interface addresses.",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(func(c *rtnl.Client) error {
				recs, err := perFamily(cmd, c.Addresses)
				if err != nil {
					return err
				}
				return render(cmd.OutOrStdout(), outputFlag, recs)
			})
		},
	}

	routesCmd = &cobra.Command{
		Use:   "routes",
		Short: "Dump the routes across every routing table.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(func(c *rtnl.Client) error {
				recs, err := perFamily(cmd, c.Routes)
				if err != nil {
					return err
				}
				return render(cmd.OutOrStdout(), outputFlag, recs)
			})
		},
	}
)

// families returns the families selected through -4 and -6; both when
// neither is given.
func families(cmd *cobra.Command) []types.Family {
	v4, _ := cmd.Flags().GetBool("ipv4")
	v6, _ := cmd.Flags().GetBool("ipv6")

	switch {
	case v4:
		return []types.Family{types.V4}
	case v6:
		return []types.Family{types.V6}
	}
	return []types.Family{types.V4, types.V6}
}

// perFamily runs query once per selected family and concatenates the results
// in family order.
func perFamily[T comparable](cmd *cobra.Command, query func(types.Family) (*types.Set[T], error)) ([]T, error) {
	recs := []T{}
	for _, f := range families(cmd) {
		set, err := query(f)
		if err != nil {
			return nil, err
		}
		recs = append(recs, set.Values()...)
	}
	return recs, nil
}

// clientConfig merges the configuration file with the command line overrides.
func clientConfig() (*Config, *rtnl.Config, error) {
	conf, err := ReadConf(confPath)
	if err != nil {
		return nil, nil, err
	}
	slog.Debug("read the configuration", "path", confPath)

	rc := rtnl.DefaultConfig
	if conf.Rtnl != nil {
		rc = *conf.Rtnl
	}
	if namespaceFlag != "" {
		rc.Namespace = namespaceFlag
	}
	if resolverFlag != "" {
		rc.Resolver = resolverFlag
	}

	return conf, &rc, nil
}

func withClient(fn func(c *rtnl.Client) error) error {
	_, rc, err := clientConfig()
	if err != nil {
		return err
	}

	c, err := rtnl.NewClient(rc)
	if err != nil {
		return fmt.Errorf("error creating the rtnetlink client: %w", err)
	}
	defer func() {
		if err := c.Close(); err != nil {
			slog.Error("error closing the rtnetlink client", "err", err)
		}
	}()

	return fn(c)
}
