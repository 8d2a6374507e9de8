package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/scitags/rtquery/types"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.PersistentFlags().StringVar(&confPath, "conf", "", "path to the configuration file")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "info", "log level: trace, debug, info, warn or error")
	rootCmd.PersistentFlags().BoolVar(&logTimeFlag, "log-time", false, "include timestamps in the logs")
	rootCmd.PersistentFlags().StringVarP(&outputFlag, "output", "o", "json", "output format: json or yaml")
	rootCmd.PersistentFlags().StringVarP(&namespaceFlag, "namespace", "n", "", "network namespace name or path; overrides the configuration")
	rootCmd.PersistentFlags().StringVar(&resolverFlag, "resolver", "", "interface name resolver: rtnl, handle or net; overrides the configuration")
}

var (
	rootCmd = &cobra.Command{
		Use:   "rtquery",
		Short: "Query the kernel's interfaces, addresses and routes over rtnetlink.",
		Long: "rtquery dumps the network interfaces, interface addresses and routes known to the kernel\n" +
			"through rtnetlink and prints them as JSON or YAML. It can also serve them over HTTP.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logLevel, ok := types.LogLevelMap[logLevelFlag]
			if !ok {
				return fmt.Errorf("wrong log level %q", logLevelFlag)
			}

			if _, ok := outputMap[outputFlag]; !ok {
				return fmt.Errorf("wrong output format %q", outputFlag)
			}

			logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				AddSource:   true,
				Level:       logLevel,
				ReplaceAttr: logReplacements,
			}))
			slog.SetDefault(logger)

			return nil
		},
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Get the built version.",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("built commit: %s\nbase version: %s\n", builtCommit, baseVersion)
		},
	}

	confPath      string
	logLevelFlag  string
	logTimeFlag   bool
	outputFlag    string
	namespaceFlag string
	resolverFlag  string

	builtCommit = "dev"
	baseVersion = "dev"
)

func init() {
	// Disable completion please!
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	// Add the different sub-commands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(interfacesCmd)
	rootCmd.AddCommand(addressesCmd)
	rootCmd.AddCommand(routesCmd)
	rootCmd.AddCommand(serveCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
