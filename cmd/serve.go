package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/scitags/rtquery/api"
	"github.com/scitags/rtquery/metrics"
	"github.com/scitags/rtquery/rtnl"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the dumps over HTTP together with Prometheus metrics.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		conf, rc, err := clientConfig()
		if err != nil {
			return err
		}
		slog.Debug("running with configuration", "conf", conf.String())

		obs, err := metrics.NewObserver(conf.Metrics)
		if err != nil {
			return fmt.Errorf("error creating the prometheus observer: %w", err)
		}
		rc.Observer = obs

		c, err := rtnl.NewClient(rc)
		if err != nil {
			return fmt.Errorf("error creating the rtnetlink client: %w", err)
		}
		defer func() {
			if err := c.Close(); err != nil {
				slog.Error("error closing the rtnetlink client", "err", err)
			}
		}()

		server := api.New(conf.Api, c, obs.Handler())

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

		doneChan := make(chan struct{})
		errChan := make(chan error, 1)
		go func() { errChan <- server.Run(doneChan) }()

		select {
		case sig := <-sigChan:
			slog.Info("caught signal, shutting down", "signal", sig)
			close(doneChan)
		case err := <-errChan:
			return err
		}

		if err := server.Cleanup(); err != nil {
			slog.Error("error cleaning up the api server", "err", err)
		}

		return nil
	},
}
