package main

import (
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/toastkit/pkg/config"
)

// newRootCmd builds the command tree. loadOpts are passed to config.Load.
func newRootCmd(loadOpts ...config.Option) *cobra.Command {
	root := &cobra.Command{
		Use:           "toastdemo",
		Short:         "Replay and serve transient notifications",
		Long:          `toastdemo exercises the toast engine: replay scripted scenarios on a manual clock or run an HTTP playground with a live view stream.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String("log-level", "", "Override LOG_LEVEL (debug, info, warn, error)")

	root.AddCommand(newReplayCmd(loadOpts...), newServeCmd(loadOpts...))
	return root
}

// setup loads configuration and builds the logger for a subcommand.
func setup(cmd *cobra.Command, loadOpts ...config.Option) (appConfig, error) {
	cfg, err := loadConfig(loadOpts...)
	if err != nil {
		return appConfig{}, err
	}
	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.LogLevel = level
	}
	return cfg, nil
}
