package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/toastkit/internal/scenario"
	"github.com/dmitrymomot/toastkit/pkg/config"
	"github.com/dmitrymomot/toastkit/pkg/logger"
)

func newReplayCmd(loadOpts ...config.Option) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "replay <scenario.yaml>",
		Short: "Replay a scenario file and print the resulting views as JSON",
		Long: `Replays the steps of a YAML scenario against a fresh store driven by a
manual clock. Wait steps advance the clock and fire due auto-dismiss timers.
Snapshots and the final view are printed to stdout.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := setup(cmd, loadOpts...)
			if err != nil {
				return err
			}
			log := newLogger(cfg, logger.WithOutput(cmd.ErrOrStderr()))

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open scenario: %w", err)
			}
			defer f.Close()

			s, err := scenario.Decode(f)
			if err != nil {
				return err
			}

			res, err := scenario.Run(s,
				scenario.WithConfig(cfg.Toasts),
				scenario.WithLogger(log),
			)
			if err != nil {
				return err
			}
			log.Debug("scenario finished",
				logger.Count(len(res.Snapshots)),
				logger.Version(res.Final.Version),
			)

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if final, _ := cmd.Flags().GetBool("final"); final {
				return enc.Encode(res.Final)
			}
			return enc.Encode(res)
		},
	}
	cmd.Flags().Bool("final", false, "Print only the final view")
	return cmd
}
