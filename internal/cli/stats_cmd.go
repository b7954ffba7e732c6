package cli

import (
	"fmt"
	"time"

	"github.com/alexanderramin/tomato/internal/cli/formatter"
	"github.com/alexanderramin/tomato/internal/metrics"
	"github.com/spf13/cobra"
)

func newStatsCmd(app *App) *cobra.Command {
	var textfile string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show completed session counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := app.Stats.Get(cmd.Context())
			if err != nil {
				return err
			}

			if textfile != "" {
				rec := app.Metrics
				if rec == nil {
					rec = metrics.NewPrometheusRecorder(nil)
				}
				rec.SetStats(snap.Stats)
				if d, err := app.config().Durations(); err == nil {
					rec.SetDurations(d)
				}
				if err := rec.WriteTextfile(textfile); err != nil {
					return err
				}
			}

			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatStats(snap.Stats, snap.UpdatedAt, time.Now()))
			return nil
		},
	}

	cmd.Flags().StringVar(&textfile, "textfile", "", "also write the counters in Prometheus text format to this path")
	cmd.AddCommand(newStatsResetCmd(app))

	return cmd
}

func newStatsResetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Zero the persisted session counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			prev, err := app.Stats.Reset(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Stats reset (was %s).\n", formatter.FormatStatsLine(prev))
			return nil
		},
	}
}
