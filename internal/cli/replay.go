package cli

// #region imports
import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/adacomputing/ada-engine/internal/classifier"
	"github.com/adacomputing/ada-engine/internal/replay"
)

// ErrReplayFailed is returned when at least one replayed case drifted.
var ErrReplayFailed = errors.New("replay: cases failed")

// #endregion

// #region replay

func newReplayCmd(a *app) *cobra.Command {
	var workers int
	cmd := &cobra.Command{
		Use:   "replay <fixture.json>",
		Short: "Re-run a fixture of recorded queries and report drift",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := replay.LoadFixture(args[0])
			if err != nil {
				return err
			}
			p, err := a.provider(cmd.Context())
			if err != nil {
				return err
			}
			c := classifier.New(p, classifier.WithLogger(a.logger))
			results := replay.Replay(cmd.Context(), c, f.Cases, workers)
			summary := replay.Summarize(results)
			out := map[string]any{"results": results, "summary": summary}
			if err := a.emit(cmd.OutOrStdout(), out, renderReplay(results, summary)); err != nil {
				return err
			}
			if summary.Failed > 0 || summary.Total < len(f.Cases) {
				return fmt.Errorf("%w: %d of %d", ErrReplayFailed, len(f.Cases)-summary.Passed, len(f.Cases))
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&workers, "workers", "w", 4, "concurrent cases")
	cmd.AddCommand(newReplayExportCmd(a))
	return cmd
}

func newReplayExportCmd(a *app) *cobra.Command {
	var (
		last int
		out  string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the most recent solve entries as a replay fixture",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if out == "" {
				return errors.New("--out is required")
			}
			store, err := a.openStore()
			if err != nil {
				return err
			}
			entries, err := store.Recent(cmd.Context(), last)
			if err != nil {
				return err
			}
			f := replay.FromEntries(fmt.Sprintf("exported from %s", a.cfg.DBPath), entries)
			if len(f.Cases) == 0 {
				return fmt.Errorf("no solve entries in the last %d ledger rows", last)
			}
			if err := replay.WriteFixture(out, f); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d cases to %s\n", len(f.Cases), out)
			return nil
		},
	}
	cmd.Flags().IntVarP(&last, "last", "n", 50, "number of recent ledger rows to scan")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output fixture path")
	return cmd
}

// #endregion
