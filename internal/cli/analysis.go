package cli

// #region imports
import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/adacomputing/ada-engine/internal/ada"
	"github.com/adacomputing/ada-engine/internal/glyph"
	"github.com/adacomputing/ada-engine/internal/mechanics"
)

// #endregion

// #region analyze

func newAnalyzeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "analyze <word>...",
		Short: "Break words into glyphs and report their structural profile",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			results := make([]mechanics.AnalysisResult, len(args))
			var text strings.Builder
			for i, w := range args {
				results[i] = mechanics.Analyze(w)
				text.WriteString(renderAnalysis(results[i]))
			}
			if len(results) == 1 {
				return a.emit(cmd.OutOrStdout(), results[0], text.String())
			}
			return a.emit(cmd.OutOrStdout(), results, text.String())
		},
	}
}

func newGlyphsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "glyphs",
		Short: "List the glyph table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			all := glyph.All()
			return a.emit(cmd.OutOrStdout(), all, renderGlyphs(all))
		},
	}
}

// #endregion

// #region trajectory

func newTrajectoryCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "trajectory <misconception>",
		Short: "Sample the confidence trajectory for a misconception score in [0, 1]",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := strconv.ParseFloat(args[0], 64)
			if err != nil || m < 0 || m > 1 {
				return fmt.Errorf("misconception must be a number in [0, 1], got %q", args[0])
			}
			points, closed := ada.Trajectory(m)
			out := map[string]any{"misconception": m, "points": points, "isClosed": closed}
			return a.emit(cmd.OutOrStdout(), out, renderTrajectory(m, points, closed))
		},
	}
}

// #endregion
