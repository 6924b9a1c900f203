package cli

// #region imports
import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/adacomputing/ada-engine/internal/ada"
	"github.com/adacomputing/ada-engine/internal/orchestrator"
)

// #endregion

// #region output

// emit writes v as indented JSON when --json is set, otherwise text.
func (a *app) emit(w io.Writer, v any, text string) error {
	if a.jsonOut {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	_, err := io.WriteString(w, text)
	return err
}

func (a *app) emitReport(w io.Writer, rep orchestrator.Report) error {
	return a.emit(w, rep, renderReport(rep))
}

// #endregion

// #region solve

func newSolveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "solve <query>",
		Short: "Classify a query through the rigid, cluster and delegated tiers",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			orch, err := a.engine(cmd.Context())
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout(a.cfg))
			defer cancel()
			rep := orch.Solve(ctx, strings.Join(args, " "))
			return a.emitReport(cmd.OutOrStdout(), rep)
		},
	}
}

// #endregion

// #region ask

func newAskCmd(a *app) *cobra.Command {
	var (
		session string
		level   string
	)
	cmd := &cobra.Command{
		Use:   "ask <query>",
		Short: "Answer a query with research, evaluation and governance scoring",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			complexity, ok := ada.ParseComplexity(level)
			if !ok {
				return fmt.Errorf("unknown complexity %q (want ELI5, STANDARD or TECHNICAL)", level)
			}
			orch, err := a.engine(cmd.Context())
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout(a.cfg))
			defer cancel()
			rep := orch.Ask(ctx, session, strings.Join(args, " "), complexity)
			return a.emitReport(cmd.OutOrStdout(), rep)
		},
	}
	cmd.Flags().StringVarP(&session, "session", "s", orchestrator.DefaultSession, "session whose history is used and extended")
	cmd.Flags().StringVarP(&level, "level", "l", string(ada.ComplexityStandard), "answer complexity: ELI5, STANDARD or TECHNICAL")
	return cmd
}

// #endregion
