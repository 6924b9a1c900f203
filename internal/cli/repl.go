package cli

// #region imports
import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/adacomputing/ada-engine/internal/ada"
	"github.com/adacomputing/ada-engine/internal/mechanics"
	"github.com/adacomputing/ada-engine/internal/orchestrator"
)

// #endregion

const replHelp = `Type a question to ask it in the current session.
  /solve <query>     classify without the conversation
  /analyze <word>    glyph breakdown
  /level <level>     ELI5, STANDARD or TECHNICAL
  /session <id>      switch session
  /history           show the session's turns
  /reset             forget the session's turns
  quit               leave
`

// #region repl

func newReplCmd(a *app) *cobra.Command {
	var (
		session string
		level   string
	)
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Interactive session: ask questions, solve queries and analyze words",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			complexity, ok := ada.ParseComplexity(level)
			if !ok {
				return fmt.Errorf("unknown complexity %q", level)
			}
			orch, err := a.engine(cmd.Context())
			if err != nil {
				return err
			}
			r := &repl{app: a, orch: orch, session: session, level: complexity, out: cmd.OutOrStdout()}
			return r.run(cmd.Context(), cmd.InOrStdin())
		},
	}
	cmd.Flags().StringVarP(&session, "session", "s", orchestrator.DefaultSession, "starting session")
	cmd.Flags().StringVarP(&level, "level", "l", string(ada.ComplexityStandard), "starting complexity")
	return cmd
}

type repl struct {
	app     *app
	orch    *orchestrator.Orchestrator
	session string
	level   ada.Complexity
	out     io.Writer
}

func (r *repl) run(ctx context.Context, in io.Reader) error {
	fmt.Fprintln(r.out, titleStyle.Render("Ada ready."))
	fmt.Fprintf(r.out, "  session: %s | level: %s | provider: %s\n", r.session, r.level, r.app.cfg.Provider)
	fmt.Fprintln(r.out, mutedStyle.Render("Type /help for commands, quit to exit."))

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(r.out, "> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			break
		}
		if err := r.handle(ctx, line); err != nil {
			fmt.Fprintln(r.out, errorStyle.Render(err.Error()))
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
	return scanner.Err()
}

func (r *repl) handle(ctx context.Context, line string) error {
	if !strings.HasPrefix(line, "/") {
		tctx, cancel := context.WithTimeout(ctx, requestTimeout(r.app.cfg))
		defer cancel()
		return r.app.emitReport(r.out, r.orch.Ask(tctx, r.session, line, r.level))
	}

	name, arg, _ := strings.Cut(strings.TrimPrefix(line, "/"), " ")
	arg = strings.TrimSpace(arg)
	switch strings.ToLower(name) {
	case "help":
		fmt.Fprint(r.out, replHelp)
	case "solve":
		if arg == "" {
			return fmt.Errorf("usage: /solve <query>")
		}
		tctx, cancel := context.WithTimeout(ctx, requestTimeout(r.app.cfg))
		defer cancel()
		return r.app.emitReport(r.out, r.orch.Solve(tctx, arg))
	case "analyze":
		if arg == "" {
			return fmt.Errorf("usage: /analyze <word>")
		}
		a := mechanics.Analyze(arg)
		return r.app.emit(r.out, a, renderAnalysis(a))
	case "level":
		l, ok := ada.ParseComplexity(arg)
		if !ok {
			return fmt.Errorf("unknown complexity %q", arg)
		}
		r.level = l
		fmt.Fprintf(r.out, "level: %s\n", l)
	case "session":
		if arg == "" {
			return fmt.Errorf("usage: /session <id>")
		}
		r.session = arg
		fmt.Fprintf(r.out, "session: %s\n", arg)
	case "history":
		for _, m := range r.orch.History(ctx, r.session) {
			fmt.Fprintf(r.out, "%s: %s\n", labelStyle.Render(string(m.Role)), m.Text)
		}
	case "reset":
		r.orch.ResetSession(r.session)
		fmt.Fprintf(r.out, "session %s reset\n", r.session)
	default:
		return fmt.Errorf("unknown command /%s", name)
	}
	return nil
}

// #endregion
