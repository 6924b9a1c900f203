// Package cli implements the ada command line: one-shot solve and ask, the
// analysis helpers, ledger inspection, fixture replay, an interactive REPL
// and the server.
package cli

// #region imports
import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/adacomputing/ada-engine/internal/ada"
	"github.com/adacomputing/ada-engine/internal/classifier"
	"github.com/adacomputing/ada-engine/internal/config"
	"github.com/adacomputing/ada-engine/internal/insight"
	"github.com/adacomputing/ada-engine/internal/ledger"
	"github.com/adacomputing/ada-engine/internal/metrics"
	"github.com/adacomputing/ada-engine/internal/orchestrator"
)

// #endregion

// #region app

// app carries state shared by the commands of one invocation.
type app struct {
	version      string
	configPath   string
	providerFlag string
	dbPath       string
	logLevel     string
	jsonOut      bool

	cfg      config.Config
	logger   *slog.Logger
	closeLog func() error

	registry *prometheus.Registry
	metrics  *metrics.Metrics
	insight  insight.Provider
	haveProv bool
	store    *ledger.Store
	orch     *orchestrator.Orchestrator
	closers  []func() error
}

// setup loads configuration and logging. Flags override the file and the
// environment.
func (a *app) setup() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.providerFlag != "" {
		cfg.Provider = a.providerFlag
	}
	if a.dbPath != "" {
		cfg.DBPath = a.dbPath
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	a.cfg = cfg

	level, _ := config.ParseLevel(cfg.LogLevel)
	a.logger, a.closeLog = config.SetupLogger(cfg.LogFile, level)
	a.registry = prometheus.NewRegistry()
	a.metrics = metrics.New(a.registry)
	return nil
}

// openStore opens the ledger once.
func (a *app) openStore() (*ledger.Store, error) {
	if a.store != nil {
		return a.store, nil
	}
	s, err := ledger.NewStore(a.cfg.DBPath)
	if err != nil {
		return nil, err
	}
	a.store = s
	a.closers = append(a.closers, s.Close)
	return s, nil
}

// provider builds the insight provider once. It may be nil.
func (a *app) provider(ctx context.Context) (insight.Provider, error) {
	if a.haveProv {
		return a.insight, nil
	}
	p, closeFn, err := NewProvider(ctx, a.cfg, a.metrics)
	if err != nil {
		return nil, fmt.Errorf("create provider: %w", err)
	}
	a.closers = append(a.closers, closeFn)
	if p == nil {
		a.logger.Warn("no insight provider configured; delegated queries will degrade")
	}
	a.insight, a.haveProv = p, true
	return p, nil
}

// engine builds the provider, the ledger and the orchestrator once.
func (a *app) engine(ctx context.Context) (*orchestrator.Orchestrator, error) {
	if a.orch != nil {
		return a.orch, nil
	}
	p, err := a.provider(ctx)
	if err != nil {
		return nil, err
	}
	store, err := a.openStore()
	if err != nil {
		return nil, err
	}
	a.orch = orchestrator.New(orchestrator.Config{
		Classifier:   classifier.New(p, classifier.WithLogger(a.logger)),
		Engine:       ada.New(p, ada.WithLogger(a.logger)),
		Store:        store,
		Metrics:      a.metrics,
		Logger:       a.logger,
		HistoryLimit: a.cfg.HistoryLimit,
	})
	return a.orch, nil
}

// teardown releases everything opened by the command, in reverse order.
func (a *app) teardown() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}
	a.closers = nil
	if a.closeLog != nil {
		errs = append(errs, a.closeLog())
		a.closeLog = nil
	}
	return errors.Join(errs...)
}

// #endregion

// #region root

// NewRootCmd builds the ada command tree.
func NewRootCmd(version string) *cobra.Command {
	a := &app{version: version}

	root := &cobra.Command{
		Use:           "ada",
		Short:         "Tiered query classification and governed answers",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "version" {
				return nil
			}
			return a.setup()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&a.configPath, "config", "c", "", "YAML config file")
	pf.StringVarP(&a.providerFlag, "provider", "p", "", "insight provider: gemini, ollama, openai, anthropic, grpc or none")
	pf.StringVar(&a.dbPath, "db", "", "ledger database path")
	pf.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn or error")
	pf.BoolVar(&a.jsonOut, "json", false, "print JSON instead of styled text")

	root.AddCommand(
		newSolveCmd(a),
		newAskCmd(a),
		newAnalyzeCmd(a),
		newGlyphsCmd(a),
		newTrajectoryCmd(a),
		newHistoryCmd(a),
		newLexiconCmd(a),
		newReplayCmd(a),
		newReplCmd(a),
		newServeCmd(a),
		newVersionCmd(a),
	)
	releaseAfterRun(root, a)
	return root
}

// releaseAfterRun tears the app down after every RunE, including a failed one.
func releaseAfterRun(cmd *cobra.Command, a *app) {
	for _, c := range cmd.Commands() {
		if run := c.RunE; run != nil {
			c.RunE = func(cmd *cobra.Command, args []string) error {
				return errors.Join(run(cmd, args), a.teardown())
			}
		}
		releaseAfterRun(c, a)
	}
}

// Execute runs the command tree with os.Args.
func Execute(ctx context.Context, version string) error {
	return NewRootCmd(version).ExecuteContext(ctx)
}

// #endregion
