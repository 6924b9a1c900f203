package cli

// #region imports
import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"

	"github.com/adacomputing/ada-engine/internal/codec"
	"github.com/adacomputing/ada-engine/internal/server"
)

// #endregion

// #region serve

func newServeCmd(a *app) *cobra.Command {
	var httpAddr, grpcAddr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and, when configured, the insight gRPC service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if httpAddr != "" {
				a.cfg.HTTPAddr = httpAddr
			}
			if grpcAddr != "" {
				a.cfg.GRPCAddr = grpcAddr
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.serve(ctx)
		},
	}
	cmd.Flags().StringVar(&httpAddr, "http", "", "HTTP listen address (overrides http_addr)")
	cmd.Flags().StringVar(&grpcAddr, "grpc", "", "insight gRPC listen address (overrides grpc_addr)")
	return cmd
}

// serve runs the servers until ctx is done or one of them fails.
func (a *app) serve(ctx context.Context) error {
	orch, err := a.engine(ctx)
	if err != nil {
		return err
	}
	httpSrv := server.New(server.Config{
		Orchestrator: orch,
		Ledger:       a.store,
		Gatherer:     a.registry,
		Logger:       a.logger,
		Version:      a.version,
	})

	var (
		gs *grpc.Server
		gl net.Listener
	)
	if a.cfg.GRPCAddr != "" {
		if a.insight == nil {
			return fmt.Errorf("grpc_addr is set but no insight provider is configured")
		}
		gl, err = net.Listen("tcp", a.cfg.GRPCAddr)
		if err != nil {
			return fmt.Errorf("listen %s: %w", a.cfg.GRPCAddr, err)
		}
		gs = grpc.NewServer()
		codec.RegisterInsightServer(gs, codec.NewInsightServer(a.insight))
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return httpSrv.ListenAndServe(gctx, a.cfg.HTTPAddr)
	})
	if gs != nil {
		g.Go(func() error {
			a.logger.Info("insight gRPC service listening", "addr", gl.Addr().String())
			return gs.Serve(gl)
		})
		g.Go(func() error {
			<-gctx.Done()
			gs.GracefulStop()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	a.logger.Info("servers stopped")
	return nil
}

// #endregion
