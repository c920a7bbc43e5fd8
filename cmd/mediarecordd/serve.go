package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/blockberries/mediarecord/config"
	mediagrpc "github.com/blockberries/mediarecord/grpc"
	"github.com/blockberries/mediarecord/metrics"
	"github.com/blockberries/mediarecord/program"
	"github.com/blockberries/mediarecord/runtime"
	"github.com/blockberries/mediarecord/types"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"google.golang.org/grpc"
)

func newServeCmd() *cobra.Command {
	var genesis bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the runtime over gRPC",
		Long: `Start the development runtime with settings from MEDIARECORD_*
environment variables. With --genesis the runtime loads an empty
genesis at startup; otherwise the first client must call Genesis.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg, genesis)
		},
	}
	cmd.Flags().BoolVar(&genesis, "genesis", true, "load an empty genesis at startup")
	return cmd
}

func serve(ctx context.Context, cfg config.Config, genesis bool) error {
	programID, err := cfg.Program()
	if err != nil {
		return err
	}
	rt := runtime.New(
		runtime.WithProgram(programID, program.New()),
		runtime.WithRent(cfg.Rent()),
	)
	if genesis {
		res, err := rt.Genesis(ctx, types.GenesisDoc{
			ChainID:     cfg.ChainID,
			GenesisTime: types.TimeToTimestamp(time.Now().UTC()),
		})
		if err != nil {
			return fmt.Errorf("genesis: %w", err)
		}
		log.Printf("mediarecordd: genesis state hash %x", res.StateHash)
	}

	reg := prometheus.NewRegistry()
	conn := metrics.Instrument(rt, metrics.NewMetrics(reg))

	lis, err := net.Listen("tcp", cfg.ListenAddr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", cfg.ListenAddr, err)
	}
	gs := grpc.NewServer()
	mediagrpc.NewGRPCServer(conn).Register(gs)

	var hs *http.Server
	if cfg.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		hs = &http.Server{Addr: cfg.MetricsAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
		go func() {
			log.Printf("mediarecordd: metrics on %s/metrics", cfg.MetricsAddr)
			if err := hs.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Printf("mediarecordd: metrics server: %v", err)
			}
		}()
	}

	go func() {
		<-ctx.Done()
		log.Printf("mediarecordd: shutting down")
		if hs != nil {
			hs.Close()
		}
		gs.GracefulStop()
	}()

	log.Printf("mediarecordd: program %s serving on %s (chain %s)", programID, lis.Addr(), cfg.ChainID)
	if err := gs.Serve(lis); err != nil {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}
