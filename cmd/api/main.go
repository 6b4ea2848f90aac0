package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"example.com/userdir/internal/app"
	"example.com/userdir/internal/config"
	"example.com/userdir/internal/log"
	"example.com/userdir/internal/server"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v := viper.New()
	cmd := &cobra.Command{
		Use:           "userdir",
		Short:         "User directory HTTP service backed by a JSON document",
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(v)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}
	cobra.CheckErr(config.BindFlags(cmd.Flags(), v))
	return cmd
}

func run(ctx context.Context, cfg config.Config) error {
	logger := log.New(os.Stderr, cfg.Env, cfg.LogLevel)

	a, err := app.New(cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	a.Run(ctx)

	ln, err := server.Listen(ctx, cfg.Host, cfg.Port, cfg.PortAttempts, logger)
	if err != nil {
		return err
	}
	logger.Info("server is running", "addr", ln.Addr().String(), "storage", cfg.Storage, "data", cfg.DataFile)

	srv := server.New(a.Router, logger)
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start(ln)
	}()
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(stop)
	select {
	case sig := <-stop:
		logger.Info("signal received, shutting down", "signal", sig.String())
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server: %w", err)
		}
		return nil
	}
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancelShutdown()
	if err := srv.Stop(shutdownCtx); err != nil {
		logger.Error("shutdown error", "err", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server: %w", err)
	}
	return nil
}
