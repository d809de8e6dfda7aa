package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/viant/thurgood"
	"go.uber.org/zap"
)

func main() {
	configURL := flag.String("c", "", "config URL (yaml)")
	addr := flag.String("addr", "", "listen address, overrides http.addr")
	dataURL := flag.String("data", "data", "base URL of the fs store and work queue")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	if err := run(ctx, *configURL, *dataURL, *addr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, configURL, dataURL, addr string) error {
	cfg := thurgood.ServeConfig(dataURL)
	if configURL != "" {
		var err error
		if cfg, err = thurgood.LoadServeConfig(ctx, nil, configURL, dataURL); err != nil {
			return err
		}
	}
	if addr != "" {
		cfg.HTTP.Addr = addr
	}
	if err := cfg.ValidateServe(); err != nil {
		return err
	}
	srv, err := thurgood.New(ctx, thurgood.WithConfig(cfg))
	if err != nil {
		return err
	}
	logger := srv.Logger()
	defer func() { _ = logger.Sync() }()
	if listener := srv.ListenEvents(ctx, nil); listener != nil {
		defer listener.Stop()
	}

	server := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", cfg.HTTP.Addr), zap.String("prefix", cfg.HTTP.Prefix))
		errCh <- server.ListenAndServe()
	}()

	select {
	case err = <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	logger.Info("shutting down")
	return server.Shutdown(shutdownCtx)
}
