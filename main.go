package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"goldilocks/cmd"
	"goldilocks/internal/logging"

	"go.uber.org/zap"
)

// main is the entry point of the application.
func main() {
	level := zap.NewAtomicLevelAt(zap.InfoLevel)
	logger, err := logging.New(level, "console")
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer logger.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	done := make(chan struct{})
	go func() {
		defer close(done)
		cmd.Execute(ctx, logger, level)
	}()

	select {
	case <-done:
	case sig := <-sigChan:
		logger.Info("received shutdown signal", zap.String("signal", sig.String()))
		cancel()

		select {
		case <-done:
			logger.Info("shutdown completed")
		case <-time.After(5 * time.Second):
			logger.Warn("shutdown timed out")
		}
		os.Exit(1)
	}
}
