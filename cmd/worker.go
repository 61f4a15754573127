package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

const sweepInterval = time.Hour

// sweepCmd purges revoked-token rows whose tokens would have expired anyway.
// The server runs the same loop in the background when revocations live in the database.
var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Purge expired token revocations",
	Long:  `Delete revoked session rows past their expiry. Runs once, or repeatedly with --every.`,
	Run: func(cmd *cobra.Command, args []string) {
		startSweeper()
	},
}

var sweepEvery time.Duration

func init() {
	sweepCmd.Flags().DurationVar(&sweepEvery, "every", 0, "Repeat the sweep at this interval until interrupted")
}

func startSweeper() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}
	defer deps.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if sweepEvery <= 0 {
		sweepOnce(ctx, deps)
		return
	}

	deps.Logger.Info("revocation sweeper running", "interval", sweepEvery)
	runRevocationSweeper(ctx, deps, sweepEvery)
	deps.Logger.Info("revocation sweeper stopped")
}

func runRevocationSweeper(ctx context.Context, deps *Dependencies, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			sweepOnce(ctx, deps)
		}
	}
}

func sweepOnce(ctx context.Context, deps *Dependencies) {
	n, err := deps.Sessions.PurgeExpired(ctx)
	if err != nil {
		deps.Logger.Error("failed to purge expired revocations", "error", err)
		return
	}
	deps.Logger.Info("expired revocations purged", "rows", n)
}
