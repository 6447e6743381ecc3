// Command watch polls market data and redraws a colored table in the terminal on every change.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/preston-bernstein/market-data-watch/internal/config"
	"github.com/preston-bernstein/market-data-watch/internal/logging"
	"github.com/preston-bernstein/market-data-watch/internal/poller"
	"github.com/preston-bernstein/market-data-watch/internal/present"
	"github.com/preston-bernstein/market-data-watch/internal/server"
	"github.com/preston-bernstein/market-data-watch/internal/state"
)

const (
	appName      = "market-data-watch"
	appVersion   = "dev"
	clearScreen  = "\033[H\033[2J"
	stopDeadline = 2 * time.Second
)

func main() {
	if os.Getenv("SKIP_SERVER_RUN") == "1" {
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "watch: %v\n", err)
		stop()
		os.Exit(1)
	}
}

// run drives one poller and redraws out on every published state until ctx ends.
// Logs go to logOut so they never interleave with the table.
func run(ctx context.Context, cfg config.Config, out, logOut io.Writer) error {
	logger := logging.NewLogger(logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: appName,
		Version: appVersion,
		Output:  logOut,
	})

	store := state.NewStore()
	plr := poller.New(server.NewProvider(cfg, logger, nil), store, logger, nil, cfg.PollInterval)

	updates, cancel := store.Subscribe()
	defer cancel()

	plr.Start(ctx)
	defer func() {
		stopCtx, cancelStop := context.WithTimeout(context.Background(), stopDeadline)
		defer cancelStop()
		if err := plr.Stop(stopCtx); err != nil {
			logging.Warn(logger, "poller did not stop in time", logging.FieldError, err)
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case st, ok := <-updates:
			if !ok {
				return nil
			}
			if _, err := io.WriteString(out, clearScreen+present.Render(st)); err != nil {
				return fmt.Errorf("render: %w", err)
			}
		}
	}
}
