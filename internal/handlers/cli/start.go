package cli

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/fmarchini/whalewatch/internal/chainsync"

	"github.com/urfave/cli/v3"
)

// startCommand returns the command that runs the watch pipeline until it
// receives SIGINT or SIGTERM, or until the pipeline fails fatally (a
// checkpoint write failure stops the process rather than risking divergent
// progress).
//
// Usage example:
//
//	whalewatch start
func startCommand(sync chainsync.Service) *cli.Command {
	return &cli.Command{
		Name:        "start",
		Description: "Starts the block watch pipeline: polling, scanning, alerting.",
		Usage:       "Runs until Ctrl+C or a termination signal.",
		Action: func(ctx context.Context, c *cli.Command) error {
			ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if err := sync.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}

			return nil
		},
	}
}
