// Package cli wires the whalewatch commands into a urfave/cli application.
package cli

import (
	"context"
	"os"

	"github.com/fmarchini/whalewatch/internal/chainsync"
	"github.com/fmarchini/whalewatch/internal/pricefeed"

	"github.com/urfave/cli/v3"
)

// Services bundles everything the commands need.
type Services struct {
	Sync  chainsync.Service // the polling pipeline
	Chain chainsync.Chain   // direct tip access for the tip command
	Rates pricefeed.Service // rate access for the threshold command

	FiatThreshold         float64
	FallbackThresholdSats uint64
}

// Run builds and executes the whalewatch CLI application.
//
// Commands:
//
//   - `start`: runs the watch pipeline until interrupted.
//   - `tip`: prints the node's current chain tip.
//   - `threshold`: prints the currently effective alert threshold.
func Run(ctx context.Context, svcs Services) error {
	app := &cli.Command{
		EnableShellCompletion: true,
		Name:                  "whalewatch",
		Description:           "Watches the chain for transactions above a fiat threshold and alerts a Telegram chat.",
		Usage:                 "whalewatch [command] [flags]",
		Commands: []*cli.Command{
			startCommand(svcs.Sync),
			tipCommand(svcs.Chain),
			thresholdCommand(svcs.Rates, svcs.FiatThreshold, svcs.FallbackThresholdSats),
		},
	}

	return app.Run(ctx, os.Args)
}
