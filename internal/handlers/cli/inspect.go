package cli

import (
	"context"
	"fmt"

	"github.com/fmarchini/whalewatch/internal/chainsync"
	"github.com/fmarchini/whalewatch/internal/pkg/units"
	"github.com/fmarchini/whalewatch/internal/pricefeed"

	"github.com/urfave/cli/v3"
)

// tipCommand returns the command that prints the node's current chain tip,
// useful as a connectivity check.
//
// Usage example:
//
//	whalewatch tip
func tipCommand(chain chainsync.Chain) *cli.Command {
	return &cli.Command{
		Name:        "tip",
		Description: "Prints the current chain tip height reported by the node.",
		Usage:       "Queries the node once and exits.",
		Action: func(ctx context.Context, c *cli.Command) error {
			tip, err := chain.TipHeight(ctx)
			if err != nil {
				return err
			}

			fmt.Fprintln(c.Writer, tip)
			return nil
		},
	}
}

// thresholdCommand returns the command that prints the alert threshold
// currently in effect, resolving the exchange rate the same way a scan would.
//
// Usage example:
//
//	whalewatch threshold
func thresholdCommand(rates pricefeed.Service, fiatThreshold float64, fallbackSats uint64) *cli.Command {
	return &cli.Command{
		Name:        "threshold",
		Description: "Prints the effective alert threshold in satoshis and BTC.",
		Usage:       "Resolves the exchange rate and converts the fiat threshold.",
		Action: func(ctx context.Context, c *cli.Command) error {
			rate, err := rates.Rate(ctx)
			if err != nil {
				fmt.Fprintf(c.Writer, "rate unavailable, fallback threshold: %d sats (%.8f BTC)\n",
					fallbackSats, units.ToBTC(fallbackSats))
				return nil
			}

			threshold := units.ThresholdSats(fiatThreshold, rate)
			fmt.Fprintf(c.Writer, "threshold: %d sats (%.8f BTC) at rate %.2f\n",
				threshold, units.ToBTC(threshold), rate)
			return nil
		},
	}
}
