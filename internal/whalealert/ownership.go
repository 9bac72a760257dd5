package whalealert

import (
	"context"
	"sync"

	"github.com/fmarchini/whalewatch/internal/pkg/logger"
	"github.com/fmarchini/whalewatch/internal/pkg/types"
	"github.com/fmarchini/whalewatch/internal/pkg/x/chflow"
)

// resolveInputOwners builds the set of ownership descriptors controlling the
// inputs of tx. Each input references an output of an earlier transaction, so
// the descriptor has to be read from the source transaction itself.
//
// Lookups for the inputs run concurrently; they are independent reads with no
// ordering dependency. Each goroutine emits at most one descriptor to a
// buffered channel, and the results are folded into a set once all lookups
// have finished, so no shared mutable state is written concurrently.
//
// An input whose lookup fails, returns no transaction, or references an
// out-of-range output index contributes nothing to the set. The failure is
// logged and resolution continues: missing one input must not abort the whole
// classification. Callers must treat an empty result as "ownership unknown".
func (s *service) resolveInputOwners(ctx context.Context, tx Transaction) types.Set[Ownership] {
	owners := make(chan Ownership, len(tx.Inputs))

	var wg sync.WaitGroup
	for _, input := range tx.Inputs {
		wg.Add(1)
		go func(input Input) {
			defer wg.Done()

			source, err := s.chain.TransactionByHash(ctx, input.TxID)
			if err != nil {
				logger.Warn(ctx, "input ownership lookup failed",
					"tx.id", tx.ID,
					"input.source", input.TxID,
					"input.vout", input.Vout,
					"error", err,
				)
				return
			}
			if source == nil || int(input.Vout) >= len(source.Outputs) {
				logger.Warn(ctx, "input references unknown output",
					"tx.id", tx.ID,
					"input.source", input.TxID,
					"input.vout", input.Vout,
				)
				return
			}

			chflow.Send(ctx, owners, source.Outputs[input.Vout].Owner)
		}(input)
	}

	wg.Wait()
	close(owners)

	ownerSet := types.NewSet[Ownership]()
	for owner := range owners {
		ownerSet.Add(owner)
	}

	return ownerSet
}

// isSelfTransfer reports whether every output of tx is controlled by an
// authority already present among its inputs' owners, i.e. whether the
// transaction only moves funds between addresses of the same party
// (consolidation or change).
//
// When the resolved owner set is empty the ownership is unknown, and the
// transaction is deliberately classified as NOT a self-transfer: a false
// alert is preferred over a silently suppressed one.
func (s *service) isSelfTransfer(ctx context.Context, tx Transaction) bool {
	owners := s.resolveInputOwners(ctx, tx)
	if owners.IsEmpty() {
		return false
	}

	for _, out := range tx.Outputs {
		if !owners.Contains(out.Owner) {
			return false
		}
	}

	return true
}
