package starkcrypto

import (
	"context"
	"fmt"
	"math/big"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// VerifyItem is one signature to check in VerifyBatch.
type VerifyItem struct {
	PublicKey *big.Int
	MsgHash   *big.Int
	R         *big.Int
	S         *big.Int
}

// VerifyBatch verifies items concurrently. results[i] is the outcome for
// items[i]. The first malformed item, or cancellation of ctx, aborts the
// batch with an error.
func VerifyBatch(ctx context.Context, items []VerifyItem) ([]bool, error) {
	results := make([]bool, len(items))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, it := range items {
		i, it := i, it
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			ok, err := Verify(it.PublicKey, it.MsgHash, it.R, it.S)
			if err != nil {
				return fmt.Errorf("item %d: %w", i, err)
			}
			results[i] = ok
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
