package ingester

import (
	"context"
	"fmt"

	"github.com/goodnatureofminers/blockinsight7000-decoder/internal/utxo/model"
)

// heightFetcher hands out consecutive heights starting after the highest block
// in storage. Once a batch is handed to the writer the fetcher advances in
// memory, since the writer may not have flushed it yet.
type heightFetcher struct {
	repository Repository
	source     BlockSource
	coin       model.Coin
	network    model.Network
	limit      uint64

	next  uint64
	known bool
}

func (f *heightFetcher) Fetch(ctx context.Context) ([]uint64, error) {
	if !f.known {
		maxHeight, found, err := f.repository.MaxBlockHeight(ctx, f.coin, f.network)
		if err != nil {
			return nil, fmt.Errorf("max stored height: %w", err)
		}
		f.next = 0
		if found {
			f.next = maxHeight + 1
		}
		f.known = true
	}

	latest, err := f.source.LatestHeight(ctx)
	if err != nil {
		return nil, fmt.Errorf("latest node height: %w", err)
	}
	if latest < f.next {
		return nil, nil
	}

	count := latest - f.next + 1
	if f.limit > 0 && count > f.limit {
		count = f.limit
	}
	heights := make([]uint64, 0, count)
	for h := f.next; h < f.next+count; h++ {
		heights = append(heights, h)
	}
	return heights, nil
}

// Advance marks every height up to and including height as handed off.
func (f *heightFetcher) Advance(height uint64) {
	f.next = height + 1
	f.known = true
}

// Reset makes the next Fetch start again from storage.
func (f *heightFetcher) Reset() {
	f.known = false
}
