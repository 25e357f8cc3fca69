// Package chain defines interfaces and structs shared between UTXO ingestion components.
package chain

import (
	"context"
	"errors"

	"github.com/goodnatureofminers/blockinsight7000-decoder/internal/utxo/model"
)

// ErrBlockNotFound is returned by sources when the node has no block at the
// requested height or hash.
var ErrBlockNotFound = errors.New("block not found")

// BlockSource provides decoded blocks for ingestion.
type BlockSource interface {
	LatestHeight(ctx context.Context) (uint64, error)
	FetchBlock(ctx context.Context, height uint64) (*model.BlockDetails, error)
}
