package bitcoin

import (
	"context"
	"fmt"
	"math"

	"github.com/goodnatureofminers/blockinsight7000-decoder/internal/utxo/chain"
	"github.com/goodnatureofminers/blockinsight7000-decoder/internal/utxo/model"
	"github.com/goodnatureofminers/blockinsight7000-decoder/pkg/safe"
)

var _ chain.BlockSource = (*RawSource)(nil)

// RawSource implements chain.BlockSource by fetching serialized blocks from a
// node and decoding them locally.
type RawSource struct {
	rpc     RPCClient
	decoder BlockDecoder
}

// NewRawSource creates a RawSource.
func NewRawSource(rpc RPCClient, decoder BlockDecoder) *RawSource {
	return &RawSource{rpc: rpc, decoder: decoder}
}

// LatestHeight returns the latest block height available from the node.
func (s *RawSource) LatestHeight(_ context.Context) (uint64, error) {
	count, err := s.rpc.GetBlockCount()
	if err != nil {
		return 0, err
	}
	height, err := safe.Uint64(count)
	if err != nil {
		return 0, fmt.Errorf("block count overflow: %w", err)
	}
	return height, nil
}

// FetchBlock retrieves and decodes the block at height.
func (s *RawSource) FetchBlock(ctx context.Context, height uint64) (*model.BlockDetails, error) {
	if height > math.MaxInt64 {
		return nil, fmt.Errorf("block height %d exceeds rpc limit", height)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	hash, err := s.rpc.GetBlockHash(int64(height))
	if err != nil {
		return nil, fmt.Errorf("get block hash at height %d: %w", height, err)
	}
	raw, err := s.rpc.GetRawBlock(hash)
	if err != nil {
		return nil, fmt.Errorf("get raw block %s: %w", hash, err)
	}

	details, err := s.decoder.Block(raw, height)
	if err != nil {
		return nil, fmt.Errorf("decode block %s at height %d: %w", hash, height, err)
	}
	if details.Hash != hash.String() {
		return nil, fmt.Errorf("decoded block hash %s does not match requested %s", details.Hash, hash)
	}
	return &details, nil
}
