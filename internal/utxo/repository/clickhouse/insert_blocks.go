package clickhouse

import (
	"context"

	"github.com/goodnatureofminers/blockinsight7000-decoder/internal/utxo/model"
)

const insertBlocksQuery = `
INSERT INTO decoded_blocks (
	coin,
	network,
	height,
	hash,
	prev_hash,
	merkle_root,
	version,
	header_time,
	timestamp,
	bits,
	nonce,
	size,
	tx_count,
	auxpow
) VALUES`

// InsertBlocks stores block rows in ClickHouse.
func (r *Repository) InsertBlocks(ctx context.Context, blocks []model.Block) error {
	return insertRows(ctx, r, "insert_blocks", insertBlocksQuery, blocks, blockRow)
}

func blockRow(block model.Block) []any {
	return []any{
		string(block.Coin),
		string(block.Network),
		block.Height,
		block.Hash,
		block.PrevHash,
		block.MerkleRoot,
		block.Version,
		block.HeaderTime,
		block.Timestamp,
		block.Bits,
		block.Nonce,
		block.Size,
		block.TXCount,
		block.AuxPow,
	}
}
