package clickhouse

import (
	"context"

	"github.com/goodnatureofminers/blockinsight7000-decoder/internal/utxo/model"
)

const insertTransactionsQuery = `
INSERT INTO decoded_transactions (
	coin,
	network,
	txid,
	block_height,
	timestamp,
	size,
	vsize,
	base_size,
	has_witness,
	version,
	locktime,
	input_count,
	output_count
) VALUES`

// InsertTransactions stores transactions in ClickHouse.
func (r *Repository) InsertTransactions(ctx context.Context, txs []model.Transaction) error {
	return insertRows(ctx, r, "insert_transactions", insertTransactionsQuery, txs, transactionRow)
}

func transactionRow(tx model.Transaction) []any {
	return []any{
		string(tx.Coin),
		string(tx.Network),
		tx.TxID,
		tx.BlockHeight,
		tx.Timestamp,
		tx.Size,
		tx.VSize,
		tx.BaseSize,
		tx.HasWitness,
		tx.Version,
		tx.LockTime,
		tx.InputCount,
		tx.OutputCount,
	}
}
