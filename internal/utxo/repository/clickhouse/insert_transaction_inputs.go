package clickhouse

import (
	"context"

	"github.com/goodnatureofminers/blockinsight7000-decoder/internal/utxo/model"
)

const insertTransactionInputsQuery = `
INSERT INTO decoded_transaction_inputs (
	coin,
	network,
	block_height,
	txid,
	input_index,
	is_coinbase,
	coinbase,
	prev_txid,
	prev_vout,
	sequence,
	script_sig_hex,
	script_sig_asm,
	witness
) VALUES`

// InsertTransactionInputs stores transaction inputs in ClickHouse.
// Coinbase inputs are stored with an empty prev_txid and prev_vout 0.
func (r *Repository) InsertTransactionInputs(ctx context.Context, inputs []model.TransactionInput) error {
	return insertRows(ctx, r, "insert_transaction_inputs", insertTransactionInputsQuery, inputs, transactionInputRow)
}

func transactionInputRow(input model.TransactionInput) []any {
	var prevVout uint32
	if input.PrevVout != nil {
		prevVout = *input.PrevVout
	}
	witness := input.Witness
	if witness == nil {
		witness = []string{}
	}
	return []any{
		string(input.Coin),
		string(input.Network),
		input.BlockHeight,
		input.TxID,
		input.Index,
		input.IsCoinbase,
		input.Coinbase,
		input.PrevTxID,
		prevVout,
		input.Sequence,
		input.ScriptSigHex,
		input.ScriptSigAsm,
		witness,
	}
}
