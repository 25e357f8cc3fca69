package model

// InsertBlock groups a block with its transactions and related inputs/outputs for batch insertion.
type InsertBlock struct {
	Block   Block
	Txs     []Transaction
	Outputs []TransactionOutput
	Inputs  []TransactionInput
}

// NewInsertBlock flattens decoded block details into insertion rows.
func NewInsertBlock(details BlockDetails) InsertBlock {
	out := InsertBlock{
		Block: details.Block,
		Txs:   make([]Transaction, 0, len(details.Transactions)),
	}
	for _, tx := range details.Transactions {
		out.Txs = append(out.Txs, tx.Transaction)
		out.Inputs = append(out.Inputs, tx.Inputs...)
		out.Outputs = append(out.Outputs, tx.Outputs...)
	}
	return out
}
