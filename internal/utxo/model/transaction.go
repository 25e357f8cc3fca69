package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction carries transaction-level fields. Timestamp is the clamped block
// time and stays zero for transactions decoded outside a block.
type Transaction struct {
	Coin        Coin      `json:"coin,omitempty"`
	Network     Network   `json:"network,omitempty"`
	TxID        string    `json:"txid"`
	BlockHeight uint64    `json:"blockheight,omitzero"`
	Timestamp   time.Time `json:"time,omitzero"`
	Size        uint32    `json:"size"`
	VSize       uint32    `json:"vsize"`
	BaseSize    uint32    `json:"basesize"`
	HasWitness  bool      `json:"segwit"`
	Version     int32     `json:"version"`
	LockTime    uint32    `json:"locktime"`
	InputCount  uint32    `json:"vin_count"`
	OutputCount uint32    `json:"vout_count"`
}

// TransactionInput references a previous output, or carries coinbase data when
// IsCoinbase is set, in which case PrevTxID and PrevVout are empty.
type TransactionInput struct {
	Coin         Coin     `json:"-"`
	Network      Network  `json:"-"`
	BlockHeight  uint64   `json:"-"`
	TxID         string   `json:"-"`
	Index        uint32   `json:"-"`
	IsCoinbase   bool     `json:"-"`
	Coinbase     string   `json:"coinbase,omitempty"`
	PrevTxID     string   `json:"txid,omitempty"`
	PrevVout     *uint32  `json:"vout,omitempty"`
	Sequence     uint32   `json:"sequence"`
	ScriptSigHex string   `json:"scriptsig,omitempty"`
	ScriptSigAsm string   `json:"scriptsig_asm,omitempty"`
	Witness      []string `json:"txinwitness,omitempty"`
}

// TransactionOutput is a transaction output with its resolved destinations.
type TransactionOutput struct {
	Coin        Coin            `json:"-"`
	Network     Network         `json:"-"`
	BlockHeight uint64          `json:"-"`
	TxID        string          `json:"-"`
	Index       uint32          `json:"n"`
	Value       int64           `json:"-"`
	Amount      decimal.Decimal `json:"value"`
	ScriptType  string          `json:"type"`
	ScriptHex   string          `json:"hex"`
	ScriptAsm   string          `json:"asm"`
	Addresses   []string        `json:"addresses"`
}

// TxDetails is a transaction with its inputs and outputs in wire order.
type TxDetails struct {
	Transaction
	Inputs  []TransactionInput  `json:"vin"`
	Outputs []TransactionOutput `json:"vout"`
}

// Script is a standalone script with its template and resolved destinations.
type Script struct {
	Hex         string   `json:"hex"`
	Asm         string   `json:"asm"`
	Description string   `json:"description"`
	Type        string   `json:"type"`
	Addresses   []string `json:"addresses"`
}
