// Package model defines the decoded, caller-facing shapes of Bitcoin wire structures.
package model

import "time"

// Block describes a decoded block header together with block-level totals.
// Timestamp is the header time clamped to the wall clock at decode time;
// HeaderTime keeps the value found on the wire.
type Block struct {
	Coin       Coin      `json:"coin,omitempty"`
	Network    Network   `json:"network,omitempty"`
	Height     uint64    `json:"height"`
	Hash       string    `json:"hash"`
	PrevHash   string    `json:"previousblockhash"`
	MerkleRoot string    `json:"merkleroot"`
	Version    int32     `json:"version"`
	HeaderTime time.Time `json:"headertime"`
	Timestamp  time.Time `json:"time"`
	Bits       uint32    `json:"bits"`
	Nonce      uint32    `json:"nonce"`
	Size       uint32    `json:"size"`
	TXCount    uint32    `json:"nTx"`
	AuxPow     bool      `json:"auxpow"`
}

// BlockDetails is a block with every transaction it carries.
type BlockDetails struct {
	Block
	Transactions []TxDetails `json:"tx"`
}

// BlockLocator lists block hashes, most recent first.
type BlockLocator struct {
	Top    string   `json:"top,omitempty"`
	Hashes []string `json:"hashes"`
}
