package model

import "time"

// NetAddress is a peer address record as stored by the legacy client.
type NetAddress struct {
	Version  int32     `json:"version"`
	LastSeen time.Time `json:"lastseen"`
	Services uint64    `json:"services"`
	IP       string    `json:"ip"`
	Port     uint16    `json:"port"`
	Display  string    `json:"display"`
}

// MerkleTx is a transaction anchored to a block by a merkle branch.
type MerkleTx struct {
	TxDetails
	BlockHash    string   `json:"blockhash"`
	MerkleBranch []string `json:"merklebranch"`
	Index        int32    `json:"index"`
}

// OrderFormEntry is a single key/value pair of a wallet transaction order form.
type OrderFormEntry struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// WalletTx is a legacy wallet record around a MerkleTx.
type WalletTx struct {
	MerkleTx
	PrevTxs              []MerkleTx        `json:"vtxprev"`
	MapValue             map[string]string `json:"mapvalue"`
	OrderForm            []OrderFormEntry  `json:"orderform"`
	TimeReceivedIsTxTime uint32            `json:"timereceivedistxtime"`
	TimeReceived         time.Time         `json:"timereceived"`
	FromMe               bool              `json:"fromme"`
	Spent                bool              `json:"spent"`
}

// Setting is a decoded legacy wallet setting. Value holds a bool, int32, int64,
// string or NetAddress depending on the setting name.
type Setting struct {
	Name  string `json:"name"`
	Value any    `json:"value"`
}
