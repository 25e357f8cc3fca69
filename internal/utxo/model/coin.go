package model

// Coin identifies the chain whose data is decoded.
type Coin string

// Network names a chain network such as mainnet or testnet.
type Network string

var (
	BTC Coin = "BTC"
)

var (
	Mainnet Network = "mainnet"
	Testnet Network = "testnet"
	Regtest Network = "regtest"
	Signet  Network = "signet"
)
