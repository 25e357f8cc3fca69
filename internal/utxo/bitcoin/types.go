package bitcoin

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

import (
	"encoding/json"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/goodnatureofminers/blockinsight7000-decoder/internal/utxo/model"
)

type (
	// NodeClient is the subset of the btcd rpc client used to fetch raw blocks.
	NodeClient interface {
		GetBlockCount() (int64, error)
		GetBlockHash(blockHeight int64) (*chainhash.Hash, error)
		RawRequest(method string, params []json.RawMessage) (json.RawMessage, error)
	}

	// RPCMetrics records metrics for RPC calls.
	RPCMetrics interface {
		Observe(operation string, err error, started time.Time)
	}

	// RPCClient fetches chain tip and raw blocks from a node.
	RPCClient interface {
		GetBlockCount() (int64, error)
		GetBlockHash(blockHeight int64) (*chainhash.Hash, error)
		GetRawBlock(blockHash *chainhash.Hash) ([]byte, error)
	}

	// DecoderMetrics records decode outcomes.
	DecoderMetrics interface {
		Observe(kind string, size int, err error, started time.Time)
	}

	// BlockDecoder turns raw block bytes into block details.
	BlockDecoder interface {
		Block(raw []byte, height uint64) (model.BlockDetails, error)
	}
)
