package bitcoin

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/goodnatureofminers/blockinsight7000-decoder/internal/utxo/chain"
)

// rawBlockVerbosity asks getblock for the serialized block as hex.
const rawBlockVerbosity = "0"

// rpcClient wraps a node rpc client with metrics instrumentation.
type rpcClient struct {
	client     NodeClient
	rpcMetrics RPCMetrics
}

// NewRPCClient constructs an instrumented RPC client.
func NewRPCClient(client NodeClient, rpcMetrics RPCMetrics) RPCClient {
	return &rpcClient{
		client:     client,
		rpcMetrics: rpcMetrics,
	}
}

// GetBlockCount returns the latest block count.
func (r *rpcClient) GetBlockCount() (count int64, err error) {
	started := time.Now()
	defer func() {
		r.rpcMetrics.Observe("get_block_count", err, started)
	}()
	return r.client.GetBlockCount()
}

// GetBlockHash returns the block hash for a height.
func (r *rpcClient) GetBlockHash(blockHeight int64) (hash *chainhash.Hash, err error) {
	started := time.Now()
	defer func() {
		r.rpcMetrics.Observe("get_block_hash", err, started)
	}()
	hash, err = r.client.GetBlockHash(blockHeight)
	return hash, notFound(err)
}

// GetRawBlock returns the serialized block, leaving decoding to the caller.
func (r *rpcClient) GetRawBlock(blockHash *chainhash.Hash) (raw []byte, err error) {
	started := time.Now()
	defer func() {
		r.rpcMetrics.Observe("get_raw_block", err, started)
	}()

	hashParam, err := json.Marshal(blockHash.String())
	if err != nil {
		return nil, err
	}
	res, err := r.client.RawRequest("getblock", []json.RawMessage{hashParam, json.RawMessage(rawBlockVerbosity)})
	if err != nil {
		return nil, notFound(err)
	}

	var blockHex string
	if err := json.Unmarshal(res, &blockHex); err != nil {
		return nil, fmt.Errorf("getblock %s result: %w", blockHash, err)
	}
	raw, err = hex.DecodeString(blockHex)
	if err != nil {
		return nil, fmt.Errorf("getblock %s hex: %w", blockHash, err)
	}
	return raw, nil
}

// notFound maps node errors for unknown heights and hashes to chain.ErrBlockNotFound.
func notFound(err error) error {
	var rpcErr *btcjson.RPCError
	if !errors.As(err, &rpcErr) {
		return err
	}
	switch rpcErr.Code {
	case btcjson.ErrRPCInvalidParameter, btcjson.ErrRPCBlockNotFound:
		return fmt.Errorf("%w: %s", chain.ErrBlockNotFound, rpcErr.Message)
	default:
		return err
	}
}
