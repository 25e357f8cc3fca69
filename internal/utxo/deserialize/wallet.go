package deserialize

import (
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/goodnatureofminers/blockinsight7000-decoder/pkg/cursor"
)

// MerkleTx is a transaction with the merkle branch linking it to a block.
type MerkleTx struct {
	Tx           *Transaction
	BlockHash    chainhash.Hash
	MerkleBranch []chainhash.Hash
	Index        int32
}

// OrderFormEntry is one order-form pair of a wallet transaction.
type OrderFormEntry struct {
	Key   string
	Value string
}

// WalletTx is the legacy wallet transaction record.
type WalletTx struct {
	MerkleTx
	PrevTxs              []MerkleTx
	MapValue             map[string]string
	OrderForm            []OrderFormEntry
	TimeReceivedIsTxTime uint32
	TimeReceived         uint32
	FromMe               bool
	Spent                bool
}

// BlockLocator lists block hashes, most recent first.
type BlockLocator struct {
	Hashes []chainhash.Hash
}

// ParseMerkleTx reads a transaction followed by its block hash, merkle branch
// and index.
func ParseMerkleTx(c *cursor.Cursor) (MerkleTx, error) {
	var (
		m   MerkleTx
		err error
	)
	if m.Tx, err = ParseTransaction(c); err != nil {
		return m, err
	}
	if m.BlockHash, err = c.ReadHash(); err != nil {
		return m, fmt.Errorf("merkle tx block hash: %w", err)
	}
	if m.MerkleBranch, err = readHashes(c); err != nil {
		return m, fmt.Errorf("merkle branch: %w", err)
	}
	if m.Index, err = c.ReadInt32(); err != nil {
		return m, fmt.Errorf("merkle index: %w", err)
	}
	return m, nil
}

// ParseWalletTx reads a wallet transaction record.
func ParseWalletTx(c *cursor.Cursor) (WalletTx, error) {
	var (
		w   WalletTx
		err error
	)
	if w.MerkleTx, err = ParseMerkleTx(c); err != nil {
		return w, err
	}

	count, err := c.ReadCount(minTxSize)
	if err != nil {
		return w, fmt.Errorf("wallet tx prev count: %w", err)
	}
	w.PrevTxs = make([]MerkleTx, 0, count)
	for i := 0; i < count; i++ {
		prev, err := ParseMerkleTx(c)
		if err != nil {
			return w, fmt.Errorf("wallet tx prev %d: %w", i, err)
		}
		w.PrevTxs = append(w.PrevTxs, prev)
	}

	if count, err = c.ReadCount(2); err != nil {
		return w, fmt.Errorf("wallet tx map value count: %w", err)
	}
	w.MapValue = make(map[string]string, count)
	for i := 0; i < count; i++ {
		key, value, err := readStringPair(c)
		if err != nil {
			return w, fmt.Errorf("wallet tx map value %d: %w", i, err)
		}
		w.MapValue[key] = value
	}

	if count, err = c.ReadCount(2); err != nil {
		return w, fmt.Errorf("wallet tx order form count: %w", err)
	}
	w.OrderForm = make([]OrderFormEntry, 0, count)
	for i := 0; i < count; i++ {
		key, value, err := readStringPair(c)
		if err != nil {
			return w, fmt.Errorf("wallet tx order form %d: %w", i, err)
		}
		w.OrderForm = append(w.OrderForm, OrderFormEntry{Key: key, Value: value})
	}

	if w.TimeReceivedIsTxTime, err = c.ReadUint32(); err != nil {
		return w, fmt.Errorf("wallet tx time received is tx time: %w", err)
	}
	if w.TimeReceived, err = c.ReadUint32(); err != nil {
		return w, fmt.Errorf("wallet tx time received: %w", err)
	}
	if w.FromMe, err = c.ReadBool(); err != nil {
		return w, fmt.Errorf("wallet tx from me: %w", err)
	}
	if w.Spent, err = c.ReadBool(); err != nil {
		return w, fmt.Errorf("wallet tx spent: %w", err)
	}
	return w, nil
}

// ParseBlockLocator reads a list of block hashes.
func ParseBlockLocator(c *cursor.Cursor) (BlockLocator, error) {
	hashes, err := readHashes(c)
	if err != nil {
		return BlockLocator{}, fmt.Errorf("block locator: %w", err)
	}
	return BlockLocator{Hashes: hashes}, nil
}

func readHashes(c *cursor.Cursor) ([]chainhash.Hash, error) {
	n, err := c.ReadCount(chainhash.HashSize)
	if err != nil {
		return nil, err
	}
	hashes := make([]chainhash.Hash, 0, n)
	for i := 0; i < n; i++ {
		h, err := c.ReadHash()
		if err != nil {
			return nil, err
		}
		hashes = append(hashes, h)
	}
	return hashes, nil
}

func readStringPair(c *cursor.Cursor) (string, string, error) {
	key, err := c.ReadString()
	if err != nil {
		return "", "", err
	}
	value, err := c.ReadString()
	if err != nil {
		return "", "", err
	}
	return key, value, nil
}
