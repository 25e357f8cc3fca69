package deserialize

import (
	"fmt"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/goodnatureofminers/blockinsight7000-decoder/pkg/cursor"
)

const (
	// HeaderSize is the length of the six fixed header fields.
	HeaderSize = 80
	// AuxPowVersionBit signals a merged-mining auxiliary proof of work after the header.
	AuxPowVersionBit = 1 << 8
)

// BlockHeader holds the fixed header fields and the raw bytes they were read from.
type BlockHeader struct {
	Version    int32
	PrevBlock  chainhash.Hash
	MerkleRoot chainhash.Hash
	Time       uint32
	Bits       uint32
	Nonce      uint32
	Raw        []byte
}

// BlockHash returns the double SHA-256 of the raw header in wire order.
func (h *BlockHeader) BlockHash() chainhash.Hash {
	return chainhash.DoubleHashH(h.Raw)
}

// Timestamp returns the header time in UTC.
func (h *BlockHeader) Timestamp() time.Time {
	return time.Unix(int64(h.Time), 0).UTC()
}

// HasAuxPow reports whether the version field announces an auxiliary proof of work.
func (h *BlockHeader) HasAuxPow() bool {
	return h.Version&AuxPowVersionBit != 0
}

// Block is a header followed by its transactions.
type Block struct {
	Header       BlockHeader
	Transactions []*Transaction
	Size         int
}

// BlockOptions tunes block decoding.
type BlockOptions struct {
	// StrictAuxPow rejects blocks whose version announces an auxiliary proof of
	// work with ErrUnsupportedStructure. When unset the bit is reported through
	// BlockHeader.HasAuxPow and transactions are read right after the header.
	StrictAuxPow bool
}

// ParseBlockHeader reads the 80-byte block header.
func ParseBlockHeader(c *cursor.Cursor) (BlockHeader, error) {
	var (
		h   BlockHeader
		err error
	)
	start := c.Position()
	if h.Version, err = c.ReadInt32(); err != nil {
		return h, fmt.Errorf("header version: %w", err)
	}
	if h.PrevBlock, err = c.ReadHash(); err != nil {
		return h, fmt.Errorf("header previous block: %w", err)
	}
	if h.MerkleRoot, err = c.ReadHash(); err != nil {
		return h, fmt.Errorf("header merkle root: %w", err)
	}
	if h.Time, err = c.ReadUint32(); err != nil {
		return h, fmt.Errorf("header time: %w", err)
	}
	if h.Bits, err = c.ReadUint32(); err != nil {
		return h, fmt.Errorf("header bits: %w", err)
	}
	if h.Nonce, err = c.ReadUint32(); err != nil {
		return h, fmt.Errorf("header nonce: %w", err)
	}
	h.Raw = c.Span(start, c.Position())
	return h, nil
}

// ParseBlock reads a block header and its transactions.
func ParseBlock(c *cursor.Cursor, opts BlockOptions) (*Block, error) {
	start := c.Position()
	header, err := ParseBlockHeader(c)
	if err != nil {
		return nil, err
	}
	if opts.StrictAuxPow && header.HasAuxPow() {
		return nil, fmt.Errorf("%w: auxiliary proof of work in block version 0x%08x", ErrUnsupportedStructure, uint32(header.Version))
	}

	count, err := c.ReadCount(minTxSize)
	if err != nil {
		return nil, fmt.Errorf("block transaction count: %w", err)
	}
	b := &Block{Header: header, Transactions: make([]*Transaction, 0, count)}
	for i := 0; i < count; i++ {
		tx, err := ParseTransaction(c)
		if err != nil {
			return nil, fmt.Errorf("block transaction %d: %w", i, err)
		}
		b.Transactions = append(b.Transactions, tx)
	}
	b.Size = c.Position() - start
	return b, nil
}
