package deserialize

import (
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/goodnatureofminers/blockinsight7000-decoder/pkg/cursor"
)

const (
	// minTxInSize is an outpoint, an empty script length and a sequence.
	minTxInSize = chainhash.HashSize + 4 + 1 + 4
	// minTxOutSize is a value and an empty script length.
	minTxOutSize = 8 + 1
	// minTxSize is a version, two empty counts and a lock time.
	minTxSize   = 4 + 1 + 1 + 4
	witnessFlag = 1
)

// TxIn spends a previous output. PrevHash is kept in wire order.
type TxIn struct {
	PrevHash  chainhash.Hash
	PrevIndex uint32
	Script    []byte
	Sequence  uint32
	// Witness is the input's witness stack; nil for legacy transactions.
	Witness [][]byte
}

// IsCoinbase reports whether the input references the all-zero hash, in which
// case Script carries arbitrary coinbase data.
func (in TxIn) IsCoinbase() bool {
	return in.PrevHash == chainhash.Hash{}
}

// TxOut pays Value satoshis to Script.
type TxOut struct {
	Value  int64
	Script []byte
}

// Transaction is a decoded transaction. The base data excludes the segwit
// marker, flag and witness stacks; Size covers every byte consumed.
type Transaction struct {
	Version    int32
	Inputs     []TxIn
	Outputs    []TxOut
	LockTime   uint32
	HasWitness bool
	Size       int

	base []byte
}

// BaseData returns the serialization hashed for the transaction id.
func (tx *Transaction) BaseData() []byte {
	return tx.base
}

// BaseSize returns the length of the base data.
func (tx *Transaction) BaseSize() int {
	return len(tx.base)
}

// TxHash returns the double SHA-256 of the base data in wire order.
func (tx *Transaction) TxHash() chainhash.Hash {
	return chainhash.DoubleHashH(tx.base)
}

// TxID returns the transaction hash as byte-reversed hex.
func (tx *Transaction) TxID() string {
	h := tx.TxHash()
	return h.String()
}

// VSize returns (3*base + total) / 4 rounded half up.
func (tx *Transaction) VSize() int {
	return (3*len(tx.base) + tx.Size + 2) / 4
}

// ParseTxIn reads one transaction input.
func ParseTxIn(c *cursor.Cursor) (TxIn, error) {
	var (
		in  TxIn
		err error
	)
	if in.PrevHash, err = c.ReadHash(); err != nil {
		return in, fmt.Errorf("prevout hash: %w", err)
	}
	if in.PrevIndex, err = c.ReadUint32(); err != nil {
		return in, fmt.Errorf("prevout index: %w", err)
	}
	if in.Script, err = c.ReadVarBytes(); err != nil {
		return in, fmt.Errorf("signature script: %w", err)
	}
	if in.Sequence, err = c.ReadUint32(); err != nil {
		return in, fmt.Errorf("sequence: %w", err)
	}
	return in, nil
}

// ParseTxOut reads one transaction output.
func ParseTxOut(c *cursor.Cursor) (TxOut, error) {
	var (
		out TxOut
		err error
	)
	if out.Value, err = c.ReadInt64(); err != nil {
		return out, fmt.Errorf("value: %w", err)
	}
	if out.Script, err = c.ReadVarBytes(); err != nil {
		return out, fmt.Errorf("output script: %w", err)
	}
	return out, nil
}

// ParseTransaction reads a legacy or segwit transaction.
func ParseTransaction(c *cursor.Cursor) (*Transaction, error) {
	tx := &Transaction{}
	start := c.Position()

	var err error
	if tx.Version, err = c.ReadInt32(); err != nil {
		return nil, fmt.Errorf("tx version: %w", err)
	}
	versionEnd := c.Position()

	bodyStart := versionEnd
	count, err := c.ReadCount(minTxInSize)
	if err != nil {
		return nil, fmt.Errorf("tx input count: %w", err)
	}
	if count == 0 {
		flag, err := c.ReadCompactSize()
		if err != nil {
			return nil, fmt.Errorf("tx segwit flag: %w", err)
		}
		if flag != witnessFlag {
			return nil, fmt.Errorf("%w: expecting %d got %d at offset %d", ErrSegwitFlag, witnessFlag, flag, c.Position())
		}
		tx.HasWitness = true
		bodyStart = c.Position()
		if count, err = c.ReadCount(minTxInSize); err != nil {
			return nil, fmt.Errorf("tx input count: %w", err)
		}
	}

	tx.Inputs = make([]TxIn, 0, count)
	for i := 0; i < count; i++ {
		in, err := ParseTxIn(c)
		if err != nil {
			return nil, fmt.Errorf("tx input %d: %w", i, err)
		}
		tx.Inputs = append(tx.Inputs, in)
	}

	if count, err = c.ReadCount(minTxOutSize); err != nil {
		return nil, fmt.Errorf("tx output count: %w", err)
	}
	tx.Outputs = make([]TxOut, 0, count)
	for i := 0; i < count; i++ {
		out, err := ParseTxOut(c)
		if err != nil {
			return nil, fmt.Errorf("tx output %d: %w", i, err)
		}
		tx.Outputs = append(tx.Outputs, out)
	}
	bodyEnd := c.Position()

	if tx.HasWitness {
		for i := range tx.Inputs {
			if tx.Inputs[i].Witness, err = parseWitness(c); err != nil {
				return nil, fmt.Errorf("tx witness %d: %w", i, err)
			}
		}
	}

	lockStart := c.Position()
	if tx.LockTime, err = c.ReadUint32(); err != nil {
		return nil, fmt.Errorf("tx lock time: %w", err)
	}
	end := c.Position()

	tx.Size = end - start
	tx.base = make([]byte, 0, (versionEnd-start)+(bodyEnd-bodyStart)+(end-lockStart))
	tx.base = append(tx.base, c.Span(start, versionEnd)...)
	tx.base = append(tx.base, c.Span(bodyStart, bodyEnd)...)
	tx.base = append(tx.base, c.Span(lockStart, end)...)
	return tx, nil
}

func parseWitness(c *cursor.Cursor) ([][]byte, error) {
	n, err := c.ReadCount(1)
	if err != nil {
		return nil, err
	}
	stack := make([][]byte, 0, n)
	for i := 0; i < n; i++ {
		item, err := c.ReadVarBytes()
		if err != nil {
			return nil, err
		}
		stack = append(stack, item)
	}
	return stack, nil
}
