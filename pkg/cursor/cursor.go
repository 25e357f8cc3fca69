// Package cursor provides a bounds-checked, forward-only reader over an immutable
// byte buffer using the Bitcoin wire conventions (little-endian integers and
// CompactSize lengths).
package cursor

import (
	"encoding/binary"
	"math"
	"math/bits"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// Cursor reads from buf starting at pos. A Cursor must not be shared between
// goroutines; independent buffers can be read concurrently with separate cursors.
type Cursor struct {
	buf []byte
	pos int
}

// New returns a Cursor positioned at the start of buf. buf must not be modified
// while the cursor or any slice returned from it is in use.
func New(buf []byte) *Cursor {
	return &Cursor{buf: buf}
}

// Position returns the current offset.
func (c *Cursor) Position() int {
	return c.pos
}

// Len returns the total buffer length.
func (c *Cursor) Len() int {
	return len(c.buf)
}

// Remaining returns the number of unread bytes.
func (c *Cursor) Remaining() int {
	return len(c.buf) - c.pos
}

// Seek restores an offset previously obtained from Position.
func (c *Cursor) Seek(offset int) error {
	if offset < 0 || offset > len(c.buf) {
		return &ReadError{Op: "seek", Offset: c.pos, Need: offset, Have: len(c.buf), Err: ErrOutOfData}
	}
	c.pos = offset
	return nil
}

// Span returns the bytes between two offsets obtained from Position. It returns
// nil when the range is not inside the buffer.
func (c *Cursor) Span(from, to int) []byte {
	if from < 0 || to < from || to > len(c.buf) {
		return nil
	}
	return c.buf[from:to:to]
}

func (c *Cursor) take(op string, n int) ([]byte, error) {
	if n < 0 || n > c.Remaining() {
		return nil, &ReadError{Op: op, Offset: c.pos, Need: n, Have: c.Remaining(), Err: ErrOutOfData}
	}
	b := c.buf[c.pos : c.pos+n : c.pos+n]
	c.pos += n
	return b, nil
}

// ReadUint8 reads one byte.
func (c *Cursor) ReadUint8() (uint8, error) {
	b, err := c.take("uint8", 1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// ReadUint16 reads a little-endian uint16.
func (c *Cursor) ReadUint16() (uint16, error) {
	b, err := c.take("uint16", 2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

// ReadUint32 reads a little-endian uint32.
func (c *Cursor) ReadUint32() (uint32, error) {
	b, err := c.take("uint32", 4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

// ReadUint64 reads a little-endian uint64.
func (c *Cursor) ReadUint64() (uint64, error) {
	b, err := c.take("uint64", 8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

// ReadInt32 reads a little-endian two's complement int32.
func (c *Cursor) ReadInt32() (int32, error) {
	v, err := c.ReadUint32()
	return int32(v), err
}

// ReadInt64 reads a little-endian two's complement int64.
func (c *Cursor) ReadInt64() (int64, error) {
	v, err := c.ReadUint64()
	return int64(v), err
}

// ReadBool reads one byte; any non-zero value is true.
func (c *Cursor) ReadBool() (bool, error) {
	v, err := c.ReadUint8()
	return v != 0, err
}

// ReadBytes reads n raw bytes. The returned slice aliases the buffer.
func (c *Cursor) ReadBytes(n int) ([]byte, error) {
	return c.take("bytes", n)
}

// ReadHash reads a 32-byte hash in wire order.
func (c *Cursor) ReadHash() (chainhash.Hash, error) {
	var h chainhash.Hash
	b, err := c.take("hash", chainhash.HashSize)
	if err != nil {
		return h, err
	}
	copy(h[:], b)
	return h, nil
}

// ReadCompactSize reads a CompactSize unsigned integer. Non-minimal encodings are
// accepted.
func (c *Cursor) ReadCompactSize() (uint64, error) {
	start := c.pos
	marker, err := c.ReadUint8()
	if err != nil {
		return 0, err
	}

	var width int
	switch marker {
	case 0xfd:
		width = 2
	case 0xfe:
		width = 4
	case 0xff:
		width = 8
	default:
		return uint64(marker), nil
	}

	if c.Remaining() < width {
		have := c.Remaining()
		c.pos = start
		return 0, &ReadError{Op: "compact size", Offset: start, Need: 1 + width, Have: 1 + have, Err: ErrMalformedVarint}
	}

	b, _ := c.take("compact size", width)
	switch width {
	case 2:
		return uint64(binary.LittleEndian.Uint16(b)), nil
	case 4:
		return uint64(binary.LittleEndian.Uint32(b)), nil
	default:
		return binary.LittleEndian.Uint64(b), nil
	}
}

// ReadVarBytes reads a CompactSize length followed by that many bytes.
func (c *Cursor) ReadVarBytes() ([]byte, error) {
	n, err := c.ReadCompactSize()
	if err != nil {
		return nil, err
	}
	if n > uint64(c.Remaining()) {
		return nil, &ReadError{Op: "var bytes", Offset: c.pos, Need: saturate(n), Have: c.Remaining(), Err: ErrOutOfData}
	}
	return c.take("var bytes", int(n))
}

// ReadString reads CompactSize-prefixed bytes as text.
func (c *Cursor) ReadString() (string, error) {
	b, err := c.ReadVarBytes()
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// ReadCount reads a CompactSize element count for elements that occupy at least
// minElemSize bytes each. Counts that cannot fit in the remaining buffer fail
// with ErrOutOfData before any element is read.
func (c *Cursor) ReadCount(minElemSize int) (int, error) {
	n, err := c.ReadCompactSize()
	if err != nil {
		return 0, err
	}
	if minElemSize < 1 {
		minElemSize = 1
	}
	hi, need := bits.Mul64(n, uint64(minElemSize))
	if hi != 0 || need > uint64(c.Remaining()) {
		if hi != 0 {
			need = math.MaxUint64
		}
		return 0, &ReadError{Op: "count", Offset: c.pos, Need: saturate(need), Have: c.Remaining(), Err: ErrOutOfData}
	}
	return int(n), nil
}

func saturate(n uint64) int {
	if n > math.MaxInt {
		return math.MaxInt
	}
	return int(n)
}
