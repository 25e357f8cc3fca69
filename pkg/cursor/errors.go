package cursor

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfData is returned when the buffer ends before a required field.
	ErrOutOfData = errors.New("out of data")
	// ErrMalformedVarint is returned when a CompactSize marker announces more
	// continuation bytes than the buffer holds.
	ErrMalformedVarint = errors.New("malformed compact size")
)

// ReadError describes a failed read and the offset the cursor had reached.
type ReadError struct {
	Op     string
	Offset int
	Need   int
	Have   int
	Err    error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("read %s at offset %d: need %d bytes, have %d: %v", e.Op, e.Offset, e.Need, e.Have, e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

// OffsetOf returns the offset carried by a ReadError anywhere in err's chain.
func OffsetOf(err error) (int, bool) {
	var rerr *ReadError
	if errors.As(err, &rerr) {
		return rerr.Offset, true
	}
	return 0, false
}
