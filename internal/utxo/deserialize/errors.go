// Package deserialize decodes the Bitcoin wire and legacy wallet encodings into
// structured records. Parsers read from a cursor and stop at the first failure;
// the error carries the offset reached.
package deserialize

import "errors"

var (
	// ErrSegwitFlag is returned when a zero input count is followed by a
	// witness flag other than 1.
	ErrSegwitFlag = errors.New("segwit flag")
	// ErrUnsupportedStructure is returned for encodings that are recognized but
	// not decoded, such as merged-mining auxiliary proof of work.
	ErrUnsupportedStructure = errors.New("unsupported structure")
)
