// Package script decodes Bitcoin scripts into opcode tokens and recognizes the
// standard output templates to recover destination addresses.
package script

import (
	"encoding/binary"

	"github.com/btcsuite/btcd/txscript"
)

// Token is a single opcode with the data it pushes, if any.
type Token struct {
	Opcode byte
	Data   []byte
	// Invalid marks a push whose declared length runs past the end of the
	// script. Data then holds the remaining tail and no token follows.
	Invalid bool
}

// IsPush reports whether the opcode only pushes data onto the stack.
func (t Token) IsPush() bool {
	return t.Opcode <= txscript.OP_PUSHDATA4
}

// Tokenizer walks a script once, yielding one Token per call to Next.
// A new Tokenizer is needed to scan the script again.
type Tokenizer struct {
	script []byte
	offset int
	token  Token
	done   bool
}

// NewTokenizer returns a tokenizer positioned before the first opcode.
func NewTokenizer(script []byte) *Tokenizer {
	return &Tokenizer{script: script}
}

// Next advances to the next token and reports whether one is available.
func (t *Tokenizer) Next() bool {
	if t.done || t.offset >= len(t.script) {
		t.done = true
		return false
	}

	op := t.script[t.offset]
	t.offset++
	t.token = Token{Opcode: op}
	if op > txscript.OP_PUSHDATA4 {
		return true
	}

	size, ok := t.pushLength(op)
	if !ok || size > uint64(len(t.script)-t.offset) {
		t.token.Data = t.script[t.offset:]
		t.token.Invalid = true
		t.offset = len(t.script)
		t.done = true
		return true
	}

	end := t.offset + int(size)
	t.token.Data = t.script[t.offset:end:end]
	t.offset = end
	return true
}

// pushLength consumes the explicit length field of OP_PUSHDATA1/2/4; direct
// pushes use the opcode value as the length.
func (t *Tokenizer) pushLength(op byte) (uint64, bool) {
	var width int
	switch op {
	case txscript.OP_PUSHDATA1:
		width = 1
	case txscript.OP_PUSHDATA2:
		width = 2
	case txscript.OP_PUSHDATA4:
		width = 4
	default:
		return uint64(op), true
	}
	if len(t.script)-t.offset < width {
		return 0, false
	}

	field := t.script[t.offset : t.offset+width]
	t.offset += width
	switch width {
	case 1:
		return uint64(field[0]), true
	case 2:
		return uint64(binary.LittleEndian.Uint16(field)), true
	default:
		return uint64(binary.LittleEndian.Uint32(field)), true
	}
}

// Token returns the token produced by the last successful call to Next.
func (t *Tokenizer) Token() Token {
	return t.token
}

// Offset returns the number of script bytes consumed so far.
func (t *Tokenizer) Offset() int {
	return t.offset
}

// Tokenize collects every token of script.
func Tokenize(script []byte) []Token {
	tokens := make([]Token, 0, 8)
	for tz := NewTokenizer(script); tz.Next(); {
		tokens = append(tokens, tz.Token())
	}
	return tokens
}
