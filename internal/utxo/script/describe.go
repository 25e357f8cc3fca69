package script

import (
	"encoding/hex"
	"strconv"
	"strings"

	"github.com/btcsuite/btcd/txscript"
)

var opcodeNames = buildOpcodeNames()

// buildOpcodeNames inverts txscript.OpcodeByName. Where btcd registers aliases for
// one opcode the lexically smallest name is kept so the output is stable.
func buildOpcodeNames() map[byte]string {
	names := make(map[byte]string, len(txscript.OpcodeByName))
	for name, op := range txscript.OpcodeByName {
		if strings.HasPrefix(name, "OP_UNKNOWN") {
			continue
		}
		if current, ok := names[op]; ok && current < name {
			continue
		}
		names[op] = name
	}
	return names
}

// OpcodeName returns the opcode name without its OP_ prefix.
func OpcodeName(op byte) string {
	if name, ok := opcodeNames[op]; ok {
		return strings.TrimPrefix(name, "OP_")
	}
	return "InvalidOp_" + strconv.Itoa(int(op))
}

// ShortHex abbreviates long hex strings to their first and last four digits.
func ShortHex(b []byte) string {
	t := hex.EncodeToString(b)
	if len(t) < 11 {
		return t
	}
	return t[:4] + "..." + t[len(t)-4:]
}

// Describe renders script as space-separated tokens: pushes as
// "<opcode>:<short hex>" and other opcodes by name.
func Describe(script []byte) string {
	var sb strings.Builder
	for tz := NewTokenizer(script); tz.Next(); {
		tok := tz.Token()
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		if tok.IsPush() {
			sb.WriteString(strconv.Itoa(int(tok.Opcode)))
			sb.WriteByte(':')
			if tok.Invalid {
				sb.WriteString("_INVALID_")
			}
			sb.WriteString(ShortHex(tok.Data))
			continue
		}
		sb.WriteString(OpcodeName(tok.Opcode))
	}
	return sb.String()
}
