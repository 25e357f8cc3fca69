package script

import (
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/btcutil/base58"
	"github.com/btcsuite/btcd/btcutil/bech32"
	"github.com/btcsuite/btcd/txscript"
)

// Class names the template a script matched.
type Class string

const (
	NonStandard         Class = "nonstandard"
	PubKey              Class = "pubkey"
	PubKeyHash          Class = "pubkeyhash"
	ScriptHash          Class = "scripthash"
	MultiSig            Class = "multisig"
	WitnessV0KeyHash    Class = "witness_v0_keyhash"
	WitnessV0ScriptHash Class = "witness_v0_scripthash"
	WitnessV1           Class = "witness_v1"
)

const (
	witnessProgramShort = 20
	witnessProgramLong  = 32
)

// push in a template shape matches any data-push token.
const push = txscript.OP_PUSHDATA4

type template struct {
	shape   []byte
	extract func(n Network, tokens []Token) (Class, []string, bool)
}

// templates are tried in order; the first shape that matches and whose extractor
// accepts the pushed data wins.
var templates = buildTemplates()

func buildTemplates() []template {
	list := []template{
		{shape: []byte{push, push}, extract: extractPushPush},
		{shape: []byte{txscript.OP_1, push}, extract: extractWitnessV1},
		{shape: []byte{push, txscript.OP_CHECKSIG}, extract: extractPubKey},
		{
			shape:   []byte{txscript.OP_DUP, txscript.OP_HASH160, push, txscript.OP_EQUALVERIFY, txscript.OP_CHECKSIG},
			extract: extractPubKeyHash,
		},
	}

	for keys := 1; keys <= 3; keys++ {
		for required := 1; required <= keys; required++ {
			shape := make([]byte, 0, keys+3)
			shape = append(shape, txscript.OP_1+byte(required-1))
			for i := 0; i < keys; i++ {
				shape = append(shape, push)
			}
			shape = append(shape, txscript.OP_1+byte(keys-1), txscript.OP_CHECKMULTISIG)
			list = append(list, template{shape: shape, extract: extractMultiSig})
		}
	}

	return append(list, template{
		shape:   []byte{txscript.OP_HASH160, txscript.OP_DATA_20, txscript.OP_EQUAL},
		extract: extractScriptHash,
	})
}

func (tpl template) matches(tokens []Token) bool {
	if len(tokens) != len(tpl.shape) {
		return false
	}
	for i, op := range tpl.shape {
		if op == push && tokens[i].IsPush() {
			continue
		}
		if op != tokens[i].Opcode {
			return false
		}
	}
	return true
}

// Classifier recovers destination addresses from output scripts.
type Classifier struct {
	network Network
}

// NewClassifier returns a classifier that encodes addresses for network.
func NewClassifier(network Network) *Classifier {
	return &Classifier{network: network}
}

// ClassifierForVersion returns a classifier for the network owning version.
func ClassifierForVersion(version byte) (*Classifier, error) {
	network, err := NetworkForVersion(version)
	if err != nil {
		return nil, err
	}
	return NewClassifier(network), nil
}

// Network returns the address conventions in use.
func (c *Classifier) Network() Network {
	return c.network
}

// Addresses returns the addresses paid by script, or nil when the script
// matches no known template.
func (c *Classifier) Addresses(script []byte) []string {
	_, addrs := c.Classify(script)
	return addrs
}

// Classify returns the matched template class and its addresses. Unrecognized or
// truncated scripts yield NonStandard and no addresses; it never fails.
func (c *Classifier) Classify(script []byte) (Class, []string) {
	tokens := Tokenize(script)
	for _, tok := range tokens {
		if tok.Invalid {
			return NonStandard, nil
		}
	}

	for _, tpl := range templates {
		if !tpl.matches(tokens) {
			continue
		}
		if class, addrs, ok := tpl.extract(c.network, tokens); ok {
			return class, addrs
		}
	}
	return NonStandard, nil
}

func isWitnessProgram(data []byte) bool {
	return len(data) == witnessProgramShort || len(data) == witnessProgramLong
}

// extractPushPush handles a native v0 witness program (empty push followed by a
// 20 or 32 byte program) and otherwise treats the second push as a public key.
func extractPushPush(n Network, tokens []Token) (Class, []string, bool) {
	program := tokens[1].Data
	if len(tokens[0].Data) == 0 && isWitnessProgram(program) {
		addr, err := encodeWitness(n.Bech32HRP, 0, program)
		if err != nil {
			return NonStandard, nil, false
		}
		class := WitnessV0KeyHash
		if len(program) == witnessProgramLong {
			class = WitnessV0ScriptHash
		}
		return class, []string{addr}, true
	}
	return PubKey, []string{encodePubKey(program, n.Version)}, true
}

func extractWitnessV1(n Network, tokens []Token) (Class, []string, bool) {
	program := tokens[1].Data
	if !isWitnessProgram(program) {
		return NonStandard, nil, false
	}
	addr, err := encodeWitness(n.Bech32HRP, 1, program)
	if err != nil {
		return NonStandard, nil, false
	}
	return WitnessV1, []string{addr}, true
}

func extractPubKey(n Network, tokens []Token) (Class, []string, bool) {
	return PubKey, []string{encodePubKey(tokens[0].Data, n.Version)}, true
}

func extractPubKeyHash(n Network, tokens []Token) (Class, []string, bool) {
	hash := tokens[2].Data
	if len(hash) != 20 {
		return NonStandard, nil, false
	}
	return PubKeyHash, []string{base58.CheckEncode(hash, n.Version)}, true
}

func extractMultiSig(n Network, tokens []Token) (Class, []string, bool) {
	keys := tokens[1 : len(tokens)-2]
	addrs := make([]string, 0, len(keys))
	for _, key := range keys {
		addrs = append(addrs, encodePubKey(key.Data, n.Version))
	}
	return MultiSig, addrs, true
}

func extractScriptHash(n Network, tokens []Token) (Class, []string, bool) {
	return ScriptHash, []string{base58.CheckEncode(tokens[1].Data, n.ScriptHashVersion())}, true
}

func encodePubKey(pubKey []byte, version byte) string {
	return base58.CheckEncode(btcutil.Hash160(pubKey), version)
}

// encodeWitness produces a bech32 address for witness version 0 and bech32m for
// later versions.
func encodeWitness(hrp string, version byte, program []byte) (string, error) {
	converted, err := bech32.ConvertBits(program, 8, 5, true)
	if err != nil {
		return "", err
	}
	data := make([]byte, 0, len(converted)+1)
	data = append(data, version)
	data = append(data, converted...)
	if version == 0 {
		return bech32.Encode(hrp, data)
	}
	return bech32.EncodeM(hrp, data)
}
