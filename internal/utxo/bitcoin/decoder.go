package bitcoin

import (
	"errors"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-decoder/internal/utxo/deserialize"
	"github.com/goodnatureofminers/blockinsight7000-decoder/internal/utxo/model"
	"github.com/goodnatureofminers/blockinsight7000-decoder/pkg/cursor"
)

// Kind selects the record type of a raw buffer.
type Kind string

const (
	KindTransaction Kind = "tx"
	KindBlock       Kind = "block"
	KindHeader      Kind = "header"
	KindMerkleTx    Kind = "merkletx"
	KindWalletTx    Kind = "wallettx"
	KindLocator     Kind = "locator"
	KindAddress     Kind = "address"
	KindSetting     Kind = "setting"
	KindScript      Kind = "script"
)

// Kinds lists every supported record type.
var Kinds = []Kind{
	KindTransaction, KindBlock, KindHeader, KindMerkleTx, KindWalletTx,
	KindLocator, KindAddress, KindSetting, KindScript,
}

// ErrUnknownKind is returned for record types the decoder does not know.
var ErrUnknownKind = errors.New("unknown record kind")

// Request describes one buffer to decode.
type Request struct {
	Kind Kind
	Raw  []byte
	// Setting names the wallet setting for KindSetting.
	Setting      string
	StrictAuxPow bool
}

// Decoder parses raw buffers and presents them with a Builder.
type Decoder struct {
	builder *Builder
	metrics DecoderMetrics
}

// NewDecoder constructs a Decoder.
func NewDecoder(builder *Builder, metrics DecoderMetrics) *Decoder {
	return &Decoder{builder: builder, metrics: metrics}
}

// Decode parses req.Raw as req.Kind and returns its model presentation.
func (d *Decoder) Decode(req Request) (result any, err error) {
	started := time.Now()
	defer func() {
		d.metrics.Observe(string(req.Kind), len(req.Raw), err, started)
	}()

	c := cursor.New(req.Raw)
	switch req.Kind {
	case KindTransaction:
		tx, err := deserialize.ParseTransaction(c)
		if err != nil {
			return nil, err
		}
		return d.builder.Transaction(tx)
	case KindBlock:
		block, err := deserialize.ParseBlock(c, deserialize.BlockOptions{StrictAuxPow: req.StrictAuxPow})
		if err != nil {
			return nil, err
		}
		return d.builder.Block(block, 0)
	case KindHeader:
		header, err := deserialize.ParseBlockHeader(c)
		if err != nil {
			return nil, err
		}
		if req.StrictAuxPow && header.HasAuxPow() {
			return nil, fmt.Errorf("%w: auxiliary proof of work in header version 0x%08x", deserialize.ErrUnsupportedStructure, uint32(header.Version))
		}
		return d.builder.Header(&header, 0), nil
	case KindMerkleTx:
		m, err := deserialize.ParseMerkleTx(c)
		if err != nil {
			return nil, err
		}
		return d.builder.MerkleTx(m)
	case KindWalletTx:
		w, err := deserialize.ParseWalletTx(c)
		if err != nil {
			return nil, err
		}
		return d.builder.WalletTx(w)
	case KindLocator:
		l, err := deserialize.ParseBlockLocator(c)
		if err != nil {
			return nil, err
		}
		return BlockLocator(l), nil
	case KindAddress:
		a, err := deserialize.ParseNetAddress(c)
		if err != nil {
			return nil, err
		}
		return NetAddress(a), nil
	case KindSetting:
		v, err := deserialize.ParseSetting(c, req.Setting)
		if err != nil {
			return nil, err
		}
		return Setting(req.Setting, v), nil
	case KindScript:
		return d.builder.Script(req.Raw), nil
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownKind, req.Kind)
	}
}

// Block decodes a raw block fetched at height. AuxPow blocks are read leniently.
func (d *Decoder) Block(raw []byte, height uint64) (details model.BlockDetails, err error) {
	started := time.Now()
	defer func() {
		d.metrics.Observe(string(KindBlock), len(raw), err, started)
	}()

	block, err := deserialize.ParseBlock(cursor.New(raw), deserialize.BlockOptions{})
	if err != nil {
		return model.BlockDetails{}, err
	}
	return d.builder.Block(block, height)
}
