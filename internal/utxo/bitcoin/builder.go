// Package bitcoin turns decoded Bitcoin wire structures into the model shapes
// and feeds raw blocks from a node into the decoder.
package bitcoin

import (
	"encoding/hex"
	"fmt"
	"time"

	"github.com/btcsuite/btcd/txscript"
	"github.com/goodnatureofminers/blockinsight7000-decoder/internal/clock"
	"github.com/goodnatureofminers/blockinsight7000-decoder/internal/utxo/deserialize"
	"github.com/goodnatureofminers/blockinsight7000-decoder/internal/utxo/model"
	"github.com/goodnatureofminers/blockinsight7000-decoder/internal/utxo/script"
	"github.com/goodnatureofminers/blockinsight7000-decoder/pkg/safe"
	"github.com/shopspring/decimal"
)

// satoshiExp scales satoshi integers to whole coins.
const satoshiExp = -8

// Builder converts parsed structures into model values, resolving output
// addresses with a script classifier.
type Builder struct {
	classifier *script.Classifier
	clock      clock.Clock
	network    model.Network
}

// NewBuilder constructs a Builder. Block times are clamped against clk.
func NewBuilder(classifier *script.Classifier, clk clock.Clock) *Builder {
	return &Builder{
		classifier: classifier,
		clock:      clk,
		network:    classifier.Network().Name,
	}
}

// Amount converts satoshis to a fixed-point coin value.
func Amount(sats int64) decimal.Decimal {
	return decimal.New(sats, satoshiExp)
}

// Transaction presents a standalone transaction.
func (b *Builder) Transaction(tx *deserialize.Transaction) (model.TxDetails, error) {
	return b.transaction(tx, 0, time.Time{})
}

func (b *Builder) transaction(tx *deserialize.Transaction, height uint64, blockTime time.Time) (model.TxDetails, error) {
	txid := tx.TxID()

	size, err := safe.Uint32(tx.Size)
	if err != nil {
		return model.TxDetails{}, fmt.Errorf("tx %s size: %w", txid, err)
	}
	vsize, err := safe.Uint32(tx.VSize())
	if err != nil {
		return model.TxDetails{}, fmt.Errorf("tx %s vsize: %w", txid, err)
	}
	baseSize, err := safe.Uint32(tx.BaseSize())
	if err != nil {
		return model.TxDetails{}, fmt.Errorf("tx %s base size: %w", txid, err)
	}
	inputCount, err := safe.Uint32(len(tx.Inputs))
	if err != nil {
		return model.TxDetails{}, fmt.Errorf("tx %s vin count: %w", txid, err)
	}
	outputCount, err := safe.Uint32(len(tx.Outputs))
	if err != nil {
		return model.TxDetails{}, fmt.Errorf("tx %s vout count: %w", txid, err)
	}

	details := model.TxDetails{
		Transaction: model.Transaction{
			Coin:        model.BTC,
			Network:     b.network,
			TxID:        txid,
			BlockHeight: height,
			Timestamp:   blockTime,
			Size:        size,
			VSize:       vsize,
			BaseSize:    baseSize,
			HasWitness:  tx.HasWitness,
			Version:     tx.Version,
			LockTime:    tx.LockTime,
			InputCount:  inputCount,
			OutputCount: outputCount,
		},
		Inputs:  make([]model.TransactionInput, 0, len(tx.Inputs)),
		Outputs: make([]model.TransactionOutput, 0, len(tx.Outputs)),
	}

	for idx, in := range tx.Inputs {
		input := b.input(in)
		input.Network = b.network
		input.BlockHeight = height
		input.TxID = txid
		input.Index = uint32(idx)
		details.Inputs = append(details.Inputs, input)
	}
	for idx, out := range tx.Outputs {
		output := b.Output(out)
		output.BlockHeight = height
		output.TxID = txid
		output.Index = uint32(idx)
		details.Outputs = append(details.Outputs, output)
	}
	return details, nil
}

func (b *Builder) input(in deserialize.TxIn) model.TransactionInput {
	input := model.TransactionInput{
		Coin:       model.BTC,
		IsCoinbase: in.IsCoinbase(),
		Sequence:   in.Sequence,
	}
	if input.IsCoinbase {
		input.Coinbase = hex.EncodeToString(in.Script)
	} else {
		vout := in.PrevIndex
		input.PrevTxID = in.PrevHash.String()
		input.PrevVout = &vout
		input.ScriptSigHex = hex.EncodeToString(in.Script)
		input.ScriptSigAsm = disasm(in.Script)
	}
	if len(in.Witness) > 0 {
		input.Witness = make([]string, 0, len(in.Witness))
		for _, item := range in.Witness {
			input.Witness = append(input.Witness, hex.EncodeToString(item))
		}
	}
	return input
}

// Output presents a transaction output, resolving its destination addresses.
func (b *Builder) Output(out deserialize.TxOut) model.TransactionOutput {
	class, addrs := b.classifier.Classify(out.Script)
	if addrs == nil {
		addrs = []string{}
	}
	return model.TransactionOutput{
		Coin:       model.BTC,
		Network:    b.network,
		Value:      out.Value,
		Amount:     Amount(out.Value),
		ScriptType: string(class),
		ScriptHex:  hex.EncodeToString(out.Script),
		ScriptAsm:  disasm(out.Script),
		Addresses:  addrs,
	}
}

// Script presents a bare script.
func (b *Builder) Script(raw []byte) model.Script {
	class, addrs := b.classifier.Classify(raw)
	if addrs == nil {
		addrs = []string{}
	}
	return model.Script{
		Hex:         hex.EncodeToString(raw),
		Asm:         disasm(raw),
		Description: script.Describe(raw),
		Type:        string(class),
		Addresses:   addrs,
	}
}

// Header presents a block header alone.
func (b *Builder) Header(h *deserialize.BlockHeader, height uint64) model.Block {
	return model.Block{
		Coin:       model.BTC,
		Network:    b.network,
		Height:     height,
		Hash:       h.BlockHash().String(),
		PrevHash:   h.PrevBlock.String(),
		MerkleRoot: h.MerkleRoot.String(),
		Version:    h.Version,
		HeaderTime: h.Timestamp(),
		Timestamp:  clock.Min(b.clock, h.Timestamp()),
		Bits:       h.Bits,
		Nonce:      h.Nonce,
		Size:       deserialize.HeaderSize,
		AuxPow:     h.HasAuxPow(),
	}
}

// Block presents a block. Every transaction carries the block time clamped to
// the current wall clock.
func (b *Builder) Block(block *deserialize.Block, height uint64) (model.BlockDetails, error) {
	header := b.Header(&block.Header, height)

	size, err := safe.Uint32(block.Size)
	if err != nil {
		return model.BlockDetails{}, fmt.Errorf("block %s size: %w", header.Hash, err)
	}
	txCount, err := safe.Uint32(len(block.Transactions))
	if err != nil {
		return model.BlockDetails{}, fmt.Errorf("block %s tx count: %w", header.Hash, err)
	}
	header.Size = size
	header.TXCount = txCount

	details := model.BlockDetails{
		Block:        header,
		Transactions: make([]model.TxDetails, 0, len(block.Transactions)),
	}
	for i, tx := range block.Transactions {
		txDetails, err := b.transaction(tx, height, header.Timestamp)
		if err != nil {
			return model.BlockDetails{}, fmt.Errorf("block %s tx %d: %w", header.Hash, i, err)
		}
		details.Transactions = append(details.Transactions, txDetails)
	}
	return details, nil
}

// MerkleTx presents a merkle-anchored transaction.
func (b *Builder) MerkleTx(m deserialize.MerkleTx) (model.MerkleTx, error) {
	tx, err := b.Transaction(m.Tx)
	if err != nil {
		return model.MerkleTx{}, err
	}
	branch := make([]string, 0, len(m.MerkleBranch))
	for _, h := range m.MerkleBranch {
		branch = append(branch, h.String())
	}
	return model.MerkleTx{
		TxDetails:    tx,
		BlockHash:    m.BlockHash.String(),
		MerkleBranch: branch,
		Index:        m.Index,
	}, nil
}

// WalletTx presents a legacy wallet transaction record.
func (b *Builder) WalletTx(w deserialize.WalletTx) (model.WalletTx, error) {
	merkle, err := b.MerkleTx(w.MerkleTx)
	if err != nil {
		return model.WalletTx{}, err
	}
	prev := make([]model.MerkleTx, 0, len(w.PrevTxs))
	for i, p := range w.PrevTxs {
		m, err := b.MerkleTx(p)
		if err != nil {
			return model.WalletTx{}, fmt.Errorf("vtxprev %d: %w", i, err)
		}
		prev = append(prev, m)
	}
	orderForm := make([]model.OrderFormEntry, 0, len(w.OrderForm))
	for _, e := range w.OrderForm {
		orderForm = append(orderForm, model.OrderFormEntry{Key: e.Key, Value: e.Value})
	}
	return model.WalletTx{
		MerkleTx:             merkle,
		PrevTxs:              prev,
		MapValue:             w.MapValue,
		OrderForm:            orderForm,
		TimeReceivedIsTxTime: w.TimeReceivedIsTxTime,
		TimeReceived:         time.Unix(int64(w.TimeReceived), 0).UTC(),
		FromMe:               w.FromMe,
		Spent:                w.Spent,
	}, nil
}

// BlockLocator presents a block locator; Top is the most recent hash.
func BlockLocator(l deserialize.BlockLocator) model.BlockLocator {
	out := model.BlockLocator{Hashes: make([]string, 0, len(l.Hashes))}
	for _, h := range l.Hashes {
		out.Hashes = append(out.Hashes, h.String())
	}
	if len(out.Hashes) > 0 {
		out.Top = out.Hashes[0]
	}
	return out
}

// NetAddress presents a peer address record.
func NetAddress(a deserialize.NetAddress) model.NetAddress {
	return model.NetAddress{
		Version:  a.Version,
		LastSeen: a.LastSeen(),
		Services: a.Services,
		IP:       a.IP.String(),
		Port:     a.Port,
		Display:  a.String(),
	}
}

// Setting presents a decoded wallet setting value.
func Setting(name string, value any) model.Setting {
	if addr, ok := value.(deserialize.NetAddress); ok {
		value = NetAddress(addr)
	}
	return model.Setting{Name: name, Value: value}
}

// disasm renders a script in the reference client's asm form. Malformed
// scripts keep the readable prefix followed by "[error]".
func disasm(raw []byte) string {
	s, _ := txscript.DisasmString(raw)
	return s
}
