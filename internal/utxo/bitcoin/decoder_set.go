package bitcoin

import (
	"sync"

	"github.com/goodnatureofminers/blockinsight7000-decoder/internal/clock"
	"github.com/goodnatureofminers/blockinsight7000-decoder/internal/utxo/model"
	"github.com/goodnatureofminers/blockinsight7000-decoder/internal/utxo/script"
)

// DecoderSet builds one Decoder per network on first use.
type DecoderSet struct {
	clock   clock.Clock
	metrics func(network model.Network) DecoderMetrics

	mu       sync.Mutex
	decoders map[model.Network]*Decoder
}

// NewDecoderSet constructs a DecoderSet. metrics is called once per network.
func NewDecoderSet(clk clock.Clock, metrics func(network model.Network) DecoderMetrics) *DecoderSet {
	return &DecoderSet{
		clock:    clk,
		metrics:  metrics,
		decoders: make(map[model.Network]*Decoder),
	}
}

// ForNetwork returns the decoder for a network name or alias.
func (s *DecoderSet) ForNetwork(name model.Network) (*Decoder, error) {
	network, err := script.NetworkForName(name)
	if err != nil {
		return nil, err
	}
	return s.forNetwork(network), nil
}

// ForVersion returns the decoder for the network owning a key-hash version byte.
func (s *DecoderSet) ForVersion(version byte) (*Decoder, error) {
	network, err := script.NetworkForVersion(version)
	if err != nil {
		return nil, err
	}
	return s.forNetwork(network), nil
}

// Decode decodes req with the decoder of the named network.
func (s *DecoderSet) Decode(name model.Network, req Request) (any, error) {
	d, err := s.ForNetwork(name)
	if err != nil {
		return nil, err
	}
	return d.Decode(req)
}

func (s *DecoderSet) forNetwork(network script.Network) *Decoder {
	s.mu.Lock()
	defer s.mu.Unlock()

	if d, ok := s.decoders[network.Name]; ok {
		return d
	}
	d := NewDecoder(NewBuilder(script.NewClassifier(network), s.clock), s.metrics(network.Name))
	s.decoders[network.Name] = d
	return d
}
