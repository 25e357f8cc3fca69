package script

import (
	"errors"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/goodnatureofminers/blockinsight7000-decoder/internal/utxo/model"
)

// ErrUnknownNetwork is returned when no address convention matches the
// requested network name or version byte.
var ErrUnknownNetwork = errors.New("unknown network")

// DefaultVersion is the mainnet pay-to-pubkey-hash version byte.
const DefaultVersion = 0x00

// Network carries the address conventions the classifier needs: the base58
// version byte for key hashes and the bech32 human-readable prefix.
type Network struct {
	Name      model.Network
	Version   byte
	Bech32HRP string
}

// ScriptHashVersion selects between the two pay-to-script-hash version bytes:
// the mainnet one for the default version byte and the alternate one otherwise.
func (n Network) ScriptHashVersion() byte {
	if n.Version == chaincfg.MainNetParams.PubKeyHashAddrID {
		return chaincfg.MainNetParams.ScriptHashAddrID
	}
	return chaincfg.TestNet3Params.ScriptHashAddrID
}

// lookup order matters for NetworkForVersion: testnet3 wins over signet and
// regtest, which share its version byte.
var knownParams = []*chaincfg.Params{
	&chaincfg.MainNetParams,
	&chaincfg.TestNet3Params,
	&chaincfg.SigNetParams,
	&chaincfg.RegressionNetParams,
}

// NetworkForParams derives the address conventions of a btcd network.
func NetworkForParams(params *chaincfg.Params) Network {
	return Network{
		Name:      model.Network(params.Name),
		Version:   params.PubKeyHashAddrID,
		Bech32HRP: params.Bech32HRPSegwit,
	}
}

// NetworkForVersion finds the network whose key-hash version byte is version.
func NetworkForVersion(version byte) (Network, error) {
	for _, params := range knownParams {
		if params.PubKeyHashAddrID == version {
			return NetworkForParams(params), nil
		}
	}
	return Network{}, fmt.Errorf("%w: version byte 0x%02x", ErrUnknownNetwork, version)
}

// NetworkForName resolves a network name such as "mainnet" or "testnet".
func NetworkForName(network model.Network) (Network, error) {
	params, err := ParamsForNetwork(network)
	if err != nil {
		return Network{}, err
	}
	return NetworkForParams(params), nil
}

// ParamsForNetwork maps a network name and its aliases to btcd chain params.
func ParamsForNetwork(network model.Network) (*chaincfg.Params, error) {
	switch strings.ToLower(string(network)) {
	case "main", "mainnet", "bitcoin":
		return &chaincfg.MainNetParams, nil
	case "testnet", "testnet3":
		return &chaincfg.TestNet3Params, nil
	case "regtest":
		return &chaincfg.RegressionNetParams, nil
	case "signet":
		return &chaincfg.SigNetParams, nil
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownNetwork, network)
	}
}
