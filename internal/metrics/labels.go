// Package metrics exposes application metrics collectors.
package metrics

import "github.com/goodnatureofminers/blockinsight7000-decoder/internal/utxo/model"

const namespace = "blockinsight7000"

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

func orUnknown[T ~string](v T) string {
	if v == "" {
		return "unknown"
	}
	return string(v)
}

// chainLabels holds the coin and network label values shared by collectors.
type chainLabels struct {
	coin    string
	network string
}

func newChainLabels(coin model.Coin, network model.Network) chainLabels {
	return chainLabels{coin: orUnknown(coin), network: orUnknown(network)}
}
