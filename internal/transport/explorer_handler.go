// Package transport exposes gRPC/HTTP handlers.
package transport

import (
	"bytes"
	"context"
	"fmt"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/goodnatureofminers/blockinsight7000-decoder/internal/utxo/bitcoin"
	"github.com/goodnatureofminers/blockinsight7000-decoder/internal/utxo/model"
	blockinsight7000v1 "github.com/goodnatureofminers/blockinsight7000-proto/pkg/blockinsight7000/v1"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ExplorerHandler implements ExplorerServiceServer.
type ExplorerHandler struct {
	blockinsight7000v1.UnimplementedExplorerServiceServer

	decoder Decoder
	probe   []byte
}

// NewExplorerHandler returns an ExplorerHandler whose health check decodes
// the mainnet genesis header.
func NewExplorerHandler(decoder Decoder) blockinsight7000v1.ExplorerServiceServer {
	var buf bytes.Buffer
	// writes to a bytes.Buffer do not fail
	_ = chaincfg.MainNetParams.GenesisBlock.Header.Serialize(&buf)
	return &ExplorerHandler{decoder: decoder, probe: buf.Bytes()}
}

// Health reports server health.
func (h *ExplorerHandler) Health(_ context.Context, _ *blockinsight7000v1.HealthRequest) (*blockinsight7000v1.HealthResponse, error) {
	got, err := h.decoder.Decode(model.Mainnet, bitcoin.Request{Kind: bitcoin.KindHeader, Raw: h.probe})
	if err != nil {
		return nil, status.Errorf(codes.Unavailable, "decoder self-check: %v", err)
	}
	header, ok := got.(model.Block)
	if !ok || header.Hash != chaincfg.MainNetParams.GenesisHash.String() {
		return nil, status.Error(codes.Unavailable, fmt.Sprintf("decoder self-check: unexpected result %T", got))
	}

	return &blockinsight7000v1.HealthResponse{
		Status:      blockinsight7000v1.HealthStatus_HEALTH_STATUS_HEALTHY,
		Description: fmt.Sprintf("decoding %d record kinds", len(bitcoin.Kinds)),
	}, nil
}
