package transport

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/goodnatureofminers/blockinsight7000-decoder/internal/utxo/bitcoin"
	"github.com/goodnatureofminers/blockinsight7000-decoder/internal/utxo/deserialize"
	"github.com/goodnatureofminers/blockinsight7000-decoder/internal/utxo/model"
	gwruntime "github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"go.uber.org/zap"
)

// DecodePath is the REST route served by DecodeHandler.
const DecodePath = "/v1/decode/{kind}"

const maxDecodeBody = 8 << 20

type decodeRequest struct {
	Hex          string `json:"hex"`
	Network      string `json:"network"`
	Setting      string `json:"setting"`
	StrictAuxPow bool   `json:"strict_auxpow"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// DecodeHandler decodes hex-encoded records posted as JSON.
type DecodeHandler struct {
	decoder Decoder
	logger  *zap.Logger
}

// NewDecodeHandler returns a DecodeHandler.
func NewDecodeHandler(decoder Decoder, logger *zap.Logger) *DecodeHandler {
	return &DecodeHandler{decoder: decoder, logger: logger}
}

// Register mounts the handler on a gateway mux.
func (h *DecodeHandler) Register(mux *gwruntime.ServeMux) error {
	return mux.HandlePath(http.MethodPost, DecodePath, h.Decode)
}

// Decode handles POST /v1/decode/{kind}. Malformed input yields 400 and
// structures the decoder refuses yield 422.
func (h *DecodeHandler) Decode(w http.ResponseWriter, r *http.Request, params map[string]string) {
	var body decodeRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxDecodeBody)).Decode(&body); err != nil {
		h.writeError(w, http.StatusBadRequest, fmt.Errorf("read request: %w", err))
		return
	}
	raw, err := hex.DecodeString(strings.TrimSpace(body.Hex))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, fmt.Errorf("decode hex: %w", err))
		return
	}
	network := model.Network(body.Network)
	if network == "" {
		network = model.Mainnet
	}

	result, err := h.decoder.Decode(network, bitcoin.Request{
		Kind:         bitcoin.Kind(params["kind"]),
		Raw:          raw,
		Setting:      body.Setting,
		StrictAuxPow: body.StrictAuxPow,
	})
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, deserialize.ErrUnsupportedStructure) {
			status = http.StatusUnprocessableEntity
		}
		h.writeError(w, status, err)
		return
	}

	h.writeJSON(w, http.StatusOK, result)
}

func (h *DecodeHandler) writeError(w http.ResponseWriter, status int, err error) {
	h.logger.Debug("decode request rejected", zap.Int("status", status), zap.Error(err))
	h.writeJSON(w, status, errorResponse{Error: err.Error()})
}

func (h *DecodeHandler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Warn("write response failed", zap.Error(err))
	}
}
