package main

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/goodnatureofminers/blockinsight7000-decoder/internal/clock"
	"github.com/goodnatureofminers/blockinsight7000-decoder/internal/metrics"
	"github.com/goodnatureofminers/blockinsight7000-decoder/internal/utxo/bitcoin"
	"github.com/goodnatureofminers/blockinsight7000-decoder/internal/utxo/model"
	"github.com/jessevdk/go-flags"
	"go.uber.org/zap"
)

type config struct {
	Kind         string        `long:"kind" short:"k" env:"DECODE_KIND" description:"record kind (tx, block, header, merkletx, wallettx, locator, address, setting, script)" required:"true"`
	Network      model.Network `long:"network" env:"DECODE_NETWORK" description:"network whose address conventions are used" default:"mainnet"`
	VersionByte  *uint8        `long:"version-byte" env:"DECODE_VERSION_BYTE" base:"0" description:"key-hash version byte such as 0x6f; overrides --network"`
	Hex          string        `long:"hex" description:"hex-encoded input"`
	File         string        `long:"file" short:"f" description:"binary or hex input file, - for stdin"`
	Setting      string        `long:"setting" description:"wallet setting name for --kind=setting"`
	StrictAuxPow bool          `long:"strict-auxpow" description:"reject merged-mining blocks instead of reading the header only"`
}

func main() {
	cfg := config{}

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()

	if _, err := flags.ParseArgs(&cfg, os.Args); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		logger.Fatal("failed to parse flags", zap.Error(err))
	}

	if err := run(cfg, os.Stdin, os.Stdout); err != nil {
		logger.Fatal("decode failed", zap.String("kind", cfg.Kind), zap.Error(err))
	}
}

func run(cfg config, stdin io.Reader, stdout io.Writer) error {
	raw, err := readInput(cfg, stdin)
	if err != nil {
		return err
	}

	decoders := bitcoin.NewDecoderSet(clock.System{}, func(n model.Network) bitcoin.DecoderMetrics {
		return metrics.NewDecoder(model.BTC, n)
	})
	var decoder *bitcoin.Decoder
	if cfg.VersionByte != nil {
		decoder, err = decoders.ForVersion(*cfg.VersionByte)
	} else {
		decoder, err = decoders.ForNetwork(cfg.Network)
	}
	if err != nil {
		return err
	}

	result, err := decoder.Decode(bitcoin.Request{
		Kind:         bitcoin.Kind(cfg.Kind),
		Raw:          raw,
		Setting:      cfg.Setting,
		StrictAuxPow: cfg.StrictAuxPow,
	})
	if err != nil {
		return err
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

// readInput returns the bytes given by --hex or --file. File contents that
// look like hex text are decoded, anything else is taken as binary.
func readInput(cfg config, stdin io.Reader) ([]byte, error) {
	switch {
	case cfg.Hex != "" && cfg.File != "":
		return nil, errors.New("--hex and --file are mutually exclusive")
	case cfg.Hex != "":
		raw, err := hex.DecodeString(strings.TrimSpace(cfg.Hex))
		if err != nil {
			return nil, fmt.Errorf("decode --hex: %w", err)
		}
		return raw, nil
	case cfg.File == "":
		return nil, errors.New("one of --hex or --file is required")
	}

	var (
		data []byte
		err  error
	)
	if cfg.File == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(cfg.File)
	}
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	text := bytes.TrimSpace(data)
	if len(text) > 0 && len(text)%2 == 0 && isHex(text) {
		raw := make([]byte, len(text)/2)
		if _, err := hex.Decode(raw, text); err == nil {
			return raw, nil
		}
	}
	return data, nil
}

func isHex(b []byte) bool {
	for _, c := range b {
		switch {
		case c >= '0' && c <= '9', c >= 'a' && c <= 'f', c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}
