package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/btcsuite/btcd/rpcclient"
	"github.com/goodnatureofminers/blockinsight7000-decoder/internal/clock"
	"github.com/goodnatureofminers/blockinsight7000-decoder/internal/metrics"
	"github.com/goodnatureofminers/blockinsight7000-decoder/internal/utxo/bitcoin"
	"github.com/goodnatureofminers/blockinsight7000-decoder/internal/utxo/model"
	"github.com/goodnatureofminers/blockinsight7000-decoder/internal/utxo/repository/clickhouse"
	"github.com/goodnatureofminers/blockinsight7000-decoder/internal/utxo/script"
	"github.com/goodnatureofminers/blockinsight7000-decoder/internal/utxo/service/ingester"
	"github.com/jessevdk/go-flags"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type config struct {
	ClickhouseDSN string        `long:"clickhouse-dsn" env:"RAW_INGESTER_CLICKHOUSE_DSN" description:"ClickHouse DSN" required:"true"`
	Coin          model.Coin    `long:"coin" env:"RAW_INGESTER_COIN" description:"coin name" default:"BTC"`
	Network       model.Network `long:"network" env:"RAW_INGESTER_NETWORK" description:"network name (mainnet, testnet, regtest, signet)" default:"mainnet"`
	RPCURL        string        `long:"rpc-url" env:"RAW_INGESTER_RPC_URL" description:"Bitcoin RPC URL" default:"http://127.0.0.1:8332"`
	RPCUser       string        `long:"rpc-user" env:"RAW_INGESTER_RPC_USER" description:"Bitcoin RPC username"`
	RPCPassword   string        `long:"rpc-password" env:"RAW_INGESTER_RPC_PASSWORD" description:"Bitcoin RPC password"`
	Workers       int           `long:"workers" env:"RAW_INGESTER_WORKERS" description:"concurrent block fetches" default:"8"`
	Batch         uint64        `long:"batch" env:"RAW_INGESTER_BATCH" description:"heights per iteration" default:"500"`
	MetricsAddr   string        `long:"metrics-addr" env:"RAW_INGESTER_METRICS_ADDR" description:"address for metrics server" default:":2112"`
}

func main() {
	cfg := config{}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

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

	if err := run(ctx, cfg, logger); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal("raw ingester failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config, logger *zap.Logger) error {
	network, err := script.NetworkForName(cfg.Network)
	if err != nil {
		return err
	}
	// stored rows carry the canonical btcd network name
	cfg.Network = network.Name

	startMetricsServer(ctx, cfg.MetricsAddr, logger)

	repo, err := clickhouse.NewRepository(cfg.ClickhouseDSN, metrics.NewClickhouseRepository())
	if err != nil {
		return fmt.Errorf("init repository: %w", err)
	}
	defer func() {
		if err := repo.Close(); err != nil {
			logger.Warn("close repository", zap.Error(err))
		}
	}()

	node, err := newNodeClient(cfg.RPCURL, cfg.RPCUser, cfg.RPCPassword)
	if err != nil {
		return fmt.Errorf("init rpc client: %w", err)
	}
	defer func() {
		node.Shutdown()
		node.WaitForShutdown()
	}()

	decoders := bitcoin.NewDecoderSet(clock.System{}, func(n model.Network) bitcoin.DecoderMetrics {
		return metrics.NewDecoder(cfg.Coin, n)
	})
	decoder, err := decoders.ForNetwork(cfg.Network)
	if err != nil {
		return err
	}
	source := bitcoin.NewRawSource(
		bitcoin.NewRPCClient(node, metrics.NewRPCClient(cfg.Coin, cfg.Network)),
		decoder,
	)

	svc, err := ingester.NewService(
		repo,
		source,
		metrics.NewRawIngester(cfg.Coin, cfg.Network),
		cfg.Coin,
		cfg.Network,
		ingester.Config{Workers: cfg.Workers, BatchSize: cfg.Batch},
		logger.Named("ingester"),
	)
	if err != nil {
		return err
	}
	return svc.Run(ctx)
}

func startMetricsServer(ctx context.Context, addr string, logger *zap.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("starting metrics server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", zap.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("failed to shutdown metrics server", zap.Error(err))
		}
	}()
}

func newNodeClient(rawURL, user, password string) (*rpcclient.Client, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse rpc url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("rpc url scheme %q not supported, use http or https", parsed.Scheme)
	}
	if parsed.Host == "" {
		return nil, errors.New("rpc url missing host")
	}

	return rpcclient.New(&rpcclient.ConnConfig{
		Host:         parsed.Host,
		User:         user,
		Pass:         password,
		HTTPPostMode: true,
		DisableTLS:   parsed.Scheme == "http",
	}, nil)
}
