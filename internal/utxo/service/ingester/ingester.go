// Package ingester stores blocks fetched from a node and decoded locally.
package ingester

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-decoder/internal/clock"
	"github.com/goodnatureofminers/blockinsight7000-decoder/internal/utxo/model"
	"go.uber.org/zap"
)

// Config tunes the ingestion loop. Zero values fall back to defaults.
type Config struct {
	Workers   int
	BatchSize uint64
}

type Service struct {
	logger             *zap.Logger
	metrics            Metrics
	sleep              func(context.Context, time.Duration) error
	idleSleepDuration  time.Duration
	errorSleepDuration time.Duration
	heightFetcher      HeightFetcher
	blockProcessor     BlockProcessor
	blockWriter        BlockWriter
}

func NewService(
	repo Repository,
	source BlockSource,
	metrics Metrics,
	coin model.Coin,
	network model.Network,
	cfg Config,
	logger *zap.Logger,
) (*Service, error) {
	if metrics == nil {
		return nil, errors.New("ingester metrics is required")
	}
	if repo == nil || source == nil {
		return nil, errors.New("ingester repository and source are required")
	}
	if cfg.Workers <= 0 {
		cfg.Workers = defaultWorkerCount
	}
	if cfg.BatchSize == 0 {
		cfg.BatchSize = defaultBatchSize
	}

	logger = logger.With(
		zap.String("coin", string(coin)),
		zap.String("network", string(network)),
	)
	bw := newBlockWriter(repo, metrics, logger.Named("blockWriter"))

	return &Service{
		logger:             logger,
		metrics:            metrics,
		sleep:              clock.SleepWithContext,
		idleSleepDuration:  idleSleepDuration,
		errorSleepDuration: errorSleepDuration,
		heightFetcher: &heightFetcher{
			repository: repo,
			source:     source,
			coin:       coin,
			network:    network,
			limit:      cfg.BatchSize,
		},
		blockWriter: bw,
		blockProcessor: &blockProcessor{
			workerCount: cfg.Workers,
			source:      source,
			blockWriter: bw,
			metrics:     metrics,
			logger:      logger.Named("blockProcessor"),
		},
	}, nil
}

// Run ingests until ctx is canceled or the writer fails. Fetch and decode
// errors are retried after a pause.
func (s *Service) Run(ctx context.Context) error {
	s.blockWriter.Start(ctx)
	defer s.blockWriter.Stop()

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := s.blockWriter.Err(); err != nil {
			return fmt.Errorf("store blocks: %w", err)
		}
		if err := s.run(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			s.logger.Warn("run iteration failed, backing off", zap.Error(err), zap.Duration("sleep", s.errorSleepDuration))
			s.heightFetcher.Reset()
			if sleepErr := s.sleep(ctx, s.errorSleepDuration); sleepErr != nil {
				return sleepErr
			}
		}
	}
}

func (s *Service) run(ctx context.Context) error {
	started := time.Now()
	heights, err := s.heightFetcher.Fetch(ctx)
	s.metrics.ObserveFetchHeights(err, started)
	if err != nil {
		s.logger.Error("fetch next heights failed", zap.Error(err))
		return err
	}

	if len(heights) == 0 {
		s.logger.Debug("caught up with node; going idle", zap.Duration("sleep", s.idleSleepDuration))
		return s.sleep(ctx, s.idleSleepDuration)
	}

	s.logger.Info("processing batch",
		zap.Int("height_count", len(heights)),
		zap.Uint64("from", heights[0]),
		zap.Uint64("to", heights[len(heights)-1]),
	)
	started = time.Now()
	err = s.blockProcessor.Process(ctx, heights)
	s.metrics.ObserveProcessBatch(err, len(heights), started)
	if err != nil {
		s.logger.Error("process batch failed", zap.Int("height_count", len(heights)), zap.Error(err))
		return err
	}

	s.heightFetcher.Advance(heights[len(heights)-1])
	return nil
}
