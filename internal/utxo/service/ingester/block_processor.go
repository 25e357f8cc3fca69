package ingester

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-decoder/internal/utxo/model"
	"github.com/goodnatureofminers/blockinsight7000-decoder/pkg/workerpool"
	"go.uber.org/zap"
)

// blockProcessor fetches and decodes a batch of heights concurrently and hands
// the blocks to the writer in height order. Nothing is written when any height
// fails.
type blockProcessor struct {
	workerCount int
	source      BlockSource
	blockWriter BlockWriter
	metrics     Metrics
	logger      *zap.Logger
}

func (p *blockProcessor) Process(ctx context.Context, heights []uint64) error {
	blocks, err := workerpool.Map(ctx, p.workerCount, heights, p.fetchHeight)
	if err != nil {
		return err
	}

	for _, block := range blocks {
		if err := p.blockWriter.WriteBlock(ctx, model.NewInsertBlock(*block)); err != nil {
			p.logger.Error("write block failed", zap.Uint64("height", block.Height), zap.Error(err))
			return fmt.Errorf("write block height %d: %w", block.Height, err)
		}
	}
	return nil
}

func (p *blockProcessor) fetchHeight(ctx context.Context, height uint64) (block *model.BlockDetails, err error) {
	started := time.Now()
	defer func() {
		p.metrics.ObserveProcessHeight(err, height, started)
	}()

	block, err = p.source.FetchBlock(ctx, height)
	if err != nil {
		p.logger.Error("fetch block failed", zap.Uint64("height", height), zap.Error(err))
		return nil, fmt.Errorf("fetch block height %d: %w", height, err)
	}
	return block, nil
}
