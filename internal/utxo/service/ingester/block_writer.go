package ingester

import (
	"context"
	"fmt"
	"sync"

	"github.com/goodnatureofminers/blockinsight7000-decoder/internal/utxo/model"
	"github.com/goodnatureofminers/blockinsight7000-decoder/pkg/batcher"
	"go.uber.org/zap"
)

// blockWriter buffers decoded blocks and stores them in batches. Rows are
// inserted transactions first and blocks last, so a stored block implies its
// rows are stored. After a failed flush the writer refuses further work and
// reports the failure through Err.
type blockWriter struct {
	repo         Repository
	metrics      Metrics
	logger       *zap.Logger
	blockBatcher *batcher.Batcher[model.InsertBlock]

	mu  sync.Mutex
	err error
}

func newBlockWriter(repo Repository, metrics Metrics, logger *zap.Logger) *blockWriter {
	w := &blockWriter{
		repo:    repo,
		metrics: metrics,
		logger:  logger,
	}

	w.blockBatcher = batcher.New[model.InsertBlock](
		logger.Named("blockBatcher"),
		w.flush,
		blockBatcherCapacity,
		blockBatcherFlushInterval,
		blockBatcherRPS,
	)
	w.blockBatcher.OnFlushError(w.fail)
	return w
}

func (w *blockWriter) Start(ctx context.Context) {
	w.blockBatcher.Start(ctx)
}

func (w *blockWriter) Stop() {
	w.blockBatcher.Stop()
}

func (w *blockWriter) WriteBlock(ctx context.Context, b model.InsertBlock) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := w.Err(); err != nil {
		return err
	}

	return w.blockBatcher.Add(ctx, b)
}

// Err returns the first flush failure, if any.
func (w *blockWriter) Err() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.err
}

func (w *blockWriter) fail(err error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.err == nil {
		w.err = err
	}
}

func (w *blockWriter) flush(ctx context.Context, insertBlocks []model.InsertBlock) (err error) {
	if err = w.Err(); err != nil {
		return fmt.Errorf("writer stopped after earlier failure: %w", err)
	}
	defer func() {
		w.metrics.ObserveWriteBatch(err, len(insertBlocks))
	}()

	blocks := make([]model.Block, 0, len(insertBlocks))
	txs := make([]model.Transaction, 0, transactionFlushThreshold)
	inputs := make([]model.TransactionInput, 0, inputFlushThreshold)
	outputs := make([]model.TransactionOutput, 0, outputFlushThreshold)

	for _, block := range insertBlocks {
		blocks = append(blocks, block.Block)
		txs = append(txs, block.Txs...)
		inputs = append(inputs, block.Inputs...)
		outputs = append(outputs, block.Outputs...)

		if len(txs) >= transactionFlushThreshold {
			if err = w.repo.InsertTransactions(ctx, txs); err != nil {
				return err
			}
			txs = txs[:0]
		}
		if len(inputs) >= inputFlushThreshold {
			if err = w.repo.InsertTransactionInputs(ctx, inputs); err != nil {
				return err
			}
			inputs = inputs[:0]
		}
		if len(outputs) >= outputFlushThreshold {
			if err = w.repo.InsertTransactionOutputs(ctx, outputs); err != nil {
				return err
			}
			outputs = outputs[:0]
		}
	}

	if err = w.repo.InsertTransactions(ctx, txs); err != nil {
		return err
	}
	if err = w.repo.InsertTransactionInputs(ctx, inputs); err != nil {
		return err
	}
	if err = w.repo.InsertTransactionOutputs(ctx, outputs); err != nil {
		return err
	}
	if err = w.repo.InsertBlocks(ctx, blocks); err != nil {
		return err
	}

	w.logger.Debug("blocks stored",
		zap.Int("count", len(blocks)),
		zap.Uint64("from", blocks[0].Height),
		zap.Uint64("to", blocks[len(blocks)-1].Height),
	)
	return nil
}
