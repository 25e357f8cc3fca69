package ingester

import (
	"context"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-decoder/internal/utxo/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	HeightFetcher interface {
		Fetch(ctx context.Context) ([]uint64, error)
		Advance(height uint64)
		Reset()
	}
	BlockProcessor interface {
		Process(ctx context.Context, heights []uint64) error
	}
	BlockWriter interface {
		Start(ctx context.Context)
		Stop()
		WriteBlock(ctx context.Context, b model.InsertBlock) error
		Err() error
	}
	Metrics interface {
		ObserveFetchHeights(err error, started time.Time)
		ObserveProcessBatch(err error, heights int, started time.Time)
		ObserveProcessHeight(err error, height uint64, started time.Time)
		ObserveWriteBatch(err error, blocks int)
	}

	BlockSource interface {
		LatestHeight(ctx context.Context) (uint64, error)
		FetchBlock(ctx context.Context, height uint64) (*model.BlockDetails, error)
	}
	Repository interface {
		MaxBlockHeight(ctx context.Context, coin model.Coin, network model.Network) (uint64, bool, error)
		InsertBlocks(ctx context.Context, blocks []model.Block) error
		InsertTransactions(ctx context.Context, txs []model.Transaction) error
		InsertTransactionOutputs(ctx context.Context, outputs []model.TransactionOutput) error
		InsertTransactionInputs(ctx context.Context, inputs []model.TransactionInput) error
	}
)
