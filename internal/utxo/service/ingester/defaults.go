package ingester

import "time"

const (
	defaultWorkerCount        = 8
	defaultBatchSize   uint64 = 500

	transactionFlushThreshold = 1000
	outputFlushThreshold      = 10_000
	inputFlushThreshold       = 10_000

	idleSleepDuration         = 5 * time.Second
	errorSleepDuration        = 15 * time.Second
	blockBatcherCapacity      = 200
	blockBatcherFlushInterval = 10 * time.Second
	blockBatcherRPS           = 20
)
