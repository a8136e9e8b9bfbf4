package radix

import (
	"time"
)

// retryDelay is the fixed wait between retry attempts. There is deliberately
// no jitter or backoff anywhere in this library; a fixed interval with a fixed
// cap is the only retry policy. Package level so tests can shorten it.
var retryDelay = time.Millisecond * 500

// DivideInBatches splits items into consecutive chunks of at most batchSize,
// preserving order. The final chunk may be shorter. Empty input yields no
// batches.
func DivideInBatches[T any](items []T, batchSize int) (batches [][]T) {
	if batchSize <= 0 || len(items) == 0 {
		return
	}
	for start := 0; start < len(items); start += batchSize {
		end := start + batchSize
		if end > len(items) {
			end = len(items)
		}
		batches = append(batches, items[start:end])
	}
	return
}

// WithMaxLoops invokes op until it succeeds or maxLoops attempts have failed,
// waiting retryDelay between attempts. Every error is treated as retryable
// until the cap. On the final failure the label is logged with the causing
// error, which is then returned to the caller.
func WithMaxLoops[T any](op func() (T, error), label string, maxLoops int) (out T, err error) {
	if maxLoops < 1 {
		maxLoops = 1
	}

	for attempt := 1; attempt <= maxLoops; attempt++ {
		out, err = op()
		if err == nil {
			return
		}
		if attempt < maxLoops {
			time.Sleep(retryDelay)
		}
	}

	log.Error().Msgf("%s: %+v", label, err)

	return
}
