package radix

import (
	"sync"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func (c *Client) transactionStream(in *TransactionStreamIn) (out *TransactionStreamOut, err error) {
	out = &TransactionStreamOut{}
	err = c.post("/stream/transactions", in, out)
	return
}

// GetTransactionStream follows the committed transaction stream from a
// starting state version, keeping only CommittedSuccess transactions.
// Accumulation stops at maxCount (the final page is sliced if it overshoots)
// or when the stream is exhausted; a maxCount of zero or less drains the
// whole stream. Pages are fetched strictly in cursor order, never past what
// is needed.
func (c *Client) GetTransactionStream(fromVersion uint64, withStateChanges bool, entityFilter []Address, maxCount int) (items []TransactionInfo, err error) {
	var optIns *StreamOptIns
	if withStateChanges {
		optIns = &StreamOptIns{ReceiptStateChanges: true}
	}

	var cursor *string
	for {
		in := &TransactionStreamIn{
			Cursor:                       cursor,
			LimitPerPage:                 streamPageLimit,
			Order:                        "Asc",
			AffectedGlobalEntitiesFilter: entityFilter,
			OptIns:                       optIns,
		}
		if cursor == nil {
			in.FromLedgerState = &AtLedgerState{StateVersion: fromVersion}
		}

		page, err2 := WithMaxLoops(func() (*TransactionStreamOut, error) {
			return c.transactionStream(in)
		}, "fetch transaction stream", c.options.MaxRetries)
		if err2 != nil {
			err = err2
			return
		}

		for _, item := range page.Items {
			if item.TransactionStatus != TransactionStatusCommittedSuccess {
				continue
			}
			items = append(items, item)
			if maxCount > 0 && len(items) == maxCount {
				return
			}
		}

		if page.NextCursor == nil {
			return
		}
		cursor = page.NextCursor
	}
}

var streamCount = message.NewPrinter(language.English)

// StreamWatcher polls the transaction stream on a fixed interval, publishing
// every newly committed successful transaction to its subscribers. The last
// seen state version advances only after a successful poll, so a failed poll
// is retried from the same position next tick.
type StreamWatcher struct {
	client      *Client
	interval    time.Duration
	lastVersion uint64
	queue       PubSubQueue[TransactionInfo]
	stop        chan struct{}
	stopOnce    sync.Once
}

const defaultWatchInterval = time.Second * 5

// WatchTransactionStream returns a watcher that begins publishing
// transactions committed after fromVersion once started. An interval of zero
// selects the default.
func (c *Client) WatchTransactionStream(fromVersion uint64, interval time.Duration) *StreamWatcher {
	if interval <= 0 {
		interval = defaultWatchInterval
	}
	return &StreamWatcher{
		client:      c,
		interval:    interval,
		lastVersion: fromVersion,
		queue:       NewQueue[TransactionInfo](),
		stop:        make(chan struct{}),
	}
}

// OnTransaction subscribes to published transactions. The returned cleanup
// removes the subscription.
func (w *StreamWatcher) OnTransaction(callback func(tx TransactionInfo)) (cleanup func()) {
	return w.queue.On(callback)
}

func (w *StreamWatcher) Start() {
	go func() {
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		for {
			select {
			case <-w.stop:
				return
			case <-ticker.C:
				w.poll()
			}
		}
	}()
}

func (w *StreamWatcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.stop)
		w.queue.Close()
	})
}

func (w *StreamWatcher) poll() {
	items, err := w.client.GetTransactionStream(w.lastVersion+1, false, nil, 0)
	if err != nil {
		log.Error().Msgf("transaction stream poll failed: %+v", err)
		return
	}

	if len(items) == 0 {
		return
	}

	log.Debug().Msgf("stream watcher observed %s", streamCount.Sprintf("%d new committed transactions", len(items)))

	for _, item := range items {
		if item.StateVersion > w.lastVersion {
			w.lastVersion = item.StateVersion
		}
		w.queue.Broadcast(item)
	}
}
