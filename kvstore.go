package radix

import (
	"sync"
)

func (c *Client) keyValueStoreKeys(in *KeyValueStoreKeysIn) (out *KeyValueStoreKeysOut, err error) {
	out = &KeyValueStoreKeysOut{}
	err = c.post("/state/key-value-store/keys", in, out)
	return
}

func (c *Client) keyValueStoreData(in *KeyValueStoreDataIn) (out *KeyValueStoreDataOut, err error) {
	out = &KeyValueStoreDataOut{}
	err = c.post("/state/key-value-store/data", in, out)
	return
}

// GetKeyValueStoreKeys drains every key of an on ledger key value store at
// one pinned state, returning the raw key values in page order.
func (c *Client) GetKeyValueStoreKeys(kvStoreAddress Address) (keys []ScryptoValue, err error) {
	status, err := c.GetLedgerStatus()
	if err != nil {
		return
	}
	at := &AtLedgerState{StateVersion: status.LedgerState.StateVersion}

	var cursor *string
	for {
		page, err2 := WithMaxLoops(func() (*KeyValueStoreKeysOut, error) {
			return c.keyValueStoreKeys(&KeyValueStoreKeysIn{
				KeyValueStoreAddress: kvStoreAddress,
				Cursor:               cursor,
				AtLedgerState:        at,
			})
		}, "fetch key value store keys", c.options.MaxRetries)
		if err2 != nil {
			err = err2
			return
		}

		for _, item := range page.Items {
			keys = append(keys, item.Key.ProgrammaticJson)
		}

		if page.NextCursor == nil {
			return
		}
		cursor = page.NextCursor
	}
}

// KeyValueEntry is one key value store entry flattened through the value
// parser.
type KeyValueEntry struct {
	Key   NameValue
	Value NameValue
}

// GetKeyValueStoreData fetches the values of the given keys in gateway sized
// batches, concurrently bounded, flattening both sides of every entry.
func (c *Client) GetKeyValueStoreData(kvStoreAddress Address, keys []ScryptoValue) (entries []KeyValueEntry, err error) {
	limiter := NewLimiter(c.options.ConcurrencyLimit)
	mu := sync.Mutex{}
	var firstErr error

	for _, batch := range DivideInBatches(keys, nonFungibleBatchSize) {
		batch := batch
		limiter.Go(func() {
			params := make([]KeyValueStoreKeyParam, 0, len(batch))
			for _, key := range batch {
				params = append(params, KeyValueStoreKeyParam{KeyJson: key})
			}

			data, err2 := WithMaxLoops(func() (*KeyValueStoreDataOut, error) {
				return c.keyValueStoreData(&KeyValueStoreDataIn{
					KeyValueStoreAddress: kvStoreAddress,
					Keys:                 params,
				})
			}, "fetch key value store data", c.options.MaxRetries)

			mu.Lock()
			defer mu.Unlock()

			if err2 != nil {
				if firstErr == nil {
					firstErr = err2
				}
				return
			}

			for i := range data.Entries {
				entries = append(entries, KeyValueEntry{
					Key:   ParseScryptoValue(&data.Entries[i].Key.ProgrammaticJson),
					Value: ParseScryptoValue(&data.Entries[i].Value.ProgrammaticJson),
				})
			}
		})
	}

	limiter.Wait()

	if firstErr != nil {
		return nil, firstErr
	}

	return
}
