package radix

import (
	"net/http"
	"sync"
	"testing"
)

func TestGetKeyValueStoreKeysDrainsPages(t *testing.T) {
	store := Address("internal_keyvaluestore_loc_prices")

	mux := http.NewServeMux()
	mux.HandleFunc("/status/gateway-status", func(w http.ResponseWriter, r *http.Request) {
		writeJson(t, w, &GatewayStatusOut{LedgerState: LedgerState{StateVersion: 700}})
	})

	pageTwo := "page-2"
	mux.HandleFunc("/state/key-value-store/keys", func(w http.ResponseWriter, r *http.Request) {
		in := &KeyValueStoreKeysIn{}
		decodeBody(t, r, in)

		if in.KeyValueStoreAddress != store {
			t.Errorf("unexpected store address %s", in.KeyValueStoreAddress)
		}
		if in.AtLedgerState == nil || in.AtLedgerState.StateVersion != 700 {
			t.Errorf("expected the read to be pinned at state version 700, got %+v", in.AtLedgerState)
		}

		if in.Cursor == nil {
			writeJson(t, w, &KeyValueStoreKeysOut{
				Items: []KeyValueStoreKeyItem{
					{Key: ScryptoPayload{ProgrammaticJson: ScryptoValue{Kind: ValueKindString, Value: "gold"}}},
					{Key: ScryptoPayload{ProgrammaticJson: ScryptoValue{Kind: ValueKindString, Value: "silver"}}},
				},
				NextCursor: &pageTwo,
			})
			return
		}

		writeJson(t, w, &KeyValueStoreKeysOut{
			Items: []KeyValueStoreKeyItem{
				{Key: ScryptoPayload{ProgrammaticJson: ScryptoValue{Kind: ValueKindString, Value: "bronze"}}},
			},
		})
	})

	client := newTestClient(t, mux)

	keys, err := client.GetKeyValueStoreKeys(store)
	if err != nil {
		t.Fatalf("%+v", err)
	}

	if len(keys) != 3 {
		t.Fatalf("expected 3 keys, got %d", len(keys))
	}
	for i, want := range []string{"gold", "silver", "bronze"} {
		if keys[i].Value != want {
			t.Fatalf("expected key %d to be %q, got %q", i, want, keys[i].Value)
		}
	}
}

func TestGetKeyValueStoreData(t *testing.T) {
	store := Address("internal_keyvaluestore_loc_prices")

	var mu sync.Mutex
	requested := map[string]bool{}

	mux := http.NewServeMux()
	mux.HandleFunc("/state/key-value-store/data", func(w http.ResponseWriter, r *http.Request) {
		in := &KeyValueStoreDataIn{}
		decodeBody(t, r, in)

		out := &KeyValueStoreDataOut{}
		for _, param := range in.Keys {
			name, _ := param.KeyJson.Value.(string)
			mu.Lock()
			requested[name] = true
			mu.Unlock()

			out.Entries = append(out.Entries, KeyValueStoreEntry{
				Key:   ScryptoPayload{ProgrammaticJson: ScryptoValue{Kind: ValueKindString, Value: name}},
				Value: ScryptoPayload{ProgrammaticJson: ScryptoValue{Kind: ValueKindDecimal, Value: "10.5"}},
			})
		}
		writeJson(t, w, out)
	})

	client := newTestClient(t, mux)

	entries, err := client.GetKeyValueStoreData(store, []ScryptoValue{
		{Kind: ValueKindString, Value: "gold"},
		{Kind: ValueKindString, Value: "silver"},
	})
	if err != nil {
		t.Fatalf("%+v", err)
	}

	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if !requested["gold"] || !requested["silver"] {
		t.Fatalf("expected both keys to reach the gateway, got %v", requested)
	}
	for _, entry := range entries {
		if entry.Value.Value != "10.5" {
			t.Fatalf("unexpected entry value %+v", entry.Value)
		}
	}
}
