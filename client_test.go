package radix

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(&ClientOptions{
		Network:    NetworkLocalNet,
		GatewayUrl: server.URL,
		MaxRetries: 3,
	})
	if err != nil {
		t.Fatalf("%+v", err)
	}

	return client
}

func decodeBody(t *testing.T, r *http.Request, target any) {
	t.Helper()
	if err := json.NewDecoder(r.Body).Decode(target); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}
}

func writeJson(t *testing.T, w http.ResponseWriter, body any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(body); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}
}

func stringMetadata(key, value string) MetadataItem {
	return MetadataItem{
		Key: key,
		Value: ScryptoPayload{
			ProgrammaticJson: ScryptoValue{Kind: ValueKindString, Value: value},
		},
	}
}

func enumMetadata(key, value string) MetadataItem {
	return MetadataItem{
		Key: key,
		Value: ScryptoPayload{
			ProgrammaticJson: ScryptoValue{
				Kind:        ValueKindEnum,
				TypeName:    "Option",
				VariantName: "Some",
				Fields:      []ScryptoValue{{Kind: ValueKindString, Value: value}},
			},
		},
	}
}

func TestGetResourcesInformationDropPolicy(t *testing.T) {
	named := Address("resource_loc_named")
	unnamed := Address("resource_loc_unnamed")

	mux := http.NewServeMux()
	mux.HandleFunc("/state/entity/details", func(w http.ResponseWriter, r *http.Request) {
		writeJson(t, w, &EntityDetailsOut{
			Items: []EntityDetails{
				{
					Address: named,
					Metadata: MetadataCollection{Items: []MetadataItem{
						stringMetadata("name", "Named Token"),
						enumMetadata("symbol", "NMD"),
					}},
				},
				{
					Address: unnamed,
					Metadata: MetadataCollection{Items: []MetadataItem{
						stringMetadata("symbol", "ANON"),
					}},
				},
			},
		})
	})

	client := newTestClient(t, mux)

	information, err := client.GetResourcesInformation([]Address{named, unnamed})
	if err != nil {
		t.Fatalf("%+v", err)
	}

	if len(information) != 1 {
		t.Fatalf("expected exactly 1 resolvable resource, got %d", len(information))
	}

	info, ok := information[named]
	if !ok {
		t.Fatal("expected the named resource to be present")
	}
	if info.Name != "Named Token" || info.Symbol != "NMD" {
		t.Fatalf("unexpected metadata: %+v", info)
	}

	if _, ok = information[unnamed]; ok {
		t.Fatal("expected the unnamed resource to be dropped")
	}
}

func TestGetResourcesInformationBatching(t *testing.T) {
	var calls int64

	mux := http.NewServeMux()
	mux.HandleFunc("/state/entity/details", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&calls, 1)

		in := &EntityDetailsIn{}
		decodeBody(t, r, in)

		if len(in.Addresses) > entityDetailsBatchSize {
			t.Errorf("upstream call exceeded the batch limit: %d addresses", len(in.Addresses))
		}

		out := &EntityDetailsOut{}
		for _, address := range in.Addresses {
			out.Items = append(out.Items, EntityDetails{
				Address: address,
				Metadata: MetadataCollection{Items: []MetadataItem{
					stringMetadata("name", "Token "+address.String()),
				}},
			})
		}
		writeJson(t, w, out)
	})

	client := newTestClient(t, mux)

	addresses := make([]Address, 21)
	for i := range addresses {
		addresses[i] = Address(string(rune('a'+i)) + "_resource")
	}

	information, err := client.GetResourcesInformation(addresses)
	if err != nil {
		t.Fatalf("%+v", err)
	}

	if len(information) != 21 {
		t.Fatalf("expected all 21 resources resolved, got %d", len(information))
	}
	if calls != 2 {
		t.Fatalf("expected 21 addresses to split into 2 upstream calls, got %d", calls)
	}
}

func TestGetResourcesInformationExtraKeys(t *testing.T) {
	resource := Address("resource_loc_extra")

	mux := http.NewServeMux()
	mux.HandleFunc("/state/entity/details", func(w http.ResponseWriter, r *http.Request) {
		writeJson(t, w, &EntityDetailsOut{
			Items: []EntityDetails{{
				Address: resource,
				Metadata: MetadataCollection{Items: []MetadataItem{
					stringMetadata("name", "Extra Token"),
					stringMetadata("tags", "defi"),
					stringMetadata("info_url", "https://example.com"),
				}},
			}},
		})
	})

	client := newTestClient(t, mux)

	information, err := client.GetResourcesInformation([]Address{resource}, "tags")
	if err != nil {
		t.Fatalf("%+v", err)
	}

	info := information[resource]
	if info == nil {
		t.Fatal("expected the resource to resolve")
	}

	if _, ok := info.OtherMetadata["tags"]; !ok {
		t.Fatal("expected the requested extra key to be collected")
	}
	if _, ok := info.OtherMetadata["info_url"]; ok {
		t.Fatal("expected unrequested keys to be discarded")
	}
}

func TestGetFungibleResourcesHeldBy(t *testing.T) {
	account := Address("account_loc_holder")
	tokenA := Address("resource_loc_a")
	tokenB := Address("resource_loc_b")
	vaultOnly := Address("resource_loc_vaultonly")

	mux := http.NewServeMux()
	mux.HandleFunc("/state/entity/details", func(w http.ResponseWriter, r *http.Request) {
		in := &EntityDetailsIn{}
		decodeBody(t, r, in)

		if len(in.Addresses) == 1 && in.Addresses[0] == account {
			writeJson(t, w, &EntityDetailsOut{
				Items: []EntityDetails{{
					Address: account,
					FungibleResources: FungibleResourcesCollection{Items: []FungibleResourceItem{
						{ResourceAddress: tokenA, AggregationLevel: AggregationGlobal, Amount: decimal.RequireFromString("120")},
						{ResourceAddress: tokenB, AggregationLevel: AggregationGlobal, Amount: decimal.RequireFromString("0.5")},
						{ResourceAddress: vaultOnly, AggregationLevel: AggregationVault, Amount: decimal.RequireFromString("7")},
					}},
				}},
			})
			return
		}

		// Metadata lookup for the held resources; tokenB has no name and
		// must be dropped from the join.
		writeJson(t, w, &EntityDetailsOut{
			Items: []EntityDetails{
				{
					Address: tokenA,
					Metadata: MetadataCollection{Items: []MetadataItem{
						stringMetadata("name", "Token A"),
						enumMetadata("symbol", "TKA"),
					}},
				},
				{
					Address:  tokenB,
					Metadata: MetadataCollection{Items: []MetadataItem{stringMetadata("description", "nameless")}},
				},
			},
		})
	})

	client := newTestClient(t, mux)

	held, err := client.GetFungibleResourcesHeldBy(account)
	if err != nil {
		t.Fatalf("%+v", err)
	}

	if len(held) != 1 {
		t.Fatalf("expected only the resolvable global holding, got %d entries", len(held))
	}

	resource := held[tokenA]
	if resource == nil {
		t.Fatal("expected token A to be present")
	}
	if !resource.AmountHeld.Equal(decimal.RequireFromString("120")) {
		t.Fatalf("unexpected amount: %s", resource.AmountHeld)
	}
	if resource.Name != "Token A" || resource.Symbol != "TKA" {
		t.Fatalf("unexpected metadata: %+v", resource)
	}
}

func TestClientRetriesTransientFailures(t *testing.T) {
	var calls int64

	mux := http.NewServeMux()
	mux.HandleFunc("/status/gateway-status", func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt64(&calls, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		writeJson(t, w, &GatewayStatusOut{LedgerState: LedgerState{StateVersion: 100, Epoch: 7}})
	})

	client := newTestClient(t, mux)

	status, err := client.GetLedgerStatus()
	if err != nil {
		t.Fatalf("%+v", err)
	}
	if calls != 3 {
		t.Fatalf("expected 2 failures then success, got %d calls", calls)
	}
	if status.LedgerState.Epoch != 7 {
		t.Fatalf("unexpected epoch: %d", status.LedgerState.Epoch)
	}
}

func TestClientRetryExhaustion(t *testing.T) {
	var calls int64

	mux := http.NewServeMux()
	mux.HandleFunc("/status/gateway-status", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&calls, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	client := newTestClient(t, mux)

	_, err := client.GetLedgerStatus()
	if !errors.Is(err, ErrGatewayFailed) {
		t.Fatalf("expected ErrGatewayFailed after exhausting retries, got %+v", err)
	}
	if calls != 3 {
		t.Fatalf("expected exactly MaxRetries attempts, got %d", calls)
	}
}
