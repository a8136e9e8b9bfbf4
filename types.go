package radix

import (
	stdjson "encoding/json"

	"github.com/shopspring/decimal"
)

type AggregationLevel string

const (
	AggregationGlobal AggregationLevel = "Global"
	AggregationVault  AggregationLevel = "Vault"
)

type TransactionStatus string

const (
	TransactionStatusUnknown          TransactionStatus = "Unknown"
	TransactionStatusPending          TransactionStatus = "Pending"
	TransactionStatusCommittedSuccess TransactionStatus = "CommittedSuccess"
	TransactionStatusCommittedFailure TransactionStatus = "CommittedFailure"
	TransactionStatusRejected         TransactionStatus = "Rejected"
)

// Terminal reports whether the ledger can still change this status.
func (s TransactionStatus) Terminal() bool {
	switch s {
	case TransactionStatusCommittedSuccess, TransactionStatusCommittedFailure, TransactionStatusRejected:
		return true
	}
	return false
}

// LedgerState identifies the snapshot a response was served at. StateVersion
// is the global sequence number used to pin multi page reads to one snapshot.
type LedgerState struct {
	Network                string `json:"network"`
	StateVersion           uint64 `json:"state_version"`
	Epoch                  uint64 `json:"epoch"`
	Round                  uint64 `json:"round"`
	ProposerRoundTimestamp string `json:"proposer_round_timestamp,omitempty"`
}

type AtLedgerState struct {
	StateVersion uint64 `json:"state_version"`
}

type GatewayStatusOut struct {
	LedgerState LedgerState `json:"ledger_state"`
}

// ScryptoPayload wraps an on-ledger value as the gateway returns it: the raw
// SBOR hex alongside its programmatic JSON rendering.
type ScryptoPayload struct {
	RawHex           string       `json:"raw_hex,omitempty"`
	ProgrammaticJson ScryptoValue `json:"programmatic_json"`
}

// ---------------------------------------------------------------- entity

type EntityDetailsIn struct {
	Addresses        []Address        `json:"addresses"`
	AggregationLevel AggregationLevel `json:"aggregation_level,omitempty"`
	OptIns           *DetailsOptIns   `json:"opt_ins,omitempty"`
	AtLedgerState    *AtLedgerState   `json:"at_ledger_state,omitempty"`
}

type DetailsOptIns struct {
	ExplicitMetadata []string `json:"explicit_metadata,omitempty"`
}

type EntityDetailsOut struct {
	LedgerState LedgerState     `json:"ledger_state"`
	Items       []EntityDetails `json:"items"`
}

type EntityDetails struct {
	Address              Address                        `json:"address"`
	Metadata             MetadataCollection             `json:"metadata"`
	FungibleResources    FungibleResourcesCollection    `json:"fungible_resources"`
	NonFungibleResources NonFungibleResourcesCollection `json:"non_fungible_resources"`
	Details              stdjson.RawMessage                `json:"details,omitempty"`
}

type MetadataCollection struct {
	Items      []MetadataItem `json:"items"`
	NextCursor *string        `json:"next_cursor,omitempty"`
	TotalCount int            `json:"total_count,omitempty"`
}

type MetadataItem struct {
	Key   string         `json:"key"`
	Value ScryptoPayload `json:"value"`
}

type FungibleResourcesCollection struct {
	Items      []FungibleResourceItem `json:"items"`
	NextCursor *string                `json:"next_cursor,omitempty"`
	TotalCount int                    `json:"total_count,omitempty"`
}

// FungibleResourceItem is one fungible holding. Amount is only meaningful for
// globally aggregated items; vault aggregated entries are reported per vault
// and are ignored by the holdings queries.
type FungibleResourceItem struct {
	ResourceAddress  Address          `json:"resource_address"`
	AggregationLevel AggregationLevel `json:"aggregation_level"`
	Amount           decimal.Decimal  `json:"amount"`
}

type NonFungibleResourcesCollection struct {
	Items      []NonFungibleResourceItem `json:"items"`
	NextCursor *string                   `json:"next_cursor,omitempty"`
	TotalCount int                       `json:"total_count,omitempty"`
}

type NonFungibleResourceItem struct {
	ResourceAddress  Address               `json:"resource_address"`
	AggregationLevel AggregationLevel      `json:"aggregation_level"`
	Vaults           NonFungibleVaultsPage `json:"vaults"`
}

type NonFungibleVaultsPage struct {
	Items      []NonFungibleVaultItem `json:"items"`
	NextCursor *string                `json:"next_cursor,omitempty"`
	TotalCount int                    `json:"total_count,omitempty"`
}

// NonFungibleVaultItem describes one vault of a collection. Items holds the
// first page of local ids when the request opted into inlined ids; NextCursor
// is set when more remain in the vault.
type NonFungibleVaultItem struct {
	VaultAddress Address  `json:"vault_address"`
	TotalCount   int      `json:"total_count"`
	Items        []string `json:"items,omitempty"`
	NextCursor   *string  `json:"next_cursor,omitempty"`
}

type EntityNonFungiblesIn struct {
	Address          Address             `json:"address"`
	AggregationLevel AggregationLevel    `json:"aggregation_level,omitempty"`
	Cursor           *string             `json:"cursor,omitempty"`
	AtLedgerState    *AtLedgerState      `json:"at_ledger_state,omitempty"`
	OptIns           *NonFungiblesOptIns `json:"opt_ins,omitempty"`
}

type NonFungiblesOptIns struct {
	NonFungibleIncludeNfids bool `json:"non_fungible_include_nfids,omitempty"`
}

type EntityNonFungiblesOut struct {
	LedgerState LedgerState               `json:"ledger_state"`
	Items       []NonFungibleResourceItem `json:"items"`
	NextCursor  *string                   `json:"next_cursor,omitempty"`
	TotalCount  int                       `json:"total_count,omitempty"`
}

type NonFungibleVaultIdsIn struct {
	Address         Address        `json:"address"`
	ResourceAddress Address        `json:"resource_address"`
	VaultAddress    Address        `json:"vault_address"`
	Cursor          *string        `json:"cursor,omitempty"`
	AtLedgerState   *AtLedgerState `json:"at_ledger_state,omitempty"`
}

type NonFungibleVaultIdsOut struct {
	LedgerState LedgerState `json:"ledger_state"`
	Items       []string    `json:"items"`
	NextCursor  *string     `json:"next_cursor,omitempty"`
	TotalCount  int         `json:"total_count,omitempty"`
}

// ------------------------------------------------------------ non fungible

type NonFungibleDataIn struct {
	ResourceAddress Address        `json:"resource_address"`
	NonFungibleIds  []string       `json:"non_fungible_ids"`
	AtLedgerState   *AtLedgerState `json:"at_ledger_state,omitempty"`
}

type NonFungibleDataOut struct {
	LedgerState     LedgerState         `json:"ledger_state"`
	ResourceAddress Address             `json:"resource_address"`
	NonFungibleIds  []NonFungibleIdData `json:"non_fungible_ids"`
}

type NonFungibleIdData struct {
	NonFungibleId             string          `json:"non_fungible_id"`
	Data                      *ScryptoPayload `json:"data,omitempty"`
	IsBurned                  bool            `json:"is_burned,omitempty"`
	LastUpdatedAtStateVersion uint64          `json:"last_updated_at_state_version,omitempty"`
}

type NonFungibleLocationIn struct {
	ResourceAddress Address        `json:"resource_address"`
	NonFungibleIds  []string       `json:"non_fungible_ids"`
	AtLedgerState   *AtLedgerState `json:"at_ledger_state,omitempty"`
}

type NonFungibleLocationOut struct {
	LedgerState     LedgerState             `json:"ledger_state"`
	ResourceAddress Address                 `json:"resource_address"`
	NonFungibleIds  []NonFungibleIdLocation `json:"non_fungible_ids"`
}

type NonFungibleIdLocation struct {
	NonFungibleId                    string  `json:"non_fungible_id"`
	OwningVaultAddress               Address `json:"owning_vault_address,omitempty"`
	OwningVaultParentAncestorAddress Address `json:"owning_vault_parent_ancestor_address,omitempty"`
	OwningVaultGlobalAncestorAddress Address `json:"owning_vault_global_ancestor_address,omitempty"`
	IsBurned                         bool    `json:"is_burned,omitempty"`
}

// ------------------------------------------------------------- transactions

type TransactionStreamIn struct {
	FromLedgerState              *AtLedgerState `json:"from_ledger_state,omitempty"`
	Cursor                       *string        `json:"cursor,omitempty"`
	LimitPerPage                 int            `json:"limit_per_page,omitempty"`
	KindFilter                   string         `json:"kind_filter,omitempty"`
	Order                        string         `json:"order,omitempty"`
	AffectedGlobalEntitiesFilter []Address      `json:"affected_global_entities_filter,omitempty"`
	OptIns                       *StreamOptIns  `json:"opt_ins,omitempty"`
}

type StreamOptIns struct {
	ReceiptStateChanges bool `json:"receipt_state_changes,omitempty"`
}

type TransactionStreamOut struct {
	LedgerState LedgerState       `json:"ledger_state"`
	Items       []TransactionInfo `json:"items"`
	NextCursor  *string           `json:"next_cursor,omitempty"`
}

// TransactionInfo is the gateway's committed transaction record. Receipt is
// kept raw: its schema is large and polymorphic, and callers that need
// details probe it directly.
type TransactionInfo struct {
	StateVersion           uint64            `json:"state_version"`
	Epoch                  uint64            `json:"epoch"`
	Round                  uint64            `json:"round"`
	RoundTimestamp         string            `json:"round_timestamp,omitempty"`
	TransactionStatus      TransactionStatus `json:"transaction_status"`
	IntentHash             string            `json:"intent_hash,omitempty"`
	PayloadHash            string            `json:"payload_hash,omitempty"`
	FeePaid                decimal.Decimal   `json:"fee_paid"`
	ConfirmedAt            string            `json:"confirmed_at,omitempty"`
	ErrorMessage           *string           `json:"error_message,omitempty"`
	AffectedGlobalEntities []Address         `json:"affected_global_entities,omitempty"`
	Receipt                stdjson.RawMessage   `json:"receipt,omitempty"`
}

type TransactionSubmitIn struct {
	NotarizedTransactionHex string `json:"notarized_transaction_hex"`
}

type TransactionSubmitOut struct {
	Duplicate bool `json:"duplicate"`
}

type TransactionStatusIn struct {
	IntentHash string `json:"intent_hash"`
}

type TransactionStatusOut struct {
	LedgerState  LedgerState       `json:"ledger_state"`
	Status       TransactionStatus `json:"status"`
	IntentStatus string            `json:"intent_status,omitempty"`
	ErrorMessage *string           `json:"error_message,omitempty"`
}

type TransactionDetailsIn struct {
	IntentHash string        `json:"intent_hash"`
	OptIns     *StreamOptIns `json:"opt_ins,omitempty"`
}

type TransactionDetailsOut struct {
	LedgerState LedgerState     `json:"ledger_state"`
	Transaction TransactionInfo `json:"transaction"`
}

// ---------------------------------------------------------- key value store

type KeyValueStoreKeysIn struct {
	KeyValueStoreAddress Address        `json:"key_value_store_address"`
	Cursor               *string        `json:"cursor,omitempty"`
	AtLedgerState        *AtLedgerState `json:"at_ledger_state,omitempty"`
}

type KeyValueStoreKeysOut struct {
	LedgerState LedgerState            `json:"ledger_state"`
	Items       []KeyValueStoreKeyItem `json:"items"`
	NextCursor  *string                `json:"next_cursor,omitempty"`
}

type KeyValueStoreKeyItem struct {
	Key ScryptoPayload `json:"key"`
}

type KeyValueStoreDataIn struct {
	KeyValueStoreAddress Address                 `json:"key_value_store_address"`
	Keys                 []KeyValueStoreKeyParam `json:"keys"`
	AtLedgerState        *AtLedgerState          `json:"at_ledger_state,omitempty"`
}

type KeyValueStoreKeyParam struct {
	KeyJson ScryptoValue `json:"key_json"`
}

type KeyValueStoreDataOut struct {
	LedgerState LedgerState          `json:"ledger_state"`
	Entries     []KeyValueStoreEntry `json:"entries"`
}

type KeyValueStoreEntry struct {
	Key   ScryptoPayload `json:"key"`
	Value ScryptoPayload `json:"value"`
}
