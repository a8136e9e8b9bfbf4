package radix

import (
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/sync/errgroup"
)

// walletTimeout bounds how long a wallet interaction may take before it is
// reported failed. This is the only timeout in the library. Package level so
// tests can shorten it.
var walletTimeout = time.Second * 60

type WalletOutcome string

const (
	WalletOutcomeSuccess WalletOutcome = "Success"
	WalletOutcomeFailed  WalletOutcome = "Failed"
)

// WalletResult is the uniform shape every wallet interaction resolves to.
// Failures of any kind (user rejection, timeout, submission failure) carry
// only an outcome and a message, never an error value, so UI consumers
// branch on one field.
type WalletResult struct {
	Outcome WalletOutcome
	Message string
	Payload string
}

func walletFailure(format string, args ...any) WalletResult {
	return WalletResult{Outcome: WalletOutcomeFailed, Message: fmt.Sprintf(format, args...)}
}

// Interactor is the UI side wallet transport, supplied by the embedder. Both
// methods block until the user's wallet responds; the Wallet races them
// against walletTimeout.
type Interactor interface {
	RequestAuth(interactionId string) (token string, expiresAt int64, err error)
	SendTransaction(interactionId string, manifest string) (intentHash string, err error)
}

// Wallet caches one account's holdings and drives wallet interactions. The
// caches are replaced wholesale by the Refresh methods and read by getters;
// the RWMutex makes that safe for concurrent callers.
type Wallet struct {
	client       *Client
	store        AuthStore
	interactor   Interactor
	account      Address
	fungibles    map[Address]*FungibleResource
	nonFungibles map[Address]*NonFungibleResource
	resourceInfo *gocache.Cache
	mu           sync.RWMutex
}

func NewWallet(client *Client, store AuthStore, interactor Interactor, account Address) *Wallet {
	return &Wallet{
		client:       client,
		store:        store,
		interactor:   interactor,
		account:      account,
		fungibles:    make(map[Address]*FungibleResource),
		nonFungibles: make(map[Address]*NonFungibleResource),
		resourceInfo: gocache.New(gocache.NoExpiration, gocache.NoExpiration),
	}
}

func (w *Wallet) Account() Address {
	return w.account
}

// Refresh fetches the account's fungible and non fungible holdings
// concurrently and replaces both caches.
func (w *Wallet) Refresh() (err error) {
	var fungibles map[Address]*FungibleResource
	var nonFungibles map[Address]*NonFungibleResource

	g := errgroup.Group{}
	g.Go(func() (err2 error) {
		fungibles, err2 = w.client.GetFungibleResourcesHeldBy(w.account)
		return
	})
	g.Go(func() (err2 error) {
		nonFungibles, err2 = w.client.GetNonFungibleResourcesHeldBy(w.account)
		return
	})

	if err = g.Wait(); err != nil {
		return
	}

	w.mu.Lock()
	w.fungibles = fungibles
	w.nonFungibles = nonFungibles
	w.mu.Unlock()

	return
}

func (w *Wallet) RefreshFungibles() (err error) {
	fungibles, err := w.client.GetFungibleResourcesHeldBy(w.account)
	if err != nil {
		return
	}

	w.mu.Lock()
	w.fungibles = fungibles
	w.mu.Unlock()

	return
}

func (w *Wallet) RefreshNonFungibles() (err error) {
	nonFungibles, err := w.client.GetNonFungibleResourcesHeldBy(w.account)
	if err != nil {
		return
	}

	w.mu.Lock()
	w.nonFungibles = nonFungibles
	w.mu.Unlock()

	return
}

// Fungibles returns a copy of the cached fungible holdings.
func (w *Wallet) Fungibles() map[Address]*FungibleResource {
	w.mu.RLock()
	defer w.mu.RUnlock()

	out := make(map[Address]*FungibleResource, len(w.fungibles))
	for address, resource := range w.fungibles {
		out[address] = resource
	}
	return out
}

// NonFungibles returns a copy of the cached non fungible holdings.
func (w *Wallet) NonFungibles() map[Address]*NonFungibleResource {
	w.mu.RLock()
	defer w.mu.RUnlock()

	out := make(map[Address]*NonFungibleResource, len(w.nonFungibles))
	for address, resource := range w.nonFungibles {
		out[address] = resource
	}
	return out
}

// ResourceInformation resolves metadata for one resource through a memo that
// never expires, so repeated lookups of the same resource skip the gateway.
func (w *Wallet) ResourceInformation(resource Address) (info *ResourceInformation, err error) {
	if cached, ok := w.resourceInfo.Get(resource.String()); ok {
		return cached.(*ResourceInformation), nil
	}

	information, err := w.client.GetResourcesInformation([]Address{resource})
	if err != nil {
		return
	}

	info, ok := information[resource]
	if !ok {
		err = ErrResourceNotFound
		return
	}

	w.resourceInfo.Set(resource.String(), info, gocache.NoExpiration)

	return
}

func authTokenKey(account Address) string {
	return fmt.Sprintf("auth/%s/token", account)
}

func authExpiryKey(account Address) string {
	return fmt.Sprintf("auth/%s/expiry", account)
}

type authResponse struct {
	token     string
	expiresAt int64
	err       error
}

// RequestAuth asks the wallet for a fresh bearer token and persists it with
// its expiry under the account's well known keys. The interaction races the
// wallet timeout.
func (w *Wallet) RequestAuth() WalletResult {
	interactionId := uuid.NewString()

	responses := make(chan authResponse, 1)
	go func() {
		token, expiresAt, err := w.interactor.RequestAuth(interactionId)
		responses <- authResponse{token: token, expiresAt: expiresAt, err: err}
	}()

	select {
	case response := <-responses:
		if response.err != nil {
			return walletFailure("wallet auth request failed: %s", response.err)
		}

		if err := w.store.Put(authTokenKey(w.account), response.token); err != nil {
			return walletFailure("failed to persist auth token: %s", err)
		}
		if err := w.store.Put(authExpiryKey(w.account), strconv.FormatInt(response.expiresAt, 10)); err != nil {
			return walletFailure("failed to persist auth token expiry: %s", err)
		}

		return WalletResult{Outcome: WalletOutcomeSuccess, Payload: response.token}

	case <-time.After(walletTimeout):
		return walletFailure("wallet interaction %s timed out", interactionId)
	}
}

// AuthToken returns the persisted token for the account, or ErrTokenNotFound
// / ErrTokenExpired when absent or stale.
func (w *Wallet) AuthToken() (token string, err error) {
	token, err = w.store.Get(authTokenKey(w.account))
	if err != nil {
		return
	}

	expiryValue, err := w.store.Get(authExpiryKey(w.account))
	if err != nil {
		return
	}

	expiresAt, err := strconv.ParseInt(expiryValue, 10, 64)
	if err != nil {
		return
	}

	if time.Now().Unix() >= expiresAt {
		token = ""
		err = ErrTokenExpired
	}

	return
}

func (w *Wallet) ClearAuth() (err error) {
	if err = w.store.Delete(authTokenKey(w.account)); err != nil {
		return
	}
	return w.store.Delete(authExpiryKey(w.account))
}

type transactionResponse struct {
	intentHash string
	err        error
}

// SendTransaction hands a manifest to the wallet for signing and submission,
// racing the wallet timeout. Success carries the intent hash as payload.
func (w *Wallet) SendTransaction(manifest string) WalletResult {
	if manifest == "" {
		return walletFailure("refusing to send an empty manifest")
	}

	interactionId := uuid.NewString()

	responses := make(chan transactionResponse, 1)
	go func() {
		intentHash, err := w.interactor.SendTransaction(interactionId, manifest)
		responses <- transactionResponse{intentHash: intentHash, err: err}
	}()

	select {
	case response := <-responses:
		if response.err != nil {
			return walletFailure("wallet transaction failed: %s", response.err)
		}
		return WalletResult{Outcome: WalletOutcomeSuccess, Payload: response.intentHash}

	case <-time.After(walletTimeout):
		return walletFailure("wallet interaction %s timed out", interactionId)
	}
}

// ToWalletResult adapts a submission outcome into the wallet's uniform
// result shape.
func ToWalletResult(result *TransactionResult) WalletResult {
	if result.Succeeded() {
		return WalletResult{Outcome: WalletOutcomeSuccess, Payload: result.IntentHash}
	}
	return walletFailure("transaction %s failed with status %s: %s", result.IntentHash, result.Status, result.ErrorMessage)
}
