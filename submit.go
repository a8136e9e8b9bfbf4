package radix

import (
	"github.com/alexdcox/radix-go/toolkit"
)

// Epochs a transaction stays valid for after the epoch it was built in.
const transactionValidityEpochs = 10

// TransactionResult is the terminal outcome of one submission. It is
// returned for failed transactions as well as successful ones; callers
// branch on Status rather than on an error, which is reserved for the
// submission machinery itself failing.
type TransactionResult struct {
	IntentHash   string
	Status       TransactionStatus
	ErrorMessage string
	Duplicate    bool
	Transaction  *TransactionInfo
}

func (r *TransactionResult) Succeeded() bool {
	return r.Status == TransactionStatusCommittedSuccess
}

func (c *Client) submitTransaction(compiledHex string) (out *TransactionSubmitOut, err error) {
	out = &TransactionSubmitOut{}
	err = c.post("/transaction/submit", &TransactionSubmitIn{NotarizedTransactionHex: compiledHex}, out)
	return
}

func (c *Client) transactionStatus(intentHash string) (out *TransactionStatusOut, err error) {
	out = &TransactionStatusOut{}
	err = c.post("/transaction/status", &TransactionStatusIn{IntentHash: intentHash}, out)
	return
}

func (c *Client) transactionDetails(intentHash string) (out *TransactionDetailsOut, err error) {
	out = &TransactionDetailsOut{}
	err = c.post("/transaction/committed-details", &TransactionDetailsIn{IntentHash: intentHash}, out)
	return
}

// GetTransactionDetails fetches the committed record for a transaction id.
func (c *Client) GetTransactionDetails(intentHash string) (out *TransactionDetailsOut, err error) {
	return WithMaxLoops(func() (*TransactionDetailsOut, error) {
		return c.transactionDetails(intentHash)
	}, "fetch transaction details", c.options.MaxRetries)
}

// SubmitTransactionManifest builds, signs, notarizes and submits a
// transaction for the given manifest, then polls it to a terminal status.
// The one key is both notary and sole signatory. The validity window is the
// current epoch plus transactionValidityEpochs, the tip is zero.
//
// The status poll is a tight loop with no delay and no cap: it spins until
// the gateway reports something other than Pending or Unknown. Every other
// remote call here is bounded by the client's retry cap.
func (c *Client) SubmitTransactionManifest(manifest string, key *toolkit.Ed25519PrivateKey) (result *TransactionResult, err error) {
	epoch, err := c.GetCurrentEpoch()
	if err != nil {
		return
	}

	intent := &toolkit.TransactionIntent{
		Header: toolkit.TransactionHeader{
			NetworkId:           uint8(c.params.Id),
			StartEpochInclusive: epoch,
			EndEpochExclusive:   epoch + transactionValidityEpochs,
			Nonce:               toolkit.RandomNonce(),
			NotaryPublicKey:     key.PublicKey(),
			NotaryIsSignatory:   true,
			TipPercentage:       0,
		},
		Manifest: manifest,
	}

	signed, err := intent.Sign(key)
	if err != nil {
		return
	}

	notarized, err := signed.Notarize(key)
	if err != nil {
		return
	}

	hash, err := intent.Hash()
	if err != nil {
		return
	}

	intentHash, err := toolkit.EncodeTransactionId(hash, c.params.TransactionHrp)
	if err != nil {
		return
	}

	compiledHex, err := notarized.CompileHex()
	if err != nil {
		return
	}

	log.Info().Msgf("submitting transaction %s (epoch window %d to %d)", intentHash, epoch, epoch+transactionValidityEpochs)

	submitted, err := WithMaxLoops(func() (*TransactionSubmitOut, error) {
		return c.submitTransaction(compiledHex)
	}, "submit transaction", c.options.MaxRetries)
	if err != nil {
		return
	}

	result = &TransactionResult{
		IntentHash: intentHash,
		Duplicate:  submitted.Duplicate,
	}

	polls := 0
	for {
		status, err2 := WithMaxLoops(func() (*TransactionStatusOut, error) {
			return c.transactionStatus(intentHash)
		}, "poll transaction status", c.options.MaxRetries)
		if err2 != nil {
			err = err2
			return nil, err
		}

		if status.Status != TransactionStatusPending && status.Status != TransactionStatusUnknown {
			result.Status = status.Status
			if status.ErrorMessage != nil {
				result.ErrorMessage = *status.ErrorMessage
			}
			break
		}

		polls++
		if polls%50 == 0 {
			log.Debug().Msgf("transaction %s still pending after %d status polls", intentHash, polls)
		}
	}

	details, err := c.GetTransactionDetails(intentHash)
	if err != nil {
		return
	}
	result.Transaction = &details.Transaction

	if result.Succeeded() {
		log.Info().Msgf("transaction %s committed successfully at state version %d", intentHash, details.Transaction.StateVersion)
	} else {
		log.Info().Msgf("transaction %s failed with status %s: %s", intentHash, result.Status, result.ErrorMessage)
	}

	return
}
