package radix

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ManifestBuilder accumulates transaction manifest instructions. Each method
// appends one instruction and returns the builder, and Build joins them in
// call order. The produced text is parsed byte for byte by the ledger's
// manifest compiler, so the exact layout of every instruction is load
// bearing: name, one tab indented argument per line, a closing semicolon.
type ManifestBuilder struct {
	instructions []string
}

func NewManifestBuilder() *ManifestBuilder {
	return &ManifestBuilder{}
}

func instruction(name string, args ...string) string {
	return name + "\n\t" + strings.Join(args, "\n\t") + "\n;"
}

func addressArg(a Address) string {
	return fmt.Sprintf(`Address("%s")`, a)
}

func decimalArg(d decimal.Decimal) string {
	return fmt.Sprintf(`Decimal("%s")`, d)
}

func stringArg(s string) string {
	return fmt.Sprintf(`"%s"`, s)
}

func bucketArg(name string) string {
	return fmt.Sprintf(`Bucket("%s")`, name)
}

func proofArg(name string) string {
	return fmt.Sprintf(`Proof("%s")`, name)
}

func localIdArg(id string) string {
	return fmt.Sprintf(`NonFungibleLocalId("%s")`, id)
}

func localIdArrayArg(ids []string) string {
	rendered := make([]string, 0, len(ids))
	for _, id := range ids {
		rendered = append(rendered, localIdArg(id))
	}
	return fmt.Sprintf("Array<NonFungibleLocalId>(%s)", strings.Join(rendered, ", "))
}

func (b *ManifestBuilder) add(name string, args ...string) *ManifestBuilder {
	b.instructions = append(b.instructions, instruction(name, args...))
	return b
}

// Raw appends a preformatted instruction verbatim.
func (b *ManifestBuilder) Raw(formatted string) *ManifestBuilder {
	b.instructions = append(b.instructions, formatted)
	return b
}

func (b *ManifestBuilder) Withdraw(account Address, resource Address, amount decimal.Decimal) *ManifestBuilder {
	return b.add("CALL_METHOD",
		addressArg(account),
		stringArg("withdraw"),
		addressArg(resource),
		decimalArg(amount))
}

func (b *ManifestBuilder) WithdrawNonFungibles(account Address, resource Address, ids []string) *ManifestBuilder {
	return b.add("CALL_METHOD",
		addressArg(account),
		stringArg("withdraw_non_fungibles"),
		addressArg(resource),
		localIdArrayArg(ids))
}

func (b *ManifestBuilder) TakeFromWorktop(resource Address, amount decimal.Decimal, bucketName string) *ManifestBuilder {
	return b.add("TAKE_FROM_WORKTOP",
		addressArg(resource),
		decimalArg(amount),
		bucketArg(bucketName))
}

func (b *ManifestBuilder) TakeNonFungiblesFromWorktop(resource Address, ids []string, bucketName string) *ManifestBuilder {
	return b.add("TAKE_NON_FUNGIBLES_FROM_WORKTOP",
		addressArg(resource),
		localIdArrayArg(ids),
		bucketArg(bucketName))
}

// FungibleBucket withdraws an amount from the account and takes it from the
// worktop into a named bucket, the common two instruction preamble of a
// method call that spends fungibles.
func (b *ManifestBuilder) FungibleBucket(account Address, resource Address, amount decimal.Decimal, bucketName string) *ManifestBuilder {
	return b.Withdraw(account, resource, amount).
		TakeFromWorktop(resource, amount, bucketName)
}

// NonFungibleBucket is FungibleBucket for individually identified items.
func (b *ManifestBuilder) NonFungibleBucket(account Address, resource Address, ids []string, bucketName string) *ManifestBuilder {
	return b.WithdrawNonFungibles(account, resource, ids).
		TakeNonFungiblesFromWorktop(resource, ids, bucketName)
}

// CallMethod appends a component method call. Arguments are preformatted
// typed literals, e.g. `1u64` or `Bucket("bid")`; the builder does not
// interpret them.
func (b *ManifestBuilder) CallMethod(component Address, method string, args ...string) *ManifestBuilder {
	callArgs := append([]string{addressArg(component), stringArg(method)}, args...)
	return b.add("CALL_METHOD", callArgs...)
}

// DepositBatch deposits the entire worktop into the account.
func (b *ManifestBuilder) DepositBatch(account Address) *ManifestBuilder {
	return b.add("CALL_METHOD",
		addressArg(account),
		stringArg("deposit_batch"),
		`Expression("ENTIRE_WORKTOP")`)
}

func (b *ManifestBuilder) ProofOfAmount(account Address, resource Address, amount decimal.Decimal, proofName string) *ManifestBuilder {
	return b.add("CALL_METHOD",
		addressArg(account),
		stringArg("create_proof_of_amount"),
		addressArg(resource),
		decimalArg(amount)).
		add("POP_FROM_AUTH_ZONE", proofArg(proofName))
}

func (b *ManifestBuilder) ProofOfNonFungibles(account Address, resource Address, ids []string, proofName string) *ManifestBuilder {
	return b.add("CALL_METHOD",
		addressArg(account),
		stringArg("create_proof_of_non_fungibles"),
		addressArg(resource),
		localIdArrayArg(ids)).
		add("POP_FROM_AUTH_ZONE", proofArg(proofName))
}

func (b *ManifestBuilder) MintFungible(resource Address, amount decimal.Decimal) *ManifestBuilder {
	return b.add("MINT_FUNGIBLE",
		addressArg(resource),
		decimalArg(amount))
}

// MintNonFungible mints one item. The entries map renders as the item's
// field tuple; iteration order follows the caller supplied pairs.
func (b *ManifestBuilder) MintNonFungible(resource Address, id string, fields []string) *ManifestBuilder {
	return b.add("MINT_NON_FUNGIBLE",
		addressArg(resource),
		fmt.Sprintf("Map<NonFungibleLocalId,Tuple>(%s => Tuple(%s))", localIdArg(id), strings.Join(fields, ", ")))
}

func (b *ManifestBuilder) SetMetadata(entity Address, key string, value string) *ManifestBuilder {
	return b.add("SET_METADATA",
		addressArg(entity),
		stringArg(key),
		fmt.Sprintf(`Enum<Metadata::String>("%s")`, value))
}

func (b *ManifestBuilder) LockFee(account Address, amount decimal.Decimal) *ManifestBuilder {
	return b.add("CALL_METHOD",
		addressArg(account),
		stringArg("lock_fee"),
		decimalArg(amount))
}

// Build joins the accumulated instructions with newlines.
func (b *ManifestBuilder) Build() string {
	return strings.Join(b.instructions, "\n")
}
