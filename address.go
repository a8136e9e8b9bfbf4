package radix

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Address identifies an on-ledger entity (account, component, package,
// resource, vault). The engine treats addresses as opaque strings and never
// validates them structurally; decoding and derivation live in the toolkit
// package.
type Address string

func (a Address) String() string {
	return string(a)
}

// NonFungibleGlobalId pairs a resource address with a local id. Its canonical
// string form is "<resourceAddress>:<localId>", and equality is defined on
// that form, which makes the struct usable directly as a map key.
type NonFungibleGlobalId struct {
	ResourceAddress Address
	LocalId         string
}

func NewNonFungibleGlobalId(resource Address, localId string) NonFungibleGlobalId {
	return NonFungibleGlobalId{ResourceAddress: resource, LocalId: localId}
}

func (n NonFungibleGlobalId) String() string {
	return fmt.Sprintf("%s:%s", n.ResourceAddress, n.LocalId)
}

func (n NonFungibleGlobalId) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf(`"%s"`, n)), nil
}

func ParseNonFungibleGlobalId(s string) (id NonFungibleGlobalId, err error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		err = errors.Errorf("invalid non fungible global id: '%s'", s)
		return
	}
	id.ResourceAddress = Address(parts[0])
	id.LocalId = parts[1]
	return
}
