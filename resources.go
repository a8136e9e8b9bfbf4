package radix

import (
	"sync"

	"github.com/shopspring/decimal"
	"github.com/tidwall/gjson"
)

// Well known metadata keys resolved for every resource. Any other key is only
// read when the caller asks for it explicitly.
const (
	MetadataKeyName        = "name"
	MetadataKeyDescription = "description"
	MetadataKeyIconUrl     = "icon_url"
	MetadataKeySymbol      = "symbol"
)

type ResourceType string

const (
	ResourceTypeFungible    ResourceType = "FungibleResource"
	ResourceTypeNonFungible ResourceType = "NonFungibleResource"
)

// ResourceInformation is the resolved metadata record for one resource,
// tagged fungible or non fungible from the entity details type field.
type ResourceInformation struct {
	Type        ResourceType
	Address     Address
	Name        string
	Description string
	IconUrl     string
	Symbol      string

	// OtherMetadata holds only the keys the caller explicitly requested,
	// verbatim as the gateway returned them. Everything else is discarded
	// after the well known keys have been read.
	OtherMetadata map[string]ScryptoPayload
}

// FungibleResource joins an entity's globally aggregated holding of one
// fungible resource with that resource's metadata.
type FungibleResource struct {
	Name        string
	Address     Address
	Description string
	IconUrl     string
	Symbol      string
	AmountHeld  decimal.Decimal
}

// NonFungibleResource joins a non fungible collection's metadata with the
// local ids an entity holds across every vault of that collection. IdsHeld is
// unordered.
type NonFungibleResource struct {
	Name        string
	Address     Address
	Description string
	IconUrl     string
	IdsHeld     []string
}

// metadataString unwraps a metadata value to its string form. The gateway
// represents optional metadata either as a plain string value or as an enum
// wrapping zero or one string field.
func metadataString(payload *ScryptoPayload) (s string, ok bool) {
	v := &payload.ProgrammaticJson

	if v.Kind == ValueKindString {
		return v.scalarString(), true
	}

	if v.Kind == ValueKindEnum && len(v.Fields) == 1 && v.Fields[0].Kind == ValueKindString {
		return v.Fields[0].scalarString(), true
	}

	return
}

// GetResourcesInformation resolves metadata for a set of resource addresses.
// Addresses are split into gateway sized batches, fetched concurrently under
// a fresh Limiter, and merged into one map. Addresses are disjoint across
// batches so later batches never overwrite earlier ones.
//
// A resource with no resolvable name is omitted from the result entirely.
// The omission is logged at debug level but is not an error.
func (c *Client) GetResourcesInformation(addresses []Address, extraMetadataKeys ...string) (out map[Address]*ResourceInformation, err error) {
	out = make(map[Address]*ResourceInformation)

	limiter := NewLimiter(c.options.ConcurrencyLimit)
	mu := sync.Mutex{}
	var firstErr error

	for _, batch := range DivideInBatches(addresses, entityDetailsBatchSize) {
		batch := batch
		limiter.Go(func() {
			details, err2 := WithMaxLoops(func() (*EntityDetailsOut, error) {
				return c.entityDetails(batch, AggregationGlobal, nil, nil)
			}, "fetch resource information", c.options.MaxRetries)

			mu.Lock()
			defer mu.Unlock()

			if err2 != nil {
				if firstErr == nil {
					firstErr = err2
				}
				return
			}

			for i := range details.Items {
				info := resourceInformation(&details.Items[i], extraMetadataKeys)
				if info == nil {
					log.Debug().Msgf("dropping resource %s: no resolvable name metadata", details.Items[i].Address)
					continue
				}
				out[info.Address] = info
			}
		})
	}

	limiter.Wait()

	if firstErr != nil {
		return nil, firstErr
	}

	return
}

func resourceInformation(entity *EntityDetails, extraMetadataKeys []string) (info *ResourceInformation) {
	info = &ResourceInformation{Address: entity.Address}

	if typ := gjson.GetBytes(entity.Details, "type").String(); typ == string(ResourceTypeNonFungible) {
		info.Type = ResourceTypeNonFungible
	} else {
		info.Type = ResourceTypeFungible
	}

	for i := range entity.Metadata.Items {
		item := &entity.Metadata.Items[i]

		if value, ok := metadataString(&item.Value); ok {
			switch item.Key {
			case MetadataKeyName:
				info.Name = value
			case MetadataKeyDescription:
				info.Description = value
			case MetadataKeyIconUrl:
				info.IconUrl = value
			case MetadataKeySymbol:
				info.Symbol = value
			}
		}

		for _, extra := range extraMetadataKeys {
			if item.Key == extra {
				if info.OtherMetadata == nil {
					info.OtherMetadata = make(map[string]ScryptoPayload)
				}
				info.OtherMetadata[extra] = item.Value
			}
		}
	}

	if info.Name == "" {
		return nil
	}

	return
}

// GetFungibleResourcesHeldBy returns the fungible holdings of one entity,
// joined with resource metadata by address. Only globally aggregated entries
// are read; vault level entries are excluded. A holding whose resource has no
// resolvable metadata is dropped along with it.
func (c *Client) GetFungibleResourcesHeldBy(entity Address) (out map[Address]*FungibleResource, err error) {
	details, err := c.GetEntityDetails([]Address{entity}, AggregationGlobal)
	if err != nil {
		return
	}

	if len(details.Items) == 0 {
		err = ErrEntityNotFound
		return
	}

	amounts := make(map[Address]decimal.Decimal)
	addresses := make([]Address, 0)
	for _, item := range details.Items[0].FungibleResources.Items {
		if item.AggregationLevel != AggregationGlobal {
			continue
		}
		amounts[item.ResourceAddress] = item.Amount
		addresses = append(addresses, item.ResourceAddress)
	}

	information, err := c.GetResourcesInformation(addresses)
	if err != nil {
		return
	}

	out = make(map[Address]*FungibleResource)
	for address, amount := range amounts {
		info, ok := information[address]
		if !ok {
			continue
		}
		out[address] = &FungibleResource{
			Name:        info.Name,
			Address:     address,
			Description: info.Description,
			IconUrl:     info.IconUrl,
			Symbol:      info.Symbol,
			AmountHeld:  amount,
		}
	}

	return
}
