package radix

import (
	"sync"
)

// NonFungibleItem is the flattened view of one non fungible item's on ledger
// data. The well known fields name, description and key_image_url are
// promoted to dedicated attributes; every other field lands in
// NonFungibleData, which stays nil when the item carries no extra fields.
type NonFungibleItem struct {
	Id              string
	Name            string
	Description     string
	ImageUrl        string
	NonFungibleData map[string]string
}

const (
	nonFungibleFieldName        = "name"
	nonFungibleFieldDescription = "description"
	nonFungibleFieldKeyImageUrl = "key_image_url"
)

func (c *Client) entityNonFungibles(in *EntityNonFungiblesIn) (out *EntityNonFungiblesOut, err error) {
	out = &EntityNonFungiblesOut{}
	err = c.post("/state/entity/page/non-fungibles", in, out)
	return
}

func (c *Client) nonFungibleVaultIds(in *NonFungibleVaultIdsIn) (out *NonFungibleVaultIdsOut, err error) {
	out = &NonFungibleVaultIdsOut{}
	err = c.post("/state/entity/page/non-fungible-vault/ids", in, out)
	return
}

func (c *Client) nonFungibleData(in *NonFungibleDataIn) (out *NonFungibleDataOut, err error) {
	out = &NonFungibleDataOut{}
	err = c.post("/state/non-fungible/data", in, out)
	return
}

func (c *Client) nonFungibleLocation(in *NonFungibleLocationIn) (out *NonFungibleLocationOut, err error) {
	out = &NonFungibleLocationOut{}
	err = c.post("/state/non-fungible/location", in, out)
	return
}

// nonFungibleVaultRef marks one vault of a collection that still has id pages
// to drain after the collection scan.
type nonFungibleVaultRef struct {
	resource Address
	vault    Address
	cursor   *string
}

// scanNonFungibleCollections walks the entity's non fungible collection pages
// at the pinned state version, collecting inlined first page ids and the
// vault cursors that still need draining. When target is non empty the scan
// stops as soon as that collection has been seen.
func (c *Client) scanNonFungibleCollections(entity Address, at *AtLedgerState, target Address) (ids map[Address][]string, pending []nonFungibleVaultRef, err error) {
	ids = make(map[Address][]string)

	var cursor *string
	for {
		page, err2 := WithMaxLoops(func() (*EntityNonFungiblesOut, error) {
			return c.entityNonFungibles(&EntityNonFungiblesIn{
				Address:          entity,
				AggregationLevel: AggregationVault,
				Cursor:           cursor,
				AtLedgerState:    at,
				OptIns:           &NonFungiblesOptIns{NonFungibleIncludeNfids: true},
			})
		}, "fetch non fungible collections", c.options.MaxRetries)
		if err2 != nil {
			err = err2
			return
		}

		found := false
		for _, item := range page.Items {
			if target != "" && item.ResourceAddress != target {
				continue
			}
			found = found || item.ResourceAddress == target

			if _, seen := ids[item.ResourceAddress]; !seen {
				ids[item.ResourceAddress] = []string{}
			}

			for _, vault := range item.Vaults.Items {
				ids[item.ResourceAddress] = append(ids[item.ResourceAddress], vault.Items...)
				if vault.NextCursor != nil {
					pending = append(pending, nonFungibleVaultRef{
						resource: item.ResourceAddress,
						vault:    vault.VaultAddress,
						cursor:   vault.NextCursor,
					})
				}
			}
		}

		if found || page.NextCursor == nil {
			return
		}
		cursor = page.NextCursor
	}
}

// drainVaults pages the remaining ids of each pending vault concurrently
// under one Limiter, appending into ids. Within a vault, pages follow the
// cursor strictly in order; across vaults no order is guaranteed, which is
// why the accumulator is keyed by resource address.
func (c *Client) drainVaults(entity Address, at *AtLedgerState, pending []nonFungibleVaultRef, ids map[Address][]string) (err error) {
	limiter := NewLimiter(c.options.ConcurrencyLimit)
	mu := sync.Mutex{}
	var firstErr error

	for _, ref := range pending {
		ref := ref
		limiter.Go(func() {
			cursor := ref.cursor
			var collected []string
			for cursor != nil {
				page, err2 := WithMaxLoops(func() (*NonFungibleVaultIdsOut, error) {
					return c.nonFungibleVaultIds(&NonFungibleVaultIdsIn{
						Address:         entity,
						ResourceAddress: ref.resource,
						VaultAddress:    ref.vault,
						Cursor:          cursor,
						AtLedgerState:   at,
					})
				}, "fetch vault non fungible ids", c.options.MaxRetries)
				if err2 != nil {
					mu.Lock()
					if firstErr == nil {
						firstErr = err2
					}
					mu.Unlock()
					return
				}
				collected = append(collected, page.Items...)
				cursor = page.NextCursor
			}

			mu.Lock()
			ids[ref.resource] = append(ids[ref.resource], collected...)
			mu.Unlock()
		})
	}

	limiter.Wait()

	return firstErr
}

// GetNonFungibleResourcesHeldBy returns every non fungible collection the
// entity holds, with all local ids accumulated across all vaults at one
// pinned ledger state, joined with collection metadata by address.
//
// Ids are unordered and are not deduplicated: if the gateway repeats an id
// across pages the repeat is passed through.
func (c *Client) GetNonFungibleResourcesHeldBy(entity Address) (out map[Address]*NonFungibleResource, err error) {
	status, err := c.GetLedgerStatus()
	if err != nil {
		return
	}
	at := &AtLedgerState{StateVersion: status.LedgerState.StateVersion}

	ids, pending, err := c.scanNonFungibleCollections(entity, at, "")
	if err != nil {
		return
	}

	if err = c.drainVaults(entity, at, pending, ids); err != nil {
		return
	}

	addresses := make([]Address, 0, len(ids))
	for address := range ids {
		addresses = append(addresses, address)
	}

	information, err := c.GetResourcesInformation(addresses)
	if err != nil {
		return
	}

	out = make(map[Address]*NonFungibleResource)
	for address, held := range ids {
		info, ok := information[address]
		if !ok {
			continue
		}
		out[address] = &NonFungibleResource{
			Name:        info.Name,
			Address:     address,
			Description: info.Description,
			IconUrl:     info.IconUrl,
			IdsHeld:     held,
		}
	}

	return
}

// GetNonFungibleIdsHeldBy returns the local ids the entity holds of one
// collection. The collection scan stops as soon as the target resource is
// located; only that collection's vaults are drained.
func (c *Client) GetNonFungibleIdsHeldBy(entity Address, resourceAddress Address) (ids []string, err error) {
	status, err := c.GetLedgerStatus()
	if err != nil {
		return
	}
	at := &AtLedgerState{StateVersion: status.LedgerState.StateVersion}

	collected, pending, err := c.scanNonFungibleCollections(entity, at, resourceAddress)
	if err != nil {
		return
	}

	if _, ok := collected[resourceAddress]; !ok {
		err = ErrCollectionNotFound
		return
	}

	if err = c.drainVaults(entity, at, pending, collected); err != nil {
		return
	}

	ids = collected[resourceAddress]

	return
}

// GetNonFungibleItemsFromIds fetches the on ledger data of the given items in
// gateway sized batches, concurrently bounded, and flattens each tuple
// payload through the value parser.
func (c *Client) GetNonFungibleItemsFromIds(resourceAddress Address, ids []string, at *AtLedgerState) (items []NonFungibleItem, err error) {
	limiter := NewLimiter(c.options.ConcurrencyLimit)
	mu := sync.Mutex{}
	var firstErr error

	for _, batch := range DivideInBatches(ids, nonFungibleBatchSize) {
		batch := batch
		limiter.Go(func() {
			data, err2 := WithMaxLoops(func() (*NonFungibleDataOut, error) {
				return c.nonFungibleData(&NonFungibleDataIn{
					ResourceAddress: resourceAddress,
					NonFungibleIds:  batch,
					AtLedgerState:   at,
				})
			}, "fetch non fungible data", c.options.MaxRetries)

			mu.Lock()
			defer mu.Unlock()

			if err2 != nil {
				if firstErr == nil {
					firstErr = err2
				}
				return
			}

			for i := range data.NonFungibleIds {
				items = append(items, nonFungibleItem(&data.NonFungibleIds[i]))
			}
		})
	}

	limiter.Wait()

	if firstErr != nil {
		return nil, firstErr
	}

	return
}

func nonFungibleItem(data *NonFungibleIdData) (item NonFungibleItem) {
	item.Id = data.NonFungibleId

	if data.Data == nil || data.Data.ProgrammaticJson.Kind != ValueKindTuple {
		return
	}

	for i := range data.Data.ProgrammaticJson.Fields {
		field := ParseScryptoValue(&data.Data.ProgrammaticJson.Fields[i])
		switch field.Name {
		case nonFungibleFieldName:
			item.Name = field.Value
		case nonFungibleFieldDescription:
			item.Description = field.Value
		case nonFungibleFieldKeyImageUrl:
			item.ImageUrl = field.Value
		default:
			if item.NonFungibleData == nil {
				item.NonFungibleData = make(map[string]string)
			}
			item.NonFungibleData[field.Name] = field.Value
		}
	}

	return
}

// GetNftOwners resolves the current owning entity for each id of one
// collection. Ids the gateway cannot resolve to an owner are absent from the
// result rather than present with an empty value.
func (c *Client) GetNftOwners(resourceAddress Address, ids []string) (owners map[string]Address, err error) {
	owners = make(map[string]Address)

	limiter := NewLimiter(c.options.ConcurrencyLimit)
	mu := sync.Mutex{}
	var firstErr error

	for _, batch := range DivideInBatches(ids, nonFungibleBatchSize) {
		batch := batch
		limiter.Go(func() {
			locations, err2 := WithMaxLoops(func() (*NonFungibleLocationOut, error) {
				return c.nonFungibleLocation(&NonFungibleLocationIn{
					ResourceAddress: resourceAddress,
					NonFungibleIds:  batch,
				})
			}, "fetch non fungible locations", c.options.MaxRetries)

			mu.Lock()
			defer mu.Unlock()

			if err2 != nil {
				if firstErr == nil {
					firstErr = err2
				}
				return
			}

			for _, location := range locations.NonFungibleIds {
				if location.IsBurned || location.OwningVaultGlobalAncestorAddress == "" {
					continue
				}
				owners[location.NonFungibleId] = location.OwningVaultGlobalAncestorAddress
			}
		})
	}

	limiter.Wait()

	if firstErr != nil {
		return nil, firstErr
	}

	return
}
