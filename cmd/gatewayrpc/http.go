package main

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	. "github.com/alexdcox/radix-go"
	"github.com/alexdcox/radix-go/rpcclient"
	"github.com/alexdcox/radix-go/toolkit"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/tidwall/gjson"
)

func NewHttpRpcServer(config *_config, store AuthStore, client *Client) (server *HttpRpcServer, err error) {
	server = &HttpRpcServer{
		config: config,
		client: client,
		store:  store,
	}

	return
}

type HttpRpcServer struct {
	app    *fiber.App
	client *Client
	config *_config
	store  AuthStore
}

func (s *HttpRpcServer) Start() (err error) {
	s.app = fiber.New(fiber.Config{
		ReadTimeout:           30 * time.Second,
		WriteTimeout:          30 * time.Second,
		IdleTimeout:           120 * time.Second,
		DisableStartupMessage: true,
	})
	s.app.Use(recover.New())
	s.app.Use(func(c *fiber.Ctx) error {
		rsp := c.Next()
		log.Info().Msgf("http response: [%d] %s - %s %s", c.Response().StatusCode(), c.IP(), c.Method(), c.Path())
		return rsp
	})

	s.app.Get("/status", s.getStatus)
	s.app.Get("/network", s.getNetwork)
	s.app.Get("/account/:address/fungibles", s.getFungibles)
	s.app.Get("/account/:address/non-fungibles", s.getNonFungibles)
	s.app.Get("/account/:address/non-fungibles/:resource/ids", s.getNonFungibleIds)
	s.app.Post("/resource/info", s.postResourceInfo)
	s.app.Post("/nft/data", s.postNftData)
	s.app.Post("/nft/owners", s.postNftOwners)
	s.app.Get("/stream", s.getStream)
	s.app.Post("/manifest/transfer", s.postTransferManifest)
	s.app.Post("/tx/submit", s.postSubmit)
	s.app.Put("/auth/:account", s.putAuthToken)
	s.app.Get("/auth/:account", s.getAuthToken)
	s.app.Delete("/auth/:account", s.deleteAuthToken)

	log.Info().Msgf("http/rpc server listening on %s", config.RpcHostPort)

	err = errors.WithStack(s.app.Listen(config.RpcHostPort))

	return
}

func (s *HttpRpcServer) Stop() (err error) {
	return errors.WithStack(s.app.Shutdown())
}

func (s *HttpRpcServer) errorResponse(c *fiber.Ctx, err error) error {
	statusCode := http.StatusInternalServerError

	reportedErr := err

	for _, match := range []error{
		ErrEntityNotFound,
		ErrResourceNotFound,
		ErrCollectionNotFound,
		ErrTransactionNotFound,
		ErrTokenNotFound,
	} {
		if errors.Is(err, match) {
			reportedErr = match
			statusCode = http.StatusNotFound
			break
		}
	}

	return c.Status(statusCode).JSON(map[string]any{
		"error":   reportedErr.Error(),
		"details": fmt.Sprintf("%+v", err),
	})
}

func (s *HttpRpcServer) getStatus(c *fiber.Ctx) error {
	status, err := s.client.GetLedgerStatus()
	if err != nil {
		return s.errorResponse(c, err)
	}

	return c.JSON(rpcclient.GetStatusOut{
		Network:      status.LedgerState.Network,
		StateVersion: status.LedgerState.StateVersion,
		Epoch:        status.LedgerState.Epoch,
		Round:        status.LedgerState.Round,
	})
}

func (s *HttpRpcServer) getNetwork(c *fiber.Ctx) error {
	configuration, err := s.client.GetNetworkConfiguration()
	if err != nil {
		return s.errorResponse(c, err)
	}

	return c.JSON(rpcclient.GetNetworkOut{
		NetworkId:   configuration.NetworkId,
		NetworkName: configuration.NetworkName,
		XrdAddress:  configuration.WellKnownAddresses.Xrd.String(),
	})
}

func (s *HttpRpcServer) getFungibles(c *fiber.Ctx) error {
	held, err := s.client.GetFungibleResourcesHeldBy(Address(c.Params("address")))
	if err != nil {
		return s.errorResponse(c, err)
	}

	out := make([]rpcclient.FungibleOut, 0, len(held))
	for _, resource := range held {
		out = append(out, rpcclient.FungibleOut{
			Name:        resource.Name,
			Address:     resource.Address.String(),
			Description: resource.Description,
			IconUrl:     resource.IconUrl,
			Symbol:      resource.Symbol,
			Amount:      resource.AmountHeld.String(),
		})
	}

	return c.JSON(out)
}

func (s *HttpRpcServer) getNonFungibles(c *fiber.Ctx) error {
	held, err := s.client.GetNonFungibleResourcesHeldBy(Address(c.Params("address")))
	if err != nil {
		return s.errorResponse(c, err)
	}

	out := make([]rpcclient.NonFungibleOut, 0, len(held))
	for _, resource := range held {
		out = append(out, rpcclient.NonFungibleOut{
			Name:        resource.Name,
			Address:     resource.Address.String(),
			Description: resource.Description,
			IconUrl:     resource.IconUrl,
			Ids:         resource.IdsHeld,
		})
	}

	return c.JSON(out)
}

func (s *HttpRpcServer) getNonFungibleIds(c *fiber.Ctx) error {
	ids, err := s.client.GetNonFungibleIdsHeldBy(Address(c.Params("address")), Address(c.Params("resource")))
	if err != nil {
		return s.errorResponse(c, err)
	}

	return c.JSON(rpcclient.GetIdsOut{Ids: ids})
}

func (s *HttpRpcServer) postResourceInfo(c *fiber.Ctx) error {
	in := &rpcclient.ResourceInfoIn{}
	if err := c.BodyParser(in); err != nil {
		return s.errorResponse(c, errors.WithStack(err))
	}

	information, err := s.client.GetResourcesInformation(in.Addresses, in.ExtraMetadataKeys...)
	if err != nil {
		return s.errorResponse(c, err)
	}

	out := make(map[Address]rpcclient.ResourceInfoOut, len(information))
	for address, info := range information {
		out[address] = rpcclient.ResourceInfoOut{
			Type:        string(info.Type),
			Name:        info.Name,
			Description: info.Description,
			IconUrl:     info.IconUrl,
			Symbol:      info.Symbol,
		}
	}

	return c.JSON(out)
}

func (s *HttpRpcServer) postNftData(c *fiber.Ctx) error {
	in := &rpcclient.NftDataIn{}
	if err := c.BodyParser(in); err != nil {
		return s.errorResponse(c, errors.WithStack(err))
	}

	items, err := s.client.GetNonFungibleItemsFromIds(in.ResourceAddress, in.Ids, nil)
	if err != nil {
		return s.errorResponse(c, err)
	}

	out := make([]rpcclient.NftItemOut, 0, len(items))
	for _, item := range items {
		out = append(out, rpcclient.NftItemOut{
			Id:          item.Id,
			Name:        item.Name,
			Description: item.Description,
			ImageUrl:    item.ImageUrl,
			Data:        item.NonFungibleData,
		})
	}

	return c.JSON(out)
}

func (s *HttpRpcServer) postNftOwners(c *fiber.Ctx) error {
	in := &rpcclient.NftOwnersIn{}
	if err := c.BodyParser(in); err != nil {
		return s.errorResponse(c, errors.WithStack(err))
	}

	owners, err := s.client.GetNftOwners(in.ResourceAddress, in.Ids)
	if err != nil {
		return s.errorResponse(c, err)
	}

	return c.JSON(owners)
}

func (s *HttpRpcServer) getStream(c *fiber.Ctx) error {
	fromVersion, _ := strconv.ParseUint(c.Query("from", "1"), 10, 64)
	maxCount, _ := strconv.Atoi(c.Query("max", "100"))

	items, err := s.client.GetTransactionStream(fromVersion, false, nil, maxCount)
	if err != nil {
		return s.errorResponse(c, err)
	}

	out := make([]rpcclient.StreamItemOut, 0, len(items))
	for _, item := range items {
		summary := rpcclient.StreamItemOut{
			StateVersion: item.StateVersion,
			IntentHash:   item.IntentHash,
			FeePaid:      item.FeePaid.String(),
		}

		// The receipt schema is large and polymorphic; probe the raw JSON
		// for the one field worth surfacing in a summary.
		if len(item.Receipt) > 0 {
			summary.Message = gjson.GetBytes(item.Receipt, "error_message").String()
		}

		out = append(out, summary)
	}

	return c.JSON(out)
}

func (s *HttpRpcServer) postTransferManifest(c *fiber.Ctx) error {
	in := &rpcclient.TransferManifestIn{}
	if err := c.BodyParser(in); err != nil {
		return s.errorResponse(c, errors.WithStack(err))
	}

	amount, err := decimal.NewFromString(in.Amount)
	if err != nil {
		return s.errorResponse(c, errors.Wrapf(err, "invalid amount '%s'", in.Amount))
	}

	manifest := NewManifestBuilder().
		FungibleBucket(in.From, in.Resource, amount, "transfer").
		CallMethod(in.To, "try_deposit_or_abort", `Bucket("transfer")`, "Enum<0u8>()").
		Build()

	return c.JSON(rpcclient.TransferManifestOut{Manifest: manifest})
}

func (s *HttpRpcServer) postSubmit(c *fiber.Ctx) error {
	in := &rpcclient.SubmitIn{}
	if err := c.BodyParser(in); err != nil {
		return s.errorResponse(c, errors.WithStack(err))
	}

	key, err := toolkit.NewPrivateKeyFromSeedHex(in.SignerSeedHex)
	if err != nil {
		return s.errorResponse(c, err)
	}

	result, err := s.client.SubmitTransactionManifest(in.Manifest, key)
	if err != nil {
		return s.errorResponse(c, err)
	}

	return c.JSON(rpcclient.SubmitOut{
		IntentHash:   result.IntentHash,
		Status:       string(result.Status),
		ErrorMessage: result.ErrorMessage,
		Duplicate:    result.Duplicate,
	})
}

func (s *HttpRpcServer) putAuthToken(c *fiber.Ctx) error {
	in := &rpcclient.AuthTokenIn{}
	if err := c.BodyParser(in); err != nil {
		return s.errorResponse(c, errors.WithStack(err))
	}

	account := Address(c.Params("account"))

	if err := s.store.Put(fmt.Sprintf("auth/%s/token", account), in.Token); err != nil {
		return s.errorResponse(c, err)
	}
	if err := s.store.Put(fmt.Sprintf("auth/%s/expiry", account), strconv.FormatInt(in.ExpiresAt, 10)); err != nil {
		return s.errorResponse(c, err)
	}

	return c.JSON(map[string]any{"stored": true})
}

func (s *HttpRpcServer) getAuthToken(c *fiber.Ctx) error {
	account := Address(c.Params("account"))

	token, err := s.store.Get(fmt.Sprintf("auth/%s/token", account))
	if err != nil {
		return s.errorResponse(c, err)
	}

	expiryValue, err := s.store.Get(fmt.Sprintf("auth/%s/expiry", account))
	if err != nil {
		return s.errorResponse(c, err)
	}

	expiresAt, err := strconv.ParseInt(expiryValue, 10, 64)
	if err != nil {
		return s.errorResponse(c, errors.WithStack(err))
	}

	return c.JSON(rpcclient.AuthTokenOut{Token: token, ExpiresAt: expiresAt})
}

func (s *HttpRpcServer) deleteAuthToken(c *fiber.Ctx) error {
	account := Address(c.Params("account"))

	if err := s.store.Delete(fmt.Sprintf("auth/%s/token", account)); err != nil {
		return s.errorResponse(c, err)
	}
	if err := s.store.Delete(fmt.Sprintf("auth/%s/expiry", account)); err != nil {
		return s.errorResponse(c, err)
	}

	return c.JSON(map[string]any{"deleted": true})
}
