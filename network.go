package radix

import "github.com/pkg/errors"

func init() {
	MainNetParams.Name = NetworkMainNet
	MainNetParams.Id = NetworkIdMainNet
	MainNetParams.LogicalName = "mainnet"
	MainNetParams.GatewayUrl = "https://mainnet.radixdlt.com"
	MainNetParams.AccountHrp = "account_rdx"
	MainNetParams.ResourceHrp = "resource_rdx"
	MainNetParams.TransactionHrp = "txid_rdx"
	MainNetParams.XrdAddress = "resource_rdx1tknxxxxxxxxxradxrdxxxxxxxxx009923554798xxxxxxxxxradxrd"

	StokenetParams.Name = NetworkStokenet
	StokenetParams.Id = NetworkIdStokenet
	StokenetParams.LogicalName = "stokenet"
	StokenetParams.GatewayUrl = "https://stokenet.radixdlt.com"
	StokenetParams.AccountHrp = "account_tdx_2_"
	StokenetParams.ResourceHrp = "resource_tdx_2_"
	StokenetParams.TransactionHrp = "txid_tdx_2_"
	StokenetParams.XrdAddress = "resource_tdx_2_1tknxxxxxxxxxradxrdxxxxxxxxx009923554798xxxxxxxxxtfd2jc"

	LocalNetParams.Name = NetworkLocalNet
	LocalNetParams.Id = NetworkIdLocalNet
	LocalNetParams.LogicalName = "localnet"
	LocalNetParams.GatewayUrl = "http://127.0.0.1:8080"
	LocalNetParams.AccountHrp = "account_loc"
	LocalNetParams.ResourceHrp = "resource_loc"
	LocalNetParams.TransactionHrp = "txid_loc"
}

type NetworkParams struct {
	Name           Network
	Id             NetworkId
	LogicalName    string
	GatewayUrl     string
	AccountHrp     string
	ResourceHrp    string
	TransactionHrp string

	// XrdAddress is empty for localnet, where the native resource address
	// depends on the genesis and must be read from the network configuration.
	XrdAddress Address
}

var MainNetParams = NetworkParams{}
var StokenetParams = NetworkParams{}
var LocalNetParams = NetworkParams{}

const (
	NetworkMainNet  Network = "mainnet"
	NetworkStokenet Network = "stokenet"
	NetworkLocalNet Network = "localnet"
)

type Network string

func (n Network) Valid() bool {
	return n == NetworkMainNet || n == NetworkStokenet || n == NetworkLocalNet
}

func (n Network) Validate() (err error) {
	if !n.Valid() {
		err = errors.Errorf("invalid network: '%s'", n)
	}
	return
}

func (n Network) Params() (params *NetworkParams, err error) {
	if err = n.Validate(); err != nil {
		return
	}

	switch n {
	case NetworkMainNet:
		return &MainNetParams, nil
	case NetworkStokenet:
		return &StokenetParams, nil
	case NetworkLocalNet:
		return &LocalNetParams, nil
	}

	return
}

type NetworkId uint8

const (
	NetworkIdMainNet  NetworkId = 1
	NetworkIdStokenet NetworkId = 2
	NetworkIdLocalNet NetworkId = 240
)
