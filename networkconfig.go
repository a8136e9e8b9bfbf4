package radix

// NetworkConfiguration is the gateway's description of the network it serves,
// including the genesis dependent well known addresses. Localnet deployments
// read their native resource address from here rather than the params table.
type NetworkConfiguration struct {
	NetworkId          uint8              `json:"network_id"`
	NetworkName        string             `json:"network_name"`
	WellKnownAddresses WellKnownAddresses `json:"well_known_addresses"`
}

type WellKnownAddresses struct {
	Xrd              Address `json:"xrd"`
	AccountPackage   Address `json:"account_package"`
	Faucet           Address `json:"faucet"`
	ConsensusManager Address `json:"consensus_manager"`
}

func (c *Client) GetNetworkConfiguration() (out *NetworkConfiguration, err error) {
	return WithMaxLoops(func() (*NetworkConfiguration, error) {
		return c.networkConfiguration()
	}, "fetch network configuration", c.options.MaxRetries)
}

func (c *Client) networkConfiguration() (out *NetworkConfiguration, err error) {
	out = &NetworkConfiguration{}
	err = c.post("/status/network-configuration", struct{}{}, out)
	return
}
