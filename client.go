package radix

import (
	"bytes"
	"io"
	"net/http"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	entityDetailsBatchSize = 20
	nonFungibleBatchSize   = 100
	streamPageLimit        = 100
)

type ClientOptions struct {
	Network          Network
	GatewayUrl       string
	MaxRetries       int
	ConcurrencyLimit int
	HttpTimeout      time.Duration
}

func (o *ClientOptions) setDefaults() {
	if o.Network == "" {
		o.Network = defaultClientOptions.Network
	}

	if o.GatewayUrl == "" {
		if params, err := o.Network.Params(); err == nil {
			o.GatewayUrl = params.GatewayUrl
		}
	}

	if o.MaxRetries == 0 {
		o.MaxRetries = defaultClientOptions.MaxRetries
	}

	if o.ConcurrencyLimit == 0 {
		o.ConcurrencyLimit = defaultClientOptions.ConcurrencyLimit
	}

	if o.HttpTimeout == 0 {
		o.HttpTimeout = defaultClientOptions.HttpTimeout
	}
}

var defaultClientOptions = &ClientOptions{
	Network:          NetworkMainNet,
	MaxRetries:       30,
	ConcurrencyLimit: 10,
	HttpTimeout:      time.Second * 30,
}

func NewClient(options *ClientOptions) (client *Client, err error) {
	if options == nil {
		options = &ClientOptions{}
	}
	options.setDefaults()

	params, err := options.Network.Params()
	if err != nil {
		return
	}

	client = &Client{
		options:    options,
		params:     params,
		httpClient: &http.Client{Timeout: options.HttpTimeout},
	}

	return
}

// Client is the gateway query engine. It keeps no state between calls beyond
// its configuration scalars, so a single instance is safe to share across
// concurrent callers.
type Client struct {
	options    *ClientOptions
	params     *NetworkParams
	httpClient *http.Client
}

func (c *Client) Network() Network {
	return c.options.Network
}

func (c *Client) Params() *NetworkParams {
	return c.params
}

func (c *Client) req(method string, path string, body io.Reader) (rsp *http.Response, out []byte, err error) {
	req, err2 := http.NewRequest(method, strings.TrimSuffix(c.options.GatewayUrl, "/")+path, body)
	if err2 != nil {
		err = err2
		return
	}

	if method == http.MethodPost {
		req.Header.Set("Content-Type", "application/json")
	}

	rsp, err = c.httpClient.Do(req)
	if err != nil {
		err = errors.WithStack(err)
		return
	}

	out, err = io.ReadAll(rsp.Body)
	if err != nil {
		err = errors.WithStack(err)
		return
	}

	if rsp.Status[0] != '2' {
		err = errors.Wrapf(ErrGatewayFailed, "gateway response code %d with body %s", rsp.StatusCode, string(out))
		return
	}

	return
}

func (c *Client) reqUnmarshal(method string, path string, body io.Reader, target any) (err error) {
	_, rspBody, err := c.req(method, path, body)
	if err != nil {
		err = errors.WithStack(err)
		return
	}

	err = json.Unmarshal(rspBody, target)
	if err != nil {
		err = errors.Wrapf(err, "unable to unmarshal body: %s", string(rspBody))
		return
	}

	return
}

func (c *Client) post(path string, in any, target any) (err error) {
	jsn, err := json.Marshal(in)
	if err != nil {
		err = errors.WithStack(err)
		return
	}

	return c.reqUnmarshal(http.MethodPost, path, bytes.NewReader(jsn), target)
}

// GetLedgerStatus returns the gateway's current view of the ledger. The state
// version it reports is the consistency pin passed to multi page reads so
// they observe one snapshot instead of a moving target.
func (c *Client) GetLedgerStatus() (out *GatewayStatusOut, err error) {
	return WithMaxLoops(func() (*GatewayStatusOut, error) {
		return c.gatewayStatus()
	}, "fetch ledger status", c.options.MaxRetries)
}

func (c *Client) gatewayStatus() (out *GatewayStatusOut, err error) {
	out = &GatewayStatusOut{}
	err = c.post("/status/gateway-status", struct{}{}, out)
	return
}

func (c *Client) GetCurrentEpoch() (epoch uint64, err error) {
	status, err := c.GetLedgerStatus()
	if err != nil {
		return
	}
	epoch = status.LedgerState.Epoch
	return
}

// GetEntityDetails performs one batched details lookup. The gateway enforces
// a limit of entityDetailsBatchSize addresses per call; callers wanting more
// must pre batch, this method performs no batching of its own.
func (c *Client) GetEntityDetails(addresses []Address, aggregation AggregationLevel) (out *EntityDetailsOut, err error) {
	return WithMaxLoops(func() (*EntityDetailsOut, error) {
		return c.entityDetails(addresses, aggregation, nil, nil)
	}, "fetch entity details", c.options.MaxRetries)
}

func (c *Client) entityDetails(addresses []Address, aggregation AggregationLevel, optIns *DetailsOptIns, at *AtLedgerState) (out *EntityDetailsOut, err error) {
	out = &EntityDetailsOut{}
	err = c.post("/state/entity/details", &EntityDetailsIn{
		Addresses:        addresses,
		AggregationLevel: aggregation,
		OptIns:           optIns,
		AtLedgerState:    at,
	}, out)
	return
}
