package rpcclient

import (
	"bytes"
	"fmt"
	"io"
	"net/http"

	. "github.com/alexdcox/radix-go"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// RpcClient is a typed client for the gatewayrpc daemon.
type RpcClient struct {
	HostPort string
}

func NewRpcClient(hostPort string) (client *RpcClient, err error) {
	client = &RpcClient{HostPort: hostPort}
	return
}

func (c *RpcClient) req(method string, path string, body io.Reader) (rsp *http.Response, out []byte, err error) {
	req, err2 := http.NewRequest(method, c.HostPort+path, body)
	if err2 != nil {
		err = err2
		return
	}

	if method == http.MethodPost || method == http.MethodPut {
		req.Header.Set("Content-Type", "application/json")
	}

	rsp, err = http.DefaultClient.Do(req)
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
		errRsp := &RpcError{}
		if decodeErr := json.Unmarshal(out, errRsp); decodeErr == nil {
			err = errRsp

			if stdErr := errRsp.StdErr(); stdErr != nil {
				err = stdErr
			}

			return
		}

		err = errors.Errorf("rpc response code %d with body %s", rsp.StatusCode, string(out))
		return
	}

	return
}

func (c *RpcClient) reqUnmarshal(method string, path string, body io.Reader, target any) (err error) {
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

func (c *RpcClient) get(path string, target any) (err error) {
	return c.reqUnmarshal(http.MethodGet, path, nil, target)
}

func (c *RpcClient) send(method, path string, in any, target any) (err error) {
	jsn, err := json.Marshal(in)
	if err != nil {
		err = errors.WithStack(err)
		return
	}

	return c.reqUnmarshal(method, path, bytes.NewReader(jsn), target)
}

func (c *RpcClient) post(path string, in any, target any) (err error) {
	return c.send(http.MethodPost, path, in, target)
}

type GetStatusOut struct {
	Network      string `json:"network"`
	StateVersion uint64 `json:"stateVersion"`
	Epoch        uint64 `json:"epoch"`
	Round        uint64 `json:"round"`
}

func (c *RpcClient) GetStatus() (out *GetStatusOut, err error) {
	out = &GetStatusOut{}
	err = c.get("/status", out)
	return
}

type GetNetworkOut struct {
	NetworkId   uint8  `json:"networkId"`
	NetworkName string `json:"networkName"`
	XrdAddress  string `json:"xrdAddress"`
}

func (c *RpcClient) GetNetwork() (out *GetNetworkOut, err error) {
	out = &GetNetworkOut{}
	err = c.get("/network", out)
	return
}

type FungibleOut struct {
	Name        string `json:"name"`
	Address     string `json:"address"`
	Description string `json:"description,omitempty"`
	IconUrl     string `json:"iconUrl,omitempty"`
	Symbol      string `json:"symbol,omitempty"`
	Amount      string `json:"amount"`
}

func (c *RpcClient) GetFungibles(account Address) (out []FungibleOut, err error) {
	err = c.get(fmt.Sprintf("/account/%s/fungibles", account), &out)
	return
}

type NonFungibleOut struct {
	Name        string   `json:"name"`
	Address     string   `json:"address"`
	Description string   `json:"description,omitempty"`
	IconUrl     string   `json:"iconUrl,omitempty"`
	Ids         []string `json:"ids"`
}

func (c *RpcClient) GetNonFungibles(account Address) (out []NonFungibleOut, err error) {
	err = c.get(fmt.Sprintf("/account/%s/non-fungibles", account), &out)
	return
}

type GetIdsOut struct {
	Ids []string `json:"ids"`
}

func (c *RpcClient) GetNonFungibleIds(account Address, resource Address) (out *GetIdsOut, err error) {
	out = &GetIdsOut{}
	err = c.get(fmt.Sprintf("/account/%s/non-fungibles/%s/ids", account, resource), out)
	return
}

type ResourceInfoIn struct {
	Addresses         []Address `json:"addresses"`
	ExtraMetadataKeys []string  `json:"extraMetadataKeys,omitempty"`
}

type ResourceInfoOut struct {
	Type        string `json:"type"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	IconUrl     string `json:"iconUrl,omitempty"`
	Symbol      string `json:"symbol,omitempty"`
}

func (c *RpcClient) GetResourceInfo(in *ResourceInfoIn) (out map[Address]ResourceInfoOut, err error) {
	out = map[Address]ResourceInfoOut{}
	err = c.post("/resource/info", in, &out)
	return
}

type NftDataIn struct {
	ResourceAddress Address  `json:"resourceAddress"`
	Ids             []string `json:"ids"`
}

type NftItemOut struct {
	Id          string            `json:"id"`
	Name        string            `json:"name,omitempty"`
	Description string            `json:"description,omitempty"`
	ImageUrl    string            `json:"imageUrl,omitempty"`
	Data        map[string]string `json:"data,omitempty"`
}

func (c *RpcClient) GetNftData(in *NftDataIn) (out []NftItemOut, err error) {
	err = c.post("/nft/data", in, &out)
	return
}

type NftOwnersIn struct {
	ResourceAddress Address  `json:"resourceAddress"`
	Ids             []string `json:"ids"`
}

func (c *RpcClient) GetNftOwners(in *NftOwnersIn) (out map[string]Address, err error) {
	out = map[string]Address{}
	err = c.post("/nft/owners", in, &out)
	return
}

type StreamItemOut struct {
	StateVersion uint64 `json:"stateVersion"`
	IntentHash   string `json:"intentHash"`
	FeePaid      string `json:"feePaid"`
	Message      string `json:"message,omitempty"`
}

func (c *RpcClient) GetStream(fromVersion uint64, maxCount int) (out []StreamItemOut, err error) {
	err = c.get(fmt.Sprintf("/stream?from=%d&max=%d", fromVersion, maxCount), &out)
	return
}

type TransferManifestIn struct {
	From     Address `json:"from"`
	To       Address `json:"to"`
	Resource Address `json:"resource"`
	Amount   string  `json:"amount"`
}

type TransferManifestOut struct {
	Manifest string `json:"manifest"`
}

func (c *RpcClient) BuildTransferManifest(in *TransferManifestIn) (out *TransferManifestOut, err error) {
	out = &TransferManifestOut{}
	err = c.post("/manifest/transfer", in, out)
	return
}

type SubmitIn struct {
	Manifest      string `json:"manifest"`
	SignerSeedHex string `json:"signerSeedHex"`
}

type SubmitOut struct {
	IntentHash   string `json:"intentHash"`
	Status       string `json:"status"`
	ErrorMessage string `json:"errorMessage,omitempty"`
	Duplicate    bool   `json:"duplicate"`
}

func (c *RpcClient) SubmitManifest(in *SubmitIn) (out *SubmitOut, err error) {
	out = &SubmitOut{}
	err = c.post("/tx/submit", in, out)
	return
}

type AuthTokenIn struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expiresAt"`
}

type AuthTokenOut struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expiresAt"`
}

func (c *RpcClient) PutAuthToken(account Address, in *AuthTokenIn) (err error) {
	out := map[string]any{}
	err = c.send(http.MethodPut, fmt.Sprintf("/auth/%s", account), in, &out)
	return
}

func (c *RpcClient) GetAuthToken(account Address) (out *AuthTokenOut, err error) {
	out = &AuthTokenOut{}
	err = c.get(fmt.Sprintf("/auth/%s", account), out)
	return
}

func (c *RpcClient) DeleteAuthToken(account Address) (err error) {
	_, _, err = c.req(http.MethodDelete, fmt.Sprintf("/auth/%s", account), nil)
	return
}

type RpcError struct {
	Err     string `json:"error"`
	Details string `json:"details"`
}

func (r *RpcError) Error() string {
	return r.Err
}

// StdErr maps the daemon's serialized error back onto the library sentinel
// it came from, so callers can use errors.Is across the HTTP boundary.
func (r *RpcError) StdErr() error {
	for _, a := range AllErrors {
		if r.Err == a.Error() {
			return errors.Wrap(a, r.Details)
		}
	}
	return nil
}
