// Copyright (C) 2025 SAGE-X Project
//
// This file is part of did-attest-go.
//
// did-attest-go is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// did-attest-go is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with did-attest-go.  If not, see <https://www.gnu.org/licenses/>.

package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/hashicorp/go-retryablehttp"
)

// secretHeader authenticates against the managed wallet service.
const secretHeader = "X-Wallet-Secret"

// maxWalletResponseBytes bounds wallet service response bodies.
const maxWalletResponseBytes = 1 << 20

// WalletClient talks to the managed wallet service that holds the signing
// key on the operator's behalf. The service is addressed by base URL and
// authenticated with a secret key; it exposes the account address and a
// sign-transaction operation.
type WalletClient struct {
	baseURL string
	secret  string
	client  *retryablehttp.Client
}

// NewWalletClient creates a client for the wallet service at baseURL.
func NewWalletClient(baseURL, secret string, timeout time.Duration) *WalletClient {
	client := retryablehttp.NewClient()
	client.RetryMax = 2
	client.HTTPClient.Timeout = timeout
	client.Logger = nil
	return &WalletClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		secret:  secret,
		client:  client,
	}
}

type addressResponse struct {
	Address string `json:"address"`
}

type signRequest struct {
	ChainID uint64        `json:"chainId"`
	RawTx   hexutil.Bytes `json:"rawTx"`
}

type signResponse struct {
	SignedTx hexutil.Bytes `json:"signedTx"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Address fetches the wallet's signing account.
func (c *WalletClient) Address(ctx context.Context) (common.Address, error) {
	body, err := c.do(ctx, http.MethodGet, "/v1/address", nil)
	if err != nil {
		return common.Address{}, err
	}
	var resp addressResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return common.Address{}, fmt.Errorf("decode address response: %w", err)
	}
	if !common.IsHexAddress(resp.Address) {
		return common.Address{}, fmt.Errorf("wallet returned invalid address %q", resp.Address)
	}
	return common.HexToAddress(resp.Address), nil
}

// SignTransaction submits an RLP-encoded unsigned transaction and returns
// the signed encoding.
func (c *WalletClient) SignTransaction(ctx context.Context, chainID uint64, rawTx []byte) ([]byte, error) {
	payload, err := json.Marshal(signRequest{ChainID: chainID, RawTx: rawTx})
	if err != nil {
		return nil, fmt.Errorf("encode sign request: %w", err)
	}
	body, err := c.do(ctx, http.MethodPost, "/v1/sign-transaction", payload)
	if err != nil {
		return nil, err
	}
	var resp signResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode sign response: %w", err)
	}
	if len(resp.SignedTx) == 0 {
		return nil, fmt.Errorf("wallet returned empty signed transaction")
	}
	return resp.SignedTx, nil
}

func (c *WalletClient) do(ctx context.Context, method, path string, payload []byte) ([]byte, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := retryablehttp.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("build wallet request: %w", err)
	}
	req.Header.Set(secretHeader, c.secret)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("wallet %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxWalletResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("read wallet response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		var werr errorResponse
		if json.Unmarshal(body, &werr) == nil && werr.Error != "" {
			return nil, fmt.Errorf("wallet %s %s: %s (status %d)", method, path, werr.Error, resp.StatusCode)
		}
		return nil, fmt.Errorf("wallet %s %s: status %d", method, path, resp.StatusCode)
	}
	return body, nil
}
