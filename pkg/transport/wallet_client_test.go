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
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWalletClient_Address(t *testing.T) {
	want := common.HexToAddress("0xabcdef0123456789abcdef0123456789abcdef01")
	var gotSecret string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSecret = r.Header.Get("X-Wallet-Secret")
		assert.Equal(t, "/v1/address", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]string{"address": want.Hex()})
	}))
	defer srv.Close()

	c := NewWalletClient(srv.URL+"/", "topsecret", 0)
	addr, err := c.Address(context.Background())

	require.NoError(t, err)
	assert.Equal(t, want, addr)
	assert.Equal(t, "topsecret", gotSecret)
}

func TestWalletClient_Address_Invalid(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"address": "nope"})
	}))
	defer srv.Close()

	_, err := NewWalletClient(srv.URL, "s", 0).Address(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid address")
}

func TestWalletClient_SignTransaction_ErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		json.NewEncoder(w).Encode(map[string]string{"error": "key disabled"})
	}))
	defer srv.Close()

	_, err := NewWalletClient(srv.URL, "s", 0).SignTransaction(context.Background(), 1, []byte{0x01})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "key disabled")
}

func TestWalletClient_SignTransaction_EmptyResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{})
	}))
	defer srv.Close()

	_, err := NewWalletClient(srv.URL, "s", 0).SignTransaction(context.Background(), 1, []byte{0x01})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty signed transaction")
}
