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

package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sage-x-project/did-attest-go/pkg/protocol"
)

func TestVerify_Success(t *testing.T) {
	var got protocol.VerifyRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v1/verify", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		json.NewEncoder(w).Encode(protocol.VerifyResponse{
			OK:       true,
			Status:   protocol.StatusReady,
			TxHashes: []string{"0x01"},
		})
	}))
	defer srv.Close()

	c := NewVerifyClient(srv.URL)
	resp, err := c.Verify(context.Background(), protocol.VerifyRequest{
		DID:              "did:web:example.com",
		ConnectedAddress: "0xabcdef0123456789abcdef0123456789abcdef01",
	})

	require.NoError(t, err)
	assert.True(t, resp.OK)
	assert.Equal(t, []string{"0x01"}, resp.TxHashes)
	assert.Equal(t, "did:web:example.com", got.DID)
}

func TestVerify_APIErrorCarriesResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		json.NewEncoder(w).Encode(protocol.VerifyResponse{
			OK:     false,
			Status: protocol.StatusFailed,
			Error:  "no matching TXT record",
		})
	}))
	defer srv.Close()

	c := NewVerifyClient(srv.URL)
	resp, err := c.Verify(context.Background(), protocol.VerifyRequest{DID: "did:web:example.com"})

	require.Error(t, err)
	assert.Nil(t, resp)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusForbidden, apiErr.StatusCode)
	assert.Equal(t, "no matching TXT record", apiErr.Response.Error)
	assert.Contains(t, apiErr.Error(), "403")
}

func TestVerify_UndecodableBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer srv.Close()

	c := NewVerifyClient(srv.URL)
	_, err := c.Verify(context.Background(), protocol.VerifyRequest{DID: "did:web:example.com"})

	assert.Error(t, err)
}

func TestVerify_RetriesTransientFailure(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		attempts++
		if attempts == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		json.NewEncoder(w).Encode(protocol.VerifyResponse{OK: true, Status: protocol.StatusReady})
	}))
	defer srv.Close()

	c := NewVerifyClient(srv.URL)
	resp, err := c.Verify(context.Background(), protocol.VerifyRequest{DID: "did:web:example.com"})

	require.NoError(t, err)
	assert.True(t, resp.OK)
	assert.Equal(t, 2, attempts)
}

func TestHealthy(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/healthz" {
			w.Write([]byte(`{"status":"ok"}`))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewVerifyClient(srv.URL)
	assert.NoError(t, c.Healthy(context.Background()))
}

func TestVerify_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(protocol.VerifyResponse{OK: true})
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewVerifyClient(srv.URL)
	_, err := c.Verify(ctx, protocol.VerifyRequest{DID: "did:web:example.com"})

	assert.Error(t, err)
}
