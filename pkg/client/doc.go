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

// Package client is the Go client for the attestation service.
//
// # Basic Usage
//
//	c := client.NewVerifyClient("http://localhost:8080")
//
//	resp, err := c.Verify(ctx, protocol.VerifyRequest{
//	    DID:              "did:web:example.com",
//	    ConnectedAddress: "0xabc...",
//	})
//	if err != nil {
//	    var apiErr *client.APIError
//	    if errors.As(err, &apiErr) {
//	        // The service answered: apiErr.Response carries the reason,
//	        // per-schema details, and the failure status.
//	        log.Printf("rejected: %s", apiErr.Response.Error)
//	        return
//	    }
//	    // Transport failure: the request never got an answer.
//	    log.Fatal(err)
//	}
//	log.Printf("attested, txs: %v", resp.TxHashes)
//
// # Transfer Proof
//
// For did:pkh identities proven by a deterministic transfer, pass the
// transaction hash:
//
//	resp, err := c.Verify(ctx, protocol.VerifyRequest{
//	    DID:              "did:pkh:eip155:1:0xContract...",
//	    ConnectedAddress: "0xCaller...",
//	    TxHash:           "0xdeadbeef...",
//	})
//
// # Retries
//
// The default client retries transient transport failures twice. Retrying
// a verification request is safe: the service checks existing attestations
// first and never writes a schema that is already attested.
//
// VerifyClient is safe for concurrent use by multiple goroutines.
package client
