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

// verify-client submits one verification request from the command line.
//
// Usage:
//
//	verify-client -url http://localhost:8080 \
//	    -did did:web:example.com \
//	    -address 0xabc... \
//	    [-tx 0xdeadbeef...] [-schemas 0x...,0x...]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/sage-x-project/did-attest-go/pkg/client"
	"github.com/sage-x-project/did-attest-go/pkg/protocol"
)

func main() {
	url := flag.String("url", "http://localhost:8080", "attestation service base URL")
	didArg := flag.String("did", "", "DID to verify (did:web:... or did:pkh:...)")
	address := flag.String("address", "", "connected controller address (0x...)")
	txHash := flag.String("tx", "", "transfer-proof transaction hash (did:pkh only)")
	schemas := flag.String("schemas", "", "comma-separated schema UID overrides")
	timeout := flag.Duration("timeout", 2*time.Minute, "overall request timeout")
	flag.Parse()

	if *didArg == "" || *address == "" {
		flag.Usage()
		log.Fatal("both -did and -address are required")
	}

	req := protocol.VerifyRequest{
		DID:              *didArg,
		ConnectedAddress: *address,
		TxHash:           *txHash,
	}
	if *schemas != "" {
		req.RequiredSchemas = strings.Split(*schemas, ",")
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	c := client.NewVerifyClient(*url)
	resp, err := c.Verify(ctx, req)
	if err != nil {
		var apiErr *client.APIError
		if errors.As(err, &apiErr) {
			fmt.Printf("rejected (HTTP %d): %s\n", apiErr.StatusCode, apiErr.Response.Error)
			for _, d := range apiErr.Response.Details {
				fmt.Printf("  - %s\n", d)
			}
			log.Fatal("verification failed")
		}
		log.Fatalf("request failed: %v", err)
	}

	fmt.Printf("status:  %s\n", resp.Status)
	fmt.Printf("message: %s\n", resp.Message)
	if resp.Attestations != nil {
		fmt.Printf("present: %v\n", resp.Attestations.Present)
		fmt.Printf("missing: %v\n", resp.Attestations.Missing)
	}
	for _, tx := range resp.TxHashes {
		fmt.Printf("tx:      %s\n", tx)
	}
	for _, w := range resp.Warnings {
		fmt.Printf("warning: %s\n", w)
	}
	fmt.Printf("elapsed: %dms\n", resp.Elapsed)
}
