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

// Package chain provides the Ethereum-facing plumbing: the Backend RPC
// interface, the resolver contract binding, and the attestation existence
// checker that drives the fast path.
//
// # Backend
//
// Backend narrows *ethclient.Client to the calls the service makes, so the
// verifiers and the writer can be exercised against mocks:
//
//	backend, err := chain.Dial(ctx, chainCtx)
//	if err != nil {
//	    // configuration error: bad endpoint or chain id mismatch
//	}
//
// # Existence checking
//
// The checker classifies each required schema as present (stored controller
// equals the caller) or missing. A read error downgrades to missing rather
// than failing the request: reads are best-effort, writes are authoritative.
//
//	statuses := checker.Check(ctx, didHash, caller, schemas)
//	if chain.AllPresent(statuses) {
//	    // fast path: no verification, no write
//	}
package chain
