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

// Package verifier establishes that a caller controls the identity named by
// a DID. One verifier runs per request, selected by DID method.
//
// # Web identities (did:web)
//
// Ordered strategies, first success wins:
//
//  1. DNS TXT lookup on the normalized domain. A record is considered when
//     it carries the v=1 marker; each caip10=<ns>:<ref>:<addr> token is
//     compared to the caller case-insensitively. Malformed tokens are
//     skipped, never fatal.
//  2. The hosted identity document (/.well-known/did.json). Each
//     verificationMethod entry matches via blockchainAccountId or
//     publicKeyHex.
//
// # Contract identities (did:pkh)
//
// Ordered strategies sharing one probe signature, tried with short-circuit
// iteration:
//
//  1. Direct ownership calls: owner(), admin(), getOwner(). A revert moves
//     to the next selector.
//  2. The EIP-1967 proxy admin storage slot, after confirming deployed
//     bytecode.
//  3. Minting-wallet equivalence: a caller presenting the contract's own
//     address is accepted when a distinct controlling wallet was discovered.
//  4. Transfer-based proof, only when the request carries a transaction
//     hash: the discovered controlling wallet must have sent the caller a
//     transfer whose value equals the derived marker amount, mined to the
//     minimum confirmation depth.
//
// # Results
//
// Verify never returns a Go error. Every network, RPC or provider fault is
// folded into Result{Verified: false, Reason: ...} so the HTTP layer always
// has a structured outcome to report:
//
//	result := webVerifier.Verify(ctx, verifier.Request{DID: d, Caller: caller})
//	if !result.Verified {
//	    // 403 with result.Reason
//	}
package verifier
