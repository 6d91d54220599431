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

package verifier

import (
	"context"

	"github.com/ethereum/go-ethereum/common"

	"github.com/sage-x-project/did-attest-go/pkg/did"
)

// Method names the evidence path that established control of a DID.
type Method string

const (
	MethodDNSTXT        Method = "dns-txt"
	MethodDIDDocument   Method = "did-document"
	MethodDirectOwner   Method = "direct-owner"
	MethodProxyAdmin    Method = "proxy-admin"
	MethodMintingWallet Method = "minting-wallet"
	MethodTransferProof Method = "transfer-proof"
)

// Request carries everything a verifier needs for one verification attempt.
type Request struct {
	DID    did.DID
	Caller common.Address

	// TxHash enables the transfer-proof strategy for did:pkh. Nil when the
	// caller supplied none.
	TxHash *common.Hash
}

// Result is the tagged outcome of exactly one verifier run. Verified results
// carry the method and its evidence; failures carry a human-readable reason.
// Verifiers never return errors: every network or provider fault is folded
// into a failed Result so the HTTP layer can always answer with structure.
type Result struct {
	Verified bool
	Method   Method
	Evidence string
	Reason   string
}

// Verifier establishes that the request's caller controls the request's DID.
type Verifier interface {
	Verify(ctx context.Context, req Request) Result
}

func verified(method Method, evidence string) Result {
	return Result{Verified: true, Method: method, Evidence: evidence}
}

func failed(reason string) Result {
	return Result{Reason: reason}
}
