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

package protocol

// Status values carried by VerifyResponse.
const (
	StatusReady  = "ready"
	StatusFailed = "failed"
)

// VerifyRequest is the JSON body of POST /v1/verify.
type VerifyRequest struct {
	// DID is the identifier to verify and attest. Required.
	DID string `json:"did"`

	// ConnectedAddress is the caller's claimed controller address,
	// 0x-prefixed, 40 hex chars. Required.
	ConnectedAddress string `json:"connectedAddress"`

	// RequiredSchemas overrides the default ownership schema set. Every
	// entry must be in the deployment's approved set.
	RequiredSchemas []string `json:"requiredSchemas,omitempty"`

	// TxHash enables the transfer-proof strategy for did:pkh.
	TxHash string `json:"txHash,omitempty"`
}

// AttestationState reports which required schemas already attest the caller
// and which were missing at the start of the request.
type AttestationState struct {
	Present []string `json:"present"`
	Missing []string `json:"missing"`
}

// DebugInfo is the optional diagnostic payload, attached to responses only
// when the deployment enables the debug flag. It is not part of the
// contract guaranteed to callers.
type DebugInfo struct {
	RequestID       string `json:"requestId,omitempty"`
	DID             string `json:"did,omitempty"`
	DIDHash         string `json:"didHash,omitempty"`
	ChainID         uint64 `json:"chainId,omitempty"`
	ResolverAddress string `json:"resolverAddress,omitempty"`
	SignerAddress   string `json:"signerAddress,omitempty"`
	SignerType      string `json:"signerType,omitempty"`
	VerifyMethod    string `json:"verifyMethod,omitempty"`
	Evidence        string `json:"evidence,omitempty"`
}

// VerifyResponse is the JSON body of every /v1/verify answer, success or
// failure.
type VerifyResponse struct {
	OK      bool   `json:"ok"`
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`

	// Details carries per-schema write errors when every write failed.
	Details []string `json:"details,omitempty"`

	Attestations *AttestationState `json:"attestations,omitempty"`

	// TxHashes lists the attestation transactions submitted this request.
	TxHashes []string `json:"txHashes,omitempty"`

	// Warnings lists schemas whose writes failed while others succeeded.
	Warnings []string `json:"warnings,omitempty"`

	// Elapsed is the request duration in milliseconds.
	Elapsed int64 `json:"elapsed"`

	Debug *DebugInfo `json:"debug,omitempty"`
}
