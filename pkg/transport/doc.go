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

// Package transport implements the HTTP client for the managed wallet
// service.
//
// The wallet service holds the signing key on the operator's behalf and is
// addressed by base URL; every call carries the configured secret in the
// X-Wallet-Secret header. Two operations are consumed:
//
//	GET  /v1/address           -> {"address": "0x..."}
//	POST /v1/sign-transaction  -> {"signedTx": "0x..."} for {"chainId", "rawTx"}
//
// Calls use a retrying client with a bounded timeout; transport faults
// surface as errors for the signer layer to classify.
package transport
