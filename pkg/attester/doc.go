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

// Package attester writes verified ownership attestations to the resolver
// contract, one transaction per required schema.
//
// Writes are sequential by design: the process has a single signer, so a
// single nonce stream, and serial submission keeps every failure
// attributable to exactly one schema. The aggregation rule is the caller's
// contract:
//
//   - every attempted write succeeds     -> success, TxHashes lists them all
//   - some succeed, some fail            -> success with warnings
//   - every attempted write fails        -> failure with per-schema details
//
// A transaction-preparation error (encoding, nonce fetch) is folded into
// that schema's SchemaWrite instead of aborting the batch. After each
// accepted transaction the writer re-reads the resolver; that read-back is
// best-effort and never invalidates an accepted write.
package attester
