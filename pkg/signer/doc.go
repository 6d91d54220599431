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

// Package signer provides the two interchangeable transaction-signing
// strategies of the attestation writer.
//
// # Strategies
//
//   - LocalSigner: a secp256k1 private key loaded from configuration. The
//     key stays in process memory; the account is derived from it.
//   - WalletSigner: a managed wallet service addressed by base URL and
//     authenticated with a secret key. The key never enters this process;
//     unsigned transactions are round-tripped over HTTPS.
//
// Exactly one strategy is active per process, selected by configuration:
//
//	s, err := signer.FromConfig(ctx, cfg)
//	if err != nil {
//	    // configuration error (500-class): no signer, or two signers
//	}
//	signed, err := s.SignTx(ctx, tx, chainID)
//
// Both implementations satisfy TxSigner, so the writer is oblivious to
// which one is active.
package signer
