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

// Package did parses and normalizes the two DID methods the attestation
// service supports.
//
// # Supported methods
//
//   - did:web — the method-specific id is a domain, optionally followed by
//     colon-separated path segments: did:web:example.com:user:alice
//   - did:pkh — the method-specific id is a CAIP-10 account triple:
//     did:pkh:eip155:1:0xAb58...c9
//
// Any other method, and any identifier with fewer than three colon-separated
// segments, is rejected with ErrUnsupportedMethod. The HTTP layer maps that
// error to a 400; it never reaches the verifiers or the writer.
//
// # Normalization
//
// Normalize case-folds the domain (web) or the address (pkh) and nothing
// else. The normalized form is the only form that is ever hashed or
// compared:
//
//	d, _ := did.Parse("did:web:Example.COM")
//	d.Normalize() // "did:web:example.com"
//	d.Hash()      // keccak256("did:web:example.com")
//
// Hash is the resolver contract's record key, so normalization must stay
// stable across releases.
package did
