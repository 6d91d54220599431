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

// Package protocol defines the JSON wire types of the verification
// endpoint, shared by the server and the Go client.
//
// Response statuses map to HTTP codes as follows:
//
//   - 400: malformed DID or address, unsupported DID method
//   - 200 StatusReady: fast path, or verification plus writes succeeded
//     (possibly with warnings on partial write failure)
//   - 403 StatusFailed: verification found no controller proof
//   - 500 StatusFailed: configuration error, or every required write failed
package protocol
