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

package config

// Preset is an immutable per-chain deployment description. The set of
// presets is closed; new chains are added here, not at runtime.
type Preset struct {
	Name            string
	ChainID         uint64
	RPCEndpoint     string
	ResolverAddress string

	// OwnershipSchema is the default required schema UID.
	OwnershipSchema string

	// LegacyOwnershipSchema is the predecessor deployment of the ownership
	// schema, still approved so that pre-migration attestations keep
	// validating. Empty when the chain never had one.
	LegacyOwnershipSchema string
}

// ApprovedSchemas lists every schema UID the preset accepts.
func (p Preset) ApprovedSchemas() []string {
	out := []string{p.OwnershipSchema}
	if p.LegacyOwnershipSchema != "" {
		out = append(out, p.LegacyOwnershipSchema)
	}
	return out
}

// Presets is the closed set of supported chains.
var Presets = map[string]Preset{
	"mainnet": {
		Name:            "mainnet",
		ChainID:         1,
		RPCEndpoint:     "https://eth.llamarpc.com",
		ResolverAddress: "0x8464135c8F25Da09e49BC8782676a84730C318bC",
		OwnershipSchema: "0x4b9746cd08bbf01a8ed63e37e5d804a7e8d79a1a276c0e9bd8f2a2cfcbcbf0a1",
		LegacyOwnershipSchema: "0x27c1a1f0f72a1f0a31fcdbd4a7a0c1dd2e8f4b6a9c3d5e7f90123456789abcde",
	},
	"sepolia": {
		Name:            "sepolia",
		ChainID:         11155111,
		RPCEndpoint:     "https://rpc.sepolia.org",
		ResolverAddress: "0x71C95911E9a5D330f4D621842EC243EE1343292e",
		OwnershipSchema: "0x4b9746cd08bbf01a8ed63e37e5d804a7e8d79a1a276c0e9bd8f2a2cfcbcbf0a1",
	},
	"local": {
		Name:            "local",
		ChainID:         31337,
		RPCEndpoint:     "http://127.0.0.1:8545",
		ResolverAddress: "0x5FbDB2315678afecb367f032d93F642f64180aa3",
		OwnershipSchema: "0x4b9746cd08bbf01a8ed63e37e5d804a7e8d79a1a276c0e9bd8f2a2cfcbcbf0a1",
	},
}
