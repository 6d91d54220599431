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

// Package version provides version information for did-attest-go.
package version

const (
	// Version is the current version of did-attest-go
	Version = "1.0.0-dev"

	// ResolverContractVersion is the resolver contract interface this
	// library targets (controllerOf / attest function signatures)
	ResolverContractVersion = "1.1.0"

	// MinResolverContractVersion is the oldest resolver contract version
	// compatible with this library
	MinResolverContractVersion = "1.0.0"
)

// Info contains detailed version information
type Info struct {
	Version                    string
	ResolverContractVersion    string
	MinResolverContractVersion string
}

// Get returns detailed version information
func Get() Info {
	return Info{
		Version:                    Version,
		ResolverContractVersion:    ResolverContractVersion,
		MinResolverContractVersion: MinResolverContractVersion,
	}
}
