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

package did

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// Method is a supported DID method.
type Method string

const (
	// MethodWeb is the did:web method (web-hosted identities).
	MethodWeb Method = "web"

	// MethodPKH is the did:pkh method (blockchain account identities,
	// CAIP-10 method-specific id).
	MethodPKH Method = "pkh"
)

// ErrUnsupportedMethod is returned for malformed DIDs and for any method
// other than web or pkh. Callers map it to a client error, never a retry.
var ErrUnsupportedMethod = fmt.Errorf("unsupported DID type")

var addressPattern = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)

// DID is a parsed and classified decentralized identifier.
type DID struct {
	// Raw is the identifier exactly as received.
	Raw string

	// Method is the DID method segment.
	Method Method

	// Domain is the host for did:web, already lower-cased.
	Domain string

	// Path holds the optional did:web path segments (colon-separated in
	// the identifier, slash-separated on the wire).
	Path []string

	// Account is the CAIP-10 account for did:pkh.
	Account Account
}

// Account is a CAIP-10 account triple <namespace>:<chainRef>:<address>.
type Account struct {
	Namespace string
	ChainRef  string
	Address   string
}

// Parse classifies a DID string into one of the two supported methods.
// Anything with fewer than three colon-separated segments, or with an
// unknown method, yields ErrUnsupportedMethod.
func Parse(s string) (DID, error) {
	parts := strings.Split(s, ":")
	if len(parts) < 3 || parts[0] != "did" {
		return DID{}, fmt.Errorf("%w: %q", ErrUnsupportedMethod, s)
	}

	switch Method(parts[1]) {
	case MethodWeb:
		domain := strings.ToLower(parts[2])
		if domain == "" {
			return DID{}, fmt.Errorf("%w: empty did:web domain", ErrUnsupportedMethod)
		}
		d := DID{Raw: s, Method: MethodWeb, Domain: domain}
		if len(parts) > 3 {
			d.Path = parts[3:]
		}
		return d, nil

	case MethodPKH:
		acct, err := ParseAccount(strings.Join(parts[2:], ":"))
		if err != nil {
			return DID{}, fmt.Errorf("%w: %v", ErrUnsupportedMethod, err)
		}
		return DID{Raw: s, Method: MethodPKH, Account: acct}, nil

	default:
		return DID{}, fmt.Errorf("%w: %q", ErrUnsupportedMethod, parts[1])
	}
}

// ParseAccount parses a CAIP-10 account id. The address segment may itself
// contain no colons, so exactly three segments are required.
func ParseAccount(s string) (Account, error) {
	parts := strings.Split(s, ":")
	if len(parts) < 3 {
		return Account{}, fmt.Errorf("invalid CAIP-10 account %q", s)
	}
	acct := Account{
		Namespace: parts[0],
		ChainRef:  parts[1],
		Address:   parts[2],
	}
	if acct.Namespace == "" || acct.ChainRef == "" || acct.Address == "" {
		return Account{}, fmt.Errorf("invalid CAIP-10 account %q", s)
	}
	return acct, nil
}

// Normalize returns the canonical form used for hashing and comparison:
// the domain is case-folded for did:web, the address for did:pkh.
// Normalization is idempotent.
func (d DID) Normalize() string {
	switch d.Method {
	case MethodWeb:
		id := strings.ToLower(d.Domain)
		if len(d.Path) > 0 {
			id += ":" + strings.Join(d.Path, ":")
		}
		return "did:web:" + id
	case MethodPKH:
		return fmt.Sprintf("did:pkh:%s:%s:%s",
			d.Account.Namespace, d.Account.ChainRef, strings.ToLower(d.Account.Address))
	default:
		return d.Raw
	}
}

// Hash returns the keccak256 hash of the normalized DID. The resolver
// contract keys attestation records by this value.
func (d DID) Hash() common.Hash {
	return crypto.Keccak256Hash([]byte(d.Normalize()))
}

// ContractAddress returns the on-chain address of a did:pkh identifier.
// It is only meaningful when the address segment is a 0x-form EVM address.
func (d DID) ContractAddress() (common.Address, error) {
	if d.Method != MethodPKH {
		return common.Address{}, fmt.Errorf("not a did:pkh identifier: %s", d.Raw)
	}
	if !ValidAddress(d.Account.Address) {
		return common.Address{}, fmt.Errorf("invalid address in did:pkh: %q", d.Account.Address)
	}
	return common.HexToAddress(d.Account.Address), nil
}

// ValidAddress reports whether s is a 0x-prefixed 40-hex-char address.
func ValidAddress(s string) bool {
	return addressPattern.MatchString(s)
}

// EqualAddress compares two address strings case-insensitively. Either
// side may carry or omit the 0x prefix.
func EqualAddress(a, b string) bool {
	return strings.EqualFold(strings.TrimPrefix(a, "0x"), strings.TrimPrefix(b, "0x"))
}
