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
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Web(t *testing.T) {
	d, err := Parse("did:web:Example.COM")

	require.NoError(t, err)
	assert.Equal(t, MethodWeb, d.Method)
	assert.Equal(t, "example.com", d.Domain)
	assert.Empty(t, d.Path)
}

func TestParse_WebWithPath(t *testing.T) {
	d, err := Parse("did:web:example.com:user:alice")

	require.NoError(t, err)
	assert.Equal(t, "example.com", d.Domain)
	assert.Equal(t, []string{"user", "alice"}, d.Path)
	assert.Equal(t, "did:web:example.com:user:alice", d.Normalize())
}

func TestParse_PKH(t *testing.T) {
	d, err := Parse("did:pkh:eip155:1:0xAbCdEf0123456789abcdef0123456789ABCDEF01")

	require.NoError(t, err)
	assert.Equal(t, MethodPKH, d.Method)
	assert.Equal(t, "eip155", d.Account.Namespace)
	assert.Equal(t, "1", d.Account.ChainRef)
	assert.Equal(t, "0xAbCdEf0123456789abcdef0123456789ABCDEF01", d.Account.Address)
}

func TestParse_UnsupportedMethod(t *testing.T) {
	_, err := Parse("did:foo:bar")

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupportedMethod))
}

func TestParse_Malformed(t *testing.T) {
	for _, s := range []string{"", "did", "did:web", "not-a-did", "did:pkh:eip155"} {
		_, err := Parse(s)
		assert.ErrorIs(t, err, ErrUnsupportedMethod, "input %q", s)
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	// Re-parsing the normalized form must yield the same normalized form.
	for _, raw := range []string{
		"did:web:EXAMPLE.com",
		"did:pkh:eip155:1:0xAbCdEf0123456789abcdef0123456789ABCDEF01",
	} {
		d, err := Parse(raw)
		require.NoError(t, err)

		n1 := d.Normalize()
		d2, err := Parse(n1)
		require.NoError(t, err)
		assert.Equal(t, n1, d2.Normalize())
	}
}

func TestHash_UsesNormalizedForm(t *testing.T) {
	a, err := Parse("did:web:Example.COM")
	require.NoError(t, err)
	b, err := Parse("did:web:example.com")
	require.NoError(t, err)

	assert.Equal(t, a.Hash(), b.Hash())
	assert.Equal(t, crypto.Keccak256Hash([]byte("did:web:example.com")), a.Hash())
}

func TestContractAddress(t *testing.T) {
	d, err := Parse("did:pkh:eip155:1:0xabcdef0123456789abcdef0123456789abcdef01")
	require.NoError(t, err)

	addr, err := d.ContractAddress()
	require.NoError(t, err)
	assert.True(t, EqualAddress(addr.Hex(), "0xabcdef0123456789abcdef0123456789abcdef01"))

	web, err := Parse("did:web:example.com")
	require.NoError(t, err)
	_, err = web.ContractAddress()
	assert.Error(t, err)
}

func TestValidAddress(t *testing.T) {
	assert.True(t, ValidAddress("0xabcdef0123456789abcdef0123456789abcdef01"))
	assert.True(t, ValidAddress("0xABCDEF0123456789ABCDEF0123456789ABCDEF01"))
	assert.False(t, ValidAddress("abcdef0123456789abcdef0123456789abcdef01"))
	assert.False(t, ValidAddress("0xabc"))
	assert.False(t, ValidAddress("0xzzcdef0123456789abcdef0123456789abcdef01"))
}

func TestEqualAddress(t *testing.T) {
	assert.True(t, EqualAddress(
		"0xABCDEF0123456789ABCDEF0123456789ABCDEF01",
		"0xabcdef0123456789abcdef0123456789abcdef01"))
	assert.True(t, EqualAddress(
		"abcdef0123456789abcdef0123456789abcdef01",
		"0xABCDEF0123456789ABCDEF0123456789ABCDEF01"))
	assert.False(t, EqualAddress(
		"0xabcdef0123456789abcdef0123456789abcdef01",
		"0xabcdef0123456789abcdef0123456789abcdef02"))
}
