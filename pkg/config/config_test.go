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

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("ATTEST_PRIVATE_KEY", "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "sepolia", cfg.Chain)
	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, uint64(1), cfg.MinConfirmations)
	assert.False(t, cfg.Debug)
}

func TestLoad_UnknownChain(t *testing.T) {
	t.Setenv("ATTEST_CHAIN", "ropsten")

	_, err := Load()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown chain preset")
}

func TestValidate_BothSigners(t *testing.T) {
	cfg := &Config{Chain: "sepolia", PrivateKey: "ab", WalletSecret: "cd", WalletURL: "http://w"}

	err := cfg.Validate()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "exactly one signer")
}

func TestValidate_WalletSecretWithoutURL(t *testing.T) {
	cfg := &Config{Chain: "sepolia", WalletSecret: "cd"}

	assert.Error(t, cfg.Validate())
}

func TestPreset_Overrides(t *testing.T) {
	cfg := &Config{
		Chain:           "local",
		RPCEndpoint:     "http://10.0.0.5:8545",
		ResolverAddress: "0x0000000000000000000000000000000000000042",
	}

	p, err := cfg.Preset()

	require.NoError(t, err)
	assert.Equal(t, uint64(31337), p.ChainID)
	assert.Equal(t, "http://10.0.0.5:8545", p.RPCEndpoint)
	assert.Equal(t, "0x0000000000000000000000000000000000000042", p.ResolverAddress)

	// The shared preset table must not have been mutated.
	assert.Equal(t, "http://127.0.0.1:8545", Presets["local"].RPCEndpoint)
}

func TestPreset_ApprovedSchemas(t *testing.T) {
	assert.Len(t, Presets["mainnet"].ApprovedSchemas(), 2)
	assert.Len(t, Presets["sepolia"].ApprovedSchemas(), 1)
}
