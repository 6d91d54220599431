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

// Package config reads the process configuration from ATTEST_* environment
// variables and resolves the chain preset.
//
// Presets carry the per-chain constants (chain id, default RPC endpoint,
// resolver contract address, ownership schema UIDs); the environment can
// override the endpoint and the resolver address but never the chain id.
// Secrets (ATTEST_PRIVATE_KEY, ATTEST_WALLET_SECRET) are unset from the
// process environment after parsing.
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	preset, _ := cfg.Preset()
package config
