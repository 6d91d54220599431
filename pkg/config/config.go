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
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is the process configuration, read once at startup and passed by
// reference from there on. Nothing mutates it after Load returns.
type Config struct {
	// Chain selects a preset from Presets.
	Chain string `env:"ATTEST_CHAIN" envDefault:"sepolia"`

	// RPCEndpoint overrides the preset's default RPC endpoint.
	RPCEndpoint string `env:"ATTEST_RPC_ENDPOINT"`

	// ResolverAddress overrides the preset's resolver contract address.
	ResolverAddress string `env:"ATTEST_RESOLVER_ADDRESS"`

	// PrivateKey is a hex-encoded secp256k1 key for the local signer.
	// Mutually exclusive with WalletSecret.
	PrivateKey string `env:"ATTEST_PRIVATE_KEY,unset"`

	// WalletSecret authenticates against the managed wallet service.
	// Mutually exclusive with PrivateKey.
	WalletSecret string `env:"ATTEST_WALLET_SECRET,unset"`

	// WalletURL is the base URL of the managed wallet service.
	WalletURL string `env:"ATTEST_WALLET_URL"`

	// ApprovedSchemas are extra schema UIDs accepted in requiredSchemas,
	// on top of the preset's ownership schemas.
	ApprovedSchemas []string `env:"ATTEST_APPROVED_SCHEMAS" envSeparator:","`

	// ListenAddr is the HTTP listen address.
	ListenAddr string `env:"ATTEST_LISTEN_ADDR" envDefault:":8080"`

	// Debug attaches the diagnostic payload to every response.
	Debug bool `env:"ATTEST_DEBUG"`

	// DNSServer is the resolver used for TXT lookups, host:port.
	DNSServer string `env:"ATTEST_DNS_SERVER" envDefault:"8.8.8.8:53"`

	// DNSTimeout bounds a single DNS exchange.
	DNSTimeout time.Duration `env:"ATTEST_DNS_TIMEOUT" envDefault:"5s"`

	// HTTPTimeout bounds identity-document fetches and wallet calls.
	HTTPTimeout time.Duration `env:"ATTEST_HTTP_TIMEOUT" envDefault:"10s"`

	// ConfirmTimeout bounds waiting for an attestation receipt.
	ConfirmTimeout time.Duration `env:"ATTEST_CONFIRM_TIMEOUT" envDefault:"90s"`

	// MinConfirmations is the depth a transfer-proof transaction must reach.
	MinConfirmations uint64 `env:"ATTEST_MIN_CONFIRMATIONS" envDefault:"1"`
}

// Load reads the configuration from the environment and validates it.
func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the invariants the rest of the process relies on.
// Violations are configuration errors (operator-fixable, 500-class).
func (c *Config) Validate() error {
	if _, ok := Presets[c.Chain]; !ok {
		return fmt.Errorf("unknown chain preset %q", c.Chain)
	}
	if c.PrivateKey != "" && c.WalletSecret != "" {
		return fmt.Errorf("both ATTEST_PRIVATE_KEY and ATTEST_WALLET_SECRET are set; exactly one signer must be configured")
	}
	if c.WalletSecret != "" && c.WalletURL == "" {
		return fmt.Errorf("ATTEST_WALLET_SECRET is set but ATTEST_WALLET_URL is not")
	}
	return nil
}

// Preset returns the selected chain preset.
func (c *Config) Preset() (Preset, error) {
	p, ok := Presets[c.Chain]
	if !ok {
		return Preset{}, fmt.Errorf("unknown chain preset %q", c.Chain)
	}
	if c.RPCEndpoint != "" {
		p.RPCEndpoint = c.RPCEndpoint
	}
	if c.ResolverAddress != "" {
		p.ResolverAddress = c.ResolverAddress
	}
	return p, nil
}
