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

package signer

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/sage-x-project/did-attest-go/pkg/config"
	"github.com/sage-x-project/did-attest-go/pkg/transport"
)

// TxSigner signs attestation transactions. Exactly one implementation is
// selected by configuration for the process lifetime: a locally held key or
// the managed wallet service.
type TxSigner interface {
	// Address is the signing account, used for nonce management and as the
	// transaction sender.
	Address() common.Address

	// SignTx returns a signed copy of tx for the given chain.
	SignTx(ctx context.Context, tx *types.Transaction, chainID *big.Int) (*types.Transaction, error)

	// Kind names the signer strategy for diagnostics ("local" or "wallet").
	Kind() string
}

// FromConfig selects and constructs the configured signer. Both or neither
// signer being configured is a configuration error.
func FromConfig(ctx context.Context, cfg *config.Config) (TxSigner, error) {
	switch {
	case cfg.PrivateKey != "" && cfg.WalletSecret != "":
		return nil, fmt.Errorf("both local key and wallet secret configured; pick one")
	case cfg.PrivateKey != "":
		return NewLocalSigner(cfg.PrivateKey)
	case cfg.WalletSecret != "":
		client := transport.NewWalletClient(cfg.WalletURL, cfg.WalletSecret, cfg.HTTPTimeout)
		return NewWalletSigner(ctx, client)
	default:
		return nil, fmt.Errorf("no signer configured: set ATTEST_PRIVATE_KEY or ATTEST_WALLET_SECRET")
	}
}
