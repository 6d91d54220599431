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

	"github.com/sage-x-project/did-attest-go/pkg/transport"
)

// WalletSigner delegates signing to the managed wallet service. The signing
// key never enters this process.
type WalletSigner struct {
	client  *transport.WalletClient
	address common.Address
}

// NewWalletSigner resolves the wallet's account once at construction; an
// unreachable wallet is a configuration error, not a per-request one.
func NewWalletSigner(ctx context.Context, client *transport.WalletClient) (*WalletSigner, error) {
	address, err := client.Address(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolve wallet address: %w", err)
	}
	return &WalletSigner{client: client, address: address}, nil
}

// Address returns the wallet's signing account.
func (s *WalletSigner) Address() common.Address {
	return s.address
}

// SignTx round-trips the transaction through the wallet service.
func (s *WalletSigner) SignTx(ctx context.Context, tx *types.Transaction, chainID *big.Int) (*types.Transaction, error) {
	raw, err := tx.MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("encode transaction: %w", err)
	}
	signedRaw, err := s.client.SignTransaction(ctx, chainID.Uint64(), raw)
	if err != nil {
		return nil, fmt.Errorf("wallet signing: %w", err)
	}
	signed := new(types.Transaction)
	if err := signed.UnmarshalBinary(signedRaw); err != nil {
		return nil, fmt.Errorf("decode signed transaction: %w", err)
	}
	return signed, nil
}

// Kind identifies the strategy for diagnostics.
func (s *WalletSigner) Kind() string {
	return "wallet"
}
