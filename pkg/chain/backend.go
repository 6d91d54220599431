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

package chain

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/pkg/errors"
)

// Backend is the subset of the Ethereum JSON-RPC surface the service uses.
// *ethclient.Client satisfies it; tests substitute mocks.
type Backend interface {
	CallContract(ctx context.Context, call ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
	CodeAt(ctx context.Context, account common.Address, blockNumber *big.Int) ([]byte, error)
	StorageAt(ctx context.Context, account common.Address, key common.Hash, blockNumber *big.Int) ([]byte, error)
	TransactionByHash(ctx context.Context, hash common.Hash) (*types.Transaction, bool, error)
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
	BlockNumber(ctx context.Context) (uint64, error)
	ChainID(ctx context.Context) (*big.Int, error)
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
	SuggestGasPrice(ctx context.Context) (*big.Int, error)
	EstimateGas(ctx context.Context, call ethereum.CallMsg) (uint64, error)
	SendTransaction(ctx context.Context, tx *types.Transaction) error
}

// Context is the immutable per-request chain configuration. It is selected
// once from the configured preset and never mutated during a request.
type Context struct {
	ChainID  *big.Int
	Resolver common.Address
	Endpoint string
}

// Dial connects to the RPC endpoint and checks that the remote chain id
// matches the preset. A mismatch is a configuration error.
func Dial(ctx context.Context, cc Context) (Backend, error) {
	client, err := ethclient.DialContext(ctx, cc.Endpoint)
	if err != nil {
		return nil, errors.Wrapf(err, "dial %s", cc.Endpoint)
	}
	remote, err := client.ChainID(ctx)
	if err != nil {
		client.Close()
		return nil, errors.Wrap(err, "query chain id")
	}
	if cc.ChainID != nil && remote.Cmp(cc.ChainID) != 0 {
		client.Close()
		return nil, errors.Errorf("chain id mismatch: preset %s, endpoint %s", cc.ChainID, remote)
	}
	return client, nil
}
