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

package verifier

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sage-x-project/did-attest-go/pkg/did"
)

// stubBackend is a function-field chain backend; unset calls fail loudly.
type stubBackend struct {
	callContract func(ethereum.CallMsg) ([]byte, error)
	codeAt       func(common.Address) ([]byte, error)
	storageAt    func(common.Address, common.Hash) ([]byte, error)
	txByHash     func(common.Hash) (*types.Transaction, bool, error)
	receipt      func(common.Hash) (*types.Receipt, error)
	blockNumber  func() (uint64, error)
	chainID      func() (*big.Int, error)

	storageReads int
}

func (s *stubBackend) CallContract(_ context.Context, call ethereum.CallMsg, _ *big.Int) ([]byte, error) {
	if s.callContract == nil {
		return nil, errors.New("unexpected CallContract")
	}
	return s.callContract(call)
}

func (s *stubBackend) CodeAt(_ context.Context, account common.Address, _ *big.Int) ([]byte, error) {
	if s.codeAt == nil {
		return nil, errors.New("unexpected CodeAt")
	}
	return s.codeAt(account)
}

func (s *stubBackend) StorageAt(_ context.Context, account common.Address, key common.Hash, _ *big.Int) ([]byte, error) {
	s.storageReads++
	if s.storageAt == nil {
		return nil, errors.New("unexpected StorageAt")
	}
	return s.storageAt(account, key)
}

func (s *stubBackend) TransactionByHash(_ context.Context, hash common.Hash) (*types.Transaction, bool, error) {
	if s.txByHash == nil {
		return nil, false, errors.New("unexpected TransactionByHash")
	}
	return s.txByHash(hash)
}

func (s *stubBackend) TransactionReceipt(_ context.Context, hash common.Hash) (*types.Receipt, error) {
	if s.receipt == nil {
		return nil, errors.New("unexpected TransactionReceipt")
	}
	return s.receipt(hash)
}

func (s *stubBackend) BlockNumber(context.Context) (uint64, error) {
	if s.blockNumber == nil {
		return 0, errors.New("unexpected BlockNumber")
	}
	return s.blockNumber()
}

func (s *stubBackend) ChainID(context.Context) (*big.Int, error) {
	if s.chainID == nil {
		return big.NewInt(1), nil
	}
	return s.chainID()
}

func (s *stubBackend) PendingNonceAt(context.Context, common.Address) (uint64, error) {
	return 0, errors.New("unexpected PendingNonceAt")
}

func (s *stubBackend) SuggestGasPrice(context.Context) (*big.Int, error) {
	return nil, errors.New("unexpected SuggestGasPrice")
}

func (s *stubBackend) EstimateGas(context.Context, ethereum.CallMsg) (uint64, error) {
	return 0, errors.New("unexpected EstimateGas")
}

func (s *stubBackend) SendTransaction(context.Context, *types.Transaction) error {
	return errors.New("unexpected SendTransaction")
}

var (
	contractAddr = common.HexToAddress("0xCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCC")
	callerAddr   = common.HexToAddress("0xabcdef0123456789abcdef0123456789abcdef01")
	walletAddr   = common.HexToAddress("0x9999999999999999999999999999999999999999")
)

func pkhRequest(t *testing.T, caller common.Address) Request {
	t.Helper()
	d, err := did.Parse("did:pkh:eip155:1:" + contractAddr.Hex())
	require.NoError(t, err)
	return Request{DID: d, Caller: caller}
}

// addressWord ABI-encodes an address as a 32-byte return value.
func addressWord(addr common.Address) []byte {
	return common.LeftPadBytes(addr.Bytes(), 32)
}

func TestContractVerifier_DirectOwnerShortCircuits(t *testing.T) {
	backend := &stubBackend{
		callContract: func(call ethereum.CallMsg) ([]byte, error) {
			return addressWord(callerAddr), nil // owner() answers first
		},
	}
	v := NewContractVerifier(backend, 1, nil)

	result := v.Verify(context.Background(), pkhRequest(t, callerAddr))

	require.True(t, result.Verified)
	assert.Equal(t, MethodDirectOwner, result.Method)
	// EIP-1967 slot inspection must never have been attempted.
	assert.Zero(t, backend.storageReads)
}

func TestContractVerifier_ProxyAdminFallback(t *testing.T) {
	backend := &stubBackend{
		callContract: func(call ethereum.CallMsg) ([]byte, error) {
			return nil, errors.New("execution reverted") // all direct calls revert
		},
		codeAt: func(common.Address) ([]byte, error) {
			return []byte{0x60, 0x80}, nil // deployed contract
		},
		storageAt: func(_ common.Address, key common.Hash) ([]byte, error) {
			assert.Equal(t, eip1967AdminSlot, key)
			return addressWord(callerAddr), nil
		},
	}
	v := NewContractVerifier(backend, 1, nil)

	result := v.Verify(context.Background(), pkhRequest(t, callerAddr))

	require.True(t, result.Verified)
	assert.Equal(t, MethodProxyAdmin, result.Method)
}

func TestContractVerifier_ProxyAdminRequiresDeployedCode(t *testing.T) {
	backend := &stubBackend{
		callContract: func(ethereum.CallMsg) ([]byte, error) {
			return nil, errors.New("execution reverted")
		},
		codeAt: func(common.Address) ([]byte, error) {
			return nil, nil // no bytecode
		},
	}
	v := NewContractVerifier(backend, 1, nil)

	result := v.Verify(context.Background(), pkhRequest(t, callerAddr))

	require.False(t, result.Verified)
	assert.Zero(t, backend.storageReads)
}

func TestContractVerifier_MintingWalletEquivalence(t *testing.T) {
	// The caller presents the contract's own address; owner() discovers a
	// distinct controlling wallet.
	backend := &stubBackend{
		callContract: func(ethereum.CallMsg) ([]byte, error) {
			return addressWord(walletAddr), nil
		},
	}
	v := NewContractVerifier(backend, 1, nil)

	result := v.Verify(context.Background(), pkhRequest(t, contractAddr))

	require.True(t, result.Verified)
	assert.Equal(t, MethodMintingWallet, result.Method)
	assert.Contains(t, result.Evidence, walletAddr.Hex())
}

func TestContractVerifier_MintingWalletWithoutDiscoveryFails(t *testing.T) {
	backend := &stubBackend{
		callContract: func(ethereum.CallMsg) ([]byte, error) {
			return nil, errors.New("execution reverted")
		},
		codeAt: func(common.Address) ([]byte, error) { return nil, nil },
	}
	v := NewContractVerifier(backend, 1, nil)

	result := v.Verify(context.Background(), pkhRequest(t, contractAddr))

	require.False(t, result.Verified)
	assert.Contains(t, result.Reason, "no controlling wallet")
}

func TestContractVerifier_DistinctOwnerFails(t *testing.T) {
	backend := &stubBackend{
		callContract: func(ethereum.CallMsg) ([]byte, error) {
			return addressWord(walletAddr), nil
		},
	}
	v := NewContractVerifier(backend, 1, nil)

	result := v.Verify(context.Background(), pkhRequest(t, callerAddr))

	require.False(t, result.Verified)
	assert.Contains(t, result.Reason, walletAddr.Hex())
}

func TestContractVerifier_RejectsWebDID(t *testing.T) {
	d, err := did.Parse("did:web:example.com")
	require.NoError(t, err)
	v := NewContractVerifier(&stubBackend{}, 1, nil)

	result := v.Verify(context.Background(), Request{DID: d, Caller: callerAddr})

	assert.False(t, result.Verified)
}

func TestContractVerifier_NilBackendIsFailureNotPanic(t *testing.T) {
	v := NewContractVerifier(nil, 1, nil)

	result := v.Verify(context.Background(), pkhRequest(t, callerAddr))

	require.False(t, result.Verified)
	assert.Contains(t, result.Reason, "backend unavailable")
}
