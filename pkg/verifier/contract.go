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
	"fmt"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"go.uber.org/zap"

	"github.com/sage-x-project/did-attest-go/pkg/chain"
	"github.com/sage-x-project/did-attest-go/pkg/did"
)

// eip1967AdminSlot is bytes32(uint256(keccak256("eip1967.proxy.admin")) - 1).
var eip1967AdminSlot = common.HexToHash("0xb53127684a568b3173ae13b9f8a6016e243e63b6e8ee1178d6a717850b5d6103")

// ownershipContext is the shared input of the ownership strategies.
type ownershipContext struct {
	backend  chain.Backend
	contract common.Address
	caller   common.Address
}

// ownershipStrategy discovers the address controlling a contract. ok is
// false when the strategy does not apply to this contract; an error means
// the probe itself failed, which feeds the next strategy instead of
// aborting.
type ownershipStrategy struct {
	method Method
	probe  func(ctx context.Context, oc *ownershipContext) (common.Address, bool, error)
}

// ContractVerifier proves control of a did:pkh contract identity.
type ContractVerifier struct {
	backend          chain.Backend
	minConfirmations uint64
	logger           *zap.Logger

	strategies []ownershipStrategy
}

// NewContractVerifier creates a contract-identity verifier over a chain
// backend.
func NewContractVerifier(backend chain.Backend, minConfirmations uint64, logger *zap.Logger) *ContractVerifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	if minConfirmations == 0 {
		minConfirmations = 1
	}
	return &ContractVerifier{
		backend:          backend,
		minConfirmations: minConfirmations,
		logger:           logger,
		strategies: []ownershipStrategy{
			{method: MethodDirectOwner, probe: probeDirectOwner},
			{method: MethodProxyAdmin, probe: probeProxyAdmin},
		},
	}
}

// Verify establishes that the caller controls the DID's contract address.
// Ordered strategies, first success wins; individual failures are never
// fatal. Provider faults become failed Results, never panics or errors.
func (v *ContractVerifier) Verify(ctx context.Context, req Request) Result {
	if req.DID.Method != did.MethodPKH {
		return failed(fmt.Sprintf("contract verifier received %s DID", req.DID.Method))
	}
	contract, err := req.DID.ContractAddress()
	if err != nil {
		return failed(err.Error())
	}
	if v.backend == nil {
		return failed("chain backend unavailable")
	}

	oc := &ownershipContext{backend: v.backend, contract: contract, caller: req.Caller}

	// Strategies 1-2: discover a controlling wallet and compare it to the
	// caller directly. The first discovery is also remembered for the
	// minting-wallet and transfer-proof paths.
	var discovered common.Address
	var discoveredBy Method
	for _, strategy := range v.strategies {
		owner, ok, probeErr := strategy.probe(ctx, oc)
		if probeErr != nil {
			v.logger.Debug("ownership probe failed",
				zap.String("strategy", string(strategy.method)),
				zap.Error(probeErr))
			continue
		}
		if !ok || owner == (common.Address{}) {
			continue
		}
		if owner == req.Caller {
			return verified(strategy.method,
				fmt.Sprintf("contract %s controlled by %s", contract.Hex(), owner.Hex()))
		}
		if discovered == (common.Address{}) {
			discovered = owner
			discoveredBy = strategy.method
		}
	}

	// Strategy 3: the caller presents the contract's own address as its
	// identity (smart-contract wallets). Accept the discovered controller
	// as the effective one.
	if req.Caller == contract {
		if discovered != (common.Address{}) {
			return verified(MethodMintingWallet,
				fmt.Sprintf("contract %s is the minting identity; controlling wallet %s via %s",
					contract.Hex(), discovered.Hex(), discoveredBy))
		}
		return failed(fmt.Sprintf("contract %s presented as its own identity but no controlling wallet could be discovered", contract.Hex()))
	}

	// Strategy 4: transfer-based proof, only when the caller supplied a
	// transaction hash.
	if req.TxHash != nil {
		if discovered == (common.Address{}) {
			return failed("could not discover controlling wallet for transfer proof")
		}
		return v.verifyTransfer(ctx, req, discovered, *req.TxHash)
	}

	if discovered != (common.Address{}) {
		return failed(fmt.Sprintf("contract %s is controlled by %s, not by caller %s",
			contract.Hex(), discovered.Hex(), req.Caller.Hex()))
	}
	return failed(fmt.Sprintf("no ownership evidence found for contract %s", contract.Hex()))
}

// ownerSelectors are the zero-argument ownership getters tried in order.
var ownerSelectors = []string{"owner()", "admin()", "getOwner()"}

// probeDirectOwner calls owner(), admin(), getOwner() in order. A revert or
// transport error on one selector moves to the next.
func probeDirectOwner(ctx context.Context, oc *ownershipContext) (common.Address, bool, error) {
	var lastErr error
	for _, sig := range ownerSelectors {
		selector := crypto.Keccak256([]byte(sig))[:4]
		out, err := oc.backend.CallContract(ctx, ethereum.CallMsg{
			To:   &oc.contract,
			Data: selector,
		}, nil)
		if err != nil {
			lastErr = err
			continue
		}
		if len(out) < 32 {
			continue
		}
		addr := common.BytesToAddress(out[len(out)-20:])
		if addr != (common.Address{}) {
			return addr, true, nil
		}
	}
	if lastErr != nil {
		return common.Address{}, false, fmt.Errorf("direct ownership calls: %w", lastErr)
	}
	return common.Address{}, false, nil
}

// probeProxyAdmin reads the EIP-1967 admin slot after confirming the target
// is a deployed contract. The low 20 bytes of the slot word, when non-zero,
// are the proxy admin.
func probeProxyAdmin(ctx context.Context, oc *ownershipContext) (common.Address, bool, error) {
	code, err := oc.backend.CodeAt(ctx, oc.contract, nil)
	if err != nil {
		return common.Address{}, false, fmt.Errorf("read code: %w", err)
	}
	if len(code) == 0 {
		return common.Address{}, false, nil
	}

	word, err := oc.backend.StorageAt(ctx, oc.contract, eip1967AdminSlot, nil)
	if err != nil {
		return common.Address{}, false, fmt.Errorf("read admin slot: %w", err)
	}
	if len(word) < 32 {
		return common.Address{}, false, nil
	}
	admin := common.BytesToAddress(word[12:32])
	if admin == (common.Address{}) {
		return common.Address{}, false, nil
	}
	return admin, true, nil
}
