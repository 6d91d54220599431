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
	"encoding/binary"
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/sage-x-project/did-attest-go/pkg/did"
)

// TransferModeOwnership tags the ownership-verification flow in the expected
// transfer amount derivation.
const TransferModeOwnership = "ownership"

const (
	transferAmountFloor = 1_000_000 // wei
	transferAmountSpan  = 9_000_000 // wei
)

// ExpectedTransferAmount derives the wei amount a transfer-proof transaction
// must carry. The amount has no monetary significance (it is dust, bounded to
// [1e6, 1e7) wei); it exists only as a verifiable on-chain marker binding the
// transfer to this DID, caller, nonce and mode. The derivation is a contract:
// the party instructing the wallet to send the transfer must compute the same
// value, so any change here is a breaking protocol change.
func ExpectedTransferAmount(d did.DID, caller common.Address, nonce uint64, mode string) *big.Int {
	preimage := strings.Join([]string{
		strings.ToLower(d.Normalize()),
		strings.ToLower(caller.Hex()),
		strconv.FormatUint(nonce, 10),
		mode,
	}, "|")
	digest := crypto.Keccak256([]byte(preimage))
	amount := binary.BigEndian.Uint64(digest[:8])%transferAmountSpan + transferAmountFloor
	return new(big.Int).SetUint64(amount)
}

// verifyTransfer checks an on-chain value transfer as proof of control:
// sender must be the discovered controlling wallet, recipient the caller,
// the value the derived expected amount, and the transaction mined to the
// minimum confirmation depth with a successful receipt. Any mismatch fails;
// an unrelated incidental transfer must never be misread as proof.
func (v *ContractVerifier) verifyTransfer(ctx context.Context, req Request, wallet common.Address, txHash common.Hash) Result {
	tx, pending, err := v.backend.TransactionByHash(ctx, txHash)
	if err != nil {
		return failed(fmt.Sprintf("transfer proof: fetch transaction %s: %v", txHash.Hex(), err))
	}
	if pending {
		return failed(fmt.Sprintf("transfer proof: transaction %s is still pending", txHash.Hex()))
	}

	receipt, err := v.backend.TransactionReceipt(ctx, txHash)
	if err != nil {
		return failed(fmt.Sprintf("transfer proof: fetch receipt %s: %v", txHash.Hex(), err))
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return failed(fmt.Sprintf("transfer proof: transaction %s reverted", txHash.Hex()))
	}

	chainID, err := v.backend.ChainID(ctx)
	if err != nil {
		return failed(fmt.Sprintf("transfer proof: query chain id: %v", err))
	}
	sender, err := types.Sender(types.LatestSignerForChainID(chainID), tx)
	if err != nil {
		return failed(fmt.Sprintf("transfer proof: recover sender: %v", err))
	}
	if sender != wallet {
		return failed(fmt.Sprintf("transfer proof: sender %s is not the controlling wallet %s",
			sender.Hex(), wallet.Hex()))
	}
	if tx.To() == nil || *tx.To() != req.Caller {
		return failed(fmt.Sprintf("transfer proof: recipient is not the claimed address %s", req.Caller.Hex()))
	}

	expected := ExpectedTransferAmount(req.DID, req.Caller, tx.Nonce(), TransferModeOwnership)
	if tx.Value().Cmp(expected) != 0 {
		return failed(fmt.Sprintf("transfer proof: value %s does not match expected marker amount %s",
			tx.Value(), expected))
	}

	head, err := v.backend.BlockNumber(ctx)
	if err != nil {
		return failed(fmt.Sprintf("transfer proof: query head block: %v", err))
	}
	if receipt.BlockNumber == nil {
		return failed("transfer proof: receipt carries no block number")
	}
	mined := receipt.BlockNumber.Uint64()
	if head < mined {
		// Receipt ahead of the head we see: reorg or lagging provider.
		return failed(fmt.Sprintf("transfer proof: transaction block %d is ahead of head %d", mined, head))
	}
	depth := head - mined + 1
	if depth < v.minConfirmations {
		return failed(fmt.Sprintf("transfer proof: %d confirmation(s), need %d", depth, v.minConfirmations))
	}

	return verified(MethodTransferProof,
		fmt.Sprintf("transfer %s from %s to %s for %s wei", txHash.Hex(), wallet.Hex(), req.Caller.Hex(), tx.Value()))
}
