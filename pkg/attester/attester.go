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

package attester

import (
	"context"
	"math/big"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/sage-x-project/did-attest-go/pkg/chain"
	"github.com/sage-x-project/did-attest-go/pkg/signer"
)

// SchemaWrite is the per-schema result of one attestation write.
type SchemaWrite struct {
	Schema common.Hash
	TxHash common.Hash
	Err    error
}

// Outcome aggregates the per-schema writes of one request.
type Outcome struct {
	Writes []SchemaWrite
}

// TxHashes lists the transaction hashes of the successful writes.
func (o Outcome) TxHashes() []string {
	return lo.FilterMap(o.Writes, func(w SchemaWrite, _ int) (string, bool) {
		return w.TxHash.Hex(), w.Err == nil
	})
}

// Failed lists the writes that did not make it on chain.
func (o Outcome) Failed() []SchemaWrite {
	return lo.Filter(o.Writes, func(w SchemaWrite, _ int) bool { return w.Err != nil })
}

// AllFailed reports whether not a single attempted write succeeded.
// It is false when nothing was attempted.
func (o Outcome) AllFailed() bool {
	return len(o.Writes) > 0 && len(o.Failed()) == len(o.Writes)
}

// Writer signs and submits one attestation transaction per missing schema.
// Submissions are sequential: a single signer means a single nonce stream,
// and sequential submission keeps every failure attributable to its schema.
// There is no retry inside the writer; a failed write is reported and retry
// policy stays with the caller.
type Writer struct {
	backend        chain.Backend
	resolver       *chain.Resolver
	signer         signer.TxSigner
	chainID        *big.Int
	confirmTimeout time.Duration
	logger         *zap.Logger
}

// NewWriter creates an attestation writer.
func NewWriter(backend chain.Backend, resolver *chain.Resolver, txSigner signer.TxSigner, chainID *big.Int, confirmTimeout time.Duration, logger *zap.Logger) *Writer {
	if logger == nil {
		logger = zap.NewNop()
	}
	if confirmTimeout <= 0 {
		confirmTimeout = 90 * time.Second
	}
	return &Writer{
		backend:        backend,
		resolver:       resolver,
		signer:         txSigner,
		chainID:        chainID,
		confirmTimeout: confirmTimeout,
		logger:         logger,
	}
}

// Write submits one attestation per schema, in order. A failure on one
// schema never aborts the batch; it is recorded and the next schema is
// attempted.
func (w *Writer) Write(ctx context.Context, didHash common.Hash, controller common.Address, schemas []common.Hash) Outcome {
	outcome := Outcome{Writes: make([]SchemaWrite, 0, len(schemas))}
	for _, schema := range schemas {
		txHash, err := w.writeOne(ctx, didHash, schema, controller)
		if err != nil {
			w.logger.Warn("attestation write failed",
				zap.String("schema", chain.SchemaHex(schema)),
				zap.Error(err))
		} else {
			w.logger.Info("attestation written",
				zap.String("schema", chain.SchemaHex(schema)),
				zap.String("tx", txHash.Hex()))
		}
		outcome.Writes = append(outcome.Writes, SchemaWrite{Schema: schema, TxHash: txHash, Err: err})
	}
	return outcome
}

// writeOne builds, signs, submits and confirms a single attest transaction.
// Every stage's error is wrapped so the per-schema report says where the
// write died.
func (w *Writer) writeOne(ctx context.Context, didHash, schema common.Hash, controller common.Address) (common.Hash, error) {
	calldata, err := w.resolver.PackAttest(didHash, schema, controller, nil)
	if err != nil {
		return common.Hash{}, errors.Wrap(err, "prepare calldata")
	}

	from := w.signer.Address()
	nonce, err := w.backend.PendingNonceAt(ctx, from)
	if err != nil {
		return common.Hash{}, errors.Wrap(err, "fetch nonce")
	}
	gasPrice, err := w.backend.SuggestGasPrice(ctx)
	if err != nil {
		return common.Hash{}, errors.Wrap(err, "suggest gas price")
	}
	gas := w.resolver.EstimateAttestGas(ctx, from, calldata)

	to := w.resolver.Address()
	tx := types.NewTx(&types.LegacyTx{
		Nonce:    nonce,
		To:       &to,
		Value:    big.NewInt(0),
		Gas:      gas,
		GasPrice: gasPrice,
		Data:     calldata,
	})

	signed, err := w.signer.SignTx(ctx, tx, w.chainID)
	if err != nil {
		return common.Hash{}, errors.Wrap(err, "sign transaction")
	}
	if err := w.backend.SendTransaction(ctx, signed); err != nil {
		return common.Hash{}, errors.Wrap(err, "submit transaction")
	}
	txHash := signed.Hash()

	receipt, err := w.waitMined(ctx, txHash)
	if err != nil {
		return txHash, errors.Wrapf(err, "confirm transaction %s", txHash.Hex())
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return txHash, errors.Errorf("transaction %s reverted", txHash.Hex())
	}

	w.confirmReadBack(ctx, didHash, schema, controller)
	return txHash, nil
}

// waitMined polls for the receipt with exponential backoff, bounded by the
// configured confirmation timeout.
func (w *Writer) waitMined(ctx context.Context, txHash common.Hash) (*types.Receipt, error) {
	var receipt *types.Receipt

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = 500 * time.Millisecond
	policy.MaxInterval = 5 * time.Second
	policy.MaxElapsedTime = w.confirmTimeout

	err := backoff.Retry(func() error {
		r, err := w.backend.TransactionReceipt(ctx, txHash)
		if err != nil {
			return err
		}
		receipt = r
		return nil
	}, backoff.WithContext(policy, ctx))
	if err != nil {
		return nil, err
	}
	return receipt, nil
}

// confirmReadBack re-reads the resolver after a write. It is best-effort:
// a stale or failed read must not invalidate a transaction the network
// already accepted, so mismatches are only logged.
func (w *Writer) confirmReadBack(ctx context.Context, didHash, schema common.Hash, controller common.Address) {
	stored, err := w.resolver.ControllerOf(ctx, didHash, schema)
	if err != nil {
		w.logger.Warn("post-write read-back failed",
			zap.String("schema", chain.SchemaHex(schema)),
			zap.Error(err))
		return
	}
	if stored != controller {
		w.logger.Warn("post-write read-back mismatch",
			zap.String("schema", chain.SchemaHex(schema)),
			zap.String("stored", stored.Hex()),
			zap.String("expected", controller.Hex()))
	}
}
