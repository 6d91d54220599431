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
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sage-x-project/did-attest-go/pkg/chain"
	"github.com/sage-x-project/did-attest-go/pkg/signer"
)

const testKeyHex = "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"

var (
	resolverAddr = common.HexToAddress("0x00000000000000000000000000000000000000aa")
	controller   = common.HexToAddress("0xabcdef0123456789abcdef0123456789abcdef01")
	didHash      = common.HexToHash("0x1111111111111111111111111111111111111111111111111111111111111111")
	schemaOne    = common.HexToHash("0x0a0a0a0a0a0a0a0a0a0a0a0a0a0a0a0a0a0a0a0a0a0a0a0a0a0a0a0a0a0a0a0a")
	schemaTwo    = common.HexToHash("0x0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b")
	schemaThree  = common.HexToHash("0x0c0c0c0c0c0c0c0c0c0c0c0c0c0c0c0c0c0c0c0c0c0c0c0c0c0c0c0c0c0c0c0c")
)

// writerBackend simulates submission and confirmation. Schemas listed in
// rejected fail at SendTransaction; schemas listed in reverted get a failed
// receipt. The schema is recovered from the attest calldata.
type writerBackend struct {
	rejected map[common.Hash]bool
	reverted map[common.Hash]bool

	sent       []*types.Transaction
	sentSchema map[common.Hash]common.Hash // tx hash -> schema
	nonce      uint64
}

func schemaFromCalldata(data []byte) common.Hash {
	// attest(bytes32 didHash, bytes32 schema, address controller, bytes data)
	return common.BytesToHash(data[4+32 : 4+64])
}

func (b *writerBackend) SendTransaction(_ context.Context, tx *types.Transaction) error {
	schema := schemaFromCalldata(tx.Data())
	if b.rejected[schema] {
		return errors.New("nonce too low")
	}
	if b.sentSchema == nil {
		b.sentSchema = map[common.Hash]common.Hash{}
	}
	b.sent = append(b.sent, tx)
	b.sentSchema[tx.Hash()] = schema
	return nil
}

func (b *writerBackend) TransactionReceipt(_ context.Context, txHash common.Hash) (*types.Receipt, error) {
	schema, ok := b.sentSchema[txHash]
	if !ok {
		return nil, ethereum.NotFound
	}
	status := types.ReceiptStatusSuccessful
	if b.reverted[schema] {
		status = types.ReceiptStatusFailed
	}
	return &types.Receipt{Status: status, BlockNumber: big.NewInt(10)}, nil
}

func (b *writerBackend) CallContract(_ context.Context, call ethereum.CallMsg, _ *big.Int) ([]byte, error) {
	// controllerOf read-back: report the controller for anything written.
	return common.LeftPadBytes(controller.Bytes(), 32), nil
}

func (b *writerBackend) PendingNonceAt(context.Context, common.Address) (uint64, error) {
	n := b.nonce
	b.nonce++
	return n, nil
}

func (b *writerBackend) SuggestGasPrice(context.Context) (*big.Int, error) {
	return big.NewInt(2_000_000_000), nil
}

func (b *writerBackend) EstimateGas(context.Context, ethereum.CallMsg) (uint64, error) {
	return 90_000, nil
}

func (b *writerBackend) CodeAt(context.Context, common.Address, *big.Int) ([]byte, error) {
	return nil, errors.New("not implemented")
}

func (b *writerBackend) StorageAt(context.Context, common.Address, common.Hash, *big.Int) ([]byte, error) {
	return nil, errors.New("not implemented")
}

func (b *writerBackend) TransactionByHash(context.Context, common.Hash) (*types.Transaction, bool, error) {
	return nil, false, errors.New("not implemented")
}

func (b *writerBackend) BlockNumber(context.Context) (uint64, error) { return 10, nil }

func (b *writerBackend) ChainID(context.Context) (*big.Int, error) { return big.NewInt(31337), nil }

func newTestWriter(t *testing.T, backend *writerBackend) *Writer {
	t.Helper()
	resolver, err := chain.NewResolver(backend, resolverAddr)
	require.NoError(t, err)
	s, err := signer.NewLocalSigner(testKeyHex)
	require.NoError(t, err)
	return NewWriter(backend, resolver, s, big.NewInt(31337), 2*time.Second, nil)
}

func TestWrite_AllSucceed(t *testing.T) {
	backend := &writerBackend{}
	w := newTestWriter(t, backend)

	outcome := w.Write(context.Background(), didHash, controller, []common.Hash{schemaOne, schemaTwo})

	assert.Len(t, outcome.TxHashes(), 2)
	assert.Empty(t, outcome.Failed())
	assert.False(t, outcome.AllFailed())
	assert.Len(t, backend.sent, 2)
}

func TestWrite_PartialFailure(t *testing.T) {
	backend := &writerBackend{rejected: map[common.Hash]bool{schemaTwo: true}}
	w := newTestWriter(t, backend)

	outcome := w.Write(context.Background(), didHash, controller, []common.Hash{schemaOne, schemaTwo, schemaThree})

	assert.Len(t, outcome.TxHashes(), 2)
	require.Len(t, outcome.Failed(), 1)
	assert.Equal(t, schemaTwo, outcome.Failed()[0].Schema)
	assert.False(t, outcome.AllFailed())
	// The failure on schemaTwo must not have stopped schemaThree.
	assert.Len(t, backend.sent, 2)
}

func TestWrite_AllFail(t *testing.T) {
	backend := &writerBackend{rejected: map[common.Hash]bool{schemaOne: true, schemaTwo: true}}
	w := newTestWriter(t, backend)

	outcome := w.Write(context.Background(), didHash, controller, []common.Hash{schemaOne, schemaTwo})

	assert.Empty(t, outcome.TxHashes())
	assert.Len(t, outcome.Failed(), 2)
	assert.True(t, outcome.AllFailed())
}

func TestWrite_RevertedTransactionIsFailure(t *testing.T) {
	backend := &writerBackend{reverted: map[common.Hash]bool{schemaOne: true}}
	w := newTestWriter(t, backend)

	outcome := w.Write(context.Background(), didHash, controller, []common.Hash{schemaOne})

	require.Len(t, outcome.Failed(), 1)
	assert.Contains(t, outcome.Failed()[0].Err.Error(), "reverted")
}

func TestWrite_SequentialNonces(t *testing.T) {
	backend := &writerBackend{}
	w := newTestWriter(t, backend)

	w.Write(context.Background(), didHash, controller, []common.Hash{schemaOne, schemaTwo, schemaThree})

	require.Len(t, backend.sent, 3)
	for i, tx := range backend.sent {
		assert.Equal(t, uint64(i), tx.Nonce())
	}
}

func TestWrite_NothingAttempted(t *testing.T) {
	w := newTestWriter(t, &writerBackend{})

	outcome := w.Write(context.Background(), didHash, controller, nil)

	assert.Empty(t, outcome.Writes)
	assert.False(t, outcome.AllFailed())
}

func TestOutcome_Aggregation(t *testing.T) {
	o := Outcome{Writes: []SchemaWrite{
		{Schema: schemaOne, TxHash: common.HexToHash("0x01")},
		{Schema: schemaTwo, Err: errors.New("boom")},
	}}

	assert.Equal(t, []string{common.HexToHash("0x01").Hex()}, o.TxHashes())
	assert.Len(t, o.Failed(), 1)
	assert.False(t, o.AllFailed())
}
