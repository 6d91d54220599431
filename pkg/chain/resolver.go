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
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
)

// resolverABI is the fragment of the resolver contract the service consumes:
// one read (current controller for a DID hash and schema) and one write.
const resolverABI = `[
  {
    "name": "controllerOf",
    "type": "function",
    "stateMutability": "view",
    "inputs": [
      {"name": "didHash", "type": "bytes32"},
      {"name": "schema", "type": "bytes32"}
    ],
    "outputs": [{"name": "", "type": "address"}]
  },
  {
    "name": "attest",
    "type": "function",
    "stateMutability": "nonpayable",
    "inputs": [
      {"name": "didHash", "type": "bytes32"},
      {"name": "schema", "type": "bytes32"},
      {"name": "controller", "type": "address"},
      {"name": "data", "type": "bytes"}
    ],
    "outputs": []
  }
]`

// Resolver wraps read/write access to the attestation resolver contract.
type Resolver struct {
	backend Backend
	address common.Address
	abi     abi.ABI
}

// NewResolver builds a resolver binding at the given contract address.
func NewResolver(backend Backend, address common.Address) (*Resolver, error) {
	parsed, err := abi.JSON(strings.NewReader(resolverABI))
	if err != nil {
		return nil, errors.Wrap(err, "parse resolver ABI")
	}
	return &Resolver{backend: backend, address: address, abi: parsed}, nil
}

// Address returns the resolver contract address.
func (r *Resolver) Address() common.Address {
	return r.address
}

// ControllerOf reads the current controller recorded for (didHash, schema).
// The zero address means no attestation exists.
func (r *Resolver) ControllerOf(ctx context.Context, didHash, schema common.Hash) (common.Address, error) {
	data, err := r.abi.Pack("controllerOf", [32]byte(didHash), [32]byte(schema))
	if err != nil {
		return common.Address{}, errors.Wrap(err, "pack controllerOf")
	}
	out, err := r.backend.CallContract(ctx, ethereum.CallMsg{To: &r.address, Data: data}, nil)
	if err != nil {
		return common.Address{}, errors.Wrap(err, "call controllerOf")
	}
	res, err := r.abi.Unpack("controllerOf", out)
	if err != nil {
		return common.Address{}, errors.Wrap(err, "unpack controllerOf")
	}
	addr, ok := res[0].(common.Address)
	if !ok {
		return common.Address{}, errors.New("controllerOf returned non-address value")
	}
	return addr, nil
}

// PackAttest encodes the calldata for the attestation-write function.
func (r *Resolver) PackAttest(didHash, schema common.Hash, controller common.Address, data []byte) ([]byte, error) {
	if data == nil {
		data = []byte{}
	}
	packed, err := r.abi.Pack("attest", [32]byte(didHash), [32]byte(schema), controller, data)
	if err != nil {
		return nil, errors.Wrap(err, "pack attest")
	}
	return packed, nil
}

// EstimateAttestGas estimates gas for an attest call, falling back to a
// fixed default when the node refuses to estimate (some providers reject
// estimation for not-yet-authorized writers). A successful estimate is
// never reduced: capping below what the node asked for would guarantee an
// out-of-gas revert.
func (r *Resolver) EstimateAttestGas(ctx context.Context, from common.Address, calldata []byte) uint64 {
	const attestGasFallback = 300_000

	gas, err := r.backend.EstimateGas(ctx, ethereum.CallMsg{
		From: from,
		To:   &r.address,
		Data: calldata,
	})
	if err != nil || gas == 0 {
		return attestGasFallback
	}
	// Headroom over the estimate; resolver writes touch cold storage.
	return gas + gas/5
}

// ParseSchema validates and decodes a 32-byte hex schema UID.
func ParseSchema(s string) (common.Hash, error) {
	trimmed := strings.TrimPrefix(strings.ToLower(s), "0x")
	if len(trimmed) != 64 {
		return common.Hash{}, errors.Errorf("invalid schema UID %q: want 32-byte hex", s)
	}
	for _, c := range trimmed {
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return common.Hash{}, errors.Errorf("invalid schema UID %q: non-hex character", s)
		}
	}
	return common.HexToHash(trimmed), nil
}

// SchemaHex renders a schema UID in the canonical lower-case 0x form.
func SchemaHex(h common.Hash) string {
	return strings.ToLower(h.Hex())
}

// NewChainContext assembles the immutable per-request chain context.
func NewChainContext(chainID uint64, endpoint, resolver string) (Context, error) {
	if !common.IsHexAddress(resolver) {
		return Context{}, errors.Errorf("invalid resolver address %q", resolver)
	}
	return Context{
		ChainID:  new(big.Int).SetUint64(chainID),
		Resolver: common.HexToAddress(resolver),
		Endpoint: endpoint,
	}, nil
}
