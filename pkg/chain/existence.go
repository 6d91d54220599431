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

	"github.com/ethereum/go-ethereum/common"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

// SchemaStatus is the existence-check result for one required schema.
type SchemaStatus struct {
	Schema common.Hash

	// Present is true only when the stored controller is non-zero and
	// equals the caller. A record held by an unrelated address counts as
	// missing so verification re-runs and overwrites it.
	Present bool

	// Controller is the stored controller, zero when absent or unreadable.
	Controller common.Address
}

// ExistenceChecker reads the resolver's current attestation state. It is a
// pure read path; reads are best-effort and an RPC failure marks the schema
// missing instead of failing the request. Writes are the authoritative side.
type ExistenceChecker struct {
	resolver *Resolver
	logger   *zap.Logger
}

// NewExistenceChecker creates a checker over the given resolver binding.
func NewExistenceChecker(resolver *Resolver, logger *zap.Logger) *ExistenceChecker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExistenceChecker{resolver: resolver, logger: logger}
}

// Check reads the controller for every required schema and classifies each
// as present or missing relative to the caller.
func (c *ExistenceChecker) Check(ctx context.Context, didHash common.Hash, caller common.Address, schemas []common.Hash) []SchemaStatus {
	statuses := make([]SchemaStatus, 0, len(schemas))
	for _, schema := range schemas {
		controller, err := c.resolver.ControllerOf(ctx, didHash, schema)
		if err != nil {
			c.logger.Warn("attestation read failed, treating schema as missing",
				zap.String("schema", SchemaHex(schema)),
				zap.Error(err))
			statuses = append(statuses, SchemaStatus{Schema: schema})
			continue
		}
		present := controller != (common.Address{}) && controller == caller
		statuses = append(statuses, SchemaStatus{
			Schema:     schema,
			Present:    present,
			Controller: controller,
		})
	}
	return statuses
}

// AllPresent reports whether every required schema already attests the
// caller, i.e. the fast path applies.
func AllPresent(statuses []SchemaStatus) bool {
	return len(statuses) > 0 && lo.EveryBy(statuses, func(s SchemaStatus) bool { return s.Present })
}

// Missing returns the schemas that still need verification and a write.
func Missing(statuses []SchemaStatus) []common.Hash {
	return lo.FilterMap(statuses, func(s SchemaStatus, _ int) (common.Hash, bool) {
		return s.Schema, !s.Present
	})
}

// Present returns the schemas already attesting the caller.
func Present(statuses []SchemaStatus) []common.Hash {
	return lo.FilterMap(statuses, func(s SchemaStatus, _ int) (common.Hash, bool) {
		return s.Schema, s.Present
	})
}
