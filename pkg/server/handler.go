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

package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/sage-x-project/did-attest-go/pkg/attester"
	"github.com/sage-x-project/did-attest-go/pkg/chain"
	"github.com/sage-x-project/did-attest-go/pkg/did"
	"github.com/sage-x-project/did-attest-go/pkg/protocol"
	"github.com/sage-x-project/did-attest-go/pkg/verifier"
)

// ExistenceChecker is the read path deciding the fast path.
type ExistenceChecker interface {
	Check(ctx context.Context, didHash common.Hash, caller common.Address, schemas []common.Hash) []chain.SchemaStatus
}

// AttestationWriter is the single mutating collaborator of the handler.
type AttestationWriter interface {
	Write(ctx context.Context, didHash common.Hash, controller common.Address, schemas []common.Hash) attester.Outcome
}

// SignerInfo describes the configured signer for diagnostics.
type SignerInfo struct {
	Address common.Address
	Kind    string
}

// Handler runs the verification pipeline for one request: route by DID
// method, check existing attestations, verify, write, assemble the
// response. Data flows strictly downward; no component calls back up.
type Handler struct {
	checker          ExistenceChecker
	web              verifier.Verifier
	contract         verifier.Verifier
	writer           AttestationWriter
	chainCtx         chain.Context
	ownershipSchemas []common.Hash
	approvedSchemas  map[common.Hash]bool
	signerInfo       SignerInfo
	debug            bool
	logger           *zap.Logger
}

// NewHandler wires the pipeline. ownershipSchemas is the default required
// set when the request names none; approvedSchemas are the additional UIDs
// a request may require (legacy deployments, operator extensions). The
// defaults are always approved.
func NewHandler(
	checker ExistenceChecker,
	web verifier.Verifier,
	contract verifier.Verifier,
	writer AttestationWriter,
	chainCtx chain.Context,
	ownershipSchemas []common.Hash,
	approvedSchemas []common.Hash,
	signerInfo SignerInfo,
	debug bool,
	logger *zap.Logger,
) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	approved := make(map[common.Hash]bool, len(ownershipSchemas)+len(approvedSchemas))
	for _, s := range ownershipSchemas {
		approved[s] = true
	}
	for _, s := range approvedSchemas {
		approved[s] = true
	}
	return &Handler{
		checker:          checker,
		web:              web,
		contract:         contract,
		writer:           writer,
		chainCtx:         chainCtx,
		ownershipSchemas: ownershipSchemas,
		approvedSchemas:  approved,
		signerInfo:       signerInfo,
		debug:            debug,
		logger:           logger,
	}
}

func (h *Handler) handleVerify(w http.ResponseWriter, r *http.Request) {
	started := time.Now()
	ctx := r.Context()

	var req protocol.VerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeFailure(w, r, started, http.StatusBadRequest, "invalid JSON body", nil, nil)
		return
	}

	// Input validation: client errors never reach the verifiers or writer.
	if strings.TrimSpace(req.DID) == "" {
		h.writeFailure(w, r, started, http.StatusBadRequest, "missing did", nil, nil)
		return
	}
	if !did.ValidAddress(req.ConnectedAddress) {
		h.writeFailure(w, r, started, http.StatusBadRequest, "missing or invalid connectedAddress", nil, nil)
		return
	}
	d, err := did.Parse(req.DID)
	if err != nil {
		h.writeFailure(w, r, started, http.StatusBadRequest, "Unsupported DID type", nil, nil)
		return
	}
	caller := common.HexToAddress(req.ConnectedAddress)

	schemas := h.ownershipSchemas
	if len(req.RequiredSchemas) > 0 {
		schemas = make([]common.Hash, 0, len(req.RequiredSchemas))
		for _, s := range req.RequiredSchemas {
			parsed, err := chain.ParseSchema(s)
			if err != nil {
				h.writeFailure(w, r, started, http.StatusBadRequest, err.Error(), nil, nil)
				return
			}
			if !h.approvedSchemas[parsed] {
				h.writeFailure(w, r, started, http.StatusBadRequest,
					fmt.Sprintf("schema %s is not approved on this deployment", chain.SchemaHex(parsed)), nil, nil)
				return
			}
			schemas = append(schemas, parsed)
		}
	}
	if len(schemas) == 0 {
		h.writeFailure(w, r, started, http.StatusInternalServerError, "no required schemas configured", nil, nil)
		return
	}

	var txHash *common.Hash
	if req.TxHash != "" {
		parsed, err := parseTxHash(req.TxHash)
		if err != nil {
			h.writeFailure(w, r, started, http.StatusBadRequest, "invalid txHash", nil, nil)
			return
		}
		txHash = &parsed
	}

	didHash := d.Hash()
	debug := h.newDebugInfo(ctx, d, didHash)

	// Fast path: reads only, deterministic until the chain state changes.
	statuses := h.checker.Check(ctx, didHash, caller, schemas)
	state := attestationState(statuses)
	if chain.AllPresent(statuses) {
		h.writeJSON(w, http.StatusOK, protocol.VerifyResponse{
			OK:           true,
			Status:       protocol.StatusReady,
			Message:      "all required attestations already present",
			Attestations: state,
			Elapsed:      time.Since(started).Milliseconds(),
			Debug:        debug,
		})
		return
	}

	// Route to the method's verifier.
	var v verifier.Verifier
	switch d.Method {
	case did.MethodWeb:
		v = h.web
	case did.MethodPKH:
		v = h.contract
	}
	if v == nil {
		h.writeFailure(w, r, started, http.StatusInternalServerError, "verifier not configured", nil, debug)
		return
	}

	result := v.Verify(ctx, verifier.Request{DID: d, Caller: caller, TxHash: txHash})
	if !result.Verified {
		h.logger.Info("verification failed",
			zap.String("did", d.Normalize()),
			zap.String("reason", result.Reason))
		h.writeFailure(w, r, started, http.StatusForbidden, result.Reason, nil, debug)
		return
	}
	if debug != nil {
		debug.VerifyMethod = string(result.Method)
		debug.Evidence = result.Evidence
	}

	if h.writer == nil {
		h.writeFailure(w, r, started, http.StatusInternalServerError, "signer not configured", nil, debug)
		return
	}

	missing := chain.Missing(statuses)
	outcome := h.writer.Write(ctx, didHash, caller, missing)

	if outcome.AllFailed() {
		details := lo.Map(outcome.Failed(), func(f attester.SchemaWrite, _ int) string {
			return fmt.Sprintf("%s: %v", chain.SchemaHex(f.Schema), f.Err)
		})
		h.writeFailure(w, r, started, http.StatusInternalServerError, "all attestation writes failed", details, debug)
		return
	}

	// Partial failure is still forward progress: success with warnings.
	warnings := lo.Map(outcome.Failed(), func(f attester.SchemaWrite, _ int) string {
		return fmt.Sprintf("attestation for schema %s failed: %v", chain.SchemaHex(f.Schema), f.Err)
	})
	resp := protocol.VerifyResponse{
		OK:           true,
		Status:       protocol.StatusReady,
		Message:      fmt.Sprintf("verified via %s", result.Method),
		Attestations: state,
		TxHashes:     outcome.TxHashes(),
		Elapsed:      time.Since(started).Milliseconds(),
		Debug:        debug,
	}
	if len(warnings) > 0 {
		resp.Warnings = warnings
	}
	h.writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// newDebugInfo builds the diagnostic payload when the deployment enables it.
func (h *Handler) newDebugInfo(ctx context.Context, d did.DID, didHash common.Hash) *protocol.DebugInfo {
	if !h.debug {
		return nil
	}
	info := &protocol.DebugInfo{
		DID:             d.Normalize(),
		DIDHash:         didHash.Hex(),
		ResolverAddress: h.chainCtx.Resolver.Hex(),
		SignerType:      h.signerInfo.Kind,
	}
	if h.chainCtx.ChainID != nil {
		info.ChainID = h.chainCtx.ChainID.Uint64()
	}
	if h.signerInfo.Address != (common.Address{}) {
		info.SignerAddress = h.signerInfo.Address.Hex()
	}
	if id, ok := requestIDFromContext(ctx); ok {
		info.RequestID = id
	}
	return info
}

// parseTxHash validates a 32-byte hex transaction hash. Length alone is not
// enough: HexToHash silently drops non-hex characters, which would turn a
// malformed input into a chain lookup for a different hash.
func parseTxHash(s string) (common.Hash, error) {
	trimmed := strings.TrimPrefix(strings.ToLower(s), "0x")
	if len(trimmed) != 64 {
		return common.Hash{}, fmt.Errorf("invalid transaction hash %q: want 32-byte hex", s)
	}
	for _, c := range trimmed {
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return common.Hash{}, fmt.Errorf("invalid transaction hash %q: non-hex character", s)
		}
	}
	return common.HexToHash(trimmed), nil
}

func attestationState(statuses []chain.SchemaStatus) *protocol.AttestationState {
	return &protocol.AttestationState{
		Present: lo.Map(chain.Present(statuses), func(s common.Hash, _ int) string { return chain.SchemaHex(s) }),
		Missing: lo.Map(chain.Missing(statuses), func(s common.Hash, _ int) string { return chain.SchemaHex(s) }),
	}
}

func (h *Handler) writeFailure(w http.ResponseWriter, _ *http.Request, started time.Time, status int, reason string, details []string, debug *protocol.DebugInfo) {
	h.writeJSON(w, status, protocol.VerifyResponse{
		OK:      false,
		Status:  protocol.StatusFailed,
		Error:   reason,
		Details: details,
		Elapsed: time.Since(started).Milliseconds(),
		Debug:   debug,
	})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Warn("write response failed", zap.Error(err))
	}
}
