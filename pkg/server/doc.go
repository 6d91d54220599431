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

// Package server exposes the verification pipeline over HTTP.
//
// The single endpoint, POST /v1/verify, runs the full flow for one DID:
//
//  1. Validate the request body. Malformed input, an unparseable DID, a
//     DID method the engine does not support, or a requiredSchemas entry
//     outside the deployment's approved set answers 400 before any chain
//     or network access.
//  2. Check the resolver for existing attestations. If every required
//     schema already attests the caller, answer 200 with no writes (the
//     fast path). A read error counts the schema as missing, never as an
//     error to the client.
//  3. Route to the method's verifier: did:web to the DNS/document
//     verifier, did:pkh to the contract-ownership verifier. A negative
//     verdict answers 403 with the verifier's reason.
//  4. Write the missing attestations and aggregate: all succeeded answers
//     200, a partial failure answers 200 with warnings, and a total
//     failure answers 500 with per-schema details.
//
// Every response body is a protocol.VerifyResponse carrying the elapsed
// time in milliseconds, plus a diagnostic payload when the deployment
// enables debug mode. Use Routes to obtain the http.Handler:
//
//	handler := server.NewHandler(checker, webVerifier, contractVerifier,
//	    writer, chainCtx, schemas, approved, signerInfo, cfg.Debug, logger)
//	srv := &http.Server{Addr: cfg.ListenAddr, Handler: handler.Routes()}
//
// GET /healthz answers 200 unconditionally for liveness probes.
package server
