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

// Command attestd runs the DID verification and attestation service.
//
// Configuration is environment-only; see the config package for the full
// variable list. A minimal local run:
//
//	ATTEST_CHAIN=local \
//	ATTEST_PRIVATE_KEY=0x... \
//	attestd
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/sage-x-project/did-attest-go/pkg/attester"
	"github.com/sage-x-project/did-attest-go/pkg/chain"
	"github.com/sage-x-project/did-attest-go/pkg/config"
	"github.com/sage-x-project/did-attest-go/pkg/server"
	"github.com/sage-x-project/did-attest-go/pkg/signer"
	"github.com/sage-x-project/did-attest-go/pkg/verifier"
)

const shutdownGrace = 15 * time.Second

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		os.Exit(1)
	}
	defer logger.Sync() //nolint:errcheck

	if err := run(logger); err != nil {
		logger.Fatal("attestd exited", zap.Error(err))
	}
}

func run(logger *zap.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	preset, err := cfg.Preset()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	chainCtx, err := chain.NewChainContext(preset.ChainID, preset.RPCEndpoint, preset.ResolverAddress)
	if err != nil {
		return err
	}
	backend, err := chain.Dial(ctx, chainCtx)
	if err != nil {
		return err
	}
	resolver, err := chain.NewResolver(backend, chainCtx.Resolver)
	if err != nil {
		return err
	}

	txSigner, err := signer.FromConfig(ctx, cfg)
	if err != nil {
		return err
	}
	logger.Info("signer ready",
		zap.String("kind", txSigner.Kind()),
		zap.String("address", txSigner.Address().Hex()))

	schemas := make([]common.Hash, 0, 1)
	s, err := chain.ParseSchema(preset.OwnershipSchema)
	if err != nil {
		return err
	}
	schemas = append(schemas, s)

	// Approved beyond the default: the preset's legacy deployments plus any
	// operator-configured extras.
	approved := make([]common.Hash, 0, len(cfg.ApprovedSchemas)+1)
	for _, uid := range append(preset.ApprovedSchemas(), cfg.ApprovedSchemas...) {
		parsed, err := chain.ParseSchema(uid)
		if err != nil {
			return err
		}
		approved = append(approved, parsed)
	}

	checker := chain.NewExistenceChecker(resolver, logger)
	web := verifier.NewWebVerifier(
		verifier.NewDNSResolver(cfg.DNSServer, cfg.DNSTimeout),
		verifier.NewHTTPDocumentFetcher(cfg.HTTPTimeout),
		logger)
	contract := verifier.NewContractVerifier(backend, cfg.MinConfirmations, logger)
	writer := attester.NewWriter(backend, resolver, txSigner, chainCtx.ChainID, cfg.ConfirmTimeout, logger)

	handler := server.NewHandler(checker, web, contract, writer, chainCtx, schemas, approved,
		server.SignerInfo{Address: txSigner.Address(), Kind: txSigner.Kind()},
		cfg.Debug, logger)

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           handler.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening",
			zap.String("addr", cfg.ListenAddr),
			zap.String("chain", preset.Name),
			zap.Uint64("chainId", preset.ChainID),
			zap.String("resolver", chainCtx.Resolver.Hex()))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
