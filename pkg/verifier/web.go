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
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/miekg/dns"
	"go.uber.org/zap"

	"github.com/sage-x-project/did-attest-go/pkg/did"
)

const (
	txtVersionToken = "v=1"
	txtCAIP10Prefix = "caip10="
)

// TXTResolver resolves DNS TXT records for a domain.
type TXTResolver interface {
	LookupTXT(ctx context.Context, domain string) ([]string, error)
}

// DocumentFetcher fetches an identity document over HTTPS.
type DocumentFetcher interface {
	Fetch(ctx context.Context, url string) (body []byte, status int, err error)
}

// WebVerifier proves control of a did:web identity. Strategies run in order,
// first success wins: a DNS TXT record carrying a caip10= token for the
// caller, then the hosted did.json document.
type WebVerifier struct {
	txt    TXTResolver
	docs   DocumentFetcher
	logger *zap.Logger
}

// NewWebVerifier creates a web-identity verifier.
func NewWebVerifier(txt TXTResolver, docs DocumentFetcher, logger *zap.Logger) *WebVerifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WebVerifier{txt: txt, docs: docs, logger: logger}
}

// Verify runs DNS TXT lookup and falls back to the identity document.
func (v *WebVerifier) Verify(ctx context.Context, req Request) Result {
	if req.DID.Method != did.MethodWeb {
		return failed(fmt.Sprintf("web verifier received %s DID", req.DID.Method))
	}
	domain := req.DID.Domain

	dnsReason := v.verifyDNS(ctx, domain, req.Caller)
	if dnsReason == "" {
		return verified(MethodDNSTXT, fmt.Sprintf("TXT record on %s declares %s", domain, req.Caller.Hex()))
	}
	v.logger.Debug("dns strategy exhausted, trying identity document",
		zap.String("domain", domain),
		zap.String("reason", dnsReason))

	docReason := v.verifyDocument(ctx, req)
	if docReason == "" {
		return verified(MethodDIDDocument, fmt.Sprintf("identity document on %s declares %s", domain, req.Caller.Hex()))
	}

	return failed(fmt.Sprintf("no controller proof for %s: %s; %s", domain, dnsReason, docReason))
}

// verifyDNS returns "" on a match, otherwise the failure reason.
func (v *WebVerifier) verifyDNS(ctx context.Context, domain string, caller common.Address) string {
	records, err := v.txt.LookupTXT(ctx, domain)
	if err != nil {
		return fmt.Sprintf("DNS lookup failed: %v", err)
	}
	if len(records) == 0 {
		return "no TXT records"
	}
	for _, record := range records {
		if matchTXTRecord(record, caller) {
			return ""
		}
	}
	return fmt.Sprintf("no matching caip10 token in %d TXT record(s)", len(records))
}

// matchTXTRecord scans one TXT record for a caip10= token naming the caller.
// A record without the v=1 marker is skipped; a malformed token skips that
// token only. Nothing here is fatal.
func matchTXTRecord(record string, caller common.Address) bool {
	tokens := strings.Fields(record)
	versioned := false
	for _, tok := range tokens {
		if tok == txtVersionToken {
			versioned = true
			break
		}
	}
	if !versioned {
		return false
	}
	for _, tok := range tokens {
		if !strings.HasPrefix(tok, txtCAIP10Prefix) {
			continue
		}
		acct, err := did.ParseAccount(strings.TrimPrefix(tok, txtCAIP10Prefix))
		if err != nil {
			continue
		}
		if did.EqualAddress(acct.Address, caller.Hex()) {
			return true
		}
	}
	return false
}

// verifyDocument returns "" on a match, otherwise the failure reason.
func (v *WebVerifier) verifyDocument(ctx context.Context, req Request) string {
	url := documentURL(req.DID)
	body, status, err := v.docs.Fetch(ctx, url)
	if err != nil {
		return fmt.Sprintf("document fetch failed: %v", err)
	}
	if status != http.StatusOK {
		return fmt.Sprintf("document fetch returned %d", status)
	}

	var doc identityDocument
	if err := json.Unmarshal(body, &doc); err != nil {
		return fmt.Sprintf("document is not valid JSON: %v", err)
	}
	if len(doc.VerificationMethod) == 0 {
		return "document has no verificationMethod entries"
	}
	for _, vm := range doc.VerificationMethod {
		if vm.matches(req.Caller) {
			return ""
		}
	}
	return fmt.Sprintf("no verificationMethod entry matches %s", req.Caller.Hex())
}

// documentURL builds the hosted location of the identity document:
// /.well-known/did.json for bare domains, /<path>/did.json for path DIDs.
func documentURL(d did.DID) string {
	if len(d.Path) == 0 {
		return fmt.Sprintf("https://%s/.well-known/did.json", d.Domain)
	}
	return fmt.Sprintf("https://%s/%s/did.json", d.Domain, strings.Join(d.Path, "/"))
}

type identityDocument struct {
	VerificationMethod []verificationMethod `json:"verificationMethod"`
}

type verificationMethod struct {
	ID                  string `json:"id"`
	Type                string `json:"type"`
	BlockchainAccountID string `json:"blockchainAccountId"`
	PublicKeyHex        string `json:"publicKeyHex"`
}

func (vm verificationMethod) matches(caller common.Address) bool {
	if vm.BlockchainAccountID != "" {
		if acct, err := did.ParseAccount(vm.BlockchainAccountID); err == nil {
			if did.EqualAddress(acct.Address, caller.Hex()) {
				return true
			}
		}
	}
	if vm.PublicKeyHex != "" {
		if did.EqualAddress(vm.PublicKeyHex, caller.Hex()) {
			return true
		}
	}
	return false
}

// DNSResolver implements TXTResolver with a direct exchange against the
// configured resolver.
type DNSResolver struct {
	client *dns.Client
	server string
}

// NewDNSResolver creates a TXT resolver against server (host:port).
func NewDNSResolver(server string, timeout time.Duration) *DNSResolver {
	return &DNSResolver{
		client: &dns.Client{Timeout: timeout},
		server: server,
	}
}

// LookupTXT queries TXT records for domain. Chunked TXT strings are joined,
// per RFC 7208 §3.3 semantics.
func (r *DNSResolver) LookupTXT(ctx context.Context, domain string) ([]string, error) {
	msg := new(dns.Msg)
	msg.SetQuestion(dns.Fqdn(domain), dns.TypeTXT)

	resp, _, err := r.client.ExchangeContext(ctx, msg, r.server)
	if err != nil {
		return nil, fmt.Errorf("exchange with %s: %w", r.server, err)
	}
	if resp.Rcode != dns.RcodeSuccess {
		return nil, fmt.Errorf("query for %s returned %s", domain, dns.RcodeToString[resp.Rcode])
	}

	var records []string
	for _, answer := range resp.Answer {
		if txt, ok := answer.(*dns.TXT); ok {
			records = append(records, strings.Join(txt.Txt, ""))
		}
	}
	return records, nil
}

// HTTPDocumentFetcher implements DocumentFetcher with a retrying HTTP client.
type HTTPDocumentFetcher struct {
	client *retryablehttp.Client
}

// maxDocumentBytes bounds how much of an identity document is read.
const maxDocumentBytes = 1 << 20

// NewHTTPDocumentFetcher creates a fetcher with bounded retries and timeout.
func NewHTTPDocumentFetcher(timeout time.Duration) *HTTPDocumentFetcher {
	client := retryablehttp.NewClient()
	client.RetryMax = 2
	client.HTTPClient.Timeout = timeout
	client.Logger = nil
	return &HTTPDocumentFetcher{client: client}
}

// Fetch downloads url and returns the body and status code. A non-200 status
// is not an error; the caller decides what to do with it.
func (f *HTTPDocumentFetcher) Fetch(ctx context.Context, url string) ([]byte, int, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("build request: %w", err)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentBytes))
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("read body: %w", err)
	}
	return body, resp.StatusCode, nil
}
