/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

//go:generate mockgen -destination service_mocks_test.go -package linkeddomain_test -source=service.go -mock_names RootOfTrustResolver=MockRootOfTrustResolver,credentialValidator=MockCredentialValidator

package linkeddomain

import (
	"context"
	"strings"

	"github.com/trustbloc/logutil-go/pkg/log"

	"github.com/trustbloc/verifiedid-go/internal/logfields"
	"github.com/trustbloc/verifiedid-go/pkg/did"
	"github.com/trustbloc/verifiedid-go/pkg/jws"
	"github.com/trustbloc/verifiedid-go/pkg/networking"
)

var logger = log.New("linked-domain-service")

// Status of a linked domain check.
type Status string

const (
	StatusVerified   Status = "verified"
	StatusUnverified Status = "unverified"
	StatusMissing    Status = "missing"
)

// Result is the outcome of a linked domain check. Err carries the reason an unverified result was not verified.
type Result struct {
	Status Status
	Domain string
	Err    error
}

// RootOfTrust states whether a requester is linked to a domain.
type RootOfTrust struct {
	Verified bool   `json:"verified"`
	Source   string `json:"source,omitempty"`
}

// RootOfTrust maps the result: verified and unverified keep the domain, missing has no source.
func (r *Result) RootOfTrust() RootOfTrust {
	switch r.Status {
	case StatusVerified:
		return RootOfTrust{Verified: true, Source: r.Domain}
	case StatusUnverified:
		return RootOfTrust{Verified: false, Source: r.Domain}
	default:
		return RootOfTrust{}
	}
}

// RootOfTrustResolver is an optional external source of trust consulted before linked domains.
type RootOfTrustResolver interface {
	Resolve(ctx context.Context, doc *did.Document) (*RootOfTrust, error)
}

type credentialValidator interface {
	Validate(credential *Credential, doc *did.Document, sourceDomainURL string) error
}

// Service resolves the root of trust of a DID through its LinkedDomains service.
type Service struct {
	resolver            did.DocumentResolver
	client              networking.Networking
	validator           credentialValidator
	rootOfTrustResolver RootOfTrustResolver
	strict              bool
}

// Opt configures Service.
type Opt func(s *Service)

// WithRootOfTrustResolver sets a resolver that is tried before the linked domain check.
func WithRootOfTrustResolver(r RootOfTrustResolver) Opt {
	return func(s *Service) {
		s.rootOfTrustResolver = r
	}
}

// WithStrictValidation makes credential validation failures fatal instead of producing an unverified result.
func WithStrictValidation(strict bool) Opt {
	return func(s *Service) {
		s.strict = strict
	}
}

// WithValidator replaces the domain linkage credential validator.
func WithValidator(v credentialValidator) Opt {
	return func(s *Service) {
		s.validator = v
	}
}

// New creates a Service.
func New(resolver did.DocumentResolver, client networking.Networking, verifier jws.Verifier, opts ...Opt) *Service {
	s := &Service{
		resolver:  resolver,
		client:    client,
		validator: NewValidator(verifier),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// ValidateLinkedDomain resolves did and checks its linked domain.
func (s *Service) ValidateLinkedDomain(ctx context.Context, didID string) (*Result, error) {
	doc, err := s.resolver.Resolve(ctx, didID)
	if err != nil {
		return nil, err
	}

	return s.ValidateDocument(ctx, doc)
}

// ValidateDocument checks the linked domain of an already resolved document.
func (s *Service) ValidateDocument(ctx context.Context, doc *did.Document) (*Result, error) {
	if s.rootOfTrustResolver != nil {
		rot, err := s.rootOfTrustResolver.Resolve(ctx, doc)
		if err == nil && rot != nil {
			return resultFromRootOfTrust(rot), nil
		}

		logger.Info("root of trust resolver failed, falling back to linked domains",
			logfields.WithDID(doc.ID), logfields.WithError(err))
	}

	svc, ok := doc.LinkedDomainsService()
	if !ok || len(svc.ServiceEndpoint.Origins) == 0 {
		return &Result{Status: StatusMissing}, nil
	}

	domain := svc.ServiceEndpoint.Origins[0]

	raw, err := s.client.Fetch(ctx, strings.TrimSuffix(domain, "/")+WellKnownPath, nil)
	if err != nil {
		logger.Warn("failed to fetch did configuration", logfields.WithDomain(domain), logfields.WithError(err))

		return &Result{Status: StatusUnverified, Domain: domain, Err: err}, nil
	}

	config, err := ParseConfiguration(raw)
	if err != nil {
		logger.Warn("invalid did configuration", logfields.WithDomain(domain), logfields.WithError(err))

		return &Result{Status: StatusUnverified, Domain: domain, Err: err}, nil
	}

	var firstErr error

	for _, linked := range config.LinkedDIDs {
		err = s.validateLinkedDID(linked, doc, domain)
		if err == nil {
			return &Result{Status: StatusVerified, Domain: domain}, nil
		}

		if firstErr == nil {
			firstErr = err
		}
	}

	if s.strict {
		return nil, firstErr
	}

	logger.Warn("domain linkage credential validation failed",
		logfields.WithDID(doc.ID), logfields.WithDomain(domain), logfields.WithError(firstErr))

	return &Result{Status: StatusUnverified, Domain: domain, Err: firstErr}, nil
}

func (s *Service) validateLinkedDID(linked string, doc *did.Document, domain string) error {
	credential, err := jws.Decode[DomainLinkageCredentialClaims](linked)
	if err != nil {
		return err
	}

	return s.validator.Validate(credential, doc, domain)
}

func resultFromRootOfTrust(rot *RootOfTrust) *Result {
	switch {
	case rot.Verified:
		return &Result{Status: StatusVerified, Domain: rot.Source}
	case rot.Source != "":
		return &Result{Status: StatusUnverified, Domain: rot.Source}
	default:
		return &Result{Status: StatusMissing}
	}
}
