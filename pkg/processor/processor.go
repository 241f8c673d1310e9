/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

//go:generate mockgen -destination processor_mocks_test.go -package processor_test -source=processor.go -mock_names Processor=MockProcessor,Extension=MockExtension

package processor

import (
	"context"

	"github.com/trustbloc/logutil-go/pkg/log"

	"github.com/trustbloc/verifiedid-go/internal/logfields"
	"github.com/trustbloc/verifiedid-go/pkg/requirement"
	"github.com/trustbloc/verifiedid-go/pkg/service/linkeddomain"
	"github.com/trustbloc/verifiedid-go/pkg/verifiedid"
	"github.com/trustbloc/verifiedid-go/pkg/walleterr"
)

var logger = log.New("processor-factory")

// VerifiedIDRequest is a request produced by a processor, ready to be fulfilled by the caller.
type VerifiedIDRequest interface {
	Style() verifiedid.RequesterStyle
	Requirement() requirement.Requirement
	RootOfTrust() linkeddomain.RootOfTrust
	// IsSatisfied reports whether the requirement currently validates.
	IsSatisfied() bool
	Cancel(ctx context.Context, message string) error
}

// IssuanceRequest completes with a newly issued verified id.
type IssuanceRequest interface {
	VerifiedIDRequest
	VerifiedIDStyle() verifiedid.Style
	Complete(ctx context.Context) (verifiedid.VerifiedID, error)
}

// PresentationRequest completes by sending the selected verified ids to the verifier.
type PresentationRequest interface {
	VerifiedIDRequest
	Complete(ctx context.Context) error
}

// Processor turns a resolved raw request of one protocol into a VerifiedIDRequest.
type Processor interface {
	CanProcess(raw interface{}) bool
	Process(ctx context.Context, raw interface{}) (VerifiedIDRequest, error)
}

// Factory picks the processor for a raw request.
type Factory struct {
	processors []Processor
}

// NewFactory creates a Factory. Processors are tried in order.
func NewFactory(processors ...Processor) *Factory {
	return &Factory{processors: processors}
}

// Processor returns the first processor able to handle raw.
func (f *Factory) Processor(raw interface{}) (Processor, error) {
	for _, p := range f.processors {
		if p.CanProcess(raw) {
			return p, nil
		}
	}

	logger.Warn("no processor for raw request", logfields.WithAdditionalMessage(typeName(raw)))

	return nil, walleterr.NewUnsupportedRawRequest(raw)
}

// Register appends processors.
func (f *Factory) Register(processors ...Processor) {
	f.processors = append(f.processors, processors...)
}
