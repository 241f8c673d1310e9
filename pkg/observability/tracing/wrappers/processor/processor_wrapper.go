/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

//go:generate mockgen -destination gomocks_test.go -package processor . Processor,IssuanceRequest,PresentationRequest

package processor

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/trustbloc/verifiedid-go/pkg/observability/tracing/attributeutil"
	"github.com/trustbloc/verifiedid-go/pkg/processor"
	"github.com/trustbloc/verifiedid-go/pkg/requirement"
	"github.com/trustbloc/verifiedid-go/pkg/verifiedid"
)

type (
	Processor           processor.Processor
	IssuanceRequest     processor.IssuanceRequest
	PresentationRequest processor.PresentationRequest
)

// Wrapper starts a span around every processed request. Requests it returns are wrapped as well.
type Wrapper struct {
	name      string
	processor Processor
	tracer    trace.Tracer
}

func Wrap(name string, p Processor, tracer trace.Tracer) *Wrapper {
	return &Wrapper{name: name, processor: p, tracer: tracer}
}

func (w *Wrapper) CanProcess(raw interface{}) bool {
	return w.processor.CanProcess(raw)
}

func (w *Wrapper) Process(ctx context.Context, raw interface{}) (processor.VerifiedIDRequest, error) {
	ctx, span := w.tracer.Start(ctx, w.name+".Process")
	defer span.End()

	span.SetAttributes(attribute.String("raw_type", fmt.Sprintf("%T", raw)))

	request, err := w.processor.Process(ctx, raw)
	if err != nil {
		recordError(span, err)

		return nil, err
	}

	span.SetAttributes(
		attribute.String("requester", request.Style().Requester),
		attribute.Bool("root_of_trust_verified", request.RootOfTrust().Verified),
		attributeutil.JSON("requirement", describe(request.Requirement())),
	)

	switch r := request.(type) {
	case IssuanceRequest:
		span.SetAttributes(attribute.String("request_type", "issuance"))

		return &issuanceRequest{IssuanceRequest: r, name: w.name, tracer: w.tracer}, nil
	case PresentationRequest:
		span.SetAttributes(attribute.String("request_type", "presentation"))

		return &presentationRequest{PresentationRequest: r, name: w.name, tracer: w.tracer}, nil
	default:
		return request, nil
	}
}

type issuanceRequest struct {
	IssuanceRequest
	name   string
	tracer trace.Tracer
}

func (r *issuanceRequest) Complete(ctx context.Context) (verifiedid.VerifiedID, error) {
	ctx, span := r.tracer.Start(ctx, r.name+".IssuanceRequest.Complete")
	defer span.End()

	vid, err := r.IssuanceRequest.Complete(ctx)
	if err != nil {
		recordError(span, err)

		return nil, err
	}

	span.SetAttributes(
		attribute.StringSlice("types", vid.Types()),
		attributeutil.Token("verified_id", vid.Raw(), attributeutil.WithRedacted("vc.credentialSubject")),
	)

	return vid, nil
}

func (r *issuanceRequest) Cancel(ctx context.Context, message string) error {
	ctx, span := r.tracer.Start(ctx, r.name+".IssuanceRequest.Cancel")
	defer span.End()

	span.SetAttributes(attribute.String("message", message))

	if err := r.IssuanceRequest.Cancel(ctx, message); err != nil {
		recordError(span, err)

		return err
	}

	return nil
}

type presentationRequest struct {
	PresentationRequest
	name   string
	tracer trace.Tracer
}

func (r *presentationRequest) Complete(ctx context.Context) error {
	ctx, span := r.tracer.Start(ctx, r.name+".PresentationRequest.Complete")
	defer span.End()

	if err := r.PresentationRequest.Complete(ctx); err != nil {
		recordError(span, err)

		return err
	}

	return nil
}

func (r *presentationRequest) Cancel(ctx context.Context, message string) error {
	ctx, span := r.tracer.Start(ctx, r.name+".PresentationRequest.Cancel")
	defer span.End()

	span.SetAttributes(attribute.String("message", message))

	if err := r.PresentationRequest.Cancel(ctx, message); err != nil {
		recordError(span, err)

		return err
	}

	return nil
}

func recordError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

// requirementNode is the exported shape of a requirement tree. Fulfilled values are never exported.
type requirementNode struct {
	Kind     string             `json:"kind"`
	Required bool               `json:"required"`
	Children []*requirementNode `json:"children,omitempty"`
}

func describe(r requirement.Requirement) *requirementNode {
	if r == nil {
		return nil
	}

	node := &requirementNode{Kind: string(r.Kind()), Required: r.IsRequired()}

	if g, ok := r.(*requirement.Group); ok {
		for _, child := range g.Children() {
			node.Children = append(node.Children, describe(child))
		}
	}

	return node
}
