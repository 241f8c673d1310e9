/*
Copyright Avast Software. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package oidc4vp

import (
	"context"
	"strconv"

	"github.com/trustbloc/verifiedid-go/internal/logfields"
	"github.com/trustbloc/verifiedid-go/pkg/config"
	"github.com/trustbloc/verifiedid-go/pkg/networking"
	"github.com/trustbloc/verifiedid-go/pkg/processor"
	"github.com/trustbloc/verifiedid-go/pkg/requirement"
	"github.com/trustbloc/verifiedid-go/pkg/service/linkeddomain"
	"github.com/trustbloc/verifiedid-go/pkg/verifiedid"
	"github.com/trustbloc/verifiedid-go/pkg/walleterr"
)

var _ processor.PresentationRequest = (*PresentationRequest)(nil)

// PresentationRequest asks the holder to present verified ids to a verifier.
type PresentationRequest struct {
	config      *config.Configuration
	formatter   *Formatter
	raw         *RawRequest
	style       verifiedid.RequesterStyle
	requirement requirement.Requirement
	rootOfTrust linkeddomain.RootOfTrust
}

func (r *PresentationRequest) Style() verifiedid.RequesterStyle { return r.style }

func (r *PresentationRequest) Requirement() requirement.Requirement { return r.requirement }

func (r *PresentationRequest) RootOfTrust() linkeddomain.RootOfTrust { return r.rootOfTrust }

func (r *PresentationRequest) IsSatisfied() bool {
	return r.requirement.Validate() == nil
}

// Complete posts the presentation response to the redirect uri of the request.
func (r *PresentationRequest) Complete(ctx context.Context) error {
	if err := r.requirement.Validate(); err != nil {
		return err
	}

	serializer, err := NewSerializer(r.formatter, r.raw)
	if err != nil {
		return err
	}

	if err = serializer.Serialize(r.requirement); err != nil {
		return err
	}

	response, err := serializer.Build()
	if err != nil {
		return err
	}

	form, err := response.Form()
	if err != nil {
		return walleterr.NewRequestCreationError("Unable to encode the presentation response.", err).
			WithComponent(walleterr.OpenIDProcessorComponent)
	}

	redirectURI := r.raw.Claims.RedirectURI

	_, err = r.config.Networking.Post(ctx, redirectURI, []byte(form.Encode()), networking.ContentTypeForm, nil)
	if err != nil {
		return err
	}

	r.config.Logger.Event("PresentationRequestCompleted", map[string]string{
		"client_id":     r.raw.Claims.ClientID,
		"presentations": strconv.Itoa(len(response.VPTokens)),
	}, nil)

	logger.Debug("presentation response sent", logfields.WithURL(redirectURI))

	return nil
}

// Cancel has no verifier side effect.
func (r *PresentationRequest) Cancel(_ context.Context, message string) error {
	r.config.Logger.Event("PresentationRequestCanceled", map[string]string{
		"client_id": r.raw.Claims.ClientID,
		"message":   message,
	}, nil)

	return nil
}
