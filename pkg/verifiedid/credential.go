/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package verifiedid

import (
	"sort"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/tidwall/gjson"

	"github.com/trustbloc/verifiedid-go/pkg/jws"
	"github.com/trustbloc/verifiedid-go/pkg/walleterr"
)

// Kind tells how a credential was obtained and therefore where its display data comes from.
type Kind string

const (
	// KindContract credentials were issued through a contract whose display section labels the claims.
	KindContract Kind = "VerifiableCredential"
	// KindOpenID4VCI credentials were issued through OpenID4VCI and are labelled by the credential configuration.
	KindOpenID4VCI Kind = "OpenID4VCI"
)

const claimPathPrefix = "vc.credentialSubject."

// Claims is the JWT claim set of a verifiable credential.
type Claims struct {
	jws.TimeClaims
	ID      string      `json:"jti,omitempty"`
	Issuer  string      `json:"iss,omitempty"`
	Subject string      `json:"sub,omitempty"`
	VC      *Descriptor `json:"vc,omitempty"`
}

// Descriptor is the "vc" claim.
type Descriptor struct {
	Context           []string               `json:"@context,omitempty"`
	Type              []string               `json:"type,omitempty"`
	CredentialSubject map[string]interface{} `json:"credentialSubject,omitempty"`
	CredentialStatus  map[string]interface{} `json:"credentialStatus,omitempty"`
	Exchange          map[string]interface{} `json:"exchangeService,omitempty"`
}

type claimLabel struct {
	label     string
	valueType string
}

// VerifiableCredential is a JWT VC together with the document describing how to display it.
type VerifiableCredential struct {
	kind       Kind
	token      *jws.Token[Claims]
	content    map[string]interface{}
	display    []byte
	issuerName string
	locales    []string

	issuedOn  time.Time
	expiresOn *time.Time
	style     Style
	labels    map[string]claimLabel
}

// NewFromContract decodes a credential issued through a contract.
func NewFromContract(raw string, contract []byte) (*VerifiableCredential, error) {
	vc, err := newCredential(KindContract, raw, contract)
	if err != nil {
		return nil, err
	}

	display := gjson.GetBytes(contract, "display")

	card := display.Get("card")
	vc.style = Style{
		Name:            card.Get("title").String(),
		Issuer:          card.Get("issuedBy").String(),
		BackgroundColor: card.Get("backgroundColor").String(),
		TextColor:       card.Get("textColor").String(),
		Description:     card.Get("description").String(),
		LogoURL:         card.Get("logo.uri").String(),
		LogoAltText:     card.Get("logo.description").String(),
	}

	display.Get("claims").ForEach(func(key, value gjson.Result) bool {
		vc.labels[key.String()] = claimLabel{
			label:     value.Get("label").String(),
			valueType: value.Get("type").String(),
		}

		return true
	})

	return vc, nil
}

// NewFromOpenID4VCI decodes a credential issued through OpenID4VCI. The display entry is picked by the
// first matching locale in locales, falling back to the first entry.
func NewFromOpenID4VCI(raw, issuerName string, configuration []byte, locales ...string) (*VerifiableCredential, error) {
	vc, err := newCredential(KindOpenID4VCI, raw, configuration)
	if err != nil {
		return nil, err
	}

	vc.issuerName = issuerName
	vc.locales = locales

	display := PreferredLocalized(gjson.GetBytes(configuration, "display"), locales)
	vc.style = Style{
		Name:            display.Get("name").String(),
		Issuer:          issuerName,
		BackgroundColor: display.Get("background_color").String(),
		TextColor:       display.Get("text_color").String(),
		Description:     display.Get("description").String(),
		LogoURL:         display.Get("logo.uri").String(),
		LogoAltText:     display.Get("logo.alt_text").String(),
	}

	gjson.GetBytes(configuration, "credential_definition.credential_subject").
		ForEach(func(key, value gjson.Result) bool {
			vc.labels[key.String()] = claimLabel{
				label:     PreferredLocalized(value.Get("display"), locales).Get("name").String(),
				valueType: value.Get("value_type").String(),
			}

			return true
		})

	return vc, nil
}

// PreferredLocalized returns the element of a display array whose locale matches the earliest preferred
// locale. Language-only preferences match regional locales. Without a match the first element is returned.
func PreferredLocalized(displays gjson.Result, locales []string) gjson.Result {
	entries := displays.Array()
	if len(entries) == 0 {
		return gjson.Result{}
	}

	for _, locale := range locales {
		entry, ok := lo.Find(entries, func(e gjson.Result) bool {
			l := e.Get("locale").String()

			return strings.EqualFold(l, locale) || strings.HasPrefix(strings.ToLower(l), strings.ToLower(locale)+"-")
		})
		if ok {
			return entry
		}
	}

	return entries[0]
}

func newCredential(kind Kind, raw string, display []byte) (*VerifiableCredential, error) {
	token, err := jws.Decode[Claims](raw)
	if err != nil {
		return nil, err
	}

	content, err := jws.Decode[map[string]interface{}](raw)
	if err != nil {
		return nil, err
	}

	if token.Claims.ID == "" {
		return nil, walleterr.NewMissingRequiredProperty("jti", "VerifiableCredential").
			WithComponent(walleterr.VerifiedIDComponent)
	}

	if token.Claims.IssuedAt == nil {
		return nil, walleterr.NewMissingRequiredProperty("iat", "VerifiableCredential").
			WithComponent(walleterr.VerifiedIDComponent)
	}

	vc := &VerifiableCredential{
		kind:     kind,
		token:    token,
		content:  content.Claims,
		display:  display,
		issuedOn: unix(*token.Claims.IssuedAt),
		labels:   map[string]claimLabel{},
	}

	if token.Claims.Expiration != nil {
		exp := unix(*token.Claims.Expiration)
		vc.expiresOn = &exp
	}

	return vc, nil
}

func unix(seconds float64) time.Time {
	return time.Unix(int64(seconds), 0).UTC()
}

func (vc *VerifiableCredential) ID() string {
	return vc.token.Claims.ID
}

func (vc *VerifiableCredential) IssuedOn() time.Time {
	return vc.issuedOn
}

func (vc *VerifiableCredential) ExpiresOn() *time.Time {
	return vc.expiresOn
}

func (vc *VerifiableCredential) Types() []string {
	if vc.token.Claims.VC == nil {
		return nil
	}

	return vc.token.Claims.VC.Type
}

func (vc *VerifiableCredential) Style() Style {
	return vc.style
}

func (vc *VerifiableCredential) Raw() string {
	return vc.token.RawValue
}

func (vc *VerifiableCredential) Content() map[string]interface{} {
	return vc.content
}

// Kind returns how the credential was issued.
func (vc *VerifiableCredential) Kind() Kind {
	return vc.kind
}

// Claims returns the credential subject attributes sorted by id, labelled where the display document
// describes them.
func (vc *VerifiableCredential) Claims() []Claim {
	if vc.token.Claims.VC == nil {
		return nil
	}

	subject := vc.token.Claims.VC.CredentialSubject

	ids := lo.Keys(subject)
	sort.Strings(ids)

	return lo.Map(ids, func(id string, _ int) Claim {
		l := vc.labels[claimPathPrefix+id]

		return Claim{ID: id, Label: l.label, Type: l.valueType, Value: subject[id]}
	})
}
