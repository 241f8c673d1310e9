/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package logfields

import (
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log Fields.
const (
	FieldAdditionalMessage = "additionalMessage"
	FieldCommand           = "command"
	FieldCorrelationID     = "correlationID"
	FieldDID               = "did"
	FieldDomain            = "domain"
	FieldDuration          = "duration"
	FieldEvent             = "event"
	FieldGrantType         = "grantType"
	FieldHTTPStatus        = "httpStatus"
	FieldKeyID             = "keyID"
	FieldLocation          = "location"
	FieldMeasurements      = "measurements"
	FieldProcessor         = "processor"
	FieldProperties        = "properties"
	FieldRequirement       = "requirement"
	FieldState             = "state"
	FieldURL               = "url"
	FieldUserLogLevel      = "userLogLevel"
)

// WithAdditionalMessage sets the AdditionalMessage field.
func WithAdditionalMessage(value string) zap.Field {
	return zap.Any(FieldAdditionalMessage, value)
}

// WithCommand sets the Command field.
func WithCommand(command string) zap.Field {
	return zap.String(FieldCommand, command)
}

// WithCorrelationID sets the correlation id sent with outbound requests.
func WithCorrelationID(value string) zap.Field {
	return zap.String(FieldCorrelationID, value)
}

// WithDID sets the DID field.
func WithDID(did string) zap.Field {
	return zap.String(FieldDID, did)
}

// WithDomain sets the linked domain field.
func WithDomain(domain string) zap.Field {
	return zap.String(FieldDomain, domain)
}

// WithDuration sets the duration field.
func WithDuration(value time.Duration) zap.Field {
	return zap.Duration(FieldDuration, value)
}

// WithError sets the error field.
func WithError(err error) zap.Field {
	return zap.Error(err)
}

// WithEvent sets the Event field.
func WithEvent(event interface{}) zap.Field {
	return zap.Inline(NewObjectMarshaller(FieldEvent, event))
}

// WithGrantType sets the OAuth grant type field.
func WithGrantType(value string) zap.Field {
	return zap.String(FieldGrantType, value)
}

// WithHTTPStatus sets the HTTP status field.
func WithHTTPStatus(value int) zap.Field {
	return zap.Int(FieldHTTPStatus, value)
}

// WithKeyID sets the key id field.
func WithKeyID(value string) zap.Field {
	return zap.String(FieldKeyID, value)
}

// WithLocation sets the source location field.
func WithLocation(value string) zap.Field {
	return zap.String(FieldLocation, value)
}

// WithMeasurements sets the event measurements field.
func WithMeasurements(value map[string]float64) zap.Field {
	return zap.Any(FieldMeasurements, value)
}

// WithProcessor sets the processor name field.
func WithProcessor(value string) zap.Field {
	return zap.String(FieldProcessor, value)
}

// WithProperties sets the event properties field.
func WithProperties(value map[string]string) zap.Field {
	return zap.Any(FieldProperties, value)
}

// WithRequirement sets the requirement kind field.
func WithRequirement(value string) zap.Field {
	return zap.String(FieldRequirement, value)
}

// WithState sets the request state field.
func WithState(value string) zap.Field {
	return zap.String(FieldState, value)
}

// WithURL sets the URL field.
func WithURL(value string) zap.Field {
	return zap.String(FieldURL, value)
}

// WithUserLogLevel sets the UserLogLevel field.
func WithUserLogLevel(logLevel string) zap.Field {
	return zap.String(FieldUserLogLevel, logLevel)
}

// ObjectMarshaller uses reflection to marshal an object's fields.
type ObjectMarshaller struct {
	key string
	obj interface{}
}

// NewObjectMarshaller returns a new ObjectMarshaller.
func NewObjectMarshaller(key string, obj interface{}) *ObjectMarshaller {
	return &ObjectMarshaller{key: key, obj: obj}
}

// MarshalLogObject marshals the object's fields.
func (m *ObjectMarshaller) MarshalLogObject(e zapcore.ObjectEncoder) error {
	return e.AddReflected(m.key, m.obj)
}
