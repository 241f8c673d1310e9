/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package config

// Flag names a preview feature.
type Flag string

const (
	// OpenID4VCIAccessToken enables OpenID4VCI issuance with the authorization code grant.
	OpenID4VCIAccessToken Flag = "OpenID4VCIAccessToken"
	// OpenID4VCIPreAuth enables OpenID4VCI issuance with the pre-authorized code grant.
	OpenID4VCIPreAuth Flag = "OpenID4VCIPreAuth"
	// ProcessorExtensionSupport lets registered extensions rewrite processed requests.
	ProcessorExtensionSupport Flag = "ProcessorExtensionSupport"
)

// FeatureFlags is the set of enabled preview features. It is read-only once created.
type FeatureFlags struct {
	enabled map[Flag]struct{}
}

// NewFeatureFlags enables the given flags.
func NewFeatureFlags(flags ...Flag) *FeatureFlags {
	f := &FeatureFlags{enabled: make(map[Flag]struct{}, len(flags))}

	for _, flag := range flags {
		f.enabled[flag] = struct{}{}
	}

	return f
}

// IsEnabled reports whether flag is on.
func (f *FeatureFlags) IsEnabled(flag Flag) bool {
	if f == nil {
		return false
	}

	_, ok := f.enabled[flag]

	return ok
}

// OpenID4VCI reports whether any OpenID4VCI flow is enabled.
func (f *FeatureFlags) OpenID4VCI() bool {
	return f.IsEnabled(OpenID4VCIAccessToken) || f.IsEnabled(OpenID4VCIPreAuth)
}
