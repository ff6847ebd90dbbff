package filestore

import (
	"github.com/ValentinKolb/dEnv/lib/value"
)

// Policy decides whether a write of v must be dropped. Returning true keeps the
// value currently on disk.
type Policy func(v value.Value) bool

// Policies maps a key to the suppression rule guarding it.
type Policies map[string]Policy

// SuppressEmptyString drops writes of the empty string.
func SuppressEmptyString(v value.Value) bool {
	s, ok := v.Str()
	return ok && s == ""
}

// DefaultPolicies returns the suppression table of this deployment. The release
// identifiers must never be replaced with a blank placeholder.
func DefaultPolicies() Policies {
	return Policies{
		"lrelease": SuppressEmptyString,
		"crelease": SuppressEmptyString,
	}
}

// Suppresses reports whether writing v to key is dropped by the table.
func (p Policies) Suppresses(key string, v value.Value) bool {
	if p == nil {
		return false
	}
	rule, ok := p[key]
	return ok && rule != nil && rule(v)
}
