// Package did provides parsing and shape validation for decentralized
// identifiers of the form did:<method>:<method-specific-id>.
//
// The generator accepts DIDs of any method (did:example, did:web, did:evrc,
// ...), so this package validates the generic syntax only: it never resolves
// a DID or fetches a DID document.
package did

import (
	"errors"
	"fmt"
	"strings"
)

// Common errors returned by this package.
var (
	ErrInvalidDID    = errors.New("invalid DID format")
	ErrEmptyMethod   = errors.New("empty DID method")
	ErrInvalidMethod = errors.New("invalid DID method")
	ErrEmptyID       = errors.New("empty method-specific ID")
)

// DID represents a parsed DID identifier.
type DID struct {
	// Method is the DID method (e.g. "example", "web").
	Method string

	// MethodSpecificID is everything after the method segment. It may itself
	// contain colons (did:web:example.com:issuers:acme).
	MethodSpecificID string

	// Raw is the original DID string.
	Raw string
}

// Parse parses a DID identifier into its components.
//
// Returns ErrInvalidDID if the string does not have at least three
// colon-separated segments starting with "did", ErrEmptyMethod /
// ErrInvalidMethod if the method segment is empty or not lowercase
// alphanumeric, and ErrEmptyID if the method-specific ID is empty.
//
// Examples:
//   - did:example:123
//   - did:web:issuer.example.com:profiles:acme
func Parse(s string) (*DID, error) {
	if s == "" {
		return nil, ErrInvalidDID
	}

	parts := strings.SplitN(s, ":", 3)
	if len(parts) < 3 {
		return nil, fmt.Errorf("%w: expected did:<method>:<id>, got %q", ErrInvalidDID, s)
	}

	if parts[0] != "did" {
		return nil, fmt.Errorf("%w: must start with 'did:'", ErrInvalidDID)
	}

	method := parts[1]
	if method == "" {
		return nil, ErrEmptyMethod
	}
	if !validMethod(method) {
		return nil, fmt.Errorf("%w: %q must be lowercase alphanumeric", ErrInvalidMethod, method)
	}

	id := parts[2]
	if id == "" || strings.Trim(id, ":") == "" {
		return nil, ErrEmptyID
	}

	return &DID{
		Method:           method,
		MethodSpecificID: id,
		Raw:              s,
	}, nil
}

// Validate reports whether s is a syntactically valid DID. It is a
// convenience wrapper around Parse for callers that only need a yes/no.
func Validate(s string) error {
	_, err := Parse(s)
	return err
}

// validMethod checks the method-name charset from the DID Core syntax:
// one or more lowercase letters or digits.
func validMethod(method string) bool {
	for _, r := range method {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return false
		}
	}
	return true
}

// String returns the original DID string.
func (d *DID) String() string {
	return d.Raw
}
