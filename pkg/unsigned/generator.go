// Package unsigned assembles the unsigned payload of a verifiable digital
// certificate from typed issuer and subject records plus auxiliary inputs.
//
// The package follows Open Badges / Blockcerts conventions for the document
// shape. It never signs, persists, or transmits anything: the assembled
// document is handed to the caller for a downstream signing step.
package unsigned

import (
	"encoding/json"
	"fmt"
)

// Document is the assembled unsigned-certificate payload. It is plain data,
// safe to JSON-encode for transport or storage.
type Document map[string]any

// GeneratorConfig holds configuration for a Generator.
type GeneratorConfig struct {
	// ImageEmbedding selects how the issuer and subject images are carried
	// in the document. Defaults to EmbedReference.
	ImageEmbedding EmbedPolicy
}

// Generator produces unsigned certificate documents. It holds no per-call
// state and may be shared freely across concurrent callers.
type Generator struct {
	config GeneratorConfig
}

// NewGenerator creates a Generator with the given configuration.
func NewGenerator(config GeneratorConfig) *Generator {
	if config.ImageEmbedding == "" {
		config.ImageEmbedding = EmbedReference
	}
	return &Generator{config: config}
}

// GenerateOption customizes a single generation call.
type GenerateOption func(*generateOptions)

type generateOptions struct {
	validFrom  string
	validUntil string
}

// WithValidity attaches a validity window to the generated document. Either
// bound may be empty to leave it open.
func WithValidity(from, until string) GenerateOption {
	return func(o *generateOptions) {
		o.validFrom = from
		o.validUntil = until
	}
}

// GenerateUnsignedCertData assembles the unsigned certificate document from
// its inputs. It is a pure mapping: identical inputs always produce identical
// key/value content, no input is mutated, and nothing is cached between
// calls. The only I/O is reading the two image assets, and only when the
// generator is configured with EmbedContent.
//
// recordsJSON must decode to a JSON object or array; it becomes the badge
// criteria section with record order preserved. extra is merged verbatim into
// the document's "extra" section and must not use a reserved top-level key
// (issuer, subject, badge, recipient, extra). recipient is merged verbatim
// into the "recipient" section.
//
// Every failure is a typed *Error (CERT_VALIDATION_FAILED,
// CERT_RECORDS_MALFORMED, or CERT_RESOURCE_UNREADABLE) naming the offending
// input, and produces no document.
func (g *Generator) GenerateUnsignedCertData(
	issuer *Issuer,
	subject *Subject,
	recordsJSON string,
	issuerImage string,
	subjectImage string,
	extra map[string]any,
	appName string,
	recipient map[string]any,
	opts ...GenerateOption,
) (Document, error) {
	var options generateOptions
	for _, opt := range opts {
		opt(&options)
	}

	if issuer == nil {
		return nil, NewError(ErrCodeValidation, "issuer must not be nil")
	}
	if subject == nil {
		return nil, NewError(ErrCodeValidation, "subject must not be nil")
	}
	if appName == "" {
		return nil, NewError(ErrCodeValidation, "app_name must not be empty")
	}
	for key := range extra {
		if _, reserved := reservedKeys[key]; reserved {
			return nil, Errorf(ErrCodeValidation,
				"extra metadata key %q collides with a reserved document key", key)
		}
	}

	records, err := parseRecords(recordsJSON)
	if err != nil {
		return nil, err
	}

	issuerImg, err := resolveImage("issuer_image", issuerImage, g.config.ImageEmbedding)
	if err != nil {
		return nil, err
	}
	subjectImg, err := resolveImage("subject_image", subjectImage, g.config.ImageEmbedding)
	if err != nil {
		return nil, err
	}

	doc := Document{
		"issuer": map[string]any{
			"name":            issuer.Name(),
			"url":             issuer.Website(),
			"email":           issuer.Email(),
			"id":              issuer.DID(),
			"profile":         issuer.ProfileLink(),
			"revocation_list": issuer.RevocationList(),
			"public_key":      publicKeyPrefix + issuer.CryptoAddress(),
			"image":           issuerImg,
		},
		"subject": map[string]any{
			"id":      subject.DID(),
			"profile": subject.ProfileLink(),
			"title":   subject.Title(),
			"image":   subjectImg,
		},
		"badge": map[string]any{
			"criteria":           records,
			"criteria_narrative": "This is a blockchain-based certificate which is issued by a blockchain transaction.",
		},
		"recipient":   copyMap(recipient),
		"extra":       copyMap(extra),
		"app_name":    appName,
		"description": fmt.Sprintf("Certificates are generated by %s.", appName),

		// Static generation hints consumed by the downstream issuing step.
		"filename_format": "uuid",
		"no_clobber":      true,
		"hash_emails":     false,
	}

	if options.validFrom != "" {
		doc["valid_from"] = options.validFrom
	}
	if options.validUntil != "" {
		doc["valid_until"] = options.validUntil
	}

	return doc, nil
}

// parseRecords decodes the records payload, requiring a JSON object or array.
func parseRecords(recordsJSON string) (any, error) {
	var records any
	if err := json.Unmarshal([]byte(recordsJSON), &records); err != nil {
		return nil, WrapError(ErrCodeParse, "records payload is not valid JSON", err)
	}
	switch records.(type) {
	case map[string]any, []any:
		return records, nil
	default:
		return nil, Errorf(ErrCodeParse,
			"records payload must decode to a JSON object or array, got %T", records)
	}
}

// copyMap shallow-copies an input mapping so the document never aliases
// caller-owned state. A nil input yields an empty section.
func copyMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
