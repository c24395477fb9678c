package unsigned

import (
	"net/mail"
	"net/url"

	"github.com/jayswal433/unsigned-gen/pkg/did"
)

// IssuerParams carries the fields needed to construct an Issuer. All fields
// are required.
type IssuerParams struct {
	// Name is the display name of the issuing organization.
	Name string `json:"name"`

	// Website is the issuer's public website, an absolute URI.
	Website string `json:"website"`

	// Email is the issuer's contact address.
	Email string `json:"email"`

	// DID is the issuer's decentralized identifier (did:<method>:<id>).
	DID string `json:"did"`

	// ProfileLink is the absolute URI of the issuer's public profile.
	ProfileLink string `json:"profile_link"`

	// RevocationList is the absolute URI of the issuer's revocation list.
	RevocationList string `json:"revocation_list"`

	// CryptoAddress is the issuer's chain address, treated as opaque.
	CryptoAddress string `json:"crypto_address"`
}

// Issuer is an immutable record describing a certificate issuer. Construct it
// with NewIssuer; a value that came from NewIssuer is always fully validated.
type Issuer struct {
	name           string
	website        string
	email          string
	did            string
	profileLink    string
	revocationList string
	cryptoAddress  string
}

// NewIssuer validates p and returns an immutable Issuer. Every failure is a
// CERT_VALIDATION_FAILED Error naming the offending field.
func NewIssuer(p IssuerParams) (*Issuer, error) {
	if err := requireNonEmpty("issuer", "name", p.Name); err != nil {
		return nil, err
	}
	if err := requireAbsoluteURI("issuer", "website", p.Website); err != nil {
		return nil, err
	}
	if err := requireEmail("issuer", "email", p.Email); err != nil {
		return nil, err
	}
	if err := requireDID("issuer", "did", p.DID); err != nil {
		return nil, err
	}
	if err := requireAbsoluteURI("issuer", "profile_link", p.ProfileLink); err != nil {
		return nil, err
	}
	if err := requireAbsoluteURI("issuer", "revocation_list", p.RevocationList); err != nil {
		return nil, err
	}
	if err := requireNonEmpty("issuer", "crypto_address", p.CryptoAddress); err != nil {
		return nil, err
	}

	return &Issuer{
		name:           p.Name,
		website:        p.Website,
		email:          p.Email,
		did:            p.DID,
		profileLink:    p.ProfileLink,
		revocationList: p.RevocationList,
		cryptoAddress:  p.CryptoAddress,
	}, nil
}

// Name returns the issuer's display name.
func (i *Issuer) Name() string { return i.name }

// Website returns the issuer's website URI.
func (i *Issuer) Website() string { return i.website }

// Email returns the issuer's contact address.
func (i *Issuer) Email() string { return i.email }

// DID returns the issuer's decentralized identifier.
func (i *Issuer) DID() string { return i.did }

// ProfileLink returns the issuer's profile URI.
func (i *Issuer) ProfileLink() string { return i.profileLink }

// RevocationList returns the issuer's revocation list URI.
func (i *Issuer) RevocationList() string { return i.revocationList }

// CryptoAddress returns the issuer's chain address.
func (i *Issuer) CryptoAddress() string { return i.cryptoAddress }

// SubjectParams carries the fields needed to construct a Subject. All fields
// are required.
type SubjectParams struct {
	// Title is the certificate title (e.g. "Blockchain Fundamentals").
	Title string `json:"title"`

	// DID is the subject's decentralized identifier.
	DID string `json:"did"`

	// ProfileLink is the absolute URI of the subject's public profile.
	ProfileLink string `json:"profile_link"`
}

// Subject is an immutable record describing the certificate recipient.
type Subject struct {
	title       string
	did         string
	profileLink string
}

// NewSubject validates p and returns an immutable Subject. Every failure is a
// CERT_VALIDATION_FAILED Error naming the offending field.
func NewSubject(p SubjectParams) (*Subject, error) {
	if err := requireNonEmpty("subject", "title", p.Title); err != nil {
		return nil, err
	}
	if err := requireDID("subject", "did", p.DID); err != nil {
		return nil, err
	}
	if err := requireAbsoluteURI("subject", "profile_link", p.ProfileLink); err != nil {
		return nil, err
	}

	return &Subject{
		title:       p.Title,
		did:         p.DID,
		profileLink: p.ProfileLink,
	}, nil
}

// Title returns the certificate title.
func (s *Subject) Title() string { return s.title }

// DID returns the subject's decentralized identifier.
func (s *Subject) DID() string { return s.did }

// ProfileLink returns the subject's profile URI.
func (s *Subject) ProfileLink() string { return s.profileLink }

func requireNonEmpty(record, field, value string) error {
	if value == "" {
		return Errorf(ErrCodeValidation, "%s field %q must not be empty", record, field)
	}
	return nil
}

func requireDID(record, field, value string) error {
	if value == "" {
		return Errorf(ErrCodeValidation, "%s field %q must not be empty", record, field)
	}
	if err := did.Validate(value); err != nil {
		return WrapError(ErrCodeValidation,
			"invalid DID in "+record+" field "+field, err)
	}
	return nil
}

func requireAbsoluteURI(record, field, value string) error {
	if value == "" {
		return Errorf(ErrCodeValidation, "%s field %q must not be empty", record, field)
	}
	u, err := url.Parse(value)
	if err != nil {
		return WrapError(ErrCodeValidation,
			"invalid URI in "+record+" field "+field, err)
	}
	if !u.IsAbs() || u.Host == "" {
		return Errorf(ErrCodeValidation,
			"%s field %q must be an absolute URI, got %q", record, field, value)
	}
	return nil
}

func requireEmail(record, field, value string) error {
	if value == "" {
		return Errorf(ErrCodeValidation, "%s field %q must not be empty", record, field)
	}
	if _, err := mail.ParseAddress(value); err != nil {
		return WrapError(ErrCodeValidation,
			"invalid email in "+record+" field "+field, err)
	}
	return nil
}
