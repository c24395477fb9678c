package unsigned

// JSON-LD contexts attached to the assertion template.
const (
	// VerifiableCredentialV2Context is the W3C Verifiable Credentials v2 context.
	VerifiableCredentialV2Context = "https://www.w3.org/ns/credentials/v2"

	// EveryCredCredentialV1Context is the EveryCRED credential v1 context.
	EveryCredCredentialV1Context = "https://www.everycred.com/credentials/v1"

	// CredentialExamplesV1Context supplies the example credentialSubject type
	// used when no concrete type overrides it.
	CredentialExamplesV1Context = "https://www.w3.org/2018/credentials/examples/v1"
)

// URNUUIDPrefix prefixes the certificate UID in the assertion id field.
const URNUUIDPrefix = "urn:uuid:"

// Merge tags substituted per certificate by the downstream issuing step.
const (
	// DateMergeTag marks where the issuance date is filled in.
	DateMergeTag = "*|DATE|*"

	// CertUIDMergeTag marks where the certificate UID is filled in.
	CertUIDMergeTag = "*|CERTUID|*"
)

// Public key scheme prefix for the issuer's chain address.
const publicKeyPrefix = "ecdsa-koblitz-pubkey:"

// Reserved top-level document keys. Extra metadata must not collide with any
// of these.
var reservedKeys = map[string]struct{}{
	"issuer":    {},
	"subject":   {},
	"badge":     {},
	"recipient": {},
	"extra":     {},
}
