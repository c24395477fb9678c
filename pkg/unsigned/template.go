package unsigned

// CertificateTemplate renders the assertion template for a generated
// document: the credential skeleton the downstream issuing step fills in per
// certificate. Issuance date and certificate UID are left as merge tags
// (DateMergeTag, CertUIDMergeTag) so the template itself stays free of
// timestamps and identifiers.
//
// The receiver must be a document produced by GenerateUnsignedCertData; a
// document missing its issuer or subject section fails with
// CERT_VALIDATION_FAILED.
func (d Document) CertificateTemplate() (map[string]any, error) {
	issuer, err := d.section("issuer")
	if err != nil {
		return nil, err
	}
	subject, err := d.section("subject")
	if err != nil {
		return nil, err
	}

	assertion := map[string]any{
		"@context": []any{
			VerifiableCredentialV2Context,
			EveryCredCredentialV1Context,
			// Example credentialSubject type if not overridden.
			CredentialExamplesV1Context,
		},
		"type": []any{"VerifiableCredential", "EveryCREDCredential"},
		"issuer": map[string]any{
			"id":      issuer["id"],
			"profile": issuer["profile"],
		},
		"issuanceDate": DateMergeTag,
		"id":           URNUUIDPrefix + CertUIDMergeTag,
		"credentialSubject": map[string]any{
			"id":      subject["id"],
			"profile": subject["profile"],
		},
	}

	if from, ok := d["valid_from"]; ok {
		assertion["validFrom"] = from
	}
	if until, ok := d["valid_until"]; ok {
		assertion["validUntil"] = until
	}

	return assertion, nil
}

// section extracts a named object section from the document.
func (d Document) section(key string) (map[string]any, error) {
	raw, ok := d[key]
	if !ok {
		return nil, Errorf(ErrCodeValidation, "document has no %q section", key)
	}
	m, ok := raw.(map[string]any)
	if !ok {
		return nil, Errorf(ErrCodeValidation, "document section %q is not an object", key)
	}
	return m, nil
}
