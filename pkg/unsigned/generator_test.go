package unsigned_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jayswal433/unsigned-gen/pkg/unsigned"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustIssuer(t *testing.T) *unsigned.Issuer {
	t.Helper()
	issuer, err := unsigned.NewIssuer(validIssuerParams())
	require.NoError(t, err)
	return issuer
}

func mustSubject(t *testing.T) *unsigned.Subject {
	t.Helper()
	subject, err := unsigned.NewSubject(validSubjectParams())
	require.NoError(t, err)
	return subject
}

func generate(t *testing.T, opts ...unsigned.GenerateOption) unsigned.Document {
	t.Helper()
	gen := unsigned.NewGenerator(unsigned.GeneratorConfig{})
	doc, err := gen.GenerateUnsignedCertData(
		mustIssuer(t),
		mustSubject(t),
		`{"records": []}`,
		"path/to/issuer_image.png",
		"path/to/subject_image.png",
		map[string]any{"field1": "value1"},
		"TestApp",
		map[string]any{"recipient1": "value1"},
		opts...,
	)
	require.NoError(t, err)
	return doc
}

func TestGenerateUnsignedCertData(t *testing.T) {
	doc := generate(t)

	issuer, ok := doc["issuer"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Test Issuer", issuer["name"])
	assert.Equal(t, "https://issuer.example.com", issuer["url"])
	assert.Equal(t, "issuer@example.com", issuer["email"])
	assert.Equal(t, "did:example:123", issuer["id"])
	assert.Equal(t, "https://issuer.example.com/profile", issuer["profile"])
	assert.Equal(t, "https://issuer.example.com/revocation", issuer["revocation_list"])
	assert.Equal(t, "ecdsa-koblitz-pubkey:123abc", issuer["public_key"])

	subject, ok := doc["subject"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "did:example:456", subject["id"])
	assert.Equal(t, "https://subject.example.com/profile", subject["profile"])
	assert.Equal(t, "Test Certificate", subject["title"])

	badge, ok := doc["badge"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, map[string]any{"records": []any{}}, badge["criteria"])
	assert.NotEmpty(t, badge["criteria_narrative"])

	assert.Equal(t, map[string]any{"field1": "value1"}, doc["extra"])
	assert.Equal(t, map[string]any{"recipient1": "value1"}, doc["recipient"])
	assert.Equal(t, "TestApp", doc["app_name"])
	assert.Equal(t, "Certificates are generated by TestApp.", doc["description"])

	assert.Equal(t, "uuid", doc["filename_format"])
	assert.Equal(t, true, doc["no_clobber"])
	assert.Equal(t, false, doc["hash_emails"])

	assert.NotContains(t, doc, "proof")
	assert.NotContains(t, doc, "signature")
	assert.NotContains(t, doc, "valid_from")
	assert.NotContains(t, doc, "valid_until")

	// The document must survive JSON encoding for the caller.
	_, err := json.Marshal(doc)
	require.NoError(t, err)
}

func TestGenerateUnsignedCertData_Idempotent(t *testing.T) {
	first := generate(t)
	second := generate(t)
	assert.Equal(t, first, second)
}

func TestGenerateUnsignedCertData_ReservedKeyCollision(t *testing.T) {
	for _, key := range []string{"issuer", "subject", "badge", "recipient", "extra"} {
		t.Run(key, func(t *testing.T) {
			gen := unsigned.NewGenerator(unsigned.GeneratorConfig{})
			doc, err := gen.GenerateUnsignedCertData(
				mustIssuer(t),
				mustSubject(t),
				`{"records": []}`,
				"issuer.png",
				"subject.png",
				map[string]any{key: "boom"},
				"TestApp",
				nil,
			)
			require.Error(t, err)
			assert.Nil(t, doc)
			assert.ErrorIs(t, err, unsigned.ErrValidation)
			assert.Contains(t, err.Error(), key)
		})
	}
}

func TestGenerateUnsignedCertData_MalformedRecords(t *testing.T) {
	tests := []struct {
		name    string
		records string
	}{
		{name: "not json", records: "not json"},
		{name: "empty string", records: ""},
		{name: "bare number", records: "42"},
		{name: "bare string", records: `"records"`},
		{name: "truncated object", records: `{"records": [`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			gen := unsigned.NewGenerator(unsigned.GeneratorConfig{})
			doc, err := gen.GenerateUnsignedCertData(
				mustIssuer(t),
				mustSubject(t),
				tc.records,
				"issuer.png",
				"subject.png",
				nil,
				"TestApp",
				nil,
			)
			require.Error(t, err)
			assert.Nil(t, doc)
			assert.ErrorIs(t, err, unsigned.ErrParse)
		})
	}
}

func TestGenerateUnsignedCertData_RecordsOrderPreserved(t *testing.T) {
	gen := unsigned.NewGenerator(unsigned.GeneratorConfig{})
	doc, err := gen.GenerateUnsignedCertData(
		mustIssuer(t),
		mustSubject(t),
		`[{"n": 1}, {"n": 2}, {"n": 3}]`,
		"issuer.png",
		"subject.png",
		nil,
		"TestApp",
		nil,
	)
	require.NoError(t, err)

	badge := doc["badge"].(map[string]any)
	criteria, ok := badge["criteria"].([]any)
	require.True(t, ok)
	require.Len(t, criteria, 3)
	for i, entry := range criteria {
		assert.Equal(t, map[string]any{"n": float64(i + 1)}, entry)
	}
}

func TestGenerateUnsignedCertData_MissingArgs(t *testing.T) {
	gen := unsigned.NewGenerator(unsigned.GeneratorConfig{})

	t.Run("nil issuer", func(t *testing.T) {
		_, err := gen.GenerateUnsignedCertData(
			nil, mustSubject(t), `{}`, "i.png", "s.png", nil, "TestApp", nil)
		assert.ErrorIs(t, err, unsigned.ErrValidation)
	})

	t.Run("nil subject", func(t *testing.T) {
		_, err := gen.GenerateUnsignedCertData(
			mustIssuer(t), nil, `{}`, "i.png", "s.png", nil, "TestApp", nil)
		assert.ErrorIs(t, err, unsigned.ErrValidation)
	})

	t.Run("empty app name", func(t *testing.T) {
		_, err := gen.GenerateUnsignedCertData(
			mustIssuer(t), mustSubject(t), `{}`, "i.png", "s.png", nil, "", nil)
		assert.ErrorIs(t, err, unsigned.ErrValidation)
		assert.Contains(t, err.Error(), "app_name")
	})

	t.Run("empty issuer image", func(t *testing.T) {
		_, err := gen.GenerateUnsignedCertData(
			mustIssuer(t), mustSubject(t), `{}`, "", "s.png", nil, "TestApp", nil)
		assert.ErrorIs(t, err, unsigned.ErrValidation)
		assert.Contains(t, err.Error(), "issuer_image")
	})
}

func TestGenerateUnsignedCertData_DoesNotMutateInputs(t *testing.T) {
	gen := unsigned.NewGenerator(unsigned.GeneratorConfig{})
	extra := map[string]any{"field1": "value1"}
	recipient := map[string]any{"recipient1": "value1"}

	doc, err := gen.GenerateUnsignedCertData(
		mustIssuer(t), mustSubject(t), `{"records": []}`,
		"i.png", "s.png", extra, "TestApp", recipient)
	require.NoError(t, err)

	// Mutating the document must not leak back into caller-owned maps.
	doc["extra"].(map[string]any)["injected"] = true
	doc["recipient"].(map[string]any)["injected"] = true

	assert.Equal(t, map[string]any{"field1": "value1"}, extra)
	assert.Equal(t, map[string]any{"recipient1": "value1"}, recipient)
}

func TestGenerateUnsignedCertData_WithValidity(t *testing.T) {
	doc := generate(t, unsigned.WithValidity("2026-01-01", "2027-01-01"))
	assert.Equal(t, "2026-01-01", doc["valid_from"])
	assert.Equal(t, "2027-01-01", doc["valid_until"])
}

func TestGenerateUnsignedCertData_EmbedContent(t *testing.T) {
	dir := t.TempDir()
	issuerPath := filepath.Join(dir, "issuer.png")
	subjectPath := filepath.Join(dir, "subject.png")
	require.NoError(t, os.WriteFile(issuerPath, []byte("issuer-bytes"), 0o600))
	require.NoError(t, os.WriteFile(subjectPath, []byte("subject-bytes"), 0o600))

	gen := unsigned.NewGenerator(unsigned.GeneratorConfig{
		ImageEmbedding: unsigned.EmbedContent,
	})
	doc, err := gen.GenerateUnsignedCertData(
		mustIssuer(t), mustSubject(t), `{"records": []}`,
		issuerPath, subjectPath, nil, "TestApp", nil)
	require.NoError(t, err)

	image := doc["issuer"].(map[string]any)["image"].(map[string]any)
	assert.Equal(t, "data-uri", image["format"])
	value, ok := image["value"].(string)
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(value, "data:image/png"))
	assert.Contains(t, value, ";base64,")
}

func TestGenerateUnsignedCertData_EmbedContentMissingFile(t *testing.T) {
	gen := unsigned.NewGenerator(unsigned.GeneratorConfig{
		ImageEmbedding: unsigned.EmbedContent,
	})
	doc, err := gen.GenerateUnsignedCertData(
		mustIssuer(t), mustSubject(t), `{"records": []}`,
		"does/not/exist.png", "also/missing.png", nil, "TestApp", nil)
	require.Error(t, err)
	assert.Nil(t, doc)
	assert.ErrorIs(t, err, unsigned.ErrResource)
	assert.Contains(t, err.Error(), "does/not/exist.png")
}

func TestGenerateUnsignedCertData_ReferenceEmbedding(t *testing.T) {
	doc := generate(t)

	image := doc["issuer"].(map[string]any)["image"].(map[string]any)
	assert.Equal(t, "reference", image["format"])
	assert.Equal(t, "path/to/issuer_image.png", image["value"])

	image = doc["subject"].(map[string]any)["image"].(map[string]any)
	assert.Equal(t, "reference", image["format"])
	assert.Equal(t, "path/to/subject_image.png", image["value"])
}
