package main

import (
	"crypto"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-jose/go-jose/v4"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jayswal433/unsigned-gen/pkg/unsigned"
)

var (
	// Generate command flags
	genIssuerFile   string
	genSubjectFile  string
	genRecordsFile  string
	genRecordsJSON  string
	genIssuerImage  string
	genSubjectImage string
	genEmbedContent bool
	genExtra        map[string]string
	genRecipient    map[string]string
	genAppName      string
	genValidFrom    string
	genValidUntil   string
	genIssuerKey    string
	genOut          string
	genForce        bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate unsigned certificate data",
	Long: `Generate the unsigned certificate document from issuer and subject
record files plus auxiliary inputs.

The issuer file is a JSON object with the fields name, website, email, did,
profile_link, revocation_list, crypto_address. The subject file carries
title, did, profile_link. If --issuer-key points to a JWK file and the
issuer file omits crypto_address, the address is derived from the key's
SHA-256 thumbprint.`,
	Example: `  # Generate with image references recorded as-is
  unsignedgen generate --issuer issuer.json --subject subject.json \
    --records-file records.json --issuer-image logo.png \
    --subject-image cert.png --app-name MyApp

  # Inline both images as base64 data URIs
  unsignedgen generate --issuer issuer.json --subject subject.json \
    --issuer-image logo.png --subject-image cert.png \
    --app-name MyApp --embed-content

  # Attach extra metadata and recipient context
  unsignedgen generate --issuer issuer.json --subject subject.json \
    --issuer-image logo.png --subject-image cert.png --app-name MyApp \
    --extra department=engineering --recipient identity_hash=abc123 \
    --out ./certs/`,
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringVar(&genIssuerFile, "issuer", "",
		"Path to the issuer record JSON file (required)")
	generateCmd.Flags().StringVar(&genSubjectFile, "subject", "",
		"Path to the subject record JSON file (required)")
	generateCmd.Flags().StringVar(&genRecordsFile, "records-file", "",
		"Path to the certificate records JSON file")
	generateCmd.Flags().StringVar(&genRecordsJSON, "records", "[]",
		"Inline certificate records JSON (ignored when --records-file is set)")
	generateCmd.Flags().StringVar(&genIssuerImage, "issuer-image", "",
		"Issuer logo image path or URI (required)")
	generateCmd.Flags().StringVar(&genSubjectImage, "subject-image", "",
		"Certificate image path or URI (required)")
	generateCmd.Flags().BoolVar(&genEmbedContent, "embed-content", false,
		"Inline image file contents as base64 data URIs instead of recording references")
	generateCmd.Flags().StringToStringVar(&genExtra, "extra", nil,
		"Extra metadata as key=value pairs, merged into the document's extra section")
	generateCmd.Flags().StringToStringVar(&genRecipient, "recipient", nil,
		"Recipient context as key=value pairs")
	generateCmd.Flags().StringVar(&genAppName, "app-name", "",
		"Name of the issuing application (required)")
	generateCmd.Flags().StringVar(&genValidFrom, "valid-from", "",
		"Start of the certificate validity window")
	generateCmd.Flags().StringVar(&genValidUntil, "valid-until", "",
		"End of the certificate validity window")
	generateCmd.Flags().StringVar(&genIssuerKey, "issuer-key", "",
		"JWK file used to derive the issuer crypto address when the issuer file omits it")
	generateCmd.Flags().StringVar(&genOut, "out", "",
		"Output file, or directory for a UUID-named file (default: stdout)")
	generateCmd.Flags().BoolVar(&genForce, "force", false,
		"Overwrite the output file if it exists")

	_ = generateCmd.MarkFlagRequired("issuer")
	_ = generateCmd.MarkFlagRequired("subject")
	_ = generateCmd.MarkFlagRequired("issuer-image")
	_ = generateCmd.MarkFlagRequired("subject-image")
	_ = generateCmd.MarkFlagRequired("app-name")
}

func runGenerate(_ *cobra.Command, _ []string) error {
	issuer, err := loadIssuer(genIssuerFile, genIssuerKey)
	if err != nil {
		return err
	}
	subject, err := loadSubject(genSubjectFile)
	if err != nil {
		return err
	}

	recordsJSON := genRecordsJSON
	if genRecordsFile != "" {
		data, err := os.ReadFile(genRecordsFile)
		if err != nil {
			return fmt.Errorf("failed to read records file: %w", err)
		}
		recordsJSON = string(data)
	}

	policy := unsigned.EmbedReference
	if genEmbedContent {
		policy = unsigned.EmbedContent
	}
	gen := unsigned.NewGenerator(unsigned.GeneratorConfig{ImageEmbedding: policy})

	var opts []unsigned.GenerateOption
	if genValidFrom != "" || genValidUntil != "" {
		opts = append(opts, unsigned.WithValidity(genValidFrom, genValidUntil))
	}

	doc, err := gen.GenerateUnsignedCertData(
		issuer,
		subject,
		recordsJSON,
		genIssuerImage,
		genSubjectImage,
		toAnyMap(genExtra),
		genAppName,
		toAnyMap(genRecipient),
		opts...,
	)
	if err != nil {
		return err
	}

	return writeDocument(doc, genOut, genForce)
}

// loadIssuer reads an issuer record file and constructs a validated Issuer.
// When the file omits crypto_address and keyFile is set, the address is
// derived from the JWK's SHA-256 thumbprint.
func loadIssuer(path, keyFile string) (*unsigned.Issuer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read issuer file: %w", err)
	}

	var params unsigned.IssuerParams
	if err := json.Unmarshal(data, &params); err != nil {
		return nil, fmt.Errorf("failed to parse issuer file: %w", err)
	}

	if params.CryptoAddress == "" && keyFile != "" {
		address, err := addressFromJWK(keyFile)
		if err != nil {
			return nil, err
		}
		params.CryptoAddress = address
	}

	return unsigned.NewIssuer(params)
}

// loadSubject reads a subject record file and constructs a validated Subject.
func loadSubject(path string) (*unsigned.Subject, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read subject file: %w", err)
	}

	var params unsigned.SubjectParams
	if err := json.Unmarshal(data, &params); err != nil {
		return nil, fmt.Errorf("failed to parse subject file: %w", err)
	}

	return unsigned.NewSubject(params)
}

// addressFromJWK derives a stable issuer address from a JWK file: the
// hex-encoded SHA-256 thumbprint of the key.
func addressFromJWK(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read issuer key file: %w", err)
	}

	var jwk jose.JSONWebKey
	if err := json.Unmarshal(data, &jwk); err != nil {
		return "", fmt.Errorf("failed to parse issuer JWK: %w", err)
	}

	thumbprint, err := jwk.Thumbprint(crypto.SHA256)
	if err != nil {
		return "", fmt.Errorf("failed to compute key thumbprint: %w", err)
	}
	return hex.EncodeToString(thumbprint), nil
}

// writeDocument encodes the document and writes it to out. An empty out goes
// to stdout; a directory gets a fresh UUID-named file inside it. Existing
// files are never clobbered unless force is set.
func writeDocument(doc unsigned.Document, out string, force bool) error {
	encoded, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}
	encoded = append(encoded, '\n')

	if out == "" {
		_, err := os.Stdout.Write(encoded)
		return err
	}

	if info, err := os.Stat(out); err == nil && info.IsDir() {
		out = filepath.Join(out, uuid.NewString()+".json")
	}

	if !force {
		if _, err := os.Stat(out); err == nil {
			return fmt.Errorf("refusing to overwrite %s (use --force)", out)
		}
	}

	if err := os.WriteFile(out, encoded, 0o644); err != nil {
		return fmt.Errorf("failed to write document: %w", err)
	}
	fmt.Fprintf(os.Stderr, "wrote %s\n", out)
	return nil
}

// toAnyMap widens a flag-supplied string map for the generator.
func toAnyMap(m map[string]string) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
