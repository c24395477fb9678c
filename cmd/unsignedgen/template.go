package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jayswal433/unsigned-gen/pkg/unsigned"
)

var (
	templateIn    string
	templateOut   string
	templateForce bool

	validateIn string
)

var templateCmd = &cobra.Command{
	Use:   "template",
	Short: "Render the assertion template for a generated document",
	Long: `Render the credential assertion template for a previously generated
unsigned certificate document.

The template carries the verifiable-credential contexts and issuer/subject
identifiers with merge tags in place of the issuance date and certificate
UID, ready for the downstream issuing step to fill in.`,
	Example: `  unsignedgen template --in cert.json
  unsignedgen template --in cert.json --out assertion.json`,
	RunE: func(_ *cobra.Command, _ []string) error {
		doc, err := readDocument(templateIn)
		if err != nil {
			return err
		}

		assertion, err := doc.CertificateTemplate()
		if err != nil {
			return err
		}
		return writeDocument(assertion, templateOut, templateForce)
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check a document against the unsigned certificate schema",
	Long: `Check a previously generated document against the embedded unsigned
certificate schema. The check is local; nothing is fetched from a registry.`,
	Example: `  unsignedgen validate --in cert.json`,
	RunE: func(_ *cobra.Command, _ []string) error {
		doc, err := readDocument(validateIn)
		if err != nil {
			return err
		}

		if err := unsigned.ValidateDocument(doc); err != nil {
			return err
		}
		fmt.Println("document is valid")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(templateCmd)
	templateCmd.Flags().StringVar(&templateIn, "in", "",
		"Path to a generated unsigned certificate document (required)")
	templateCmd.Flags().StringVar(&templateOut, "out", "",
		"Output file (default: stdout)")
	templateCmd.Flags().BoolVar(&templateForce, "force", false,
		"Overwrite the output file if it exists")
	_ = templateCmd.MarkFlagRequired("in")

	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().StringVar(&validateIn, "in", "",
		"Path to a generated unsigned certificate document (required)")
	_ = validateCmd.MarkFlagRequired("in")
}

// readDocument loads a generated document back from disk.
func readDocument(path string) (unsigned.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}

	var doc unsigned.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}
	return doc, nil
}
