package unsigned

import (
	"encoding/base64"
	"fmt"
	"mime"
	"os"
	"path/filepath"
)

// EmbedPolicy selects how image references are carried in the document. The
// policy is explicit generator configuration rather than being inferred from
// the input shape, and it applies to both the issuer and subject images.
type EmbedPolicy string

const (
	// EmbedReference records the image locator (path or URI) verbatim. The
	// asset does not need to exist at generation time.
	EmbedReference EmbedPolicy = "reference"

	// EmbedContent reads the image file and inlines it as a base64 data URI.
	// An unreadable asset fails the whole generation call.
	EmbedContent EmbedPolicy = "content"
)

// Image formats as they appear in the document.
const (
	imageFormatReference = "reference"
	imageFormatDataURI   = "data-uri"
)

// resolveImage turns an image locator into the document's image block
// according to the embed policy. which names the input ("issuer_image" or
// "subject_image") for error reporting.
func resolveImage(which, ref string, policy EmbedPolicy) (map[string]any, error) {
	if ref == "" {
		return nil, Errorf(ErrCodeValidation, "%s reference must not be empty", which)
	}

	switch policy {
	case EmbedReference:
		return map[string]any{
			"format": imageFormatReference,
			"value":  ref,
		}, nil

	case EmbedContent:
		data, err := os.ReadFile(ref)
		if err != nil {
			return nil, WrapError(ErrCodeResource,
				fmt.Sprintf("failed to read %s %q", which, ref), err)
		}
		return map[string]any{
			"format": imageFormatDataURI,
			"value":  dataURI(ref, data),
		}, nil

	default:
		return nil, Errorf(ErrCodeValidation, "unknown embed policy %q", policy)
	}
}

// dataURI encodes raw image bytes as a base64 data URI, deriving the media
// type from the file extension. Unknown extensions fall back to
// application/octet-stream.
func dataURI(ref string, data []byte) string {
	mediaType := mime.TypeByExtension(filepath.Ext(ref))
	if mediaType == "" {
		mediaType = "application/octet-stream"
	}
	return "data:" + mediaType + ";base64," + base64.StdEncoding.EncodeToString(data)
}
