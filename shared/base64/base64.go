package base64

import (
	"encoding/base64"
	"errors"
	"fmt"
	"mime"
	"strings"
)

const (
	dataPrefix   = "data:"
	base64Marker = ";base64,"
)

var ErrInvalidDataURI = errors.New("invalid base64 data URI")

// GetContentType returns the media type of a data URI, or an empty string when the
// value is not a base64 data URI.
func GetContentType(file string) string {
	start := len(dataPrefix)
	end := strings.Index(file, base64Marker)

	if end == -1 || end < start {
		return ""
	}

	return file[start:end]
}

// Decode splits a `data:<type>;base64,<payload>` URI into its media type and bytes.
func Decode(dataURI string) (contentType string, data []byte, err error) {
	if !strings.HasPrefix(dataURI, dataPrefix) {
		return "", nil, ErrInvalidDataURI
	}

	contentType = GetContentType(dataURI)
	if contentType == "" {
		return "", nil, ErrInvalidDataURI
	}

	payload := dataURI[strings.Index(dataURI, base64Marker)+len(base64Marker):]

	data, err = base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrInvalidDataURI, err)
	}

	return contentType, data, nil
}

// DecodedSize is the byte length the payload of a data URI decodes to.
func DecodedSize(dataURI string) int {
	idx := strings.Index(dataURI, base64Marker)
	if idx == -1 {
		return len(dataURI)
	}

	return base64.StdEncoding.DecodedLen(len(dataURI) - idx - len(base64Marker))
}

// Extension picks a file extension for a media type, ".bin" when none is known.
func Extension(contentType string) string {
	mediaType, _, _ := strings.Cut(contentType, ";")

	switch mediaType {
	case "image/jpeg", "image/jpg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	case "image/gif":
		return ".gif"
	}

	if exts, err := mime.ExtensionsByType(mediaType); err == nil && len(exts) > 0 {
		return exts[0]
	}

	return ".bin"
}
