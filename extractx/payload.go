package extractx

import (
	"encoding/base64"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

var errEmptyImage = errors.New("image payload is empty")

// DecodePayload decodes a base64 image. Whitespace anywhere in the payload is
// ignored and a "data:<mime>;base64," prefix is accepted, in which case its
// media type is returned as well.
func DecodePayload(payload string) ([]byte, string, error) {
	var mediaType string
	if rest, ok := strings.CutPrefix(strings.TrimSpace(payload), "data:"); ok {
		header, data, found := strings.Cut(rest, ",")
		if !found || !strings.HasSuffix(header, ";base64") {
			return nil, "", errors.New("data URL is not base64 encoded")
		}
		mediaType = strings.TrimSuffix(header, ";base64")
		payload = data
	}

	payload = strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n', '\r':
			return -1
		}
		return r
	}, payload)

	image, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", err
	}
	if len(image) == 0 {
		return nil, "", errEmptyImage
	}
	return image, mediaType, nil
}

// resolveContentType picks the upload content type. A data URL media type
// wins, then the configured type, "auto" sniffs the bytes.
func resolveContentType(configured, declared string, image []byte) string {
	if declared != "" {
		return declared
	}
	if configured == "" || configured == ContentTypeAuto {
		return http.DetectContentType(image)
	}
	return configured
}

var extensions = map[string]string{
	"image/png":       "png",
	"image/jpeg":      "jpg",
	"image/gif":       "gif",
	"image/webp":      "webp",
	"image/tiff":      "tiff",
	"image/bmp":       "bmp",
	"application/pdf": "pdf",
}

// extensionFor maps a content type to a file extension, "bin" when unknown
func extensionFor(contentType string) string {
	mediaType, _, _ := strings.Cut(contentType, ";")
	if ext, ok := extensions[strings.TrimSpace(strings.ToLower(mediaType))]; ok {
		return ext
	}
	return "bin"
}

// NewObjectName returns a fresh "<uuid>.<ext>" name
func NewObjectName(contentType string) string {
	return uuid.NewString() + "." + extensionFor(contentType)
}
