package extractx

import (
	"errors"
	"net/http"

	"github.com/Abraxas-365/imagetext/errx"
)

var (
	extractErrors = errx.NewRegistry("EXTRACT")

	// Every failure surfaces as a 500, the message tells the caller which
	// step failed.
	ErrDecode  = extractErrors.Register("DECODE", errx.TypeBadRequest, http.StatusInternalServerError, "Error decoding base64 image")
	ErrScratch = extractErrors.Register("SCRATCH", errx.TypeSystem, http.StatusInternalServerError, "Error writing temporary image file")
	ErrStorage = extractErrors.Register("STORAGE", errx.TypeExternal, http.StatusInternalServerError, "Error uploading image to S3")
	ErrOCR     = extractErrors.Register("OCR", errx.TypeExternal, http.StatusInternalServerError, "Error processing image with OCR")
	ErrPanic   = extractErrors.Register("PANIC", errx.TypeInternal, http.StatusInternalServerError, "Unexpected error while processing image")

	ErrUnknownProvider = extractErrors.Register("UNKNOWN_PROVIDER", errx.TypeValidation, http.StatusInternalServerError, "Unknown OCR provider")
	ErrMissingAPIKey   = extractErrors.Register("MISSING_API_KEY", errx.TypeValidation, http.StatusInternalServerError, "OCR provider requires an API key")
	ErrAWSConfig       = extractErrors.Register("AWS_CONFIG", errx.TypeSystem, http.StatusInternalServerError, "Failed to load AWS configuration")
)

// describe renders err for the response body
func describe(err error) string {
	var e *errx.Error
	if errors.As(err, &e) {
		return e.Describe()
	}
	return err.Error()
}
