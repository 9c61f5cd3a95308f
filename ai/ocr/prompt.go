package ocr

import "fmt"

// Prompts shared by the vision-LLM providers. The reply must contain only the
// transcribed text so it can be split into LINE blocks.
const (
	systemPrompt = "You are an OCR system that extracts text from images. " +
		"Reply with the text exactly as it appears, one line of the image per line of output. " +
		"Do not add commentary, headings or formatting."
	userPrompt = "Extract the text from this image."
)

// SystemPrompt returns the instruction for vision-LLM providers
func SystemPrompt(o *OCROptions) string {
	if o == nil || o.Language == "" || o.Language == "auto" {
		return systemPrompt
	}
	return systemPrompt + fmt.Sprintf(" The text is in %s.", o.Language)
}

// UserPrompt returns the request that accompanies the image
func UserPrompt() string {
	return userPrompt
}
