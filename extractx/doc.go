// Package extractx turns a base64 image into text. A run decodes the
// payload, writes it to a temporary file, uploads that file to object
// storage, passes the same bytes to an OCR provider and removes the file.
package extractx
