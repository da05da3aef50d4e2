package resume

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"code.sajari.com/docconv"

	apperrors "talenthub/internal/common/errors"
)

// ==========================================
// TEXT EXTRACTION
// ==========================================

// Supported upload extensions. Anything else is rejected before extraction.
var supportedExtensions = map[string]string{
	".pdf":  "application/pdf",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".doc":  "application/msword",
	".txt":  "text/plain",
}

// IsSupportedFile reports whether the filename carries an extension the
// extractor can handle.
func IsSupportedFile(filename string) bool {
	_, ok := supportedExtensions[strings.ToLower(filepath.Ext(filename))]
	return ok
}

// MimeForFile returns the content type used when the stored file is served
// back for download.
func MimeForFile(filename string) string {
	if mime, ok := supportedExtensions[strings.ToLower(filepath.Ext(filename))]; ok {
		return mime
	}
	return "application/octet-stream"
}

// ExtractText converts an uploaded document into plain text. Text files pass
// through unchanged; PDF and Word documents go through docconv.
func ExtractText(filename string, data []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	mime, ok := supportedExtensions[ext]
	if !ok {
		return "", apperrors.NewUnsupportedFileTypeError(ext)
	}

	if ext == ".txt" {
		return string(data), nil
	}

	res, err := docconv.Convert(bytes.NewReader(data), mime, true)
	if err != nil {
		return "", apperrors.NewParseFailedError(fmt.Sprintf("failed to extract text from %s", filename), err)
	}
	if strings.TrimSpace(res.Body) == "" {
		return "", apperrors.NewParseFailedError(fmt.Sprintf("no readable text in %s", filename), nil)
	}
	return res.Body, nil
}
