// Package convert turns uploaded document formats into plain text for
// citation scanning.
package convert

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// ExtractText extracts plain text from a document body. The format is
// chosen by the filename extension. A document that converts to empty
// or whitespace-only text is not an error; it simply yields no
// citations downstream.
func ExtractText(data []byte, filename string) (string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return extractPDF(data)
	case ".docx":
		return extractDOCX(data)
	case ".html", ".htm":
		return extractHTML(data)
	case ".txt", ".md", "":
		return extractPlain(data)
	default:
		return "", fmt.Errorf("unsupported document format %q", filepath.Ext(filename))
	}
}

func extractPlain(data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", fmt.Errorf("file is not valid UTF-8 text")
	}
	return string(data), nil
}
