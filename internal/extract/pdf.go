// Package extract handles PDF uploads: byte-level validation, local text
// extraction, and model-backed structured resume import.
package extract

import (
	"bytes"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Text extracts plain text from PDF bytes. Extraction is best-effort:
// malformed or image-only documents yield an empty string rather than an
// error, and callers decide whether that is fatal. The pdf library panics
// on some malformed inputs, so recovery is required here.
func Text(data []byte) (text string) {
	defer func() {
		if r := recover(); r != nil {
			text = ""
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return ""
	}

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		sb.WriteString(content)
		sb.WriteString("\n")
	}

	return strings.TrimSpace(sb.String())
}
