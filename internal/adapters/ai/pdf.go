package ai

import (
	"bytes"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
)

const maxPDFHintRunes = 8000

// pdfTextHint returns the text layer of a PDF, collapsed and truncated.
// Scanned or malformed documents yield "".
func pdfTextHint(data []byte) (hint string) {
	defer func() {
		if recover() != nil {
			hint = ""
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return ""
	}

	plain, err := r.GetPlainText()
	if err != nil {
		return ""
	}

	raw, err := io.ReadAll(plain)
	if err != nil {
		return ""
	}

	text := strings.Join(strings.Fields(string(raw)), " ")
	if runes := []rune(text); len(runes) > maxPDFHintRunes {
		text = string(runes[:maxPDFHintRunes])
	}
	return text
}
