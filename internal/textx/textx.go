// Package textx decodes résumé documents into plain text. Extraction never
// returns an error: any failure yields an empty string and callers treat
// that as an unusable document.
package textx

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"github.com/ThirupathiS-45/Recruitment-Agent/pkg/logx"
	"github.com/ledongthuc/pdf"
)

// Extractor is the text-extraction collaborator used by the ingestion
// pipeline.
type Extractor interface {
	ExtractText(data []byte, filename string) string
}

// DocumentExtractor handles PDF and plain-text documents.
type DocumentExtractor struct{}

func NewDocumentExtractor() *DocumentExtractor {
	return &DocumentExtractor{}
}

// ExtractText decodes the document by file extension. Unknown formats and
// decode failures return an empty string.
func (e *DocumentExtractor) ExtractText(data []byte, filename string) string {
	parts := strings.Split(strings.ToLower(filename), ".")
	ext := parts[len(parts)-1]

	switch ext {
	case "pdf":
		return extractPDF(data, filename)
	case "txt":
		return extractPlainText(data)
	default:
		logx.Warnf("Unsupported file type %q for %s", ext, filename)
		return ""
	}
}

// extractPDF concatenates plain text from every page. The PDF reader panics
// on some malformed documents, so extraction is fenced with a recover.
func extractPDF(data []byte, filename string) (text string) {
	defer func() {
		if r := recover(); r != nil {
			logx.Errorf("PDF extraction panic for %s: %v", filename, r)
			text = ""
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		logx.Errorf("PDF extraction error for %s: %v", filename, err)
		return ""
	}

	var builder strings.Builder
	for pageIndex := 1; pageIndex <= reader.NumPage(); pageIndex++ {
		page := reader.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			// Keep going, partial text is still useful
			continue
		}
		builder.WriteString(pageText)
		builder.WriteString("\n")
	}
	return builder.String()
}

// extractPlainText passes UTF-8 through and drops invalid byte sequences.
func extractPlainText(data []byte) string {
	if utf8.Valid(data) {
		return string(data)
	}
	return strings.ToValidUTF8(string(data), "")
}
