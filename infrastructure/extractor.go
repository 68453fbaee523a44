package infrastructure

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/nguyenthenguyen/docx"
	"github.com/sirupsen/logrus"
	"github.com/unidoc/unipdf/v3/extractor"
	"github.com/unidoc/unipdf/v3/model"
)

// MaxUploadSize is the per-file ceiling, checked before extraction.
const MaxUploadSize = 50 * 1024 * 1024

var docxTagRe = regexp.MustCompile(`<[^>]+>`)

// DocumentExtractor converts uploaded binaries to plain text, dispatching on
// file extension. When the primary extractor yields only whitespace it falls
// back to Gemini inline-data extraction; if that also fails, the result is
// empty text and the caller decides what that means.
type DocumentExtractor struct {
	fallback *GeminiExtractor
}

// NewDocumentExtractor accepts a nil fallback.
func NewDocumentExtractor(fallback *GeminiExtractor) *DocumentExtractor {
	return &DocumentExtractor{fallback: fallback}
}

func (e *DocumentExtractor) Extract(data []byte, filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	var text string
	var err error
	switch ext {
	case ".pdf":
		text, err = extractPDF(data)
	case ".docx", ".doc":
		text, err = extractDOCX(data)
	case ".txt":
		text = string(data)
	default:
		return "", fmt.Errorf("unsupported file type: %s", ext)
	}

	if err != nil {
		logrus.WithFields(logrus.Fields{"filename": filename, "error": err}).Warn("primary extraction failed")
	}
	if strings.TrimSpace(text) != "" {
		return text, nil
	}

	// Best-effort fallback. Its own failure is swallowed: empty text is a
	// legal outcome of extraction.
	if e.fallback != nil && (ext == ".pdf" || ext == ".docx" || ext == ".doc") {
		mime := "application/pdf"
		if ext != ".pdf" {
			mime = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
		}
		fallbackText, fbErr := e.fallback.ExtractText(context.Background(), data, mime)
		if fbErr != nil {
			logrus.WithFields(logrus.Fields{"filename": filename, "error": fbErr}).Warn("fallback extraction failed")
			return "", nil
		}
		return fallbackText, nil
	}

	return "", nil
}

func extractPDF(data []byte) (string, error) {
	reader, err := model.NewPdfReader(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to read PDF: %w", err)
	}

	numPages, err := reader.GetNumPages()
	if err != nil {
		return "", fmt.Errorf("failed to get page count: %w", err)
	}
	if numPages == 0 {
		return "", fmt.Errorf("PDF has no pages")
	}

	var builder strings.Builder
	for i := 1; i <= numPages; i++ {
		page, err := reader.GetPage(i)
		if err != nil {
			continue // skip unreadable pages
		}
		ex, err := extractor.New(page)
		if err != nil {
			continue
		}
		pageText, err := ex.ExtractText()
		if err != nil {
			continue
		}
		builder.WriteString(pageText)
		builder.WriteString("\n\n")
	}

	return strings.TrimSpace(builder.String()), nil
}

func extractDOCX(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to read DOCX: %w", err)
	}
	defer doc.Close()

	content := doc.Editable().GetContent()
	// The content is document XML; paragraph closes become line breaks and
	// the remaining tags are stripped.
	content = strings.ReplaceAll(content, "</w:p>", "\n")
	content = docxTagRe.ReplaceAllString(content, "")
	return strings.TrimSpace(content), nil
}
