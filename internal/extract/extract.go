// Package extract pulls plain text out of candidate documents.
package extract

import (
	"fmt"
	"html"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
	"go.uber.org/zap"
)

// SupportedTypes lists the file extensions the extractor understands, in
// lowercase with the leading dot.
var SupportedTypes = []string{".pdf", ".docx", ".txt"}

// Supported reports whether path has an extension the extractor can handle.
func Supported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, supported := range SupportedTypes {
		if ext == supported {
			return true
		}
	}

	return false
}

// Extractor converts resume documents into plain text.
type Extractor struct {
	logger *zap.Logger
}

// New returns an extractor that logs through the provided logger.
func New(logger *zap.Logger) *Extractor {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Extractor{logger: logger}
}

// Text extracts the plain text content of the document at path. Extraction
// failures are reported through the logger and yield an empty string; the
// caller decides whether an empty document aborts its pipeline. Corrupted
// documents are not recoverable by re-reading, so there are no retries.
func (e *Extractor) Text(path string) (text string) {
	logger := e.logger.With(zap.String("file", path))

	// The pdf reader is known to panic on some malformed files; treat a
	// panic like any other extraction failure.
	defer func() {
		if r := recover(); r != nil {
			logger.Warn("text extraction failed", zap.Any("panic", r))
			text = ""
		}
	}()

	var err error

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".pdf":
		text, err = e.pdfText(path)
	case ".docx":
		text, err = e.docxText(path)
	case ".txt":
		text, err = e.plainText(path)
	default:
		logger.Warn("unsupported document type", zap.String("extension", ext))
		return ""
	}

	if err != nil {
		logger.Warn("text extraction failed", zap.Error(err))
		return ""
	}

	return strings.TrimSpace(text)
}

// pdfText concatenates the text of every readable page in document order.
// Pages that cannot be decoded are skipped rather than failing the whole
// document.
func (e *Extractor) pdfText(path string) (string, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening pdf: %w", err)
	}
	defer f.Close()

	var builder strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		content, err := page.GetPlainText(nil)
		if err != nil {
			e.logger.Debug("skipping unreadable pdf page",
				zap.String("file", path), zap.Int("page", i))
			continue
		}

		if builder.Len() > 0 {
			builder.WriteString("\n")
		}
		builder.WriteString(content)
	}

	return builder.String(), nil
}

func (e *Extractor) docxText(path string) (string, error) {
	doc, err := docx.ReadDocxFile(path)
	if err != nil {
		return "", fmt.Errorf("opening docx: %w", err)
	}
	defer doc.Close()

	return wordMLText(doc.Editable().GetContent()), nil
}

func (e *Extractor) plainText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading text file: %w", err)
	}

	return string(data), nil
}

var (
	paragraphClose = regexp.MustCompile(`</w:p>`)
	wordMLTag      = regexp.MustCompile(`<[^>]*>`)
)

// wordMLText recovers the visible text from a WordprocessingML document body.
// Paragraph boundaries become newlines; every other tag is dropped and XML
// entities are unescaped.
func wordMLText(content string) string {
	text := paragraphClose.ReplaceAllString(content, "\n")
	text = wordMLTag.ReplaceAllString(text, "")

	return html.UnescapeString(text)
}
