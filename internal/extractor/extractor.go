// Package extractor pulls plain text out of uploaded PDF bytes using
// ledongthuc/pdf (pure Go, no CGO).
package extractor

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"pdfsummarizer/internal/models"
)

var (
	// ErrInvalidPDF marks bytes that can never parse as a PDF. Non-retryable.
	ErrInvalidPDF = errors.New("invalid or corrupted PDF file")
	// ErrNoText marks a structurally valid PDF with no extractable text.
	ErrNoText = errors.New("no text content found in PDF")
)

type Extractor struct{}

func New() *Extractor {
	return &Extractor{}
}

// Extract returns the concatenated text of all pages, in page order, plus the
// structural page count. Pages with no extractable text are skipped in the
// output but still count toward PageCount.
func (e *Extractor) Extract(data []byte) (doc *models.Document, err error) {
	// The underlying parser is known to panic on some malformed inputs;
	// uploads are untrusted, so turn a panic into ErrInvalidPDF.
	defer func() {
		if r := recover(); r != nil {
			doc = nil
			err = fmt.Errorf("%w: %v", ErrInvalidPDF, r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPDF, err)
	}

	pageCount := reader.NumPage()
	var sb strings.Builder
	for i := 1; i <= pageCount; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			// image-only or damaged page; the page still counts
			continue
		}
		if strings.TrimSpace(text) == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(fmt.Sprintf("--- Page %d ---\n", i))
		sb.WriteString(strings.TrimSpace(text))
	}

	content := sb.String()
	if content == "" {
		return nil, ErrNoText
	}

	return &models.Document{
		Text:      content,
		PageCount: pageCount,
	}, nil
}
