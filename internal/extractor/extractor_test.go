package extractor

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestExtractMultiPage(t *testing.T) {
	ex := New()
	data := buildPDF(t, []string{"Hello world", "Hello world", "Hello world"})

	doc, err := ex.Extract(data)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if doc.PageCount != 3 {
		t.Fatalf("expected 3 pages, got %d", doc.PageCount)
	}
	if !strings.Contains(doc.Text, "Hello world") {
		t.Fatalf("expected extracted text to contain page content, got %q", doc.Text)
	}
	if !strings.Contains(doc.Text, "--- Page 1 ---") || !strings.Contains(doc.Text, "--- Page 3 ---") {
		t.Fatalf("expected page separators in output, got %q", doc.Text)
	}
}

func TestExtractPreservesPageOrder(t *testing.T) {
	ex := New()
	data := buildPDF(t, []string{"first page", "second page"})

	doc, err := ex.Extract(data)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	first := strings.Index(doc.Text, "first page")
	second := strings.Index(doc.Text, "second page")
	if first < 0 || second < 0 || first > second {
		t.Fatalf("pages out of order: %q", doc.Text)
	}
}

func TestExtractCountsTextFreePages(t *testing.T) {
	ex := New()
	// middle page has no text; it still counts toward the page total
	data := buildPDF(t, []string{"opening", "", "closing"})

	doc, err := ex.Extract(data)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if doc.PageCount != 3 {
		t.Fatalf("expected 3 pages, got %d", doc.PageCount)
	}
	if strings.Contains(doc.Text, "--- Page 2 ---") {
		t.Fatalf("text-free page should be skipped in output: %q", doc.Text)
	}
}

func TestExtractCorruptBytes(t *testing.T) {
	ex := New()
	_, err := ex.Extract([]byte("this is definitely not a pdf"))
	if !errors.Is(err, ErrInvalidPDF) {
		t.Fatalf("expected ErrInvalidPDF, got %v", err)
	}

	// same bytes never succeed
	_, err = ex.Extract([]byte("this is definitely not a pdf"))
	if !errors.Is(err, ErrInvalidPDF) {
		t.Fatalf("expected ErrInvalidPDF on resubmission, got %v", err)
	}
}

func TestExtractTruncatedPDF(t *testing.T) {
	ex := New()
	data := buildPDF(t, []string{"Hello world"})
	_, err := ex.Extract(data[:len(data)/2])
	if !errors.Is(err, ErrInvalidPDF) {
		t.Fatalf("expected ErrInvalidPDF for truncated file, got %v", err)
	}
}

func TestExtractNoText(t *testing.T) {
	ex := New()
	data := buildPDF(t, []string{"", ""})
	_, err := ex.Extract(data)
	if !errors.Is(err, ErrNoText) {
		t.Fatalf("expected ErrNoText, got %v", err)
	}
}

// buildPDF assembles a minimal uncompressed PDF with one Helvetica text line
// per page. Offsets are tracked while writing so the xref table is exact.
func buildPDF(t *testing.T, pages []string) []byte {
	t.Helper()

	var buf bytes.Buffer
	var offsets []int
	buf.WriteString("%PDF-1.4\n")

	writeObj := func(body string) {
		offsets = append(offsets, buf.Len())
		buf.WriteString(body)
	}

	n := len(pages)
	kids := make([]string, 0, n)
	for i := 0; i < n; i++ {
		kids = append(kids, fmt.Sprintf("%d 0 R", 4+2*i))
	}

	writeObj("1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n")
	writeObj(fmt.Sprintf("2 0 obj\n<< /Type /Pages /Kids [%s] /Count %d >>\nendobj\n",
		strings.Join(kids, " "), n))
	writeObj("3 0 obj\n<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>\nendobj\n")

	for i, text := range pages {
		pageNum := 4 + 2*i
		contentNum := pageNum + 1
		var stream string
		if text != "" {
			stream = fmt.Sprintf("BT /F1 12 Tf 72 720 Td (%s) Tj ET", text)
		}
		writeObj(fmt.Sprintf("%d 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 3 0 R >> >> /Contents %d 0 R >>\nendobj\n",
			pageNum, contentNum))
		writeObj(fmt.Sprintf("%d 0 obj\n<< /Length %d >>\nstream\n%s\nendstream\nendobj\n",
			contentNum, len(stream), stream))
	}

	xrefOffset := buf.Len()
	total := len(offsets) + 1
	buf.WriteString(fmt.Sprintf("xref\n0 %d\n", total))
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		buf.WriteString(fmt.Sprintf("%010d 00000 n \n", off))
	}
	buf.WriteString(fmt.Sprintf("trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n",
		total, xrefOffset))
	return buf.Bytes()
}
