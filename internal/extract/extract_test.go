package extract

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}

	return path
}

// writeTwoPagePDF writes a minimal uncompressed PDF showing one line of text
// per page. Cross-reference offsets are computed while assembling.
func writeTwoPagePDF(t *testing.T, first, second string) string {
	t.Helper()

	var buf bytes.Buffer
	var offsets []int
	addObject := func(body string) {
		offsets = append(offsets, buf.Len())
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", len(offsets), body)
	}
	contentStream := func(text string) string {
		stream := fmt.Sprintf("BT /F1 12 Tf 72 720 Td (%s) Tj ET", text)
		return fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(stream), stream)
	}
	pageObject := func(contents int) string {
		return fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792]"+
			" /Resources << /Font << /F1 7 0 R >> >> /Contents %d 0 R >>", contents)
	}

	buf.WriteString("%PDF-1.4\n")
	addObject("<< /Type /Catalog /Pages 2 0 R >>")
	addObject("<< /Type /Pages /Kids [3 0 R 4 0 R] /Count 2 >>")
	addObject(pageObject(5))
	addObject(pageObject(6))
	addObject(contentStream(first))
	addObject(contentStream(second))
	addObject("<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>")

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(offsets)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, offset := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", offset)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n",
		len(offsets)+1, xref)

	path := filepath.Join(t.TempDir(), "resume.pdf")
	if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		t.Fatalf("writing pdf fixture: %v", err)
	}

	return path
}

func TestTextPlainFile(t *testing.T) {
	path := writeFile(t, "resume.txt", "Jane Doe\nHead of Sales\n\n")

	got := New(nil).Text(path)
	if got != "Jane Doe\nHead of Sales" {
		t.Errorf("Text() = %q, want trimmed file content", got)
	}
}

func TestTextMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.txt")

	if got := New(nil).Text(path); got != "" {
		t.Errorf("Text() on missing file = %q, want empty string", got)
	}
}

func TestTextUnsupportedType(t *testing.T) {
	path := writeFile(t, "resume.odt", "content")

	if got := New(nil).Text(path); got != "" {
		t.Errorf("Text() on unsupported type = %q, want empty string", got)
	}
}

func TestTextPDFJoinsPages(t *testing.T) {
	path := writeTwoPagePDF(t, "Page one", "Page two")
	extractor := New(nil)

	raw, err := extractor.pdfText(path)
	if err != nil {
		t.Fatalf("pdfText() returned error: %v", err)
	}
	if raw != "Page one\nPage two" {
		t.Errorf("pdfText() = %q, want pages separated by a single newline and no trailing separator", raw)
	}

	if got := extractor.Text(path); got != "Page one\nPage two" {
		t.Errorf("Text() = %q, want the joined page text", got)
	}
}

func TestTextCorruptPDF(t *testing.T) {
	path := writeFile(t, "resume.pdf", "this is not a pdf")

	if got := New(nil).Text(path); got != "" {
		t.Errorf("Text() on corrupt pdf = %q, want empty string", got)
	}
}

func TestTextCorruptDocx(t *testing.T) {
	path := writeFile(t, "resume.docx", "this is not a zip archive")

	if got := New(nil).Text(path); got != "" {
		t.Errorf("Text() on corrupt docx = %q, want empty string", got)
	}
}

func TestSupported(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"resume.pdf", true},
		{"resume.PDF", true},
		{"dir/resume.docx", true},
		{"resume.txt", true},
		{"resume.odt", false},
		{"resume", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := Supported(tt.path); got != tt.want {
			t.Errorf("Supported(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestWordMLText(t *testing.T) {
	content := `<w:body><w:p><w:r><w:t>Jane &amp; Joe</w:t></w:r></w:p>` +
		`<w:p><w:r><w:t>Head of Sales</w:t></w:r></w:p></w:body>`

	got := wordMLText(content)
	want := "Jane & Joe\nHead of Sales\n"
	if got != want {
		t.Errorf("wordMLText() = %q, want %q", got, want)
	}
}
