package pdfvalidation

import (
	"bytes"
	"strings"
	"testing"
)

func TestValidatePDFBytesRejectsNonPDF(t *testing.T) {
	result, err := ValidatePDFBytes([]byte("<html>not a pdf</html>"), PaperLimits)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Valid {
		t.Error("non-PDF content marked valid")
	}
	if !strings.Contains(result.Error, "PDF header") {
		t.Errorf("unexpected error message: %q", result.Error)
	}
}

func TestValidatePDFBytesRejectsOversized(t *testing.T) {
	limits := PDFLimits{MaxFileSizeMB: 1, MaxPages: 50, DocumentTypeName: "question paper"}
	content := append([]byte("%PDF-1.4"), bytes.Repeat([]byte{0}, 2*1024*1024)...)

	result, err := ValidatePDFBytes(content, limits)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Valid {
		t.Error("oversized content marked valid")
	}
	if !strings.Contains(result.Error, "maximum allowed size") {
		t.Errorf("unexpected error message: %q", result.Error)
	}
}

func TestSanitizePDFStripsTrailingGarbage(t *testing.T) {
	pdfBody := []byte("%PDF-1.4\nsome pdf content\n%%EOF\n")
	content := append(append([]byte{}, pdfBody...), []byte("<html>tracking pixel garbage</html>")...)

	got := sanitizePDF(content)
	if !bytes.Equal(got, pdfBody) {
		t.Errorf("sanitizePDF did not truncate at %%%%EOF: got %d bytes, want %d", len(got), len(pdfBody))
	}
}

func TestSanitizePDFKeepsCleanContent(t *testing.T) {
	pdfBody := []byte("%PDF-1.4\ncontent\n%%EOF")
	got := sanitizePDF(pdfBody)
	if !bytes.Equal(got, pdfBody) {
		t.Error("sanitizePDF modified clean content")
	}
}

func TestSanitizePDFNonPDFPassthrough(t *testing.T) {
	content := []byte("plain text with %%EOF inside")
	got := sanitizePDF(content)
	if !bytes.Equal(got, content) {
		t.Error("sanitizePDF modified non-PDF content")
	}
}
