package services

import (
	"bytes"
	"fmt"
	"log"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/edugenai/paper-analyzer/analysis"
)

// PDFExtractor handles PDF text extraction using ledongthuc/pdf
type PDFExtractor struct{}

// NewPDFExtractor creates a new PDF extractor
func NewPDFExtractor() *PDFExtractor {
	return &PDFExtractor{}
}

// sanitizePDF fixes common PDF issues like trailing garbage data.
// Many PDFs downloaded from the web have HTML or other data appended after
// %%EOF; the content is truncated at the last valid %%EOF marker.
func sanitizePDF(content []byte) []byte {
	if len(content) == 0 {
		return content
	}

	if !bytes.HasPrefix(content, []byte("%PDF-")) {
		return content
	}

	eofMarker := []byte("%%EOF")
	lastEOF := bytes.LastIndex(content, eofMarker)
	if lastEOF == -1 {
		// No %%EOF - PDF is likely truncated, let the parser decide
		return content
	}

	pdfEnd := lastEOF + len(eofMarker)
	for pdfEnd < len(content) && (content[pdfEnd] == '\n' || content[pdfEnd] == '\r') {
		pdfEnd++
	}

	if pdfEnd < len(content) {
		extraBytes := len(content) - pdfEnd
		if extraBytes > 10 {
			log.Printf("PDF Extractor: Removing %d bytes of trailing garbage after %%EOF", extraBytes)
			return content[:pdfEnd]
		}
	}

	return content
}

// ExtractText extracts text from PDF bytes with page break markers between
// pages, so downstream segmentation can tell the first page (which carries
// header boilerplate) from the rest.
func (p *PDFExtractor) ExtractText(content []byte) (string, error) {
	if len(content) == 0 {
		return "", fmt.Errorf("empty PDF content")
	}

	content = sanitizePDF(content)
	reader := bytes.NewReader(content)

	pdfReader, err := pdf.NewReader(reader, int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("failed to parse PDF: %w", err)
	}

	numPages := pdfReader.NumPage()
	if numPages == 0 {
		return "", fmt.Errorf("PDF has no pages")
	}

	log.Printf("PDF Extractor: Processing PDF with %d pages", numPages)

	pageTexts := make([]string, 0, numPages)
	for i := 1; i <= numPages; i++ {
		text := p.extractPage(pdfReader, i)
		if text != "" {
			pageTexts = append(pageTexts, text)
		}
	}

	extracted := strings.TrimSpace(strings.Join(pageTexts, analysis.PageBreakMarker))

	if len(extracted) < 50 {
		return "", fmt.Errorf("insufficient text extracted from PDF (only %d characters) - PDF may be scanned/image-based and requires OCR", len(extracted))
	}

	log.Printf("PDF Extractor: Successfully extracted %d characters from %d pages", len(extracted), numPages)

	return extracted, nil
}

// extractPage extracts one page, preferring row extraction for structure
// and falling back to plain text.
func (p *PDFExtractor) extractPage(pdfReader *pdf.Reader, pageNum int) string {
	page := pdfReader.Page(pageNum)
	if page.V.IsNull() {
		log.Printf("PDF Extractor: Page %d is null, skipping", pageNum)
		return ""
	}

	rows, err := page.GetTextByRow()
	if err != nil {
		log.Printf("PDF Extractor: Row extraction failed for page %d, trying plain text: %v", pageNum, err)
		text, plainErr := page.GetPlainText(nil)
		if plainErr != nil {
			log.Printf("PDF Extractor: Plain text extraction also failed for page %d: %v", pageNum, plainErr)
			return ""
		}
		return strings.TrimSpace(text)
	}

	var textBuilder strings.Builder
	for _, row := range rows {
		var rowText strings.Builder
		for _, word := range row.Content {
			rowText.WriteString(word.S)
		}
		line := strings.TrimSpace(rowText.String())
		if line != "" {
			textBuilder.WriteString(line)
			textBuilder.WriteString("\n")
		}
	}
	return strings.TrimSpace(textBuilder.String())
}

// GetPageCount returns the total number of pages in the PDF
func (p *PDFExtractor) GetPageCount(content []byte) (int, error) {
	if len(content) == 0 {
		return 0, fmt.Errorf("empty PDF content")
	}

	content = sanitizePDF(content)
	reader := bytes.NewReader(content)

	pdfReader, err := pdf.NewReader(reader, int64(len(content)))
	if err != nil {
		return 0, fmt.Errorf("failed to parse PDF: %w", err)
	}

	return pdfReader.NumPage(), nil
}
