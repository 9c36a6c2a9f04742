package service

import (
	"bytes"
	"fmt"
	"log"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/stayparse/reservation-import/utils/pdflayout"
)

type PDFProcessor interface {
	ExtractText(pdfData []byte) (string, int, error)
}

type pdfProcessor struct{}

func NewPDFProcessor() PDFProcessor {
	return &pdfProcessor{}
}

// ExtractText validates the document structure, then rebuilds the embedded
// text of every page into ordered lines. Returns the reconstructed text and
// the page count.
func (p *pdfProcessor) ExtractText(pdfData []byte) (string, int, error) {
	pageCount, err := validatePDF(pdfData)
	if err != nil {
		return "", 0, fmt.Errorf("invalid PDF: %w", err)
	}

	pages, err := extractFragments(pdfData)
	if err != nil {
		return "", pageCount, fmt.Errorf("text extraction failed: %w", err)
	}

	return pdflayout.JoinLines(pdflayout.ReconstructDocument(pages)), pageCount, nil
}

// validatePDF runs a structural pass over the file and reports its page
// count. Encrypted or corrupt files fail here before we touch content.
func validatePDF(pdfData []byte) (int, error) {
	ctx, err := api.ReadValidateAndOptimize(bytes.NewReader(pdfData), model.NewDefaultConfiguration())
	if err != nil {
		return 0, err
	}
	return ctx.PageCount, nil
}

// extractFragments pulls the positioned text runs of every page. The reader
// can panic on malformed content streams, so the walk sits behind a recover
// guard and surfaces the panic as an error.
func extractFragments(pdfData []byte) (pages [][]pdflayout.Fragment, err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("PDF reader panic recovered: %v", r)
			pages = nil
			err = fmt.Errorf("malformed PDF content: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(pdfData), int64(len(pdfData)))
	if err != nil {
		return nil, err
	}

	for pageIndex := 1; pageIndex <= reader.NumPage(); pageIndex++ {
		page := reader.Page(pageIndex)
		if page.V.IsNull() {
			pages = append(pages, nil)
			continue
		}

		texts := page.Content().Text
		fragments := make([]pdflayout.Fragment, 0, len(texts))
		for _, t := range texts {
			fragments = append(fragments, pdflayout.Fragment{Text: t.S, X: t.X, Y: t.Y})
		}
		pages = append(pages, fragments)
	}

	return pages, nil
}
