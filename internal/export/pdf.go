package export

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"github.com/dgallion1/batnadoc/internal/segment"
	"github.com/go-pdf/fpdf"
	pdflib "github.com/ledongthuc/pdf"
	"golang.org/x/text/encoding/charmap"
)

// Sizes are in points.
const (
	pdfMargin     = 72
	pdfSpacer     = 12
	pdfTitleSize  = 24
	pdfHeadSize   = 16
	pdfHeadAfter  = 30
	pdfBodySize   = 10
	pdfBodyLead   = 12
	pdfTitleLead  = 30
	pdfHeadLead   = 20
	pdfCoreFamily = "Helvetica"
	pdfTTFFamily  = "DocumentFont"
)

type pdfBlockStyle struct {
	style      string
	size       float64
	leading    float64
	spaceAfter float64
}

var (
	pdfTitleStyle   = pdfBlockStyle{style: "B", size: pdfTitleSize, leading: pdfTitleLead}
	pdfHeadingStyle = pdfBlockStyle{style: "B", size: pdfHeadSize, leading: pdfHeadLead, spaceAfter: pdfHeadAfter}
	pdfBodyStyle    = pdfBlockStyle{size: pdfBodySize, leading: pdfBodyLead}
)

// PDFExporter lays the document out on Letter pages: a large title, then one
// block per segment, each followed by a fixed spacer. It fails with a
// *RenderError instead of returning a partial document.
type PDFExporter struct {
	Options Options
}

func (e *PDFExporter) Format() Format { return FormatPDF }

func (e *PDFExporter) Export(segs []segment.Segment, generatedAt time.Time) ([]byte, error) {
	pdf := fpdf.New("P", "pt", "Letter", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(true, pdfMargin)
	pdf.SetCreationDate(generatedAt)
	pdf.SetModificationDate(generatedAt)
	pdf.SetCatalogSort(true)
	pdf.SetTitle(e.Options.title(), true)

	family, encode := pdfCoreFamily, encodeWindows1252
	if e.Options.PDFFontPath != "" {
		pdf.AddUTF8Font(pdfTTFFamily, "", e.Options.PDFFontPath)
		pdf.AddUTF8Font(pdfTTFFamily, "B", e.Options.PDFFontPath)
		if pdf.Err() {
			return nil, &RenderError{Format: FormatPDF.Name, Segment: -1, Err: fmt.Errorf("load font: %w", pdf.Error())}
		}
		family, encode = pdfTTFFamily, func(s string) (string, error) { return s, nil }
	}

	pdf.AddPage()

	block := func(text string, st pdfBlockStyle) error {
		enc, err := encode(text)
		if err != nil {
			return err
		}
		pdf.SetFont(family, st.style, st.size)
		pdf.MultiCell(0, st.leading, enc, "", "L", false)
		if st.spaceAfter > 0 {
			pdf.Ln(st.spaceAfter)
		}
		pdf.Ln(pdfSpacer)
		return pdf.Error()
	}

	if err := block(e.Options.title(), pdfTitleStyle); err != nil {
		return nil, &RenderError{Format: FormatPDF.Name, Segment: -1, Excerpt: excerpt(e.Options.title(), 60), Err: err}
	}
	for i, s := range segs {
		st := pdfBodyStyle
		if s.Kind == segment.Heading {
			st = pdfHeadingStyle
		}
		if err := block(s.Text, st); err != nil {
			return nil, segmentError(FormatPDF.Name, i, s.Text, err)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, &RenderError{Format: FormatPDF.Name, Segment: -1, Err: err}
	}
	if err := verifyPDF(buf.Bytes()); err != nil {
		return nil, &RenderError{Format: FormatPDF.Name, Segment: -1, Err: err}
	}
	return buf.Bytes(), nil
}

// encodeWindows1252 converts text to the code page of the core PDF fonts.
func encodeWindows1252(s string) (string, error) {
	out, err := charmap.Windows1252.NewEncoder().String(s)
	if err != nil {
		return "", fmt.Errorf("text not representable in core font: %w", err)
	}
	return out, nil
}

// verifyPDF re-opens the rendered buffer and requires at least one page.
func verifyPDF(b []byte) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("verify pdf: %v", r)
		}
	}()
	r, err := pdflib.NewReader(bytes.NewReader(b), int64(len(b)))
	if err != nil {
		return fmt.Errorf("verify pdf: %w", err)
	}
	if r.NumPage() < 1 {
		return errors.New("verify pdf: document has no pages")
	}
	return nil
}
