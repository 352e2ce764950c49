package export

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dgallion1/batnadoc/internal/segment"
)

// DefaultTitle heads every exported document unless Options overrides it.
const DefaultTitle = "BATNA Document"

// Format describes one export encoding.
type Format struct {
	Name        string
	Ext         string
	ContentType string
}

var (
	FormatText = Format{Name: "text", Ext: "txt", ContentType: "text/plain; charset=utf-8"}
	FormatDocx = Format{Name: "docx", Ext: "docx", ContentType: "application/vnd.openxmlformats-officedocument.wordprocessingml.document"}
	FormatPDF  = Format{Name: "pdf", Ext: "pdf", ContentType: "application/pdf"}
	FormatZip  = Format{Name: "bundle", Ext: "zip", ContentType: "application/zip"}
)

// Filename returns the download name for a document exported at t,
// e.g. BATNA_document_20240301_093000.pdf.
func (f Format) Filename(t time.Time) string {
	return fmt.Sprintf("BATNA_document_%s.%s", t.Format("20060102_150405"), f.Ext)
}

// Exporter renders a segmented document into one encoding. Implementations
// keep no state between calls; the same input yields the same bytes.
type Exporter interface {
	Format() Format
	Export(segs []segment.Segment, generatedAt time.Time) ([]byte, error)
}

// Options are the styling directives shared by the exporters.
type Options struct {
	Title string

	// PDFFontPath points at a UTF-8 TrueType font. When empty the PDF
	// exporter uses core Helvetica and only Windows-1252 text can be placed.
	PDFFontPath string
}

func (o Options) title() string {
	if o.Title == "" {
		return DefaultTitle
	}
	return o.Title
}

// New returns the exporter for a format name: text, docx, pdf or bundle.
func New(name string, opts Options) (Exporter, error) {
	switch strings.ToLower(name) {
	case "text", "txt":
		return &TextExporter{Options: opts}, nil
	case "docx", "word":
		return &DocxExporter{Options: opts}, nil
	case "pdf":
		return &PDFExporter{Options: opts}, nil
	case "bundle", "zip":
		return NewBundle(opts), nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, name)
}

// ErrUnsupportedFormat is returned by New for an unknown format name.
var ErrUnsupportedFormat = errors.New("unsupported export format")

// ErrRenderFailure is matched by every *RenderError.
var ErrRenderFailure = errors.New("render failure")

// RenderError reports an exporter that could not encode a document.
// Segment is -1 when the failure is not tied to one segment.
type RenderError struct {
	Format  string
	Segment int
	Excerpt string
	Err     error
}

func (e *RenderError) Error() string {
	if e.Segment < 0 {
		return fmt.Sprintf("render %s: %v", e.Format, e.Err)
	}
	return fmt.Sprintf("render %s: segment %d (%q): %v", e.Format, e.Segment, e.Excerpt, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }

func (e *RenderError) Is(target error) bool { return target == ErrRenderFailure }

func segmentError(format string, i int, text string, err error) *RenderError {
	return &RenderError{Format: format, Segment: i, Excerpt: excerpt(text, 60), Err: err}
}

func excerpt(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}

const timestampLayout = "2006-01-02 15:04:05"
