package export

import (
	"archive/zip"
	"bytes"
	"time"

	"github.com/dgallion1/batnadoc/internal/segment"
	"golang.org/x/sync/errgroup"
)

// Bundle renders every member format concurrently and packs the results into
// one zip archive. Any member failure fails the whole bundle.
type Bundle struct {
	Members []Exporter
}

// NewBundle returns a bundle of the text, docx and PDF exporters.
func NewBundle(opts Options) *Bundle {
	return &Bundle{Members: []Exporter{
		&TextExporter{Options: opts},
		&DocxExporter{Options: opts},
		&PDFExporter{Options: opts},
	}}
}

func (b *Bundle) Format() Format { return FormatZip }

func (b *Bundle) Export(segs []segment.Segment, generatedAt time.Time) ([]byte, error) {
	outputs := make([][]byte, len(b.Members))

	var g errgroup.Group
	for i, m := range b.Members {
		g.Go(func() error {
			data, err := m.Export(segs, generatedAt)
			if err != nil {
				return err
			}
			outputs[i] = data
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for i, m := range b.Members {
		f := m.Format()
		w, err := zw.CreateHeader(&zip.FileHeader{
			Name:     f.Filename(generatedAt),
			Method:   zip.Deflate,
			Modified: generatedAt,
		})
		if err != nil {
			return nil, &RenderError{Format: FormatZip.Name, Segment: -1, Err: err}
		}
		if _, err := w.Write(outputs[i]); err != nil {
			return nil, &RenderError{Format: FormatZip.Name, Segment: -1, Err: err}
		}
	}
	if err := zw.Close(); err != nil {
		return nil, &RenderError{Format: FormatZip.Name, Segment: -1, Err: err}
	}
	return buf.Bytes(), nil
}
