package main

import (
	"fmt"
	"os"
	"time"

	"github.com/dgallion1/batnadoc/internal/config"
	"github.com/dgallion1/batnadoc/internal/export"
	"github.com/dgallion1/batnadoc/internal/parser"
	"github.com/dgallion1/batnadoc/internal/segment"
	"github.com/spf13/cobra"
)

var (
	exportIn     string
	exportFormat string
	exportOut    string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Render an existing document file",
	Long: `Render a generated document as text, docx, pdf or a zip bundle of
all three. The input may be markdown or plain text, or an earlier docx, pdf
or html export. Use --in - to read text from stdin.`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportIn, "in", "", "Document file, or - for stdin")
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "pdf", "Output format: text, docx, pdf, bundle")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Output path (default: timestamped name in the current directory)")
	exportCmd.MarkFlagRequired("in")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}

	doc, err := readInput(cmd, exportIn)
	if err != nil {
		return err
	}

	ex, err := export.New(exportFormat, export.Options{Title: cfg.DocumentTitle, PDFFontPath: cfg.PDFFontPath})
	if err != nil {
		return err
	}

	now := time.Now()
	segs := segment.Split(doc, nil)
	data, err := ex.Export(segs, now)
	if err != nil {
		return err
	}

	path, err := writeOutput(exportOut, ex.Format().Filename(now), data)
	if err != nil {
		return err
	}
	log.Info("document exported", "format", ex.Format().Name, "segments", len(segs), "path", path, "bytes", len(data))
	return nil
}

// readInput loads a document as segmentable text. Besides markdown and plain
// text it accepts earlier docx, pdf and html exports.
func readInput(cmd *cobra.Command, path string) (string, error) {
	if path == "-" {
		return (&parser.TextParser{}).Parse(cmd.InOrStdin())
	}
	p, err := parser.ForFile(path)
	if err != nil {
		return "", err
	}
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("read document: %w", err)
	}
	defer f.Close()
	return p.Parse(f)
}

func writeOutput(path, fallback string, data []byte) (string, error) {
	if path == "" {
		path = fallback
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}
