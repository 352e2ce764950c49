package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dgallion1/batnadoc/internal/config"
	"github.com/dgallion1/batnadoc/internal/export"
	"github.com/dgallion1/batnadoc/internal/generate"
	"github.com/dgallion1/batnadoc/internal/session"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	generateFields string
	generateFormat string
	generateOut    string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a document from a YAML field file",
	Long: `Generate one BATNA document from a YAML mapping of field keys to
values (see GET /api/fields for the keys) and export it.`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVar(&generateFields, "fields", "", "YAML file with the form values")
	generateCmd.Flags().StringVarP(&generateFormat, "format", "f", "text", "Output format: text, docx, pdf, bundle")
	generateCmd.Flags().StringVarP(&generateOut, "out", "o", "", "Output path (default: timestamped name in the current directory)")
	generateCmd.MarkFlagRequired("fields")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	values, err := readFields(generateFields)
	if err != nil {
		return err
	}

	provider, err := generate.FromConfig(cfg)
	if err != nil {
		return err
	}
	defer provider.Close()

	tmpl, err := loadTemplate(cfg)
	if err != nil {
		return err
	}

	ctrl := session.NewController(session.ControllerConfig{
		Generator: generate.WithRetries(provider, cfg.GenerationRetries, log),
		Template:  tmpl,
		Export:    export.Options{Title: cfg.DocumentTitle, PDFFontPath: cfg.PDFFontPath},
		Timeout:   cfg.GenerationTimeout,
		Log:       log,
	})
	sess := session.NewStore(cfg.SessionTTL, 1).Create()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if _, err := ctrl.Submit(ctx, sess, values); err != nil {
		return err
	}
	d, err := ctrl.Export(sess, generateFormat, "")
	if err != nil {
		return err
	}
	path, err := writeOutput(generateOut, d.Filename, d.Data)
	if err != nil {
		return err
	}
	log.Info("document written", "path", path, "bytes", len(d.Data))
	return nil
}

func readFields(path string) (map[string]string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fields: %w", err)
	}
	var values map[string]string
	if err := yaml.Unmarshal(b, &values); err != nil {
		return nil, fmt.Errorf("decode fields: %w", err)
	}
	return values, nil
}
