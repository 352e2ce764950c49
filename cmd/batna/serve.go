package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dgallion1/batnadoc/internal/api"
	"github.com/dgallion1/batnadoc/internal/config"
	"github.com/dgallion1/batnadoc/internal/export"
	"github.com/dgallion1/batnadoc/internal/generate"
	"github.com/dgallion1/batnadoc/internal/prompt"
	"github.com/dgallion1/batnadoc/internal/session"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the web server",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
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

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store := session.NewStore(cfg.SessionTTL, cfg.HistoryCapacity)
	go store.Run(ctx, 5*time.Minute)

	ctrl := session.NewController(session.ControllerConfig{
		Generator: generate.WithRetries(provider, cfg.GenerationRetries, log),
		Template:  tmpl,
		Export:    export.Options{Title: cfg.DocumentTitle, PDFFontPath: cfg.PDFFontPath},
		Timeout:   cfg.GenerationTimeout,
		Log:       log,
	})
	srv := api.NewServer(ctrl, store, provider, log, cfg)

	// No write timeout: a generation call may take minutes.
	httpServer := &http.Server{
		Addr:        ":" + cfg.Port,
		Handler:     srv,
		ReadTimeout: 30 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)
	}()

	log.Info("starting batna",
		"port", cfg.Port,
		"provider", cfg.LLMProvider,
		"model", provider.Model(),
		"prompt_version", tmpl.Version,
	)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		return err
	}
	return nil
}

func loadTemplate(cfg config.Config) (*prompt.Template, error) {
	set, err := prompt.Load(cfg.PromptTemplates)
	if err != nil {
		return nil, err
	}
	tmpl, err := set.Get(cfg.PromptVersion)
	if err != nil {
		return nil, fmt.Errorf("select prompt: %w", err)
	}
	return tmpl, nil
}
