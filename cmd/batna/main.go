package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/dgallion1/batnadoc/internal/config"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var logLevel string

var rootCmd = &cobra.Command{
	Use:   "batna",
	Short: "BATNA document generator",
	Long: `batna generates BATNA analysis documents from negotiation inputs
and exports them as text, Word or PDF.

Modes:
  batna           Run the web server (default)
  batna serve     Run the web server
  batna export    Render an existing document file
  batna generate  Generate a document from a YAML field file`,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// A .env file in the working directory fills unset variables.
		_ = godotenv.Load()
	},
	RunE: runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "",
		"Log level: debug, info, warn, error (default from LOG_LEVEL)")
}

// newLogger builds the JSON logger, letting --log override the configured
// level.
func newLogger(cfg config.Config) (*slog.Logger, error) {
	level := cfg.LogLevel
	if logLevel != "" {
		if err := level.UnmarshalText([]byte(logLevel)); err != nil {
			return nil, fmt.Errorf("invalid log level %q", logLevel)
		}
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})), nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
