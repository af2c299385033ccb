// Package cli implements the logshield command line.
package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"
)

// rootOptions holds the flags shared by every command.
type rootOptions struct {
	configDir string
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// NewRootCommand builds the logshield command tree.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "logshield",
		Short: "PII masking for application logs",
		Long: `logshield masks personal data in log messages before they reach a sink.

Builtin detectors cover:
  - email addresses (domain kept)
  - payment card numbers (last four digits kept)
  - Italian codice fiscale
  - Italian phone numbers
  - Italian street addresses (type and city kept)

Additional patterns are configured in logshield.yaml.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.configDir, "config-dir",
		getEnv("CONFIG_DIR", "./deploy/config"),
		"Path to configuration directory")

	rootCmd.AddCommand(newServeCmd(opts))
	rootCmd.AddCommand(newMaskCmd(opts))
	rootCmd.AddCommand(newDetectorsCmd(opts))
	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	if err := NewRootCommand().ExecuteContext(context.Background()); err != nil {
		return 1
	}
	return 0
}
