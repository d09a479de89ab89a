package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/avatarmsp/msagen/internal/config"
	"github.com/avatarmsp/msagen/pkg/docxtpl"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "msagen",
	Short: "Master service agreement generator",
	Long: `msagen assembles finished master service agreement documents from a
fixed DOCX template: it validates client and pricing details, applies the
selected pricing model, and fills in the template's placeholders and
conditional sections.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to YAML config file")
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(renderCmd)
}

// loadConfig reads the configuration and sets up the global log level
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	return cfg, nil
}

// loadTemplate opens the configured base template, falling back to the
// built-in one. Loaded once; read-only for the life of the process.
func loadTemplate(cfg *config.Config, log zerolog.Logger) (*docxtpl.Template, error) {
	if cfg.TemplatePath != "" {
		log.Info().Str("path", cfg.TemplatePath).Msg("loading agreement template")
		return docxtpl.Open(cfg.TemplatePath)
	}
	log.Info().Msg("using built-in agreement template")
	return docxtpl.Parse(docxtpl.DefaultTemplate())
}

// consoleLogger builds a zerolog logger for interactive use
func consoleLogger() zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
}
