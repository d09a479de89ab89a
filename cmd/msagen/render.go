package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/avatarmsp/msagen/pkg/agreement"
)

var (
	renderInput  string
	renderOutput string
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Generate a single agreement from a YAML submission file",
	Long: `Render reads submission fields from a YAML file and writes the
assembled agreement document. The file holds the same field names the web
form submits, e.g.:

    client_name: Acme Corp
    client_email: it@acme.example
    client_address: 123 Main St, Springfield
    pricing_model: workstation
    workstation_count: "12"
    workstation_price: "45.00"
    compliance: "yes"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		log := consoleLogger()

		data, err := os.ReadFile(renderInput)
		if err != nil {
			return fmt.Errorf("failed to read submission file: %w", err)
		}

		form := make(agreement.FormData)
		if err := yaml.Unmarshal(data, &form); err != nil {
			return fmt.Errorf("failed to parse submission file: %w", err)
		}

		preparer := agreement.Preparer{
			Name:  cfg.PreparerName,
			Email: cfg.PreparerEmail,
		}
		sub, err := agreement.ParseForm(form, preparer)
		if err != nil {
			var verr *agreement.ValidationError
			if errors.As(err, &verr) {
				if verr.PricingSelection != nil {
					log.Error().Msg(verr.PricingSelection.Error())
				}
				for _, fe := range verr.Fields {
					log.Error().Str("field", fe.Field).Msg(fe.Message)
				}
				return fmt.Errorf("submission is invalid")
			}
			return err
		}

		tpl, err := loadTemplate(cfg, log)
		if err != nil {
			return err
		}

		doc, err := agreement.NewGenerator(tpl).Generate(sub)
		if err != nil {
			return fmt.Errorf("document generation failed: %w", err)
		}

		out := renderOutput
		if out == "" {
			out = doc.Filename
		}
		if err := os.WriteFile(out, doc.Content, 0o644); err != nil {
			return fmt.Errorf("failed to write document: %w", err)
		}

		log.Info().Str("path", out).Int("bytes", len(doc.Content)).Msg("agreement written")
		return nil
	},
}

func init() {
	renderCmd.Flags().StringVarP(&renderInput, "file", "f", "", "YAML submission file (required)")
	renderCmd.Flags().StringVarP(&renderOutput, "out", "o", "", "output path (default: generated filename)")
	renderCmd.MarkFlagRequired("file")
}
