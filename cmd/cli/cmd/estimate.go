// Package cmd - estimate command
package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"compliance-cost/adapters/model"
	"compliance-cost/core/allocation"
	"compliance-cost/core/cache"
	"compliance-cost/core/engine"
	"compliance-cost/core/extraction"
	"compliance-cost/core/output"
	"compliance-cost/core/types"
	"compliance-cost/internal/config"
)

var (
	estimateTitle      string
	estimateProfile    string
	estimateRegulation string
	estimateCustomer   string
	estimateFormat     string
	estimateUseModel   bool
)

var estimateCmd = &cobra.Command{
	Use:   "estimate <regulation-text-file>",
	Short: "Estimate compliance cost for one regulation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading regulation text: %w", err)
		}

		profile, err := loadProfile(estimateProfile)
		if err != nil {
			return err
		}

		title := estimateTitle
		if title == "" {
			title = strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
		}
		regulationID := estimateRegulation
		if regulationID == "" {
			regulationID = title
		}

		cfg := config.Get()
		eng, err := buildEngine(cfg, estimateUseModel)
		if err != nil {
			return err
		}

		report := eng.Estimate(cmd.Context(), engine.EstimateInput{
			RegulationText:      string(text),
			RegulationTitle:     title,
			RegulationVersionID: regulationID,
			CustomerID:          estimateCustomer,
			Profile:             profile,
		})

		format := estimateFormat
		if format == "" {
			format = cfg.Output.DefaultFormat
		}
		return output.New(format, cfg.Output.NoColor).RenderEstimate(os.Stdout, report)
	},
}

func init() {
	estimateCmd.Flags().StringVar(&estimateTitle, "title", "", "regulation title (default: file name)")
	estimateCmd.Flags().StringVarP(&estimateProfile, "profile", "p", "", "company profile file (YAML or JSON)")
	estimateCmd.Flags().StringVar(&estimateRegulation, "regulation-id", "", "regulation version identifier")
	estimateCmd.Flags().StringVar(&estimateCustomer, "customer", "default", "customer identifier")
	estimateCmd.Flags().StringVarP(&estimateFormat, "format", "f", "", "output format (cli, json)")
	estimateCmd.Flags().BoolVar(&estimateUseModel, "ai", false, "enable generative-model extraction and enrichment")

	estimateCmd.MarkFlagRequired("profile")
}

// buildEngine wires an engine from configuration. Model wiring is best
// effort: a disabled or keyless model config silently yields the
// deterministic-only engine.
func buildEngine(cfg *config.Config, useModel bool) (*engine.Engine, error) {
	var c cache.Cache = cache.NewMemory()
	if !cfg.Extraction.CacheEnabled {
		c = cache.Nop{}
	}

	var extractor *extraction.Extractor
	var enricher *allocation.Enricher

	var client *model.Client
	if useModel {
		modelCfg := cfg.Model
		modelCfg.Enabled = true
		client = model.NewClient(modelCfg)
	}
	if client != nil {
		extractor = extraction.NewWithModel(c, client, cfg.Model.RetryAttempts)
		enricher = allocation.NewEnricher(client, cfg.Model.RetryAttempts)
	} else {
		extractor = extraction.New(c)
	}

	if cfg.Extraction.RulesFile != "" {
		loaded, err := extraction.LoadRulesFile(cfg.Extraction.RulesFile)
		if err != nil {
			return nil, err
		}
		extractor.SetRules(extraction.MergeRules(extraction.BuiltinRules(), loaded))
	}

	return engine.New(extractor, enricher), nil
}

// loadProfile reads a company profile from YAML or JSON
func loadProfile(path string) (types.CompanyProfile, error) {
	var profile types.CompanyProfile

	data, err := os.ReadFile(path)
	if err != nil {
		return profile, fmt.Errorf("reading profile: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &profile)
	default:
		err = json.Unmarshal(data, &profile)
	}
	if err != nil {
		return profile, fmt.Errorf("parsing profile: %w", err)
	}

	return profile, nil
}
