package config

import (
	"fmt"
	"os"
	"path/filepath"

	"solar-proposal/internal/model"
	"solar-proposal/internal/simulation"

	"gopkg.in/yaml.v3"
)

// Scenario is a saved proposal on disk (YAML), used by the CLI and the demo.
type Scenario struct {
	Name string `yaml:"name"`
	// Optional: load pricing from a preset file. Pricing fields set inline override it.
	PricingFile     string                      `yaml:"pricing_file"`
	Pricing         model.PricingConfig         `yaml:"pricing"`
	Settings        model.Settings              `yaml:"settings"`
	Records         []model.MonthlyRecord       `yaml:"records"`
	Rationalization model.RationalizationInputs `yaml:"rationalization"`

	// Inline pricing block as written, before merging over the file.
	overrides model.PricingConfig
}

// LoadScenario reads a scenario and resolves its pricing.
func LoadScenario(path string) (*Scenario, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s := Scenario{Settings: model.DefaultSettings()}
	if err := yaml.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("parsing scenario %s: %w", path, err)
	}

	s.overrides = s.Pricing
	base := model.DefaultPricing()
	if s.PricingFile != "" {
		pricingPath := s.PricingFile
		if !filepath.IsAbs(pricingPath) {
			// Relative to the scenario file first, then to the working directory.
			cand := filepath.Join(filepath.Dir(path), pricingPath)
			if _, err := os.Stat(cand); err == nil {
				pricingPath = cand
			}
		}
		f, err := LoadPricing(pricingPath)
		if err != nil {
			return nil, fmt.Errorf("loading pricing file: %w", err)
		}
		base = f.Pricing
	}
	s.Pricing = MergePricing(base, s.Pricing)
	if err := s.Pricing.Validate(); err != nil {
		return nil, fmt.Errorf("scenario pricing invalid: %w", err)
	}
	return &s, nil
}

// UsePricingFile replaces the scenario's base pricing with the preset at path.
// Inline pricing fields still override it.
func (s *Scenario) UsePricingFile(path string) error {
	f, err := LoadPricing(path)
	if err != nil {
		return err
	}
	merged := MergePricing(f.Pricing, s.overrides)
	if err := merged.Validate(); err != nil {
		return fmt.Errorf("scenario pricing invalid: %w", err)
	}
	s.PricingFile = path
	s.Pricing = merged
	return nil
}

// Input converts the scenario into an engine input.
func (s *Scenario) Input() simulation.Input {
	return simulation.Input{
		Records:         s.Records,
		Settings:        s.Settings,
		Rationalization: s.Rationalization,
		Pricing:         s.Pricing,
	}
}
