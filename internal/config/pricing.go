package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"solar-proposal/internal/model"

	"gopkg.in/yaml.v3"
)

// PricingFile is the on-disk shape of a pricing preset (YAML).
// Fields left out of the file keep the built-in defaults.
type PricingFile struct {
	Name        string              `yaml:"name" json:"name"`
	Description string              `yaml:"description" json:"description,omitempty"`
	Pricing     model.PricingConfig `yaml:"pricing" json:"pricing"`
}

// PresetInfo describes one preset file for listings.
type PresetInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Path        string `json:"-"`
}

func LoadPricing(path string) (*PricingFile, error) {
	f, err := LoadPricingUnchecked(path)
	if err != nil {
		return nil, err
	}
	if err := f.Pricing.Validate(); err != nil {
		return nil, fmt.Errorf("pricing file %s invalid: %w", path, err)
	}
	return f, nil
}

// LoadPricingUnchecked reads a preset and merges it over the defaults without validating.
func LoadPricingUnchecked(path string) (*PricingFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f PricingFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parsing pricing file %s: %w", path, err)
	}
	f.Pricing = MergePricing(model.DefaultPricing(), f.Pricing)
	if f.Name == "" {
		f.Name = presetID(path)
	}
	return &f, nil
}

// ListPresets returns every valid *.yaml / *.yml preset in dir, sorted by ID.
// Files that fail to load are skipped.
func ListPresets(dir string) ([]PresetInfo, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var out []PresetInfo
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		ext := strings.ToLower(filepath.Ext(name))
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		path := filepath.Join(dir, name)
		f, err := LoadPricing(path)
		if err != nil {
			continue // skip invalid files
		}
		out = append(out, PresetInfo{
			ID:          presetID(path),
			Name:        f.Name,
			Description: f.Description,
			Path:        path,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// FindPreset resolves a preset ID inside dir.
func FindPreset(dir, id string) (*PricingFile, error) {
	if id == "" || strings.ContainsAny(id, `/\`) || strings.Contains(id, "..") {
		return nil, errors.New("invalid preset id")
	}
	for _, ext := range []string{".yaml", ".yml"} {
		path := filepath.Join(dir, id+ext)
		if _, err := os.Stat(path); err == nil {
			return LoadPricing(path)
		}
	}
	return nil, fmt.Errorf("preset %q: %w", id, os.ErrNotExist)
}

func presetID(path string) string {
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}

// MergePricing overlays non-zero fields from override onto base.
// A zero in override means "not set", so a price cannot be overridden to exactly 0 here.
func MergePricing(base, override model.PricingConfig) model.PricingConfig {
	out := base
	set := func(dst *float64, v float64) {
		if v != 0 {
			*dst = v
		}
	}
	set(&out.SolarPricePremium, override.SolarPricePremium)
	set(&out.SolarPriceStandard, override.SolarPriceStandard)
	set(&out.SolarPriceEconomy, override.SolarPriceEconomy)
	set(&out.ECUnitPrice, override.ECUnitPrice)
	set(&out.TractorPrice, override.TractorPrice)
	set(&out.PlatformPrice, override.PlatformPrice)
	set(&out.GridPrice, override.GridPrice)
	set(&out.SavingsPrice, override.SavingsPrice)
	set(&out.ECPriceCurrent, override.ECPriceCurrent)
	set(&out.ECPriceFuture, override.ECPriceFuture)
	set(&out.RPSRate, override.RPSRate)
	set(&out.FactoringRate, override.FactoringRate)
	set(&out.RentalPricePerKW, override.RentalPricePerKW)
	set(&out.SubscriptionSelfPrice, override.SubscriptionSelfPrice)
	set(&out.SubscriptionSurplusPrice, override.SubscriptionSurplusPrice)
	set(&out.Irradiance, override.Irradiance)
	set(&out.ModuleWattage, override.ModuleWattage)
	set(&out.ECLaborCost, override.ECLaborCost)
	set(&out.BaseRate, override.BaseRate)
	set(&out.AreaPerKW, override.AreaPerKW)
	return out
}
