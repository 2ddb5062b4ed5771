package config

import (
	"sync"

	"solar-proposal/internal/model"
)

// PricingHolder is the single active pricing configuration shared by the API.
// Changes go through Update so a simulation never observes a half-written config.
type PricingHolder struct {
	mu      sync.RWMutex
	pricing model.PricingConfig
	source  string
}

func NewPricingHolder(p model.PricingConfig, source string) *PricingHolder {
	return &PricingHolder{pricing: p, source: source}
}

// Get returns a copy of the active pricing and where it came from.
func (h *PricingHolder) Get() (model.PricingConfig, string) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.pricing, h.source
}

// Update validates p and makes it active.
func (h *PricingHolder) Update(p model.PricingConfig, source string) error {
	if err := p.Validate(); err != nil {
		return err
	}
	h.mu.Lock()
	h.pricing = p
	h.source = source
	h.mu.Unlock()
	return nil
}
