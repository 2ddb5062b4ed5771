package finance

import "solar-proposal/internal/model"

// RationalizationBreakdown is the saving per demand-charge tier.
type RationalizationBreakdown struct {
	Base  float64 `json:"base"`
	Light float64 `json:"light"`
	Mid   float64 `json:"mid"`
	Max   float64 `json:"max"`
	Total float64 `json:"total"`
}

// RationalizationSavings computes (high − low) × usage per tier. The base tier
// honours a manual override; the other tiers ignore Manual.
func RationalizationSavings(in model.RationalizationInputs) RationalizationBreakdown {
	out := RationalizationBreakdown{
		Base:  rowSaving(in.Base),
		Light: rowSaving(model.TariffRow{High: in.Light.High, Low: in.Light.Low, Usage: in.Light.Usage}),
		Mid:   rowSaving(model.TariffRow{High: in.Mid.High, Low: in.Mid.Low, Usage: in.Mid.Usage}),
		Max:   rowSaving(model.TariffRow{High: in.Max.High, Low: in.Max.Low, Usage: in.Max.Usage}),
	}
	out.Total = out.Base + out.Light + out.Mid + out.Max
	return out
}

func rowSaving(r model.TariffRow) float64 {
	if r.Manual != nil {
		return *r.Manual
	}
	return (r.High - r.Low) * r.Usage
}
