package model

// MonthsPerYear is the size of a complete record collection.
const MonthsPerYear = 12

// MonthlyRecord is one calendar month of utility data.
// Energy in kWh, money in KRW, PeakKW in kW (0 when unknown).
type MonthlyRecord struct {
	Month           int     `json:"month" yaml:"month"`
	Year            int     `json:"year,omitempty" yaml:"year,omitempty"`
	UsageKWh        float64 `json:"usage_kwh" yaml:"usage_kwh"`
	SelfConsumption float64 `json:"self_consumption" yaml:"self_consumption"`
	PeakKW          float64 `json:"peak_kw" yaml:"peak_kw"`
	TotalBill       float64 `json:"total_bill" yaml:"total_bill"`
	BaseBill        float64 `json:"base_bill" yaml:"base_bill"`
	// SolarGeneration overrides the computed generation; 0 means auto-compute.
	SolarGeneration float64 `json:"solar_generation" yaml:"solar_generation"`
}

// Clamp returns a copy with every negative numeric field set to 0.
func (r MonthlyRecord) Clamp() MonthlyRecord {
	r.UsageKWh = nonNeg(r.UsageKWh)
	r.SelfConsumption = nonNeg(r.SelfConsumption)
	r.PeakKW = nonNeg(r.PeakKW)
	r.TotalBill = nonNeg(r.TotalBill)
	r.BaseBill = nonNeg(r.BaseBill)
	r.SolarGeneration = nonNeg(r.SolarGeneration)
	if r.Year < 0 {
		r.Year = 0
	}
	return r
}

// EmptyYear returns twelve zeroed records for months 1..12.
func EmptyYear() []MonthlyRecord {
	out := make([]MonthlyRecord, MonthsPerYear)
	for i := range out {
		out[i].Month = i + 1
	}
	return out
}

// NormalizeRecords turns whatever an importer or form produced into exactly
// twelve records ordered by month. A record without a month takes its position
// in the input. Missing months are zero-filled, out-of-range months are dropped,
// and the first record wins for a duplicate month. The input slice is never modified.
func NormalizeRecords(in []MonthlyRecord) []MonthlyRecord {
	out := EmptyYear()
	seen := make([]bool, MonthsPerYear)
	for i, r := range in {
		if r.Month == 0 {
			r.Month = i + 1
		}
		if r.Month < 1 || r.Month > MonthsPerYear || seen[r.Month-1] {
			continue
		}
		seen[r.Month-1] = true
		out[r.Month-1] = r.Clamp()
	}
	return out
}

func nonNeg(x float64) float64 {
	if x < 0 {
		return 0
	}
	return x
}
