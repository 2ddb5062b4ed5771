package finance

// MaxMaintenanceRate caps the automatically calibrated maintenance rate (percent).
const MaxMaintenanceRate = 25.0

// calibrationTolerance is the dead band (percentage points) around the ideal rate.
const calibrationTolerance = 0.01

// CalibrationInput is everything the maintenance-rate state machine looks at.
// The state lives with the caller: CurrentRate in, Calibration.Rate out.
type CalibrationInput struct {
	GrossRevenue float64
	LaborCost    float64
	CurrentRate  float64
	CostCeiling  float64
	AutoMode     bool
	// ModelChanged is true on the first calibration after the business model switched.
	ModelChanged bool
	// SuppressAlerts applies ceiling corrections silently in manual mode.
	SuppressAlerts bool
}

// Calibration is the outcome of one calibration step.
type Calibration struct {
	Rate      float64 `json:"rate"`
	IdealRate float64 `json:"ideal_rate"`
	// ExceedsCeiling is set when CurrentRate pushed cost above the ceiling.
	ExceedsCeiling bool `json:"exceeds_ceiling"`
	// NeedsConfirmation is set when the caller must ask the user before applying IdealRate.
	NeedsConfirmation bool `json:"needs_confirmation"`
	Changed           bool `json:"changed"`
}

// IdealMaintenanceRate is the highest rate (percent, 2 decimals) that keeps
// gross × rate/100 + labor within costCeiling, clamped to [0, MaxMaintenanceRate].
func IdealMaintenanceRate(grossRevenue, laborCost, costCeiling float64) float64 {
	if grossRevenue <= 0 {
		return 0
	}
	raw := (costCeiling - laborCost) / grossRevenue * 100
	return Round(min(MaxMaintenanceRate, max(0, raw)), 2)
}

// CalibrateMaintenanceRate moves the maintenance rate toward the cost ceiling.
//
// On a business model change the auto mode snaps to the ideal rate and manual mode keeps
// the user's rate. Otherwise a rate above the ceiling is corrected (silently in auto mode or
// with alerts suppressed, after confirmation in manual mode), and in auto mode a rate with
// slack below the ceiling is raised to it. Repeating a call with its own output is a no-op.
func CalibrateMaintenanceRate(in CalibrationInput) Calibration {
	ideal := IdealMaintenanceRate(in.GrossRevenue, in.LaborCost, in.CostCeiling)
	out := Calibration{Rate: in.CurrentRate, IdealRate: ideal}

	switch {
	case in.ModelChanged:
		if in.AutoMode {
			out.Rate = ideal
		}
	case in.CurrentRate > ideal+calibrationTolerance:
		out.ExceedsCeiling = true
		if in.AutoMode || in.SuppressAlerts {
			out.Rate = ideal
		} else {
			out.NeedsConfirmation = true
		}
	case in.AutoMode && in.CurrentRate < ideal-calibrationTolerance && in.CurrentRate < MaxMaintenanceRate:
		out.Rate = ideal
	}

	out.Changed = out.Rate != in.CurrentRate
	return out
}
