package finance

import (
	"encoding/json"
	"math"
	"strconv"
)

// Years is a payback period. It is +Inf when capital is never recovered;
// such values marshal to JSON null and should be displayed as "—".
type Years float64

// Finite reports whether the payback period is a real number.
func (y Years) Finite() bool {
	f := float64(y)
	return !math.IsInf(f, 0) && !math.IsNaN(f)
}

func (y Years) MarshalJSON() ([]byte, error) {
	if !y.Finite() {
		return []byte("null"), nil
	}
	return json.Marshal(float64(y))
}

func (y *Years) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*y = Years(math.Inf(1))
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	*y = Years(f)
	return nil
}

// String formats the period for tables.
func (y Years) String() string {
	if !y.Finite() {
		return "—"
	}
	return strconv.FormatFloat(Round(float64(y), 1), 'f', 1, 64)
}

// PaybackYears is capital / annual profit. No capital means nothing to pay back (0);
// capital with no positive profit never pays back (+Inf).
func PaybackYears(capital, annualProfit float64) Years {
	if capital <= 0 {
		return 0
	}
	if annualProfit <= 0 {
		return Years(math.Inf(1))
	}
	return Years(capital / annualProfit)
}
