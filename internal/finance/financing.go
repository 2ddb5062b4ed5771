package finance

import (
	"math"

	"solar-proposal/internal/model"
)

// Financing shares of the investment.
const (
	rpsLoanShare       = 0.8
	factoringLoanShare = 1.0

	rpsGraceYears       = 5
	rpsAmortYears       = 10
	factoringGraceYears = 1
	factoringAmortYears = 9

	// Rental: share of output still sold to the grid, the rest is rented out per kW.
	rentalGridShare   = 0.2
	rentalRentedShare = 0.8
)

// FinancingModel names a financing scenario.
type FinancingModel string

const (
	FinancingSelf         FinancingModel = "self"
	FinancingRPS          FinancingModel = "rps"
	FinancingFactoring    FinancingModel = "factoring"
	FinancingRental       FinancingModel = "rental"
	FinancingSubscription FinancingModel = "subscription"
)

// FinancingInput is what the comparator needs from the rest of the simulation.
type FinancingInput struct {
	TotalInvestment       float64
	SelfFunded20yProfit   float64
	AnnualOperatingProfit float64

	// Rental and subscription volumes.
	CapacityKW       float64
	AnnualGeneration float64
	SelfVolume       float64
	SurplusVolume    float64

	Pricing model.PricingConfig
}

// DebtServiceYear is one year of external debt service.
type DebtServiceYear struct {
	Year      int     `json:"year"`
	Interest  float64 `json:"interest"`
	Principal float64 `json:"principal"`
	Payment   float64 `json:"payment"`
	Balance   float64 `json:"balance"`
}

// Scenario is one financing model's outcome.
type Scenario struct {
	Model            FinancingModel    `json:"model"`
	Principal        float64           `json:"principal"`
	Equity           float64           `json:"equity"`
	InterestRate     float64           `json:"interest_rate"`
	InterestOnly     float64           `json:"interest_only"`
	AnnuityPayment   float64           `json:"annuity_payment"`
	TotalDebtService float64           `json:"total_debt_service"`
	AnnualRevenue    float64           `json:"annual_revenue,omitempty"`
	FirstYearNet     float64           `json:"first_year_net"`
	Net20yProfit     float64           `json:"net_20y_profit"`
	ROIYears         Years             `json:"roi_years"`
	Schedule         []DebtServiceYear `json:"schedule,omitempty"`
}

// Financing compares all five financing models.
type Financing struct {
	SelfFunded   Scenario `json:"self_funded"`
	RPS          Scenario `json:"rps"`
	Factoring    Scenario `json:"factoring"`
	Rental       Scenario `json:"rental"`
	Subscription Scenario `json:"subscription"`
}

// All returns the scenarios in presentation order.
func (f Financing) All() []Scenario {
	return []Scenario{f.SelfFunded, f.RPS, f.Factoring, f.Rental, f.Subscription}
}

// PMT is the level annuity payment for a loan of present value pv over nper periods.
// With the Excel sign convention a negative pv yields a positive payment.
func PMT(rate float64, nper int, pv float64) float64 {
	if nper <= 0 {
		return 0
	}
	if rate == 0 {
		return -pv / float64(nper)
	}
	g := math.Pow(1+rate, float64(nper))
	return -rate * pv * g / (g - 1)
}

// CompareFinancingModels derives the loan, rental and subscription alternatives
// from the self-funded figures.
func CompareFinancingModels(in FinancingInput) Financing {
	p := in.Pricing
	return Financing{
		SelfFunded: Scenario{
			Model:        FinancingSelf,
			Equity:       in.TotalInvestment,
			FirstYearNet: in.AnnualOperatingProfit,
			Net20yProfit: in.SelfFunded20yProfit,
			ROIYears:     PaybackYears(in.TotalInvestment, in.AnnualOperatingProfit),
		},
		RPS: loanScenario(FinancingRPS, in, rpsLoanShare, p.RPSRate, rpsGraceYears, rpsAmortYears),
		Factoring: loanScenario(FinancingFactoring, in, factoringLoanShare, p.FactoringRate,
			factoringGraceYears, factoringAmortYears),
		Rental:       rentalScenario(in),
		Subscription: subscriptionScenario(in),
	}
}

// loanScenario models a grace period of interest-only years followed by a level
// annuity; the remaining years of the horizon carry no debt service.
func loanScenario(m FinancingModel, in FinancingInput, share, ratePct float64, grace, amort int) Scenario {
	loan := in.TotalInvestment * share
	rate := ratePct / 100
	interestOnly := loan * rate
	annuity := math.Abs(PMT(rate, amort, -loan))

	s := Scenario{
		Model:          m,
		Principal:      loan,
		Equity:         in.TotalInvestment - loan,
		InterestRate:   ratePct,
		InterestOnly:   interestOnly,
		AnnuityPayment: annuity,
		Schedule:       debtSchedule(loan, rate, grace, amort, annuity),
	}
	s.TotalDebtService = interestOnly*float64(grace) + annuity*float64(amort)
	s.Net20yProfit = in.SelfFunded20yProfit - s.TotalDebtService

	// Year one is always inside the grace period.
	s.FirstYearNet = in.AnnualOperatingProfit - interestOnly
	s.ROIYears = PaybackYears(s.Equity, s.FirstYearNet)
	return s
}

func debtSchedule(loan, rate float64, grace, amort int, annuity float64) []DebtServiceYear {
	rows := make([]DebtServiceYear, 0, ProjectionYears)
	balance := loan
	for y := 1; y <= ProjectionYears; y++ {
		row := DebtServiceYear{Year: y}
		switch {
		case y <= grace:
			row.Interest = balance * rate
			row.Payment = row.Interest
		case y <= grace+amort:
			row.Interest = balance * rate
			row.Payment = annuity
			row.Principal = min(balance, annuity-row.Interest)
			balance -= row.Principal
		}
		if balance < loan*1e-9 {
			balance = 0
		}
		row.Balance = balance
		rows = append(rows, row)
	}
	return rows
}

// rentalScenario is a flat 20 × annual revenue; degradation and cost are not modelled.
func rentalScenario(in FinancingInput) Scenario {
	p := in.Pricing
	annual := max(0, in.AnnualGeneration)*rentalGridShare*p.GridPrice +
		max(0, in.CapacityKW)*rentalRentedShare*p.RentalPricePerKW
	return Scenario{
		Model:         FinancingRental,
		AnnualRevenue: annual,
		FirstYearNet:  annual,
		Net20yProfit:  annual * ProjectionYears,
	}
}

// subscriptionScenario is a flat 20 × annual revenue like rental.
func subscriptionScenario(in FinancingInput) Scenario {
	p := in.Pricing
	annual := max(0, in.SelfVolume)*(p.SavingsPrice-p.SubscriptionSelfPrice) +
		max(0, in.SurplusVolume)*p.SubscriptionSurplusPrice
	return Scenario{
		Model:         FinancingSubscription,
		AnnualRevenue: annual,
		FirstYearNet:  annual,
		Net20yProfit:  annual * ProjectionYears,
	}
}
