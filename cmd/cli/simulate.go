package main

import (
	"encoding/json"
	"fmt"
	"io"

	"solar-proposal/internal/config"
	"solar-proposal/internal/finance"
	"solar-proposal/internal/simulation"

	"github.com/spf13/cobra"
)

var (
	simInput   string
	simPricing string
	simOut     string
	simJSON    bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run a proposal scenario",
	Long:  `Loads a scenario YAML, runs the full simulation and prints the headline figures.`,
	RunE:  runSimulate,
}

func init() {
	simulateCmd.Flags().StringVar(&simInput, "input", "", "scenario YAML (required)")
	simulateCmd.Flags().StringVar(&simPricing, "pricing", "", "pricing preset YAML, overrides the scenario's pricing_file")
	simulateCmd.Flags().StringVar(&simOut, "out", "", "write the 20-year projection CSV here")
	simulateCmd.Flags().BoolVar(&simJSON, "json", false, "print the full result as JSON")
	_ = simulateCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(simulateCmd)
}

func runSimulate(cmd *cobra.Command, args []string) error {
	sc, err := config.LoadScenario(simInput)
	if err != nil {
		return fmt.Errorf("loading scenario: %w", err)
	}
	if simPricing != "" {
		if err := sc.UsePricingFile(simPricing); err != nil {
			return fmt.Errorf("loading pricing: %w", err)
		}
	}

	res, err := simulation.New().Run(sc.Input())
	if err != nil {
		return err
	}

	if simOut != "" {
		if err := simulation.WriteScheduleCSV(simOut, res.Schedule); err != nil {
			return fmt.Errorf("writing projection: %w", err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %d rows to %s\n", len(res.Schedule), simOut)
	}

	if simJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}
	printResult(cmd.OutOrStdout(), sc.Name, res)
	return nil
}

func printResult(w io.Writer, name string, r *simulation.Result) {
	if name != "" {
		fmt.Fprintf(w, "%s\n", name)
	}
	s := r.Settings
	fmt.Fprintf(w, "%.0f kW %s, %s, EC fleet %d (use_ec=%v)\n",
		s.CapacityKW, s.ModuleTier, s.BusinessModel, s.ECFleetSize, s.UseEC)
	fmt.Fprintln(w, "----------------------------------------------")
	row := func(label string, v float64) { fmt.Fprintf(w, "%-28s %17s\n", label, won(v)) }

	row("Annual generation (kWh)", r.AnnualGeneration)
	row("Self-consumption (kWh)", r.VolumeSelf)
	row("EC volume (kWh)", r.VolumeEC)
	row("Grid surplus (kWh)", r.VolumeSurplus)
	fmt.Fprintln(w, "----------------------------------------------")
	row("Revenue: savings", r.RevenueSaving)
	row("Revenue: EC", r.RevenueEC)
	row("Revenue: grid", r.RevenueSurplus)
	row("Rationalization savings", r.RationalizationSavings)
	row("Gross revenue", r.GrossRevenue)
	row("Maintenance", r.MaintenanceCost)
	row("EC labor", r.LaborCost)
	row("Net operating profit", r.NetOperatingProfit)
	fmt.Fprintln(w, "----------------------------------------------")
	row("Initial investment", r.TotalInitial)
	row("20-year profit (self)", r.TotalProfit20)
	fmt.Fprintln(w, "----------------------------------------------")
	fmt.Fprintf(w, "%-14s %17s %8s\n", "Financing", "20y net", "ROI yrs")
	for _, sc := range r.Financing.All() {
		fmt.Fprintf(w, "%-14s %17s %8s\n", sc.Model, won(sc.Net20yProfit), sc.ROIYears)
	}
	if cal := r.Calibration; cal != nil {
		switch {
		case cal.ExceedsCeiling:
			fmt.Fprintf(w, "\nMaintenance rate %.2f%% exceeds the cost ceiling; ideal rate is %.2f%%\n",
				s.MaintenanceRate, cal.IdealRate)
		case cal.Changed:
			fmt.Fprintf(w, "\nAuto calibration would raise the maintenance rate to %.2f%%\n", cal.Rate)
		}
	}
	if a := r.ECAdvice; a.UnderProvisioned || a.OverProvisioned {
		fmt.Fprintf(w, "\nEC advice: daily surplus %.0f kWh, recommended fleet %d (current %d)\n",
			a.DailySurplus, a.RecommendedFleet, a.FleetSize)
	}
}

// won formats a KRW amount rounded to whole won with thousands separators.
func won(v float64) string {
	n := int64(finance.Round(v, 0))
	neg := n < 0
	if neg {
		n = -n
	}
	s := fmt.Sprintf("%d", n)
	out := make([]byte, 0, len(s)+len(s)/3)
	for i := range len(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, s[i])
	}
	if neg {
		return "-" + string(out)
	}
	return string(out)
}
