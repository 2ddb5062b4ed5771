package main

import (
	"fmt"

	"solar-proposal/internal/finance"

	"github.com/spf13/cobra"
)

var calIn finance.CalibrationInput

var calibrateCmd = &cobra.Command{
	Use:   "calibrate",
	Short: "Run one step of the maintenance-rate calibration",
	Long: `Computes the ideal maintenance rate for a cost ceiling and reports what the
calibration would do with the current rate.`,
	RunE: runCalibrate,
}

func init() {
	f := calibrateCmd.Flags()
	f.Float64Var(&calIn.GrossRevenue, "gross", 0, "annual gross revenue (KRW)")
	f.Float64Var(&calIn.LaborCost, "labor", 0, "annual EC labor cost (KRW)")
	f.Float64Var(&calIn.CurrentRate, "rate", 0, "current maintenance rate (%)")
	f.Float64Var(&calIn.CostCeiling, "ceiling", 0, "annual operating cost ceiling (KRW)")
	f.BoolVar(&calIn.AutoMode, "auto", false, "auto mode")
	f.BoolVar(&calIn.ModelChanged, "model-changed", false, "the business model just changed")
	_ = calibrateCmd.MarkFlagRequired("gross")
	_ = calibrateCmd.MarkFlagRequired("ceiling")
	rootCmd.AddCommand(calibrateCmd)
}

func runCalibrate(cmd *cobra.Command, args []string) error {
	if calIn.CostCeiling <= 0 {
		return fmt.Errorf("--ceiling must be > 0")
	}
	out := finance.CalibrateMaintenanceRate(calIn)
	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Ideal rate:      %.2f%%\n", out.IdealRate)
	fmt.Fprintf(w, "Resulting rate:  %.2f%%\n", out.Rate)
	fmt.Fprintf(w, "Exceeds ceiling: %v\n", out.ExceedsCeiling)
	if out.NeedsConfirmation {
		fmt.Fprintln(w, "Manual mode: confirm before applying the ideal rate.")
	}
	return nil
}
