package main

import (
	"fmt"

	"solar-proposal/internal/finance"

	"github.com/spf13/cobra"
)

var (
	ecSurplus float64
	ecFleet   int
)

var ecAdviceCmd = &cobra.Command{
	Use:   "ec-advice",
	Short: "Recommend an EC fleet size for an annual surplus",
	RunE:  runECAdvice,
}

func init() {
	ecAdviceCmd.Flags().Float64Var(&ecSurplus, "surplus-kwh", 0, "annual surplus generation (kWh)")
	ecAdviceCmd.Flags().IntVar(&ecFleet, "fleet", 0, "current EC fleet size")
	_ = ecAdviceCmd.MarkFlagRequired("surplus-kwh")
	rootCmd.AddCommand(ecAdviceCmd)
}

func runECAdvice(cmd *cobra.Command, args []string) error {
	a := finance.RecommendECFleet(ecSurplus, ecFleet)
	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Daily surplus:     %.1f kWh\n", a.DailySurplus)
	fmt.Fprintf(w, "Recommended fleet: %d\n", a.RecommendedFleet)
	fmt.Fprintf(w, "Current fleet:     %d (%.0f kWh/day, %.1f%% utilized)\n", a.FleetSize, a.FleetDailyKWh, a.UtilizationPct)
	switch {
	case a.UnderProvisioned:
		fmt.Fprintln(w, "Surplus exceeds the fleet's daily capacity.")
	case a.OverProvisioned:
		fmt.Fprintln(w, "Fleet capacity is more than twice the daily surplus.")
	}
	return nil
}
