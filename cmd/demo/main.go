package main

import (
	"flag"
	"fmt"

	"solar-proposal/internal/config"
	"solar-proposal/internal/model"
	"solar-proposal/internal/simulation"
)

// Demo:
// - Build a 500 kW factory proposal (or load one via --config)
// - Run it under every business model
// - Show how the engine's outputs fit together
func main() {
	cfgPath := flag.String("config", "", "Path to scenario YAML (optional)")
	outCSV := flag.String("out", "", "Optional path to write the RE100 projection CSV (e.g. results/projection.csv)")
	flag.Parse()

	in := demoInput()
	if *cfgPath != "" {
		sc, err := config.LoadScenario(*cfgPath)
		if err != nil {
			panic(err)
		}
		in = sc.Input()
	}

	engine := simulation.New()
	fmt.Printf("%-6s %14s %14s %14s %14s %14s %8s\n",
		"model", "generation", "gross", "net profit", "investment", "20y profit", "ROI")
	for _, bm := range []model.BusinessModel{model.ModelKEPCO, model.ModelRE100, model.ModelREC5} {
		run := in
		run.Settings.BusinessModel = bm
		res, err := engine.Run(run)
		if err != nil {
			panic(err)
		}
		fmt.Printf("%-6s %14.0f %14.0f %14.0f %14.0f %14.0f %8s\n",
			bm, res.AnnualGeneration, res.GrossRevenue, res.NetOperatingProfit,
			res.TotalInitial, res.TotalProfit20, res.ROISelf)

		if bm == model.ModelRE100 {
			fmt.Printf("       volumes: self=%.0f ec=%.0f grid=%.0f (raw surplus %.0f)\n",
				res.VolumeSelf, res.VolumeEC, res.VolumeSurplus, res.RawSurplus)
			for _, sc := range res.Financing.All() {
				fmt.Printf("       %-13s net20y=%14.0f roi=%s\n", sc.Model, sc.Net20yProfit, sc.ROIYears)
			}
			if *outCSV != "" {
				if err := simulation.WriteScheduleCSV(*outCSV, res.Schedule); err != nil {
					panic(err)
				}
				fmt.Printf("       wrote %d rows to %s\n", len(res.Schedule), *outCSV)
			}
		}
	}
}

// demoInput is a flat-load factory: 50,000 kWh/month with 30,000 kWh covered by solar.
func demoInput() simulation.Input {
	records := make([]model.MonthlyRecord, model.MonthsPerYear)
	for i := range records {
		records[i] = model.MonthlyRecord{
			Month:           i + 1,
			UsageKWh:        50_000,
			SelfConsumption: 30_000,
			TotalBill:       8_000_000,
			BaseBill:        1_000_000,
		}
	}
	s := model.DefaultSettings()
	s.CapacityKW = 500
	return simulation.Input{
		Records:  records,
		Settings: s,
		Pricing:  model.DefaultPricing(),
	}
}
