package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"finsim/internal/analysis"
	"finsim/internal/config"
	"finsim/internal/marketdata"
	"finsim/internal/sim"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "simulate":
		cmdSimulate(os.Args[2:])
	case "inspect":
		cmdInspect(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("usage:")
	fmt.Println("  cli simulate --config examples/config.yaml --out results/summary.csv")
	fmt.Println("  cli inspect --data market_data.bin")
	fmt.Println("")
	fmt.Println("notes:")
	fmt.Println("  - simulate writes one CSV row per Monte Carlo run and prints the outcome distribution")
	fmt.Println("  - --ledger additionally writes per-week rows for every run")
	fmt.Println("  - inspect prints the shape of a market data file")
}

func cmdSimulate(args []string) {
	fs := flag.NewFlagSet("simulate", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Path to YAML config")
	outPath := fs.String("out", "results/summary.csv", "Output summary CSV path")
	ledgerPath := fs.String("ledger", "", "Optional: per-week ledger CSV path")
	_ = fs.Parse(args)

	if *cfgPath == "" {
		fmt.Println("--config is required")
		os.Exit(2)
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		panic(err)
	}

	portfolio, params, err := cfg.Build()
	if err != nil {
		panic(err)
	}
	params.RecordLedger = *ledgerPath != ""

	result, err := sim.New(params, portfolio).Run()
	if err != nil {
		panic(err)
	}

	if err := os.MkdirAll(filepath.Dir(*outPath), 0o755); err != nil {
		panic(err)
	}
	if err := sim.WriteSummaryCSV(*outPath, result.Runs); err != nil {
		panic(err)
	}
	fmt.Printf("Wrote %d runs to %s\n", len(result.Runs), *outPath)

	if *ledgerPath != "" {
		if err := os.MkdirAll(filepath.Dir(*ledgerPath), 0o755); err != nil {
			panic(err)
		}
		if err := sim.WriteLedgerCSV(*ledgerPath, result.FundNames, result.Ledger); err != nil {
			panic(err)
		}
		fmt.Printf("Wrote %d ledger rows to %s\n", len(result.Ledger), *ledgerPath)
	}

	printDistribution(analysis.Summarize(result.Runs))
}

func printDistribution(d analysis.Distribution) {
	fmt.Printf("Runs: %d  Solvent: %.1f%%  Bankrupt: %d\n", d.Runs, d.SolventRate*100, d.Bankruptcies)
	fmt.Printf("Final value: mean=$%.2f median=$%.2f p05=$%.2f p95=$%.2f\n",
		d.MeanFinal, d.MedianFinal, d.P05Final, d.P95Final)
	if d.Retired > 0 && !math.IsNaN(d.MedianRetirement) {
		fmt.Printf("Retirement reached in %d runs, median snapshot $%.2f\n", d.Retired, d.MedianRetirement)
	} else {
		fmt.Println("Retirement never reached (income never stopped)")
	}
}

func cmdInspect(args []string) {
	fs := flag.NewFlagSet("inspect", flag.ExitOnError)
	dataPath := fs.String("data", "market_data.bin", "Path to market data file")
	_ = fs.Parse(args)

	src, err := marketdata.Open(*dataPath)
	if err != nil {
		panic(err)
	}
	defer src.Close()

	first, err := src.Price(0, 0)
	if err != nil {
		panic(err)
	}
	last, err := src.Price(0, float64(src.Len()-1))
	if err != nil {
		panic(err)
	}

	fmt.Printf("File: %s\n", *dataPath)
	fmt.Printf("Samples: %d (%.2f years of daily history)\n", src.Len(), src.Years())
	fmt.Printf("First: %.4f  Last: %.4f  Wrap multiplier: %.4f\n", first, last, src.WrapMultiplier())
	fmt.Printf("Extrapolation supports up to %.2f years per run\n", 2*src.Years())
}
