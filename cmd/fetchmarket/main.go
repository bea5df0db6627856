package main

import (
	"flag"
	"fmt"
	"log"

	"finsim/internal/data"
	"finsim/internal/marketdata"
)

func main() {
	var (
		symbol  = flag.String("symbol", "^spx", "Symbol to download daily history for")
		baseURL = flag.String("base-url", "", "History endpoint base URL (default: stooq.com)")
		output  = flag.String("output", "market_data.bin", "Output sample file path")
		synth   = flag.Int("synth", 0, "If > 0, synthesize this many days instead of downloading")
		start   = flag.Float64("synth-start", 100, "Synthetic series starting price")
		drift   = flag.Float64("synth-drift", 0.07, "Synthetic annual drift")
		vol     = flag.Float64("synth-vol", 0.15, "Synthetic annual volatility")
		seed    = flag.Int64("synth-seed", 42, "Synthetic series RNG seed")
	)
	flag.Parse()

	var samples []float32
	if *synth > 0 {
		fmt.Printf("Synthesizing %d days of prices (drift=%.3f vol=%.3f seed=%d)\n", *synth, *drift, *vol, *seed)
		samples = data.SynthesizeGBM(*synth, *start, *drift, *vol, *seed)
	} else {
		client := data.NewHistoryClient(*baseURL)
		var err error
		samples, err = client.FetchDailyCloses(*symbol)
		if err != nil {
			log.Fatalf("fetch %s: %v", *symbol, err)
		}
	}

	if err := data.WriteSamples(*output, samples); err != nil {
		log.Fatalf("write %s: %v", *output, err)
	}

	// Read it back through the same path the simulator uses.
	src, err := marketdata.Open(*output)
	if err != nil {
		log.Fatalf("verify %s: %v", *output, err)
	}
	defer src.Close()

	fmt.Printf("Wrote %d samples (%.2f years) to %s\n", src.Len(), src.Years(), *output)
	fmt.Printf("Wrap multiplier: %.4f\n", src.WrapMultiplier())
}
