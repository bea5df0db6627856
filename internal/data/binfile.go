package data

import (
	"encoding/binary"
	"fmt"
	"math"
	"math/rand"
	"os"
)

// WriteSamples writes the headerless native-endian float32 sample file the
// simulator memory-maps.
func WriteSamples(path string, samples []float32) error {
	if len(samples) < 2 {
		return fmt.Errorf("need at least 2 samples, got %d", len(samples))
	}
	buf := make([]byte, 4*len(samples))
	for i, s := range samples {
		binary.NativeEndian.PutUint32(buf[i*4:], math.Float32bits(s))
	}
	return os.WriteFile(path, buf, 0o644)
}

// SynthesizeGBM generates a synthetic daily price series by geometric
// Brownian motion, for demos and offline work when no real history is at
// hand. drift and vol are annualized.
func SynthesizeGBM(n int, start, drift, vol float64, seed int64) []float32 {
	rng := rand.New(rand.NewSource(seed))
	const dt = 1.0 / 365.25

	out := make([]float32, n)
	price := start
	for i := range out {
		out[i] = float32(price)
		step := (drift-0.5*vol*vol)*dt + vol*math.Sqrt(dt)*rng.NormFloat64()
		price *= math.Exp(step)
	}
	return out
}
