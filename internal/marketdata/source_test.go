package marketdata

import (
	"encoding/binary"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
)

func rampSamples(n int) []float32 {
	out := make([]float32, n)
	for i := range out {
		out[i] = float32(i + 1)
	}
	return out
}

func TestPriceWithinRecordedRange(t *testing.T) {
	src, err := FromSamples(rampSamples(100))
	if err != nil {
		t.Fatal(err)
	}

	got, err := src.Price(0, 5.5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 6 {
		t.Errorf("expected sample 6, got %.2f", got)
	}
}

func TestPriceWrapsWithMultiplier(t *testing.T) {
	src, err := FromSamples(rampSamples(100))
	if err != nil {
		t.Fatal(err)
	}
	if got, want := src.WrapMultiplier(), 100.0; got != want {
		t.Fatalf("wrap multiplier: expected %.2f, got %.2f", want, got)
	}

	// Day 149 repeats day 49, scaled by last/first.
	got, err := src.Price(0, 149.5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := 100.0 * 50.0; got != want {
		t.Errorf("wrapped lookup: expected %.2f, got %.2f", want, got)
	}

	// The last supported day, one short of twice the recorded length.
	got, err = src.Price(0, 199.5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := 100.0 * 100.0; got != want {
		t.Errorf("edge of range: expected %.2f, got %.2f", want, got)
	}
}

func TestPriceFailsBeyondTwiceRecorded(t *testing.T) {
	src, err := FromSamples(rampSamples(100))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := src.Price(0, 200.5); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("expected ErrOutOfRange, got %v", err)
	}
}

func TestYearsSpansRecordedHistory(t *testing.T) {
	src, err := FromSamples(rampSamples(731))
	if err != nil {
		t.Fatal(err)
	}
	if got := src.Years(); math.Abs(got-731.0/365.25) > 1e-12 {
		t.Errorf("expected %.4f years, got %.4f", 731.0/365.25, got)
	}
}

func TestFromSamplesRejectsShortSeries(t *testing.T) {
	if _, err := FromSamples([]float32{1}); err == nil {
		t.Error("expected an error for a one-sample series")
	}
}

func TestOpenMapsPackedFloats(t *testing.T) {
	samples := []float32{1.5, 2.5, 3.5, 7.0}
	buf := make([]byte, 4*len(samples))
	for i, s := range samples {
		binary.NativeEndian.PutUint32(buf[i*4:], math.Float32bits(s))
	}
	path := filepath.Join(t.TempDir(), "market_data.bin")
	if err := os.WriteFile(path, buf, 0o644); err != nil {
		t.Fatal(err)
	}

	src, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer src.Close()

	if src.Len() != 4 {
		t.Fatalf("expected 4 samples, got %d", src.Len())
	}
	if got, want := src.WrapMultiplier(), 7.0/1.5; math.Abs(got-want) > 1e-12 {
		t.Errorf("wrap multiplier: expected %.6f, got %.6f", want, got)
	}
	got, err := src.Price(0, 2.5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 3.5 {
		t.Errorf("expected 3.5, got %.2f", got)
	}
}

func TestOpenRejectsMisalignedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.bin")
	if err := os.WriteFile(path, []byte{1, 2, 3, 4, 5, 6, 7, 8, 9}, 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Open(path); err == nil {
		t.Error("expected an error for a misaligned file")
	}
}

func TestOpenMissingFileFails(t *testing.T) {
	if _, err := Open(filepath.Join(t.TempDir(), "missing.bin")); err == nil {
		t.Error("expected an error for a missing file")
	}
}
