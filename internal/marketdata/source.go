// Package marketdata serves historical price lookups for market-backed
// funds. The on-disk format is a headerless sequence of 4-byte native-endian
// floats, one sample per day. The file is memory-mapped read-only and shared
// by every fund in the process.
package marketdata

import (
	"errors"
	"fmt"
	"math"
	"os"
	"sync"
	"syscall"
	"unsafe"
)

// ErrOutOfRange reports a lookup past twice the recorded history: the
// configured horizon exceeds what wraparound extrapolation supports.
var ErrOutOfRange = errors.New("marketdata: day index beyond extrapolation range")

const daysPerYear = 365.25

// Source is an immutable daily price series.
type Source struct {
	samples []float32
	mapped  []byte
	file    *os.File
	wrap    float64
}

var (
	sharedOnce sync.Once
	shared     *Source
	sharedErr  error
)

// Shared opens the process-wide source on first use; every later call
// returns the same handle. The mapping lives for the process.
func Shared(path string) (*Source, error) {
	sharedOnce.Do(func() {
		shared, sharedErr = Open(path)
	})
	return shared, sharedErr
}

// Open memory-maps the sample file read-only.
func Open(path string) (*Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open market data: %w", err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("stat market data: %w", err)
	}
	size := info.Size()
	if size < 8 || size%4 != 0 {
		f.Close()
		return nil, fmt.Errorf("market data %s: %d bytes is not a float32 sequence", path, size)
	}
	mapped, err := syscall.Mmap(int(f.Fd()), 0, int(size), syscall.PROT_READ, syscall.MAP_SHARED)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("mmap market data: %w", err)
	}
	samples := unsafe.Slice((*float32)(unsafe.Pointer(&mapped[0])), size/4)
	return newSource(samples, mapped, f), nil
}

// FromSamples wraps an in-memory series. Used by tests and anywhere a series
// is produced rather than read from disk.
func FromSamples(samples []float32) (*Source, error) {
	if len(samples) < 2 {
		return nil, errors.New("marketdata: need at least two samples")
	}
	return newSource(samples, nil, nil), nil
}

func newSource(samples []float32, mapped []byte, f *os.File) *Source {
	return &Source{
		samples: samples,
		mapped:  mapped,
		file:    f,
		wrap:    float64(samples[len(samples)-1]) / float64(samples[0]),
	}
}

// Len is the number of recorded daily samples.
func (s *Source) Len() int { return len(s.samples) }

// WrapMultiplier is the last sample divided by the first: the scale applied
// to the repeated series past the recorded range.
func (s *Source) WrapMultiplier() float64 { return s.wrap }

// Years is the span of recorded history.
func (s *Source) Years() float64 { return float64(len(s.samples)) / daysPerYear }

// Price returns the sample for a fractional year, shifted by dayOffset days.
// Between one and two times the recorded length the series repeats, scaled
// by the wraparound multiplier so the splice is continuous in level. Beyond
// twice the length the lookup fails with ErrOutOfRange.
func (s *Source) Price(year, dayOffset float64) (float64, error) {
	day := year*daysPerYear + dayOffset
	before := int(math.Floor(day))
	n := len(s.samples)
	switch {
	case before >= 0 && before < n:
		return float64(s.samples[before]), nil
	case before < 0 || before >= 2*n:
		return 0, fmt.Errorf("%w: day %d with %d recorded", ErrOutOfRange, before, n)
	default:
		return s.wrap * float64(s.samples[before%n]), nil
	}
}

// Close releases the mapping. The shared handle is never closed; this is for
// sources opened directly.
func (s *Source) Close() error {
	var err error
	if s.mapped != nil {
		err = syscall.Munmap(s.mapped)
		s.mapped = nil
		s.samples = nil
	}
	if s.file != nil {
		if cerr := s.file.Close(); err == nil {
			err = cerr
		}
		s.file = nil
	}
	return err
}
