package mask

import (
	"errors"
	"fmt"
	"math"
	"slices"
)

// ErrEmptyUnion is returned by IoU when both masks are entirely false, so
// the ratio is undefined.
var ErrEmptyUnion = errors.New("both masks are empty")

// Options controls how IoU computes its denominator.
//
// SumDenominator replaces |A ∪ B| with |A| + |B|. Positions that are true in
// both masks are then counted twice, so IoU(a, a) is 0.5 instead of 1.
type Options struct {
	SumDenominator bool
}

// Option is a functional option for IoU.
type Option func(*Options)

// WithSumDenominator makes IoU divide by |A| + |B| instead of |A ∪ B|.
func WithSumDenominator() Option {
	return func(o *Options) { o.SumDenominator = true }
}

func defaultOptions() Options {
	return Options{}
}

// Stats holds the population counts of a pair of masks.
type Stats struct {
	Overlap int // true in both
	Union   int // true in at least one
	Sum     int // true count of a plus true count of b
}

// Compare counts overlap and union of two masks of identical shape in a
// single pass.
func Compare(a, b Mask) (Stats, error) {
	if !slices.Equal(a.shape, b.shape) {
		return Stats{}, fmt.Errorf("%w: %v vs %v", ErrShapeMismatch, a.shape, b.shape)
	}

	var s Stats
	for i, x := range a.bits {
		y := b.bits[i]
		if x && y {
			s.Overlap++
		}
		if x || y {
			s.Union++
		}
		if x {
			s.Sum++
		}
		if y {
			s.Sum++
		}
	}
	return s, nil
}

// IoU returns the Intersection-over-Union of a and b: |A ∩ B| / |A ∪ B|.
//
// When both masks are entirely false the result is NaN and the error is
// ErrEmptyUnion.
func IoU(a, b Mask, opts ...Option) (float64, error) {
	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}

	s, err := Compare(a, b)
	if err != nil {
		return math.NaN(), err
	}

	denom := s.Union
	if options.SumDenominator {
		denom = s.Sum
	}
	if denom == 0 {
		return math.NaN(), ErrEmptyUnion
	}
	return float64(s.Overlap) / float64(denom), nil
}

// IoUSlices is IoU for two flat slices of the same length.
func IoUSlices[T Number](a, b []T, opts ...Option) (float64, error) {
	ma, err := FromValues([]int{len(a)}, a)
	if err != nil {
		return math.NaN(), err
	}
	mb, err := FromValues([]int{len(b)}, b)
	if err != nil {
		return math.NaN(), err
	}
	return IoU(ma, mb, opts...)
}
