package analysis

import (
	"fmt"

	"github.com/edaforge/ispice/pkg/circuit"
	"github.com/edaforge/ispice/pkg/element"
)

// DCSweep steps the named source through n linearly spaced values from start
// to end, solving the operating point at each sample. The source's original
// DC value is restored on exit, including on failure.
func DCSweep(ckt *circuit.Circuit, sourceName string, start, end float64, n int) (*SweepResult, error) {
	el := ckt.Find(sourceName)
	if el == nil {
		return nil, fmt.Errorf("%w: %q", circuit.ErrElementNotFound, sourceName)
	}
	src, ok := el.(element.Source)
	if !ok {
		return nil, fmt.Errorf("%w: %q is not an independent source", circuit.ErrUnsupported, el.Name())
	}
	if n < 1 {
		return nil, fmt.Errorf("%w: sweep needs at least one point, got %d", circuit.ErrInvalidValue, n)
	}
	if n == 1 && start != end {
		return nil, fmt.Errorf("%w: single-point sweep requires start == end", circuit.ErrInvalidValue)
	}
	if n > 1 && start == end {
		return nil, fmt.Errorf("%w: sweep endpoints must differ", circuit.ErrInvalidValue)
	}

	orig := src.DC()
	defer src.SetDC(orig)

	res := &SweepResult{Source: el.Name()}
	for i := 0; i < n; i++ {
		val := start
		if n > 1 {
			val = start + (end-start)*float64(i)/float64(n-1)
		}
		src.SetDC(val)

		op, err := OperatingPoint(ckt)
		if err != nil {
			return nil, fmt.Errorf("sweep %s=%g: %w", res.Source, val, err)
		}
		res.Points = append(res.Points, SweepPoint{SourceValue: val, Values: op.Values})
		res.Last = op
	}
	return res, nil
}
