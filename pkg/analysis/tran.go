package analysis

import (
	"fmt"

	"github.com/edaforge/ispice/internal/consts"
	"github.com/edaforge/ispice/pkg/circuit"
	"github.com/edaforge/ispice/pkg/matrix"
)

// Transient integrates the circuit from t=0 to tstop with a fixed step
// dt=tstep, using trapezoidal companion models for capacitors and inductors.
// Rows are emitted from tstart on. tmax below tstep is raised to tstep;
// adaptive stepping is not performed.
//
// Each step stamps a fresh system from the previous step's element state,
// solves, then commits the solution into every element. Elements never see
// their own mid-step write: update strictly follows solve and strictly
// precedes the next stamp.
func Transient(ckt *circuit.Circuit, tstep, tstop, tstart, tmax float64) (*TranResult, error) {
	if tstep <= 0 || tstop <= 0 {
		return nil, fmt.Errorf("%w: tstep and tstop must be positive", circuit.ErrInvalidValue)
	}
	if tstart < 0 || tstart > tstop {
		return nil, fmt.Errorf("%w: tstart must be within [0, tstop]", circuit.ErrInvalidValue)
	}
	if tmax <= 0 || tmax < tstep {
		tmax = tstep
	}

	for _, el := range ckt.Elements() {
		el.InitState()
	}

	dt := tstep
	res := &TranResult{}
	for t := 0.0; t <= tstop+consts.TimeEps; t += dt {
		sys := matrix.NewSystem[float64](ckt.Size())
		for _, el := range ckt.Elements() {
			if err := el.StampTransient(sys, dt, t); err != nil {
				return nil, fmt.Errorf("stamping %s: %w", el.Name(), err)
			}
		}

		x, err := sys.Solve()
		if err != nil {
			return nil, fmt.Errorf("t=%g s: %w", t, err)
		}

		for _, el := range ckt.Elements() {
			el.UpdateState(x, dt)
		}
		res.Solution = x

		if t >= tstart-consts.TimeEps {
			res.Points = append(res.Points, TranPoint{Time: t, Values: realValues(ckt, x)})
		}
	}
	return res, nil
}
