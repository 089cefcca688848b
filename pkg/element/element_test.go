package element_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edaforge/ispice/pkg/element"
	"github.com/edaforge/ispice/pkg/matrix"
)

func TestResistorStamps(t *testing.T) {
	r := element.NewResistor("R1", "A", "B", 500)
	r.SetNodeIndices(0, 1)

	t.Run("dc", func(t *testing.T) {
		sys := matrix.NewSystem[float64](2)
		require.NoError(t, r.StampDC(sys))
		g := 1.0 / 500.0
		assert.InDelta(t, g, sys.A.At(0, 0), 1e-15)
		assert.InDelta(t, g, sys.A.At(1, 1), 1e-15)
		assert.InDelta(t, -g, sys.A.At(0, 1), 1e-15)
		assert.InDelta(t, -g, sys.A.At(1, 0), 1e-15)
	})

	t.Run("grounded node drops out", func(t *testing.T) {
		r.SetNodeIndices(0, matrix.Ground)
		sys := matrix.NewSystem[float64](1)
		require.NoError(t, r.StampDC(sys))
		assert.InDelta(t, 1.0/500.0, sys.A.At(0, 0), 1e-15)
	})

	t.Run("ac matches dc conductance", func(t *testing.T) {
		r.SetNodeIndices(0, 1)
		sys := matrix.NewSystem[complex128](2)
		require.NoError(t, r.StampAC(sys, 1000))
		assert.Equal(t, complex(1.0/500.0, 0), sys.A.At(0, 0))
	})
}

func TestCapacitorStamps(t *testing.T) {
	c := element.NewCapacitor("C1", "A", "GND", 1e-6)
	c.SetNodeIndices(0, matrix.Ground)

	t.Run("dc open", func(t *testing.T) {
		sys := matrix.NewSystem[float64](1)
		require.NoError(t, c.StampDC(sys))
		assert.Equal(t, 0.0, sys.A.At(0, 0))
		assert.Equal(t, 0.0, sys.B[0])
	})

	t.Run("ac admittance", func(t *testing.T) {
		omega := 2000.0
		sys := matrix.NewSystem[complex128](1)
		require.NoError(t, c.StampAC(sys, omega))
		assert.Equal(t, complex(0, omega*1e-6), sys.A.At(0, 0))
	})

	t.Run("transient companion", func(t *testing.T) {
		dt := 1e-3
		c.InitState()

		sys := matrix.NewSystem[float64](1)
		require.NoError(t, c.StampTransient(sys, dt, 0))
		geq := 2.0 * 1e-6 / dt
		assert.InDelta(t, geq, sys.A.At(0, 0), 1e-15)
		assert.Equal(t, 0.0, sys.B[0], "no history on the first step")

		// After committing a 5 V step, the history source reappears on the RHS.
		c.UpdateState([]float64{5.0}, dt)
		sys = matrix.NewSystem[float64](1)
		require.NoError(t, c.StampTransient(sys, dt, dt))
		iPrev := geq * 5.0 // first-step current with zero initial state
		assert.InDelta(t, geq*5.0+iPrev, sys.B[0], 1e-15)
	})

	t.Run("bad dt", func(t *testing.T) {
		sys := matrix.NewSystem[float64](1)
		err := c.StampTransient(sys, 0, 0)
		require.ErrorIs(t, err, element.ErrBadTimeStep)
	})
}

func TestInductorStamps(t *testing.T) {
	l := element.NewInductor("L1", "A", "GND", 0.1)
	l.SetNodeIndices(0, matrix.Ground)
	l.SetBranchIndex(1)

	t.Run("dc short", func(t *testing.T) {
		sys := matrix.NewSystem[float64](2)
		require.NoError(t, l.StampDC(sys))
		assert.Equal(t, 1.0, sys.A.At(0, 1))
		assert.Equal(t, 1.0, sys.A.At(1, 0))
		assert.Equal(t, 0.0, sys.A.At(1, 1))
		assert.Equal(t, 0.0, sys.B[1])
	})

	t.Run("ac impedance", func(t *testing.T) {
		omega := 100.0
		sys := matrix.NewSystem[complex128](2)
		require.NoError(t, l.StampAC(sys, omega))
		assert.Equal(t, complex(1, 0), sys.A.At(0, 1))
		assert.Equal(t, -complex(0, omega*0.1), sys.A.At(1, 1))
	})

	t.Run("transient companion", func(t *testing.T) {
		dt := 1e-4
		l.InitState()

		sys := matrix.NewSystem[float64](2)
		require.NoError(t, l.StampTransient(sys, dt, 0))
		req := 2.0 * 0.1 / dt
		assert.InDelta(t, -req, sys.A.At(1, 1), 1e-12)
		assert.Equal(t, 0.0, sys.B[1], "no history on the first step")

		// Commit v=2 V across the inductor with i=0.5 A flowing.
		l.UpdateState([]float64{2.0, 0.5}, dt)
		sys = matrix.NewSystem[float64](2)
		require.NoError(t, l.StampTransient(sys, dt, dt))
		veq := 2.0 + req*0.5
		assert.InDelta(t, -veq, sys.B[1], 1e-9)
	})

	t.Run("bad dt", func(t *testing.T) {
		sys := matrix.NewSystem[float64](2)
		err := l.StampTransient(sys, -1, 0)
		require.ErrorIs(t, err, element.ErrBadTimeStep)
	})
}

func TestVoltageSourceStamps(t *testing.T) {
	v := element.NewDCVoltageSource("V1", "A", "GND", 10)
	v.SetNodeIndices(0, matrix.Ground)
	v.SetBranchIndex(1)

	t.Run("dc", func(t *testing.T) {
		sys := matrix.NewSystem[float64](2)
		require.NoError(t, v.StampDC(sys))
		assert.Equal(t, 1.0, sys.A.At(0, 1))
		assert.Equal(t, 1.0, sys.A.At(1, 0))
		assert.Equal(t, 10.0, sys.B[1])
	})

	t.Run("dc source keeps real phasor", func(t *testing.T) {
		assert.Equal(t, complex(10, 0), v.Phasor())
	})

	t.Run("ac phasor", func(t *testing.T) {
		ac := element.NewACVoltageSource("V2", "A", "GND", 1, 90, 1000)
		p := ac.Phasor()
		assert.InDelta(t, 0.0, real(p), 1e-12)
		assert.InDelta(t, 1.0, imag(p), 1e-12)
	})

	t.Run("instantaneous", func(t *testing.T) {
		ac := element.NewACVoltageSource("V2", "A", "GND", 2, 0, 1000)
		assert.InDelta(t, 0.0, ac.Instantaneous(0), 1e-12)
		assert.InDelta(t, 2.0, ac.Instantaneous(0.25e-3), 1e-9)
		assert.InDelta(t, 10.0, v.Instantaneous(0.123), 1e-12, "dc source holds its value")
	})

	t.Run("sweep substitution", func(t *testing.T) {
		v.SetDC(3)
		assert.Equal(t, 3.0, v.DC())
		v.SetDC(10)
	})
}

func TestCurrentSourceStamps(t *testing.T) {
	i := element.NewDCCurrentSource("I1", "A", "B", 2e-3)
	i.SetNodeIndices(0, 1)

	sys := matrix.NewSystem[float64](2)
	require.NoError(t, i.StampDC(sys))
	assert.Equal(t, -2e-3, sys.B[0])
	assert.Equal(t, 2e-3, sys.B[1])
	assert.Equal(t, 0.0, sys.A.At(0, 0), "no matrix entries")
}
