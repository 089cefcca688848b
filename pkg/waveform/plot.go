// Package waveform renders analysis results to PNG images: transient
// waveforms over time and AC magnitude responses over frequency.
package waveform

import (
	"fmt"
	"math/cmplx"
	"sort"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/edaforge/ispice/pkg/analysis"
)

// Transient plots every V(node) trace of a transient run against time and
// writes the chart to path.
func Transient(res *analysis.TranResult, path string) error {
	if res == nil || len(res.Points) == 0 {
		return fmt.Errorf("plotting transient: no rows to plot")
	}

	p := plot.New()
	p.Title.Text = "Transient response"
	p.X.Label.Text = "Time [s]"
	p.Y.Label.Text = "Voltage [V]"

	var args []interface{}
	for _, key := range voltageKeys(res.Points[0].Values) {
		pts := make(plotter.XYs, len(res.Points))
		for i, row := range res.Points {
			pts[i].X = row.Time
			pts[i].Y = row.Values[key]
		}
		args = append(args, key, pts)
	}
	if err := plotutil.AddLinePoints(p, args...); err != nil {
		return fmt.Errorf("plotting transient: %w", err)
	}
	if err := p.Save(8*vg.Inch, 5*vg.Inch, path); err != nil {
		return fmt.Errorf("plotting transient: %w", err)
	}
	return nil
}

// Bode plots the V(node) magnitudes of an AC sweep against frequency on a
// log-log chart and writes it to path.
func Bode(res *analysis.ACResult, path string) error {
	if res == nil || len(res.Points) == 0 {
		return fmt.Errorf("plotting AC response: no sweep points to plot")
	}

	p := plot.New()
	p.Title.Text = "AC magnitude response"
	p.X.Label.Text = "Frequency [Hz]"
	p.Y.Label.Text = "Magnitude"
	p.X.Scale = plot.LogScale{}
	p.X.Tick.Marker = plot.LogTicks{Prec: -1}

	var args []interface{}
	for _, key := range phasorVoltageKeys(res.Points[0].Phasors) {
		pts := make(plotter.XYs, len(res.Points))
		for i, row := range res.Points {
			pts[i].X = row.Freq
			pts[i].Y = cmplx.Abs(row.Phasors[key])
		}
		args = append(args, key, pts)
	}
	if err := plotutil.AddLinePoints(p, args...); err != nil {
		return fmt.Errorf("plotting AC response: %w", err)
	}
	if err := p.Save(8*vg.Inch, 5*vg.Inch, path); err != nil {
		return fmt.Errorf("plotting AC response: %w", err)
	}
	return nil
}

func voltageKeys(values map[string]float64) []string {
	var keys []string
	for k := range values {
		if strings.HasPrefix(k, "V(") {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

func phasorVoltageKeys(phasors map[string]complex128) []string {
	var keys []string
	for k := range phasors {
		if strings.HasPrefix(k, "V(") {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}
