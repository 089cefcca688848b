package command

import (
	"fmt"
	"math"
	"math/cmplx"
	"sort"
	"strings"

	"github.com/edaforge/ispice/pkg/analysis"
	"github.com/edaforge/ispice/pkg/circuit"
	"github.com/edaforge/ispice/pkg/matrix"
	"github.com/edaforge/ispice/pkg/util"
)

func (s *Session) printNodes() {
	fmt.Fprintf(s.out, "Available nodes: %s\n", strings.Join(s.ckt.Nodes(), ", "))
}

func (s *Session) printList(filter string) {
	els := s.ckt.Elements()
	if len(els) == 0 {
		fmt.Fprintln(s.out, "No elements added yet.")
		return
	}
	upper := strings.ToUpper(filter)
	found := false
	for _, el := range els {
		if upper != "" && el.Type() != upper && !strings.HasPrefix(strings.ToUpper(el.TypeName()), upper) {
			continue
		}
		fmt.Fprintf(s.out, "- %s\n", el)
		found = true
	}
	if !found {
		fmt.Fprintf(s.out, "No %s elements found.\n", upper)
	}
}

// printSystem renders the DC MNA matrix and RHS for .mna.
func (s *Session) printSystem(sys *matrix.System[float64]) {
	n := sys.Size()
	fmt.Fprintf(s.out, "DC MNA matrix (%dx%d): %d node rows, %d branch rows\n",
		n, n, s.ckt.NumNodes(), n-s.ckt.NumNodes())
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			fmt.Fprintf(s.out, "%12.4f ", sys.A.At(i, j))
		}
		fmt.Fprintln(s.out)
	}
	fmt.Fprint(s.out, "b: ")
	for i := 0; i < n; i++ {
		fmt.Fprintf(s.out, "%12.4f ", sys.B[i])
	}
	fmt.Fprintln(s.out)
}

// sortedKeys returns V(..) keys first, then I(..), each alphabetically.
func sortedKeys(values map[string]float64) []string {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		vi := strings.HasPrefix(keys[i], "V(")
		vj := strings.HasPrefix(keys[j], "V(")
		if vi != vj {
			return vi
		}
		return keys[i] < keys[j]
	})
	return keys
}

func unitFor(key string) string {
	if strings.HasPrefix(key, "I(") {
		return "A"
	}
	return "V"
}

func (s *Session) printOP(res *analysis.OPResult) {
	fmt.Fprintln(s.out, "DC operating point:")
	fmt.Fprintf(s.out, "  V(GND) = %s\n", util.FormatValueFactor(0, "V"))
	for _, key := range sortedKeys(res.Values) {
		fmt.Fprintf(s.out, "  %s = %s\n", key, util.FormatValueFactor(res.Values[key], unitFor(key)))
	}
}

func (s *Session) printSweep(res *analysis.SweepResult) {
	fmt.Fprintf(s.out, "DC sweep of %s (%d points):\n", res.Source, len(res.Points))
	if len(res.Points) == 0 {
		return
	}
	keys := sortedKeys(res.Points[0].Values)
	fmt.Fprintf(s.out, "%-14s", res.Source)
	for _, k := range keys {
		fmt.Fprintf(s.out, "%-16s", k)
	}
	fmt.Fprintln(s.out)
	for _, pt := range res.Points {
		fmt.Fprintf(s.out, "%-14s", util.FormatValueFactor(pt.SourceValue, ""))
		for _, k := range keys {
			fmt.Fprintf(s.out, "%-16s", util.FormatValueFactor(pt.Values[k], unitFor(k)))
		}
		fmt.Fprintln(s.out)
	}
}

func sortedPhasorKeys(phasors map[string]complex128) []string {
	keys := make([]string, 0, len(phasors))
	for k := range phasors {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		vi := strings.HasPrefix(keys[i], "V(")
		vj := strings.HasPrefix(keys[j], "V(")
		if vi != vj {
			return vi
		}
		return keys[i] < keys[j]
	})
	return keys
}

func (s *Session) printAC(res *analysis.ACResult) {
	fmt.Fprintf(s.out, "AC analysis (%d frequency points):\n", len(res.Points))
	for _, pt := range res.Points {
		fmt.Fprintf(s.out, "%-12s", util.FormatFrequency(pt.Freq))
		for _, k := range sortedPhasorKeys(pt.Phasors) {
			p := pt.Phasors[k]
			fmt.Fprintf(s.out, "  %s=%s<%sdeg", k,
				util.FormatMagnitude(cmplx.Abs(p)), util.FormatPhase(phaseDeg(p)))
		}
		fmt.Fprintln(s.out)
	}
}

func (s *Session) printTran(res *analysis.TranResult) {
	fmt.Fprintf(s.out, "Transient analysis (%d rows):\n", len(res.Points))
	if len(res.Points) == 0 {
		return
	}
	keys := sortedKeys(res.Points[0].Values)
	fmt.Fprintf(s.out, "%-14s", "Time")
	for _, k := range keys {
		fmt.Fprintf(s.out, "%-16s", k)
	}
	fmt.Fprintln(s.out)
	for _, pt := range res.Points {
		fmt.Fprintf(s.out, "%-14s", util.FormatValueFactor(pt.Time, "s"))
		for _, k := range keys {
			fmt.Fprintf(s.out, "%-16s", util.FormatValueFactor(pt.Values[k], unitFor(k)))
		}
		fmt.Fprintln(s.out)
	}
}

func phaseDeg(p complex128) float64 {
	return cmplx.Phase(p) * 180.0 / math.Pi
}

// runPrint projects items like V(OUT) or I(R1) out of the last analysis
// result. Unknown items report individually without aborting the rest.
func (s *Session) runPrint(parts []string) error {
	if len(parts) < 2 {
		return fmt.Errorf("%w: .print <V(node)|I(element)> ...", ErrSyntax)
	}
	if s.lastKind == analysis.None {
		fmt.Fprintln(s.out, "No results available. Run an analysis first.")
		return nil
	}

	fmt.Fprintf(s.out, "Results of last %s analysis:\n", s.lastKind)
	for _, raw := range parts[1:] {
		item := strings.ToUpper(raw)
		if !validPrintItem(item) {
			fmt.Fprintf(s.out, "  %s: expected V(node) or I(element)\n", raw)
			continue
		}
		switch s.lastKind {
		case analysis.AC:
			s.printACItem(item)
		default:
			s.printRealItem(item)
		}
	}
	return nil
}

func validPrintItem(item string) bool {
	return len(item) > 3 && strings.HasSuffix(item, ")") &&
		(strings.HasPrefix(item, "V(") || strings.HasPrefix(item, "I("))
}

func (s *Session) printRealItem(item string) {
	var values map[string]float64
	if s.lastKind == analysis.Tran {
		last := s.lastTran.Last()
		if last == nil {
			fmt.Fprintf(s.out, "  %s: no rows emitted\n", item)
			return
		}
		values = last.Values
	} else {
		values = s.lastOP.Values
	}

	if item == fmt.Sprintf("V(%s)", circuit.GroundName) {
		fmt.Fprintf(s.out, "  %s = %s\n", item, util.FormatValueFactor(0, "V"))
		return
	}
	v, ok := values[item]
	if !ok {
		fmt.Fprintf(s.out, "  %s: not available in %s results\n", item, s.lastKind)
		return
	}
	fmt.Fprintf(s.out, "  %s = %s\n", item, util.FormatValueFactor(v, unitFor(item)))
}

func (s *Session) printACItem(item string) {
	last := s.lastAC.Last()
	if last == nil {
		fmt.Fprintf(s.out, "  %s: no sweep points\n", item)
		return
	}
	if item == fmt.Sprintf("V(%s)", circuit.GroundName) {
		fmt.Fprintf(s.out, "  %s = 0<0.0deg at %s\n", item, util.FormatFrequency(last.Freq))
		return
	}
	p, ok := last.Phasors[item]
	if !ok {
		fmt.Fprintf(s.out, "  %s: not available in AC results\n", item)
		return
	}
	fmt.Fprintf(s.out, "  %s = %s<%sdeg at %s\n", item,
		util.FormatMagnitude(cmplx.Abs(p)), util.FormatPhase(phaseDeg(p)),
		util.FormatFrequency(last.Freq))
}

// Usage returns the command summary printed by help and at startup.
func Usage() string {
	return `Commands:
  add <R|C|L> <name> <n1> <n2> <value>         e.g. add R R1 IN OUT 1k
  addsource <V|I> <name> <n1> <n2> <dc>        e.g. addsource V V1 IN GND 10
  addsource <V|I> <name> <n1> <n2> AC <mag> <phase_deg> <freq>
  delete <name>
  .rename node <old> <new>
  .nodes                                       list nodes
  .list [type]                                 list elements
  .mna                                         print the DC MNA system
  .dc                                          DC operating point
  .dc <source> <start> <end> <points>          DC sweep
  .ac <LIN|DEC|OCT> <f0> <f1> <points>         AC sweep
  .tran <tstep> <tstop> [<tstart>] [<tmaxstep>]
  .print <V(node)|I(element)> ...              project last results
  .plot [file.png]                             plot last transient/AC run
  save <file> / open <file>                    persist or replay commands
  help, exit
Values accept unit suffixes F P N U M K MEG G T (case-insensitive).
`
}
