// Package command implements the interactive command layer: tokenizing and
// dispatching commands, value parsing with unit suffixes, result projection
// for .print, and netlist persistence as a replayable command history.
package command

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/edaforge/ispice/pkg/analysis"
	"github.com/edaforge/ispice/pkg/circuit"
	"github.com/edaforge/ispice/pkg/waveform"
)

// Session drives one circuit through the command interface. It holds the
// successful-command history for save/open and the result of the last
// analysis for .print and .plot.
type Session struct {
	ckt         *circuit.Circuit
	out         io.Writer
	history     []string
	defaultPlot string

	lastKind analysis.Kind
	lastOP   *analysis.OPResult
	lastAC   *analysis.ACResult
	lastTran *analysis.TranResult
}

func NewSession(out io.Writer) *Session {
	return &Session{ckt: circuit.New(), out: out, lastKind: analysis.None}
}

// Circuit exposes the session's circuit, mainly for tests.
func (s *Session) Circuit() *circuit.Circuit { return s.ckt }

// SetDefaultPlot sets the file .plot writes to when called without a path.
func (s *Session) SetDefaultPlot(path string) { s.defaultPlot = path }

// LastKind reports which analysis produced the current results.
func (s *Session) LastKind() analysis.Kind { return s.lastKind }

func (s *Session) clearResults() {
	s.lastKind = analysis.None
	s.lastOP = nil
	s.lastAC = nil
	s.lastTran = nil
}

// Execute parses and runs one command line. It returns ErrExit when the
// session should end; any other error leaves the session usable.
func (s *Session) Execute(line string) error {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return nil
	}

	switch strings.ToUpper(parts[0]) {
	case "EXIT":
		return ErrExit
	case "HELP":
		fmt.Fprint(s.out, Usage())
		return nil
	case "ADD":
		return s.runAdd(line, parts)
	case "ADDSOURCE":
		return s.runAddSource(line, parts)
	case "DELETE":
		return s.runDelete(line, parts)
	case ".RENAME":
		return s.runRename(line, parts)
	case ".NODES":
		if len(parts) != 1 {
			return fmt.Errorf("%w: .nodes takes no arguments", ErrSyntax)
		}
		s.printNodes()
		return nil
	case ".LIST":
		return s.runList(parts)
	case ".MNA":
		if len(parts) != 1 {
			return fmt.Errorf("%w: .mna takes no arguments", ErrSyntax)
		}
		return s.runMNA()
	case ".DC":
		return s.runDC(parts)
	case ".AC":
		return s.runAC(parts)
	case ".TRAN":
		return s.runTran(parts)
	case ".PRINT":
		return s.runPrint(parts)
	case ".PLOT":
		return s.runPlot(parts)
	case "SAVE":
		return s.runSave(parts)
	case "OPEN":
		return s.runOpen(parts)
	default:
		return fmt.Errorf("%w: unknown command %q", ErrSyntax, parts[0])
	}
}

func (s *Session) record(line string) {
	s.history = append(s.history, line)
}

func (s *Session) runAdd(line string, parts []string) error {
	if len(parts) != 6 {
		return fmt.Errorf("%w: add <R|C|L> <name> <n1> <n2> <value>", ErrSyntax)
	}
	value, err := ParseValue(parts[5])
	if err != nil {
		return err
	}
	el, err := s.ckt.AddElement(parts[1], parts[2], parts[3], parts[4], value)
	if err != nil {
		return err
	}
	s.record(line)
	fmt.Fprintf(s.out, "Added %s\n", el)
	return nil
}

func (s *Session) runAddSource(line string, parts []string) error {
	switch {
	case len(parts) == 6:
		dc, err := ParseValue(parts[5])
		if err != nil {
			return err
		}
		el, err := s.ckt.AddSource(parts[1], parts[2], parts[3], parts[4], dc)
		if err != nil {
			return err
		}
		s.record(line)
		fmt.Fprintf(s.out, "Added %s\n", el)
		return nil
	case len(parts) == 9 && strings.ToUpper(parts[5]) == "AC":
		mag, err := ParseValue(parts[6])
		if err != nil {
			return err
		}
		phase, err := ParseValue(parts[7])
		if err != nil {
			return err
		}
		freq, err := ParseValue(parts[8])
		if err != nil {
			return err
		}
		el, err := s.ckt.AddACSource(parts[1], parts[2], parts[3], parts[4], mag, phase, freq)
		if err != nil {
			return err
		}
		s.record(line)
		fmt.Fprintf(s.out, "Added %s\n", el)
		return nil
	default:
		return fmt.Errorf("%w: addsource <V|I> <name> <n1> <n2> <dc> or addsource <V|I> <name> <n1> <n2> AC <mag> <phase> <freq>", ErrSyntax)
	}
}

func (s *Session) runDelete(line string, parts []string) error {
	if len(parts) != 2 {
		return fmt.Errorf("%w: delete <name>", ErrSyntax)
	}
	if err := s.ckt.Delete(parts[1]); err != nil {
		return err
	}
	s.record(line)
	fmt.Fprintf(s.out, "Deleted %s\n", strings.ToUpper(parts[1]))
	return nil
}

func (s *Session) runRename(line string, parts []string) error {
	if len(parts) != 4 || strings.ToUpper(parts[1]) != "NODE" {
		return fmt.Errorf("%w: .rename node <old> <new>", ErrSyntax)
	}
	if err := s.ckt.RenameNode(parts[2], parts[3]); err != nil {
		return err
	}
	s.record(line)
	fmt.Fprintf(s.out, "Renamed node %s to %s\n", strings.ToUpper(parts[2]), strings.ToUpper(parts[3]))
	return nil
}

func (s *Session) runList(parts []string) error {
	switch len(parts) {
	case 1:
		s.printList("")
	case 2:
		s.printList(parts[1])
	default:
		return fmt.Errorf("%w: .list [type]", ErrSyntax)
	}
	return nil
}

func (s *Session) runMNA() error {
	if len(s.ckt.Elements()) == 0 {
		fmt.Fprintln(s.out, "Circuit is empty.")
		return nil
	}
	sys, err := analysis.BuildDC(s.ckt)
	if err != nil {
		return err
	}
	s.printSystem(sys)
	return nil
}

func (s *Session) runDC(parts []string) error {
	if len(s.ckt.Elements()) == 0 {
		fmt.Fprintln(s.out, "Circuit is empty. Nothing to analyze.")
		return nil
	}
	switch len(parts) {
	case 1:
		res, err := analysis.OperatingPoint(s.ckt)
		if err != nil {
			s.clearResults()
			return err
		}
		s.clearResults()
		s.lastKind = analysis.DC
		s.lastOP = res
		s.printOP(res)
		return nil
	case 5:
		start, err := ParseValue(parts[2])
		if err != nil {
			return err
		}
		end, err := ParseValue(parts[3])
		if err != nil {
			return err
		}
		n, err := ParseCount(parts[4])
		if err != nil {
			return err
		}
		res, err := analysis.DCSweep(s.ckt, parts[1], start, end, n)
		if err != nil {
			s.clearResults()
			return err
		}
		s.clearResults()
		s.lastKind = analysis.DC
		s.lastOP = res.Last
		s.printSweep(res)
		return nil
	default:
		return fmt.Errorf("%w: .dc or .dc <source> <start> <end> <points>", ErrSyntax)
	}
}

func (s *Session) runAC(parts []string) error {
	if len(parts) != 5 {
		return fmt.Errorf("%w: .ac <LIN|DEC|OCT> <f0> <f1> <points>", ErrSyntax)
	}
	if len(s.ckt.Elements()) == 0 {
		fmt.Fprintln(s.out, "Circuit is empty. Nothing to analyze.")
		return nil
	}
	f0, err := ParseValue(parts[2])
	if err != nil {
		return err
	}
	f1, err := ParseValue(parts[3])
	if err != nil {
		return err
	}
	n, err := ParseCount(parts[4])
	if err != nil {
		return err
	}
	res, err := analysis.ACSweep(s.ckt, parts[1], f0, f1, n)
	if err != nil {
		s.clearResults()
		return err
	}
	s.clearResults()
	s.lastKind = analysis.AC
	s.lastAC = res
	s.printAC(res)
	return nil
}

func (s *Session) runTran(parts []string) error {
	if len(parts) < 3 || len(parts) > 5 {
		return fmt.Errorf("%w: .tran <tstep> <tstop> [<tstart>] [<tmaxstep>]", ErrSyntax)
	}
	if len(s.ckt.Elements()) == 0 {
		fmt.Fprintln(s.out, "Circuit is empty. Nothing to analyze.")
		return nil
	}
	tstep, err := ParseValue(parts[1])
	if err != nil {
		return err
	}
	tstop, err := ParseValue(parts[2])
	if err != nil {
		return err
	}
	tstart := 0.0
	tmax := 0.0
	if len(parts) >= 4 {
		if tstart, err = ParseValue(parts[3]); err != nil {
			return err
		}
	}
	if len(parts) == 5 {
		if tmax, err = ParseValue(parts[4]); err != nil {
			return err
		}
	}
	res, err := analysis.Transient(s.ckt, tstep, tstop, tstart, tmax)
	if err != nil {
		s.clearResults()
		return err
	}
	s.clearResults()
	s.lastKind = analysis.Tran
	s.lastTran = res
	s.printTran(res)
	return nil
}

func (s *Session) runPlot(parts []string) error {
	var path string
	switch {
	case len(parts) == 2:
		path = parts[1]
	case len(parts) == 1 && s.defaultPlot != "":
		path = s.defaultPlot
	default:
		return fmt.Errorf("%w: .plot <file.png>", ErrSyntax)
	}
	switch s.lastKind {
	case analysis.Tran:
		if err := waveform.Transient(s.lastTran, path); err != nil {
			return err
		}
	case analysis.AC:
		if err := waveform.Bode(s.lastAC, path); err != nil {
			return err
		}
	default:
		return fmt.Errorf("%w: no transient or AC results to plot", circuit.ErrUnsupported)
	}
	fmt.Fprintf(s.out, "Wrote %s\n", path)
	return nil
}

func (s *Session) runSave(parts []string) error {
	if len(parts) != 2 {
		return fmt.Errorf("%w: save <file>", ErrSyntax)
	}
	data := strings.Join(s.history, "\n")
	if len(s.history) > 0 {
		data += "\n"
	}
	if err := os.WriteFile(parts[1], []byte(data), 0o644); err != nil {
		return fmt.Errorf("saving circuit: %w", err)
	}
	fmt.Fprintf(s.out, "Saved %d commands to %s\n", len(s.history), parts[1])
	return nil
}

// runOpen resets the session and silently replays the saved command file.
// Replaying the exact sequence of successful commands reproduces the exact
// same element list and index maps.
func (s *Session) runOpen(parts []string) error {
	if len(parts) != 2 {
		return fmt.Errorf("%w: open <file>", ErrSyntax)
	}
	data, err := os.ReadFile(parts[1])
	if err != nil {
		return fmt.Errorf("opening circuit: %w", err)
	}

	s.ckt = circuit.New()
	s.history = nil
	s.clearResults()

	orig := s.out
	s.out = io.Discard
	replayed := 0
	for _, line := range strings.Split(string(data), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if err := s.Execute(line); err == nil {
			replayed++
		}
	}
	s.out = orig
	fmt.Fprintf(s.out, "Opened %s (%d commands)\n", parts[1], replayed)
	return nil
}
