// Package circuit owns the element list and the MNA index maps. Every
// mutation (add, delete, rename) rebuilds the node set and the node and
// branch index maps from scratch, so they are never stale relative to the
// element list.
package circuit

import (
	"fmt"
	"sort"
	"strings"

	"github.com/edaforge/ispice/pkg/element"
	"github.com/edaforge/ispice/pkg/matrix"
)

// GroundName is the distinguished node held at 0 V. It always exists and
// never receives a matrix row.
const GroundName = "GND"

// Circuit is the netlist authority: it owns the elements and maintains the
// node and branch-current index maps. A single Circuit is driven by one
// caller at a time; nothing here is safe for concurrent use.
type Circuit struct {
	elements    []element.Element
	nodes       []string       // sorted, GND included
	nodeIndex   map[string]int // GND -> matrix.Ground, others 0..K-1
	branchIndex map[string]int // branch elements, K..K+M-1 in element order
}

func New() *Circuit {
	c := &Circuit{}
	c.rebuild()
	return c
}

// Elements returns the element list in insertion order.
func (c *Circuit) Elements() []element.Element { return c.elements }

// Nodes returns the sorted node names, GND included.
func (c *Circuit) Nodes() []string { return c.nodes }

// NodeIndex maps node names to matrix rows; GND maps to matrix.Ground.
func (c *Circuit) NodeIndex() map[string]int { return c.nodeIndex }

// BranchIndex maps branch-element names to their branch-current rows.
func (c *Circuit) BranchIndex() map[string]int { return c.branchIndex }

// NumNodes returns K, the number of non-GND nodes.
func (c *Circuit) NumNodes() int { return len(c.nodes) - 1 }

// Size returns the MNA dimension K+M.
func (c *Circuit) Size() int { return c.NumNodes() + len(c.branchIndex) }

// Find returns the element with the given name (case-insensitive), or nil.
func (c *Circuit) Find(name string) element.Element {
	upper := strings.ToUpper(name)
	for _, el := range c.elements {
		if el.Name() == upper {
			return el
		}
	}
	return nil
}

// HasNode reports whether a node with the given name exists.
func (c *Circuit) HasNode(name string) bool {
	_, ok := c.nodeIndex[strings.ToUpper(name)]
	return ok
}

// AddElement creates and adds a passive element. kind is R, C or L (single
// letter or spelled out, case-insensitive); value must be strictly positive.
func (c *Circuit) AddElement(kind, name, node1, node2 string, value float64) (element.Element, error) {
	name, node1, node2, err := c.checkNew(name, node1, node2, kind)
	if err != nil {
		return nil, err
	}

	var el element.Element
	switch strings.ToUpper(kind) {
	case "R", "RESISTOR":
		if value <= 0 {
			return nil, fmt.Errorf("%w: resistance must be positive, got %g", ErrInvalidValue, value)
		}
		el = element.NewResistor(name, node1, node2, value)
	case "C", "CAPACITOR":
		if value <= 0 {
			return nil, fmt.Errorf("%w: capacitance must be positive, got %g", ErrInvalidValue, value)
		}
		el = element.NewCapacitor(name, node1, node2, value)
	case "L", "INDUCTOR":
		if value <= 0 {
			return nil, fmt.Errorf("%w: inductance must be positive, got %g", ErrInvalidValue, value)
		}
		el = element.NewInductor(name, node1, node2, value)
	default:
		return nil, fmt.Errorf("%w: element type %q (use addsource for V/I)", ErrUnsupported, kind)
	}

	c.elements = append(c.elements, el)
	c.rebuild()
	return el, nil
}

// AddSource creates and adds an independent DC source. kind is V or I.
func (c *Circuit) AddSource(kind, name, node1, node2 string, dc float64) (element.Element, error) {
	name, node1, node2, err := c.checkNew(name, node1, node2, kind)
	if err != nil {
		return nil, err
	}

	var el element.Element
	switch strings.ToUpper(kind) {
	case "V", "VOLTAGESOURCE":
		el = element.NewDCVoltageSource(name, node1, node2, dc)
	case "I", "CURRENTSOURCE":
		el = element.NewDCCurrentSource(name, node1, node2, dc)
	default:
		return nil, fmt.Errorf("%w: source type %q (use add for R/C/L)", ErrUnsupported, kind)
	}

	c.elements = append(c.elements, el)
	c.rebuild()
	return el, nil
}

// AddACSource creates and adds an independent AC source described by
// magnitude, phase in degrees and frequency in Hz.
func (c *Circuit) AddACSource(kind, name, node1, node2 string, mag, phaseDeg, freq float64) (element.Element, error) {
	name, node1, node2, err := c.checkNew(name, node1, node2, kind)
	if err != nil {
		return nil, err
	}
	if mag < 0 {
		return nil, fmt.Errorf("%w: AC magnitude must not be negative, got %g", ErrInvalidValue, mag)
	}
	if freq < 0 {
		return nil, fmt.Errorf("%w: AC frequency must not be negative, got %g", ErrInvalidValue, freq)
	}

	var el element.Element
	switch strings.ToUpper(kind) {
	case "V", "VOLTAGESOURCE":
		el = element.NewACVoltageSource(name, node1, node2, mag, phaseDeg, freq)
	case "I", "CURRENTSOURCE":
		el = element.NewACCurrentSource(name, node1, node2, mag, phaseDeg, freq)
	default:
		return nil, fmt.Errorf("%w: source type %q (use add for R/C/L)", ErrUnsupported, kind)
	}

	c.elements = append(c.elements, el)
	c.rebuild()
	return el, nil
}

// Delete removes the named element and rebuilds the index maps.
func (c *Circuit) Delete(name string) error {
	upper := strings.ToUpper(name)
	for i, el := range c.elements {
		if el.Name() == upper {
			c.elements = append(c.elements[:i], c.elements[i+1:]...)
			c.rebuild()
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrElementNotFound, name)
}

// RenameNode replaces every occurrence of oldName in the elements with
// newName. Renaming onto an existing, different node fails and leaves the
// circuit untouched.
func (c *Circuit) RenameNode(oldName, newName string) error {
	oldUpper := strings.ToUpper(oldName)
	newUpper := strings.ToUpper(newName)
	if newUpper == "" {
		return fmt.Errorf("%w: node name cannot be empty", ErrInvalidValue)
	}
	if _, ok := c.nodeIndex[oldUpper]; !ok {
		return fmt.Errorf("%w: %q", ErrNodeNotFound, oldName)
	}
	if _, ok := c.nodeIndex[newUpper]; ok && newUpper != oldUpper {
		return fmt.Errorf("%w: %q (Node name)", ErrDuplicateName, newUpper)
	}

	for _, el := range c.elements {
		if el.Node1() == oldUpper {
			el.SetNode1(newUpper)
		}
		if el.Node2() == oldUpper {
			el.SetNode2(newUpper)
		}
	}
	c.rebuild()
	return nil
}

// checkNew normalises names to upper case and validates the invariants
// shared by every add operation.
func (c *Circuit) checkNew(name, node1, node2, kind string) (string, string, string, error) {
	name = strings.ToUpper(name)
	node1 = strings.ToUpper(node1)
	node2 = strings.ToUpper(node2)
	if name == "" || node1 == "" || node2 == "" {
		return "", "", "", fmt.Errorf("%w: element name and nodes cannot be empty", ErrInvalidValue)
	}
	if node1 == node2 {
		return "", "", "", fmt.Errorf("%w: element nodes cannot be identical", ErrInvalidValue)
	}
	if c.Find(name) != nil {
		return "", "", "", fmt.Errorf("%w: %q (%s)", ErrDuplicateName, name, kind)
	}
	return name, node1, node2, nil
}

// rebuild recomputes the node set and both index maps from the element list
// and pushes the resolved indices into every element. Node rows go to the
// sorted non-GND nodes as 0..K-1; branch rows follow as K..K+M-1 in element
// order.
func (c *Circuit) rebuild() {
	set := map[string]struct{}{GroundName: {}}
	for _, el := range c.elements {
		set[el.Node1()] = struct{}{}
		set[el.Node2()] = struct{}{}
	}

	c.nodes = make([]string, 0, len(set))
	for n := range set {
		c.nodes = append(c.nodes, n)
	}
	sort.Strings(c.nodes)

	c.nodeIndex = make(map[string]int, len(c.nodes))
	idx := 0
	for _, n := range c.nodes {
		if n == GroundName {
			c.nodeIndex[n] = matrix.Ground
			continue
		}
		c.nodeIndex[n] = idx
		idx++
	}

	c.branchIndex = make(map[string]int)
	branch := idx
	for _, el := range c.elements {
		el.SetNodeIndices(c.nodeIndex[el.Node1()], c.nodeIndex[el.Node2()])
		if be, ok := el.(element.BranchElement); ok {
			c.branchIndex[el.Name()] = branch
			be.SetBranchIndex(branch)
			branch++
		}
	}
}
