package circuit_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edaforge/ispice/pkg/circuit"
	"github.com/edaforge/ispice/pkg/element"
	"github.com/edaforge/ispice/pkg/matrix"
)

func TestEmptyCircuit(t *testing.T) {
	c := circuit.New()
	assert.Equal(t, []string{"GND"}, c.Nodes())
	assert.Equal(t, 0, c.NumNodes())
	assert.Equal(t, 0, c.Size())
}

func TestAddElementValidation(t *testing.T) {
	c := circuit.New()

	t.Run("valid", func(t *testing.T) {
		el, err := c.AddElement("r", "r1", "in", "out", 1000)
		require.NoError(t, err)
		assert.Equal(t, "R1", el.Name(), "names normalise to upper case")
		assert.Equal(t, "IN", el.Node1())
	})
	t.Run("duplicate name", func(t *testing.T) {
		_, err := c.AddElement("R", "R1", "A", "B", 1)
		require.ErrorIs(t, err, circuit.ErrDuplicateName)
	})
	t.Run("duplicate across kinds", func(t *testing.T) {
		_, err := c.AddSource("V", "R1", "A", "GND", 5)
		require.ErrorIs(t, err, circuit.ErrDuplicateName)
	})
	t.Run("identical nodes", func(t *testing.T) {
		_, err := c.AddElement("R", "R2", "A", "a", 1)
		require.ErrorIs(t, err, circuit.ErrInvalidValue)
	})
	t.Run("non-positive value", func(t *testing.T) {
		_, err := c.AddElement("C", "C1", "A", "GND", 0)
		require.ErrorIs(t, err, circuit.ErrInvalidValue)
		_, err = c.AddElement("L", "L1", "A", "GND", -1e-3)
		require.ErrorIs(t, err, circuit.ErrInvalidValue)
	})
	t.Run("unknown kind", func(t *testing.T) {
		_, err := c.AddElement("Q", "Q1", "A", "GND", 1)
		require.ErrorIs(t, err, circuit.ErrUnsupported)
	})
	t.Run("source kind via AddElement", func(t *testing.T) {
		_, err := c.AddElement("V", "V9", "A", "GND", 1)
		require.ErrorIs(t, err, circuit.ErrUnsupported)
	})
}

// Node rows must track the sorted non-GND node names and branch rows must
// follow in element insertion order, after any mutation.
func TestIndexMapsStayConsistent(t *testing.T) {
	c := circuit.New()
	_, err := c.AddSource("V", "V1", "IN", "GND", 10)
	require.NoError(t, err)
	_, err = c.AddElement("R", "R1", "IN", "OUT", 1000)
	require.NoError(t, err)
	_, err = c.AddElement("L", "L1", "OUT", "GND", 1e-3)
	require.NoError(t, err)

	assert.Equal(t, []string{"GND", "IN", "OUT"}, c.Nodes())
	assert.Equal(t, matrix.Ground, c.NodeIndex()["GND"])
	assert.Equal(t, 0, c.NodeIndex()["IN"])
	assert.Equal(t, 1, c.NodeIndex()["OUT"])
	assert.Equal(t, 2, c.BranchIndex()["V1"])
	assert.Equal(t, 3, c.BranchIndex()["L1"])
	assert.Equal(t, 4, c.Size())

	// Deleting the source renumbers the inductor's branch row.
	require.NoError(t, c.Delete("V1"))
	assert.Equal(t, 2, c.BranchIndex()["L1"])
	assert.Equal(t, 3, c.Size())
	l, ok := c.Find("L1").(element.BranchElement)
	require.True(t, ok)
	assert.Equal(t, 2, l.BranchIndex(), "element sees the renumbered row")

	// Deleting the resistor drops the now-unreferenced IN node.
	require.NoError(t, c.Delete("R1"))
	assert.Equal(t, []string{"GND", "OUT"}, c.Nodes())
	assert.Equal(t, 0, c.NodeIndex()["OUT"])
}

func TestDeleteUnknown(t *testing.T) {
	c := circuit.New()
	err := c.Delete("R1")
	require.ErrorIs(t, err, circuit.ErrElementNotFound)
}

func TestFindIsCaseInsensitive(t *testing.T) {
	c := circuit.New()
	_, err := c.AddElement("R", "R1", "A", "GND", 1)
	require.NoError(t, err)
	assert.NotNil(t, c.Find("r1"))
	assert.Nil(t, c.Find("R2"))
}

func TestRenameNode(t *testing.T) {
	c := circuit.New()
	_, err := c.AddSource("V", "V1", "IN", "GND", 5)
	require.NoError(t, err)
	_, err = c.AddElement("R", "R1", "IN", "OUT", 100)
	require.NoError(t, err)

	t.Run("ok", func(t *testing.T) {
		require.NoError(t, c.RenameNode("in", "vdd"))
		assert.False(t, c.HasNode("IN"))
		assert.True(t, c.HasNode("VDD"))
		assert.Equal(t, "VDD", c.Find("V1").Node1())
		assert.Equal(t, "VDD", c.Find("R1").Node1())
	})
	t.Run("missing node", func(t *testing.T) {
		err := c.RenameNode("NOPE", "X")
		require.ErrorIs(t, err, circuit.ErrNodeNotFound)
	})
	t.Run("collision", func(t *testing.T) {
		err := c.RenameNode("VDD", "OUT")
		require.ErrorIs(t, err, circuit.ErrDuplicateName)
		assert.Contains(t, err.Error(), "Node name")
		assert.True(t, c.HasNode("VDD"), "failed rename leaves the circuit untouched")
	})
}

func TestACSourceValidation(t *testing.T) {
	c := circuit.New()
	_, err := c.AddACSource("V", "V1", "IN", "GND", -1, 0, 1000)
	require.ErrorIs(t, err, circuit.ErrInvalidValue)
	_, err = c.AddACSource("I", "I1", "IN", "GND", 1, 0, -5)
	require.ErrorIs(t, err, circuit.ErrInvalidValue)
	_, err = c.AddACSource("V", "V1", "IN", "GND", 1, -45, 1000)
	require.NoError(t, err, "negative phase is fine")
}
