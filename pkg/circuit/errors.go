package circuit

import "errors"

var (
	// ErrDuplicateName indicates an element or node name is already in use.
	ErrDuplicateName = errors.New("circuit: name already exists")
	// ErrElementNotFound indicates no element carries the given name.
	ErrElementNotFound = errors.New("circuit: element not found")
	// ErrNodeNotFound indicates no node carries the given name.
	ErrNodeNotFound = errors.New("circuit: node not found")
	// ErrInvalidValue indicates a value violates an element invariant:
	// non-positive R/C/L, negative AC magnitude or frequency, empty or
	// identical node names, or a malformed numeric literal.
	ErrInvalidValue = errors.New("circuit: invalid value")
	// ErrUnsupported indicates an unknown element kind or sweep type.
	ErrUnsupported = errors.New("circuit: unsupported")
)
