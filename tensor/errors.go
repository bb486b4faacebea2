package tensor

import (
	"github.com/pkg/errors"
)

var (
	// ErrShapeMismatch is returned when values do not fit the requested shape.
	ErrShapeMismatch = errors.New("shape mismatch")
	// ErrIrregularNesting is returned when a nested slice is jagged, too
	// shallow or too deep for its shape.
	ErrIrregularNesting = errors.New("dimension error")
	// ErrIndexOutOfRange is returned by CheckIndex.
	ErrIndexOutOfRange = errors.New("index out of range")
)
