package ga

import (
	"errors"
	"fmt"
)

// ErrConfiguration marks invalid run parameters or misuse of the operators.
// It is fatal: callers abort instead of continuing with a partial generation.
var ErrConfiguration = errors.New("configuration error")

// ErrShapeMismatch is returned when two WeightSets that must share a layout do not.
var ErrShapeMismatch = fmt.Errorf("%w: weight set shape mismatch", ErrConfiguration)
