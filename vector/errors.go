package vector

import "fmt"

// ConfigurationError reports an unusable grid description at operator
// construction: a nil grid, an empty variant, or invalid spacings or
// coordinates.
type ConfigurationError struct {
	Op     string // operator under construction
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("vector: %s: invalid grid configuration: %s", e.Op, e.Reason)
}

// DimensionalityError reports construction of an operator in a number of
// spatial dimensions it is not defined for.
type DimensionalityError struct {
	Op    string
	NDims int // dimensions given
	Want  int // dimensions required
}

func (e *DimensionalityError) Error() string {
	return fmt.Sprintf("vector: %s is only defined in %d dimensions, %d were given",
		e.Op, e.Want, e.NDims)
}

// DimensionMismatchError reports application of an operator to a field whose
// shape does not match the operator's dimensionality, or to a nil field.
type DimensionMismatchError struct {
	Op    string
	Want  string // description of the expected field
	Shape []int  // actual field shape; nil for a nil field
}

func (e *DimensionMismatchError) Error() string {
	if e.Shape == nil {
		return fmt.Sprintf("vector: %s applied to a nil field, want %s", e.Op, e.Want)
	}
	return fmt.Sprintf("vector: %s applied to a field of shape %v, want %s",
		e.Op, e.Shape, e.Want)
}
