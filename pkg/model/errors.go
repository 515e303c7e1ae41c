package model

import (
	"fmt"

	derrors "github.com/matzehuels/depweb/pkg/errors"
)

// Violation classifies why an input could not be turned into a Graph.
type Violation int

const (
	// UnknownVariable: a clustering item names a variable the matrix lacks.
	UnknownVariable Violation = iota
	// IndexOutOfRange: a matrix cell references a node index outside the variable list.
	IndexOutOfRange
	// DuplicateVariable: the matrix lists the same variable name twice.
	DuplicateVariable
	// DuplicateItem: two clustering items claim the same variable.
	DuplicateItem
	// Ungrouped: no clustering item claims a variable.
	Ungrouped
	// InvalidName: a variable or weight name fails validation.
	InvalidName
	// DuplicateCell: two matrix cells share the same source and destination.
	DuplicateCell
)

func (v Violation) String() string {
	switch v {
	case UnknownVariable:
		return "unknown variable"
	case IndexOutOfRange:
		return "index out of range"
	case DuplicateVariable:
		return "duplicate variable"
	case DuplicateItem:
		return "variable grouped twice"
	case Ungrouped:
		return "variable not grouped"
	case InvalidName:
		return "invalid name"
	case DuplicateCell:
		return "duplicate cell"
	default:
		return "integrity violation"
	}
}

// IntegrityError reports malformed dependency or clustering input.
// It unwraps to a *errors.Error with code INVALID_MODEL.
type IntegrityError struct {
	Violation Violation
	Name      string // Offending variable or weight name, if any
	Index     int    // Offending node index, if any
	Cell      int    // Matrix cell position, or -1
	Cause     error
}

func (e *IntegrityError) Error() string {
	switch e.Violation {
	case IndexOutOfRange:
		return fmt.Sprintf("cell %d: %s: node index %d", e.Cell, e.Violation, e.Index)
	case InvalidName:
		return fmt.Sprintf("%s %q: %v", e.Violation, e.Name, e.Cause)
	case DuplicateCell:
		return fmt.Sprintf("cell %d: %s: %q", e.Cell, e.Violation, e.Name)
	default:
		return fmt.Sprintf("%s: %q", e.Violation, e.Name)
	}
}

// Unwrap exposes the INVALID_MODEL code (and the validation cause, if any)
// to errors.Is, errors.As and derrors.Is.
func (e *IntegrityError) Unwrap() error {
	return derrors.Wrap(derrors.ErrCodeInvalidModel, e.Cause, "%s", e.Violation)
}
