package model

import (
	"errors"
	"fmt"
)

// ErrInvalidGeometry is matched by every GeometryError.
var ErrInvalidGeometry = errors.New("invalid panel geometry")

// GeometryError describes a panel that would extend outside the unit square.
// Values are the quantized inputs that were rejected.
type GeometryError struct {
	X, Y          float64
	Width, Height float64
	Reason        string
}

func (e *GeometryError) Error() string {
	return fmt.Sprintf("%v: origin (%.3f, %.3f) size %.3f x %.3f: %s",
		ErrInvalidGeometry, e.X, e.Y, e.Width, e.Height, e.Reason)
}

func (e *GeometryError) Unwrap() error {
	return ErrInvalidGeometry
}
