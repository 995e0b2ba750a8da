package geometry

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMissingMaterial indicates a volume description without a material.
var ErrMissingMaterial = errors.New("geometry: material is required")

// UnsupportedVolumeTypeError reports a vol_type outside the supported set.
type UnsupportedVolumeTypeError struct {
	Type      string
	Supported []Kind
}

func (e *UnsupportedVolumeTypeError) Error() string {
	names := make([]string, len(e.Supported))
	for i, k := range e.Supported {
		names[i] = string(k)
	}
	return fmt.Sprintf("geometry: unsupported volume type %q (supported: %s)", e.Type, strings.Join(names, ", "))
}

// ArityError reports a parameter list of the wrong length.
type ArityError struct {
	Field     string
	Signature string
	Got       int
}

func (e *ArityError) Error() string {
	return fmt.Sprintf("geometry: %s expects %s, got %d values", e.Field, e.Signature, e.Got)
}
