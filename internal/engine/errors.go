package engine

import (
	"errors"
	"fmt"
	"strings"

	"github.com/san-kum/g4basic/internal/geometry"
	"github.com/san-kum/g4basic/internal/nist"
)

// UnknownMaterialError reports a material missing from the engine database.
type UnknownMaterialError struct {
	Name string
	Err  error
}

func (e *UnknownMaterialError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("engine: unknown material %q: %v", e.Name, e.Err)
	}
	return fmt.Sprintf("engine: unknown material %q", e.Name)
}

func (e *UnknownMaterialError) Unwrap() error {
	return e.Err
}

// BackendArgumentError wraps a rejection from the engine with the values
// that were supplied.
type BackendArgumentError struct {
	Op         string
	Target     string
	Signature  string
	Material   string
	Dimensions []float64
	Position   *geometry.Vector
	Err        error
}

func (e *BackendArgumentError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "engine: %s %q rejected", e.Op, e.Target)
	if e.Signature != "" {
		fmt.Fprintf(&b, " (expects %s)", e.Signature)
	}
	if e.Material != "" {
		fmt.Fprintf(&b, " material=%s", e.Material)
	}
	if e.Dimensions != nil {
		fmt.Fprintf(&b, " dimensions=%v", e.Dimensions)
	}
	if e.Position != nil {
		fmt.Fprintf(&b, " position=%s", e.Position)
	}
	fmt.Fprintf(&b, ": %v", e.Err)
	return b.String()
}

func (e *BackendArgumentError) Unwrap() error {
	return e.Err
}

// ResolveMaterial namespaces a material name and looks it up. A name the
// backend does not know yields UnknownMaterialError; any other lookup
// failure is a BackendArgumentError.
func ResolveMaterial(b Backend, name string) (Material, error) {
	canonical := nist.Canonical(name)
	m, err := b.LookupMaterial(canonical)
	if err != nil {
		var unknown *UnknownMaterialError
		if errors.As(err, &unknown) {
			return nil, err
		}
		return nil, &BackendArgumentError{Op: "lookup material", Target: canonical, Material: canonical, Err: err}
	}
	return m, nil
}
