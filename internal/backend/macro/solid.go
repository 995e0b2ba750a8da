package macro

import (
	"fmt"

	"github.com/san-kum/g4basic/internal/geometry"
)

// solid returns the text geometry solid keyword and its parameters, with
// full lengths halved as the reader expects.
func solid(s geometry.Shape) (string, []float64) {
	switch x := s.(type) {
	case geometry.Box:
		return "BOX", []float64{x.DX / 2, x.DY / 2, x.DZ / 2}
	case geometry.Tube:
		return "TUBS", []float64{x.RMin, x.RMax, x.DZ / 2, x.StartPhi, x.DeltaPhi}
	case geometry.Cone:
		return "CONS", []float64{x.RMin1, x.RMax1, x.RMin2, x.RMax2, x.DZ / 2, x.StartPhi, x.DeltaPhi}
	case geometry.Sphere:
		return "SPHERE", []float64{x.RMin, x.RMax, x.StartPhi, x.DeltaPhi, x.StartTheta, x.DeltaTheta}
	case geometry.Orb:
		return "ORB", []float64{x.R}
	default:
		return "", nil
	}
}

// checkSolid applies the parameter constraints the engine's solid
// constructors enforce.
func checkSolid(s geometry.Shape) error {
	switch x := s.(type) {
	case geometry.Box:
		if x.DX <= 0 || x.DY <= 0 || x.DZ <= 0 {
			return fmt.Errorf("box lengths must be positive")
		}
	case geometry.Tube:
		if err := radii(x.RMin, x.RMax); err != nil {
			return err
		}
		if x.DZ <= 0 {
			return fmt.Errorf("tube length must be positive")
		}
		return segment(x.DeltaPhi, 360)
	case geometry.Cone:
		if err := radii(x.RMin1, x.RMax1); err != nil {
			return err
		}
		if err := radii(x.RMin2, x.RMax2); err != nil {
			return err
		}
		if x.DZ <= 0 {
			return fmt.Errorf("cone length must be positive")
		}
		return segment(x.DeltaPhi, 360)
	case geometry.Sphere:
		if err := radii(x.RMin, x.RMax); err != nil {
			return err
		}
		if err := segment(x.DeltaPhi, 360); err != nil {
			return err
		}
		return segment(x.DeltaTheta, 180)
	case geometry.Orb:
		if x.R <= 0 {
			return fmt.Errorf("orb radius must be positive")
		}
	default:
		return fmt.Errorf("unsupported solid %T", s)
	}
	return nil
}

func radii(rmin, rmax float64) error {
	if rmin < 0 || rmax <= rmin {
		return fmt.Errorf("radii must satisfy 0 <= rmin < rmax, got %g, %g", rmin, rmax)
	}
	return nil
}

func segment(delta, limit float64) error {
	if delta <= 0 || delta > limit {
		return fmt.Errorf("angular segment must lie in (0, %g] deg, got %g", limit, delta)
	}
	return nil
}
