package physics

import (
	"fmt"

	"github.com/silt-engine/impulse3d/lin"
)

func dumpV3(v *lin.Vec3) string { return fmt.Sprintf("%2.3f", *v) }

func near(a, b, tol float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d <= tol
}

func near3(v *lin.Vec3, x, y, z, tol float64) bool {
	return near(v.X, x, tol) && near(v.Y, y, tol) && near(v.Z, z, tol)
}
