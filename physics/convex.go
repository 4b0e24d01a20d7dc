package physics

import (
	"math"

	"github.com/silt-engine/impulse3d/lin"
)

// Convex is an immutable convex polyhedron: vertices, per-face vertex
// index lists (CCW as seen from outside), per-face outward unit normals,
// and a deduplicated set of unique edge directions used as SAT axes.
// Volume, centroid, and a unit-density inertia tensor are precomputed at
// construction time.
//
// Stored as parallel arrays rather than a half-edge or winged-edge graph —
// narrow phase only ever needs to iterate faces and edges, never walk
// adjacency, so there is nothing a graph structure buys here.
type Convex struct {
	Vertices []lin.Vec3
	Faces    [][]int
	Normals  []lin.Vec3

	// UniqueEdges holds one representative direction per edge equivalence
	// class; directions within Epsilon of parallel (or anti-parallel) are
	// collapsed to a single entry.
	UniqueEdges []lin.Vec3

	Volume      float64
	Centroid    lin.Vec3
	UnitInertia lin.Mat3 // inertia tensor assuming unit density, about Centroid
}

// NewBlock builds a box convex from half-extents hx, hy, hz centered at
// the origin. Negative extents are made positive.
func NewBlock(hx, hy, hz float64) *Convex {
	hx, hy, hz = math.Abs(hx), math.Abs(hy), math.Abs(hz)
	c := &Convex{}
	c.Vertices = []lin.Vec3{
		{X: -hx, Y: -hy, Z: -hz}, {X: hx, Y: -hy, Z: -hz},
		{X: hx, Y: hy, Z: -hz}, {X: -hx, Y: hy, Z: -hz},
		{X: -hx, Y: -hy, Z: hz}, {X: hx, Y: -hy, Z: hz},
		{X: hx, Y: hy, Z: hz}, {X: -hx, Y: hy, Z: hz},
	}
	c.Faces = [][]int{
		{0, 3, 2, 1}, // -z
		{4, 5, 6, 7}, // +z
		{0, 1, 5, 4}, // -y
		{2, 3, 7, 6}, // +y
		{1, 2, 6, 5}, // +x
		{3, 0, 4, 7}, // -x
	}
	c.Normals = []lin.Vec3{
		{X: 0, Y: 0, Z: -1}, {X: 0, Y: 0, Z: 1},
		{X: 0, Y: -1, Z: 0}, {X: 0, Y: 1, Z: 0},
		{X: 1, Y: 0, Z: 0}, {X: -1, Y: 0, Z: 0},
	}
	c.UniqueEdges = []lin.Vec3{
		{X: 1, Y: 0, Z: 0}, {X: 0, Y: 1, Z: 0}, {X: 0, Y: 0, Z: 1},
	}
	c.Volume = hx * 2 * hy * 2 * hz * 2
	c.Centroid = lin.Vec3{}

	lx2, ly2, lz2 := 4*hx*hx, 4*hy*hy, 4*hz*hz
	c.UnitInertia = *lin.NewMat3().SetDiag(
		c.Volume/12*(ly2+lz2),
		c.Volume/12*(lx2+lz2),
		c.Volume/12*(lx2+ly2),
	)
	return c
}

// NewCylinder builds a cylinder convex of the given radius and half-height,
// approximated by a prism with the given number of side segments (minimum
// 3). Its axis is +z. Inertia stored on the shape uses the closed-form
// cylinder formula (see Shape.Inertia override below), not the polyhedral
// approximation — per the spec's cylinder-inertia resolution, the
// polyhedral mass properties computed here are only used when the hull is
// exposed directly via UnsafeConvex.
func NewCylinder(radius, halfHeight float64, segments int) *Convex {
	if segments < 3 {
		segments = 3
	}
	radius, halfHeight = math.Abs(radius), math.Abs(halfHeight)
	c := &Convex{}
	c.Vertices = make([]lin.Vec3, 0, segments*2)
	for i := 0; i < segments; i++ {
		a := 2 * math.Pi * float64(i) / float64(segments)
		x, y := radius*math.Cos(a), radius*math.Sin(a)
		c.Vertices = append(c.Vertices, lin.Vec3{X: x, Y: y, Z: -halfHeight})
	}
	for i := 0; i < segments; i++ {
		a := 2 * math.Pi * float64(i) / float64(segments)
		x, y := radius*math.Cos(a), radius*math.Sin(a)
		c.Vertices = append(c.Vertices, lin.Vec3{X: x, Y: y, Z: halfHeight})
	}

	bottom := make([]int, segments)
	top := make([]int, segments)
	for i := 0; i < segments; i++ {
		bottom[segments-1-i] = i // CCW viewed from -z (outward normal -z)
		top[i] = segments + i    // CCW viewed from +z
	}
	c.Faces = append(c.Faces, bottom, top)
	c.Normals = append(c.Normals, lin.Vec3{X: 0, Y: 0, Z: -1}, lin.Vec3{X: 0, Y: 0, Z: 1})

	for i := 0; i < segments; i++ {
		j := (i + 1) % segments
		c.Faces = append(c.Faces, []int{i, j, segments + j, segments + i})
		a := 2 * math.Pi * (float64(i) + 0.5) / float64(segments)
		c.Normals = append(c.Normals, lin.Vec3{X: math.Cos(a), Y: math.Sin(a), Z: 0})
	}

	c.UniqueEdges = make([]lin.Vec3, 0, segments+1)
	for i := 0; i < segments; i++ {
		a := 2 * math.Pi * float64(i) / float64(segments)
		c.UniqueEdges = append(c.UniqueEdges, lin.Vec3{X: -math.Sin(a), Y: math.Cos(a), Z: 0})
	}
	c.UniqueEdges = append(c.UniqueEdges, lin.Vec3{X: 0, Y: 0, Z: 1})

	c.Volume = math.Pi * radius * radius * (2 * halfHeight)
	c.Centroid = lin.Vec3{}
	radial := 0.25 * c.Volume * radius * radius
	axial := (1.0 / 3.0) * c.Volume * halfHeight * halfHeight
	c.UnitInertia = *lin.NewMat3().SetDiag(radial+axial, radial+axial, 2*radial)
	return c
}

// NewUnsafeConvex builds a convex hull from caller-supplied geometry: CCW
// (viewed from outside) vertex-index faces over the given vertex list.
// Volume, centroid, and inertia are derived by decomposing the hull into
// tetrahedra fanned from the origin, so the caller must supply a
// geometrically valid convex polyhedron — invalid input (non-convex,
// clockwise winding) silently produces wrong mass properties rather than
// failing, matching the rest of the engine's degenerate-input handling.
func NewUnsafeConvex(vertices []lin.Vec3, faces [][]int) *Convex {
	c := &Convex{Vertices: vertices, Faces: faces}
	c.Normals = make([]lin.Vec3, len(faces))
	for i, face := range faces {
		c.Normals[i] = *faceNormal(vertices, face)
	}
	c.UniqueEdges = uniqueEdges(vertices, faces)
	c.Volume, c.Centroid, c.UnitInertia = polyhedralMassProperties(vertices, faces)
	return c
}

// faceNormal returns the outward unit normal of a CCW face via Newell's
// method, robust to mildly non-planar input.
func faceNormal(vertices []lin.Vec3, face []int) *lin.Vec3 {
	n := lin.NewVec3()
	for i := range face {
		a := vertices[face[i]]
		b := vertices[face[(i+1)%len(face)]]
		n.X += (a.Y - b.Y) * (a.Z + b.Z)
		n.Y += (a.Z - b.Z) * (a.X + b.X)
		n.Z += (a.X - b.X) * (a.Y + b.Y)
	}
	return n.Unit()
}

// uniqueEdges collects one representative per edge direction, collapsing
// entries parallel (or anti-parallel) within Epsilon.
func uniqueEdges(vertices []lin.Vec3, faces [][]int) []lin.Vec3 {
	var edges []lin.Vec3
	for _, face := range faces {
		for i := range face {
			a := vertices[face[i]]
			b := vertices[face[(i+1)%len(face)]]
			dir := lin.NewVec3().Sub(&b, &a)
			if dir.AeqZ() {
				continue
			}
			dir.Unit()
			if dir.X < 0 || (dir.X == 0 && dir.Y < 0) || (dir.X == 0 && dir.Y == 0 && dir.Z < 0) {
				dir.Neg(dir)
			}
			edges = appendUniqueEdge(edges, *dir)
		}
	}
	return edges
}

func appendUniqueEdge(edges []lin.Vec3, dir lin.Vec3) []lin.Vec3 {
	for i := range edges {
		if edges[i].Aeq(&dir) {
			return edges
		}
	}
	return append(edges, dir)
}

// polyhedralMassProperties computes volume, centroid, and the unit-density
// inertia tensor of a convex polyhedron by summing signed tetrahedra
// fanned from the origin to each face's triangle fan. Standard technique
// (e.g. Mirtich, "Fast and Accurate Computation of Polyhedral Mass
// Properties"), simplified for the convex case where no face needs
// triangulating beyond a fan from its first vertex.
func polyhedralMassProperties(vertices []lin.Vec3, faces [][]int) (volume float64, centroid lin.Vec3, inertia lin.Mat3) {
	var ix, iy, iz, ixy, iyz, izx float64
	var cx, cy, cz float64

	for _, face := range faces {
		if len(face) < 3 {
			continue
		}
		p0 := vertices[face[0]]
		for i := 1; i < len(face)-1; i++ {
			p1 := vertices[face[i]]
			p2 := vertices[face[i+1]]

			det := p0.X*(p1.Y*p2.Z-p1.Z*p2.Y) - p0.Y*(p1.X*p2.Z-p1.Z*p2.X) + p0.Z*(p1.X*p2.Y-p1.Y*p2.X)
			tetVol := det / 6

			volume += tetVol
			cx += tetVol * (p0.X + p1.X + p2.X) / 4
			cy += tetVol * (p0.Y + p1.Y + p2.Y) / 4
			cz += tetVol * (p0.Z + p1.Z + p2.Z) / 4

			ix += tetVol / 10 * sumSqr(p0.X, p1.X, p2.X)
			iy += tetVol / 10 * sumSqr(p0.Y, p1.Y, p2.Y)
			iz += tetVol / 10 * sumSqr(p0.Z, p1.Z, p2.Z)
			ixy += tetVol / 20 * sumCross(p0.X, p1.X, p2.X, p0.Y, p1.Y, p2.Y)
			iyz += tetVol / 20 * sumCross(p0.Y, p1.Y, p2.Y, p0.Z, p1.Z, p2.Z)
			izx += tetVol / 20 * sumCross(p0.Z, p1.Z, p2.Z, p0.X, p1.X, p2.X)
		}
	}

	if math.Abs(volume) < lin.Epsilon {
		return 0, lin.Vec3{}, lin.Mat3{}
	}
	centroid = lin.Vec3{X: cx / volume, Y: cy / volume, Z: cz / volume}

	// Shift second moments from the origin to the centroid (parallel axis
	// theorem in reverse) before assembling the tensor.
	ixc := iy + iz - volume*(centroid.Y*centroid.Y+centroid.Z*centroid.Z)
	iyc := ix + iz - volume*(centroid.X*centroid.X+centroid.Z*centroid.Z)
	izc := ix + iy - volume*(centroid.X*centroid.X+centroid.Y*centroid.Y)
	ixyc := -(ixy - volume*centroid.X*centroid.Y)
	iyzc := -(iyz - volume*centroid.Y*centroid.Z)
	izxc := -(izx - volume*centroid.Z*centroid.X)

	inertia = lin.Mat3{
		Xx: ixc, Xy: ixyc, Xz: izxc,
		Yx: ixyc, Yy: iyc, Yz: iyzc,
		Zx: izxc, Zy: iyzc, Zz: izc,
	}
	if volume < 0 {
		volume = -volume
	}
	return volume, centroid, inertia
}

func sumSqr(a, b, c float64) float64 { return a*a + b*b + c*c + a*b + b*c + c*a }
func sumCross(a0, a1, a2, b0, b1, b2 float64) float64 {
	return 2*a0*b0 + 2*a1*b1 + 2*a2*b2 + a0*b1 + a1*b0 + a1*b2 + a2*b1 + a2*b0 + a0*b2
}
