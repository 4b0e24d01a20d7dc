// Package scene loads a world description from disk. Scene descriptions
// are used to place bodies and constraints into a physics.World without an
// application writing Go construction code for every test or demo layout.
package scene

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/silt-engine/impulse3d/lin"
	"github.com/silt-engine/impulse3d/physics"
)

var shapeKinds = map[string]bool{
	"block": true, "sphere": true, "cylinder": true, "plane": true, "particle": true,
}

var constraintKinds = map[string]physics.ConstraintKind{
	"pointtopoint": physics.KindPointToPoint,
	"hinge":        physics.KindHinge,
	"distance":     physics.KindDistance,
}

// Load reads a yaml scene description and returns a populated World plus a
// lookup from each named body to the BodyId it was assigned.
func Load(data []byte) (world *physics.World, ids map[string]physics.BodyId, err error) {
	var cfg sceneConfig
	if err = yaml.Unmarshal(data, &cfg); err != nil {
		return nil, nil, fmt.Errorf("scene: yaml %w", err)
	}

	gravity := vec3(cfg.Gravity)
	world = physics.NewWorld(physics.Gravity(gravity.X, gravity.Y, gravity.Z))
	ids = make(map[string]physics.BodyId, len(cfg.Bodies))

	for _, bc := range cfg.Bodies {
		if !shapeKinds[bc.Shape] {
			return nil, nil, fmt.Errorf("scene: unsupported body shape %q", bc.Shape)
		}
		body, err := buildBody(&bc)
		if err != nil {
			return nil, nil, err
		}
		id := world.Add(body)
		if bc.Name != "" {
			ids[bc.Name] = id
		}
	}

	for _, cc := range cfg.Constraints {
		kind, ok := constraintKinds[cc.Kind]
		if !ok {
			return nil, nil, fmt.Errorf("scene: unsupported constraint kind %q", cc.Kind)
		}
		body1, ok1 := ids[cc.Body1]
		body2, ok2 := ids[cc.Body2]
		if !ok1 || !ok2 {
			return nil, nil, fmt.Errorf("scene: constraint names unknown body (%q, %q)", cc.Body1, cc.Body2)
		}
		var c *physics.Constraint
		switch kind {
		case physics.KindPointToPoint:
			pivot1, pivot2 := vec3(cc.Pivot1), vec3(cc.Pivot2)
			c = physics.NewPointToPoint(body1, body2, &pivot1, &pivot2)
		case physics.KindHinge:
			pivot1, pivot2 := vec3(cc.Pivot1), vec3(cc.Pivot2)
			axis1, axis2 := vec3(cc.Axis1), vec3(cc.Axis2)
			c = physics.NewHinge(body1, body2, &pivot1, &pivot2, &axis1, &axis2)
		case physics.KindDistance:
			// Distance is center-to-center: pivot1/pivot2 don't apply.
			c = physics.NewDistance(body1, body2, cc.Distance)
		}
		world.Constrain(c)
	}

	return world, ids, nil
}

func buildBody(bc *bodyConfig) (*physics.Body, error) {
	dims := bc.Dimensions
	var body *physics.Body
	switch bc.Shape {
	case "block":
		if len(dims) != 3 {
			return nil, fmt.Errorf("scene: block %q needs 3 half-extents, got %d", bc.Name, len(dims))
		}
		body = physics.Block(dims[0], dims[1], dims[2], bc.Name)
	case "sphere":
		if len(dims) != 1 {
			return nil, fmt.Errorf("scene: sphere %q needs 1 radius, got %d", bc.Name, len(dims))
		}
		body = physics.BodySphere(dims[0], bc.Name)
	case "cylinder":
		if len(dims) != 2 {
			return nil, fmt.Errorf("scene: cylinder %q needs radius and half-height, got %d", bc.Name, len(dims))
		}
		body = physics.Cylinder(dims[0], dims[1], bc.Name)
	case "plane":
		body = physics.PlaneBody(bc.Name)
	case "particle":
		body = physics.ParticleBody(bc.Name)
	}

	if bc.Mass > 0 {
		body.WithBehaviorDynamic(bc.Mass)
	}
	body.WithMaterial(orDefault(bc.Friction, 0.5), bc.Restitution)
	body.WithDamping(bc.LinearDamping, bc.AngularDamping)

	pos := vec3(bc.Position)
	rot := lin.NewQuat()
	if len(bc.Orientation) == 4 {
		axis := lin.NewVec3S(bc.Orientation[0], bc.Orientation[1], bc.Orientation[2])
		rot = lin.NewQuatAa(axis, bc.Orientation[3])
	}
	body.MoveTo(&pos, rot)

	return body, nil
}

func vec3(v []float64) lin.Vec3 {
	var out lin.Vec3
	if len(v) >= 1 {
		out.X = v[0]
	}
	if len(v) >= 2 {
		out.Y = v[1]
	}
	if len(v) >= 3 {
		out.Z = v[2]
	}
	return out
}

func orDefault(v, def float64) float64 {
	if v == 0 {
		return def
	}
	return v
}

// sceneConfig is the yaml-facing shape of a scene description, kept string-
// based like the engine's own shader descriptions so files stay readable by
// hand.
type sceneConfig struct {
	Gravity     []float64        `yaml:"gravity"`
	Bodies      []bodyConfig     `yaml:"bodies"`
	Constraints []constraintConfig `yaml:"constraints"`
}

type bodyConfig struct {
	Name          string    `yaml:"name"`
	Shape         string    `yaml:"shape"` // block, sphere, cylinder, plane, particle
	Dimensions    []float64 `yaml:"dimensions"`
	Mass          float64   `yaml:"mass"` // 0 or omitted means static
	Position      []float64 `yaml:"position"`
	Orientation   []float64 `yaml:"orientation"` // axis (3) + angle (1), radians
	Friction      float64   `yaml:"friction"`
	Restitution   float64   `yaml:"restitution"`
	LinearDamping float64   `yaml:"linear_damping"`
	AngularDamping float64  `yaml:"angular_damping"`
}

type constraintConfig struct {
	Kind     string    `yaml:"kind"` // pointtopoint, hinge, distance
	Body1    string    `yaml:"body1"`
	Body2    string    `yaml:"body2"`
	Pivot1   []float64 `yaml:"pivot1"`
	Pivot2   []float64 `yaml:"pivot2"`
	Axis1    []float64 `yaml:"axis1"`
	Axis2    []float64 `yaml:"axis2"`
	Distance float64   `yaml:"distance"`
}
