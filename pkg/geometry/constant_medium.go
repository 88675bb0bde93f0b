package geometry

import (
	"math"
	"math/rand"

	"github.com/mu-lambda/mu-lambda-raytracer/pkg/core"
	"github.com/mu-lambda/mu-lambda-raytracer/pkg/material"
)

// ConstantMedium turns any bounded object into a participating medium of
// uniform density: a ray entering the boundary scatters after a random
// exponentially-distributed free path, or passes through untouched when
// the sampled path outruns the boundary.
type ConstantMedium struct {
	Boundary      core.Hittable
	phaseFunction core.Material
	negInvDensity float64
}

// NewConstantMedium creates a medium bounded by the given object
func NewConstantMedium(boundary core.Hittable, density float64, tex core.Texture) *ConstantMedium {
	return &ConstantMedium{
		Boundary:      boundary,
		phaseFunction: material.NewIsotropic(tex),
		negInvDensity: -1.0 / density,
	}
}

// NewConstantMediumFromColor creates a medium with a solid-color albedo
func NewConstantMediumFromColor(boundary core.Hittable, density float64, albedo core.Vec3) *ConstantMedium {
	return NewConstantMedium(boundary, density, material.NewSolidColor(albedo))
}

// Hit implements core.Hittable
func (cm *ConstantMedium) Hit(ray core.Ray, tMin, tMax float64, rng *rand.Rand) (*core.HitRecord, bool) {
	// Entry and exit parameters against the boundary surface.
	h1, ok := cm.Boundary.Hit(ray, math.Inf(-1), math.Inf(1), rng)
	if !ok {
		return nil, false
	}
	h2, ok := cm.Boundary.Hit(ray, h1.T+0.001, math.Inf(1), rng)
	if !ok {
		return nil, false
	}

	t1 := math.Max(h1.T, tMin)
	t2 := math.Min(h2.T, tMax)
	if t1 >= t2 {
		return nil, false
	}
	t1 = math.Max(t1, 0)

	rayScale := ray.Direction.Length()
	distanceInside := (t2 - t1) * rayScale
	hitDistance := cm.negInvDensity * math.Log(rng.Float64())
	if hitDistance > distanceInside {
		return nil, false
	}

	t := t1 + hitDistance/rayScale
	return &core.HitRecord{
		T:     t,
		Point: ray.At(t),
		// Scattering is direction-independent; normal and face are arbitrary.
		Normal:    core.NewVec3(1, 0, 0),
		FrontFace: true,
		Material:  cm.phaseFunction,
	}, true
}

// BoundingBox implements core.Hittable
func (cm *ConstantMedium) BoundingBox() core.AABB {
	return cm.Boundary.BoundingBox()
}
