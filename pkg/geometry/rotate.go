package geometry

import (
	"math"
	"math/rand"

	"github.com/mu-lambda/mu-lambda-raytracer/pkg/core"
)

// Rotate rotates the wrapped object about one coordinate axis. The
// incoming ray is rotated into object space, the resulting hit point and
// normal are rotated back, and the bounding box is precomputed once at
// construction from the rotated corners of the inner box.
type Rotate struct {
	inner    core.Hittable
	a1       int // rotation axis
	sinTheta float64
	cosTheta float64
	bounds   core.AABB
}

// NewRotate wraps an object with a rotation of angle degrees about axis
func NewRotate(inner core.Hittable, axis Axis, angleDegrees float64) *Rotate {
	theta := angleDegrees * math.Pi / 180.0
	r := &Rotate{
		inner:    inner,
		a1:       int(axis),
		sinTheta: math.Sin(theta),
		cosTheta: math.Cos(theta),
	}

	// Enclose all 8 rotated corners of the inner box.
	box := inner.BoundingBox()
	minCorner := core.NewVec3(math.Inf(1), math.Inf(1), math.Inf(1))
	maxCorner := core.NewVec3(math.Inf(-1), math.Inf(-1), math.Inf(-1))
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			for k := 0; k < 2; k++ {
				corner := core.NewVec3(
					pick(i, box.Min.X, box.Max.X),
					pick(j, box.Min.Y, box.Max.Y),
					pick(k, box.Min.Z, box.Max.Z),
				)
				rotated := r.rotate(corner)
				for axis := 0; axis < 3; axis++ {
					minCorner.SetComponent(axis, math.Min(minCorner.Component(axis), rotated.Component(axis)))
					maxCorner.SetComponent(axis, math.Max(maxCorner.Component(axis), rotated.Component(axis)))
				}
			}
		}
	}
	r.bounds = core.NewAABB(minCorner, maxCorner)
	return r
}

func pick(i int, lo, hi float64) float64 {
	if i == 1 {
		return hi
	}
	return lo
}

func (r *Rotate) a0() int { return (r.a1 + 2) % 3 }
func (r *Rotate) a2() int { return (r.a1 + 1) % 3 }

// rotate transforms from object space to world space
func (r *Rotate) rotate(v core.Vec3) core.Vec3 {
	a0, a2 := r.a0(), r.a2()
	result := v
	result.SetComponent(a0, r.cosTheta*v.Component(a0)+r.sinTheta*v.Component(a2))
	result.SetComponent(a2, -r.sinTheta*v.Component(a0)+r.cosTheta*v.Component(a2))
	return result
}

// rotateBack transforms from world space to object space
func (r *Rotate) rotateBack(v core.Vec3) core.Vec3 {
	a0, a2 := r.a0(), r.a2()
	result := v
	result.SetComponent(a0, r.cosTheta*v.Component(a0)-r.sinTheta*v.Component(a2))
	result.SetComponent(a2, r.sinTheta*v.Component(a0)+r.cosTheta*v.Component(a2))
	return result
}

// Hit implements core.Hittable
func (r *Rotate) Hit(ray core.Ray, tMin, tMax float64, rng *rand.Rand) (*core.HitRecord, bool) {
	rotated := core.NewRay(r.rotateBack(ray.Origin), r.rotateBack(ray.Direction))
	hit, ok := r.inner.Hit(rotated, tMin, tMax, rng)
	if !ok {
		return nil, false
	}

	hit.Point = r.rotate(hit.Point)
	outward := hit.Normal
	if !hit.FrontFace {
		outward = outward.Negate()
	}
	hit.SetFaceNormal(rotated, r.rotate(outward))
	return hit, true
}

// BoundingBox implements core.Hittable
func (r *Rotate) BoundingBox() core.AABB {
	return r.bounds
}
