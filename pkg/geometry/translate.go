package geometry

import (
	"math/rand"

	"github.com/mu-lambda/mu-lambda-raytracer/pkg/core"
)

// Translate re-expresses a ray in the wrapped object's local frame by
// shifting the ray origin, then shifts the resulting hit point back into
// world space.
type Translate struct {
	Inner  core.Hittable
	Offset core.Vec3
}

// NewTranslate wraps an object with a translation
func NewTranslate(inner core.Hittable, offset core.Vec3) *Translate {
	return &Translate{Inner: inner, Offset: offset}
}

// Hit implements core.Hittable
func (tr *Translate) Hit(ray core.Ray, tMin, tMax float64, rng *rand.Rand) (*core.HitRecord, bool) {
	moved := core.NewRay(ray.Origin.Subtract(tr.Offset), ray.Direction)
	hit, ok := tr.Inner.Hit(moved, tMin, tMax, rng)
	if !ok {
		return nil, false
	}

	hit.Point = hit.Point.Add(tr.Offset)
	// Re-orient against the moved ray; only the position changed.
	outward := hit.Normal
	if !hit.FrontFace {
		outward = outward.Negate()
	}
	hit.SetFaceNormal(moved, outward)
	return hit, true
}

// BoundingBox implements core.Hittable
func (tr *Translate) BoundingBox() core.AABB {
	box := tr.Inner.BoundingBox()
	return core.AABB{
		Min: box.Min.Add(tr.Offset),
		Max: box.Max.Add(tr.Offset),
	}
}
