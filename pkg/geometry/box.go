package geometry

import (
	"math/rand"

	"github.com/mu-lambda/mu-lambda-raytracer/pkg/core"
)

// Box is an axis-aligned box assembled from six rectangles
type Box struct {
	Min, Max core.Vec3
	sides    *HittableList
}

// NewBox creates a box between two opposite corners
func NewBox(p0, p1 core.Vec3, material core.Material) *Box {
	normalized := core.NewAABB(p0, p1)
	p0, p1 = normalized.Min, normalized.Max

	sides := NewHittableList(
		NewXYRect(p0.X, p1.X, p0.Y, p1.Y, p1.Z, material),
		NewXYRect(p0.X, p1.X, p0.Y, p1.Y, p0.Z, material),
		NewXZRect(p0.X, p1.X, p0.Z, p1.Z, p1.Y, material),
		NewXZRect(p0.X, p1.X, p0.Z, p1.Z, p0.Y, material),
		NewYZRect(p0.Y, p1.Y, p0.Z, p1.Z, p1.X, material),
		NewYZRect(p0.Y, p1.Y, p0.Z, p1.Z, p0.X, material),
	)
	return &Box{Min: p0, Max: p1, sides: sides}
}

// Hit implements core.Hittable
func (b *Box) Hit(ray core.Ray, tMin, tMax float64, rng *rand.Rand) (*core.HitRecord, bool) {
	return b.sides.Hit(ray, tMin, tMax, rng)
}

// BoundingBox implements core.Hittable
func (b *Box) BoundingBox() core.AABB {
	return core.AABB{Min: b.Min, Max: b.Max}
}
