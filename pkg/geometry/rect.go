package geometry

import (
	"math/rand"

	"github.com/mu-lambda/mu-lambda-raytracer/pkg/core"
)

// Axis identifies one of the three coordinate axes
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

// axisRect is the axis-generic core shared by the three rectangle kinds:
// a rectangle spanning axes a0 and a1 at a fixed coordinate along the
// remaining plane axis.
type axisRect struct {
	a0, a1 int // in-plane axes
	k      int // fixed axis
	a0Min  float64
	a0Max  float64
	a1Min  float64
	a1Max  float64
	kValue float64
}

func newAxisRect(a0 Axis, a0v0, a0v1 float64, a1 Axis, a1v0, a1v1, kValue float64) axisRect {
	k := 3 - int(a0) - int(a1)
	return axisRect{
		a0:     int(a0),
		a1:     int(a1),
		k:      k,
		a0Min:  min(a0v0, a0v1),
		a0Max:  max(a0v0, a0v1),
		a1Min:  min(a1v0, a1v1),
		a1Max:  max(a1v0, a1v1),
		kValue: kValue,
	}
}

func (r axisRect) hit(ray core.Ray, tMin, tMax float64, material core.Material) (*core.HitRecord, bool) {
	t := (r.kValue - ray.Origin.Component(r.k)) / ray.Direction.Component(r.k)
	if t < tMin || t > tMax {
		return nil, false
	}

	a0v := ray.Origin.Component(r.a0) + t*ray.Direction.Component(r.a0)
	a1v := ray.Origin.Component(r.a1) + t*ray.Direction.Component(r.a1)
	if a0v < r.a0Min || a0v > r.a0Max || a1v < r.a1Min || a1v > r.a1Max {
		return nil, false
	}

	hit := &core.HitRecord{
		T:        t,
		Point:    ray.At(t),
		U:        (a0v - r.a0Min) / (r.a0Max - r.a0Min),
		V:        (a1v - r.a1Min) / (r.a1Max - r.a1Min),
		Material: material,
	}
	var outwardNormal core.Vec3
	outwardNormal.SetComponent(r.k, 1)
	hit.SetFaceNormal(ray, outwardNormal)
	return hit, true
}

func (r axisRect) boundingBox() core.AABB {
	// Thickened along the plane axis so the BVH slab test never sees a
	// zero-thickness box.
	var minCorner, maxCorner core.Vec3
	minCorner.SetComponent(r.a0, r.a0Min)
	minCorner.SetComponent(r.a1, r.a1Min)
	minCorner.SetComponent(r.k, r.kValue-0.001)
	maxCorner.SetComponent(r.a0, r.a0Max)
	maxCorner.SetComponent(r.a1, r.a1Max)
	maxCorner.SetComponent(r.k, r.kValue+0.001)
	return core.NewAABB(minCorner, maxCorner)
}

// XYRect is an axis-aligned rectangle in the plane z = k
type XYRect struct {
	rect     axisRect
	Material core.Material
}

// NewXYRect creates a rectangle spanning [x0,x1]×[y0,y1] at z = k
func NewXYRect(x0, x1, y0, y1, k float64, material core.Material) *XYRect {
	return &XYRect{rect: newAxisRect(AxisX, x0, x1, AxisY, y0, y1, k), Material: material}
}

// Hit implements core.Hittable
func (r *XYRect) Hit(ray core.Ray, tMin, tMax float64, rng *rand.Rand) (*core.HitRecord, bool) {
	return r.rect.hit(ray, tMin, tMax, r.Material)
}

// BoundingBox implements core.Hittable
func (r *XYRect) BoundingBox() core.AABB {
	return r.rect.boundingBox()
}

// XZRect is an axis-aligned rectangle in the plane y = k
type XZRect struct {
	rect     axisRect
	Material core.Material
}

// NewXZRect creates a rectangle spanning [x0,x1]×[z0,z1] at y = k
func NewXZRect(x0, x1, z0, z1, k float64, material core.Material) *XZRect {
	return &XZRect{rect: newAxisRect(AxisX, x0, x1, AxisZ, z0, z1, k), Material: material}
}

// Hit implements core.Hittable
func (r *XZRect) Hit(ray core.Ray, tMin, tMax float64, rng *rand.Rand) (*core.HitRecord, bool) {
	return r.rect.hit(ray, tMin, tMax, r.Material)
}

// BoundingBox implements core.Hittable
func (r *XZRect) BoundingBox() core.AABB {
	return r.rect.boundingBox()
}

// YZRect is an axis-aligned rectangle in the plane x = k
type YZRect struct {
	rect     axisRect
	Material core.Material
}

// NewYZRect creates a rectangle spanning [y0,y1]×[z0,z1] at x = k
func NewYZRect(y0, y1, z0, z1, k float64, material core.Material) *YZRect {
	return &YZRect{rect: newAxisRect(AxisY, y0, y1, AxisZ, z0, z1, k), Material: material}
}

// Hit implements core.Hittable
func (r *YZRect) Hit(ray core.Ray, tMin, tMax float64, rng *rand.Rand) (*core.HitRecord, bool) {
	return r.rect.hit(ray, tMin, tMax, r.Material)
}

// BoundingBox implements core.Hittable
func (r *YZRect) BoundingBox() core.AABB {
	return r.rect.boundingBox()
}
