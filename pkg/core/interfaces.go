package core

import "math/rand"

// Hittable is implemented by everything a ray can intersect: leaf shapes,
// the BVH itself, and transform/volume wrappers. The rng parameter exists
// because participating media sample a random free path inside Hit.
type Hittable interface {
	// Hit returns the nearest intersection with parameter in (tMin, tMax),
	// or false if there is none.
	Hit(ray Ray, tMin, tMax float64, rng *rand.Rand) (*HitRecord, bool)

	// BoundingBox returns a box enclosing the object's fixed geometry.
	BoundingBox() AABB
}

// Material describes how a surface scatters and emits light
type Material interface {
	// Scatter produces an attenuation color and a scattered ray.
	// Returning false means the ray was absorbed; the tracer then falls
	// back to Emit.
	Scatter(rayIn Ray, hit *HitRecord, rng *rand.Rand) (attenuation Vec3, scattered Ray, ok bool)

	// Emit returns the radiance emitted at the given surface coordinates.
	Emit(u, v float64, p Vec3) Vec3
}

// Texture is a pure (u, v, point) -> color function
type Texture interface {
	Value(u, v float64, p Vec3) Vec3
}

// Logger interface for raytracer logging
type Logger interface {
	Printf(format string, args ...interface{})
}
