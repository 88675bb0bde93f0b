package material

import (
	"math/rand"

	"github.com/mu-lambda/mu-lambda-raytracer/pkg/core"
)

// Metal represents a specular material with optional fuzzy reflection
type Metal struct {
	Albedo core.Vec3
	Fuzz   float64 // 0.0 = perfect mirror, 1.0 = very fuzzy
}

// NewMetal creates a metal material; fuzz is clamped to [0, 1]
func NewMetal(albedo core.Vec3, fuzz float64) *Metal {
	return &Metal{Albedo: albedo, Fuzz: max(0, min(1, fuzz))}
}

// reflect calculates the reflection of v off a surface with normal n
func reflect(v, n core.Vec3) core.Vec3 {
	return v.Subtract(n.Multiply(2 * v.Dot(n)))
}

// Scatter implements core.Material. A perturbed reflection that ends up
// pointing into the surface is absorbed.
func (m *Metal) Scatter(rayIn core.Ray, hit *core.HitRecord, rng *rand.Rand) (core.Vec3, core.Ray, bool) {
	reflected := reflect(rayIn.Direction.Normalize(), hit.Normal)
	if m.Fuzz > 0 {
		reflected = reflected.Add(core.RandomInUnitSphere(rng).Multiply(m.Fuzz))
	}
	scattered := core.NewRay(hit.Point, reflected)
	return m.Albedo, scattered, scattered.Direction.Dot(hit.Normal) > 0
}

// Emit implements core.Material
func (m *Metal) Emit(u, v float64, p core.Vec3) core.Vec3 {
	return core.Vec3{}
}
