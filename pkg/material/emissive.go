package material

import (
	"math/rand"

	"github.com/mu-lambda/mu-lambda-raytracer/pkg/core"
)

// DiffuseLight is a light-emitting material. It never scatters; the
// tracer picks up its emission when Scatter reports absorption.
type DiffuseLight struct {
	Emission core.Texture
}

// NewDiffuseLight creates a light with a fixed radiance
func NewDiffuseLight(emission core.Vec3) *DiffuseLight {
	return &DiffuseLight{Emission: NewSolidColor(emission)}
}

// NewTexturedDiffuseLight creates a light with texture-driven radiance
func NewTexturedDiffuseLight(emission core.Texture) *DiffuseLight {
	return &DiffuseLight{Emission: emission}
}

// Scatter implements core.Material
func (dl *DiffuseLight) Scatter(rayIn core.Ray, hit *core.HitRecord, rng *rand.Rand) (core.Vec3, core.Ray, bool) {
	return core.Vec3{}, core.Ray{}, false
}

// Emit implements core.Material
func (dl *DiffuseLight) Emit(u, v float64, p core.Vec3) core.Vec3 {
	return dl.Emission.Value(u, v, p)
}
