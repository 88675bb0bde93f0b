package material

import (
	"math/rand"

	"github.com/mu-lambda/mu-lambda-raytracer/pkg/core"
)

// Lambertian represents a perfectly diffuse material
type Lambertian struct {
	Albedo core.Texture
}

// NewLambertian creates a lambertian material with a solid color
func NewLambertian(albedo core.Vec3) *Lambertian {
	return &Lambertian{Albedo: NewSolidColor(albedo)}
}

// NewTexturedLambertian creates a lambertian material with a texture
func NewTexturedLambertian(albedo core.Texture) *Lambertian {
	return &Lambertian{Albedo: albedo}
}

// Scatter implements core.Material
func (l *Lambertian) Scatter(rayIn core.Ray, hit *core.HitRecord, rng *rand.Rand) (core.Vec3, core.Ray, bool) {
	scatterDirection := hit.Normal.Add(core.RandomInHemisphere(hit.Normal, rng))
	if scatterDirection.NearZero() {
		// A sampled direction that cancels the normal would make a
		// degenerate ray; fall back to the normal itself.
		scatterDirection = hit.Normal
	}
	attenuation := l.Albedo.Value(hit.U, hit.V, hit.Point)
	return attenuation, core.NewRay(hit.Point, scatterDirection), true
}

// Emit implements core.Material
func (l *Lambertian) Emit(u, v float64, p core.Vec3) core.Vec3 {
	return core.Vec3{}
}
