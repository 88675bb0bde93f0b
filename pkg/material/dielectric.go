package material

import (
	"math"
	"math/rand"

	"github.com/mu-lambda/mu-lambda-raytracer/pkg/core"
)

// Dielectric represents a transparent material like glass that both
// reflects and refracts.
type Dielectric struct {
	RefractiveIndex float64 // e.g. 1.5 for glass
}

// NewDielectric creates a dielectric material
func NewDielectric(refractiveIndex float64) *Dielectric {
	return &Dielectric{RefractiveIndex: refractiveIndex}
}

// Scatter implements core.Material. Reflection vs refraction is chosen
// stochastically from the Schlick reflectance; over many samples per
// pixel this converges to the true fractional split.
func (d *Dielectric) Scatter(rayIn core.Ray, hit *core.HitRecord, rng *rand.Rand) (core.Vec3, core.Ray, bool) {
	// Clear glass absorbs nothing.
	attenuation := core.NewVec3(1, 1, 1)

	refractionRatio := d.RefractiveIndex
	if hit.FrontFace {
		refractionRatio = 1.0 / d.RefractiveIndex
	}

	unitDirection := rayIn.Direction.Normalize()
	cosTheta := math.Min(unitDirection.Negate().Dot(hit.Normal), 1.0)
	sinTheta := math.Sqrt(1.0 - cosTheta*cosTheta)

	cannotRefract := refractionRatio*sinTheta > 1.0

	var direction core.Vec3
	if cannotRefract || reflectance(cosTheta, refractionRatio) > rng.Float64() {
		direction = reflect(unitDirection, hit.Normal)
	} else {
		direction = refract(unitDirection, hit.Normal, refractionRatio)
	}
	return attenuation, core.NewRay(hit.Point, direction), true
}

// Emit implements core.Material
func (d *Dielectric) Emit(u, v float64, p core.Vec3) core.Vec3 {
	return core.Vec3{}
}

// refract calculates the refraction of uv through a surface using Snell's law
func refract(uv, n core.Vec3, etaiOverEtat float64) core.Vec3 {
	cosTheta := math.Min(uv.Negate().Dot(n), 1.0)
	rOutPerp := uv.Add(n.Multiply(cosTheta)).Multiply(etaiOverEtat)
	rOutParallel := n.Multiply(-math.Sqrt(math.Abs(1.0 - rOutPerp.LengthSquared())))
	return rOutPerp.Add(rOutParallel)
}

// reflectance is Schlick's polynomial approximation of Fresnel reflectance
func reflectance(cosine, refractionRatio float64) float64 {
	r0 := (1 - refractionRatio) / (1 + refractionRatio)
	r0 = r0 * r0
	return r0 + (1-r0)*math.Pow(1-cosine, 5)
}
