package material

import (
	"math/rand"

	"github.com/mu-lambda/mu-lambda-raytracer/pkg/core"
)

// Isotropic scatters uniformly into the unit sphere; it is the phase
// function of constant-density media.
type Isotropic struct {
	Albedo core.Texture
}

// NewIsotropic creates an isotropic phase function with the given albedo
func NewIsotropic(albedo core.Texture) *Isotropic {
	return &Isotropic{Albedo: albedo}
}

// Scatter implements core.Material
func (iso *Isotropic) Scatter(rayIn core.Ray, hit *core.HitRecord, rng *rand.Rand) (core.Vec3, core.Ray, bool) {
	scattered := core.NewRay(hit.Point, core.RandomInUnitSphere(rng))
	return iso.Albedo.Value(hit.U, hit.V, hit.Point), scattered, true
}

// Emit implements core.Material
func (iso *Isotropic) Emit(u, v float64, p core.Vec3) core.Vec3 {
	return core.Vec3{}
}
