package renderer

import (
	"math"
	"math/rand"

	"github.com/mu-lambda/mu-lambda-raytracer/pkg/core"
)

// tMinEpsilon guards against shadow acne: scattered rays re-intersecting
// their own origin surface due to floating-point error.
const tMinEpsilon = 0.001

// Tracer computes the radiance arriving along a ray
type Tracer interface {
	Trace(ray core.Ray, world core.Hittable, background Background, rng *rand.Rand) core.Vec3
}

// RecursiveTracer is the full path-tracing light transport: attenuation
// products over scattered bounces, terminated by absorption, escape, or
// the depth bound.
type RecursiveTracer struct {
	MaxDepth int
}

// Trace implements Tracer
func (rt RecursiveTracer) Trace(ray core.Ray, world core.Hittable, background Background, rng *rand.Rand) core.Vec3 {
	return rt.trace(ray, world, background, rt.MaxDepth, rng)
}

func (rt RecursiveTracer) trace(ray core.Ray, world core.Hittable, background Background, depth int, rng *rand.Rand) core.Vec3 {
	// Bounded recursion: also an energy-truncation approximation, not
	// just a safety limit.
	if depth <= 0 {
		return core.Vec3{}
	}

	hit, ok := world.Hit(ray, tMinEpsilon, math.Inf(1), rng)
	if !ok {
		return background.Color(ray)
	}

	attenuation, scattered, ok := hit.Material.Scatter(ray, hit, rng)
	if !ok {
		// Absorption ends this path; emitters contribute here.
		return hit.Material.Emit(hit.U, hit.V, hit.Point)
	}
	return attenuation.MultiplyVec(rt.trace(scattered, world, background, depth-1, rng))
}

// BlinnPhongTracer is a non-recursive preview mode: a single point light
// with Lambertian and Blinn-Phong shading terms. Useful for fast scene
// placement checks.
type BlinnPhongTracer struct {
	LightSource core.Vec3
	Intensity   float64
}

// Trace implements Tracer
func (bt BlinnPhongTracer) Trace(ray core.Ray, world core.Hittable, background Background, rng *rand.Rand) core.Vec3 {
	hit, ok := world.Hit(ray, tMinEpsilon, math.Inf(1), rng)
	if !ok {
		return background.Color(ray)
	}

	attenuation, _, ok := hit.Material.Scatter(ray, hit, rng)
	if !ok {
		return hit.Material.Emit(hit.U, hit.V, hit.Point)
	}

	l := bt.LightSource.Subtract(hit.Point).Normalize()
	v := ray.Direction.Normalize().Negate()
	h := l.Add(v).Normalize()

	diffuse := attenuation.Multiply(bt.Intensity * math.Max(0, l.Dot(hit.Normal)))
	specular := core.NewVec3(1, 1, 1).
		Multiply(0.5 * bt.Intensity * math.Pow(math.Max(0, h.Dot(hit.Normal)), 100))
	return diffuse.Add(specular)
}
