package geometry

import (
	"math"
	"math/rand"

	"github.com/mu-lambda/mu-lambda-raytracer/pkg/core"
)

// Sphere represents a sphere shape. A negative radius is allowed and
// flips the normal inward, which is used for hollow glass spheres.
type Sphere struct {
	Center   core.Vec3
	Radius   float64
	Material core.Material
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64, material core.Material) *Sphere {
	return &Sphere{Center: center, Radius: radius, Material: material}
}

// SphereUV maps a point on the unit sphere to surface coordinates.
// u is the angle around the Y axis from X=-1, v the angle from Y=-1 to Y=+1:
//
//	<1 0 0> yields <0.50 0.50>    <-1  0  0> yields <0.00 0.50>
//	<0 1 0> yields <0.50 1.00>    < 0 -1  0> yields <0.50 0.00>
//	<0 0 1> yields <0.25 0.50>    < 0  0 -1> yields <0.75 0.50>
func SphereUV(normal core.Vec3) (u, v float64) {
	theta := math.Acos(-normal.Y)
	phi := math.Atan2(-normal.Z, normal.X) + math.Pi
	return phi / (2 * math.Pi), theta / math.Pi
}

// Hit implements core.Hittable
func (s *Sphere) Hit(ray core.Ray, tMin, tMax float64, rng *rand.Rand) (*core.HitRecord, bool) {
	oc := ray.Origin.Subtract(s.Center)
	a := ray.Direction.LengthSquared()
	halfB := oc.Dot(ray.Direction)
	c := oc.LengthSquared() - s.Radius*s.Radius

	discriminant := halfB*halfB - a*c
	if discriminant < 0 {
		return nil, false
	}
	sqrtD := math.Sqrt(discriminant)

	// Prefer the nearer root, fall back to the farther one.
	root := (-halfB - sqrtD) / a
	if root < tMin || tMax < root {
		root = (-halfB + sqrtD) / a
		if root < tMin || tMax < root {
			return nil, false
		}
	}

	hit := &core.HitRecord{
		T:        root,
		Point:    ray.At(root),
		Material: s.Material,
	}
	outwardNormal := hit.Point.Subtract(s.Center).Multiply(1.0 / s.Radius)
	hit.U, hit.V = SphereUV(outwardNormal)
	hit.SetFaceNormal(ray, outwardNormal)
	return hit, true
}

// BoundingBox implements core.Hittable
func (s *Sphere) BoundingBox() core.AABB {
	r := core.NewVec3(s.Radius, s.Radius, s.Radius)
	return core.NewAABB(s.Center.Subtract(r), s.Center.Add(r))
}
