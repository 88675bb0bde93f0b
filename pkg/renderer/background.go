package renderer

import "github.com/mu-lambda/mu-lambda-raytracer/pkg/core"

// Background supplies the radiance of rays that escape the scene
type Background interface {
	Color(ray core.Ray) core.Vec3
}

// GradientBackground is the classic sky: a vertical lerp between two colors
type GradientBackground struct {
	Top    core.Vec3
	Bottom core.Vec3
}

// NewGradientBackground creates a gradient background
func NewGradientBackground(top, bottom core.Vec3) *GradientBackground {
	return &GradientBackground{Top: top, Bottom: bottom}
}

// NewSkyBackground returns the default blue-to-white sky gradient
func NewSkyBackground() *GradientBackground {
	return NewGradientBackground(core.NewVec3(0.5, 0.7, 1.0), core.NewVec3(1, 1, 1))
}

// Color implements Background
func (g *GradientBackground) Color(ray core.Ray) core.Vec3 {
	unitDirection := ray.Direction.Normalize()
	t := 0.5 * (unitDirection.Y + 1.0)
	return g.Bottom.Multiply(1 - t).Add(g.Top.Multiply(t))
}

// BlackBackground is used for enclosed or self-lit scenes
type BlackBackground struct{}

// Color implements Background
func (BlackBackground) Color(ray core.Ray) core.Vec3 {
	return core.Vec3{}
}
