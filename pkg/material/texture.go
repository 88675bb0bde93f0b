package material

import (
	"math"

	"github.com/mu-lambda/mu-lambda-raytracer/pkg/core"
)

// SolidColor is a texture with a uniform color everywhere
type SolidColor struct {
	Color core.Vec3
}

// NewSolidColor creates a solid color texture
func NewSolidColor(color core.Vec3) *SolidColor {
	return &SolidColor{Color: color}
}

// NewSolidColorRGB creates a solid color texture from components
func NewSolidColorRGB(r, g, b float64) *SolidColor {
	return &SolidColor{Color: core.NewVec3(r, g, b)}
}

// Value implements core.Texture
func (s *SolidColor) Value(u, v float64, p core.Vec3) core.Vec3 {
	return s.Color
}

// CheckerTexture alternates two sub-textures in a 3D checker pattern
// driven by the sign of a product of sines of the hit point.
type CheckerTexture struct {
	Odd  core.Texture
	Even core.Texture
}

// NewCheckerTexture creates a checker pattern from two sub-textures
func NewCheckerTexture(odd, even core.Texture) *CheckerTexture {
	return &CheckerTexture{Odd: odd, Even: even}
}

// Value implements core.Texture
func (c *CheckerTexture) Value(u, v float64, p core.Vec3) core.Vec3 {
	sines := math.Sin(5*p.X) * math.Sin(5*p.Y) * math.Sin(5*p.Z)
	if sines < 0 {
		return c.Odd.Value(u, v, p)
	}
	return c.Even.Value(u, v, p)
}
