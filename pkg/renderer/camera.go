package renderer

import (
	"math"
	"math/rand"

	"github.com/mu-lambda/mu-lambda-raytracer/pkg/core"
)

// CameraConfig describes a camera placement. Scenes suggest one; the CLI
// may override individual fields.
type CameraConfig struct {
	LookFrom      core.Vec3
	LookAt        core.Vec3
	Up            core.Vec3
	VFov          float64 // vertical field of view, degrees
	AspectRatio   float64
	Aperture      float64
	FocusDistance float64 // 0 = focus at the look-at point
}

// Camera generates rays for rendering. Screen coordinates (s, t) are in
// [0,1]² with t growing upward.
type Camera struct {
	origin          core.Vec3
	lowerLeftCorner core.Vec3
	horizontal      core.Vec3
	vertical        core.Vec3
	u, v            core.Vec3
	lensRadius      float64
}

// NewCamera creates a camera from a configuration
func NewCamera(cfg CameraConfig) *Camera {
	focusDist := cfg.FocusDistance
	if focusDist <= 0 {
		focusDist = cfg.LookAt.Subtract(cfg.LookFrom).Length()
	}

	theta := cfg.VFov * math.Pi / 180.0
	h := math.Tan(theta / 2)
	viewportHeight := 2.0 * h
	viewportWidth := cfg.AspectRatio * viewportHeight

	w := cfg.LookFrom.Subtract(cfg.LookAt).Normalize()
	u := cfg.Up.Cross(w).Normalize()
	v := w.Cross(u)

	origin := cfg.LookFrom
	horizontal := u.Multiply(focusDist * viewportWidth)
	vertical := v.Multiply(focusDist * viewportHeight)
	lowerLeftCorner := origin.
		Subtract(horizontal.Multiply(0.5)).
		Subtract(vertical.Multiply(0.5)).
		Subtract(w.Multiply(focusDist))

	return &Camera{
		origin:          origin,
		lowerLeftCorner: lowerLeftCorner,
		horizontal:      horizontal,
		vertical:        vertical,
		u:               u,
		v:               v,
		lensRadius:      cfg.Aperture / 2,
	}
}

// GetRay generates a ray through screen coordinates (s, t), sampling the
// lens disk when the aperture is non-zero.
func (c *Camera) GetRay(s, t float64, rng *rand.Rand) core.Ray {
	offset := core.Vec3{}
	origin := c.origin
	if c.lensRadius > 0 {
		rd := core.RandomInUnitDisk(rng).Multiply(c.lensRadius)
		offset = c.u.Multiply(rd.X).Add(c.v.Multiply(rd.Y))
		origin = origin.Add(offset)
	}

	direction := c.lowerLeftCorner.
		Add(c.horizontal.Multiply(s)).
		Add(c.vertical.Multiply(t)).
		Subtract(c.origin).
		Subtract(offset)
	return core.NewRay(origin, direction)
}
