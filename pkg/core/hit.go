package core

// HitRecord contains information about a ray-object intersection.
// It is constructed and consumed within a single trace step.
type HitRecord struct {
	Point     Vec3     // Point of intersection in world space
	Normal    Vec3     // Unit normal, oriented against the incoming ray
	T         float64  // Parameter t along the ray
	U, V      float64  // Surface parametrization in [0,1]²
	FrontFace bool     // Whether the ray hit the front face
	Material  Material // Material of the hit object, shared with the scene
}

// SetFaceNormal orients the normal so it opposes the incoming ray and
// records which side was struck. Every material relies on this
// orientation to decide front/back behavior.
func (h *HitRecord) SetFaceNormal(ray Ray, outwardNormal Vec3) {
	h.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if h.FrontFace {
		h.Normal = outwardNormal
	} else {
		h.Normal = outwardNormal.Negate()
	}
}
