package geometry

import (
	"math/rand"

	"github.com/mu-lambda/mu-lambda-raytracer/pkg/core"
)

// HittableList is an unordered bag of hittables tested linearly. Scenes
// are assembled into one of these before being handed to the BVH builder;
// it also backs composite shapes like Box.
type HittableList struct {
	Objects []core.Hittable
}

// NewHittableList creates a list from the given objects
func NewHittableList(objects ...core.Hittable) *HittableList {
	return &HittableList{Objects: objects}
}

// Add appends objects to the list
func (l *HittableList) Add(objects ...core.Hittable) {
	l.Objects = append(l.Objects, objects...)
}

// Hit implements core.Hittable by shrinking the search interval to the
// closest hit found so far.
func (l *HittableList) Hit(ray core.Ray, tMin, tMax float64, rng *rand.Rand) (*core.HitRecord, bool) {
	var closest *core.HitRecord
	closestSoFar := tMax
	for _, o := range l.Objects {
		if hit, ok := o.Hit(ray, tMin, closestSoFar, rng); ok {
			closestSoFar = hit.T
			closest = hit
		}
	}
	return closest, closest != nil
}

// BoundingBox implements core.Hittable
func (l *HittableList) BoundingBox() core.AABB {
	if len(l.Objects) == 0 {
		return core.AABB{}
	}
	box := l.Objects[0].BoundingBox()
	for _, o := range l.Objects[1:] {
		box = box.Surround(o.BoundingBox())
	}
	return box
}
