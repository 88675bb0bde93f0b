package core

import (
	"errors"
	"math/rand"
	"sort"
)

// BVH is a node of a Bounding Volume Hierarchy: a binary tree over
// hittables built once per scene and immutable afterward. Every node is
// itself a Hittable, so the tree nests through the same interface the
// shapes implement.
type BVH struct {
	left   Hittable
	right  Hittable // nil for single-object leaves
	bounds AABB
}

// ErrEmptyScene is returned when a BVH is built over no objects.
var ErrEmptyScene = errors.New("bvh: cannot build over an empty scene")

// NewBVH constructs a BVH from a slice of hittables. The slice is copied
// before sorting so the caller's collection is left untouched. The rng
// drives the per-split axis choice; a seeded rng makes construction
// reproducible.
func NewBVH(objects []Hittable, rng *rand.Rand) (*BVH, error) {
	if len(objects) == 0 {
		return nil, ErrEmptyScene
	}
	objectsCopy := make([]Hittable, len(objects))
	copy(objectsCopy, objects)
	return build(objectsCopy, rng), nil
}

func build(objects []Hittable, rng *rand.Rand) *BVH {
	// Axis is chosen uniformly at random at every split. Tree quality is
	// worse than a max-extent heuristic but correctness does not depend
	// on the choice.
	axis := rng.Intn(3)

	node := &BVH{}
	switch len(objects) {
	case 1:
		node.left = objects[0]
		node.bounds = objects[0].BoundingBox()
	case 2:
		a, b := objects[0], objects[1]
		if boxLess(b, a, axis) {
			a, b = b, a
		}
		node.left = a
		node.right = b
		node.bounds = a.BoundingBox().Surround(b.BoundingBox())
	default:
		// NaN coordinates from degenerate boxes compare as equal here:
		// boxLess is false both ways, which is a valid (non-panicking)
		// ordering for the sort.
		sort.SliceStable(objects, func(i, j int) bool {
			return boxLess(objects[i], objects[j], axis)
		})
		mid := len(objects) / 2
		node.left = build(objects[:mid], rng)
		node.right = build(objects[mid:], rng)
		node.bounds = node.left.BoundingBox().Surround(node.right.BoundingBox())
	}
	return node
}

// boxLess orders objects by their bounding-box minimum along an axis
func boxLess(a, b Hittable, axis int) bool {
	return a.BoundingBox().Min.Component(axis) < b.BoundingBox().Min.Component(axis)
}

// Hit implements Hittable. After the left subtree reports a hit at tL,
// the right subtree is searched only in (tMin, tL), so the nearer of the
// two children always wins and the result is independent of traversal
// order.
func (n *BVH) Hit(ray Ray, tMin, tMax float64, rng *rand.Rand) (*HitRecord, bool) {
	if !n.bounds.Hit(ray, tMin, tMax) {
		return nil, false
	}

	hitLeft, okLeft := n.left.Hit(ray, tMin, tMax, rng)
	if okLeft {
		tMax = hitLeft.T
	}
	if n.right != nil {
		if hitRight, okRight := n.right.Hit(ray, tMin, tMax, rng); okRight {
			return hitRight, true
		}
	}
	return hitLeft, okLeft
}

// BoundingBox implements Hittable
func (n *BVH) BoundingBox() AABB {
	return n.bounds
}
