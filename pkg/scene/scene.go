// Package scene holds the catalog of built-in worlds. Each builder
// assembles primitives, wraps them in a BVH, and suggests a camera and
// background; the CLI may override the camera fields.
package scene

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/mu-lambda/mu-lambda-raytracer/pkg/renderer"

	"github.com/mu-lambda/mu-lambda-raytracer/pkg/core"
)

// Scene is a fully-built world ready for rendering
type Scene struct {
	Name       string
	World      core.Hittable // BVH over all scene content
	Background renderer.Background
	Camera     renderer.CameraConfig
}

// Builder constructs a named world. The rng drives any randomized scene
// content and the BVH axis choices, so a seeded rng reproduces the scene
// exactly.
type Builder func(rng *rand.Rand) (*Scene, error)

var catalog = map[string]Builder{
	"simple":            NewSimpleScene,
	"random":            NewRandomScene,
	"checkered-spheres": NewCheckeredSpheresScene,
	"perlin-spheres":    NewPerlinSpheresScene,
	"earth":             NewEarthScene,
	"simple-light":      NewSimpleLightScene,
	"cornell":           NewCornellScene,
	"cornell-smoke":     NewCornellSmokeScene,
}

// Build constructs the named world
func Build(name string, rng *rand.Rand) (*Scene, error) {
	builder, ok := catalog[name]
	if !ok {
		return nil, fmt.Errorf("unknown world %q (available: %v)", name, Names())
	}
	return builder(rng)
}

// Names returns the sorted catalog of world names
func Names() []string {
	names := make([]string, 0, len(catalog))
	for name := range catalog {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
