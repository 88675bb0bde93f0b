package scene

import (
	"math/rand"

	"github.com/mu-lambda/mu-lambda-raytracer/pkg/core"
	"github.com/mu-lambda/mu-lambda-raytracer/pkg/geometry"
	"github.com/mu-lambda/mu-lambda-raytracer/pkg/material"
	"github.com/mu-lambda/mu-lambda-raytracer/pkg/renderer"
)

func defaultCamera() renderer.CameraConfig {
	return renderer.CameraConfig{
		LookFrom:    core.NewVec3(13, 2, 3),
		LookAt:      core.NewVec3(0, 0, 0),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        20,
		AspectRatio: 16.0 / 9.0,
	}
}

func newScene(name string, objects []core.Hittable, bg renderer.Background,
	camera renderer.CameraConfig, rng *rand.Rand) (*Scene, error) {
	world, err := core.NewBVH(objects, rng)
	if err != nil {
		return nil, err
	}
	return &Scene{Name: name, World: world, Background: bg, Camera: camera}, nil
}

// NewSimpleScene is a small fixed world: a ground sphere, a diffuse
// sphere, a hollow glass sphere, and a metal sphere.
func NewSimpleScene(rng *rand.Rand) (*Scene, error) {
	ground := material.NewLambertian(core.NewVec3(0.8, 0.8, 0.0))
	center := material.NewLambertian(core.NewVec3(0.1, 0.3, 0.5))
	glass := material.NewDielectric(1.5)
	metal := material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 0.0)

	objects := []core.Hittable{
		geometry.NewSphere(core.NewVec3(0, -100.5, -1), 100, ground),
		geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, center),
		geometry.NewSphere(core.NewVec3(-1, 0, -1), 0.5, glass),
		// Negative radius flips the normal inward: a hollow glass shell.
		geometry.NewSphere(core.NewVec3(-1, 0, -1), -0.4, glass),
		geometry.NewSphere(core.NewVec3(1, 0, -1), 0.5, metal),
	}

	camera := defaultCamera()
	camera.LookFrom = core.NewVec3(-2, 2, 1)
	camera.LookAt = core.NewVec3(0, 0, -1)
	return newScene("simple", objects, renderer.NewSkyBackground(), camera, rng)
}

// NewRandomScene is the classic cover scene: a grid of small random
// spheres around three large ones.
func NewRandomScene(rng *rand.Rand) (*Scene, error) {
	objects := []core.Hittable{
		geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000,
			material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))),
	}

	for a := -11; a < 11; a++ {
		for b := -11; b < 11; b++ {
			chooseMat := rng.Float64()
			center := core.NewVec3(float64(a)+0.9*rng.Float64(), 0.2, float64(b)+0.9*rng.Float64())
			if center.Subtract(core.NewVec3(4, 0.2, 0)).Length() <= 0.9 {
				continue
			}

			var m core.Material
			switch {
			case chooseMat < 0.8:
				albedo := core.RandomVec3(0, 1, rng).MultiplyVec(core.RandomVec3(0, 1, rng))
				m = material.NewLambertian(albedo)
			case chooseMat < 0.95:
				albedo := core.RandomVec3(0.5, 1, rng)
				m = material.NewMetal(albedo, 0.5*rng.Float64())
			default:
				m = material.NewDielectric(1.5)
			}
			objects = append(objects, geometry.NewSphere(center, 0.2, m))
		}
	}

	objects = append(objects,
		geometry.NewSphere(core.NewVec3(0, 1, 0), 1, material.NewDielectric(1.5)),
		geometry.NewSphere(core.NewVec3(-4, 1, 0), 1, material.NewLambertian(core.NewVec3(0.4, 0.2, 0.1))),
		geometry.NewSphere(core.NewVec3(4, 1, 0), 1, material.NewMetal(core.NewVec3(0.7, 0.6, 0.5), 0)),
	)

	camera := defaultCamera()
	camera.Aperture = 0.1
	camera.FocusDistance = 10
	return newScene("random", objects, renderer.NewSkyBackground(), camera, rng)
}

// NewCheckeredSpheresScene shows the 3D checker texture on two touching
// large spheres.
func NewCheckeredSpheresScene(rng *rand.Rand) (*Scene, error) {
	checker := material.NewCheckerTexture(
		material.NewSolidColorRGB(0.2, 0.3, 0.1),
		material.NewSolidColorRGB(0.9, 0.9, 0.9),
	)
	objects := []core.Hittable{
		geometry.NewSphere(core.NewVec3(0, -10, 0), 10, material.NewTexturedLambertian(checker)),
		geometry.NewSphere(core.NewVec3(0, 10, 0), 10, material.NewTexturedLambertian(checker)),
	}
	return newScene("checkered-spheres", objects, renderer.NewSkyBackground(), defaultCamera(), rng)
}

// NewPerlinSpheresScene shows the marble noise texture
func NewPerlinSpheresScene(rng *rand.Rand) (*Scene, error) {
	marble := material.NewTexturedLambertian(material.NewNoiseTexture(4, rng))
	objects := []core.Hittable{
		geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, marble),
		geometry.NewSphere(core.NewVec3(0, 2, 0), 2, marble),
	}
	return newScene("perlin-spheres", objects, renderer.NewSkyBackground(), defaultCamera(), rng)
}

// NewEarthScene maps an equirectangular texture image onto a globe. The
// image is read from earthmap.png in the working directory.
func NewEarthScene(rng *rand.Rand) (*Scene, error) {
	earth, err := material.LoadImageTexture("earthmap.png")
	if err != nil {
		return nil, err
	}
	objects := []core.Hittable{
		geometry.NewSphere(core.NewVec3(0, 0, 0), 2, material.NewTexturedLambertian(earth)),
	}
	return newScene("earth", objects, renderer.NewSkyBackground(), defaultCamera(), rng)
}

// NewSimpleLightScene is an area-lit night scene: marble spheres with a
// rectangle light, over a black background.
func NewSimpleLightScene(rng *rand.Rand) (*Scene, error) {
	marble := material.NewTexturedLambertian(material.NewNoiseTexture(4, rng))
	light := material.NewDiffuseLight(core.NewVec3(4, 4, 4))

	objects := []core.Hittable{
		geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, marble),
		geometry.NewSphere(core.NewVec3(0, 2, 0), 2, marble),
		geometry.NewXYRect(3, 5, 1, 3, -2, light),
	}

	camera := defaultCamera()
	camera.LookFrom = core.NewVec3(26, 3, 6)
	camera.LookAt = core.NewVec3(0, 2, 0)
	return newScene("simple-light", objects, renderer.BlackBackground{}, camera, rng)
}

func cornellWalls() ([]core.Hittable, core.Material) {
	red := material.NewLambertian(core.NewVec3(0.65, 0.05, 0.05))
	white := material.NewLambertian(core.NewVec3(0.73, 0.73, 0.73))
	green := material.NewLambertian(core.NewVec3(0.12, 0.45, 0.15))

	walls := []core.Hittable{
		geometry.NewYZRect(0, 555, 0, 555, 555, green),
		geometry.NewYZRect(0, 555, 0, 555, 0, red),
		geometry.NewXZRect(0, 555, 0, 555, 0, white),
		geometry.NewXZRect(0, 555, 0, 555, 555, white),
		geometry.NewXYRect(0, 555, 0, 555, 555, white),
	}
	return walls, white
}

func cornellCamera() renderer.CameraConfig {
	return renderer.CameraConfig{
		LookFrom:    core.NewVec3(278, 278, -800),
		LookAt:      core.NewVec3(278, 278, 0),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        40,
		AspectRatio: 1,
	}
}

// NewCornellScene is the standard Cornell box: colored walls, an area
// light in the ceiling, and two rotated boxes.
func NewCornellScene(rng *rand.Rand) (*Scene, error) {
	objects, white := cornellWalls()
	light := material.NewDiffuseLight(core.NewVec3(15, 15, 15))
	objects = append(objects, geometry.NewXZRect(213, 343, 227, 332, 554, light))

	tall := geometry.NewTranslate(
		geometry.NewRotate(
			geometry.NewBox(core.NewVec3(0, 0, 0), core.NewVec3(165, 330, 165), white),
			geometry.AxisY, 15),
		core.NewVec3(265, 0, 295))
	short := geometry.NewTranslate(
		geometry.NewRotate(
			geometry.NewBox(core.NewVec3(0, 0, 0), core.NewVec3(165, 165, 165), white),
			geometry.AxisY, -18),
		core.NewVec3(130, 0, 65))
	objects = append(objects, tall, short)

	return newScene("cornell", objects, renderer.BlackBackground{}, cornellCamera(), rng)
}

// NewCornellSmokeScene replaces the Cornell boxes with participating
// media: one dark smoke box, one white fog box.
func NewCornellSmokeScene(rng *rand.Rand) (*Scene, error) {
	objects, white := cornellWalls()
	light := material.NewDiffuseLight(core.NewVec3(7, 7, 7))
	objects = append(objects, geometry.NewXZRect(113, 443, 127, 432, 554, light))

	tall := geometry.NewTranslate(
		geometry.NewRotate(
			geometry.NewBox(core.NewVec3(0, 0, 0), core.NewVec3(165, 330, 165), white),
			geometry.AxisY, 15),
		core.NewVec3(265, 0, 295))
	short := geometry.NewTranslate(
		geometry.NewRotate(
			geometry.NewBox(core.NewVec3(0, 0, 0), core.NewVec3(165, 165, 165), white),
			geometry.AxisY, -18),
		core.NewVec3(130, 0, 65))

	objects = append(objects,
		geometry.NewConstantMediumFromColor(tall, 0.01, core.NewVec3(0, 0, 0)),
		geometry.NewConstantMediumFromColor(short, 0.01, core.NewVec3(1, 1, 1)),
	)

	return newScene("cornell-smoke", objects, renderer.BlackBackground{}, cornellCamera(), rng)
}
