package material

import (
	"math"
	"math/rand"
	"testing"

	"github.com/mu-lambda/mu-lambda-raytracer/pkg/core"
)

func testRng() *rand.Rand {
	return rand.New(rand.NewSource(1))
}

func frontHit(point, normal core.Vec3) *core.HitRecord {
	return &core.HitRecord{Point: point, Normal: normal, FrontFace: true, U: 0.5, V: 0.5}
}

func TestLambertianScatter(t *testing.T) {
	l := NewLambertian(core.NewVec3(0.8, 0.2, 0.1))
	hit := frontHit(core.NewVec3(0, 1, 0), core.NewVec3(0, 1, 0))
	rayIn := core.NewRay(core.NewVec3(0, 2, -1), core.NewVec3(0, -1, 1))
	rng := testRng()

	for i := 0; i < 100; i++ {
		attenuation, scattered, ok := l.Scatter(rayIn, hit, rng)
		if !ok {
			t.Fatal("lambertian always scatters")
		}
		if attenuation != core.NewVec3(0.8, 0.2, 0.1) {
			t.Fatalf("attenuation = %v", attenuation)
		}
		if scattered.Origin != hit.Point {
			t.Fatalf("scattered ray must start at the hit point")
		}
		if scattered.Direction.Dot(hit.Normal) <= 0 {
			t.Fatalf("scattered direction %v points into the surface", scattered.Direction)
		}
	}
}

func TestLambertianTexturedAttenuation(t *testing.T) {
	checker := NewCheckerTexture(
		NewSolidColorRGB(0, 0, 0),
		NewSolidColorRGB(1, 1, 1),
	)
	l := NewTexturedLambertian(checker)
	hit := frontHit(core.NewVec3(0.1, 0.1, 0.1), core.NewVec3(0, 1, 0))
	rayIn := core.NewRay(core.NewVec3(0, 2, 0), core.NewVec3(0, -1, 0))

	attenuation, _, ok := l.Scatter(rayIn, hit, testRng())
	if !ok {
		t.Fatal("lambertian always scatters")
	}
	// sin(0.5)^3 > 0: the even texture shows at this point.
	if attenuation != core.NewVec3(1, 1, 1) {
		t.Errorf("attenuation = %v, want the even checker color", attenuation)
	}
}

func TestMetalMirrorReflection(t *testing.T) {
	m := NewMetal(core.NewVec3(0.9, 0.9, 0.9), 0)
	hit := frontHit(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0))
	// Incoming at 45° in the xz=0 plane.
	rayIn := core.NewRay(core.NewVec3(-1, 1, 0), core.NewVec3(1, -1, 0))

	attenuation, scattered, ok := m.Scatter(rayIn, hit, testRng())
	if !ok {
		t.Fatal("mirror reflection off a front face should scatter")
	}
	if attenuation != core.NewVec3(0.9, 0.9, 0.9) {
		t.Errorf("attenuation = %v", attenuation)
	}
	want := core.NewVec3(1, 1, 0).Normalize()
	if scattered.Direction.Normalize().Subtract(want).Length() > 1e-9 {
		t.Errorf("reflected direction = %v, want %v", scattered.Direction.Normalize(), want)
	}
}

func TestMetalGrazingAbsorption(t *testing.T) {
	// Full fuzz can push a grazing reflection under the surface; those
	// rays are absorbed rather than scattered.
	m := NewMetal(core.NewVec3(1, 1, 1), 1)
	hit := frontHit(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0))
	rayIn := core.NewRay(core.NewVec3(-10, 0.01, 0), core.NewVec3(10, -0.01, 0))
	rng := testRng()

	absorbed := 0
	for i := 0; i < 1000; i++ {
		_, scattered, ok := m.Scatter(rayIn, hit, rng)
		if !ok {
			absorbed++
			continue
		}
		if scattered.Direction.Dot(hit.Normal) <= 0 {
			t.Fatal("a scattered ray must leave the surface")
		}
	}
	if absorbed == 0 {
		t.Error("grazing fuzzy reflections should sometimes be absorbed")
	}
}

func TestMetalFuzzClamped(t *testing.T) {
	if m := NewMetal(core.NewVec3(1, 1, 1), 5); m.Fuzz != 1 {
		t.Errorf("Fuzz = %v, want clamped to 1", m.Fuzz)
	}
	if m := NewMetal(core.NewVec3(1, 1, 1), -1); m.Fuzz != 0 {
		t.Errorf("Fuzz = %v, want clamped to 0", m.Fuzz)
	}
}

func TestDielectricTotalInternalReflection(t *testing.T) {
	d := NewDielectric(1.5)
	// Exit from glass to air at a grazing angle: sin(theta) * 1.5 > 1.
	hit := &core.HitRecord{
		Point:     core.NewVec3(0, 0, 0),
		Normal:    core.NewVec3(0, 1, 0),
		FrontFace: false,
	}
	rayIn := core.NewRay(core.NewVec3(-10, 1, 0), core.NewVec3(10, -1, 0))
	rng := testRng()

	for i := 0; i < 100; i++ {
		attenuation, scattered, ok := d.Scatter(rayIn, hit, rng)
		if !ok {
			t.Fatal("dielectric never absorbs")
		}
		if attenuation != core.NewVec3(1, 1, 1) {
			t.Fatalf("attenuation = %v, want white", attenuation)
		}
		// Must reflect: refraction is impossible past the critical angle.
		if scattered.Direction.Dot(hit.Normal) <= 0 {
			t.Fatalf("total internal reflection must stay on the incident side, got %v", scattered.Direction)
		}
	}
}

func TestDielectricRefractionBendsTowardNormal(t *testing.T) {
	// Head-on entry into glass is never reflected (Schlick reflectance at
	// cos=1 is about 4%, so sample until a refraction happens) and a ray
	// along the normal passes straight through.
	d := NewDielectric(1.5)
	hit := frontHit(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0))
	rayIn := core.NewRay(core.NewVec3(0, 5, 0), core.NewVec3(0, -1, 0))
	rng := testRng()

	sawRefraction := false
	for i := 0; i < 100; i++ {
		_, scattered, _ := d.Scatter(rayIn, hit, rng)
		dir := scattered.Direction.Normalize()
		if dir.Subtract(core.NewVec3(0, -1, 0)).Length() < 1e-9 {
			sawRefraction = true
		}
	}
	if !sawRefraction {
		t.Error("head-on ray should usually refract straight through")
	}
}

func TestDielectricSnellAngle(t *testing.T) {
	// 45° into glass: sin(theta_t) = sin(45°) / 1.5.
	d := NewDielectric(1.5)
	hit := frontHit(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0))
	rayIn := core.NewRay(core.NewVec3(-1, 1, 0), core.NewVec3(1, -1, 0))
	rng := testRng()

	wantSin := math.Sin(math.Pi/4) / 1.5
	sawRefraction := false
	for i := 0; i < 200; i++ {
		_, scattered, _ := d.Scatter(rayIn, hit, rng)
		dir := scattered.Direction.Normalize()
		if dir.Y > 0 {
			continue // reflected sample
		}
		sawRefraction = true
		sinTheta := math.Abs(dir.X)
		if math.Abs(sinTheta-wantSin) > 1e-9 {
			t.Fatalf("sin(theta_t) = %v, want %v", sinTheta, wantSin)
		}
	}
	if !sawRefraction {
		t.Error("expected at least one refracted sample")
	}
}

func TestDiffuseLight(t *testing.T) {
	dl := NewDiffuseLight(core.NewVec3(4, 4, 4))
	hit := frontHit(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0))
	rayIn := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0))

	if _, _, ok := dl.Scatter(rayIn, hit, testRng()); ok {
		t.Error("a light never scatters")
	}
	if got := dl.Emit(0.5, 0.5, core.Vec3{}); got != core.NewVec3(4, 4, 4) {
		t.Errorf("Emit = %v, want (4,4,4)", got)
	}
}

func TestNonEmissiveMaterialsEmitBlack(t *testing.T) {
	materials := []core.Material{
		NewLambertian(core.NewVec3(1, 1, 1)),
		NewMetal(core.NewVec3(1, 1, 1), 0.5),
		NewDielectric(1.5),
		NewIsotropic(NewSolidColorRGB(1, 1, 1)),
	}
	for _, m := range materials {
		if got := m.Emit(0.3, 0.7, core.NewVec3(1, 2, 3)); got != (core.Vec3{}) {
			t.Errorf("%T.Emit = %v, want black", m, got)
		}
	}
}

func TestIsotropicScattersAnywhere(t *testing.T) {
	iso := NewIsotropic(NewSolidColorRGB(0.5, 0.5, 0.5))
	hit := frontHit(core.NewVec3(1, 2, 3), core.NewVec3(1, 0, 0))
	rayIn := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0))
	rng := testRng()

	sawBackward := false
	for i := 0; i < 100; i++ {
		attenuation, scattered, ok := iso.Scatter(rayIn, hit, rng)
		if !ok {
			t.Fatal("isotropic always scatters")
		}
		if attenuation != core.NewVec3(0.5, 0.5, 0.5) {
			t.Fatalf("attenuation = %v", attenuation)
		}
		if scattered.Origin != hit.Point {
			t.Fatal("scatter must originate at the hit point")
		}
		if scattered.Direction.Dot(rayIn.Direction) < 0 {
			sawBackward = true
		}
	}
	if !sawBackward {
		t.Error("an isotropic phase function should sometimes scatter backward")
	}
}
