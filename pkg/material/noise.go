package material

import (
	"math"
	"math/rand"

	"github.com/mu-lambda/mu-lambda-raytracer/pkg/core"
)

const perlinPointCount = 1024

// Perlin holds precomputed gradient and permutation tables. Deterministic
// given the rng it was built from, and read-only afterward, so one
// instance can be shared across all render workers.
type Perlin struct {
	ranVec [perlinPointCount]core.Vec3
	permX  [perlinPointCount]int
	permY  [perlinPointCount]int
	permZ  [perlinPointCount]int
}

// NewPerlin builds the noise tables from the given rng
func NewPerlin(rng *rand.Rand) *Perlin {
	p := &Perlin{}
	for i := range p.ranVec {
		p.ranVec[i] = core.RandomVec3(-1, 1, rng).Normalize()
	}
	perlinPermute(&p.permX, rng)
	perlinPermute(&p.permY, rng)
	perlinPermute(&p.permZ, rng)
	return p
}

func perlinPermute(perm *[perlinPointCount]int, rng *rand.Rand) {
	for i := range perm {
		perm[i] = i
	}
	for i := perlinPointCount - 1; i > 0; i-- {
		j := rng.Intn(i)
		perm[i], perm[j] = perm[j], perm[i]
	}
}

// Noise returns smoothed gradient noise in [-1, 1] at the given point
func (p *Perlin) Noise(point core.Vec3) float64 {
	u := point.X - math.Floor(point.X)
	v := point.Y - math.Floor(point.Y)
	w := point.Z - math.Floor(point.Z)

	i := int(math.Floor(point.X))
	j := int(math.Floor(point.Y))
	k := int(math.Floor(point.Z))

	var c [2][2][2]core.Vec3
	for di := 0; di < 2; di++ {
		for dj := 0; dj < 2; dj++ {
			for dk := 0; dk < 2; dk++ {
				c[di][dj][dk] = p.ranVec[p.permX[mod(i+di)]^p.permY[mod(j+dj)]^p.permZ[mod(k+dk)]]
			}
		}
	}
	return trilinearInterp(&c, u, v, w)
}

// Turbulence sums noise octaves at halving amplitude and doubling frequency
func (p *Perlin) Turbulence(point core.Vec3, depth int) float64 {
	accum := 0.0
	temp := point
	weight := 1.0
	for i := 0; i < depth; i++ {
		accum += weight * p.Noise(temp)
		weight *= 0.5
		temp = temp.Multiply(2)
	}
	return math.Abs(accum)
}

// mod maps possibly-negative lattice indices into the table range
func mod(i int) int {
	m := i % perlinPointCount
	if m < 0 {
		m += perlinPointCount
	}
	return m
}

func trilinearInterp(c *[2][2][2]core.Vec3, u, v, w float64) float64 {
	// Hermite smoothing removes grid artifacts.
	uu := u * u * (3 - 2*u)
	vv := v * v * (3 - 2*v)
	ww := w * w * (3 - 2*w)

	accum := 0.0
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			for k := 0; k < 2; k++ {
				fi, fj, fk := float64(i), float64(j), float64(k)
				weight := core.NewVec3(u-fi, v-fj, w-fk)
				accum += (fi*uu + (1-fi)*(1-uu)) *
					(fj*vv + (1-fj)*(1-vv)) *
					(fk*ww + (1-fk)*(1-ww)) *
					weight.Dot(c[i][j][k])
			}
		}
	}
	return accum
}

// NoiseTexture is a marble-like procedural texture built from Perlin
// turbulence phase-shifting a sine along z.
type NoiseTexture struct {
	noise           *Perlin
	Scale           float64
	TurbulenceDepth int
}

// NewNoiseTexture creates a noise texture at the given spatial scale
func NewNoiseTexture(scale float64, rng *rand.Rand) *NoiseTexture {
	return &NoiseTexture{noise: NewPerlin(rng), Scale: scale, TurbulenceDepth: 7}
}

// Value implements core.Texture
func (n *NoiseTexture) Value(u, v float64, p core.Vec3) core.Vec3 {
	scaled := p.Multiply(n.Scale)
	phase := n.Scale*p.Z + 10*n.noise.Turbulence(scaled, n.TurbulenceDepth)
	return core.NewVec3(1, 1, 1).Multiply(0.5 * (1 + math.Sin(phase)))
}
