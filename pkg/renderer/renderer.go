package renderer

import (
	"fmt"
	"math"
	"math/rand"
	"os"
	"runtime"
	"sync"

	"github.com/mu-lambda/mu-lambda-raytracer/pkg/core"
)

// RGB is one quantized output pixel, channels in [0, 255]
type RGB struct {
	R, G, B uint8
}

// RenderingParams contains the sampling configuration for one render
type RenderingParams struct {
	ImageWidth      int
	ImageHeight     int
	SamplesPerPixel int
}

// Renderer runs the sampling loop: one independent task per scanline,
// each with its own deterministically-seeded random stream, executed
// across a fixed worker pool. The scene is read-only during rendering.
type Renderer struct {
	camera     *Camera
	world      core.Hittable
	background Background
	params     RenderingParams
	tracer     Tracer
	baseSeed   int64
	numWorkers int
	logger     core.Logger
}

// NewRenderer creates a renderer. numWorkers <= 0 means one worker per CPU.
func NewRenderer(camera *Camera, world core.Hittable, background Background,
	params RenderingParams, tracer Tracer, baseSeed int64, numWorkers int, logger core.Logger) *Renderer {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	if logger == nil {
		logger = NewDefaultLogger()
	}
	return &Renderer{
		camera:     camera,
		world:      world,
		background: background,
		params:     params,
		tracer:     tracer,
		baseSeed:   baseSeed,
		numWorkers: numWorkers,
		logger:     logger,
	}
}

// RenderPixel accumulates jittered samples for pixel (i, j) and converts
// the mean to an output RGB value. Row j=0 is the bottom scanline.
func (r *Renderer) RenderPixel(i, j int, rng *rand.Rand) RGB {
	var pixelColor core.Vec3
	for s := 0; s < r.params.SamplesPerPixel; s++ {
		u := (float64(i) + rng.Float64()) / (float64(r.params.ImageWidth) - 1)
		v := (float64(j) + rng.Float64()) / (float64(r.params.ImageHeight) - 1)
		ray := r.camera.GetRay(u, v, rng)
		pixelColor = pixelColor.Add(r.tracer.Trace(ray, r.world, r.background, rng))
	}
	return ToRGB(pixelColor, r.params.SamplesPerPixel)
}

// RenderLine renders scanline j into result, which must be exactly one
// row wide. A wrong-length buffer is a caller contract violation.
func (r *Renderer) RenderLine(j int, result []RGB, rng *rand.Rand) {
	if len(result) != r.params.ImageWidth {
		panic(fmt.Sprintf("renderer: row buffer length %d, want %d", len(result), r.params.ImageWidth))
	}
	for i := range result {
		result[i] = r.RenderPixel(i, j, rng)
	}
}

// SeedForLine returns the RNG seed for scanline j. Streams are a pure
// function of the base seed and the line index, so results are
// bit-reproducible regardless of how lines are scheduled over workers.
func (r *Renderer) SeedForLine(j int) int64 {
	return r.baseSeed + int64(j)
}

// Render renders the whole image and returns the pixel grid, row 0 at the
// bottom. onLine, if non-nil, is called from worker goroutines after each
// completed scanline and must be safe for concurrent use.
func (r *Renderer) Render(onLine func(j int, row []RGB)) [][]RGB {
	height := r.params.ImageHeight
	rows := make([][]RGB, height)

	lines := make(chan int, height)
	for j := 0; j < height; j++ {
		lines <- j
	}
	close(lines)

	var wg sync.WaitGroup
	for w := 0; w < r.numWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range lines {
				rng := rand.New(rand.NewSource(r.SeedForLine(j)))
				row := make([]RGB, r.params.ImageWidth)
				r.RenderLine(j, row, rng)
				rows[j] = row
				if onLine != nil {
					onLine(j, row)
				}
			}
		}()
	}
	wg.Wait()

	return rows
}

// NumWorkers returns the size of the worker pool
func (r *Renderer) NumWorkers() int {
	return r.numWorkers
}

// ToRGB averages an accumulated sample color, applies square-root gamma
// correction, clamps, and quantizes to 8-bit channels.
func ToRGB(color core.Vec3, samplesPerPixel int) RGB {
	scale := 1.0 / float64(samplesPerPixel)
	return RGB{
		R: quantize(math.Sqrt(color.X * scale)),
		G: quantize(math.Sqrt(color.Y * scale)),
		B: quantize(math.Sqrt(color.Z * scale)),
	}
}

func quantize(c float64) uint8 {
	return uint8(255.999 * max(0.0, min(0.99999999, c)))
}

// DefaultLogger implements core.Logger by writing to stderr, keeping
// stdout free for PPM output.
type DefaultLogger struct{}

// Printf implements core.Logger
func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format, args...)
}

// NewDefaultLogger creates a new default logger
func NewDefaultLogger() core.Logger {
	return &DefaultLogger{}
}
