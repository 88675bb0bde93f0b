package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/mu-lambda/mu-lambda-raytracer/pkg/core"
	"github.com/mu-lambda/mu-lambda-raytracer/pkg/renderer"
	"github.com/mu-lambda/mu-lambda-raytracer/pkg/scene"
)

// options is the full render configuration. A TOML config file provides
// a base layer; explicitly-set command-line flags override it.
type options struct {
	World           string  `toml:"world"`
	AspectRatio     string  `toml:"aspect-ratio"`
	ImageWidth      int     `toml:"image-width"`
	SamplesPerPixel int     `toml:"samples-per-pixel"`
	MaxDepth        int     `toml:"max-depth"`
	LookFrom        string  `toml:"lookfrom"`
	LookAt          string  `toml:"lookat"`
	Up              string  `toml:"up"`
	FieldOfView     float64 `toml:"field-of-view"`
	Aperture        float64 `toml:"aperture"`
	FocusDist       float64 `toml:"focus-dist"`
	Seed            *int64  `toml:"seed"`
	Workers         int     `toml:"workers"`
	Output          string  `toml:"output"`
	Preview         bool    `toml:"preview"`
}

func defaultOptions() options {
	return options{
		World:           "simple",
		AspectRatio:     "16:9",
		ImageWidth:      400,
		SamplesPerPixel: 200,
		MaxDepth:        50,
		Up:              "0,1,0",
	}
}

func parseFlags() (options, error) {
	defaults := defaultOptions()

	configPath := flag.String("config", "", "TOML render-config file")
	world := flag.String("world", defaults.World,
		fmt.Sprintf("world to render %v", scene.Names()))
	aspectRatio := flag.String("aspect-ratio", defaults.AspectRatio, "aspect ratio, W:H")
	imageWidth := flag.Int("image-width", defaults.ImageWidth, "image width in pixels")
	samplesPerPixel := flag.Int("samples-per-pixel", defaults.SamplesPerPixel, "rays per pixel")
	maxDepth := flag.Int("max-depth", defaults.MaxDepth, "maximum ray bounce depth")
	lookFrom := flag.String("lookfrom", "", "camera position x,y,z (default: scene camera)")
	lookAt := flag.String("lookat", "", "camera target x,y,z (default: scene camera)")
	up := flag.String("up", defaults.Up, "camera up vector x,y,z")
	fov := flag.Float64("fov", 0, "vertical field of view, degrees (default: scene camera)")
	aperture := flag.Float64("aperture", 0, "lens aperture")
	focusDist := flag.Float64("focus-dist", 0, "focus distance (0 = distance to lookat)")
	seed := flag.Int64("seed", 0, "random seed for reproducible renders")
	workers := flag.Int("workers", 0, "worker goroutines (0 = one per CPU)")
	output := flag.String("output", "", "output file, .png or .ppm (default: PPM on stdout)")
	preview := flag.Bool("preview", false, "fast single-light preview shading")
	flag.Parse()

	opts := defaults
	if *configPath != "" {
		data, err := os.ReadFile(*configPath)
		if err != nil {
			return opts, fmt.Errorf("reading config: %w", err)
		}
		if err := unmarshalConfig(data, &opts); err != nil {
			return opts, fmt.Errorf("parsing config %s: %w", *configPath, err)
		}
	}

	// Flags the user actually passed win over the config file.
	set := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if set["world"] {
		opts.World = *world
	}
	if set["aspect-ratio"] {
		opts.AspectRatio = *aspectRatio
	}
	if set["image-width"] {
		opts.ImageWidth = *imageWidth
	}
	if set["samples-per-pixel"] {
		opts.SamplesPerPixel = *samplesPerPixel
	}
	if set["max-depth"] {
		opts.MaxDepth = *maxDepth
	}
	if set["lookfrom"] {
		opts.LookFrom = *lookFrom
	}
	if set["lookat"] {
		opts.LookAt = *lookAt
	}
	if set["up"] {
		opts.Up = *up
	}
	if set["fov"] {
		opts.FieldOfView = *fov
	}
	if set["aperture"] {
		opts.Aperture = *aperture
	}
	if set["focus-dist"] {
		opts.FocusDist = *focusDist
	}
	if set["seed"] {
		opts.Seed = seed
	}
	if set["workers"] {
		opts.Workers = *workers
	}
	if set["output"] {
		opts.Output = *output
	}
	if set["preview"] {
		opts.Preview = *preview
	}
	return opts, nil
}

func unmarshalConfig(data []byte, opts *options) error {
	return toml.Unmarshal(data, opts)
}

func parseVec(s string) (core.Vec3, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return core.Vec3{}, fmt.Errorf("expected x,y,z, got %q", s)
	}
	var e [3]float64
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return core.Vec3{}, fmt.Errorf("bad component %q: %w", p, err)
		}
		e[i] = v
	}
	return core.NewVec3(e[0], e[1], e[2]), nil
}

func parseAspectRatio(s string) (float64, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("expected W:H, got %q", s)
	}
	w, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return 0, err
	}
	h, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return 0, err
	}
	if w <= 0 || h <= 0 {
		return 0, fmt.Errorf("aspect ratio sides must be positive, got %q", s)
	}
	return w / h, nil
}

// cameraFromOptions applies CLI overrides to the scene's suggested camera
func cameraFromOptions(opts options, suggested renderer.CameraConfig, aspect float64) (renderer.CameraConfig, error) {
	cfg := suggested
	cfg.AspectRatio = aspect

	if opts.LookFrom != "" {
		v, err := parseVec(opts.LookFrom)
		if err != nil {
			return cfg, fmt.Errorf("lookfrom: %w", err)
		}
		cfg.LookFrom = v
	}
	if opts.LookAt != "" {
		v, err := parseVec(opts.LookAt)
		if err != nil {
			return cfg, fmt.Errorf("lookat: %w", err)
		}
		cfg.LookAt = v
	}
	if opts.Up != "" {
		v, err := parseVec(opts.Up)
		if err != nil {
			return cfg, fmt.Errorf("up: %w", err)
		}
		cfg.Up = v
	}
	if opts.FieldOfView > 0 {
		cfg.VFov = opts.FieldOfView
	}
	if opts.Aperture > 0 {
		cfg.Aperture = opts.Aperture
	}
	if opts.FocusDist > 0 {
		cfg.FocusDistance = opts.FocusDist
	}
	return cfg, nil
}

// progressLogger prints a rate-limited percentage line from concurrent
// scanline completions. Best-effort: a lost or duplicated line is fine.
type progressLogger struct {
	total      int64
	done       atomic.Int64
	lastLogged atomic.Int64 // elapsed ms of the last printed update
	start      time.Time
	logger     core.Logger
}

func newProgressLogger(total int, logger core.Logger) *progressLogger {
	return &progressLogger{total: int64(total), start: time.Now(), logger: logger}
}

func (p *progressLogger) lineDone() {
	done := p.done.Add(1)
	if done == p.total {
		p.logger.Printf("\r%-50s\n", "Done!")
		return
	}
	elapsed := time.Since(p.start).Milliseconds()
	last := p.lastLogged.Load()
	if elapsed-last > 300 && p.lastLogged.CompareAndSwap(last, elapsed) {
		p.logger.Printf("\rRemaining: %3d%%  ", (p.total-done)*100/p.total)
	}
}

func writeOutput(opts options, rows [][]renderer.RGB) error {
	if opts.Output == "" {
		return renderer.WritePPM(os.Stdout, rows)
	}

	f, err := os.Create(opts.Output)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(opts.Output), ".png") {
		return renderer.WritePNG(f, rows)
	}
	return renderer.WritePPM(f, rows)
}

func run() error {
	opts, err := parseFlags()
	if err != nil {
		return err
	}
	logger := renderer.NewDefaultLogger()

	baseSeed := time.Now().UnixNano()
	if opts.Seed != nil {
		baseSeed = *opts.Seed
	}

	aspect, err := parseAspectRatio(opts.AspectRatio)
	if err != nil {
		return err
	}

	// Scene construction (including the BVH) uses its own stream off the
	// base seed; scanline streams are derived separately.
	sceneRng := rand.New(rand.NewSource(baseSeed))
	s, err := scene.Build(opts.World, sceneRng)
	if err != nil {
		return err
	}

	cameraConfig, err := cameraFromOptions(opts, s.Camera, aspect)
	if err != nil {
		return err
	}
	camera := renderer.NewCamera(cameraConfig)

	params := renderer.RenderingParams{
		ImageWidth:      opts.ImageWidth,
		ImageHeight:     int(float64(opts.ImageWidth) / aspect),
		SamplesPerPixel: opts.SamplesPerPixel,
	}

	var tracer renderer.Tracer = renderer.RecursiveTracer{MaxDepth: opts.MaxDepth}
	if opts.Preview {
		tracer = renderer.BlinnPhongTracer{LightSource: cameraConfig.LookFrom, Intensity: 1.0}
	}

	r := renderer.NewRenderer(camera, s.World, s.Background, params, tracer,
		baseSeed, opts.Workers, logger)

	logger.Printf("Rendering %s at %dx%d, %d spp, %d workers\n",
		s.Name, params.ImageWidth, params.ImageHeight, params.SamplesPerPixel, r.NumWorkers())

	progress := newProgressLogger(params.ImageHeight, logger)
	start := time.Now()
	rows := r.Render(func(j int, row []renderer.RGB) { progress.lineDone() })
	logger.Printf("Rendered in %.3fs\n", time.Since(start).Seconds())

	return writeOutput(opts, rows)
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
