package main

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/mu-lambda/mu-lambda-raytracer/pkg/core"
	"github.com/mu-lambda/mu-lambda-raytracer/pkg/renderer"
)

func TestParseVec(t *testing.T) {
	tests := []struct {
		input   string
		want    core.Vec3
		wantErr bool
	}{
		{"1,2,3", core.NewVec3(1, 2, 3), false},
		{"-1.5, 0, 2e2", core.NewVec3(-1.5, 0, 200), false},
		{"1,2", core.Vec3{}, true},
		{"1,2,3,4", core.Vec3{}, true},
		{"a,b,c", core.Vec3{}, true},
	}
	for _, tt := range tests {
		got, err := parseVec(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseVec(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("parseVec(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestParseAspectRatio(t *testing.T) {
	tests := []struct {
		input   string
		want    float64
		wantErr bool
	}{
		{"16:9", 16.0 / 9.0, false},
		{"1:1", 1.0, false},
		{"4:3", 4.0 / 3.0, false},
		{"16/9", 0, true},
		{"0:9", 0, true},
		{"-16:9", 0, true},
	}
	for _, tt := range tests {
		got, err := parseAspectRatio(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseAspectRatio(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("parseAspectRatio(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestCameraFromOptionsOverrides(t *testing.T) {
	suggested := renderer.CameraConfig{
		LookFrom: core.NewVec3(13, 2, 3),
		LookAt:   core.NewVec3(0, 0, 0),
		Up:       core.NewVec3(0, 1, 0),
		VFov:     20,
	}

	// No overrides: suggested camera survives, except aspect ratio.
	cfg, err := cameraFromOptions(options{}, suggested, 1.5)
	if err != nil {
		t.Fatalf("cameraFromOptions: %v", err)
	}
	if cfg.LookFrom != suggested.LookFrom || cfg.VFov != suggested.VFov {
		t.Errorf("unexpected camera change without overrides: %+v", cfg)
	}
	if cfg.AspectRatio != 1.5 {
		t.Errorf("AspectRatio = %v, want 1.5", cfg.AspectRatio)
	}

	opts := options{
		LookFrom:    "1,2,3",
		FieldOfView: 90,
		Aperture:    0.1,
	}
	cfg, err = cameraFromOptions(opts, suggested, 1.5)
	if err != nil {
		t.Fatalf("cameraFromOptions: %v", err)
	}
	if cfg.LookFrom != core.NewVec3(1, 2, 3) {
		t.Errorf("LookFrom = %v, want (1,2,3)", cfg.LookFrom)
	}
	if cfg.VFov != 90 || cfg.Aperture != 0.1 {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if cfg.LookAt != suggested.LookAt {
		t.Errorf("LookAt should keep scene value, got %v", cfg.LookAt)
	}

	if _, err := cameraFromOptions(options{LookAt: "nope"}, suggested, 1.5); err == nil {
		t.Error("expected error for malformed lookat")
	}
}

func TestConfigFileLayering(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "render.toml")
	data := []byte("world = \"cornell\"\nimage-width = 600\nseed = 42\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	// Unmarshal layering only; flag precedence is exercised via flag.Visit
	// in parseFlags and is not reproducible inside a test process.
	opts := defaultOptions()
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := unmarshalConfig(raw, &opts); err != nil {
		t.Fatalf("unmarshalConfig: %v", err)
	}
	if opts.World != "cornell" {
		t.Errorf("World = %q, want cornell", opts.World)
	}
	if opts.ImageWidth != 600 {
		t.Errorf("ImageWidth = %d, want 600", opts.ImageWidth)
	}
	if opts.Seed == nil || *opts.Seed != 42 {
		t.Errorf("Seed = %v, want 42", opts.Seed)
	}
	// Options the file omits keep their defaults.
	if opts.SamplesPerPixel != defaultOptions().SamplesPerPixel {
		t.Errorf("SamplesPerPixel = %d, want default", opts.SamplesPerPixel)
	}
}
