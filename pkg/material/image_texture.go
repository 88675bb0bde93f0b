package material

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/mu-lambda/mu-lambda-raytracer/pkg/core"
)

// ImageTexture samples colors from a raster image. Pixels are stored as
// linear float colors in row-major order, Pixels[y*Width + x], with y=0
// at the top of the source image.
type ImageTexture struct {
	Width  int
	Height int
	Pixels []core.Vec3
}

// NewImageTexture creates a texture from a decoded image
func NewImageTexture(img image.Image) *ImageTexture {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	pixels := make([]core.Vec3, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			pixels[y*width+x] = core.NewVec3(
				float64(r)/65535.0,
				float64(g)/65535.0,
				float64(b)/65535.0,
			)
		}
	}
	return &ImageTexture{Width: width, Height: height, Pixels: pixels}
}

// LoadImageTexture reads and decodes an image file (PNG or JPEG)
func LoadImageTexture(path string) (*ImageTexture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening texture image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding texture image %s: %w", path, err)
	}
	return NewImageTexture(img), nil
}

// Value implements core.Texture using clamped nearest-neighbor lookup.
// V grows upward, so it is flipped into image coordinates.
func (t *ImageTexture) Value(u, v float64, p core.Vec3) core.Vec3 {
	u = clamp01(u)
	v = clamp01(1 - v)

	x := int(u * float64(t.Width))
	y := int(v * float64(t.Height))
	if x >= t.Width {
		x = t.Width - 1
	}
	if y >= t.Height {
		y = t.Height - 1
	}
	return t.Pixels[y*t.Width+x]
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
