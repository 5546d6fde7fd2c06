package gpu

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"time"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Texture is a sampled 2D texture bound to a fixed texture unit.
type Texture struct {
	Handle uint32
	Unit   int
	Width  int
	Height int
}

// LoadTexture decodes the image at path and uploads it as an RGB texture
// on the given unit. The unit is validated before the file is opened.
func LoadTexture(dev Device, path string, unit int) (Texture, error) {
	return loadTexture(dev, path, unit, func(p string) (io.ReadCloser, error) { return os.Open(p) })
}

// LoadTextureFS is LoadTexture reading from fsys.
func LoadTextureFS(dev Device, fsys fs.FS, name string, unit int) (Texture, error) {
	return loadTexture(dev, name, unit, func(p string) (io.ReadCloser, error) { return fsys.Open(p) })
}

func loadTexture(dev Device, path string, unit int, open func(string) (io.ReadCloser, error)) (Texture, error) {
	start := time.Now()
	if unit < 0 || unit >= MaxTextureUnits {
		return Texture{}, fmt.Errorf("load texture %q: %w: %d", path, ErrInvalidSamplerIndex, unit)
	}

	f, err := open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Texture{}, fmt.Errorf("load texture %q: %w", path, ErrResourceNotFound)
		}
		return Texture{}, fmt.Errorf("load texture %q: %w", path, err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return Texture{}, fmt.Errorf("load texture %q: %w: %v", path, ErrDecode, err)
	}

	tex, err := NewTexture(dev, img, unit)
	if err != nil {
		return Texture{}, fmt.Errorf("load texture %q: %w", path, err)
	}
	Logger().Debug("texture loaded",
		slog.String("path", path),
		slog.String("format", format),
		slog.Int("unit", unit),
		slog.Duration("took", time.Since(start)))
	return tex, nil
}

// NewTexture uploads img as an RGB texture on unit with linear filtering
// and clamp-to-edge wrapping.
func NewTexture(dev Device, img image.Image, unit int) (Texture, error) {
	if unit < 0 || unit >= MaxTextureUnits {
		return Texture{}, fmt.Errorf("%w: %d", ErrInvalidSamplerIndex, unit)
	}
	w, h, rgb := RGBPixels(img)

	tex := dev.GenTexture()
	dev.ActiveTexture(unit)
	dev.BindTexture(tex)
	dev.TexParameter(TexMinFilter, Linear)
	dev.TexParameter(TexMagFilter, Linear)
	dev.TexParameter(TexWrapS, ClampToEdge)
	dev.TexParameter(TexWrapT, ClampToEdge)
	dev.TexImage2D(w, h, rgb)

	return Texture{Handle: tex, Unit: unit, Width: w, Height: h}, nil
}

// Bind returns the sampler uniform binding that selects the texture's unit.
func (t Texture) Bind(s *Stage, name string) (UniformBinding, error) {
	return s.BindUniformInts(name, int32(t.Unit))
}

// RGBPixels flattens img into tightly packed 8-bit RGB rows, top row first.
// Alpha is dropped without darkening the color: translucent pixels keep
// their straight (non-premultiplied) RGB.
func RGBPixels(img image.Image) (w, h int, rgb []byte) {
	b := img.Bounds()
	w, h = b.Dx(), b.Dy()
	rgb = make([]byte, 0, w*h*3)

	switch src := img.(type) {
	case *image.NRGBA:
		for y := 0; y < h; y++ {
			off := src.PixOffset(b.Min.X, b.Min.Y+y)
			row := src.Pix[off : off+w*4]
			for x := 0; x < w; x++ {
				rgb = append(rgb, row[x*4], row[x*4+1], row[x*4+2])
			}
		}
		return w, h, rgb
	case *image.RGBA:
		for y := 0; y < h; y++ {
			off := src.PixOffset(b.Min.X, b.Min.Y+y)
			row := src.Pix[off : off+w*4]
			for x := 0; x < w; x++ {
				p := row[x*4 : x*4+4]
				if p[3] == 0xFF {
					rgb = append(rgb, p[0], p[1], p[2])
					continue
				}
				c := color.NRGBAModel.Convert(color.RGBA{R: p[0], G: p[1], B: p[2], A: p[3]}).(color.NRGBA)
				rgb = append(rgb, c.R, c.G, c.B)
			}
		}
		return w, h, rgb
	}

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			rgb = append(rgb, c.R, c.G, c.B)
		}
	}
	return w, h, rgb
}
