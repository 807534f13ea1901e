package heightmap

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"  // GIF decoder
	_ "image/jpeg" // JPEG decoder
	_ "image/png"  // PNG decoder
	"io"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"  // BMP decoder registration
	_ "golang.org/x/image/tiff" // TIFF decoder registration (16-bit DEM exports)
)

// Load reads and decodes a heightmap image file. Files ending in .tga go
// through DecodeTGA, everything else through the registered image decoders.
func Load(path string) (*Heightmap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var hm *Heightmap
	if strings.EqualFold(filepath.Ext(path), ".tga") {
		var img image.Image
		if img, err = DecodeTGA(data); err == nil {
			hm, err = FromImage(img)
		}
	} else {
		hm, err = Decode(bytes.NewReader(data))
	}
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return hm, nil
}

// Decode decodes any registered image format into a heightmap.
func Decode(r io.Reader) (*Heightmap, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, err
	}
	return FromImage(img)
}

// FromImage converts a decoded image into a heightmap.
//
// 16-bit grayscale keeps its samples, 8-bit grayscale keeps its samples with
// Max8 as the normalization value, and every other model is converted to
// 16-bit luminance.
func FromImage(img image.Image) (*Heightmap, error) {
	b := img.Bounds()
	w, h := uint32(b.Dx()), uint32(b.Dy())
	if err := Validate(w, h); err != nil {
		return nil, err
	}

	pix := make([]uint16, w*h)

	switch src := img.(type) {
	case *image.Gray16:
		for y := range h {
			for x := range w {
				pix[y*w+x] = src.Gray16At(b.Min.X+int(x), b.Min.Y+int(y)).Y
			}
		}
		return New(w, Max16, pix)

	case *image.Gray:
		for y := range h {
			for x := range w {
				pix[y*w+x] = uint16(src.GrayAt(b.Min.X+int(x), b.Min.Y+int(y)).Y)
			}
		}
		return New(w, Max8, pix)

	default:
		for y := range h {
			for x := range w {
				c := color.Gray16Model.Convert(img.At(b.Min.X+int(x), b.Min.Y+int(y))).(color.Gray16)
				pix[y*w+x] = c.Y
			}
		}
		return New(w, Max16, pix)
	}
}

// Image returns the heightmap as a 16-bit grayscale image, rescaling samples
// stored at a lower depth.
func (h *Heightmap) Image() *image.Gray16 {
	side := int(h.Side)
	img := image.NewGray16(image.Rect(0, 0, side, side))
	for y := range side {
		for x := range side {
			v := uint32(h.Pix[y*side+x]) * uint32(Max16) / uint32(h.Max)
			img.SetGray16(x, y, color.Gray16{Y: uint16(v)})
		}
	}
	return img
}
