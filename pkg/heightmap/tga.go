package heightmap

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

// TGA image types.
const (
	tgaTrueColor    = 2
	tgaGray         = 3
	tgaTrueColorRLE = 10
	tgaGrayRLE      = 11
)

// ErrTGA is wrapped by every TGA decoding failure.
var ErrTGA = errors.New("tga")

// DecodeTGA decodes a TGA image. TGA has no magic number, so callers pick this
// decoder by file extension.
//
// Supported: uncompressed and RLE true-color at 24 or 32 bits per pixel,
// returned as *image.RGBA, and uncompressed and RLE 8-bit grayscale,
// returned as *image.Gray so the heightmap keeps its 8-bit range.
func DecodeTGA(data []byte) (image.Image, error) {
	if len(data) < 18 {
		return nil, fmt.Errorf("%w: data too short", ErrTGA)
	}

	idLength := int(data[0])
	colorMapType := data[1]
	imageType := data[2]
	width := int(data[12]) | int(data[13])<<8
	height := int(data[14]) | int(data[15])<<8
	bpp := int(data[16])
	topToBottom := data[17]&0x20 != 0

	if colorMapType != 0 {
		return nil, fmt.Errorf("%w: color-mapped images not supported", ErrTGA)
	}

	var gray bool
	switch imageType {
	case tgaTrueColor, tgaTrueColorRLE:
		if bpp != 24 && bpp != 32 {
			return nil, fmt.Errorf("%w: unsupported true-color depth %d", ErrTGA, bpp)
		}
	case tgaGray, tgaGrayRLE:
		if bpp != 8 {
			return nil, fmt.Errorf("%w: unsupported grayscale depth %d", ErrTGA, bpp)
		}
		gray = true
	default:
		return nil, fmt.Errorf("%w: unsupported image type %d", ErrTGA, imageType)
	}

	offset := 18 + idLength
	if offset > len(data) {
		return nil, fmt.Errorf("%w: truncated", ErrTGA)
	}

	var raw []byte
	var err error
	bytesPerPixel := bpp / 8
	if imageType == tgaTrueColorRLE || imageType == tgaGrayRLE {
		raw, err = expandRLE(data[offset:], width*height, bytesPerPixel)
		if err != nil {
			return nil, err
		}
	} else {
		raw = data[offset:]
		if len(raw) < width*height*bytesPerPixel {
			return nil, fmt.Errorf("%w: pixel data truncated", ErrTGA)
		}
	}

	// Rows are stored bottom-up unless the descriptor says otherwise.
	row := func(y int) int {
		if topToBottom {
			return y
		}
		return height - 1 - y
	}

	rect := image.Rect(0, 0, width, height)
	if gray {
		img := image.NewGray(rect)
		for y := range height {
			copy(img.Pix[row(y)*img.Stride:], raw[y*width:(y+1)*width])
		}
		return img, nil
	}

	img := image.NewRGBA(rect)
	for y := range height {
		for x := range width {
			i := (y*width + x) * bytesPerPixel
			a := uint8(255)
			if bytesPerPixel == 4 {
				a = raw[i+3]
			}
			img.SetRGBA(x, row(y), color.RGBA{R: raw[i+2], G: raw[i+1], B: raw[i], A: a})
		}
	}
	return img, nil
}

// expandRLE unpacks run-length packets into count raw pixels.
func expandRLE(data []byte, count, bytesPerPixel int) ([]byte, error) {
	out := make([]byte, 0, count*bytesPerPixel)
	pos := 0

	for len(out) < count*bytesPerPixel {
		if pos >= len(data) {
			return nil, fmt.Errorf("%w: RLE data truncated", ErrTGA)
		}
		packet := data[pos]
		pos++
		n := int(packet&0x7F) + 1

		if packet&0x80 != 0 {
			if pos+bytesPerPixel > len(data) {
				return nil, fmt.Errorf("%w: RLE data truncated", ErrTGA)
			}
			px := data[pos : pos+bytesPerPixel]
			pos += bytesPerPixel
			for range n {
				out = append(out, px...)
			}
		} else {
			end := pos + n*bytesPerPixel
			if end > len(data) {
				return nil, fmt.Errorf("%w: RLE data truncated", ErrTGA)
			}
			out = append(out, data[pos:end]...)
			pos = end
		}
	}

	// A run may overshoot the last pixel.
	return out[:count*bytesPerPixel], nil
}
