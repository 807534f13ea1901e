package heightmap

import (
	"errors"
	"image"
	"os"
	"path/filepath"
	"testing"
)

// tgaHeader builds an 18-byte TGA header.
func tgaHeader(imageType byte, width, height int, bpp byte, topToBottom bool) []byte {
	h := make([]byte, 18)
	h[2] = imageType
	h[12], h[13] = byte(width), byte(width>>8)
	h[14], h[15] = byte(height), byte(height>>8)
	h[16] = bpp
	if topToBottom {
		h[17] = 0x20
	}
	return h
}

func TestDecodeTGA_Gray(t *testing.T) {
	// Bottom-up rows: the first stored row is y=1.
	data := append(tgaHeader(tgaGray, 2, 2, 8, false), 30, 40, 10, 20)

	img, err := DecodeTGA(data)
	if err != nil {
		t.Fatalf("DecodeTGA failed: %v", err)
	}
	g, ok := img.(*image.Gray)
	if !ok {
		t.Fatalf("expected *image.Gray, got %T", img)
	}
	want := []uint8{10, 20, 30, 40}
	for i, v := range want {
		if g.Pix[i] != v {
			t.Errorf("pixel %d: got %d, want %d", i, g.Pix[i], v)
		}
	}
}

func TestDecodeTGA_GrayRLE(t *testing.T) {
	// One run of three 7s, then a raw packet with a single 9.
	data := append(tgaHeader(tgaGrayRLE, 2, 2, 8, true), 0x82, 7, 0x00, 9)

	img, err := DecodeTGA(data)
	if err != nil {
		t.Fatalf("DecodeTGA failed: %v", err)
	}
	g := img.(*image.Gray)
	want := []uint8{7, 7, 7, 9}
	for i, v := range want {
		if g.Pix[i] != v {
			t.Errorf("pixel %d: got %d, want %d", i, g.Pix[i], v)
		}
	}
}

func TestDecodeTGA_TrueColor(t *testing.T) {
	// BGR order, top-to-bottom.
	data := tgaHeader(tgaTrueColor, 2, 2, 24, true)
	data = append(data,
		0, 0, 255, 0, 255, 0,
		255, 0, 0, 255, 255, 255,
	)

	img, err := DecodeTGA(data)
	if err != nil {
		t.Fatalf("DecodeTGA failed: %v", err)
	}
	rgba := img.(*image.RGBA)
	if c := rgba.RGBAAt(0, 0); c.R != 255 || c.G != 0 || c.B != 0 || c.A != 255 {
		t.Errorf("pixel (0,0): got %v, want red", c)
	}
	if c := rgba.RGBAAt(0, 1); c.B != 255 || c.R != 0 {
		t.Errorf("pixel (0,1): got %v, want blue", c)
	}
}

func TestDecodeTGA_Errors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"short", []byte{0, 0, 2}},
		{"color mapped", func() []byte { h := tgaHeader(1, 2, 2, 8, false); h[1] = 1; return h }()},
		{"gray 16-bit", tgaHeader(tgaGray, 2, 2, 16, false)},
		{"truecolor 16-bit", tgaHeader(tgaTrueColor, 2, 2, 16, false)},
		{"truncated pixels", append(tgaHeader(tgaGray, 2, 2, 8, false), 1, 2)},
		{"truncated RLE", append(tgaHeader(tgaGrayRLE, 2, 2, 8, false), 0x81, 5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeTGA(tt.data); !errors.Is(err, ErrTGA) {
				t.Errorf("expected ErrTGA, got %v", err)
			}
		})
	}
}

func TestLoad_TGA(t *testing.T) {
	data := append(tgaHeader(tgaGray, 2, 2, 8, true), 0, 64, 128, 255)
	path := filepath.Join(t.TempDir(), "terrain.TGA")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	hm, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if hm.Side != 2 || hm.Max != Max8 {
		t.Errorf("expected 2x2 8-bit map, got side %d max %d", hm.Side, hm.Max)
	}
	if hm.Pix[3] != 255 {
		t.Errorf("expected last sample 255, got %d", hm.Pix[3])
	}
}
