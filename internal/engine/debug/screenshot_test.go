package debug

import (
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestFlipRows(t *testing.T) {
	// Two rows: bottom row red, top row blue, as OpenGL returns them.
	pixels := []byte{
		255, 0, 0, 255,
		0, 0, 255, 255,
	}

	img, err := FlipRows(pixels, 1, 2)
	if err != nil {
		t.Fatalf("FlipRows failed: %v", err)
	}
	if c := img.RGBAAt(0, 0); c.B != 255 {
		t.Errorf("top pixel = %v, want blue", c)
	}
	if c := img.RGBAAt(0, 1); c.R != 255 {
		t.Errorf("bottom pixel = %v, want red", c)
	}
}

func TestFlipRows_SizeMismatch(t *testing.T) {
	if _, err := FlipRows(make([]byte, 7), 1, 2); err == nil {
		t.Error("expected error for short pixel buffer")
	}
}

func TestFilename(t *testing.T) {
	s := NewScreenshots("shots", "rtin")
	s.now = func() time.Time { return time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC) }

	want := filepath.Join("shots", "rtin_t0.0200_2026-03-04_05-06-07.png")
	if got := s.Filename(0.02); got != want {
		t.Errorf("Filename = %q, want %q", got, want)
	}
}

func TestSavePixels(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "captures")
	s := NewScreenshots(dir, "rtin")

	path, err := s.SavePixels(make([]byte, 4*3*2), 4, 3, 0.1)
	// 4x3 needs 48 bytes, 24 is a mismatch.
	if err == nil {
		t.Fatalf("expected size error, wrote %s", path)
	}

	path, err = s.SavePixels(make([]byte, 4*3*4), 4, 3, 0.1)
	if err != nil {
		t.Fatalf("SavePixels failed: %v", err)
	}
	if !strings.HasPrefix(path, dir) {
		t.Errorf("screenshot %s not in %s", path, dir)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 4 || b.Dy() != 3 {
		t.Errorf("expected 4x3 image, got %v", b)
	}
}
