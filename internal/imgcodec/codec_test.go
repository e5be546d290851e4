// ABOUTME: Tests for the image codec.
// ABOUTME: Covers downscaling, no-upscale, JPEG output, and decode failures.

package imgcodec

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"
)

func makePNG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 100, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode test png: %v", err)
	}
	return buf.Bytes()
}

func TestCompressDownscalesWideImage(t *testing.T) {
	raw := makePNG(t, 1600, 1200)

	payload, err := Compress(raw)
	if err != nil {
		t.Fatalf("failed to compress: %v", err)
	}

	img, err := jpeg.Decode(bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("output is not JPEG: %v", err)
	}
	if got := img.Bounds().Dx(); got != MaxWidth {
		t.Errorf("expected width %d, got %d", MaxWidth, got)
	}
	// Proportional scale: 1600x1200 -> 800x600.
	if got := img.Bounds().Dy(); got != 600 {
		t.Errorf("expected height 600, got %d", got)
	}
}

func TestCompressNeverUpscales(t *testing.T) {
	raw := makePNG(t, 300, 200)

	payload, err := Compress(raw)
	if err != nil {
		t.Fatalf("failed to compress: %v", err)
	}

	img, err := jpeg.Decode(bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("output is not JPEG: %v", err)
	}
	if got := img.Bounds().Dx(); got != 300 {
		t.Errorf("expected width 300, got %d", got)
	}
	if got := img.Bounds().Dy(); got != 200 {
		t.Errorf("expected height 200, got %d", got)
	}
}

func TestCompressAcceptsJPEGInput(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 900, 300))
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}); err != nil {
		t.Fatalf("failed to encode test jpeg: %v", err)
	}

	payload, err := Compress(buf.Bytes())
	if err != nil {
		t.Fatalf("failed to compress: %v", err)
	}
	out, err := jpeg.Decode(bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("output is not JPEG: %v", err)
	}
	if got := out.Bounds().Dx(); got != MaxWidth {
		t.Errorf("expected width %d, got %d", MaxWidth, got)
	}
}

func TestCompressRejectsGarbage(t *testing.T) {
	_, err := Compress([]byte("definitely not an image"))
	if !errors.Is(err, ErrDecode) {
		t.Errorf("expected ErrDecode, got %v", err)
	}
}

func TestCompressRejectsEmpty(t *testing.T) {
	_, err := Compress(nil)
	if !errors.Is(err, ErrDecode) {
		t.Errorf("expected ErrDecode, got %v", err)
	}
}
