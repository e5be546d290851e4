// ABOUTME: Image compression for meal photos.
// ABOUTME: Downscales to a bounded width and re-encodes as JPEG.

package imgcodec

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"
)

const (
	// MaxWidth is the widest a stored payload may be. Wider inputs are
	// scaled down proportionally; narrower ones are never upscaled.
	MaxWidth = 800

	// Quality is the JPEG quality factor for stored payloads.
	Quality = 70
)

var (
	ErrDecode = errors.New("input is not a decodable image")
	ErrEncode = errors.New("re-encoding produced no output")
)

// Compress decodes raw, scales it down to at most MaxWidth wide
// preserving aspect ratio, and re-encodes it as a JPEG payload. The
// result is raw JPEG bytes suitable for BLOB storage. Already-stored
// payloads must not be passed back through Compress; callers carry them
// forward untouched to avoid lossy recompression cycles.
func Compress(raw []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	if img.Bounds().Dx() > MaxWidth {
		// Height 0 preserves aspect ratio.
		img = imaging.Resize(img, MaxWidth, 0, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(Quality)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncode, err)
	}
	if buf.Len() == 0 {
		return nil, ErrEncode
	}
	return buf.Bytes(), nil
}
