//go:build !windows

package badge

import (
	"bytes"
	"image"
	"image/png"
)

// encodeIcon produces the tray image format for this platform (PNG).
func encodeIcon(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// idleIcon returns the source icon unchanged; it is already PNG.
func idleIcon(src []byte) ([]byte, error) {
	if _, _, err := image.DecodeConfig(bytes.NewReader(src)); err != nil {
		return nil, err
	}
	return src, nil
}
