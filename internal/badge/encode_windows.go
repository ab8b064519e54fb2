//go:build windows

package badge

import (
	"bytes"
	"image"

	ico "github.com/sergeymakinen/go-ico"
)

// encodeIcon produces the tray image format for this platform.
// The Windows notification area only accepts ICO data.
func encodeIcon(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := ico.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// idleIcon converts the PNG source icon to ICO.
func idleIcon(src []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(src))
	if err != nil {
		return nil, err
	}
	return encodeIcon(img)
}
