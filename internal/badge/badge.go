// Package badge renders the tray icon for an unread count.
package badge

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/png"
	"strconv"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

const (
	// MaxLabel is the largest count shown verbatim; anything above is "99+".
	MaxLabel = 99

	// DefaultDiscSize is the disc diameter in pixels for a 64px icon.
	DefaultDiscSize = 40
)

var (
	// DiscColor fills the badge disc.
	DiscColor = color.RGBA{R: 0xFF, A: 0xFF}
	// TextColor draws the badge label.
	TextColor = color.White

	ErrEmptyIcon = errors.New("icon data is empty")
)

// Frame is the complete tray state for one count.
type Frame struct {
	Count   int
	Icon    []byte
	Tooltip string
}

// Label returns the text drawn in the disc. The count itself is never
// clamped; only its textual form is truncated.
func Label(count int) string {
	if count > MaxLabel {
		return strconv.Itoa(MaxLabel) + "+"
	}
	return strconv.Itoa(count)
}

// Renderer turns counts into tray frames based on an idle icon.
type Renderer struct {
	icon     []byte
	appName  string
	discSize int
	face     func(size float64) (font.Face, error)
}

// New creates a Renderer over the idle icon (PNG). The icon is decoded on
// every render, so a malformed icon surfaces as a render error.
func New(icon []byte, appName string) *Renderer {
	return &Renderer{
		icon:     icon,
		appName:  appName,
		discSize: DefaultDiscSize,
		face:     boldFace,
	}
}

// IdleTooltip is shown when there is nothing unread.
func (r *Renderer) IdleTooltip() string {
	return r.appName
}

// Tooltip is shown for a non-zero count.
func (r *Renderer) Tooltip(count int) string {
	return fmt.Sprintf("%s - %d unread", r.appName, count)
}

// Render builds the frame for count. A zero count yields the plain icon
// and the idle tooltip.
func (r *Renderer) Render(count int) (Frame, error) {
	if len(r.icon) == 0 {
		return Frame{}, ErrEmptyIcon
	}

	if count <= 0 {
		icon, err := idleIcon(r.icon)
		if err != nil {
			return Frame{}, fmt.Errorf("failed to prepare idle icon: %w", err)
		}
		return Frame{Count: 0, Icon: icon, Tooltip: r.IdleTooltip()}, nil
	}

	img, err := r.Compose(count)
	if err != nil {
		return Frame{}, err
	}

	icon, err := encodeIcon(img)
	if err != nil {
		return Frame{}, fmt.Errorf("failed to encode icon: %w", err)
	}
	return Frame{Count: count, Icon: icon, Tooltip: r.Tooltip(count)}, nil
}

// Compose decodes the idle icon and draws the badge for count on it.
func (r *Renderer) Compose(count int) (*image.RGBA, error) {
	src, _, err := image.Decode(bytes.NewReader(r.icon))
	if err != nil {
		return nil, fmt.Errorf("failed to decode icon: %w", err)
	}

	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)

	disc := DiscRect(dst.Bounds(), r.discSize)
	fillDisc(dst, disc, DiscColor)

	if err := r.drawLabel(dst, disc, Label(count)); err != nil {
		return nil, err
	}
	return dst, nil
}

// DiscRect places a square of side size (clamped to the icon) in the
// top-right corner of bounds.
func DiscRect(bounds image.Rectangle, size int) image.Rectangle {
	if size > bounds.Dx() {
		size = bounds.Dx()
	}
	if size > bounds.Dy() {
		size = bounds.Dy()
	}
	return image.Rect(bounds.Max.X-size, bounds.Min.Y, bounds.Max.X, bounds.Min.Y+size)
}

func fillDisc(dst *image.RGBA, r image.Rectangle, c color.Color) {
	// Coordinates doubled so the center can sit between pixels
	cx2 := r.Min.X + r.Max.X
	cy2 := r.Min.Y + r.Max.Y
	d := r.Dx()
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			dx := 2*x + 1 - cx2
			dy := 2*y + 1 - cy2
			if dx*dx+dy*dy <= d*d {
				dst.Set(x, y, c)
			}
		}
	}
}

// drawLabel draws text centered in disc, shrinking the face until the
// text fits within 85% of the disc width.
func (r *Renderer) drawLabel(dst *image.RGBA, disc image.Rectangle, text string) error {
	maxWidth := fixed.I(disc.Dx() * 85 / 100)
	size := float64(disc.Dy()) * 0.6

	var face font.Face
	for {
		f, err := r.face(size)
		if err != nil {
			return fmt.Errorf("failed to load font: %w", err)
		}
		if font.MeasureString(f, text) <= maxWidth || size <= 6 {
			face = f
			break
		}
		f.Close()
		size -= 1
	}
	defer face.Close()

	m := face.Metrics()
	width := font.MeasureString(face, text)
	x := fixed.I(disc.Min.X) + (fixed.I(disc.Dx())-width)/2
	// Center the ascent/descent band vertically
	y := fixed.I(disc.Min.Y) + (fixed.I(disc.Dy())+m.Ascent-m.Descent)/2

	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(TextColor),
		Face: face,
		Dot:  fixed.Point26_6{X: x, Y: y},
	}
	d.DrawString(text)
	return nil
}

var loadBold = sync.OnceValues(func() (*opentype.Font, error) {
	return opentype.Parse(gobold.TTF)
})

func boldFace(size float64) (font.Face, error) {
	f, err := loadBold()
	if err != nil {
		return nil, err
	}
	return opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}
