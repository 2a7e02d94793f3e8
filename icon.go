package traykit

import (
	"fmt"
	"image"
	"image/color"
)

// Icon represents icon of the system tray item.
//
// Bytes holds the pixels in the 32-bit ARGB order expected by the
// StatusNotifierItem protocol, 4 bytes per pixel in row-major order.
type Icon struct {
	Width  int32
	Height int32
	Bytes  []byte
}

// ToolTip represents the tooltip shown when hovering over the tray item.
type ToolTip struct {
	// Freedesktop-compliant icon name shown in the tooltip.
	IconName string

	// Main tooltip text.
	Title string

	// Additional text shown below the title.
	Description string
}

// NewIconFromRGBA returns a new [Icon] from raw 8-bit-per-channel RGBA pixel
// data, converting it to the ARGB byte order the protocol expects.
//
// An error is returned when dimensions are not positive or when the data
// length does not equal width*height*4.
func NewIconFromRGBA(width, height int, rgba []byte) (Icon, error) {
	if width <= 0 || height <= 0 {
		return Icon{}, fmt.Errorf("icon: invalid dimensions %dx%d", width, height)
	}

	if len(rgba) != width*height*4 {
		return Icon{}, fmt.Errorf("icon: data size mismatch: expected %d, got %d", width*height*4, len(rgba))
	}

	// Rotate each RGBA pixel right by one byte to get ARGB.
	argb := make([]byte, len(rgba))
	for i := 0; i < len(rgba); i += 4 {
		argb[i] = rgba[i+3]
		argb[i+1] = rgba[i]
		argb[i+2] = rgba[i+1]
		argb[i+3] = rgba[i+2]
	}

	return Icon{
		Width:  int32(width),
		Height: int32(height),
		Bytes:  argb,
	}, nil
}

// NewIconFromImage returns a new [Icon] from an [image.Image].
func NewIconFromImage(img image.Image) (Icon, error) {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	if width <= 0 || height <= 0 {
		return Icon{}, fmt.Errorf("icon: invalid image dimensions %dx%d", width, height)
	}

	argb := make([]byte, 0, width*height*4)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			argb = append(argb, c.A, c.R, c.G, c.B)
		}
	}

	return Icon{
		Width:  int32(width),
		Height: int32(height),
		Bytes:  argb,
	}, nil
}

// clone returns a deep copy of the icon. Pixel data is copied so that the
// caller cannot observe later mutation of the state.
func (i Icon) clone() Icon {
	bytes := make([]byte, len(i.Bytes))
	copy(bytes, i.Bytes)

	return Icon{
		Width:  i.Width,
		Height: i.Height,
		Bytes:  bytes,
	}
}

// cloneIcons deep-copies a slice of icons.
func cloneIcons(icons []Icon) []Icon {
	if icons == nil {
		return nil
	}

	out := make([]Icon, len(icons))
	for idx, icon := range icons {
		out[idx] = icon.clone()
	}

	return out
}
