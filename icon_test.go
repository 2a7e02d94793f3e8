package traykit

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIconFromRGBA(t *testing.T) {
	t.Run("rotates RGBA to ARGB per pixel", func(t *testing.T) {
		rgba := []byte{
			0x10, 0x20, 0x30, 0x40,
			0x50, 0x60, 0x70, 0x80,
		}

		icon, err := NewIconFromRGBA(2, 1, rgba)
		require.NoError(t, err)

		assert.Equal(t, int32(2), icon.Width)
		assert.Equal(t, int32(1), icon.Height)
		assert.Equal(t, []byte{
			0x40, 0x10, 0x20, 0x30,
			0x80, 0x50, 0x60, 0x70,
		}, icon.Bytes)
	})

	t.Run("rejects short data", func(t *testing.T) {
		_, err := NewIconFromRGBA(2, 2, make([]byte, 15))
		assert.Error(t, err)
	})

	t.Run("rejects bad dimensions", func(t *testing.T) {
		_, err := NewIconFromRGBA(0, 1, nil)
		assert.Error(t, err)

		_, err = NewIconFromRGBA(1, 0, nil)
		assert.Error(t, err)
	})

	t.Run("does not alias the input slice", func(t *testing.T) {
		rgba := []byte{1, 2, 3, 4}

		icon, err := NewIconFromRGBA(1, 1, rgba)
		require.NoError(t, err)

		rgba[0] = 9
		assert.Equal(t, []byte{4, 1, 2, 3}, icon.Bytes)
	})
}

func TestNewIconFromImage(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.SetNRGBA(0, 0, color.NRGBA{R: 0x10, G: 0x20, B: 0x30, A: 0x40})
	img.SetNRGBA(1, 0, color.NRGBA{R: 0x50, G: 0x60, B: 0x70, A: 0x80})

	icon, err := NewIconFromImage(img)
	require.NoError(t, err)

	assert.Equal(t, int32(2), icon.Width)
	assert.Equal(t, int32(1), icon.Height)
	assert.Equal(t, []byte{
		0x40, 0x10, 0x20, 0x30,
		0x80, 0x50, 0x60, 0x70,
	}, icon.Bytes)
}
