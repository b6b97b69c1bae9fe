package media

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/chai2010/webp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAvatarProducesSquareWebp(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 400, 300))
	for x := 0; x < 400; x++ {
		for y := 0; y < 300; y++ {
			src.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	var in bytes.Buffer
	require.NoError(t, png.Encode(&in, src))

	out, err := Avatar(&in)
	require.NoError(t, err)

	cfg, err := webp.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, AvatarSize, cfg.Width)
	assert.Equal(t, AvatarSize, cfg.Height)
}

func TestAvatarRejectsGarbage(t *testing.T) {
	_, err := Avatar(strings.NewReader("not an image"))
	assert.ErrorIs(t, err, ErrUnsupportedImage)
}

func TestSquareCrop(t *testing.T) {
	assert.Equal(t, image.Rect(50, 0, 350, 300), squareCrop(image.Rect(0, 0, 400, 300)))
	assert.Equal(t, image.Rect(0, 10, 100, 110), squareCrop(image.Rect(0, 0, 100, 120)))
}
