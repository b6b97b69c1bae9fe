// Package media turns uploaded profile pictures into square webp avatars.
package media

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/chai2010/webp"
	"golang.org/x/image/draw"
)

const (
	AvatarSize    = 256
	AvatarQuality = 80
	MaxUploadSize = 5 << 20
)

// ErrUnsupportedImage is returned for bodies image.Decode cannot read.
var ErrUnsupportedImage = errors.New("unsupported image")

// Avatar decodes r, center-crops it to a square, scales it to AvatarSize
// and encodes it as lossy webp.
func Avatar(r io.Reader) ([]byte, error) {
	src, _, err := image.Decode(io.LimitReader(r, MaxUploadSize))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedImage, err)
	}

	crop := squareCrop(src.Bounds())
	dst := image.NewRGBA(image.Rect(0, 0, AvatarSize, AvatarSize))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, crop, draw.Over, nil)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, dst, &webp.Options{Quality: AvatarQuality}); err != nil {
		return nil, fmt.Errorf("encode webp: %w", err)
	}
	return buf.Bytes(), nil
}

func squareCrop(b image.Rectangle) image.Rectangle {
	w, h := b.Dx(), b.Dy()
	side := w
	if h < side {
		side = h
	}
	x0 := b.Min.X + (w-side)/2
	y0 := b.Min.Y + (h-side)/2
	return image.Rect(x0, y0, x0+side, y0+side)
}
