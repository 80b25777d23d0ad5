package background

import (
	"errors"
	"fmt"
	"image"
)

// ErrMalformedImage reports a pixel buffer whose layout contradicts the
// reported geometry.
var ErrMalformedImage = errors.New("malformed image data")

// Image is the normalized result: tightly packed RGB triplets in
// row-major order, len(Pix) == Width*Height*3.
type Image struct {
	Width  int
	Height int
	Pix    []byte
}

// Normalize reorders the raw server pixels into packed RGB. Pad bytes
// beyond Width*4 on each scanline are dropped, as is the unused fourth
// channel of every pixel.
func (r *RawImage) Normalize() (*Image, error) {
	rowBytes := r.Width * 4
	if r.Stride < rowBytes {
		return nil, fmt.Errorf("%w: stride %d shorter than %d-pixel rows", ErrMalformedImage, r.Stride, r.Width)
	}
	if len(r.Pix) < r.Stride*r.Height {
		return nil, fmt.Errorf("%w: %d bytes for %dx%d at stride %d", ErrMalformedImage, len(r.Pix), r.Width, r.Height, r.Stride)
	}

	out := make([]byte, 0, r.Width*r.Height*3)
	for y := 0; y < r.Height; y++ {
		row := r.Pix[y*r.Stride : y*r.Stride+rowBytes]
		for x := 0; x < r.Width; x++ {
			px := row[x*4 : x*4+4]
			if r.Order == MSBFirst {
				// Word order x,R,G,B on the wire.
				out = append(out, px[1], px[2], px[3])
			} else {
				// Word order B,G,R,x on the wire.
				out = append(out, px[2], px[1], px[0])
			}
		}
	}
	return &Image{Width: r.Width, Height: r.Height, Pix: out}, nil
}

// RGBA converts the packed buffer into a stdlib image for encoders and
// the clipboard. Alpha is fully opaque.
func (im *Image) RGBA() *image.RGBA {
	rgba := image.NewRGBA(image.Rect(0, 0, im.Width, im.Height))
	for i := 0; i < im.Width*im.Height; i++ {
		rgba.Pix[i*4+0] = im.Pix[i*3+0]
		rgba.Pix[i*4+1] = im.Pix[i*3+1]
		rgba.Pix[i*4+2] = im.Pix[i*3+2]
		rgba.Pix[i*4+3] = 0xFF
	}
	return rgba
}
