package background

import (
	"fmt"

	"github.com/jezek/xgb/xproto"
)

// Geometry describes a pixmap as reported by the server.
type Geometry struct {
	Width  int
	Height int
	Depth  byte
}

// ByteOrder is the server's image byte order for Z format pixel data.
type ByteOrder int

const (
	LSBFirst ByteOrder = iota
	MSBFirst
)

// Layout is the pixel layout resolved once after the geometry query.
// Only the true-color 32-bit-word case survives classification; every
// other depth is rejected up front so the normalizer never inspects
// formats mid-conversion.
type Layout struct {
	Order ByteOrder
}

// RawImage is a server-format pixel buffer straight off the wire:
// 4 bytes per pixel, rows laid out with the server-chosen stride.
type RawImage struct {
	Width  int
	Height int
	Stride int
	Order  ByteOrder
	Pix    []byte
}

// PixmapGeometry queries the size and depth of the background pixmap.
// A stale pixmap id (the background was replaced between the property
// read and this query) surfaces as an error here.
func PixmapGeometry(s *Session, pixmap xproto.Pixmap) (Geometry, error) {
	return pixmapGeometry(s, pixmap)
}

func pixmapGeometry(srv server, pixmap xproto.Pixmap) (Geometry, error) {
	reply, err := srv.geometry(xproto.Drawable(pixmap))
	if err != nil {
		return Geometry{}, fmt.Errorf("pixmap 0x%x geometry: %w", pixmap, err)
	}
	geom := Geometry{Width: int(reply.Width), Height: int(reply.Height), Depth: reply.Depth}
	if geom.Width <= 0 || geom.Height <= 0 {
		return Geometry{}, fmt.Errorf("pixmap 0x%x has empty geometry", pixmap)
	}
	return geom, nil
}

// classifyLayout maps a pixmap depth onto the supported true-color
// layout: 24 or 32 bits of color packed into a 32-bit word. Indexed,
// 16-bit and 1-bit pixmaps are rejected.
func classifyLayout(srv server, depth byte) (Layout, error) {
	bitsPerPixel := 0
	for _, format := range srv.pixmapFormats() {
		if format.Depth == depth {
			bitsPerPixel = int(format.BitsPerPixel)
			break
		}
	}
	if (depth != 24 && depth != 32) || bitsPerPixel != 32 {
		return Layout{}, &UnsupportedDepthError{Depth: depth}
	}
	return Layout{Order: srv.imageByteOrder()}, nil
}

// fetchImage retrieves the full pixel payload for the pixmap. When the
// image exceeds the single-request limit the fetch is split into
// horizontal bands, issued one at a time and concatenated in row order.
// Partial data is discarded on any sub-request failure.
func fetchImage(srv server, pixmap xproto.Pixmap, geom Geometry, layout Layout) (*RawImage, error) {
	rowBytes := geom.Width * 4
	rowsPerBand := geom.Height
	if max := srv.maxImageBytes(); max > 0 && rowBytes*geom.Height > max {
		rowsPerBand = max / rowBytes
		if rowsPerBand < 1 {
			rowsPerBand = 1
		}
	}

	stride := 0
	pix := make([]byte, 0, rowBytes*geom.Height)
	for y := 0; y < geom.Height; y += rowsPerBand {
		rows := rowsPerBand
		if y+rows > geom.Height {
			rows = geom.Height - y
		}
		reply, err := srv.image(xproto.Drawable(pixmap), 0, int16(y), uint16(geom.Width), uint16(rows))
		if err != nil {
			return nil, fmt.Errorf("fetch pixmap 0x%x rows %d-%d: %w", pixmap, y, y+rows-1, err)
		}
		if len(reply.Data) == 0 || len(reply.Data)%rows != 0 {
			return nil, fmt.Errorf("fetch pixmap 0x%x rows %d-%d: reply size %d not divisible by %d rows",
				pixmap, y, y+rows-1, len(reply.Data), rows)
		}
		bandStride := len(reply.Data) / rows
		if stride == 0 {
			stride = bandStride
		} else if bandStride != stride {
			return nil, fmt.Errorf("fetch pixmap 0x%x: stride changed between bands (%d then %d)",
				pixmap, stride, bandStride)
		}
		pix = append(pix, reply.Data...)
	}

	return &RawImage{
		Width:  geom.Width,
		Height: geom.Height,
		Stride: stride,
		Order:  layout.Order,
		Pix:    pix,
	}, nil
}
