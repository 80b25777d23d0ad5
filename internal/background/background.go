// Package background extracts the pixel contents of the X11 desktop
// background. Wallpaper setters publish the pixmap backing the root
// window under an informal root property; this package locates that
// pixmap, fetches its pixels over the display connection and
// normalizes them into a packed RGB buffer ready for encoding.
package background

import (
	"errors"
	"fmt"

	"github.com/jezek/xgb/xproto"
)

// ErrNoBackground reports that no wallpaper tool has published a
// background pixmap on the root window. It is an expected outcome on
// freshly started or minimal desktops, not a protocol failure.
var ErrNoBackground = errors.New("no background pixmap set")

// UnsupportedDepthError reports a background pixmap whose depth does
// not map onto a byte-aligned true-color layout. Palette, 16-bit and
// 1-bit pixmaps are not converted.
type UnsupportedDepthError struct {
	Depth byte
}

func (e *UnsupportedDepthError) Error() string {
	return fmt.Sprintf("unsupported pixel depth %d", e.Depth)
}

// Grab runs the whole pipeline over the session: locate the background
// pixmap, query its geometry, fetch the raw pixels and normalize them.
// Returns ErrNoBackground when no background is currently set.
func Grab(s *Session) (*Image, error) {
	return grab(s, s.root)
}

func grab(srv server, root xproto.Window) (*Image, error) {
	pixmap, ok, err := lookupRootPixmap(srv, root)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNoBackground
	}
	geom, err := pixmapGeometry(srv, pixmap)
	if err != nil {
		return nil, err
	}
	layout, err := classifyLayout(srv, geom.Depth)
	if err != nil {
		return nil, err
	}
	raw, err := fetchImage(srv, pixmap, geom, layout)
	if err != nil {
		return nil, err
	}
	return raw.Normalize()
}
