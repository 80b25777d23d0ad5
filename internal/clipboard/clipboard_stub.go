//go:build !linux && !freebsd && !openbsd && !netbsd && !dragonfly

package clipboard

import (
	"errors"
	"image"
)

var errUnsupported = errors.New("clipboard is not supported on this platform")

// WriteImage reports that the platform has no clipboard integration.
func WriteImage(image.Image) error {
	return errUnsupported
}
