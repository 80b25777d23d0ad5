package background

import (
	"fmt"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

// RootPixmapProperty is the root window property wallpaper setters use
// to publish the pixmap backing the desktop background. The convention
// is informal; no extension specifies it.
const RootPixmapProperty = "_XROOTPMAP_ID"

// esetrootProperty is the older Esetroot-era spelling of the same
// convention. Some setters write only one of the two.
const esetrootProperty = "ESETROOT_PMAP_ID"

// LookupRootPixmap resolves the background pixmap published on the root
// window. A desktop with no background set is reported as ok == false
// with a nil error; errors are reserved for protocol failures.
func LookupRootPixmap(s *Session) (xproto.Pixmap, bool, error) {
	return lookupRootPixmap(s, s.root)
}

func lookupRootPixmap(srv server, root xproto.Window) (xproto.Pixmap, bool, error) {
	for _, name := range []string{RootPixmapProperty, esetrootProperty} {
		pixmap, ok, err := readPixmapProperty(srv, root, name)
		if err != nil {
			return 0, false, err
		}
		if ok {
			return pixmap, true, nil
		}
	}
	return 0, false, nil
}

func readPixmapProperty(srv server, root xproto.Window, name string) (xproto.Pixmap, bool, error) {
	atom, err := srv.internAtom(name)
	if err != nil {
		return 0, false, fmt.Errorf("intern atom %q: %w", name, err)
	}
	if atom == xproto.AtomNone {
		// The atom was never interned, so no client has set the
		// property either.
		return 0, false, nil
	}
	reply, err := srv.property(root, atom, xproto.AtomPixmap, 1)
	if err != nil {
		return 0, false, fmt.Errorf("read property %q: %w", name, err)
	}
	// A mismatched type or item size means some other client published
	// something unexpected under this name. Treat it the same as unset.
	if reply.Format != 32 || reply.ValueLen != 1 || len(reply.Value) < 4 {
		return 0, false, nil
	}
	return xproto.Pixmap(xgb.Get32(reply.Value)), true, nil
}
