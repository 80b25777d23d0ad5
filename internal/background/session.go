package background

import (
	"fmt"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

// Session owns the X server connection used by every stage of the
// pipeline. All requests are issued sequentially over this single
// connection; callers must not use a Session after Close.
type Session struct {
	conn  *xgb.Conn
	setup *xproto.SetupInfo
	root  xproto.Window
}

// Open connects to the X server named by DISPLAY and resolves the
// default screen's root window.
func Open() (*Session, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, fmt.Errorf("connect X server: %w", err)
	}
	setup := xproto.Setup(conn)
	if setup == nil {
		conn.Close()
		return nil, fmt.Errorf("xproto setup unavailable")
	}
	screen := setup.DefaultScreen(conn)
	if screen == nil {
		conn.Close()
		return nil, fmt.Errorf("xproto screen unavailable")
	}
	return &Session{conn: conn, setup: setup, root: screen.Root}, nil
}

// Close tears down the server connection.
func (s *Session) Close() {
	if s.conn != nil {
		s.conn.Close()
	}
}

// Root returns the root window of the default screen.
func (s *Session) Root() xproto.Window {
	return s.root
}

// server is the narrow slice of the X protocol the pipeline consumes.
// Tests substitute a fake so the full pipeline runs without a display.
type server interface {
	internAtom(name string) (xproto.Atom, error)
	property(win xproto.Window, prop, typ xproto.Atom, longs uint32) (*xproto.GetPropertyReply, error)
	geometry(d xproto.Drawable) (*xproto.GetGeometryReply, error)
	image(d xproto.Drawable, x, y int16, width, height uint16) (*xproto.GetImageReply, error)
	pixmapFormats() []xproto.Format
	imageByteOrder() ByteOrder
	maxImageBytes() int
}

func (s *Session) internAtom(name string) (xproto.Atom, error) {
	reply, err := xproto.InternAtom(s.conn, true, uint16(len(name)), name).Reply()
	if err != nil {
		return 0, err
	}
	return reply.Atom, nil
}

func (s *Session) property(win xproto.Window, prop, typ xproto.Atom, longs uint32) (*xproto.GetPropertyReply, error) {
	return xproto.GetProperty(s.conn, false, win, prop, typ, 0, longs).Reply()
}

func (s *Session) geometry(d xproto.Drawable) (*xproto.GetGeometryReply, error) {
	return xproto.GetGeometry(s.conn, d).Reply()
}

func (s *Session) image(d xproto.Drawable, x, y int16, width, height uint16) (*xproto.GetImageReply, error) {
	return xproto.GetImage(s.conn, xproto.ImageFormatZPixmap, d, x, y, width, height, ^uint32(0)).Reply()
}

func (s *Session) pixmapFormats() []xproto.Format {
	return s.setup.PixmapFormats
}

func (s *Session) imageByteOrder() ByteOrder {
	if s.setup.ImageByteOrder == 1 {
		return MSBFirst
	}
	return LSBFirst
}

// maxImageBytes reports how much pixel data a single GetImage reply may
// carry. MaximumRequestLength is expressed in 4-byte units and also
// caps replies on stock servers; a little headroom covers the fixed
// reply header.
func (s *Session) maxImageBytes() int {
	max := int(s.setup.MaximumRequestLength) * 4
	if max <= imageReplyOverhead {
		return 0
	}
	return max - imageReplyOverhead
}

const imageReplyOverhead = 64
