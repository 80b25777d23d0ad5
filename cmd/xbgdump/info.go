package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/example/xbgdump/internal/background"
)

type infoCmd struct {
	*root
	fs *flag.FlagSet
}

func (i *infoCmd) FlagSet() *flag.FlagSet {
	return i.fs
}

type backgroundInfo struct {
	Pixmap   uint32
	Geometry background.Geometry
}

// describeBackgroundFn is swappable so tests can run without an X server.
var describeBackgroundFn = describeBackground

func describeBackground() (backgroundInfo, error) {
	session, err := background.Open()
	if err != nil {
		return backgroundInfo{}, err
	}
	defer session.Close()

	pixmap, ok, err := background.LookupRootPixmap(session)
	if err != nil {
		return backgroundInfo{}, err
	}
	if !ok {
		return backgroundInfo{}, background.ErrNoBackground
	}
	geom, err := background.PixmapGeometry(session, pixmap)
	if err != nil {
		return backgroundInfo{}, err
	}
	return backgroundInfo{Pixmap: uint32(pixmap), Geometry: geom}, nil
}

func parseInfoCmd(args []string, r *root) (*infoCmd, error) {
	fs := flag.NewFlagSet("info", flag.ExitOnError)
	i := &infoCmd{root: r, fs: fs}
	fs.Usage = usageFunc(i)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, &UsageError{of: i}
	}
	return i, nil
}

func (i *infoCmd) Run() error {
	info, err := describeBackgroundFn()
	if err != nil {
		if errors.Is(err, background.ErrNoBackground) {
			return errors.New("no background currently set")
		}
		return fmt.Errorf("inspect background: %w", err)
	}
	fmt.Fprintf(os.Stdout, "pixmap: 0x%x\n", info.Pixmap)
	fmt.Fprintf(os.Stdout, "size: %dx%d\n", info.Geometry.Width, info.Geometry.Height)
	fmt.Fprintf(os.Stdout, "depth: %d\n", info.Geometry.Depth)
	return nil
}
