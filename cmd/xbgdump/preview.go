package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"image/draw"
	"log"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/paint"

	"github.com/example/xbgdump/internal/background"
)

type previewCmd struct {
	*root
	fs *flag.FlagSet
}

func (p *previewCmd) FlagSet() *flag.FlagSet {
	return p.fs
}

func parsePreviewCmd(args []string, r *root) (*previewCmd, error) {
	fs := flag.NewFlagSet("preview", flag.ExitOnError)
	p := &previewCmd{root: r, fs: fs}
	fs.Usage = usageFunc(p)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, &UsageError{of: p}
	}
	return p, nil
}

func (p *previewCmd) Run() error {
	img, err := grabBackgroundFn()
	if err != nil {
		if errors.Is(err, background.ErrNoBackground) {
			return errors.New("no background currently set")
		}
		return fmt.Errorf("preview background: %w", err)
	}
	showImage(img.RGBA())
	return nil
}

func showImage(rgba *image.RGBA) {
	driver.Main(func(s screen.Screen) {
		width := rgba.Bounds().Dx()
		height := rgba.Bounds().Dy()
		w, err := s.NewWindow(&screen.NewWindowOptions{Width: width, Height: height, Title: "xbgdump"})
		if err != nil {
			log.Fatalf("new window: %v", err)
		}
		defer w.Release()
		b, err := s.NewBuffer(image.Point{width, height})
		if err != nil {
			log.Fatalf("new buffer: %v", err)
		}
		defer b.Release()
		draw.Draw(b.RGBA(), b.Bounds(), rgba, image.Point{}, draw.Src)

		for {
			switch e := w.NextEvent().(type) {
			case lifecycle.Event:
				if e.To == lifecycle.StageDead {
					return
				}
			case paint.Event:
				w.Upload(image.Point{}, b, b.Bounds())
				w.Publish()
			case key.Event:
				if e.Direction == key.DirPress && (e.Rune == 'q' || e.Code == key.CodeEscape) {
					return
				}
			}
		}
	})
}
