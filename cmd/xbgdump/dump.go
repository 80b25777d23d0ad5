package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/example/xbgdump/internal/background"
	"github.com/example/xbgdump/internal/clipboard"
	"github.com/example/xbgdump/internal/encode"
)

type dumpCmd struct {
	output      string
	stdout      bool
	toClipboard bool
	format      string
	*root
	fs *flag.FlagSet
}

func (d *dumpCmd) FlagSet() *flag.FlagSet {
	return d.fs
}

// grabBackgroundFn is swappable so tests can run without an X server.
var grabBackgroundFn = grabBackground

func grabBackground() (*background.Image, error) {
	session, err := background.Open()
	if err != nil {
		return nil, err
	}
	defer session.Close()
	return background.Grab(session)
}

func parseDumpCmd(args []string, r *root) (*dumpCmd, error) {
	fs := flag.NewFlagSet("dump", flag.ExitOnError)
	d := &dumpCmd{root: r, fs: fs}
	fs.Usage = usageFunc(d)
	defaultOutput := "bg.png"
	if r != nil && r.config != nil && r.config.Output != "" {
		defaultOutput = r.config.Output
	}
	fs.StringVar(&d.output, "output", defaultOutput, "write the background to this file path")
	fs.StringVar(&d.format, "format", "", "output format: png, bmp or tiff (default: from the file extension)")
	fs.BoolVar(&d.stdout, "stdout", false, "write image data to stdout")
	fs.BoolVar(&d.toClipboard, "to-clipboard", false, "copy the background to the clipboard")
	fs.BoolVar(&d.toClipboard, "to-clip", false, "copy the background to the clipboard (alias)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if d.toClipboard && d.stdout {
		return nil, fmt.Errorf("-stdout cannot be used with -to-clipboard")
	}
	// A single operand names the output file; "-" selects stdout.
	operands := fs.Args()
	if len(operands) > 1 {
		return nil, &UsageError{of: d}
	}
	if len(operands) == 1 {
		if operands[0] == "-" {
			d.stdout = true
		} else {
			d.output = operands[0]
		}
	}
	return d, nil
}

func (d *dumpCmd) Run() error {
	img, err := grabBackgroundFn()
	if err != nil {
		if errors.Is(err, background.ErrNoBackground) {
			return errors.New("no background currently set")
		}
		return fmt.Errorf("dump background: %w", err)
	}
	rgba := img.RGBA()

	if d.toClipboard {
		if err := clipboard.WriteImage(rgba); err != nil {
			return fmt.Errorf("copy background to clipboard: %w", err)
		}
		fmt.Fprintln(os.Stderr, "copied background to clipboard")
		if d.root != nil {
			d.root.notifyCopy("background")
		}
		return nil
	}

	format, err := d.resolveFormat()
	if err != nil {
		return err
	}

	var w io.Writer
	if d.stdout {
		w = os.Stdout
	} else {
		f, err := os.Create(d.output)
		if err != nil {
			return fmt.Errorf("create output %q: %w", d.output, err)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil {
				log.Printf("close %s: %v", d.output, cerr)
			}
		}()
		w = f
	}
	if err := encode.Encode(w, rgba, format); err != nil {
		if d.stdout {
			return fmt.Errorf("write %s to stdout: %w", format, err)
		}
		return fmt.Errorf("write %s to %q: %w", format, d.output, err)
	}
	if d.stdout {
		return nil
	}
	saved := d.output
	if abs, err := filepath.Abs(d.output); err == nil {
		saved = abs
	}
	fmt.Fprintf(os.Stderr, "saved %s\n", saved)
	if d.root != nil {
		d.root.notifySave(saved)
	}
	return nil
}

func (d *dumpCmd) resolveFormat() (encode.Format, error) {
	name := d.format
	if strings.TrimSpace(name) == "" && d.root != nil && d.root.config != nil {
		name = d.root.config.Format
	}
	if strings.TrimSpace(name) != "" {
		return encode.ParseFormat(name)
	}
	if d.stdout {
		return encode.FormatPNG, nil
	}
	return encode.FormatFromPath(d.output), nil
}
