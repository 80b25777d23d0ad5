package main

import (
	"errors"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/example/xbgdump/internal/background"
)

func fakeImage(width, height int) *background.Image {
	pix := make([]byte, width*height*3)
	for i := range pix {
		pix[i] = byte(i)
	}
	return &background.Image{Width: width, Height: height, Pix: pix}
}

func TestDumpRunGrabError(t *testing.T) {
	original := grabBackgroundFn
	sentinel := errors.New("boom")
	grabBackgroundFn = func() (*background.Image, error) { return nil, sentinel }
	t.Cleanup(func() { grabBackgroundFn = original })

	cmd := &dumpCmd{stdout: true}
	if err := cmd.Run(); err == nil {
		t.Fatalf("expected error")
	} else {
		if !errors.Is(err, sentinel) {
			t.Fatalf("expected wrapped error, got %v", err)
		}
		if want := "dump background"; !strings.Contains(err.Error(), want) {
			t.Fatalf("expected error to contain %q, got %v", want, err)
		}
	}
}

func TestDumpRunNoBackground(t *testing.T) {
	original := grabBackgroundFn
	grabBackgroundFn = func() (*background.Image, error) {
		return nil, fmt.Errorf("grab: %w", background.ErrNoBackground)
	}
	t.Cleanup(func() { grabBackgroundFn = original })

	cmd := &dumpCmd{stdout: true}
	err := cmd.Run()
	if err == nil {
		t.Fatalf("expected error")
	}
	if want := "no background currently set"; err.Error() != want {
		t.Fatalf("expected %q, got %v", want, err)
	}
}

func TestDumpRunWritesFile(t *testing.T) {
	original := grabBackgroundFn
	grabBackgroundFn = func() (*background.Image, error) { return fakeImage(2, 2), nil }
	t.Cleanup(func() { grabBackgroundFn = original })

	out := filepath.Join(t.TempDir(), "bg.png")
	cmd := &dumpCmd{output: out}
	if err := cmd.Run(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	f, err := os.Open(out)
	if err != nil {
		t.Fatalf("open output: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 2 || b.Dy() != 2 {
		t.Fatalf("unexpected bounds %v", b)
	}
}

func TestParseDumpStdoutOperand(t *testing.T) {
	cmd, err := parseDumpCmd([]string{"-"}, nil)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if !cmd.stdout {
		t.Fatalf("expected '-' operand to select stdout")
	}
}

func TestParseDumpOutputOperand(t *testing.T) {
	cmd, err := parseDumpCmd([]string{"wallpaper.bmp"}, nil)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if cmd.output != "wallpaper.bmp" {
		t.Fatalf("expected operand to set output, got %q", cmd.output)
	}
	format, err := cmd.resolveFormat()
	if err != nil {
		t.Fatalf("resolve format: %v", err)
	}
	if format != "bmp" {
		t.Fatalf("expected bmp from extension, got %q", format)
	}
}

func TestParseDumpStdoutClipboardConflict(t *testing.T) {
	_, err := parseDumpCmd([]string{"-stdout", "-to-clipboard"}, nil)
	if err == nil {
		t.Fatalf("expected error")
	}
	if want := "-stdout cannot be used"; !strings.Contains(err.Error(), want) {
		t.Fatalf("expected error to mention %q, got %v", want, err)
	}
}

func TestDumpRunBadFormat(t *testing.T) {
	original := grabBackgroundFn
	grabBackgroundFn = func() (*background.Image, error) { return fakeImage(1, 1), nil }
	t.Cleanup(func() { grabBackgroundFn = original })

	cmd := &dumpCmd{stdout: true, format: "gif"}
	if err := cmd.Run(); err == nil || !strings.Contains(err.Error(), "unsupported output format") {
		t.Fatalf("expected format error, got %v", err)
	}
}

func TestInfoRunNoBackground(t *testing.T) {
	original := describeBackgroundFn
	describeBackgroundFn = func() (backgroundInfo, error) {
		return backgroundInfo{}, background.ErrNoBackground
	}
	t.Cleanup(func() { describeBackgroundFn = original })

	cmd := &infoCmd{}
	err := cmd.Run()
	if err == nil || err.Error() != "no background currently set" {
		t.Fatalf("expected distinct no-background diagnostic, got %v", err)
	}
}

func TestInfoRunSessionError(t *testing.T) {
	original := describeBackgroundFn
	sentinel := errors.New("connection refused")
	describeBackgroundFn = func() (backgroundInfo, error) {
		return backgroundInfo{}, fmt.Errorf("connect X server: %w", sentinel)
	}
	t.Cleanup(func() { describeBackgroundFn = original })

	cmd := &infoCmd{}
	err := cmd.Run()
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected wrapped connection error, got %v", err)
	}
	if !strings.Contains(err.Error(), "inspect background") {
		t.Fatalf("expected stage context, got %v", err)
	}
}
