package encode

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
)

func TestParseFormat(t *testing.T) {
	cases := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatPNG, false},
		{"png", FormatPNG, false},
		{"BMP", FormatBMP, false},
		{"tif", FormatTIFF, false},
		{"tiff", FormatTIFF, false},
		{"gif", "", true},
	}
	for _, tc := range cases {
		got, err := ParseFormat(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseFormat(%q): expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseFormat(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseFormat(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFormatFromPath(t *testing.T) {
	cases := map[string]Format{
		"bg.png":       FormatPNG,
		"bg.BMP":       FormatBMP,
		"shot.tiff":    FormatTIFF,
		"shot.tif":     FormatTIFF,
		"noextension":  FormatPNG,
		"weird.jpeg99": FormatPNG,
	}
	for path, want := range cases {
		if got := FormatFromPath(path); got != want {
			t.Errorf("FormatFromPath(%q) = %q, want %q", path, got, want)
		}
	}
}

func TestEncodePNGRoundTrip(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 2, 1))
	src.SetRGBA(0, 0, color.RGBA{0x30, 0x20, 0x10, 0xFF})
	src.SetRGBA(1, 0, color.RGBA{0x60, 0x50, 0x40, 0xFF})

	var buf bytes.Buffer
	if err := Encode(&buf, src, FormatPNG); err != nil {
		t.Fatalf("encode: %v", err)
	}
	decoded, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	r, g, b, _ := decoded.At(1, 0).RGBA()
	if byte(r>>8) != 0x60 || byte(g>>8) != 0x50 || byte(b>>8) != 0x40 {
		t.Fatalf("pixel (1,0) = %02x %02x %02x, want 60 50 40", r>>8, g>>8, b>>8)
	}
}

func TestEncodeBMPAndTIFFProduceData(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 3, 3))
	for _, format := range []Format{FormatBMP, FormatTIFF} {
		var buf bytes.Buffer
		if err := Encode(&buf, src, format); err != nil {
			t.Fatalf("%s: %v", format, err)
		}
		if buf.Len() == 0 {
			t.Fatalf("%s: no output written", format)
		}
	}
}
