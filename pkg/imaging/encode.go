package imaging

import (
	"bufio"
	"errors"
	"fmt"
	"image/png"
	"io"
	"path/filepath"
	"strings"
)

// ErrUnknownFormat is returned for an output format other than ppm or png
var ErrUnknownFormat = errors.New("unknown image format")

// Format selects the output encoding
type Format string

const (
	FormatPPM Format = "ppm"
	FormatPNG Format = "png"
)

// ParseFormat accepts a format name, case-insensitively
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimPrefix(name, "."))); f {
	case FormatPPM, FormatPNG:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
}

// FormatFromPath infers the format from a file extension
func FormatFromPath(path string) (Format, error) {
	return ParseFormat(filepath.Ext(path))
}

// Extension returns the file extension including the dot
func (f Format) Extension() string {
	return "." + string(f)
}

// Encode writes img in the given format, applying gamma to every channel
func Encode(w io.Writer, img *Image, format Format, gamma float64) error {
	switch format {
	case FormatPPM:
		return EncodePPM(w, img, gamma)
	case FormatPNG:
		if err := png.Encode(w, img.ToNRGBA(gamma)); err != nil {
			return fmt.Errorf("while encoding png: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// EncodePPM writes a plain-text P3 image: header, then one "r g b" line per pixel, top row first
func EncodePPM(w io.Writer, img *Image, gamma float64) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "P3\n%d %d\n255\n", img.Width, img.Height); err != nil {
		return fmt.Errorf("while writing ppm header: %w", err)
	}
	for _, c := range img.pixels {
		px := EncodeColor(c, gamma)
		if _, err := fmt.Fprintf(bw, "%d %d %d\n", px.R, px.G, px.B); err != nil {
			return fmt.Errorf("while writing ppm pixels: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("while flushing ppm: %w", err)
	}
	return nil
}
