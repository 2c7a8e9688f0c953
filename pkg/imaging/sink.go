package imaging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// WriterSink buffers a render and encodes it to W on Finalize
type WriterSink struct {
	*Image
	W      io.Writer
	Format Format
}

// NewWriterSink creates a sink that encodes to w
func NewWriterSink(w io.Writer, format Format, width, height int) (*WriterSink, error) {
	format, err := ParseFormat(string(format))
	if err != nil {
		return nil, err
	}
	img, err := New(width, height)
	if err != nil {
		return nil, err
	}
	return &WriterSink{Image: img, W: w, Format: format}, nil
}

// Finalize encodes the buffered image
func (s *WriterSink) Finalize(gamma float64) error {
	return Encode(s.W, s.Image, s.Format, gamma)
}

// FileSink buffers a render and writes it to Path on Finalize
type FileSink struct {
	*Image
	Path   string
	Format Format
}

// NewFileSink creates a sink for path, inferring the format from its extension
// when format is empty
func NewFileSink(path string, format Format, width, height int) (*FileSink, error) {
	if format == "" {
		var err error
		if format, err = FormatFromPath(path); err != nil {
			return nil, err
		}
	} else {
		var err error
		if format, err = ParseFormat(string(format)); err != nil {
			return nil, err
		}
	}
	img, err := New(width, height)
	if err != nil {
		return nil, err
	}
	return &FileSink{Image: img, Path: path, Format: format}, nil
}

// Finalize creates the parent directory if needed and writes the file
func (s *FileSink) Finalize(gamma float64) (err error) {
	if dir := filepath.Dir(s.Path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("while creating output directory: %w", err)
		}
	}

	f, err := os.Create(s.Path)
	if err != nil {
		return fmt.Errorf("while creating %s: %w", s.Path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("while closing %s: %w", s.Path, closeErr)
		}
	}()

	if err := Encode(f, s.Image, s.Format, gamma); err != nil {
		return fmt.Errorf("while writing %s: %w", s.Path, err)
	}
	return nil
}
