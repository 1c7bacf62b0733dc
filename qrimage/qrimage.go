// Package qrimage renders payload bytes into scannable QR images. It
// wraps the symbol encoder behind a bytes-in, image-out contract: the
// payload size guard runs before anything reaches this package, and the
// encoder's own capacity rejection is the authoritative backstop.
package qrimage

import (
	"fmt"
	"os"
	"path/filepath"

	qrcode "github.com/skip2/go-qrcode"
)

// Size is the rendered PNG edge length in pixels.
const Size = 512

// Level is the error-correction level the scanner hardware is tuned
// for. Low maximizes payload capacity per symbol version.
const Level = qrcode.Low

// EncodingError reports that the symbol encoder rejected the payload.
// Unreachable when the size guard is correct, but handled regardless.
type EncodingError struct {
	Err error
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("qr encoding failed: %v", e.Err)
}

func (e *EncodingError) Unwrap() error { return e.Err }

// PNG renders data as a PNG image.
func PNG(data []byte) ([]byte, error) {
	png, err := qrcode.Encode(string(data), Level, Size)
	if err != nil {
		return nil, &EncodingError{Err: err}
	}
	return png, nil
}

// ASCII renders data as a half-block terminal drawing.
func ASCII(data []byte) (string, error) {
	q, err := qrcode.New(string(data), Level)
	if err != nil {
		return "", &EncodingError{Err: err}
	}
	return q.ToSmallString(false), nil
}

// WriteFile renders data as a PNG and writes it to path. The write is
// all-or-nothing: the image lands in a temporary file in the target
// directory and is renamed into place only once fully written.
func WriteFile(path string, data []byte) error {
	png, err := PNG(data)
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".qr-*.png")
	if err != nil {
		return err
	}
	name := tmp.Name()
	if _, err := tmp.Write(png); err != nil {
		tmp.Close()
		os.Remove(name)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(name)
		return err
	}
	if err := os.Rename(name, path); err != nil {
		os.Remove(name)
		return err
	}
	return nil
}
