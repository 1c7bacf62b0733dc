package qrimage

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/m-lab/go/rtx"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func TestPNG(t *testing.T) {
	data, err := PNG([]byte(`{"test_id":"A3F9K2M7"}`))
	rtx.Must(err, "PNG failed")
	if !bytes.HasPrefix(data, pngMagic) {
		t.Error("output does not start with the PNG signature")
	}
	img, err := png.Decode(bytes.NewReader(data))
	rtx.Must(err, "output is not decodable PNG")
	if img.Bounds().Dx() != Size || img.Bounds().Dy() != Size {
		t.Errorf("image is %v, want %dx%d", img.Bounds(), Size, Size)
	}
}

func TestPNGRejectsOversizedInput(t *testing.T) {
	// Past the symbol capacity of the largest QR version, so the
	// encoder itself must refuse.
	_, err := PNG(bytes.Repeat([]byte("x"), 8000))
	if err == nil {
		t.Fatal("expected an error for oversized input")
	}
	if _, ok := err.(*EncodingError); !ok {
		t.Errorf("expected *EncodingError, got %T", err)
	}
}

func TestASCII(t *testing.T) {
	art, err := ASCII([]byte(`{"status":"healthy"}`))
	rtx.Must(err, "ASCII failed")
	if art == "" {
		t.Fatal("ASCII rendering is empty")
	}
	if !strings.Contains(art, "\n") {
		t.Error("ASCII rendering should span multiple lines")
	}
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "qr.png")
	rtx.Must(WriteFile(path, []byte("hello")), "WriteFile failed")

	data, err := os.ReadFile(path)
	rtx.Must(err, "could not read back the image")
	if !bytes.HasPrefix(data, pngMagic) {
		t.Error("written file does not start with the PNG signature")
	}

	// The temporary file must not survive.
	entries, err := os.ReadDir(dir)
	rtx.Must(err, "could not list the output dir")
	if len(entries) != 1 {
		t.Errorf("expected only the final image in %s, found %d entries", dir, len(entries))
	}
}

func TestWriteFileNothingOnFailure(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "missing", "qr.png")
	if err := WriteFile(path, []byte("hello")); err == nil {
		t.Fatal("expected an error writing into a missing directory")
	}
	entries, err := os.ReadDir(dir)
	rtx.Must(err, "could not list the output dir")
	if len(entries) != 0 {
		t.Errorf("no partial output expected, found %d entries", len(entries))
	}
}
