// Package stbi binds an opaque native image decoder (stb_image) to Go.
//
// The package holds no decoding logic of its own. It hands compressed bytes to
// the decoder, takes ownership of the pixel buffer the decoder allocates and
// releases it through the decoder's own free function. It also turns decoder
// and I/O failures into errors.
//
// The native decoder keeps process-wide state (the last failure reason and the
// vertical flip flag). Every call into it is serialized behind one lock, so
// concurrent callers are safe but never run in parallel.
package stbi

import (
	"io"

	"github.com/pressly/stbi/native"
	"github.com/sirupsen/logrus"
)

const (
	VERSION = "1.0.0"
)

var (
	// Logger receives the package's diagnostics.
	Logger = logrus.StandardLogger()

	// DefaultEngine is bound to the decoder selected at build time.
	DefaultEngine = NewEngine(native.Default())
)

// Decode decodes buf with DefaultEngine, keeping the source's channel count.
func Decode(buf []byte) (*Image, error) {
	return DefaultEngine.Decode(buf)
}

// DecodeForced decodes buf with DefaultEngine, converting to forceComponents
// channels (0 keeps the source's channel count).
func DecodeForced(buf []byte, forceComponents int) (*Image, error) {
	return DefaultEngine.DecodeForced(buf, forceComponents)
}

func DecodeReader(r io.Reader, forceComponents int) (*Image, error) {
	return DefaultEngine.DecodeReader(r, forceComponents)
}

func LoadFile(path string) (*Image, error) {
	return DefaultEngine.LoadFile(path)
}

func LoadFileForced(path string, forceComponents int) (*Image, error) {
	return DefaultEngine.LoadFileForced(path, forceComponents)
}

// SetFlipVerticallyOnLoad sets the decoder's process-wide flip flag. It applies
// to every later decode on every engine sharing the decoder.
func SetFlipVerticallyOnLoad(enabled bool) {
	DefaultEngine.SetFlipVerticallyOnLoad(enabled)
}
