package stbi

import (
	"io"
	"os"
)

func (e *Engine) LoadFile(path string) (*Image, error) {
	return e.LoadFileForced(path, 0)
}

// LoadFileForced reads the whole file and decodes it. Failing to open, read
// or close the file yields an *IOError and the decoder is not called.
func (e *Engine) LoadFileForced(path string, forceComponents int) (*Image, error) {
	b, err := readFile(path)
	if err != nil {
		return nil, &IOError{Err: err}
	}
	return e.DecodeForced(b, forceComponents)
}

// DecodeReader reads r to EOF and decodes the result.
func (e *Engine) DecodeReader(r io.Reader, forceComponents int) (*Image, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, &IOError{Err: err}
	}
	return e.DecodeForced(b, forceComponents)
}

func readFile(path string) (b []byte, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			b, err = nil, cerr
		}
	}()
	return io.ReadAll(f)
}
