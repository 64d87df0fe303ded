//go:build !stbi_native || !cgo

package native

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"unsafe"

	_ "golang.org/x/image/bmp"
)

var defaultDecoder Decoder = NewGoDecoder()

// GoDecoder stands in for stb_image when cgo or the stbi_native build tag is
// unavailable. It decodes with the codecs registered in the image package
// (jpeg, png, gif and bmp) and keeps stb_image's contract: pixels live in
// memory it allocates itself and must be returned through Free, failures are
// reported through FailureReason, and the flip flag applies to every later
// decode.
//
// A GoDecoder is not safe for concurrent use.
type GoDecoder struct {
	reason string
	flip   bool
	arena  *arena
}

func NewGoDecoder() *GoDecoder {
	return &GoDecoder{arena: newArena()}
}

func (d *GoDecoder) Name() string {
	return "go"
}

func (d *GoDecoder) LoadFromMemory(buf []byte, reqComp int) (pix unsafe.Pointer, x, y, comp int) {
	if reqComp < 0 || reqComp > 4 {
		return d.fail(ReasonBadReqComp)
	}

	// Codecs are not supposed to panic on bad input, but a panic here would
	// otherwise unwind through the caller's lock.
	defer func() {
		if r := recover(); r != nil {
			if pix != nil {
				d.arena.free(pix)
			}
			pix, x, y, comp = d.fail(fmt.Sprintf("%v", r))
		}
	}()

	cfg, _, err := image.DecodeConfig(bytes.NewReader(buf))
	if err != nil {
		return d.fail(reasonFor(err))
	}
	if cfg.Width > MaxDimensions || cfg.Height > MaxDimensions {
		return d.fail(ReasonTooLarge)
	}
	if int64(cfg.Width)*int64(cfg.Height)*4 > math.MaxInt32 {
		return d.fail(ReasonTooLarge)
	}

	img, format, err := image.Decode(bytes.NewReader(buf))
	if err != nil {
		return d.fail(reasonFor(err))
	}

	comp = channelsOf(img, format)
	if format == "png" {
		if n, ok := pngChannels(buf); ok {
			comp = n
		}
	}
	outComp := reqComp
	if outComp == 0 {
		outComp = comp
	}

	bounds := img.Bounds()
	x, y = bounds.Dx(), bounds.Dy()
	stride := x * outComp

	pix, mem, err := d.arena.alloc(stride * y)
	if err != nil {
		return d.fail(ReasonOutOfMemory)
	}
	convert(mem, img, outComp)
	if d.flip {
		flipRows(mem[:stride*y], stride)
	}
	return pix, x, y, comp
}

func (d *GoDecoder) Free(pix unsafe.Pointer) {
	d.arena.free(pix)
}

func (d *GoDecoder) FailureReason() string {
	return d.reason
}

func (d *GoDecoder) SetFlipVerticallyOnLoad(flip bool) {
	d.flip = flip
}

// Live returns the number of buffers handed out and not yet freed.
func (d *GoDecoder) Live() int {
	return len(d.arena.live)
}

func (d *GoDecoder) fail(reason string) (unsafe.Pointer, int, int, int) {
	d.reason = reason
	return nil, 0, 0, 0
}

func reasonFor(err error) string {
	if errors.Is(err, image.ErrFormat) {
		return ReasonUnknownType
	}
	return err.Error()
}

// pngChannels reads the channel count from the IHDR colour type. Go's png
// decoder widens gray+alpha to NRGBA, so the decoded image alone cannot tell
// it apart from rgba. Palette images report false and fall back to
// channelsOf. As with stb_image, a tRNS chunk does not change the count.
func pngChannels(buf []byte) (int, bool) {
	if len(buf) < 26 || string(buf[12:16]) != "IHDR" {
		return 0, false
	}
	switch buf[25] {
	case 0:
		return 1, true
	case 2:
		return 3, true
	case 4:
		return 2, true
	case 6:
		return 4, true
	}
	return 0, false
}

// channelsOf reports the channel count stb_image would detect for the source.
func channelsOf(img image.Image, format string) int {
	switch m := img.(type) {
	case *image.Gray, *image.Gray16:
		return 1
	case *image.YCbCr, *image.CMYK:
		return 3
	case *image.Paletted:
		if format == "gif" {
			return 4
		}
		for _, c := range m.Palette {
			if _, _, _, a := c.RGBA(); a != 0xffff {
				return 4
			}
		}
		return 3
	case *image.RGBA:
		if m.Opaque() {
			return 3
		}
	case *image.RGBA64:
		if m.Opaque() {
			return 3
		}
	}
	return 4
}
