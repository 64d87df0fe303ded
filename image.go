package stbi

import (
	"image"
	"image/color"
	"runtime"
	"sync"
	"sync/atomic"
	"unsafe"

	"github.com/rcrowley/go-metrics"
	"github.com/sirupsen/logrus"
)

// Image is a decoded picture whose pixels live in memory owned by the native
// decoder. Pixels are 8-bit, interleaved, tightly packed and top row first
// (unless the flip flag was set).
//
// Call Release when done. Pix may outlive the Image value itself, so an Image
// that becomes unreachable unreleased is only logged as a leak, never freed.
// An Image must not be read concurrently with its Release.
type Image struct {
	width    int
	height   int
	channels int
	pix      []byte

	release  func()
	once     sync.Once
	released atomic.Bool
}

func newImage(p unsafe.Pointer, w, h, channels int, free func(unsafe.Pointer)) *Image {
	im := &Image{
		width:    w,
		height:   h,
		channels: channels,
		pix:      unsafe.Slice((*byte)(p), w*h*channels),
		release:  func() { free(p) },
	}
	metrics.GetOrRegisterCounter("fn.stbi.Live", nil).Inc(1)

	runtime.SetFinalizer(im, func(im *Image) {
		Logger.WithFields(logrus.Fields{
			"width":    im.width,
			"height":   im.height,
			"channels": im.channels,
		}).Warn("stbi: image was never released, its pixels leak")
	})
	return im
}

func (im *Image) Width() int {
	return im.width
}

func (im *Image) Height() int {
	return im.height
}

// Channels is 1 (gray), 2 (gray, alpha), 3 (rgb) or 4 (rgba).
func (im *Image) Channels() int {
	return im.channels
}

// Stride is the distance in bytes between rows.
func (im *Image) Stride() int {
	return im.width * im.channels
}

// Pix returns the pixel buffer itself, not a copy. It must not be used after
// Release, and is nil once the image is released.
func (im *Image) Pix() []byte {
	return im.pix
}

// Release hands the pixels back to the decoder that allocated them. It is
// safe to call more than once.
func (im *Image) Release() {
	im.once.Do(func() {
		runtime.SetFinalizer(im, nil)
		im.released.Store(true)
		im.pix = nil

		release := im.release
		im.release = nil
		release()

		metrics.GetOrRegisterCounter("fn.stbi.Live", nil).Dec(1)
		metrics.GetOrRegisterCounter("fn.stbi.Release", nil).Inc(1)
	})
}

func (im *Image) Released() bool {
	return im.released.Load()
}

func (im *Image) Bounds() image.Rectangle {
	return image.Rect(0, 0, im.width, im.height)
}

func (im *Image) ColorModel() color.Model {
	switch im.channels {
	case 1:
		return color.GrayModel
	case 3:
		return color.RGBAModel
	default:
		return color.NRGBAModel
	}
}

func (im *Image) At(x, y int) color.Color {
	if im.pix == nil || !(image.Point{x, y}.In(im.Bounds())) {
		return im.ColorModel().Convert(color.Transparent)
	}
	p := im.pix[y*im.Stride()+x*im.channels:]
	switch im.channels {
	case 1:
		return color.Gray{Y: p[0]}
	case 2:
		return color.NRGBA{R: p[0], G: p[0], B: p[0], A: p[1]}
	case 3:
		return color.RGBA{R: p[0], G: p[1], B: p[2], A: 0xff}
	default:
		return color.NRGBA{R: p[0], G: p[1], B: p[2], A: p[3]}
	}
}
