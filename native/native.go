// Package native describes the foreign image decoder that stbi binds to.
//
// A Decoder owns process-wide state (the last failure reason and the
// vertical flip flag) and is not safe for concurrent use. Callers must
// serialize every method call, including Free.
package native

import "unsafe"

// MaxDimensions is the largest width or height a decoder accepts.
const MaxDimensions = 1 << 24

// Failure reasons shared by the backends.
const (
	ReasonUnknownType = "unknown image type"
	ReasonTooLarge    = "too large"
	ReasonBadReqComp  = "bad req_comp"
	ReasonOutOfMemory = "outofmem"
)

type Decoder interface {
	// Name identifies the backend, ie. "stb_image" or "go".
	Name() string

	// LoadFromMemory decodes buf into 8-bit interleaved pixels with reqComp
	// channels (0 keeps the source's channel count). On success it returns the
	// pixel buffer, which must be handed back to Free exactly once, along with
	// the dimensions and the channel count found in the source. On failure it
	// returns a nil pointer and FailureReason explains why.
	LoadFromMemory(buf []byte, reqComp int) (pix unsafe.Pointer, x, y, comp int)

	// Free returns a buffer produced by LoadFromMemory to the decoder's
	// allocator.
	Free(pix unsafe.Pointer)

	// FailureReason returns the reason for the last failed decode. It is only
	// meaningful right after LoadFromMemory returned nil.
	FailureReason() string

	// SetFlipVerticallyOnLoad flips the rows of every subsequently decoded
	// image, first row at the bottom.
	SetFlipVerticallyOnLoad(flip bool)
}

// Default returns the decoder selected at build time. Build with the
// stbi_native tag (and cgo) to link the system stb_image.
func Default() Decoder {
	return defaultDecoder
}
