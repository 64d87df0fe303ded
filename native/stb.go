//go:build stbi_native && cgo

package native

/*
#cgo CFLAGS: -O2
#cgo pkg-config: stb
#include <stdlib.h>
#include <stb/stb_image.h>
*/
import "C"
import (
	"math"
	"unsafe"
)

var defaultDecoder Decoder = stbDecoder{}

// stbDecoder calls straight into the system stb_image.
type stbDecoder struct{}

func (stbDecoder) Name() string {
	return "stb_image"
}

func (stbDecoder) LoadFromMemory(buf []byte, reqComp int) (unsafe.Pointer, int, int, int) {
	// stb_image takes the length as an int and asserts on req_comp.
	if len(buf) > math.MaxInt32 {
		reasonOverride = ReasonTooLarge
		return nil, 0, 0, 0
	}
	if reqComp < 0 || reqComp > 4 {
		reasonOverride = ReasonBadReqComp
		return nil, 0, 0, 0
	}
	reasonOverride = ""

	var p *C.stbi_uc
	if len(buf) > 0 {
		p = (*C.stbi_uc)(unsafe.Pointer(&buf[0]))
	}
	var x, y, comp C.int
	pix := C.stbi_load_from_memory(p, C.int(len(buf)), &x, &y, &comp, C.int(reqComp))
	if pix == nil {
		return nil, 0, 0, 0
	}
	return unsafe.Pointer(pix), int(x), int(y), int(comp)
}

func (stbDecoder) Free(pix unsafe.Pointer) {
	C.stbi_image_free(pix)
}

// reasonOverride holds failures detected before reaching stb_image, which
// would otherwise report a stale reason.
var reasonOverride string

func (stbDecoder) FailureReason() string {
	if reasonOverride != "" {
		return reasonOverride
	}
	r := C.stbi_failure_reason()
	if r == nil {
		return ""
	}
	return C.GoString(r)
}

func (stbDecoder) SetFlipVerticallyOnLoad(flip bool) {
	var v C.int
	if flip {
		v = 1
	}
	C.stbi_set_flip_vertically_on_load(v)
}
