package stbi

import (
	"fmt"
	"sync"
	"time"
	"unsafe"

	"github.com/pressly/stbi/native"
	"github.com/rcrowley/go-metrics"
	"github.com/sirupsen/logrus"
)

// boundary serializes every call into a native decoder. The decoders keep
// their failure reason and flip flag in process-wide state, so one lock
// covers all engines.
var boundary sync.Mutex

// Engine adapts a native.Decoder. Every Engine over the same decoder shares
// that decoder's flip flag.
type Engine struct {
	ng native.Decoder
}

func NewEngine(ng native.Decoder) *Engine {
	return &Engine{ng: ng}
}

func (e *Engine) Version() string {
	return fmt.Sprintf("stbi %s (%s)", VERSION, e.ng.Name())
}

func (e *Engine) Decode(buf []byte) (*Image, error) {
	return e.DecodeForced(buf, 0)
}

// DecodeForced decodes buf, converting to forceComponents channels when it is
// between 1 and 4. Zero keeps the source's channel count. The input is handed
// to the decoder as is and decoded in a single attempt.
func (e *Engine) DecodeForced(buf []byte, forceComponents int) (*Image, error) {
	m := metrics.GetOrRegisterTimer("fn.stbi.Decode", nil)
	defer m.UpdateSince(time.Now())

	// stb_image asserts on an out of range req_comp instead of failing.
	if forceComponents < 0 || forceComponents > 4 {
		return nil, e.failed(native.ReasonBadReqComp, len(buf))
	}

	pix, w, h, comp, reason := e.load(buf, forceComponents)
	if pix == nil {
		if reason == "" {
			reason = reasonUnknown
		}
		return nil, e.failed(reason, len(buf))
	}

	channels := comp
	if forceComponents != 0 {
		channels = forceComponents
	}
	return newImage(pix, w, h, channels, e.free), nil
}

// SetFlipVerticallyOnLoad sets the decoder's flip flag for all later decodes.
func (e *Engine) SetFlipVerticallyOnLoad(enabled bool) {
	boundary.Lock()
	defer boundary.Unlock()
	e.ng.SetFlipVerticallyOnLoad(enabled)
}

// load runs the decode and, on failure, reads the reason before anyone else
// can overwrite it.
func (e *Engine) load(buf []byte, reqComp int) (pix unsafe.Pointer, w, h, comp int, reason string) {
	boundary.Lock()
	defer boundary.Unlock()

	pix, w, h, comp = e.ng.LoadFromMemory(buf, reqComp)
	if pix == nil {
		reason = e.ng.FailureReason()
	}
	return
}

func (e *Engine) free(pix unsafe.Pointer) {
	boundary.Lock()
	defer boundary.Unlock()
	e.ng.Free(pix)
}

func (e *Engine) failed(reason string, size int) error {
	metrics.GetOrRegisterCounter("fn.stbi.DecodeFailure", nil).Inc(1)
	Logger.WithFields(logrus.Fields{
		"decoder": e.ng.Name(),
		"size":    size,
	}).Debugf("stbi: decode failed: %s", reason)
	return &DecodeError{Reason: reason}
}
