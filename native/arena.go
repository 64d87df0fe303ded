package native

import "unsafe"

// arena tracks the buffers a GoDecoder has handed out. Memory comes from
// sysAlloc, so it is not owned by the Go heap on platforms that support it.
type arena struct {
	live map[uintptr][]byte
}

func newArena() *arena {
	return &arena{live: map[uintptr][]byte{}}
}

func (a *arena) alloc(n int) (unsafe.Pointer, []byte, error) {
	size := n
	if size == 0 {
		size = 1 // keep every buffer addressable
	}
	mem, err := sysAlloc(size)
	if err != nil {
		return nil, nil, err
	}
	p := unsafe.Pointer(&mem[0])
	a.live[uintptr(p)] = mem
	return p, mem[:n], nil
}

// free panics on pointers it did not hand out, which covers double frees.
// Freeing nil is a no-op, as with C free.
func (a *arena) free(p unsafe.Pointer) {
	if p == nil {
		return
	}
	mem, ok := a.live[uintptr(p)]
	if !ok {
		panic("native: free of a buffer not owned by this decoder")
	}
	delete(a.live, uintptr(p))
	if err := sysFree(mem); err != nil {
		panic("native: " + err.Error())
	}
}
