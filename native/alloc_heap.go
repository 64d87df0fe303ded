//go:build !linux && !darwin && !freebsd && !netbsd && !openbsd && !dragonfly

package native

// Without mmap the buffers come from the Go heap. The arena keeps them
// reachable until they are freed.
func sysAlloc(n int) ([]byte, error) {
	return make([]byte, n), nil
}

func sysFree(b []byte) error {
	return nil
}
