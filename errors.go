package stbi

const (
	ioErrorPrefix = "IO error: "

	// reasonUnknown replaces an empty failure reason from the decoder.
	reasonUnknown = "unknown failure"
)

// DecodeError is returned when the native decoder rejects the input. Reason
// is the decoder's own failure text.
type DecodeError struct {
	Reason string
}

func (e *DecodeError) Error() string {
	return e.Reason
}

// IOError is returned when the input could not be read. The decoder is never
// reached in that case.
type IOError struct {
	Err error
}

func (e *IOError) Error() string {
	return ioErrorPrefix + e.Err.Error()
}

func (e *IOError) Unwrap() error {
	return e.Err
}
