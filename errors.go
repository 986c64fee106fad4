package gles2

import "errors"

// Sentinel errors returned by the driver. Draw calls wrap them with
// details; match with errors.Is.
var (
	// ErrNilContext is returned by New when no GL function table is given.
	ErrNilContext = errors.New("gles2: nil GL context")

	// ErrTooManyPrimitives is returned when a draw references more
	// indices than the index format can address.
	ErrTooManyPrimitives = errors.New("gles2: too many primitives")

	// ErrIndexFormatUnsupported is returned for 32-bit index draws on
	// contexts without OES_element_index_uint.
	ErrIndexFormatUnsupported = errors.New("gles2: index format unsupported")

	// ErrUnsupportedContext is returned by New when the built-in shaders
	// cannot be translated for the context's OpenGL ES version.
	ErrUnsupportedContext = errors.New("gles2: unsupported OpenGL ES version")

	// ErrDriverClosed is returned by calls made after Close.
	ErrDriverClosed = errors.New("gles2: driver closed")
)
