//go:build linux && !(js && wasm)

package glstate

import (
	"unsafe"

	"github.com/gogpu/wgpu/hal/gles/gl"
)

// contextFuncs adapts the linux *gl.Context, whose buffer uploads take
// uintptr data, to Functions.
type contextFuncs struct {
	*gl.Context
}

func (c contextFuncs) BufferData(target uint32, size int, data unsafe.Pointer, usage uint32) {
	c.Context.BufferData(target, size, uintptr(data), usage)
}

func (c contextFuncs) BufferSubData(target uint32, offset, size int, data unsafe.Pointer) {
	c.Context.BufferSubData(target, offset, size, uintptr(data))
}

// FromContext returns the function table of a loaded GL context.
func FromContext(ctx *gl.Context) Functions {
	if ctx == nil {
		return nil
	}
	return contextFuncs{ctx}
}
