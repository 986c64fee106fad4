//go:build windows && !(js && wasm)

package glstate

import "github.com/gogpu/wgpu/hal/gles/gl"

var _ Functions = (*gl.Context)(nil)

// FromContext returns the function table of a loaded GL context.
func FromContext(ctx *gl.Context) Functions {
	if ctx == nil {
		return nil
	}
	return ctx
}
