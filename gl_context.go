//go:build (linux || windows) && !(js && wasm)

package gles2

import (
	"github.com/gogpu/gles2/internal/glstate"
	"github.com/gogpu/wgpu/hal/gles/gl"
)

// FromContext returns the function table of a loaded GL context, or nil
// when ctx is nil.
//
// Example:
//
//	ctx := &gl.Context{}
//	if err := ctx.Load(getProcAddr); err != nil {
//	    return err
//	}
//	drv, err := gles2.New(gles2.FromContext(ctx), gles2.WithScreenSize(w, h))
func FromContext(ctx *gl.Context) GL {
	return glstate.FromContext(ctx)
}
