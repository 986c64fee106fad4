package gles2

import "github.com/gogpu/gles2/internal/glstate"

// GL is the OpenGL ES function table the driver calls. On linux and
// windows, FromContext adapts a *gl.Context loaded by
// github.com/gogpu/wgpu/hal/gles/gl.
type GL = glstate.Functions
