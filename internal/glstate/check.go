package glstate

import (
	"fmt"
	"strings"

	"github.com/gogpu/wgpu/hal/gles/gl"
)

// CheckLevel selects when GL errors are polled.
type CheckLevel int

const (
	// CheckOff never calls GetError.
	CheckOff CheckLevel = iota
	// CheckDraw polls after every draw call.
	CheckDraw
	// CheckAll polls after every GL call issued by the bridge.
	CheckAll
)

// String returns the level name.
func (l CheckLevel) String() string {
	switch l {
	case CheckOff:
		return "off"
	case CheckDraw:
		return "draw"
	case CheckAll:
		return "all"
	default:
		return fmt.Sprintf("CheckLevel(%d)", int(l))
	}
}

// ParseCheckLevel parses "off", "draw" or "all".
func ParseCheckLevel(s string) (CheckLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "off", "none", "":
		return CheckOff, nil
	case "draw":
		return CheckDraw, nil
	case "all":
		return CheckAll, nil
	}
	return CheckOff, fmt.Errorf("glstate: unknown error check level %q", s)
}

// maxErrorPolls bounds the GetError loop. A lost context can report
// errors indefinitely.
const maxErrorPolls = 16

// CheckError drains the GL error queue, logging each error against op.
// It reports whether any error was pending.
func CheckError(f Functions, op string) bool {
	found := false
	for range maxErrorPolls {
		code := f.GetError()
		if code == gl.NO_ERROR {
			break
		}
		found = true
		slogger().Error("gl error", "op", op, "error", ErrorName(code), "code", code)
	}
	return found
}

// ErrorName returns the GL name of an error code.
func ErrorName(code uint32) string {
	switch code {
	case gl.NO_ERROR:
		return "GL_NO_ERROR"
	case gl.INVALID_ENUM:
		return "GL_INVALID_ENUM"
	case gl.INVALID_VALUE:
		return "GL_INVALID_VALUE"
	case gl.INVALID_OPERATION:
		return "GL_INVALID_OPERATION"
	case gl.OUT_OF_MEMORY:
		return "GL_OUT_OF_MEMORY"
	case gl.INVALID_FRAMEBUFFER_OPERATION:
		return "GL_INVALID_FRAMEBUFFER_OPERATION"
	default:
		return fmt.Sprintf("0x%04X", code)
	}
}
