package gles2

import "github.com/gogpu/gles2/internal/glstate"

// ErrorCheckLevel selects when the driver polls glGetError.
type ErrorCheckLevel = glstate.CheckLevel

const (
	// ErrorCheckOff never polls.
	ErrorCheckOff = glstate.CheckOff

	// ErrorCheckDraw polls after every draw call.
	ErrorCheckDraw = glstate.CheckDraw

	// ErrorCheckAll polls after every GL call that changes state.
	ErrorCheckAll = glstate.CheckAll
)

// ParseErrorCheckLevel parses "off", "draw" or "all".
func ParseErrorCheckLevel(s string) (ErrorCheckLevel, error) {
	return glstate.ParseCheckLevel(s)
}
