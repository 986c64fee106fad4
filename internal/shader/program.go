package shader

import (
	"errors"
	"fmt"

	"github.com/gogpu/gles2/internal/glstate"
	"github.com/gogpu/wgpu/hal/gles/gl"
)

// Errors returned by Link.
var (
	ErrTranslate = errors.New("shader: translation failed")
	ErrCompile   = errors.New("shader: compilation failed")
	ErrLink      = errors.New("shader: link failed")
)

// Link translates the entry points of p from source, compiles both stages
// and links them. The shader objects are deleted once linked; the caller
// owns the returned program.
func Link(f glstate.Functions, c Compiler, source string, p Pair) (uint32, error) {
	vsCode, err := c.Compile(source, p.Vertex)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %w", ErrTranslate, p.Vertex, err)
	}
	fsCode, err := c.Compile(source, p.Fragment)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %w", ErrTranslate, p.Fragment, err)
	}

	vs, err := compileStage(f, gl.VERTEX_SHADER, vsCode)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", p.Vertex, err)
	}
	fs, err := compileStage(f, gl.FRAGMENT_SHADER, fsCode)
	if err != nil {
		f.DeleteShader(vs)
		return 0, fmt.Errorf("%s: %w", p.Fragment, err)
	}

	program := f.CreateProgram()
	f.AttachShader(program, vs)
	f.AttachShader(program, fs)
	f.LinkProgram(program)
	f.DeleteShader(vs)
	f.DeleteShader(fs)

	var status int32
	f.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		log := f.GetProgramInfoLog(program)
		f.DeleteProgram(program)
		return 0, fmt.Errorf("%w: %s: %s", ErrLink, p, log)
	}
	if log := f.GetProgramInfoLog(program); log != "" {
		slogger().Debug("shader: link info", "program", p.String(), "info", log)
	}
	return program, nil
}

func compileStage(f glstate.Functions, stage uint32, code string) (uint32, error) {
	id := f.CreateShader(stage)
	f.ShaderSource(id, code)
	f.CompileShader(id)

	var status int32
	f.GetShaderiv(id, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		log := f.GetShaderInfoLog(id)
		f.DeleteShader(id)
		return 0, fmt.Errorf("%w: %s", ErrCompile, log)
	}
	return id, nil
}
