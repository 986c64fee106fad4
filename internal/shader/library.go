package shader

import (
	"fmt"

	"github.com/gogpu/gles2/internal/glstate"
	"github.com/gogpu/gles2/renderer"
)

// Library links programs on demand and shares them between renderers.
//
// Each Acquire returns a reference on the program; the program is deleted
// when the last reference is dropped.
type Library struct {
	bridge   *glstate.Bridge
	compiler Compiler
	source   string
	programs map[Pair]libraryEntry
}

type libraryEntry struct {
	program uint32
	ref     *renderer.Shared
}

// NewLibrary returns a library compiling the built-in module with c.
func NewLibrary(b *glstate.Bridge, c Compiler) *Library {
	return &Library{
		bridge:   b,
		compiler: c,
		source:   Source(),
		programs: make(map[Pair]libraryEntry),
	}
}

// Acquire returns the program for p and a reference on it. A failed link
// is logged and returns a zero program with a nil reference; renderers
// holding it skip their draws.
func (l *Library) Acquire(p Pair) (uint32, *renderer.Shared) {
	if e, ok := l.programs[p]; ok {
		return e.program, e.ref.Grab()
	}
	f := l.bridge.Functions()
	program, err := Link(f, l.compiler, l.source, p)
	if err != nil {
		slogger().Error("shader: program unavailable", "program", p.String(), "err", err)
		return 0, nil
	}
	if err := l.bindLate(program, p); err != nil {
		slogger().Error("shader: program unavailable", "program", p.String(), "err", err)
		l.bridge.ReleaseProgram(program)
		f.DeleteProgram(program)
		return 0, nil
	}
	ref := renderer.NewShared(p.String(), func() {
		l.bridge.ReleaseProgram(program)
		f.DeleteProgram(program)
		delete(l.programs, p)
	})
	l.programs[p] = libraryEntry{program: program, ref: ref}
	slogger().Debug("shader: program linked", "program", p.String(), "name", program)
	return program, ref
}

// Len returns the number of live programs.
func (l *Library) Len() int { return len(l.programs) }

// bindLate assigns the constants block and the sampler units of program
// when its GLSL could not declare them. Sampler uniforms are program
// state, so the program is bound through the state cache first.
func (l *Library) bindLate(program uint32, p Pair) error {
	lb, ok := l.compiler.(LateBinder)
	if !ok || !lb.LateBinding() {
		return nil
	}
	f := l.bridge.Functions()
	ub, ok := f.(glstate.UniformBinder)
	if !ok {
		return fmt.Errorf("%w: %s needs uniform binding calls the context lacks", ErrLink, p)
	}

	// Every block of the built-in module is the constants block; naga
	// names it per stage.
	var blocks int32
	f.GetProgramiv(program, ActiveUniformBlocks, &blocks)
	for i := range uint32(max(blocks, 0)) {
		ub.UniformBlockBinding(program, i, UniformBinding)
	}

	l.bridge.SetProgram(program)
	for _, entry := range []string{p.Vertex, p.Fragment} {
		for name, unit := range lb.SamplerUnits(entry) {
			if loc := ub.GetUniformLocation(program, name); loc >= 0 {
				ub.Uniform1i(loc, int32(unit))
			}
		}
	}
	return nil
}
