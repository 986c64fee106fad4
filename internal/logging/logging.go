// Package logging holds the slog logger shared by the gles2 packages.
package logging

import (
	"context"
	"log/slog"
	"sync/atomic"
)

type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

// Nop discards everything. Enabled reports false at every level, so
// callers skip building attributes.
var Nop = slog.New(nopHandler{})

// Holder is a logger slot that may be swapped while other goroutines
// log through it. The zero value logs nothing.
type Holder struct {
	p atomic.Pointer[slog.Logger]
}

// Logger returns the installed logger, or Nop if none was set.
func (h *Holder) Logger() *slog.Logger {
	if l := h.p.Load(); l != nil {
		return l
	}
	return Nop
}

// Set installs l; nil restores Nop.
func (h *Holder) Set(l *slog.Logger) {
	if l == nil {
		l = Nop
	}
	h.p.Store(l)
}
