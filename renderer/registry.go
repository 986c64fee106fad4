package renderer

import "github.com/gogpu/gles2/material"

// entry is one registered material type.
type entry struct {
	name      string
	renderer  Renderer
	canonical material.Type
}

// Registry maps material types to renderers. Types are dense: the n-th
// registration receives material.Type(n). Entries live until Destroy.
type Registry struct {
	entries []entry
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Add registers r under the next free material type and returns it.
func (reg *Registry) Add(r Renderer, name string) material.Type {
	t := material.Type(len(reg.entries))
	reg.entries = append(reg.entries, entry{name: name, renderer: r, canonical: t})
	slogger().Debug("renderer: registered", "type", int(t), "name", name)
	return t
}

// AddShared registers a type that delegates to canonical. When r is nil
// the new type draws with the canonical renderer itself; otherwise r
// draws it and takes the canonical resources from GrabShared. It returns
// false when canonical is not registered.
func (reg *Registry) AddShared(canonical material.Type, r Renderer, name string) (material.Type, bool) {
	if !reg.valid(canonical) {
		return 0, false
	}
	canonical = reg.entries[canonical].canonical
	t := material.Type(len(reg.entries))
	reg.entries = append(reg.entries, entry{name: name, renderer: r, canonical: canonical})
	slogger().Debug("renderer: registered shared", "type", int(t), "name", name, "canonical", int(canonical))
	return t, true
}

func (reg *Registry) valid(t material.Type) bool {
	return t >= 0 && int(t) < len(reg.entries)
}

// GrabShared returns a new reference on the shared resource of the
// renderer t delegates to. The caller drops it when done, typically in
// its Destroy. It reports false when that renderer shares nothing.
func (reg *Registry) GrabShared(t material.Type) (*Shared, bool) {
	if !reg.valid(t) {
		return nil, false
	}
	sr, ok := reg.entries[reg.entries[t].canonical].renderer.(SharedResource)
	if !ok {
		return nil, false
	}
	s := sr.Shared()
	if s == nil {
		return nil, false
	}
	return s.Grab(), true
}

// Lookup returns the renderer drawing type t, following delegation.
func (reg *Registry) Lookup(t material.Type) (Renderer, bool) {
	if !reg.valid(t) {
		return nil, false
	}
	e := reg.entries[t]
	if e.renderer != nil {
		return e.renderer, true
	}
	c := reg.entries[e.canonical]
	return c.renderer, c.renderer != nil
}

// Canonical returns the type t delegates to, or t itself.
func (reg *Registry) Canonical(t material.Type) material.Type {
	if !reg.valid(t) {
		return t
	}
	return reg.entries[t].canonical
}

// Name returns the registered name of t, or "" when unknown.
func (reg *Registry) Name(t material.Type) string {
	if !reg.valid(t) {
		return ""
	}
	return reg.entries[t].name
}

// Len returns the number of registered types.
func (reg *Registry) Len() int { return len(reg.entries) }

// IsTransparent reports whether the renderer of t is transparent.
func (reg *Registry) IsTransparent(t material.Type) bool {
	r, ok := reg.Lookup(t)
	return ok && r.IsTransparent()
}

// Destroy releases every renderer in reverse registration order. A
// renderer registered under several types is destroyed once.
func (reg *Registry) Destroy() {
	seen := make(map[Renderer]struct{}, len(reg.entries))
	for i := len(reg.entries) - 1; i >= 0; i-- {
		r := reg.entries[i].renderer
		if r == nil {
			continue
		}
		if _, dup := seen[r]; dup {
			continue
		}
		seen[r] = struct{}{}
		if d, ok := r.(Destroyer); ok {
			d.Destroy()
		}
	}
	reg.entries = nil
}
