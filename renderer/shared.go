package renderer

// Shared is a reference counted resource used by several renderers, such
// as the GL program behind a family of material types. The release
// function runs when the last reference is dropped.
//
// The count is a plain integer: renderers live on the GL goroutine.
type Shared struct {
	name    string
	refs    int
	release func()
}

// NewShared returns a resource holding one reference.
func NewShared(name string, release func()) *Shared {
	return &Shared{name: name, refs: 1, release: release}
}

// Grab adds a reference and returns s.
func (s *Shared) Grab() *Shared {
	s.refs++
	return s
}

// Drop releases a reference. It reports whether this was the last one and
// the resource has been released. Dropping a released resource is a no-op.
func (s *Shared) Drop() bool {
	if s.refs <= 0 {
		return false
	}
	s.refs--
	if s.refs > 0 {
		return false
	}
	slogger().Debug("renderer: shared resource released", "name", s.name)
	if s.release != nil {
		s.release()
	}
	return true
}

// Refs returns the current reference count.
func (s *Shared) Refs() int { return s.refs }

// Name returns the resource name given at creation.
func (s *Shared) Name() string { return s.name }
