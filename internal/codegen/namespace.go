package codegen

import "slices"

// ScopeEmitter writes the target syntax for entering and leaving namespaces.
type ScopeEmitter interface {
	// OpenScopes is called once per transition with every segment being
	// entered, outermost first.
	OpenScopes(names []string)

	// CloseScope is called for each segment being left, innermost first.
	CloseScope(name string)
}

// NamespaceStack tracks the namespace path currently open in one artifact.
// A fresh stack is empty; Close must be called before the artifact ends.
type NamespaceStack struct {
	open []string
	emit ScopeEmitter
}

// NewNamespaceStack returns an empty stack writing through e.
func NewNamespaceStack(e ScopeEmitter) *NamespaceStack {
	return &NamespaceStack{emit: e}
}

// TransitionTo closes scopes until the open path is a prefix of path, then
// opens the remaining segments. Afterwards the open path equals path. A
// transition to the already open path emits nothing.
func (s *NamespaceStack) TransitionTo(path []string) {
	for len(s.open) > 0 && !s.prefixOf(path) {
		last := s.open[len(s.open)-1]
		s.open = s.open[:len(s.open)-1]
		s.emit.CloseScope(last)
	}

	if len(s.open) < len(path) {
		added := slices.Clone(path[len(s.open):])
		s.open = append(s.open, added...)
		s.emit.OpenScopes(added)
	}
}

// Close closes every open scope.
func (s *NamespaceStack) Close() {
	s.TransitionTo(nil)
}

// Depth returns the number of open scopes.
func (s *NamespaceStack) Depth() int {
	return len(s.open)
}

// Open returns a copy of the open path.
func (s *NamespaceStack) Open() []string {
	return slices.Clone(s.open)
}

func (s *NamespaceStack) prefixOf(path []string) bool {
	return len(s.open) <= len(path) && slices.Equal(s.open, path[:len(s.open)])
}
