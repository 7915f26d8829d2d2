package codegen

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type scopeRecorder struct {
	events []string
}

func (r *scopeRecorder) OpenScopes(names []string) {
	r.events = append(r.events, "open "+strings.Join(names, "."))
}

func (r *scopeRecorder) CloseScope(name string) {
	r.events = append(r.events, "close "+name)
}

func TestNamespaceStackTransitions(t *testing.T) {
	tests := []struct {
		name  string
		paths [][]string
		want  []string
	}{
		{
			name:  "same path twice emits once",
			paths: [][]string{{"a", "b"}, {"a", "b"}},
			want:  []string{"open a.b"},
		},
		{
			name:  "deeper then shallower",
			paths: [][]string{{"a"}, {"a", "b", "c"}, {"a"}},
			want:  []string{"open a", "open b.c", "close c", "close b"},
		},
		{
			name:  "sibling",
			paths: [][]string{{"x", "a"}, {"x", "b"}},
			want:  []string{"open x.a", "close a", "open b"},
		},
		{
			name:  "same leaf under a different parent",
			paths: [][]string{{"a", "n"}, {"b", "n"}},
			want:  []string{"open a.n", "close n", "close a", "open b.n"},
		},
		{
			name:  "root declarations",
			paths: [][]string{nil, {"a"}, nil},
			want:  []string{"open a", "close a"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &scopeRecorder{}
			s := NewNamespaceStack(rec)
			for _, p := range tt.paths {
				s.TransitionTo(p)
				assert.Equal(t, len(p), s.Depth())
				if len(p) > 0 {
					assert.Equal(t, p, s.Open())
				}
			}
			assert.Equal(t, tt.want, rec.events)
		})
	}
}

func TestNamespaceStackCloseEmptiesStack(t *testing.T) {
	rec := &scopeRecorder{}
	s := NewNamespaceStack(rec)
	s.TransitionTo([]string{"a", "b", "c"})
	s.Close()

	assert.Equal(t, 0, s.Depth())
	assert.Equal(t, []string{"open a.b.c", "close c", "close b", "close a"}, rec.events)

	s.Close()
	assert.Len(t, rec.events, 4, "closing an empty stack is a no-op")
}

func TestNamespaceStackDoesNotAliasPath(t *testing.T) {
	s := NewNamespaceStack(&scopeRecorder{})
	path := []string{"a", "b"}
	s.TransitionTo(path)
	path[1] = "z"
	assert.Equal(t, []string{"a", "b"}, s.Open(), fmt.Sprint(path))
}
