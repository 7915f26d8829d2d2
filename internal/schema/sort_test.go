package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSortByNamespace(t *testing.T) {
	mk := func(name string, ns ...string) Declaration {
		return &Struct{DeclInfo: DeclInfo{Name: name, Namespace: ns}}
	}
	in := []Declaration{
		mk("A", "b"),
		mk("B", "a", "z"),
		mk("C", "a"),
		mk("D", "b"),
		mk("E", "a"),
		mk("F"),
	}

	out := SortByNamespace(in)

	var names []string
	for _, d := range out {
		names = append(names, d.Info().Name)
	}
	assert.Equal(t, []string{"F", "C", "E", "B", "A", "D"}, names)
	assert.Equal(t, "A", in[0].Info().Name, "input is left untouched")
}

func TestFormatFloat(t *testing.T) {
	assert.Equal(t, "1.5", FormatFloat(1.5))
	assert.Equal(t, "2.0", FormatFloat(2))
	assert.Equal(t, "-0.25", FormatFloat(-0.25))
	assert.Equal(t, "1e+21", FormatFloat(1e21))
}
