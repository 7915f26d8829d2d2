package codegen

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/bondgen/internal/schema"
)

type fakeTarget struct {
	failOn Kind
	seen   []string
}

func (f *fakeTarget) Name() string { return "fake" }

func (f *fakeTarget) ArtifactName(stem string, kind Kind) string {
	return stem + "." + kind.String()
}

func (f *fakeTarget) Emit(kind Kind, in *Input) ([]byte, error) {
	if kind == f.failOn {
		return nil, errors.New("boom")
	}
	for _, d := range in.Decls {
		f.seen = append(f.seen, d.Info().Name)
	}
	return []byte(in.Source), nil
}

func (f *fakeTarget) Constants(*schema.Constants) (Artifact, error) {
	return Artifact{}, nil
}

func testSchema() *schema.Schema {
	return &schema.Schema{
		Path: "some/dir/model.json",
		Declarations: []schema.Declaration{
			&schema.Struct{DeclInfo: schema.DeclInfo{Name: "B", Namespace: []string{"z"}}},
			&schema.Struct{DeclInfo: schema.DeclInfo{Name: "A", Namespace: []string{"a"}}},
		},
	}
}

func TestGenerate(t *testing.T) {
	target := &fakeTarget{failOn: -1}
	arts, err := Generate(testSchema(), target)
	require.NoError(t, err)

	require.Len(t, arts, 3)
	assert.Equal(t, "model.types", arts[0].Name)
	assert.Equal(t, "model.writers", arts[1].Name)
	assert.Equal(t, "model.readers", arts[2].Name)
	assert.Equal(t, "model.json", string(arts[0].Content))
	assert.Equal(t, []string{"A", "B", "A", "B", "A", "B"}, target.seen, "declarations are sorted by namespace")
}

func TestGenerateFailureReturnsNothing(t *testing.T) {
	arts, err := Generate(testSchema(), &fakeTarget{failOn: KindReaders})
	require.Error(t, err)
	assert.Nil(t, arts)
	assert.Contains(t, err.Error(), "fake readers: boom")
}
