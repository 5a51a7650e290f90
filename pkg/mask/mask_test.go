package mask

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inercia/go-mask-yaml/pkg/yaml"
)

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		shape   []int
		bits    []bool
		wantErr bool
	}{
		{name: "vector", shape: []int{3}, bits: []bool{true, false, true}},
		{name: "matrix", shape: []int{2, 2}, bits: []bool{true, false, false, true}},
		{name: "scalar", shape: []int{}, bits: []bool{true}},
		{name: "zero sized", shape: []int{0, 4}, bits: nil},
		{name: "too few elements", shape: []int{2, 2}, bits: []bool{true}, wantErr: true},
		{name: "negative dimension", shape: []int{-1}, bits: nil, wantErr: true},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			m, err := New(tt.shape, tt.bits)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidShape)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.shape, m.Shape())
			assert.Equal(t, len(tt.bits), m.Len())
		})
	}
}

func TestNew_CopiesInputs(t *testing.T) {
	t.Parallel()

	shape := []int{2}
	bits := []bool{true, false}
	m, err := New(shape, bits)
	require.NoError(t, err)

	shape[0] = 7
	bits[0] = false
	m.Shape()[0] = 9

	assert.Equal(t, []int{2}, m.Shape())
	assert.True(t, m.At(0))
	assert.Equal(t, 1, m.Count())
}

func TestFromNested(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		in        any
		wantShape []int
		wantBits  []bool
		wantErr   error
	}{
		{
			name:      "flat ints",
			in:        []any{1, 0, 3},
			wantShape: []int{3},
			wantBits:  []bool{true, false, true},
		},
		{
			name:      "nested bools",
			in:        []any{[]any{true, false}, []any{false, true}},
			wantShape: []int{2, 2},
			wantBits:  []bool{true, false, false, true},
		},
		{
			name:      "mixed numbers",
			in:        []any{[]any{0.0, 0.25, int64(0)}},
			wantShape: []int{1, 3},
			wantBits:  []bool{false, true, false},
		},
		{
			name:      "scalar",
			in:        1,
			wantShape: []int{},
			wantBits:  []bool{true},
		},
		{
			name:      "empty sequence",
			in:        []any{},
			wantShape: []int{0},
			wantBits:  nil,
		},
		{
			name:    "ragged rows",
			in:      []any{[]any{1, 0}, []any{1}},
			wantErr: ErrRagged,
		},
		{
			name:    "sequence where scalar expected",
			in:      []any{1, []any{0}},
			wantErr: ErrRagged,
		},
		{
			name:    "scalar where sequence expected",
			in:      []any{[]any{1}, 0},
			wantErr: ErrRagged,
		},
		{
			name:    "string element",
			in:      []any{"yes", "no"},
			wantErr: ErrInvalidElement,
		},
		{
			name:    "null element",
			in:      []any{1, nil},
			wantErr: ErrInvalidElement,
		},
		{
			name:    "mapping",
			in:      map[string]any{"a": 1},
			wantErr: ErrInvalidElement,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			m, err := FromNested(tt.in)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantShape, m.Shape())
			require.Equal(t, len(tt.wantBits), m.Len())
			for i, want := range tt.wantBits {
				assert.Equal(t, want, m.At(i), "element %d", i)
			}
		})
	}
}

func TestFromDocument(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "masks.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`masks:
  predicted:
    - [1, 1, 0]
    - [0, 1, 0]
  truth:
    - [true, false, false]
    - [false, true, true]
  broken: [1, "x"]
`), 0o600))

	doc, err := yaml.LoadYAML(path)
	require.NoError(t, err)

	pred, err := FromDocument(doc, "masks.predicted")
	require.NoError(t, err)
	truth, err := FromDocument(doc, "masks.truth")
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3}, pred.Shape())

	got, err := IoU(pred, truth)
	require.NoError(t, err)
	assert.InDelta(t, 2.0/4.0, got, 1e-12)

	_, err = FromDocument(doc, "masks.missing")
	assert.ErrorIs(t, err, yaml.ErrKeyNotFound)

	_, err = FromDocument(doc, "masks.broken")
	assert.ErrorIs(t, err, ErrInvalidElement)

	_, err = FromDocument(nil, "masks.predicted")
	assert.ErrorIs(t, err, yaml.ErrKeyNotFound)
	assert.ErrorContains(t, err, "empty document")
}

func TestFromDocument_YAML11Booleans(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "flags.yaml")
	require.NoError(t, os.WriteFile(path, []byte("mask:\n  - [yes, no]\n  - [off, on]\n"), 0o600))

	doc, err := yaml.LoadYAML(path)
	require.NoError(t, err)
	m, err := FromDocument(doc, "mask")
	require.NoError(t, err)

	assert.Equal(t, []int{2, 2}, m.Shape())
	assert.Equal(t, 2, m.Count())
	assert.True(t, m.At(0))
	assert.False(t, m.At(1))
	assert.False(t, m.At(2))
	assert.True(t, m.At(3))
}
