// Package mask implements boolean masks of arbitrary shape and the
// Intersection-over-Union ratio between two of them.
package mask

import (
	"errors"
	"fmt"

	"github.com/inercia/go-mask-yaml/pkg/yaml"
)

var (
	ErrInvalidShape   = errors.New("invalid shape")
	ErrInvalidElement = errors.New("invalid mask element")
	ErrRagged         = errors.New("ragged nested sequence")
	ErrShapeMismatch  = errors.New("mask shapes differ")
)

// Number is any Go integer or floating point type. A value is true when it
// is nonzero.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr |
		~float32 | ~float64
}

// Mask is an immutable n-dimensional array of booleans stored in row-major
// order. An empty shape describes a single scalar element.
type Mask struct {
	shape []int
	bits  []bool
}

// New returns a mask with the given shape. The length of bits must be the
// product of the dimensions. Both slices are copied.
func New(shape []int, bits []bool) (Mask, error) {
	size, err := shapeSize(shape)
	if err != nil {
		return Mask{}, err
	}
	if len(bits) != size {
		return Mask{}, fmt.Errorf("%w: shape %v needs %d elements, got %d", ErrInvalidShape, shape, size, len(bits))
	}
	return Mask{
		shape: append([]int{}, shape...),
		bits:  append([]bool{}, bits...),
	}, nil
}

// FromValues returns a mask with the given shape where each element is true
// when the corresponding value is nonzero.
func FromValues[T Number](shape []int, data []T) (Mask, error) {
	bits := make([]bool, len(data))
	for i, v := range data {
		bits[i] = v != 0
	}
	return New(shape, bits)
}

// FromNested builds a mask from nested sequences of bools and numbers, as
// decoded from YAML or JSON. The shape is taken from the nesting, so
// [[1, 0], [0, 1]] gives a 2x2 mask. A bare scalar gives a 0-d mask.
func FromNested(v any) (Mask, error) {
	shape := inferShape(v)
	bits, err := flatten(v, shape, nil)
	if err != nil {
		return Mask{}, err
	}
	return Mask{shape: shape, bits: bits}, nil
}

// FromDocument looks up key in doc and builds a mask from the value found
// there with FromNested.
func FromDocument(doc yaml.Document, key string) (Mask, error) {
	if doc.Empty() {
		return Mask{}, fmt.Errorf("%w: %s in empty document", yaml.ErrKeyNotFound, key)
	}
	v, err := doc.Lookup(key)
	if err != nil {
		return Mask{}, err
	}
	m, err := FromNested(v)
	if err != nil {
		return Mask{}, fmt.Errorf("key %s: %w", key, err)
	}
	return m, nil
}

// Shape returns a copy of the mask dimensions.
func (m Mask) Shape() []int {
	return append([]int{}, m.shape...)
}

// Len returns the number of elements.
func (m Mask) Len() int {
	return len(m.bits)
}

// At returns the i-th element in row-major order.
func (m Mask) At(i int) bool {
	return m.bits[i]
}

// Count returns the number of true elements.
func (m Mask) Count() int {
	n := 0
	for _, b := range m.bits {
		if b {
			n++
		}
	}
	return n
}

func shapeSize(shape []int) (int, error) {
	size := 1
	for _, d := range shape {
		if d < 0 {
			return 0, fmt.Errorf("%w: negative dimension in %v", ErrInvalidShape, shape)
		}
		size *= d
	}
	return size, nil
}

// inferShape follows the first element at every level of nesting.
func inferShape(v any) []int {
	shape := []int{}
	for {
		l, ok := v.([]any)
		if !ok {
			return shape
		}
		shape = append(shape, len(l))
		if len(l) == 0 {
			return shape
		}
		v = l[0]
	}
}

// flatten appends the elements of v to bits, checking that v matches shape
// at every level.
func flatten(v any, shape []int, bits []bool) ([]bool, error) {
	if len(shape) == 0 {
		b, err := truth(v)
		if err != nil {
			return nil, err
		}
		return append(bits, b), nil
	}

	l, ok := v.([]any)
	if !ok || len(l) != shape[0] {
		return nil, fmt.Errorf("%w: expected %d elements at depth with shape %v", ErrRagged, shape[0], shape)
	}
	for _, item := range l {
		var err error
		if bits, err = flatten(item, shape[1:], bits); err != nil {
			return nil, err
		}
	}
	return bits, nil
}

func truth(v any) (bool, error) {
	switch val := v.(type) {
	case bool:
		return val, nil
	case int:
		return val != 0, nil
	case int8:
		return val != 0, nil
	case int16:
		return val != 0, nil
	case int32:
		return val != 0, nil
	case int64:
		return val != 0, nil
	case uint:
		return val != 0, nil
	case uint8:
		return val != 0, nil
	case uint16:
		return val != 0, nil
	case uint32:
		return val != 0, nil
	case uint64:
		return val != 0, nil
	case float32:
		return val != 0, nil
	case float64:
		return val != 0, nil
	case []any:
		return false, fmt.Errorf("%w: unexpected nested sequence", ErrRagged)
	default:
		return false, fmt.Errorf("%w: %T", ErrInvalidElement, v)
	}
}
