package yaml

import (
	"reflect"

	"github.com/davecgh/go-spew/spew"
	"github.com/pmezard/go-difflib/difflib"
	syaml "sigs.k8s.io/yaml"
)

// EqualYAMLs compares two YAML documents by unmarshalling them and comparing the resulting objects.
// Note well that this function does not take into account spaces and comments: it only
// compares the contents.
func EqualYAMLs(a []byte, b []byte) (bool, error) {
	aYAML, err := canonical(a)
	if err != nil {
		return false, err
	}
	bYAML, err := canonical(b)
	if err != nil {
		return false, err
	}
	return string(aYAML) == string(bYAML), nil
}

// DiffYAML returns a unified diff between the contents of two YAML
// documents, or "" when either one cannot be parsed.
func DiffYAML(a []byte, b []byte) string {
	aYAML, err := canonical(a)
	if err != nil {
		return ""
	}
	bYAML, err := canonical(b)
	if err != nil {
		return ""
	}
	return Diff(string(aYAML), string(bYAML))
}

// canonical re-serializes a document so that formatting, key order and
// comments do not matter. Empty input stays empty.
func canonical(b []byte) ([]byte, error) {
	if len(b) == 0 {
		return nil, nil
	}
	var v any
	if err := syaml.Unmarshal(b, &v); err != nil {
		return nil, err
	}
	return syaml.Marshal(v)
}

/////////////////////////////////////////////////////////////////////////////////////

var spewConfig = spew.ConfigState{
	Indent:                  " ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
	DisableMethods:          true,
	MaxDepth:                10,
}

// Diff returns a unified diff between two strings, maps, slices or structs
// of the same type. It returns "" for anything else.
func Diff(previous any, actual any) string {
	if previous == nil || actual == nil {
		return ""
	}

	pt := reflect.TypeOf(previous)
	if pt != reflect.TypeOf(actual) {
		return ""
	}

	var p, a string
	switch pt.Kind() {
	case reflect.String:
		p = reflect.ValueOf(previous).String()
		a = reflect.ValueOf(actual).String()
	case reflect.Struct, reflect.Map, reflect.Slice, reflect.Array, reflect.Ptr:
		p = spewConfig.Sdump(previous)
		a = spewConfig.Sdump(actual)
	default:
		return ""
	}

	diff, _ := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(p),
		B:        difflib.SplitLines(a),
		FromFile: "Previous",
		ToFile:   "Actual",
		Context:  1,
	})
	return diff
}
