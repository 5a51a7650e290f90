package yaml

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"

	yamlv3 "gopkg.in/yaml.v3"
)

// ErrLoad is matched by every error returned from the Load* functions.
var ErrLoad = errors.New("failed to load")

// LoadError reports that the file at Path could not be opened, read or
// decoded. Err keeps the original cause.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("failed to load %s", e.Path)
	}
	return fmt.Sprintf("failed to load %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrLoad) hold for any *LoadError.
func (e *LoadError) Is(target error) bool { return target == ErrLoad }

// LoadYAML reads the YAML file at path and returns its top-level mapping.
//
// The file is closed before returning on every path. An empty file yields a
// nil Document. Any other failure, including a root that is not a mapping,
// is returned as a *LoadError.
func LoadYAML(path string) (Document, error) {
	var doc Document
	if err := LoadYAMLInto(path, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// LoadYAMLInto is like LoadYAML but decodes into out, which must be a
// non-nil pointer.
func LoadYAMLInto(path string, out any) error {
	f, err := os.Open(path)
	if err != nil {
		return &LoadError{Path: path, Err: err}
	}
	defer f.Close()

	if err := decode(f, out); err != nil {
		return &LoadError{Path: path, Err: err}
	}
	return nil
}

// LoadYAMLFS is like LoadYAML but reads name from fsys.
func LoadYAMLFS(fsys fs.FS, name string) (Document, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, &LoadError{Path: name, Err: err}
	}
	defer f.Close()

	var doc Document
	if err := decode(f, &doc); err != nil {
		return nil, &LoadError{Path: name, Err: err}
	}
	return doc, nil
}

// errMultipleDocuments is the cause reported when a file holds more than
// one YAML document.
var errMultipleDocuments = errors.New("expected a single document in the stream")

// yaml11Bools are the plain scalars that YAML 1.1 resolves to booleans in
// addition to true and false.
var yaml11Bools = map[string]bool{
	"yes": true, "Yes": true, "YES": true,
	"no": false, "No": false, "NO": false,
	"on": true, "On": true, "ON": true,
	"off": false, "Off": false, "OFF": false,
}

// decode reads a single YAML document from r into out. A stream without
// documents leaves out untouched, and a stream with more than one document
// is an error.
func decode(r io.Reader, out any) error {
	dec := yamlv3.NewDecoder(r)

	var root yamlv3.Node
	if err := dec.Decode(&root); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}

	var extra yamlv3.Node
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		if err != nil {
			return err
		}
		return errMultipleDocuments
	}

	resolveBools(&root)
	return root.Decode(out)
}

// resolveBools retags plain yes/no/on/off values as booleans. Mapping keys
// stay strings. Aliases are not followed: their anchors are visited where
// they are defined.
func resolveBools(n *yamlv3.Node) {
	switch n.Kind {
	case yamlv3.ScalarNode:
		if n.Style == 0 && n.Tag == "!!str" {
			if b, ok := yaml11Bools[n.Value]; ok {
				n.Tag = "!!bool"
				n.Value = strconv.FormatBool(b)
			}
		}
	case yamlv3.MappingNode:
		for i := 1; i < len(n.Content); i += 2 {
			resolveBools(n.Content[i])
		}
	default:
		for _, c := range n.Content {
			resolveBools(c)
		}
	}
}
