// Package yaml loads YAML files into generic documents and compares YAML
// content independently of formatting. Every load failure is reported as a
// single error kind, LoadError, that still carries the underlying cause.
package yaml
