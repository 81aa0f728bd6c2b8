package layout

import (
	"errors"
	"os"
)

// ErrNoMatch reports that a path's kind or content does not satisfy an
// entry validator. It is a soft failure: the enclosing combinator treats
// it as "this rule does not apply" rather than aborting the load.
var ErrNoMatch = errors.New("entry does not match")

// Entry validates a filesystem path's kind and yields the fields it
// contributes to the enclosing entity. Leaf entries contribute none; a
// directory entry contributes one field per named sub-rule.
type Entry interface {
	Validate(path string) (Fields, error)
}

// EmptyFile accepts only a regular file of size exactly zero. Used for
// nodata_* table markers, whose whole meaning is carried by the name.
type EmptyFile struct{}

// Validate implements Entry
func (EmptyFile) Validate(path string) (Fields, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, ErrNoMatch
	}
	if !info.Mode().IsRegular() || info.Size() != 0 {
		return nil, ErrNoMatch
	}
	return Fields{}, nil
}

// AnyFile accepts any regular file.
type AnyFile struct{}

// Validate implements Entry
func (AnyFile) Validate(path string) (Fields, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, ErrNoMatch
	}
	if !info.Mode().IsRegular() {
		return nil, ErrNoMatch
	}
	return Fields{}, nil
}

// AnyDir accepts any directory without looking inside it.
type AnyDir struct{}

// Validate implements Entry
func (AnyDir) Validate(path string) (Fields, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, ErrNoMatch
	}
	if !info.IsDir() {
		return nil, ErrNoMatch
	}
	return Fields{}, nil
}

// Dir accepts a directory and resolves its entire child set against Rules
// via the directory combinator. The contributed fields are one per rule
// name, shaped by each rule's combine strategy.
type Dir struct {
	Rules []Rule
}

// Validate implements Entry
func (d Dir) Validate(path string) (Fields, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, ErrNoMatch
	}
	if !info.IsDir() {
		return nil, ErrNoMatch
	}
	return resolveDir(path, d.Rules)
}
