// seehuhn.de/go/pdf - a library for reading and writing PDF files
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package pdf

import "fmt"

// Getter resolves indirect references to their underlying objects. A full
// PDF file reader implements this by looking the reference up in its xref
// table; tests typically implement it with a plain map. Resolution of
// cross-reference streams, object streams and incremental updates is
// entirely the collaborator's concern.
type Getter interface {
	Resolve(Object) (Object, error)
}

// Resolve follows obj until it is no longer a [Reference], or an error
// occurs. A nil Getter is treated as one that resolves no references.
func Resolve(r Getter, obj Object) (Object, error) {
	for {
		ref, ok := obj.(Reference)
		if !ok || r == nil {
			return obj, nil
		}
		next, err := r.Resolve(ref)
		if err != nil {
			return nil, err
		}
		obj = next
	}
}

// GetDict resolves obj and type-asserts it to a Dict.
func GetDict(r Getter, obj Object) (Dict, error) {
	obj, err := Resolve(r, obj)
	if err != nil {
		return nil, err
	}
	switch d := obj.(type) {
	case Dict:
		return d, nil
	case *Stream:
		return d.Dict, nil
	case nil:
		return nil, nil
	default:
		return nil, &MalformedFileError{Err: fmt.Errorf("expected dict, got %T", obj)}
	}
}

// GetArray resolves obj and type-asserts it to an Array.
func GetArray(r Getter, obj Object) (Array, error) {
	obj, err := Resolve(r, obj)
	if err != nil {
		return nil, err
	}
	switch a := obj.(type) {
	case Array:
		return a, nil
	case nil:
		return nil, nil
	default:
		return nil, &MalformedFileError{Err: fmt.Errorf("expected array, got %T", obj)}
	}
}

// GetInteger resolves obj and type-asserts it to an Integer.
func GetInteger(r Getter, obj Object) (Integer, error) {
	obj, err := Resolve(r, obj)
	if err != nil {
		return 0, err
	}
	switch v := obj.(type) {
	case Integer:
		return v, nil
	case Real:
		return Integer(v), nil
	default:
		return 0, &MalformedFileError{Err: fmt.Errorf("expected integer, got %T", obj)}
	}
}

// GetNumber resolves obj and type-asserts it to a Real, accepting an
// Integer as well.
func GetNumber(r Getter, obj Object) (Real, error) {
	obj, err := Resolve(r, obj)
	if err != nil {
		return 0, err
	}
	switch v := obj.(type) {
	case Real:
		return v, nil
	case Integer:
		return Real(v), nil
	default:
		return 0, &MalformedFileError{Err: fmt.Errorf("expected number, got %T", obj)}
	}
}

// GetName resolves obj and type-asserts it to a Name.
func GetName(r Getter, obj Object) (Name, error) {
	obj, err := Resolve(r, obj)
	if err != nil {
		return "", err
	}
	switch v := obj.(type) {
	case Name:
		return v, nil
	default:
		return "", &MalformedFileError{Err: fmt.Errorf("expected name, got %T", obj)}
	}
}

// GetBoolean resolves obj and type-asserts it to a Boolean.
func GetBoolean(r Getter, obj Object) (Boolean, error) {
	obj, err := Resolve(r, obj)
	if err != nil {
		return false, err
	}
	switch v := obj.(type) {
	case Boolean:
		return v, nil
	default:
		return false, &MalformedFileError{Err: fmt.Errorf("expected boolean, got %T", obj)}
	}
}

// GetString resolves obj and type-asserts it to a String.
func GetString(r Getter, obj Object) (String, error) {
	obj, err := Resolve(r, obj)
	if err != nil {
		return nil, err
	}
	switch v := obj.(type) {
	case String:
		return v, nil
	default:
		return nil, &MalformedFileError{Err: fmt.Errorf("expected string, got %T", obj)}
	}
}

// GetStream resolves obj and type-asserts it to a *Stream.
func GetStream(r Getter, obj Object) (*Stream, error) {
	obj, err := Resolve(r, obj)
	if err != nil {
		return nil, err
	}
	switch v := obj.(type) {
	case *Stream:
		return v, nil
	case nil:
		return nil, nil
	default:
		return nil, &MalformedFileError{Err: fmt.Errorf("expected stream, got %T", obj)}
	}
}

// CycleChecker detects cycles while following chains of indirect
// references, for example through nested /Functions arrays. The zero value
// is ready to use.
type CycleChecker struct {
	seen map[Reference]bool
}

// Check records ref as visited and reports an error if it was already seen.
func (c *CycleChecker) Check(ref Reference) error {
	if c.seen == nil {
		c.seen = make(map[Reference]bool)
	}
	if c.seen[ref] {
		return &MalformedFileError{Err: fmt.Errorf("cyclic reference at %s", ref)}
	}
	c.seen[ref] = true
	return nil
}
