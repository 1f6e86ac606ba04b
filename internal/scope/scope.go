// Package scope resolves user selectors to a concrete subset of known
// paths.
//
// Plain selectors are tried against the known paths in a fixed order and
// the first stage that matches anything wins:
//
//  1. exact match
//  2. prefix match
//  3. suffix match
//  4. substring match at a position greater than zero
//
// A selector that matches nothing at any stage is reported as unmatched.
package scope

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnresolvedSelector is matched by every UnresolvedSelectorError.
var ErrUnresolvedSelector = errors.New("unresolved selector")

// UnresolvedSelectorError lists every selector that matched no known path,
// in request order.
type UnresolvedSelectorError struct {
	Selectors []string
}

func (e *UnresolvedSelectorError) Error() string {
	quoted := make([]string, len(e.Selectors))
	for i, s := range e.Selectors {
		quoted[i] = fmt.Sprintf("%q", s)
	}
	noun := "selector"
	if len(e.Selectors) > 1 {
		noun = "selectors"
	}
	return fmt.Sprintf("%v: no path matches %s %s", ErrUnresolvedSelector, noun, strings.Join(quoted, ", "))
}

func (e *UnresolvedSelectorError) Unwrap() error {
	return ErrUnresolvedSelector
}

// Set is a set of path strings.
type Set map[string]struct{}

// NewSet builds a set from paths.
func NewSet(paths ...string) Set {
	s := make(Set, len(paths))
	for _, p := range paths {
		s[p] = struct{}{}
	}
	return s
}

func (s Set) Contains(p string) bool {
	_, ok := s[p]
	return ok
}

// Resolve matches each requested selector against known and returns the
// selectors that matched nothing together with the selected paths. Both
// lists keep request order; selected paths appear once, at their first
// selection. With complement set, the selected paths are replaced by the
// known paths that were not selected, in known order.
func Resolve(known []string, requested []string, complement bool) (unmatched []string, resolved []string) {
	acc := newAccumulator()
	for _, selector := range requested {
		matches := Match(known, selector)
		if len(matches) == 0 {
			unmatched = append(unmatched, selector)
			continue
		}
		acc.add(matches...)
	}

	if complement {
		return unmatched, Complement(known, acc.paths)
	}
	return unmatched, acc.paths
}

// Match returns the known paths selected by a single selector, using the
// first matching stage only.
func Match(known []string, selector string) []string {
	for _, p := range known {
		if p == selector {
			return []string{p}
		}
	}

	stages := []func(p string) bool{
		func(p string) bool { return strings.HasPrefix(p, selector) },
		func(p string) bool { return strings.HasSuffix(p, selector) },
		// Offset zero is the prefix stage.
		func(p string) bool { return strings.Index(p, selector) > 0 },
	}
	for _, stage := range stages {
		var matches []string
		for _, p := range known {
			if stage(p) {
				matches = append(matches, p)
			}
		}
		if len(matches) > 0 {
			return matches
		}
	}

	return nil
}

// Complement returns the known paths absent from selected, in known order.
func Complement(known []string, selected []string) []string {
	exclude := NewSet(selected...)
	out := make([]string, 0, len(known))
	for _, p := range known {
		if !exclude.Contains(p) {
			out = append(out, p)
		}
	}
	return out
}

type accumulator struct {
	seen  Set
	paths []string
}

func newAccumulator() *accumulator {
	return &accumulator{seen: make(Set)}
}

func (a *accumulator) add(paths ...string) {
	for _, p := range paths {
		if a.seen.Contains(p) {
			continue
		}
		a.seen[p] = struct{}{}
		a.paths = append(a.paths, p)
	}
}
