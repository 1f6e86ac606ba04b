package scope

import (
	"fmt"
	"strings"

	"github.com/theory/jsonpath"
	"github.com/theory/jsonpath/spec"

	"github.com/jacoelho/jflat/internal/path"
	"github.com/jacoelho/jflat/internal/value"
)

// Resolver resolves selectors against the known paths of one tree.
//
// When Tree is set, selectors starting with '$' are RFC 9535 JSONPath
// queries evaluated against it: every node a query locates selects its own
// path and every known path beneath it. Other selectors follow Resolve.
type Resolver struct {
	Known []string
	Tree  *value.Value

	data any
}

// Resolve returns the selected paths. Every selector that matches nothing
// is collected into a single *UnresolvedSelectorError.
func (r *Resolver) Resolve(requested []string, complement bool) ([]string, error) {
	acc := newAccumulator()
	var unmatched []string

	for _, selector := range requested {
		var (
			matches []string
			err     error
		)
		if r.Tree != nil && strings.HasPrefix(selector, "$") {
			matches, err = r.query(selector)
			if err != nil {
				return nil, err
			}
		} else {
			matches = Match(r.Known, selector)
		}

		if len(matches) == 0 {
			unmatched = append(unmatched, selector)
			continue
		}
		acc.add(matches...)
	}

	if len(unmatched) > 0 {
		return nil, &UnresolvedSelectorError{Selectors: unmatched}
	}
	if complement {
		return Complement(r.Known, acc.paths), nil
	}
	return acc.paths, nil
}

func (r *Resolver) query(selector string) ([]string, error) {
	query, err := jsonpath.Parse(selector)
	if err != nil {
		return nil, fmt.Errorf("invalid JSONPath selector %q: %w", selector, err)
	}

	if r.data == nil {
		r.data = value.ToAny(*r.Tree)
	}

	var matches []string
	for _, node := range query.SelectLocated(r.data) {
		located := path.Format(fromNormalized(node.Path))
		matches = append(matches, under(r.Known, located)...)
	}
	return matches, nil
}

func fromNormalized(np spec.NormalizedPath) path.Path {
	p := make(path.Path, 0, len(np))
	for _, sel := range np {
		switch s := sel.(type) {
		case spec.Name:
			p = append(p, path.Field(string(s)))
		case spec.Index:
			p = append(p, path.Index(int(s)))
		}
	}
	return p
}

// under returns the known paths equal to or nested beneath prefix.
func under(known []string, prefix string) []string {
	var out []string
	for _, k := range known {
		if prefix == "" || k == prefix || strings.HasPrefix(k, prefix+".") || strings.HasPrefix(k, prefix+"[") {
			out = append(out, k)
		}
	}
	return out
}
