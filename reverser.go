package bpipe

import (
	"regexp/syntax"
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/samber/lo"
)

// Reverser keeps track of named patterns and allows building URLs from them.
type Reverser struct {
	pats map[string]*Pattern
}

// NewReverser inits the reverser.
func NewReverser() *Reverser {
	return &Reverser{make(map[string]*Pattern)}
}

// Named records the compiled pattern under the given name.
func (r *Reverser) Named(name string, pat *Pattern) error {
	if _, exists := r.pats[name]; exists {
		return errors.Newf("pattern with name %q already exists", name)
	}

	r.pats[name] = pat

	return nil
}

// Reverse builds a path for the named pattern. Capture groups are substituted by vals in
// group order. Optional parts of the pattern, including the trailing slash, are left out.
// Values the groups cannot match, for example "a/b" for "([^/]+)", are an error.
func (r *Reverser) Reverse(name string, vals ...string) (string, error) {
	pat, ok := r.pats[name]
	if !ok {
		names := lo.Keys(r.pats)
		slices.Sort(names)

		return "", errors.Newf("no pattern named: %q, got: %v", name, names)
	}

	res, err := buildPath(pat, vals...)
	if err != nil {
		return "", errors.Wrap(err, "failed to build")
	}

	return res, nil
}

func buildPath(pat *Pattern, vals ...string) (string, error) {
	tree, err := syntax.Parse(pat.String(), syntax.Perl)
	if err != nil {
		return "", errors.Wrap(err, "failed to parse pattern")
	}

	var b strings.Builder

	rest, err := writePath(&b, tree, vals)
	if err != nil {
		return "", err
	}

	if len(rest) > 0 {
		return "", errors.Newf("too many values: %d left over", len(rest))
	}

	path := b.String()
	if path == "" {
		path = "/"
	}

	if _, ok := pat.Match(path); !ok {
		return "", errors.Newf("built path %q does not match %s", path, pat)
	}

	return path, nil
}

func writePath(b *strings.Builder, re *syntax.Regexp, vals []string) ([]string, error) {
	switch re.Op {
	case syntax.OpLiteral:
		b.WriteString(string(re.Rune))
	case syntax.OpConcat:
		for _, sub := range re.Sub {
			var err error
			if vals, err = writePath(b, sub, vals); err != nil {
				return nil, err
			}
		}
	case syntax.OpCapture:
		if len(vals) < 1 {
			return nil, errors.Newf("not enough values for capture group %d", re.Cap)
		}

		b.WriteString(vals[0])
		vals = vals[1:]
	case syntax.OpQuest, syntax.OpEmptyMatch,
		syntax.OpBeginText, syntax.OpEndText, syntax.OpBeginLine, syntax.OpEndLine:
	default:
		return nil, errors.Newf("cannot reverse expression %q", re.String())
	}

	return vals, nil
}
