package bpipe

import (
	"fmt"
	"regexp"
	"regexp/syntax"
	"strings"
)

// PatternError is returned when a route pattern cannot be compiled.
type PatternError struct {
	Pattern string
	err     error
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("invalid route pattern %q: %s", e.Pattern, e.err)
}

func (e *PatternError) Unwrap() error { return e.err }

// NormalizePattern anchors a route pattern at both ends. Surrounding whitespace, leading
// '^' and trailing '$' or '/' are removed first. The empty result matches exactly "/", any
// other pattern is grouped, so alternations are anchored as a whole, and matches itself
// with an optional trailing slash.
func NormalizePattern(pattern string) string {
	body := trimPattern(pattern)
	if body == "" {
		return "^/$"
	}

	return "^(?:" + body + ")/?$"
}

func trimPattern(pattern string) string {
	pattern = strings.TrimSpace(pattern)
	pattern = strings.TrimLeft(pattern, "^")
	pattern = strings.TrimRight(pattern, "$")

	return strings.TrimRight(pattern, "/")
}

// Pattern is a compiled route pattern.
type Pattern struct {
	src      string
	re       *regexp.Regexp
	names    []string
	optional bool
}

// CompilePattern normalizes and compiles the pattern. Capture groups in the pattern become
// the [Captures] of a successful match.
func CompilePattern(pattern string) (*Pattern, error) {
	// the body must be valid on its own, the added group could balance a stray paren
	if _, err := syntax.Parse(trimPattern(pattern), syntax.Perl); err != nil {
		return nil, &PatternError{Pattern: pattern, err: err}
	}

	norm := NormalizePattern(pattern)

	re, err := regexp.Compile(norm)
	if err != nil {
		return nil, &PatternError{Pattern: pattern, err: err}
	}

	tree, err := syntax.Parse(norm, syntax.Perl)
	if err != nil {
		return nil, &PatternError{Pattern: pattern, err: err}
	}

	return &Pattern{
		src:      pattern,
		re:       re,
		names:    re.SubexpNames(),
		optional: hasOptionalCapture(tree, false),
	}, nil
}

// MustCompilePattern is like [CompilePattern] but panics on an invalid pattern.
func MustCompilePattern(pattern string) *Pattern {
	p, err := CompilePattern(pattern)
	if err != nil {
		panic("bpipe: " + err.Error())
	}

	return p
}

// String returns the normalized expression.
func (p *Pattern) String() string { return p.re.String() }

// Source returns the pattern as it was registered.
func (p *Pattern) Source() string { return p.src }

// NumCaptures returns the number of capture groups.
func (p *Pattern) NumCaptures() int { return p.re.NumSubexp() }

// HasOptionalCaptures reports whether some capture group may not take part in a match,
// for example "(/page/(\d+))?". Such groups produce an unmatched [Capture].
func (p *Pattern) HasOptionalCaptures() bool { return p.optional }

// Match tests the path against the pattern and returns the captures on a full match.
func (p *Pattern) Match(path string) (Captures, bool) {
	loc := p.re.FindStringSubmatchIndex(path)
	if loc == nil {
		return nil, false
	}

	caps := make(Captures, 0, len(p.names)-1)
	for i := 1; i < len(p.names); i++ {
		capt := Capture{Name: p.names[i]}
		if start, end := loc[2*i], loc[2*i+1]; start >= 0 {
			capt.Value, capt.Matched = path[start:end], true
		}

		caps = append(caps, capt)
	}

	return caps, true
}

// hasOptionalCapture walks the parsed expression looking for a capture group that sits
// below a repetition with a zero minimum or inside an alternation.
func hasOptionalCapture(re *syntax.Regexp, optional bool) bool {
	switch re.Op {
	case syntax.OpCapture:
		if optional {
			return true
		}
	case syntax.OpQuest, syntax.OpStar, syntax.OpAlternate:
		optional = true
	case syntax.OpRepeat:
		if re.Min == 0 {
			optional = true
		}
	}

	for _, sub := range re.Sub {
		if hasOptionalCapture(sub, optional) {
			return true
		}
	}

	return false
}
