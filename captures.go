package bpipe

import (
	"strconv"
	"strings"
)

// Capture is the text matched by one capture group. Name is empty for unnamed groups.
// Matched is false when the group did not take part in the match (an optional group), in
// which case Value is empty and lookups of the entry fail.
type Capture struct {
	Name    string
	Value   string
	Matched bool
}

// Captures holds one entry per capture group of the matched pattern, in group order.
type Captures []Capture

// Get returns the value of the named group.
func (c Captures) Get(name string) (string, bool) {
	for _, capt := range c {
		if capt.Name == name && name != "" {
			return capt.Value, capt.Matched
		}
	}

	return "", false
}

// At returns the value of the i-th capture group, counting from zero.
func (c Captures) At(i int) (string, bool) {
	if i < 0 || i >= len(c) {
		return "", false
	}

	return c[i].Value, c[i].Matched
}

// Values returns the captured values in group order.
func (c Captures) Values() []string {
	vals := make([]string, len(c))
	for i, capt := range c {
		vals[i] = capt.Value
	}

	return vals
}

func (c Captures) String() string {
	var b strings.Builder
	b.WriteByte('[')

	for i, capt := range c {
		if i > 0 {
			b.WriteString(", ")
		}

		b.WriteByte('(')
		if capt.Name == "" {
			b.WriteString("None")
		} else {
			b.WriteString(strconv.Quote(capt.Name))
		}

		b.WriteString(", ")
		if capt.Matched {
			b.WriteString(strconv.Quote(capt.Value))
		} else {
			b.WriteString("<unmatched>")
		}

		b.WriteByte(')')
	}

	b.WriteByte(']')

	return b.String()
}
