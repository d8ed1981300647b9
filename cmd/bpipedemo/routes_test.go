package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoutesCmd(t *testing.T) {
	var out bytes.Buffer

	cmd := routesCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--method", "post"})
	require.NoError(t, cmd.Execute())

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "METHOD"))

	for _, l := range lines[1:] {
		assert.True(t, strings.HasPrefix(l, "POST"), l)
	}

	assert.Contains(t, lines[3], "/people")
	assert.Contains(t, lines[3], "2")
}
