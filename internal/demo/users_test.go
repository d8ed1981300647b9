package demo_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/advdv/bpipe"
	"github.com/advdv/bpipe/internal/demo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseUsers(t *testing.T) {
	users, err := demo.ParseUsers(`[{"username":"alice","password":"wonderland"},{"username":"bob","password":""}]`)
	require.NoError(t, err)
	require.Len(t, users, 2)

	u, ok := users.Find("bob", "")
	require.True(t, ok)
	assert.Equal(t, "bob", u.Username)

	_, ok = users.Find("alice", "")
	assert.False(t, ok)

	for _, bad := range []string{`{`, `{"username":"alice"}`, `[{"username":"alice"}]`, `[{"password":"x"}]`} {
		_, err := demo.ParseUsers(bad)
		assert.Error(t, err, bad)
	}
}

func TestVerifyUser(t *testing.T) {
	shared := bpipe.NewStore()
	c := bpipe.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), nil, shared)

	_, _, err := demo.VerifyUser(c, "alice", "wonderland")
	require.ErrorIs(t, err, bpipe.ErrStateMissing)

	shared.Set(demo.DefaultUsers)

	u, ok, err := demo.VerifyUser(c, "alice", "wonderland")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "alice", u.Username)

	_, ok, err = demo.VerifyUser(c, "alice", "nope")
	require.NoError(t, err)
	assert.False(t, ok)
}
