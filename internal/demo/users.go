package demo

import (
	"context"
	"crypto/subtle"

	"github.com/advdv/bpipe"
	"github.com/advdv/bpipe/bapp"
	"github.com/cockroachdb/errors"
	"github.com/tidwall/gjson"
)

// User is someone that may log in.
type User struct {
	Username string
	Password string
}

// Verify reports whether the credentials belong to the user.
func (u User) Verify(username, password string) bool {
	return subtle.ConstantTimeCompare([]byte(u.Username), []byte(username)) == 1 &&
		subtle.ConstantTimeCompare([]byte(u.Password), []byte(password)) == 1
}

// UserList holds every known user, it lives in the shared store.
type UserList []User

// Find returns the user the credentials belong to.
func (l UserList) Find(username, password string) (User, bool) {
	for _, u := range l {
		if u.Verify(username, password) {
			return u, true
		}
	}

	return User{}, false
}

// DefaultUsers is used when no users secret is configured.
var DefaultUsers = UserList{{Username: "alice", Password: "wonderland"}}

// ParseUsers reads users from a JSON array such as
// [{"username":"alice","password":"wonderland"}].
func ParseUsers(data string) (UserList, error) {
	if !gjson.Valid(data) {
		return nil, errors.New("users are not valid JSON")
	}

	res := gjson.Parse(data)
	if !res.IsArray() {
		return nil, errors.New("users must be a JSON array")
	}

	var users UserList
	for i, item := range res.Array() {
		name, pass := item.Get("username"), item.Get("password")
		if name.String() == "" || !pass.Exists() {
			return nil, errors.Newf("user %d: username and password are required", i)
		}

		users = append(users, User{Username: name.String(), Password: pass.String()})
	}

	return users, nil
}

// NewUserList loads the users from the configured secret, or returns [DefaultUsers].
func NewUserList(rt *bapp.Runtime[Env]) (UserList, error) {
	id := rt.Env().UsersSecret
	if id == "" {
		return DefaultUsers, nil
	}

	data, err := rt.Secret(context.Background(), id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read users")
	}

	return ParseUsers(data)
}

// VerifyUser checks credentials against the [UserList] in the shared store.
func VerifyUser(c *bpipe.Context, username, password string) (User, bool, error) {
	users, err := bpipe.Lookup[UserList](c.Shared())
	if err != nil {
		return User{}, false, err
	}

	u, ok := users.Find(username, password)

	return u, ok, nil
}
