package demo

import "github.com/advdv/bpipe/bapp"

// Env is the environment of the demo app.
type Env struct {
	bapp.BaseEnvironment
	PeopleTable string `env:"DEMO_PEOPLE_TABLE" envDefault:"people"`
	// UsersSecret names a secret holding the users as a JSON array of objects with a
	// username and a password. Without it only the built-in user exists.
	UsersSecret string `env:"DEMO_USERS_SECRET"`
}
