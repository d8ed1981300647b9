package demo

import (
	"net/http"

	"github.com/advdv/bpipe"
	"github.com/advdv/bpipe/middleware"
)

// Realm is the basic auth realm of the protected pages.
const Realm = "main"

// Routes registers the routes of the demo.
func Routes(b *bpipe.Builder) {
	b.Get(`/`, middleware.BasicAuth(Realm, VerifyUser), bpipe.HandlerFunc(Index))
	b.Post(`/`, bpipe.HandlerFunc(Echo))
	b.Get(`/hello`, bpipe.HandlerFunc(Hello))
	b.Get(`/public`, bpipe.HandlerFunc(Public))
	b.Post(`/post`, bpipe.HandlerFunc(Echo))
	b.Named("echo", http.MethodGet, `/echo/([^/]+)/(?P<hoge>[^/]+)/([^/]+)`, bpipe.HandlerFunc(ShowCaptures))
	b.Named("people", http.MethodGet, `/people`, bpipe.HandlerFunc(ListPeople))
	b.Post(`/people`, middleware.Timeout(peopleTimeout), bpipe.HandlerFunc(AddPerson))
}

// Register puts the users and the people store into the shared state and registers the
// routes. It is the routing function of the demo app.
func Register(b *bpipe.Builder, users UserList, people PeopleStore) {
	b.WithState(users)
	bpipe.Put(b.Shared(), people)

	Routes(b)
}
