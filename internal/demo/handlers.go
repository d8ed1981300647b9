package demo

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/advdv/bpipe"
	"github.com/advdv/bpipe/bapp"
	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const maxBodySize = 1 << 20

// Hello greets the world.
func Hello(*bpipe.Context) (*bpipe.Response, error) {
	return bpipe.Text(http.StatusOK, "Hello, world"), nil
}

// Index welcomes the user that was authenticated earlier in the pipeline.
func Index(c *bpipe.Context) (*bpipe.Response, error) {
	user, err := bpipe.Lookup[User](c.Local())
	if err != nil {
		return nil, err
	}

	return html(fmt.Sprintf("<h1>Welcome, %s!</h1>", user.Username)), nil
}

// Public is reachable without credentials.
func Public(*bpipe.Context) (*bpipe.Response, error) {
	return html("<h1>Public page</h1>"), nil
}

// Echo responds with the posted body.
func Echo(c *bpipe.Context) (*bpipe.Response, error) {
	body, err := readBody(c)
	if err != nil {
		return nil, err
	}

	return bpipe.Text(http.StatusOK, "Posted: "+body), nil
}

// ShowCaptures responds with the captures of the route.
func ShowCaptures(c *bpipe.Context) (*bpipe.Response, error) {
	return bpipe.Text(http.StatusOK, "Captures: "+c.Captures().String()), nil
}

// ListPeople lists everyone in the [PeopleStore].
func ListPeople(c *bpipe.Context) (*bpipe.Response, error) {
	store, err := bpipe.Lookup[PeopleStore](c.Shared())
	if err != nil {
		return nil, err
	}

	people, err := store.List(c)
	if err != nil {
		return nil, err
	}

	return bpipe.Text(http.StatusOK, fmt.Sprintf("people: %v", people)), nil
}

// AddPerson adds a person named by the request body.
func AddPerson(c *bpipe.Context) (*bpipe.Response, error) {
	store, err := bpipe.Lookup[PeopleStore](c.Shared())
	if err != nil {
		return nil, err
	}

	name, err := readBody(c)
	if err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, bpipe.NewError(bpipe.CodeBadRequest, errors.New("name is required"))
	}

	p := Person{ID: uuid.NewString(), Name: name}
	if err := store.Add(c, p); err != nil {
		return nil, err
	}

	bapp.Log(c).Info("added person", zap.String("id", p.ID))

	return bpipe.Text(http.StatusCreated, p.ID), nil
}

func readBody(c *bpipe.Context) (string, error) {
	b, err := io.ReadAll(io.LimitReader(c.Request().Body, maxBodySize))
	if err != nil {
		return "", bpipe.NewError(bpipe.CodeBadRequest, errors.Wrap(err, "failed to read body"))
	}

	return string(b), nil
}

func html(body string) *bpipe.Response {
	return bpipe.Text(http.StatusOK, body).WithHeader("Content-Type", "text/html; charset=utf-8")
}
