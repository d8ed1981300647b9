package bapptest

import (
	"net/http"

	"github.com/advdv/bpipe"
)

// CallHandler runs a single stage, usually a [bpipe.HandlerFunc], against the request
// outside of any server and returns its response. Captures are taken from caps, shared
// state from the values in state. It panics when the stage fails or does not finish, so
// tests can focus on the response.
func CallHandler(stage bpipe.Middleware, req *http.Request, caps bpipe.Captures, state ...any) *bpipe.Response {
	shared := bpipe.NewStore()
	for _, v := range state {
		shared.Set(v)
	}

	out, err := bpipe.NewChain(stage).Run(bpipe.NewContext(req, caps, shared))
	if err != nil {
		panic("bapptest: stage returned error: " + err.Error())
	}

	if !out.Finished() {
		panic("bapptest: stage did not finish the pipeline")
	}

	return out.Response()
}
