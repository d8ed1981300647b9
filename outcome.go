package bpipe

// Outcome is the result of a pipeline stage: either the pipeline continues with a
// context, or it is finished with a final response.
type Outcome struct {
	ctx  *Context
	resp *Response
	done bool
}

// Continue passes c on to the next stage.
func Continue(c *Context) Outcome { return Outcome{ctx: c} }

// Finish ends the pipeline, resp is the final response and later stages are skipped.
func Finish(resp *Response) Outcome { return Outcome{resp: resp, done: true} }

// Finished reports whether the pipeline should stop.
func (o Outcome) Finished() bool { return o.done }

// Response returns the final response of a finished outcome.
func (o Outcome) Response() *Response { return o.resp }

// Context returns the context to continue with.
func (o Outcome) Context() *Context { return o.ctx }
