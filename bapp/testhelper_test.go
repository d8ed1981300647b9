package bapp_test

import (
	"context"
	"io"
	"net/http"
	"testing"

	"github.com/advdv/bpipe"
	"github.com/advdv/bpipe/bapp"
	"github.com/advdv/bpipe/bapp/bapptest"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/cockroachdb/errors"
)

// TestEnv is a test environment with app-specific fields beyond BaseEnvironment.
type TestEnv struct {
	bapp.BaseEnvironment
	MainTableName string `env:"MAIN_TABLE_NAME,required"`
}

// Handlers receives its dependencies through fx.
type Handlers struct {
	rt     *bapp.Runtime[TestEnv]
	dynamo *dynamodb.Client
}

func NewHandlers(rt *bapp.Runtime[TestEnv], dynamo *dynamodb.Client) *Handlers {
	return &Handlers{rt: rt, dynamo: dynamo}
}

func (h *Handlers) TestContext(c *bpipe.Context) (*bpipe.Response, error) {
	itemURL, err := h.rt.Reverse("get-item", "test-123")
	if err != nil {
		return nil, err
	}

	bapp.Span(c).AddEvent("context-test")
	bapp.Log(c).Info("testing context features")

	return bpipe.Text(http.StatusOK, h.rt.Env().MainTableName+" "+itemURL), nil
}

func (h *Handlers) GetItem(c *bpipe.Context) (*bpipe.Response, error) {
	id, _ := c.Capture("id")

	selfURL, err := h.rt.Reverse("get-item", id)
	if err != nil {
		return nil, err
	}

	return bpipe.Text(http.StatusOK, selfURL), nil
}

func (h *Handlers) TestAWS(*bpipe.Context) (*bpipe.Response, error) {
	if h.dynamo == nil {
		return nil, bpipe.NewError(bpipe.CodeInternalServerError, errors.New("no dynamo client"))
	}

	return bpipe.Text(http.StatusOK, "ok"), nil
}

func (h *Handlers) Fail(*bpipe.Context) (*bpipe.Response, error) {
	return nil, io.ErrUnexpectedEOF
}

// setTestEnvForTestEnv is a convenience that calls SetBaseEnv and sets the TestEnv fields.
func setTestEnvForTestEnv(t *testing.T, port int) *bapptest.Env {
	t.Helper()
	env := bapptest.SetBaseEnv(t, port)
	t.Setenv("MAIN_TABLE_NAME", "test-table")
	return env
}

// doGet performs an HTTP GET with the given context.
func doGet(ctx context.Context, client *http.Client, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	return client.Do(req)
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}

	return string(b)
}
