package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/boxbake/pkg/cache"
	"github.com/matzehuels/boxbake/pkg/errors"
	"github.com/matzehuels/boxbake/pkg/layoutfile"
	"github.com/matzehuels/boxbake/pkg/observability"
	"github.com/matzehuels/boxbake/pkg/pipeline"
	"github.com/matzehuels/boxbake/pkg/store"
)

const rowDoc = `{"root": {"name": "r", "width": 10, "height": 4, "children": [{"name": "a"}, {"name": "b"}]}}`

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	logger := log.New(io.Discard)
	srv := New(Options{
		Runner: pipeline.NewRunner(c, nil, logger),
		Store:  store.NewMemoryStore(),
		Logger: logger,
	})
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func do(t *testing.T, method, url, contentType, body string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return v
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)
	resp := do(t, http.MethodGet, ts.URL+"/healthz", "", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if resp.Header.Get(RequestIDHeader) == "" {
		t.Error("missing request ID header")
	}
	body := decodeBody[map[string]any](t, resp)
	if body["status"] != "ok" {
		t.Errorf("status = %v, want ok", body["status"])
	}
}

func TestRequestIDPropagated(t *testing.T) {
	ts := newTestServer(t)
	const id = "3f1c4a52-8d55-4c3c-9a77-0d1e5b8c9f10"
	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/healthz", nil)
	req.Header.Set(RequestIDHeader, id)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if got := resp.Header.Get(RequestIDHeader); got != id {
		t.Errorf("request ID = %q, want %q", got, id)
	}
}

func TestBake(t *testing.T) {
	ts := newTestServer(t)

	body := `{"document": ` + rowDoc + `}`
	resp := do(t, http.MethodPost, ts.URL+"/v1/bake", "application/json", body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if got := resp.Header.Get("X-Cache"); got != "miss" {
		t.Errorf("X-Cache = %q, want miss", got)
	}
	res := decodeBody[layoutfile.Result](t, resp)
	b, ok := res.Get("b")
	if !ok {
		t.Fatal("b missing from result")
	}
	if b.X != 5 || b.W != 5 || b.H != 4 {
		t.Errorf("b = %+v, want x=5 w=5 h=4", b.Box)
	}

	again := do(t, http.MethodPost, ts.URL+"/v1/bake", "application/json", body)
	if got := again.Header.Get("X-Cache"); got != "hit" {
		t.Errorf("second X-Cache = %q, want hit", got)
	}
}

func TestBakeResize(t *testing.T) {
	ts := newTestServer(t)
	body := `{"document": ` + rowDoc + `, "width": 20, "height": 2}`
	resp := do(t, http.MethodPost, ts.URL+"/v1/bake", "application/json", body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	res := decodeBody[layoutfile.Result](t, resp)
	if res.Width != 20 || res.Height != 2 {
		t.Errorf("size = %dx%d, want 20x2", res.Width, res.Height)
	}
}

func TestErrorStatus(t *testing.T) {
	ts := newTestServer(t)
	tests := []struct {
		name   string
		method string
		path   string
		body   string
		status int
		code   errors.Code
	}{
		{"empty body", http.MethodPost, "/v1/bake", "", http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"unknown field", http.MethodPost, "/v1/bake", `{"doc": {}}`, http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"missing document", http.MethodPost, "/v1/bake", `{"width": 3}`, http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"invalid document", http.MethodPost, "/v1/bake", `{"document": {}}`, http.StatusBadRequest, errors.ErrCodeInvalidDocument},
		{"impossible", http.MethodPost, "/v1/bake", `{"document": {"root": {"name": "r", "children": [{"name": "a"}]}}}`, http.StatusUnprocessableEntity, errors.ErrCodeImpossibleLayout},
		{"duplicate", http.MethodPost, "/v1/bake", `{"document": {"root": {"name": "r", "width": 4, "height": 4, "children": [{"name": "a"}, {"name": "a"}]}}}`, http.StatusUnprocessableEntity, errors.ErrCodeDuplicateName},
		{"bad format", http.MethodPost, "/v1/render", `{"document": ` + rowDoc + `, "formats": ["gif"]}`, http.StatusBadRequest, errors.ErrCodeInvalidFormat},
		{"unknown layout", http.MethodGet, "/v1/layouts/3f1c4a52-8d55-4c3c-9a77-0d1e5b8c9f10", "", http.StatusNotFound, errors.ErrCodeLayoutNotFound},
		{"bad layout id", http.MethodGet, "/v1/layouts/nope", "", http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"no route", http.MethodGet, "/v2/anything", "", http.StatusNotFound, errors.ErrCodeNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := do(t, tt.method, ts.URL+tt.path, "application/json", tt.body)
			if resp.StatusCode != tt.status {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.status)
			}
			body := decodeBody[errorBody](t, resp)
			if body.Error.Code != tt.code {
				t.Errorf("code = %s, want %s (%s)", body.Error.Code, tt.code, body.Error.Message)
			}
			if body.RequestID == "" {
				t.Error("error body has no request_id")
			}
		})
	}
}

func TestRender(t *testing.T) {
	ts := newTestServer(t)

	t.Run("single format", func(t *testing.T) {
		body := `{"document": ` + rowDoc + `, "formats": ["svg"], "labels": true}`
		resp := do(t, http.MethodPost, ts.URL+"/v1/render", "application/json", body)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d, want 200", resp.StatusCode)
		}
		if ct := resp.Header.Get("Content-Type"); ct != "image/svg+xml" {
			t.Errorf("Content-Type = %q", ct)
		}
		data, _ := io.ReadAll(resp.Body)
		if !bytes.Contains(data, []byte(`id="box-a"`)) {
			t.Errorf("svg missing box-a:\n%s", data)
		}
	})

	t.Run("several formats", func(t *testing.T) {
		body := `{"document": ` + rowDoc + `, "formats": ["txt", "dot"]}`
		resp := do(t, http.MethodPost, ts.URL+"/v1/render", "application/json", body)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d, want 200", resp.StatusCode)
		}
		out := decodeBody[renderResponse](t, resp)
		if len(out.Artifacts) != 2 {
			t.Fatalf("artifacts = %d, want 2", len(out.Artifacts))
		}
		if !strings.HasPrefix(string(out.Artifacts["dot"]), "digraph") {
			t.Errorf("dot = %q", out.Artifacts["dot"])
		}
	})
}

func TestLayoutLifecycle(t *testing.T) {
	ts := newTestServer(t)

	resp := do(t, http.MethodPost, ts.URL+"/v1/layouts", "application/yaml",
		"root:\n  name: r\n  width: 10\n  height: 4\n  children:\n    - name: a\n    - name: b\n")
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status = %d, want 201", resp.StatusCode)
	}
	created := decodeBody[layoutResponse](t, resp)
	if created.Record == nil || created.ID == "" {
		t.Fatal("create returned no ID")
	}
	if loc := resp.Header.Get("Location"); loc != "/v1/layouts/"+created.ID {
		t.Errorf("Location = %q", loc)
	}
	base := ts.URL + "/v1/layouts/" + created.ID

	list := decodeBody[listResponse](t, do(t, http.MethodGet, ts.URL+"/v1/layouts?limit=5", "", ""))
	if len(list.Layouts) != 1 || list.Layouts[0].ID != created.ID || list.Limit != 5 {
		t.Errorf("list = %+v", list)
	}

	got := decodeBody[layoutResponse](t, do(t, http.MethodGet, base, "", ""))
	if got.Name != "r" || got.Kind != layoutfile.KindTree {
		t.Errorf("get = %+v", got.Record)
	}

	bake := do(t, http.MethodGet, base+"/bake?size=40x8", "", "")
	if bake.StatusCode != http.StatusOK {
		t.Fatalf("bake status = %d", bake.StatusCode)
	}
	res := decodeBody[layoutfile.Result](t, bake)
	if a, _ := res.Get("a"); a.W != 20 || a.H != 8 {
		t.Errorf("a = %+v, want 20x8", a.Box)
	}

	render := do(t, http.MethodGet, base+"/render?format=txt&labels=true", "", "")
	if render.StatusCode != http.StatusOK {
		t.Fatalf("render status = %d", render.StatusCode)
	}
	if ct := render.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Errorf("Content-Type = %q", ct)
	}

	bad := do(t, http.MethodGet, base+"/bake?size=big", "", "")
	if bad.StatusCode != http.StatusBadRequest {
		t.Errorf("bad size status = %d, want 400", bad.StatusCode)
	}

	del := do(t, http.MethodDelete, base, "", "")
	if del.StatusCode != http.StatusNoContent {
		t.Fatalf("delete status = %d, want 204", del.StatusCode)
	}
	if gone := do(t, http.MethodGet, base, "", ""); gone.StatusCode != http.StatusNotFound {
		t.Errorf("get after delete = %d, want 404", gone.StatusCode)
	}
}

func TestCreateLayoutContentType(t *testing.T) {
	ts := newTestServer(t)
	resp := do(t, http.MethodPost, ts.URL+"/v1/layouts", "application/xml", "<root/>")
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

type countingHTTPHooks struct {
	observability.NoopHTTPHooks
	routes []string
	errors int
}

func (h *countingHTTPHooks) OnResponse(_ context.Context, _, route string, _ int, _ time.Duration) {
	h.routes = append(h.routes, route)
}

func (h *countingHTTPHooks) OnError(context.Context, string, string, error) { h.errors++ }

func TestHTTPHooksUseRoutePattern(t *testing.T) {
	hooks := &countingHTTPHooks{}
	observability.SetHTTPHooks(hooks)
	t.Cleanup(observability.Reset)

	srv := New(Options{Logger: log.New(io.Discard)})
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/layouts/3f1c4a52-8d55-4c3c-9a77-0d1e5b8c9f10", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if len(hooks.routes) != 1 || !strings.HasPrefix(hooks.routes[0], "/v1/layouts/{id}") {
		t.Errorf("routes = %v, want the /v1/layouts/{id} pattern", hooks.routes)
	}
	if hooks.errors != 1 {
		t.Errorf("errors = %d, want 1", hooks.errors)
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		code errors.Code
		want int
	}{
		{errors.ErrCodeInvalidDimensions, http.StatusBadRequest},
		{errors.ErrCodeUnmeasurable, http.StatusUnprocessableEntity},
		{errors.ErrCodeUnsupported, http.StatusUnprocessableEntity},
		{errors.ErrCodeFileNotFound, http.StatusNotFound},
		{errors.ErrCodeTimeout, http.StatusGatewayTimeout},
		{errors.ErrCodeNetwork, http.StatusBadGateway},
		{errors.ErrCodeInternal, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			if got := statusFor(errors.New(tt.code, "x")); got != tt.want {
				t.Errorf("statusFor(%s) = %d, want %d", tt.code, got, tt.want)
			}
		})
	}
}
