package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/matzehuels/units/pkg/builtin"
	errs "github.com/matzehuels/units/pkg/errors"
	"github.com/matzehuels/units/pkg/observability"
	"github.com/matzehuels/units/pkg/registry"
	"github.com/matzehuels/units/pkg/store"
)

type testServer struct {
	t     *testing.T
	srv   *Server
	store *store.MemoryStore
	h     http.Handler
}

func newTestServer(t *testing.T, opts ...Option) *testServer {
	t.Helper()
	reg, err := builtin.New()
	if err != nil {
		t.Fatalf("builtin.New() error: %v", err)
	}
	st := store.NewMemoryStore()
	opts = append([]Option{WithStore(st), WithProtected(builtin.IsBuiltin)}, opts...)
	srv := New(reg, opts...)
	return &testServer{t: t, srv: srv, store: st, h: srv.Handler()}
}

func (ts *testServer) do(method, path string, body any) *httptest.ResponseRecorder {
	ts.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if s, ok := body.(string); ok {
			buf.WriteString(s)
		} else if err := json.NewEncoder(&buf).Encode(body); err != nil {
			ts.t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	ts.h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %T from %q: %v", v, rec.Body.String(), err)
	}
	return v
}

func expectError(t *testing.T, rec *httptest.ResponseRecorder, status int, code errs.Code) ErrorResponse {
	t.Helper()
	if rec.Code != status {
		t.Fatalf("status = %d, want %d (body %s)", rec.Code, status, rec.Body.String())
	}
	resp := decode[ErrorResponse](t, rec)
	if resp.Code != code {
		t.Errorf("code = %s, want %s", resp.Code, code)
	}
	if resp.RequestID == "" || resp.RequestID != rec.Header().Get(RequestIDHeader) {
		t.Errorf("request_id = %q, header = %q", resp.RequestID, rec.Header().Get(RequestIDHeader))
	}
	return resp
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)
	rec := ts.do(http.MethodGet, "/healthz", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := decode[map[string]any](t, rec)
	if body["status"] != "ok" || int(body["units"].(float64)) != len(builtin.Definitions) {
		t.Errorf("body = %v", body)
	}
}

func TestRequestID(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(http.MethodGet, "/healthz", nil)
	if rec.Header().Get(RequestIDHeader) == "" {
		t.Error("response should carry a generated request ID")
	}

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec = httptest.NewRecorder()
	ts.h.ServeHTTP(rec, req)
	if got := rec.Header().Get(RequestIDHeader); got != "abc-123" {
		t.Errorf("request ID = %q, want caller's abc-123", got)
	}
}

func TestListUnits(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(http.MethodGet, "/v1/units", nil)
	units := decode[[]UnitResponse](t, rec)
	if len(units) != len(builtin.Definitions) {
		t.Errorf("len = %d, want %d", len(units), len(builtin.Definitions))
	}

	rec = ts.do(http.MethodGet, "/v1/units?dimension=temperature", nil)
	units = decode[[]UnitResponse](t, rec)
	var symbols []string
	for _, u := range units {
		symbols = append(symbols, u.Symbol)
	}
	if got := strings.Join(symbols, ","); got != "K,degC,degF,degR" {
		t.Errorf("temperature units = %s", got)
	}
}

func TestGetUnit(t *testing.T) {
	ts := newTestServer(t)

	for _, key := range []string{"ft", "foot", "feet"} {
		rec := ts.do(http.MethodGet, "/v1/units/"+key, nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("GET %s status = %d", key, rec.Code)
		}
		u := decode[UnitResponse](t, rec)
		if u.Symbol != "ft" || u.Coefficient != 0.3048 || !u.Protected {
			t.Errorf("GET %s = %+v", key, u)
		}
	}

	rec := ts.do(http.MethodGet, "/v1/units/N", nil)
	if u := decode[UnitResponse](t, rec); u.Of != "kg*m/s^2" || u.Dimension["time"] != -2 {
		t.Errorf("GET N = %+v", u)
	}

	expectError(t, ts.do(http.MethodGet, "/v1/units/furlong", nil), http.StatusNotFound, errs.ErrCodeUnitNotFound)
}

func TestDefineUnit(t *testing.T) {
	ts := newTestServer(t)

	def := registry.Definition{Name: "furlong", Symbol: "fur", Of: "yd", Coefficient: 220, Aliases: []string{"furlongs"}}
	rec := ts.do(http.MethodPost, "/v1/units", def)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d (%s)", rec.Code, rec.Body.String())
	}
	if loc := rec.Header().Get("Location"); loc != "/v1/units/fur" {
		t.Errorf("Location = %q", loc)
	}
	u := decode[UnitResponse](t, rec)
	if u.Coefficient != 201.168 || u.Protected || len(u.Aliases) != 1 {
		t.Errorf("created = %+v", u)
	}

	stored, err := ts.store.Get(context.Background(), "fur")
	if err != nil {
		t.Fatalf("definition not persisted: %v", err)
	}
	if stored.Of != "yd" {
		t.Errorf("stored = %+v", stored)
	}

	expectError(t, ts.do(http.MethodPost, "/v1/units", def), http.StatusConflict, errs.ErrCodeDuplicateSymbol)
	dupName := registry.Definition{Name: "foot", Symbol: "foot2", Dimension: map[string]int{"length": 1}, Coefficient: 1}
	expectError(t, ts.do(http.MethodPost, "/v1/units", dupName), http.StatusConflict, errs.ErrCodeDuplicateName)
}

func TestDefineUnitInvalid(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name   string
		body   any
		status int
		code   errs.Code
	}{
		{"bad json", "{", http.StatusBadRequest, errs.ErrCodeInvalidInput},
		{"unknown field", `{"symbol":"x","name":"x","bogus":1}`, http.StatusBadRequest, errs.ErrCodeInvalidInput},
		{"reserved symbol", registry.Definition{Name: "one", Symbol: "1", Coefficient: 1}, http.StatusBadRequest, errs.ErrCodeInvalidSymbol},
		{"operator in symbol", registry.Definition{Name: "per", Symbol: "a/b", Coefficient: 1}, http.StatusBadRequest, errs.ErrCodeInvalidSymbol},
		{"zero coefficient", registry.Definition{Name: "nothing", Symbol: "nil", Coefficient: 0}, http.StatusBadRequest, errs.ErrCodeInvalidInput},
		{"unknown base", registry.Definition{Name: "chain", Symbol: "ch", Of: "rod"}, http.StatusNotFound, errs.ErrCodeUnitNotFound},
		{"malformed base", registry.Definition{Name: "chain", Symbol: "ch", Of: "yd^"}, http.StatusBadRequest, errs.ErrCodeMalformedExpression},
		{"non-linear base", registry.Definition{Name: "odd", Symbol: "odd", Of: "degC*m"}, http.StatusUnprocessableEntity, errs.ErrCodeNonLinearComposite},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expectError(t, ts.do(http.MethodPost, "/v1/units", tt.body), tt.status, tt.code)
		})
	}
}

// flakyStore fails every Put while failing is set.
type flakyStore struct {
	*store.MemoryStore
	failing bool
}

func (s *flakyStore) Put(ctx context.Context, def registry.Definition) error {
	if s.failing {
		return errors.New("disk full")
	}
	return s.MemoryStore.Put(ctx, def)
}

func TestDefineUnitStoreFailure(t *testing.T) {
	st := &flakyStore{MemoryStore: store.NewMemoryStore(), failing: true}
	ts := newTestServer(t, WithStore(st))
	def := registry.Definition{Name: "centifoot", Symbol: "cft", Dimension: map[string]int{"length": 1}, Coefficient: 0.003048}

	expectError(t, ts.do(http.MethodPost, "/v1/units", def), http.StatusInternalServerError, errs.ErrCodeInternal)
	if _, err := ts.srv.reg.LookupSymbol("cft"); !errs.Is(err, errs.ErrCodeUnitNotFound) {
		t.Fatalf("unit registered after failed write: %v", err)
	}

	st.failing = false
	rec := ts.do(http.MethodPost, "/v1/units", def)
	if rec.Code != http.StatusCreated {
		t.Fatalf("retry status = %d (%s)", rec.Code, rec.Body.String())
	}
	if _, err := st.Get(context.Background(), "cft"); err != nil {
		t.Errorf("retry not persisted: %v", err)
	}
}

func TestSetAliasesStoreFailure(t *testing.T) {
	st := &flakyStore{MemoryStore: store.NewMemoryStore()}
	ts := newTestServer(t, WithStore(st))
	ts.do(http.MethodPost, "/v1/units", registry.Definition{Name: "hand", Symbol: "hh", Dimension: map[string]int{"length": 1}, Coefficient: 0.1016})

	st.failing = true
	expectError(t, ts.do(http.MethodPut, "/v1/units/hh/aliases", AliasesRequest{Aliases: []string{"hands", "feet"}}),
		http.StatusInternalServerError, errs.ErrCodeInternal)

	if got := ts.srv.reg.Aliases("hh"); len(got) != 0 {
		t.Errorf("hh aliases = %v after failed write, want none", got)
	}
	if a, ok := ts.srv.reg.AliasOwner("feet"); !ok || a.Symbol() != "ft" {
		t.Errorf("feet should still belong to ft")
	}
}

func TestDeleteUnit(t *testing.T) {
	ts := newTestServer(t)
	ts.do(http.MethodPost, "/v1/units", registry.Definition{Name: "hand", Symbol: "hh", Dimension: map[string]int{"length": 1}, Coefficient: 0.1016})

	rec := ts.do(http.MethodDelete, "/v1/units/hh", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d (%s)", rec.Code, rec.Body.String())
	}
	if resp := decode[DeleteResponse](t, rec); !resp.Deleted || !resp.RestartRequired {
		t.Errorf("delete = %+v", resp)
	}

	expectError(t, ts.do(http.MethodDelete, "/v1/units/hh", nil), http.StatusNotFound, errs.ErrCodeUnitNotFound)
	expectError(t, ts.do(http.MethodDelete, "/v1/units/m", nil), http.StatusConflict, errs.ErrCodeUnsupported)
}

func TestSetAliases(t *testing.T) {
	ts := newTestServer(t)
	ts.do(http.MethodPost, "/v1/units", registry.Definition{Name: "hand", Symbol: "hh", Dimension: map[string]int{"length": 1}, Coefficient: 0.1016})

	rec := ts.do(http.MethodPut, "/v1/units/hh/aliases", AliasesRequest{Aliases: []string{"hands", "feet"}})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d (%s)", rec.Code, rec.Body.String())
	}
	if u := decode[UnitResponse](t, rec); strings.Join(u.Aliases, ",") != "feet,hands" {
		t.Errorf("aliases = %v", u.Aliases)
	}

	// "feet" moved away from the foot.
	ft := decode[UnitResponse](t, ts.do(http.MethodGet, "/v1/units/ft", nil))
	if len(ft.Aliases) != 0 {
		t.Errorf("ft aliases = %v, want none", ft.Aliases)
	}

	stored, _ := ts.store.Get(context.Background(), "hh")
	if strings.Join(stored.Aliases, ",") != "feet,hands" {
		t.Errorf("stored aliases = %v", stored.Aliases)
	}

	rec = ts.do(http.MethodPut, "/v1/units/m/aliases", AliasesRequest{Aliases: []string{"metre", "mtr"}})
	if rec.Code != http.StatusOK {
		t.Errorf("builtin alias update status = %d", rec.Code)
	}

	expectError(t, ts.do(http.MethodPut, "/v1/units/rod/aliases", AliasesRequest{Aliases: []string{"rods"}}),
		http.StatusNotFound, errs.ErrCodeUnitNotFound)
	expectError(t, ts.do(http.MethodPut, "/v1/units/m/aliases", AliasesRequest{Aliases: []string{"a b"}}),
		http.StatusBadRequest, errs.ErrCodeInvalidInput)
}

func TestParse(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(http.MethodGet, "/v1/parse?expr=kg*m/s%5E2", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d (%s)", rec.Code, rec.Body.String())
	}
	p := decode[ParseResponse](t, rec)
	if p.Symbol != "kg*m/s^2" || p.Kind != "composite" || !p.Linear || p.Factor == nil || *p.Factor != 1 {
		t.Errorf("parse = %+v", p)
	}
	if p.Dimension["mass"] != 1 || p.Dimension["length"] != 1 || p.Dimension["time"] != -2 {
		t.Errorf("dimension = %v", p.Dimension)
	}
	if len(p.Terms) != 3 {
		t.Errorf("terms = %v", p.Terms)
	}

	rec = ts.do(http.MethodGet, "/v1/parse?expr=1", nil)
	if p := decode[ParseResponse](t, rec); p.Kind != "unitless" || p.Symbol != "1" {
		t.Errorf("parse 1 = %+v", p)
	}

	rec = ts.do(http.MethodGet, "/v1/parse?expr=feet/hr&lenient=true", nil)
	if p := decode[ParseResponse](t, rec); p.Symbol != "ft/h" || p.Display != "feet/hr" {
		t.Errorf("lenient parse = %+v", p)
	}

	expectError(t, ts.do(http.MethodGet, "/v1/parse?expr=feet/hr", nil), http.StatusNotFound, errs.ErrCodeUnitNotFound)

	resp := expectError(t, ts.do(http.MethodGet, "/v1/parse?expr=m**s", nil), http.StatusBadRequest, errs.ErrCodeMalformedExpression)
	if resp.Offset == nil || *resp.Offset != 2 {
		t.Errorf("offset = %v, want 2", resp.Offset)
	}
}

func TestConvert(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(http.MethodPost, "/v1/convert", ConvertRequest{Value: 100, From: "degC", To: "degF"})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d (%s)", rec.Code, rec.Body.String())
	}
	c := decode[ConvertResponse](t, rec)
	if c.Result < 211.999999 || c.Result > 212.000001 || c.From != "degC" || c.To != "degF" {
		t.Errorf("convert = %+v", c)
	}

	expectError(t, ts.do(http.MethodPost, "/v1/convert", ConvertRequest{Value: 1, From: "m", To: "s"}),
		http.StatusUnprocessableEntity, errs.ErrCodeIncompatibleUnits)
	expectError(t, ts.do(http.MethodPost, "/v1/convert", ConvertRequest{Value: 1, From: "m/degC", To: "m/K"}),
		http.StatusUnprocessableEntity, errs.ErrCodeNonLinearComposite)
}

func TestStats(t *testing.T) {
	t.Cleanup(observability.Reset)
	stats := observability.NewStats()
	observability.Install(stats)

	ts := newTestServer(t, WithStats(stats))
	ts.do(http.MethodPost, "/v1/convert", ConvertRequest{Value: 1, From: "km", To: "m"})
	ts.do(http.MethodPost, "/v1/convert", ConvertRequest{Value: 1, From: "km", To: "s"})

	rec := ts.do(http.MethodGet, "/v1/stats", nil)
	snap := decode[observability.Snapshot](t, rec)
	if snap.Conversions != 2 || snap.ConversionErrors != 1 {
		t.Errorf("conversions = %d/%d, want 2/1", snap.Conversions, snap.ConversionErrors)
	}
	if snap.Requests != 3 {
		t.Errorf("requests = %d, want 3", snap.Requests)
	}
	if snap.Defines != int64(len(builtin.Definitions)) {
		t.Errorf("defines = %d, want %d", snap.Defines, len(builtin.Definitions))
	}

	noStats := newTestServer(t)
	expectError(t, noStats.do(http.MethodGet, "/v1/stats", nil), http.StatusNotFound, errs.ErrCodeUnsupported)
}

func TestRouting(t *testing.T) {
	ts := newTestServer(t)
	expectError(t, ts.do(http.MethodGet, "/v2/nothing", nil), http.StatusNotFound, errs.ErrCodeUnsupported)
	expectError(t, ts.do(http.MethodPatch, "/v1/units/m", nil), http.StatusMethodNotAllowed, errs.ErrCodeUnsupported)
}

func TestListenAndServeShutdown(t *testing.T) {
	ts := newTestServer(t)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- ts.srv.ListenAndServe(ctx, "127.0.0.1:0") }()
	cancel()
	if err := <-done; err != nil {
		t.Errorf("ListenAndServe() error: %v", err)
	}
}
