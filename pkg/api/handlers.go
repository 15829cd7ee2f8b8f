package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/units/pkg/buildinfo"
	"github.com/matzehuels/units/pkg/dimension"
	errs "github.com/matzehuels/units/pkg/errors"
	"github.com/matzehuels/units/pkg/registry"
	"github.com/matzehuels/units/pkg/store"
	"github.com/matzehuels/units/pkg/unit"
)

// UnitResponse describes an atomic unit.
type UnitResponse struct {
	Name        string         `json:"name"`
	Symbol      string         `json:"symbol"`
	Dimension   map[string]int `json:"dimension"`
	Coefficient float64        `json:"coefficient"`
	Constant    float64        `json:"constant"`
	Of          string         `json:"of,omitempty"`
	Aliases     []string       `json:"aliases"`
	Protected   bool           `json:"protected"`
}

// TermResponse is one factor of a parsed expression.
type TermResponse struct {
	Symbol string `json:"symbol"`
	Exp    int    `json:"exp"`
}

// ParseResponse describes a parsed unit expression.
type ParseResponse struct {
	Symbol    string         `json:"symbol"`
	Name      string         `json:"name"`
	Display   string         `json:"display"`
	Kind      string         `json:"kind"`
	Dimension map[string]int `json:"dimension"`
	Linear    bool           `json:"linear"`
	Factor    *float64       `json:"factor,omitempty"`
	Terms     []TermResponse `json:"terms"`
}

// ConvertRequest is the body of POST /v1/convert.
type ConvertRequest struct {
	Value float64 `json:"value"`
	From  string  `json:"from"`
	To    string  `json:"to"`
}

// ConvertResponse is the result of a conversion.
type ConvertResponse struct {
	Value  float64 `json:"value"`
	From   string  `json:"from"`
	To     string  `json:"to"`
	Result float64 `json:"result"`
}

// AliasesRequest is the body of PUT /v1/units/{symbol}/aliases.
type AliasesRequest struct {
	Aliases []string `json:"aliases"`
}

// DeleteResponse acknowledges a removed definition. The unit stays
// registered until the server restarts.
type DeleteResponse struct {
	Symbol          string `json:"symbol"`
	Deleted         bool   `json:"deleted"`
	RestartRequired bool   `json:"restart_required"`
}

func (s *Server) unitResponse(a *unit.Atomic) UnitResponse {
	def, _ := s.reg.Definition(a.Symbol())
	aliases := def.Aliases
	if aliases == nil {
		aliases = []string{}
	}
	return UnitResponse{
		Name:        a.Name(),
		Symbol:      a.Symbol(),
		Dimension:   a.Dimension().Map(),
		Coefficient: a.Coefficient(),
		Constant:    a.Constant(),
		Of:          def.Of,
		Aliases:     aliases,
		Protected:   s.protected(a.Symbol()),
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"units":   s.reg.Len(),
		"version": buildinfo.Version,
	})
}

func (s *Server) handleListUnits(w http.ResponseWriter, r *http.Request) {
	var filter dimension.Vector
	if q := r.URL.Query().Get("dimension"); q != "" {
		v, err := dimension.New(map[dimension.ID]int{dimension.ID(q): 1})
		if err != nil {
			writeError(w, r, err)
			return
		}
		filter = v
	}

	units := make([]UnitResponse, 0, s.reg.Len())
	for _, a := range s.reg.Units() {
		if !filter.IsZero() && !a.Dimension().Equal(filter) {
			continue
		}
		units = append(units, s.unitResponse(a))
	}
	writeJSON(w, http.StatusOK, units)
}

func (s *Server) handleGetUnit(w http.ResponseWriter, r *http.Request) {
	a, err := s.reg.Lookup(chi.URLParam(r, "symbol"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s.unitResponse(a))
}

func (s *Server) handleDefineUnit(w http.ResponseWriter, r *http.Request) {
	var def registry.Definition
	if err := decodeJSON(w, r, &def); err != nil {
		writeError(w, r, err)
		return
	}

	// Persist before registering: the registry is append-only, so a unit
	// registered ahead of a failed write could never be stored later.
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.reg.Check(def); err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.store.Put(r.Context(), def); err != nil {
		s.logger.Error("persist definition", "symbol", def.Symbol, "err", err)
		writeError(w, r, errs.Wrap(errs.ErrCodeInternal, err, "persist unit %q", def.Symbol))
		return
	}
	a, err := s.reg.Define(def)
	if err != nil {
		if derr := s.store.Delete(r.Context(), def.Symbol); derr != nil {
			s.logger.Error("roll back definition", "symbol", def.Symbol, "err", derr)
		}
		writeError(w, r, err)
		return
	}

	w.Header().Set("Location", "/v1/units/"+a.Symbol())
	writeJSON(w, http.StatusCreated, s.unitResponse(a))
}

func (s *Server) handleDeleteUnit(w http.ResponseWriter, r *http.Request) {
	symbol := chi.URLParam(r, "symbol")
	if s.protected(symbol) {
		writeError(w, r, errs.New(errs.ErrCodeUnsupported, "unit %q is builtin and cannot be deleted", symbol))
		return
	}
	if err := s.store.Delete(r.Context(), symbol); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, DeleteResponse{Symbol: symbol, Deleted: true, RestartRequired: true})
}

func (s *Server) handleSetAliases(w http.ResponseWriter, r *http.Request) {
	symbol := chi.URLParam(r, "symbol")
	var req AliasesRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := s.reg.CheckAliases(symbol, req.Aliases...)
	if err != nil {
		writeError(w, r, err)
		return
	}
	// Stored definitions keep their aliases; builtin ones only change in memory.
	if err := store.PutAliases(r.Context(), s.store, symbol, next); err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.reg.SetAliases(symbol, req.Aliases...); err != nil {
		writeError(w, r, err)
		return
	}

	a, err := s.reg.LookupSymbol(symbol)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s.unitResponse(a))
}

func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	expr := q.Get("expr")
	lenient, _ := strconv.ParseBool(q.Get("lenient"))

	parse := s.reg.Parse
	if lenient {
		parse = s.reg.ParseLenient
	}
	u, err := parse(expr)
	if err != nil {
		writeError(w, r, err)
		return
	}

	resp := ParseResponse{
		Symbol:    u.Symbol(),
		Name:      u.Name(),
		Display:   s.reg.Display(u),
		Kind:      u.Kind().String(),
		Dimension: u.Dimension().Map(),
		Linear:    u.IsLinear(),
		Terms:     make([]TermResponse, 0),
	}
	if f, err := u.Factor(); err == nil {
		resp.Factor = &f
	}
	for _, t := range u.Terms() {
		resp.Terms = append(resp.Terms, TermResponse{Symbol: t.Atomic.Symbol(), Exp: t.Exp})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	var req ConvertRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	c, err := s.reg.Convert(req.Value, req.From, req.To)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ConvertResponse{
		Value:  req.Value,
		From:   c.From.Symbol(),
		To:     c.To.Symbol(),
		Result: c.Value,
	})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if s.stats == nil {
		writeErrorStatus(w, r, http.StatusNotFound, errs.New(errs.ErrCodeUnsupported, "stats are not enabled"))
		return
	}
	writeJSON(w, http.StatusOK, s.stats.Snapshot())
}
