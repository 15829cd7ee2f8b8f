package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	errs "github.com/matzehuels/units/pkg/errors"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Code      errs.Code `json:"code"`
	Message   string    `json:"message"`
	Offset    *int      `json:"offset,omitempty"`
	RequestID string    `json:"request_id"`
}

// statusFor maps an error code to its HTTP status.
func statusFor(code errs.Code) int {
	switch code {
	case errs.ErrCodeUnitNotFound:
		return http.StatusNotFound
	case errs.ErrCodeDuplicateSymbol, errs.ErrCodeDuplicateName, errs.ErrCodeUnsupported:
		return http.StatusConflict
	case errs.ErrCodeInvalidSymbol, errs.ErrCodeInvalidName, errs.ErrCodeInvalidInput, errs.ErrCodeMalformedExpression:
		return http.StatusBadRequest
	case errs.ErrCodeIncompatibleUnits, errs.ErrCodeNonLinearComposite:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	writeErrorStatus(w, r, statusFor(errs.GetCode(err)), err)
}

func writeErrorStatus(w http.ResponseWriter, r *http.Request, status int, err error) {
	code := errs.GetCode(err)
	if code == "" {
		code = errs.ErrCodeInternal
	}
	resp := ErrorResponse{
		Code:      code,
		Message:   strings.TrimPrefix(err.Error(), string(code)+": "),
		RequestID: RequestIDFromContext(r.Context()),
	}

	var pe *errs.ParseError
	if errors.As(err, &pe) {
		resp.Message = pe.Error()
		offset := pe.Offset
		resp.Offset = &offset
	}

	if status == http.StatusInternalServerError {
		// Internal causes can leak paths or addresses.
		resp.Message = "internal error"
	}
	writeJSON(w, status, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 1 << 20

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errs.Wrap(errs.ErrCodeInvalidInput, err, "invalid request body")
	}
	return nil
}

func notFoundRoute(w http.ResponseWriter, r *http.Request) {
	writeErrorStatus(w, r, http.StatusNotFound,
		errs.New(errs.ErrCodeUnsupported, "no route for %s %s", r.Method, r.URL.Path))
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeErrorStatus(w, r, http.StatusMethodNotAllowed,
		errs.New(errs.ErrCodeUnsupported, "method %s not allowed on %s", r.Method, r.URL.Path))
}
