package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/matzehuels/chartcore/pkg/buildinfo"
	"github.com/matzehuels/chartcore/pkg/chart"
	"github.com/matzehuels/chartcore/pkg/errors"
	chartio "github.com/matzehuels/chartcore/pkg/io"
	"github.com/matzehuels/chartcore/pkg/observability"
	"github.com/matzehuels/chartcore/pkg/pipeline"
)

// healthResponse is the body of GET /healthz.
type healthResponse struct {
	Status string         `json:"status"`
	Build  buildinfo.Info `json:"build"`
}

// reportResponse wraps a report with run metadata.
type reportResponse struct {
	RequestID string           `json:"request_id"`
	CacheHit  bool             `json:"cache_hit"`
	Report    *pipeline.Report `json:"report"`
}

// errorResponse is the body of every failed request.
type errorResponse struct {
	Error     errors.Code `json:"error"`
	Message   string      `json:"message"`
	RequestID string      `json:"request_id"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Build: buildinfo.Get()})
}

func (s *Server) handleBind(w http.ResponseWriter, r *http.Request) {
	def, err := readChart(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	binding, err := pipeline.Bind(r.Context(), def, s.logger)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	hash, err := pipeline.HashDefinition(def)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, reportResponse{
		RequestID: requestIDFrom(r.Context()),
		Report:    pipeline.NewReport(def, hash, binding, nil),
	})
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	opts, err := layoutOptions(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	def, err := readChart(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	res, err := s.runner.Execute(r.Context(), def, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, reportResponse{
		RequestID: requestIDFrom(r.Context()),
		CacheHit:  res.CacheHit,
		Report:    res.Report,
	})
}

// readChart decodes and validates the chart definition in the request body.
func readChart(w http.ResponseWriter, r *http.Request) (*chart.Definition, error) {
	def, err := chartio.ReadJSON(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return nil, err
	}
	if err := def.Validate(); err != nil {
		return nil, err
	}
	return def, nil
}

func layoutOptions(r *http.Request) (pipeline.Options, error) {
	var opts pipeline.Options
	q := r.URL.Query()

	for _, f := range []struct {
		name string
		dst  *float64
	}{
		{"width", &opts.Width},
		{"height", &opts.Height},
	} {
		v := q.Get(f.name)
		if v == "" {
			continue
		}
		n, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return opts, errors.New(errors.ErrCodeInvalidInput, "%s must be a number, got %q", f.name, v)
		}
		*f.dst = n
	}

	if v := q.Get("refresh"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return opts, errors.New(errors.ErrCodeInvalidInput, "refresh must be a boolean, got %q", v)
		}
		opts.Refresh = b
	}
	return opts, nil
}

// statusFor maps an error to an HTTP status by its code.
func statusFor(err error) int {
	switch {
	case errors.IsConfiguration(err), errors.IsGeometry(err):
		return http.StatusUnprocessableEntity
	}
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidFormat:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()
	status := statusFor(err)
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}

	observability.HTTP().OnError(ctx, r.Method, r.URL.Path, err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "error", err, "request_id", requestIDFrom(ctx))
	}

	writeJSON(w, status, errorResponse{
		Error:     code,
		Message:   errors.UserMessage(err),
		RequestID: requestIDFrom(ctx),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
