package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/matzehuels/graphstat/pkg/buildinfo"
	"github.com/matzehuels/graphstat/pkg/pipeline"
	"github.com/matzehuels/graphstat/pkg/stats"

	errs "github.com/matzehuels/graphstat/pkg/errors"
)

// =============================================================================
// Responses
// =============================================================================

// StatsResponse is the body of POST /v1/stats.
type StatsResponse struct {
	RequestID string       `json:"request_id"`
	Cached    bool         `json:"cached"`
	Lines     int          `json:"lines"`
	Malformed int          `json:"malformed"`
	Stats     *stats.Stats `json:"stats"`
}

// DistancesResponse is the body of POST /v1/distances.
type DistancesResponse struct {
	RequestID string `json:"request_id"`
	*pipeline.DistanceReport
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, buildinfo.Get())
}

// handleStats handles POST /v1/stats.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	opts, err := s.requestOptions(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	data, err := s.readBody(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	res, err := s.runner.Execute(r.Context(), data, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, StatsResponse{
		RequestID: RequestIDFromContext(r.Context()),
		Cached:    res.CacheInfo.StatsHit,
		Lines:     res.Lines,
		Malformed: res.Malformed,
		Stats:     res.Stats,
	})
}

// handleDistances handles POST /v1/distances?origin=N&method=bfs|priority.
func (s *Server) handleDistances(w http.ResponseWriter, r *http.Request) {
	opts, err := s.requestOptions(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	q := r.URL.Query()
	if q.Get("origin") == "" {
		s.writeError(w, r, errs.New(errs.ErrCodeInvalidOrigin, "origin is required"))
		return
	}
	origin, err := strconv.Atoi(q.Get("origin"))
	if err != nil {
		s.writeError(w, r, errs.Wrap(errs.ErrCodeInvalidOrigin, err, "origin must be an integer"))
		return
	}
	data, err := s.readBody(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	imp, err := s.runner.Load(r.Context(), data, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	rep, err := s.runner.Distances(r.Context(), imp.Graph, origin, q.Get("method"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, DistancesResponse{
		RequestID:      RequestIDFromContext(r.Context()),
		DistanceReport: rep,
	})
}

// handleRender handles POST /v1/render?output=dot|svg&weights=bool.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	opts, err := s.requestOptions(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	q := r.URL.Query()
	ropts := pipeline.RenderOptions{Output: q.Get("output")}
	if ropts.Weights, err = boolParam(q.Get("weights")); err != nil {
		s.writeError(w, r, err)
		return
	}
	if ropts.MaxNodes, err = intParam("max_nodes", q.Get("max_nodes")); err != nil {
		s.writeError(w, r, err)
		return
	}
	data, err := s.readBody(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	out, _, err := s.runner.Render(r.Context(), data, opts, ropts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	contentType := "image/svg+xml"
	if ropts.Output == pipeline.OutputDOT {
		contentType = "text/vnd.graphviz; charset=utf-8"
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(out)
}

// =============================================================================
// Request Parsing
// =============================================================================

// requestOptions overlays the query parameters on the configured defaults.
func (s *Server) requestOptions(r *http.Request) (pipeline.Options, error) {
	opts := s.opts.Defaults
	opts.Logger = s.logger
	q := r.URL.Query()

	if v := q.Get("format"); v != "" {
		opts.Format = v
	}
	if v := q.Get("method"); v != "" {
		opts.Method = v
	}

	var err error
	if v := q.Get("capacity"); v != "" {
		if opts.Capacity, err = intParam("capacity", v); err != nil {
			return opts, err
		}
	}
	if v := q.Get("limit"); v != "" {
		if opts.Limit, err = intParam("limit", v); err != nil {
			return opts, err
		}
	}
	if v := q.Get("directed"); v != "" {
		if opts.Directed, err = boolParam(v); err != nil {
			return opts, err
		}
	}
	if opts.NoCache, err = boolParam(q.Get("no_cache")); err != nil {
		return opts, err
	}
	if opts.Refresh, err = boolParam(q.Get("refresh")); err != nil {
		return opts, err
	}
	return opts, nil
}

func intParam(name, v string) (int, error) {
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, errs.Wrap(errs.ErrCodeInvalidInput, err, "%s must be an integer", name)
	}
	return n, nil
}

func boolParam(v string) (bool, error) {
	if v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, errs.Wrap(errs.ErrCodeInvalidInput, err, "invalid boolean %q", v)
	}
	return b, nil
}

// errBodyTooLarge marks a body over MaxBodyBytes.
var errBodyTooLarge = errors.New("request body too large")

func (s *Server) readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	body := http.MaxBytesReader(w, r.Body, s.opts.MaxBodyBytes)
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, errBodyTooLarge
		}
		return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "read body")
	}
	return data, nil
}

// =============================================================================
// Writers
// =============================================================================

// statusFor maps an error to its HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, errBodyTooLarge):
		return http.StatusRequestEntityTooLarge
	case errs.IsInvalid(err):
		return http.StatusBadRequest
	case errs.Is(err, errs.ErrCodeNotFound), errs.Is(err, errs.ErrCodeFileNotFound):
		return http.StatusNotFound
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	code := string(errs.GetCode(err))
	if code == "" {
		code = string(errs.ErrCodeInternal)
		if status == http.StatusRequestEntityTooLarge {
			code = string(errs.ErrCodeInvalidInput)
		}
	}
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "err", err,
			"request_id", RequestIDFromContext(r.Context()))
	}
	writeJSON(w, status, ErrorResponse{
		Code:      code,
		Message:   errs.UserMessage(err),
		RequestID: RequestIDFromContext(r.Context()),
	})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
