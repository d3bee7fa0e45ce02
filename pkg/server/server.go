// Package server exposes the decomposition pipeline over HTTP.
//
// The service accepts JSON hypergraphs, runs the width-minimizing solver
// through the shared pipeline runner (including its cache) and returns
// the decomposition together with run metadata. Errors carry the
// machine-readable codes of [github.com/treedec/treedec/pkg/errors].
package server

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/treedec/treedec/pkg/errors"
	"github.com/treedec/treedec/pkg/graphio"
	"github.com/treedec/treedec/pkg/pipeline"
	"github.com/treedec/treedec/pkg/verify"
)

// Server handles decomposition and verification requests.
type Server struct {
	runner *pipeline.Runner
	logger *log.Logger
}

// New creates a server on top of a pipeline runner.
func New(runner *pipeline.Runner, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{runner: runner, logger: logger}
}

// Routes returns the HTTP handler of the service.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(s.requestID)
	r.Get("/healthz", s.handleHealth)
	r.Post("/decompose", s.handleDecompose)
	r.Post("/verify", s.handleVerify)
	return r
}

// requestIDHeader carries the per-request id in responses and logs.
const requestIDHeader = "X-Request-ID"

func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)
		s.logger.Debug("request", "id", id, "method", r.Method, "path", r.URL.Path)
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// decomposeRequest is the body of POST /decompose.
type decomposeRequest struct {
	Graph               json.RawMessage `json:"graph"`
	Strategy            string          `json:"strategy,omitempty"`
	Seed                uint64          `json:"seed,omitempty"`
	Iterations          int             `json:"iterations,omitempty"`
	NonImprovementLimit int             `json:"non_improvement_limit,omitempty"`
	NoCompression       bool            `json:"no_compression,omitempty"`
	InducedEdges        bool            `json:"induced_edges,omitempty"`
	Refresh             bool            `json:"refresh,omitempty"`
}

// decomposeResponse is the body of a successful POST /decompose.
type decomposeResponse struct {
	RunID         string          `json:"run_id"`
	GraphHash     string          `json:"graph_hash"`
	MaxBagSize    int             `json:"max_bag_size"`
	Width         int             `json:"width"`
	Cached        bool            `json:"cached"`
	Iterations    int             `json:"iterations"`
	Decomposition json.RawMessage `json:"decomposition"`
}

func (s *Server) handleDecompose(w http.ResponseWriter, r *http.Request) {
	var req decomposeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode request body"))
		return
	}
	if len(req.Graph) == 0 {
		writeError(w, errors.New(errors.ErrCodeInvalidArgument, "request is missing the graph"))
		return
	}

	g, err := graphio.ReadGraph(bytes.NewReader(req.Graph))
	if err != nil {
		writeError(w, err)
		return
	}

	res, err := s.runner.Execute(r.Context(), pipeline.Options{
		Graph:               g,
		Strategy:            req.Strategy,
		Seed:                req.Seed,
		Iterations:          req.Iterations,
		NonImprovementLimit: req.NonImprovementLimit,
		NoCompression:       req.NoCompression,
		InducedEdges:        req.InducedEdges,
		Refresh:             req.Refresh,
		Formats:             []string{pipeline.FormatJSON},
		Logger:              s.logger,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, decomposeResponse{
		RunID:         res.RunID,
		GraphHash:     res.GraphHash,
		MaxBagSize:    res.MaxBagSize,
		Width:         res.Width(),
		Cached:        res.CacheInfo.SolveHit,
		Iterations:    res.Stats.Iterations,
		Decomposition: res.Artifacts[pipeline.FormatJSON],
	})
}

// verifyRequest is the body of POST /verify.
type verifyRequest struct {
	Graph         json.RawMessage `json:"graph"`
	Decomposition json.RawMessage `json:"decomposition"`
}

// verifyResponse is the body of a successful POST /verify.
type verifyResponse struct {
	Valid                bool     `json:"valid"`
	MissingVertices      []uint32 `json:"missing_vertices,omitempty"`
	UncoveredEdges       []uint32 `json:"uncovered_edges,omitempty"`
	DisconnectedVertices []uint32 `json:"disconnected_vertices,omitempty"`
}

func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	var req verifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode request body"))
		return
	}

	g, err := graphio.ReadGraph(bytes.NewReader(req.Graph))
	if err != nil {
		writeError(w, err)
		return
	}
	tree, err := graphio.ReadTree(bytes.NewReader(req.Decomposition))
	if err != nil {
		writeError(w, err)
		return
	}

	resp := verifyResponse{}
	for _, v := range verify.VertexExistenceViolations(g, tree) {
		resp.MissingVertices = append(resp.MissingVertices, uint32(v))
	}
	for _, e := range verify.EdgeCoverageViolations(g, tree) {
		resp.UncoveredEdges = append(resp.UncoveredEdges, uint32(e))
	}
	for _, v := range verify.ConnectednessViolations(g, tree) {
		resp.DisconnectedVertices = append(resp.DisconnectedVertices, uint32(v))
	}
	resp.Valid = len(resp.MissingVertices) == 0 && len(resp.UncoveredEdges) == 0 && len(resp.DisconnectedVertices) == 0

	writeJSON(w, http.StatusOK, resp)
}

// errorResponse is the body of every failed request.
type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	status := http.StatusInternalServerError
	switch code {
	case errors.ErrCodeInvalidArgument, errors.ErrCodeInvalidOrdering,
		errors.ErrCodeInvalidFormat, errors.ErrCodeOutOfRange:
		status = http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound:
		status = http.StatusNotFound
	}

	var resp errorResponse
	resp.Error.Code = string(code)
	if code == "" {
		resp.Error.Code = string(errors.ErrCodeInternal)
	}
	resp.Error.Message = errors.UserMessage(err)
	writeJSON(w, status, resp)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
