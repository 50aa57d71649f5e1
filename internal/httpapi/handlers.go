// SPDX-License-Identifier: MIT

package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/troy-haydens-bot/Strang-4-subspace/subspace"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

// Fixed client-facing messages.
const (
	msgNoMatrix    = "No matrix provided"
	msgInvalidJSON = "Invalid JSON body"
	msgNullEntry   = "Matrix entries must be numbers, got null"
	msgEncode      = "Failed to encode response"
	msgNotFound    = "Not found"
	msgMethod      = "Method not allowed"
)

// CalculateRequest is the body of POST /calculate. Entries are pointers so a
// JSON null is told apart from 0.
type CalculateRequest struct {
	Matrix [][]*float64 `json:"matrix"`
}

// rows returns the matrix as plain values, or false on the first null entry.
func (c CalculateRequest) rows() ([][]float64, bool) {
	out := make([][]float64, len(c.Matrix))
	for i, row := range c.Matrix {
		out[i] = make([]float64, len(row))
		for j, v := range row {
			if v == nil {
				return nil, false
			}
			out[i][j] = *v
		}
	}

	return out, true
}

// ErrorResponse is the body of every non-2xx API response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string `json:"status"`
}

// Calculate decodes a matrix, runs the engine and writes the Result.
// Invalid input maps to 400; any other failure to 500.
func (s *Server) Calculate(w http.ResponseWriter, r *http.Request) {
	var req CalculateRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		s.log.Debug().Err(err).Str("request_id", RequestID(r.Context())).Msg("bad request body")
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: msgInvalidJSON})
		return
	}
	if len(req.Matrix) == 0 {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: msgNoMatrix})
		return
	}
	rows, ok := req.rows()
	if !ok {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: msgNullEntry})
		return
	}

	start := time.Now()
	res, err := s.engine.Compute(rows)
	s.metrics.ComputeDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		status, msg := s.classify(err)
		s.log.Warn().Err(err).
			Str("request_id", RequestID(r.Context())).
			Int("status", status).
			Msg("calculate failed")
		writeJSON(w, status, ErrorResponse{Error: msg})
		return
	}
	s.metrics.Computations.WithLabelValues(resultOK).Inc()
	s.metrics.Rank.Observe(float64(res.Dimensions.Rank))

	writeJSON(w, http.StatusOK, res)
}

// classify maps an engine error to a status code and message, counting it.
func (s *Server) classify(err error) (int, string) {
	switch {
	case errors.Is(err, subspace.ErrTooLarge):
		s.metrics.Computations.WithLabelValues(resultInvalidInput).Inc()
		rows, cols := s.engine.Limits()
		return http.StatusBadRequest, fmt.Sprintf("Matrix must be at most %sx%s for visualization", side(rows), side(cols))
	case errors.Is(err, subspace.ErrInvalidInput):
		s.metrics.Computations.WithLabelValues(resultInvalidInput).Inc()
		return http.StatusBadRequest, err.Error()
	default:
		s.metrics.Computations.WithLabelValues(resultNumericalFailure).Inc()
		return http.StatusInternalServerError, err.Error()
	}
}

func side(limit int) string {
	if limit <= 0 {
		return "N"
	}

	return fmt.Sprint(limit)
}

// Health reports liveness.
func (s *Server) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

// NotFound answers unknown routes with a JSON error.
func (s *Server) NotFound(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, http.StatusNotFound, ErrorResponse{Error: msgNotFound})
}

// MethodNotAllowed answers known routes called with the wrong verb.
func (s *Server) MethodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, http.StatusMethodNotAllowed, ErrorResponse{Error: msgMethod})
}

// writeJSON marshals v before committing status; an encoding failure becomes a 500.
func writeJSON(w http.ResponseWriter, status int, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		status = http.StatusInternalServerError
		b, _ = json.Marshal(ErrorResponse{Error: fmt.Sprintf("%s: %v", msgEncode, err)})
	}
	w.WriteHeader(status)
	_, _ = w.Write(append(b, '\n'))
}
