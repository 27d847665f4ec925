package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/raaihank/owoify/pkg/owoify"
	"go.uber.org/zap"
)

var errTooLarge = errors.New("input too large")

// handleOwoify transforms the text of a JSON request body
func (s *Server) handleOwoify(w http.ResponseWriter, r *http.Request) {
	log := s.logger.WithRequestID(getRequestID(r.Context()))

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.config.Owoify.MaxInputBytes+1024))
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, http.StatusRequestEntityTooLarge, errTooLarge)
			return
		}
		log.Error("Failed to read request body", zap.Error(err))
		writeError(w, http.StatusBadRequest, fmt.Errorf("failed to read request: %w", err))
		return
	}

	var req TransformRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid JSON body: %w", err))
		return
	}

	resp, status, err := s.transform(req)
	if err != nil {
		writeError(w, status, err)
		return
	}

	log.Debug("Request transformed", zap.Stringer("level", resp.Level))
	writeJSON(w, http.StatusOK, resp)
}

// transform validates req and runs it through the owoifier
func (s *Server) transform(req TransformRequest) (TransformResponse, int, error) {
	if int64(len(req.Text)) > s.config.Owoify.MaxInputBytes {
		return TransformResponse{}, http.StatusRequestEntityTooLarge, errTooLarge
	}

	level, err := s.resolveLevel(req.Level)
	if err != nil {
		return TransformResponse{}, http.StatusBadRequest, err
	}

	start := time.Now()
	out := s.owoifier.Owoify(req.Text, level)
	s.logger.LogTransform("http", level.String(), len(req.Text), len(out), time.Since(start))

	return TransformResponse{Text: out, Level: level}, http.StatusOK, nil
}

// resolveLevel falls back to the configured default when name is empty
func (s *Server) resolveLevel(name string) (owoify.Level, error) {
	if name == "" {
		return s.DefaultLevel(), nil
	}
	return owoify.ParseLevel(name)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, ErrorResponse{Error: err.Error()})
}
