package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/michaelbrown/codeproxy/internal/compile"
	"github.com/michaelbrown/codeproxy/internal/storage"
)

// --- JSON helpers ---

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func decodeJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

// --- Compile ---

type compileResponse struct {
	Output string `json:"output"`
}

func (s *Server) handleCompile(w http.ResponseWriter, r *http.Request) {
	var req compile.Request

	// Without a key the request fails the same way whatever the body holds.
	if s.compiler.Configured() {
		r.Body = http.MaxBytesReader(w, r.Body, s.maxBody)
		if err := decodeJSON(r, &req); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				writeJSON(w, http.StatusRequestEntityTooLarge, compileResponse{
					Output: fmt.Sprintf("request body too large (limit %d bytes)", tooLarge.Limit),
				})
				return
			}
			writeJSON(w, http.StatusBadRequest, compileResponse{Output: "invalid request: " + err.Error()})
			return
		}
	}

	id := uuid.New().String()
	output, recorded, err := s.runCompile(r.Context(), id, req)
	if recorded {
		w.Header().Set("X-Submission-ID", id)
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, compileResponse{Output: output})
		return
	}
	writeJSON(w, http.StatusOK, compileResponse{Output: output})
}

// runCompile executes one request, logs failures and records history. It
// returns the text for the caller, which is the error output on failure, and
// whether the submission was stored.
func (s *Server) runCompile(ctx context.Context, id string, req compile.Request) (string, bool, error) {
	res, err := s.compiler.Compile(ctx, req)
	if err != nil {
		s.logCompileError(ctx, id, err)
	}

	sub := storage.NewSubmission(id, req, res, err)
	recorded := s.record(ctx, sub)
	return sub.Output, recorded, err
}

func (s *Server) logCompileError(ctx context.Context, id string, err error) {
	fields := []zap.Field{
		zap.String("submission_id", id),
		zap.String("request_id", middleware.GetReqID(ctx)),
		zap.String("kind", string(compile.KindOf(err))),
		zap.Error(err),
	}

	var ce *compile.Error
	if errors.As(err, &ce) && ce.Kind == compile.KindUpstream {
		s.logger.Warn("upstream rejected submission", append(fields, zap.Int("status", ce.StatusCode))...)
		return
	}
	s.logger.Error("compile failed", fields...)
}

func (s *Server) record(ctx context.Context, sub *storage.Submission) bool {
	if s.store == nil {
		return false
	}
	// The caller may already be gone; the record is still wanted.
	if err := s.store.RecordSubmission(context.WithoutCancel(ctx), sub); err != nil {
		s.logger.Warn("recording submission", zap.String("submission_id", sub.ID), zap.Error(err))
		return false
	}
	return true
}

// --- Languages & health ---

func (s *Server) handleListLanguages(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.catalog.Languages)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":     "ok",
		"configured": s.compiler.Configured(),
		"history":    s.store != nil,
	})
}

// --- History ---

func (s *Server) handleListSubmissions(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusNotFound, "history is disabled")
		return
	}

	opts := storage.ListOptions{}
	if outcome := r.URL.Query().Get("outcome"); outcome != "" {
		opts.Outcome = storage.Outcome(outcome)
	}
	if limit := r.URL.Query().Get("limit"); limit != "" {
		if n, err := strconv.Atoi(limit); err == nil {
			opts.Limit = n
		}
	}
	if offset := r.URL.Query().Get("offset"); offset != "" {
		if n, err := strconv.Atoi(offset); err == nil {
			opts.Offset = n
		}
	}

	subs, err := s.store.ListSubmissions(r.Context(), opts)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if subs == nil {
		subs = []storage.Submission{}
	}
	writeJSON(w, http.StatusOK, subs)
}

func (s *Server) handleGetSubmission(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusNotFound, "history is disabled")
		return
	}

	id := chi.URLParam(r, "id")
	sub, err := s.store.GetSubmission(r.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, "submission not found")
		} else {
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	writeJSON(w, http.StatusOK, sub)
}
