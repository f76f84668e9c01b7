package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/jskoglund/lottrace/internal/bom"
	"github.com/jskoglund/lottrace/internal/report"
	"github.com/jskoglund/lottrace/internal/session"
)

// handleBuildReport ingests an upload set and builds the report model
// synchronously. Posting to an existing session with a changed file set
// invalidates and replaces its model wholesale; an unchanged file set
// returns the existing model without rebuilding.
func (s *Server) handleBuildReport(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024)

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	fhs := r.MultipartForm.File["files"]
	if len(fhs) == 0 {
		jsonError(w, "at least one file is required", http.StatusBadRequest)
		return
	}
	if len(fhs) > s.cfg.MaxFiles {
		jsonError(w, fmt.Sprintf("too many files (max %d)", s.cfg.MaxFiles), http.StatusBadRequest)
		return
	}

	var files []report.InputFile
	for _, fh := range fhs {
		f, err := fh.Open()
		if err != nil {
			jsonError(w, "failed to open "+fh.Filename, http.StatusBadRequest)
			return
		}
		data, err := io.ReadAll(io.LimitReader(f, s.cfg.MaxUploadBytes+1))
		f.Close()
		if err != nil {
			jsonError(w, "failed to read "+fh.Filename, http.StatusBadRequest)
			return
		}
		if int64(len(data)) > s.cfg.MaxUploadBytes {
			jsonError(w, fmt.Sprintf("%s exceeds max size (%d bytes)", fh.Filename, s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
			return
		}
		files = append(files, report.InputFile{Name: sanitizeFilename(fh.Filename), Data: data})
	}

	sess := s.sessions.GetOrCreate(r.FormValue("session_id"))
	fingerprint := session.Fingerprint(files)
	log := s.log.With("session_id", sess.ID)

	if !sess.Invalidate(fingerprint) {
		log.Info("upload fingerprint unchanged, reusing model")
		s.writeReportResponse(w, http.StatusOK, sess, false)
		return
	}

	model, err := s.builder.Build(r.Context(), files)
	if err != nil {
		if errors.Is(err, report.ErrNoStructure) {
			jsonError(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
		jsonError(w, "build failed: "+err.Error(), http.StatusInternalServerError)
		return
	}
	sess.SetModel(model, fingerprint)
	log.Info("report rebuilt", "files", len(files))

	s.writeReportResponse(w, http.StatusOK, sess, true)
}

func (s *Server) writeReportResponse(w http.ResponseWriter, code int, sess *session.Session, rebuilt bool) {
	model := sess.Model()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]any{
		"session_id":  sess.ID,
		"fingerprint": sess.Fingerprint,
		"rebuilt":     rebuilt,
		"stats":       model.Stats(),
		"warnings":    model.Warnings(),
	})
}

func (s *Server) handleGetReport(w http.ResponseWriter, r *http.Request) {
	model, ok := s.sessionModel(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"stats":    model.Stats(),
		"warnings": model.Warnings(),
	})
}

func (s *Server) handleGetTree(w http.ResponseWriter, r *http.Request) {
	model, ok := s.sessionModel(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"tree": model.Tree()})
}

func (s *Server) handleBatchLookup(w http.ResponseWriter, r *http.Request) {
	model, ok := s.sessionModel(w, r)
	if !ok {
		return
	}
	batch := chi.URLParam(r, "batchNumber")
	articles := model.BatchLookup(batch)
	if articles == nil {
		articles = []string{}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"batch":    batch,
		"articles": articles,
	})
}

func (s *Server) handleArticleLookup(w http.ResponseWriter, r *http.Request) {
	model, ok := s.sessionModel(w, r)
	if !ok {
		return
	}
	article := chi.URLParam(r, "articleNumber")
	batches := model.ArticleLookup(article)
	if batches == nil {
		batches = []*bom.BatchRecord{}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"article": article,
		"batches": batches,
	})
}

func (s *Server) handleDeleteReport(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "sessionID")
	s.sessions.Delete(id)
	w.WriteHeader(http.StatusNoContent)
}

// sessionModel resolves the session's model or writes the 404.
func (s *Server) sessionModel(w http.ResponseWriter, r *http.Request) (*report.Model, bool) {
	id := chi.URLParam(r, "sessionID")
	sess := s.sessions.Get(id)
	if sess == nil {
		jsonError(w, "session not found", http.StatusNotFound)
		return nil, false
	}
	model := sess.Model()
	if model == nil {
		jsonError(w, "no report built for session", http.StatusNotFound)
		return nil, false
	}
	return model, true
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." {
		name = "unnamed"
	}
	return name
}
