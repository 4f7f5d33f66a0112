package adapthttp

import (
	"errors"
	"net/http"

	"weighttracker/internal/app"
)

func (s *Server) handleEntries(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := userFromContext(r)

	switch r.Method {
	case http.MethodGet:
		descending := r.URL.Query().Get("order") == "desc"
		items, err := s.entries.List(ctx, user.ID, descending)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"items": items})

	case http.MethodPut:
		// Manual saves are blocked while an import runs so concurrent
		// upserts cannot race on the same day bucket.
		if s.imports.InProgress() {
			writeError(w, http.StatusConflict, app.ErrImportInProgress)
			return
		}
		var body struct {
			Weight float64 `json:"weight"`
			Day    string  `json:"day"`
		}
		if err := parseJSON(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		entry, err := s.entries.Upsert(ctx, user.ID, body.Weight, body.Day)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"entry": entry})

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	user := userFromContext(r)

	if err := r.ParseMultipartForm(8 << 20); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	f, _, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	defer f.Close()

	summary, err := s.imports.Run(r.Context(), user.ID, f)
	switch {
	case errors.Is(err, app.ErrImportInProgress):
		writeError(w, http.StatusConflict, err)
		return
	case errors.Is(err, app.ErrMalformedFile):
		writeError(w, http.StatusBadRequest, err)
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"ok":       true,
		"imported": summary.Imported,
		"skipped":  summary.Skipped,
	})
}

func (s *Server) handleImportStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": s.imports.Status()})
}
