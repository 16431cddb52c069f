package handler

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"

	"invoicedash/internal/action"
	"invoicedash/internal/cache"
)

const maxFormBytes = 1 << 16

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "error", err)
	}
}

func writeBody(w http.ResponseWriter, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// parseForm reads a url-encoded form body into r.PostForm.
func parseForm(w http.ResponseWriter, r *http.Request) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return false
	}
	return true
}

// writeOutcome performs a redirect outcome as 303 See Other, or renders the
// state: 422 for field errors, 500 for a persistence failure.
func writeOutcome(w http.ResponseWriter, r *http.Request, out action.Outcome) {
	if out.IsRedirect() {
		http.Redirect(w, r, out.Redirect, http.StatusSeeOther)
		return
	}

	status := http.StatusInternalServerError
	if len(out.State.Errors) > 0 {
		status = http.StatusUnprocessableEntity
	}
	writeJSON(w, status, out.State)
}

// serveCached answers from c when path+query has a fresh render, otherwise
// builds, stores and writes it. The render is stored under the key taken
// before build so an invalidation during build discards it.
func serveCached(c *cache.RenderCache, path string, w http.ResponseWriter, r *http.Request, build func() (any, error)) {
	query := r.URL.RawQuery
	body, key, ok := c.Get(path, query)
	if ok {
		w.Header().Set("X-Cache", "HIT")
		writeBody(w, body)
		return
	}

	v, err := build()
	if err != nil {
		slog.Error("render failed", "path", path, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		slog.Error("encode response", "path", path, "error", err)
		writeError(w, http.StatusInternalServerError, "encode error")
		return
	}
	c.Set(key, buf.Bytes())

	w.Header().Set("X-Cache", "MISS")
	writeBody(w, buf.Bytes())
}
