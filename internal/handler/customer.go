package handler

import (
	"context"
	"log/slog"
	"net/http"

	"invoicedash/internal/model"
)

type CustomerReader interface {
	All(ctx context.Context) ([]model.CustomerField, error)
	Filtered(ctx context.Context, query string) ([]model.CustomerSummary, error)
}

// ListCustomersHandler returns customer summaries, or the bare id/name list
// when fields=picker is set.
func ListCustomersHandler(customers CustomerReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("fields") == "picker" {
			list, err := customers.All(r.Context())
			if err != nil {
				slog.Error("list customers failed", "error", err)
				writeError(w, http.StatusInternalServerError, "internal error")
				return
			}
			if list == nil {
				list = []model.CustomerField{}
			}
			writeJSON(w, http.StatusOK, list)
			return
		}

		list, err := customers.Filtered(r.Context(), r.URL.Query().Get("query"))
		if err != nil {
			slog.Error("list customers failed", "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		if list == nil {
			list = []model.CustomerSummary{}
		}
		writeJSON(w, http.StatusOK, list)
	}
}
