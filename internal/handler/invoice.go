package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"invoicedash/internal/action"
	"invoicedash/internal/cache"
	"invoicedash/internal/model"
	"invoicedash/internal/service"
	"invoicedash/internal/validation"
)

type InvoiceReader interface {
	Filtered(ctx context.Context, query string, page int) ([]model.InvoiceRow, error)
	Pages(ctx context.Context, query string) (int, error)
	ByID(ctx context.Context, id string) (*model.Invoice, error)
}

type invoicePage struct {
	Invoices   []model.InvoiceRow `json:"invoices"`
	Page       int                `json:"page"`
	TotalPages int                `json:"total_pages"`
}

func CreateInvoiceHandler(actions *action.InvoiceActions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !parseForm(w, r) {
			return
		}

		out := actions.CreateInvoice(r.Context(), action.State{}, validation.FromValues(r.PostForm))
		writeOutcome(w, r, out)
	}
}

func UpdateInvoiceHandler(actions *action.InvoiceActions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !parseForm(w, r) {
			return
		}

		id := chi.URLParam(r, "id")
		out := actions.UpdateInvoice(r.Context(), id, action.State{}, validation.FromValues(r.PostForm))
		writeOutcome(w, r, out)
	}
}

func DeleteInvoiceHandler(actions *action.InvoiceActions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		st, err := actions.DeleteInvoice(r.Context(), id)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, st)
			return
		}
		writeJSON(w, http.StatusOK, st)
	}
}

func ListInvoicesHandler(invoices InvoiceReader, c *cache.RenderCache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query().Get("query")
		page, err := strconv.Atoi(r.URL.Query().Get("page"))
		if err != nil || page < 1 {
			page = 1
		}

		serveCached(c, action.InvoicesPath, w, r, func() (any, error) {
			rows, err := invoices.Filtered(r.Context(), query, page)
			if err != nil {
				return nil, err
			}
			total, err := invoices.Pages(r.Context(), query)
			if err != nil {
				return nil, err
			}
			if rows == nil {
				rows = []model.InvoiceRow{}
			}
			return invoicePage{Invoices: rows, Page: page, TotalPages: total}, nil
		})
	}
}

func GetInvoiceHandler(invoices InvoiceReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if _, err := uuid.Parse(id); err != nil {
			writeError(w, http.StatusNotFound, "invoice not found")
			return
		}

		inv, err := invoices.ByID(r.Context(), id)
		if err != nil {
			if errors.Is(err, service.ErrInvoiceNotFound) {
				writeError(w, http.StatusNotFound, "invoice not found")
				return
			}
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		writeJSON(w, http.StatusOK, inv)
	}
}
