package handler

import (
	"context"
	"net/http"

	"golang.org/x/sync/errgroup"

	"invoicedash/internal/cache"
	"invoicedash/internal/model"
)

const (
	RevenuePath = "/dashboard/revenue"
	latestCount = 5
)

type OverviewReader interface {
	CardData(ctx context.Context) (*model.CardData, error)
	Latest(ctx context.Context, limit int) ([]model.LatestInvoice, error)
}

type RevenueReader interface {
	Fetch(ctx context.Context) ([]model.Revenue, error)
}

type overview struct {
	Cards          *model.CardData       `json:"cards"`
	LatestInvoices []model.LatestInvoice `json:"latest_invoices"`
}

func OverviewHandler(invoices OverviewReader, c *cache.RenderCache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		serveCached(c, DashboardPath, w, r, func() (any, error) {
			var ov overview
			g, ctx := errgroup.WithContext(r.Context())
			g.Go(func() error {
				cards, err := invoices.CardData(ctx)
				ov.Cards = cards
				return err
			})
			g.Go(func() error {
				latest, err := invoices.Latest(ctx, latestCount)
				ov.LatestInvoices = latest
				return err
			})
			if err := g.Wait(); err != nil {
				return nil, err
			}
			return ov, nil
		})
	}
}

func RevenueHandler(revenue RevenueReader, c *cache.RenderCache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		serveCached(c, RevenuePath, w, r, func() (any, error) {
			rows, err := revenue.Fetch(r.Context())
			if err != nil {
				return nil, err
			}
			if rows == nil {
				rows = []model.Revenue{}
			}
			return rows, nil
		})
	}
}
