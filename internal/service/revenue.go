package service

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"invoicedash/internal/model"
)

type RevenueService struct {
	db *sql.DB
}

func NewRevenueService(db *sql.DB) *RevenueService {
	return &RevenueService{db: db}
}

func (s *RevenueService) Fetch(ctx context.Context) ([]model.Revenue, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT month, revenue FROM revenue ORDER BY EXTRACT(MONTH FROM to_date(month, 'Mon'))`,
	)
	if err != nil {
		return nil, fmt.Errorf("query revenue: %w", err)
	}
	defer rows.Close()

	var revenue []model.Revenue
	for rows.Next() {
		var r model.Revenue
		if err := rows.Scan(&r.Month, &r.RevenueCents); err != nil {
			return nil, fmt.Errorf("scan revenue: %w", err)
		}
		revenue = append(revenue, r)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}

	return revenue, nil
}

// RollupWindow returns the twelve calendar months [from, to) ending with the
// month of the latest paid invoice, or with the month of now if that invoice
// is dated later.
func RollupWindow(latestPaid, now time.Time) (from, to time.Time) {
	anchor := latestPaid.UTC()
	if n := now.UTC(); n.Before(anchor) {
		anchor = n
	}
	to = time.Date(anchor.Year(), anchor.Month()+1, 1, 0, 0, 0, 0, time.UTC)
	from = to.AddDate(0, -12, 0)
	return from, to
}

// Rollup rebuilds per-month revenue from paid invoices inside RollupWindow.
// Months outside the window, or without paid invoices, are reset to zero.
func (s *RevenueService) Rollup(ctx context.Context, now time.Time) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err = tx.ExecContext(ctx, `UPDATE revenue SET revenue = 0`); err != nil {
		return fmt.Errorf("reset revenue: %w", err)
	}

	var latest sql.NullTime
	err = tx.QueryRowContext(ctx, `SELECT MAX(date) FROM invoices WHERE status = 'paid'`).Scan(&latest)
	if err != nil {
		return fmt.Errorf("latest paid invoice: %w", err)
	}
	if !latest.Valid {
		return tx.Commit()
	}

	from, to := RollupWindow(latest.Time, now)
	_, err = tx.ExecContext(ctx, `
		INSERT INTO revenue (month, revenue)
		SELECT to_char(date, 'Mon'), SUM(amount)::bigint
		FROM invoices
		WHERE status = 'paid' AND date >= $1 AND date < $2
		GROUP BY to_char(date, 'Mon')
		ON CONFLICT (month) DO UPDATE SET revenue = EXCLUDED.revenue
	`, from.Format(time.DateOnly), to.Format(time.DateOnly))
	if err != nil {
		return fmt.Errorf("rollup revenue: %w", err)
	}

	return tx.Commit()
}
