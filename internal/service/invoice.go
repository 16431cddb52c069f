package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"invoicedash/internal/model"
)

const InvoicesPerPage = 6

type InvoiceService struct {
	db DBTX
}

func NewInvoiceService(db DBTX) *InvoiceService {
	return &InvoiceService{db: db}
}

func (s *InvoiceService) Insert(ctx context.Context, inv model.NewInvoice) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO invoices (customer_id, amount, status, date) VALUES ($1, $2, $3, $4)`,
		inv.CustomerID, inv.AmountCents, string(inv.Status), inv.Date,
	)
	if err != nil {
		return persistenceError(OpCreate, err)
	}
	return nil
}

// Update overwrites all three mutable fields together.
func (s *InvoiceService) Update(ctx context.Context, id, customerID string, amountCents int64, status model.InvoiceStatus) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE invoices SET customer_id = $1, amount = $2, status = $3 WHERE id = $4`,
		customerID, amountCents, string(status), id,
	)
	if err != nil {
		return persistenceError(OpUpdate, err)
	}
	warnIfUntouched(res, "update", id)
	return nil
}

// Delete of a missing id succeeds without effect.
func (s *InvoiceService) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM invoices WHERE id = $1`, id)
	if err != nil {
		return persistenceError(OpDelete, err)
	}
	warnIfUntouched(res, "delete", id)
	return nil
}

func warnIfUntouched(res sql.Result, op, id string) {
	if res == nil {
		return
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		slog.Warn("invoice write matched no rows", "op", op, "id", id)
	}
}

func (s *InvoiceService) ByID(ctx context.Context, id string) (*model.Invoice, error) {
	var (
		inv  model.Invoice
		date time.Time
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, customer_id, amount, status, date FROM invoices WHERE id = $1`,
		id,
	).Scan(&inv.ID, &inv.CustomerID, &inv.AmountCents, &inv.Status, &date)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvoiceNotFound
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	inv.Date = date.Format(time.DateOnly)
	return &inv, nil
}

func (s *InvoiceService) Latest(ctx context.Context, limit int) ([]model.LatestInvoice, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT invoices.id, customers.name, customers.email, customers.image_url, invoices.amount
		FROM invoices
		JOIN customers ON invoices.customer_id = customers.id
		ORDER BY invoices.date DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query latest invoices: %w", err)
	}
	defer rows.Close()

	var invoices []model.LatestInvoice
	for rows.Next() {
		var li model.LatestInvoice
		if err := rows.Scan(&li.ID, &li.Name, &li.Email, &li.ImageURL, &li.AmountCents); err != nil {
			return nil, fmt.Errorf("scan latest invoice: %w", err)
		}
		invoices = append(invoices, li)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}

	return invoices, nil
}

func (s *InvoiceService) CardData(ctx context.Context) (*model.CardData, error) {
	var cd model.CardData
	err := s.db.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM invoices),
			(SELECT COUNT(*) FROM customers),
			COALESCE((SELECT SUM(amount) FROM invoices WHERE status = 'paid'), 0)::bigint,
			COALESCE((SELECT SUM(amount) FROM invoices WHERE status = 'pending'), 0)::bigint
	`).Scan(&cd.NumberOfInvoices, &cd.NumberOfCustomers, &cd.TotalPaidCents, &cd.TotalPendingCents)
	if err != nil {
		return nil, fmt.Errorf("get card data: %w", err)
	}
	return &cd, nil
}

const filterInvoicesWhere = `
	WHERE customers.name ILIKE $1
		OR customers.email ILIKE $1
		OR invoices.amount::text ILIKE $1
		OR invoices.date::text ILIKE $1
		OR invoices.status ILIKE $1
`

// Filtered returns one page (1-based) of invoices matching query.
func (s *InvoiceService) Filtered(ctx context.Context, query string, page int) ([]model.InvoiceRow, error) {
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * InvoicesPerPage

	rows, err := s.db.QueryContext(ctx, `
		SELECT invoices.id, invoices.customer_id, invoices.amount, invoices.status, invoices.date,
			customers.name, customers.email, customers.image_url
		FROM invoices
		JOIN customers ON invoices.customer_id = customers.id
	`+filterInvoicesWhere+`
		ORDER BY invoices.date DESC
		LIMIT $2 OFFSET $3
	`, likePattern(query), InvoicesPerPage, offset)
	if err != nil {
		return nil, fmt.Errorf("query filtered invoices: %w", err)
	}
	defer rows.Close()

	var invoices []model.InvoiceRow
	for rows.Next() {
		var (
			r    model.InvoiceRow
			date time.Time
		)
		if err := rows.Scan(&r.ID, &r.CustomerID, &r.AmountCents, &r.Status, &date, &r.Name, &r.Email, &r.ImageURL); err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		r.Date = date.Format(time.DateOnly)
		invoices = append(invoices, r)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}

	return invoices, nil
}

func (s *InvoiceService) Pages(ctx context.Context, query string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*)
		FROM invoices
		JOIN customers ON invoices.customer_id = customers.id
	`+filterInvoicesWhere, likePattern(query)).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count invoices: %w", err)
	}
	return TotalPages(count, InvoicesPerPage), nil
}

func TotalPages(count, perPage int) int {
	if count <= 0 || perPage <= 0 {
		return 0
	}
	return (count + perPage - 1) / perPage
}

func likePattern(query string) string {
	return "%" + query + "%"
}
