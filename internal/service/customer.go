package service

import (
	"context"
	"fmt"

	"invoicedash/internal/model"
)

type CustomerService struct {
	db DBTX
}

func NewCustomerService(db DBTX) *CustomerService {
	return &CustomerService{db: db}
}

// All lists customers for the invoice form's picker.
func (s *CustomerService) All(ctx context.Context) ([]model.CustomerField, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name FROM customers ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("query customers: %w", err)
	}
	defer rows.Close()

	var customers []model.CustomerField
	for rows.Next() {
		var c model.CustomerField
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		customers = append(customers, c)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}

	return customers, nil
}

func (s *CustomerService) Filtered(ctx context.Context, query string) ([]model.CustomerSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT
			customers.id,
			customers.name,
			customers.email,
			customers.image_url,
			COUNT(invoices.id),
			COALESCE(SUM(CASE WHEN invoices.status = 'pending' THEN invoices.amount ELSE 0 END), 0)::bigint,
			COALESCE(SUM(CASE WHEN invoices.status = 'paid' THEN invoices.amount ELSE 0 END), 0)::bigint
		FROM customers
		LEFT JOIN invoices ON customers.id = invoices.customer_id
		WHERE customers.name ILIKE $1 OR customers.email ILIKE $1
		GROUP BY customers.id, customers.name, customers.email, customers.image_url
		ORDER BY customers.name ASC
	`, likePattern(query))
	if err != nil {
		return nil, fmt.Errorf("query filtered customers: %w", err)
	}
	defer rows.Close()

	var customers []model.CustomerSummary
	for rows.Next() {
		var c model.CustomerSummary
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.ImageURL, &c.TotalInvoices, &c.TotalPending, &c.TotalPaid); err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		customers = append(customers, c)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}

	return customers, nil
}
