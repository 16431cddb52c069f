package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"invoicedash/internal/model"
)

// seedNamespace makes seeded invoice ids stable, so seeding twice is a no-op.
var seedNamespace = uuid.MustParse("6ba7b811-9dad-11d1-80b4-00c04fd430c8")

var seedCustomers = []model.Customer{
	{ID: "d6e15727-9fe1-4961-8c5b-ea44a9bd81aa", Name: "Evil Rabbit", Email: "evil@rabbit.com", ImageURL: "/customers/evil-rabbit.png"},
	{ID: "3958dc9e-712f-4377-85e9-fec4b6a6442a", Name: "Delba de Oliveira", Email: "delba@oliveira.com", ImageURL: "/customers/delba-de-oliveira.png"},
	{ID: "3958dc9e-742f-4377-85e9-fec4b6a6442a", Name: "Lee Robinson", Email: "lee@robinson.com", ImageURL: "/customers/lee-robinson.png"},
	{ID: "76d65c26-f784-44a2-ac19-586678f7c2f2", Name: "Michael Novotny", Email: "michael@novotny.com", ImageURL: "/customers/michael-novotny.png"},
	{ID: "cc27c14a-0acf-4f4a-a6c9-d45682c144b9", Name: "Amy Burns", Email: "amy@burns.com", ImageURL: "/customers/amy-burns.png"},
	{ID: "13d07535-c59e-4157-a011-f8d2ef4e0cbb", Name: "Balazs Orban", Email: "balazs@orban.com", ImageURL: "/customers/balazs-orban.png"},
}

var seedInvoices = []model.NewInvoice{
	{CustomerID: seedCustomers[0].ID, AmountCents: 15795, Status: model.InvoiceStatusPending, Date: "2022-12-06"},
	{CustomerID: seedCustomers[1].ID, AmountCents: 20348, Status: model.InvoiceStatusPending, Date: "2022-11-14"},
	{CustomerID: seedCustomers[4].ID, AmountCents: 3040, Status: model.InvoiceStatusPaid, Date: "2022-10-29"},
	{CustomerID: seedCustomers[3].ID, AmountCents: 44800, Status: model.InvoiceStatusPaid, Date: "2023-09-10"},
	{CustomerID: seedCustomers[5].ID, AmountCents: 34577, Status: model.InvoiceStatusPending, Date: "2023-08-05"},
	{CustomerID: seedCustomers[2].ID, AmountCents: 54246, Status: model.InvoiceStatusPending, Date: "2023-07-16"},
	{CustomerID: seedCustomers[0].ID, AmountCents: 666, Status: model.InvoiceStatusPending, Date: "2023-06-27"},
	{CustomerID: seedCustomers[3].ID, AmountCents: 32545, Status: model.InvoiceStatusPaid, Date: "2023-06-09"},
	{CustomerID: seedCustomers[4].ID, AmountCents: 1250, Status: model.InvoiceStatusPaid, Date: "2023-06-17"},
	{CustomerID: seedCustomers[5].ID, AmountCents: 8546, Status: model.InvoiceStatusPaid, Date: "2023-06-07"},
	{CustomerID: seedCustomers[1].ID, AmountCents: 500, Status: model.InvoiceStatusPaid, Date: "2023-08-19"},
	{CustomerID: seedCustomers[5].ID, AmountCents: 8945, Status: model.InvoiceStatusPaid, Date: "2023-06-03"},
	{CustomerID: seedCustomers[2].ID, AmountCents: 1000, Status: model.InvoiceStatusPaid, Date: "2022-06-05"},
}

var seedRevenue = []model.Revenue{
	{Month: "Jan", RevenueCents: 200000}, {Month: "Feb", RevenueCents: 180000},
	{Month: "Mar", RevenueCents: 220000}, {Month: "Apr", RevenueCents: 250000},
	{Month: "May", RevenueCents: 230000}, {Month: "Jun", RevenueCents: 320000},
	{Month: "Jul", RevenueCents: 350000}, {Month: "Aug", RevenueCents: 370000},
	{Month: "Sep", RevenueCents: 250000}, {Month: "Oct", RevenueCents: 280000},
	{Month: "Nov", RevenueCents: 300000}, {Month: "Dec", RevenueCents: 480000},
}

func seedInvoiceID(i int, inv model.NewInvoice) string {
	key := fmt.Sprintf("%d/%s/%d/%s", i, inv.CustomerID, inv.AmountCents, inv.Date)
	return uuid.NewSHA1(seedNamespace, []byte(key)).String()
}

// Seed loads placeholder customers, invoices and revenue. Rows that already
// exist are left alone.
func Seed(ctx context.Context, db *sql.DB) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	for _, c := range seedCustomers {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO customers (id, name, email, image_url) VALUES ($1, $2, $3, $4) ON CONFLICT (id) DO NOTHING`,
			c.ID, c.Name, c.Email, c.ImageURL,
		)
		if err != nil {
			return fmt.Errorf("seed customer %s: %w", c.Name, err)
		}
	}

	for i, inv := range seedInvoices {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO invoices (id, customer_id, amount, status, date) VALUES ($1, $2, $3, $4, $5) ON CONFLICT (id) DO NOTHING`,
			seedInvoiceID(i, inv), inv.CustomerID, inv.AmountCents, string(inv.Status), inv.Date,
		)
		if err != nil {
			return fmt.Errorf("seed invoice: %w", err)
		}
	}

	for _, r := range seedRevenue {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO revenue (month, revenue) VALUES ($1, $2) ON CONFLICT (month) DO NOTHING`,
			r.Month, r.RevenueCents,
		)
		if err != nil {
			return fmt.Errorf("seed revenue: %w", err)
		}
	}

	return tx.Commit()
}
