package model

type InvoiceStatus string

const (
	InvoiceStatusPending InvoiceStatus = "pending"
	InvoiceStatusPaid    InvoiceStatus = "paid"
)

// Valid reports whether s is one of the known statuses.
func (s InvoiceStatus) Valid() bool {
	return s == InvoiceStatusPending || s == InvoiceStatusPaid
}

type Invoice struct {
	ID          string        `json:"id"`
	CustomerID  string        `json:"customer_id"`
	AmountCents int64         `json:"amount"`
	Status      InvoiceStatus `json:"status"`
	Date        string        `json:"date"` // YYYY-MM-DD
}

// NewInvoice is the insert payload; id is assigned by storage.
type NewInvoice struct {
	CustomerID  string
	AmountCents int64
	Status      InvoiceStatus
	Date        string
}

// InvoiceRow is an invoice joined with its customer, as listed on the dashboard.
type InvoiceRow struct {
	Invoice
	Name     string `json:"name"`
	Email    string `json:"email"`
	ImageURL string `json:"image_url"`
}

type LatestInvoice struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	ImageURL    string `json:"image_url"`
	AmountCents int64  `json:"amount"`
}

type CardData struct {
	NumberOfInvoices  int   `json:"number_of_invoices"`
	NumberOfCustomers int   `json:"number_of_customers"`
	TotalPaidCents    int64 `json:"total_paid_invoices"`
	TotalPendingCents int64 `json:"total_pending_invoices"`
}
