package model

type Customer struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	ImageURL string `json:"image_url"`
}

// CustomerField is the id/name pair used to populate a customer picker.
type CustomerField struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type CustomerSummary struct {
	Customer
	TotalInvoices int   `json:"total_invoices"`
	TotalPending  int64 `json:"total_pending"`
	TotalPaid     int64 `json:"total_paid"`
}
