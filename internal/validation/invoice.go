package validation

import (
	"math"
	"net/url"
	"strconv"
	"strings"

	"invoicedash/internal/model"
)

const (
	FieldCustomerID = "customerId"
	FieldAmount     = "amount"
	FieldStatus     = "status"
)

const (
	MsgCustomerRequired = "Please select a customer."
	MsgAmountPositive   = "Please enter an amount greater than $0."
	MsgStatusRequired   = "Please select an invoice status."
)

// Fields is a raw submitted form: field name to value.
type Fields map[string]string

// FromValues takes the first value of every key, like FormData.get.
func FromValues(v url.Values) Fields {
	f := make(Fields, len(v))
	for k := range v {
		f[k] = v.Get(k)
	}
	return f
}

// FieldErrors maps a field name to its messages.
type FieldErrors map[string][]string

// Result is either a value or a list of messages.
type Result[T any] struct {
	Value  T
	Errors []string
}

func Ok[T any](v T) Result[T] {
	return Result[T]{Value: v}
}

func Err[T any](msgs ...string) Result[T] {
	return Result[T]{Errors: msgs}
}

func (r Result[T]) OK() bool {
	return len(r.Errors) == 0
}

// Invoice is a submission that passed validation.
type Invoice struct {
	CustomerID string
	Amount     float64
	Status     model.InvoiceStatus
}

// AmountCents is the amount in minor units, rounded to the nearest cent.
func (i Invoice) AmountCents() int64 {
	return toCents(i.Amount)
}

func toCents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// ValidateInvoice checks the three mutable invoice fields. id and date are
// never read from the submission. A nil FieldErrors means inv is usable.
func ValidateInvoice(f Fields) (Invoice, FieldErrors) {
	customer := CustomerID(f[FieldCustomerID])
	amount := Amount(f[FieldAmount])
	status := Status(f[FieldStatus])

	var errs FieldErrors
	add := func(field string, msgs []string) {
		if len(msgs) == 0 {
			return
		}
		if errs == nil {
			errs = FieldErrors{}
		}
		errs[field] = msgs
	}
	add(FieldCustomerID, customer.Errors)
	add(FieldAmount, amount.Errors)
	add(FieldStatus, status.Errors)

	if errs != nil {
		return Invoice{}, errs
	}
	return Invoice{
		CustomerID: customer.Value,
		Amount:     amount.Value,
		Status:     status.Value,
	}, nil
}

func CustomerID(raw string) Result[string] {
	id := strings.TrimSpace(raw)
	if id == "" {
		return Err[string](MsgCustomerRequired)
	}
	return Ok(id)
}

// Amount coerces raw to a number. Anything that is not a finite amount of at
// least one cent is rejected with the same message.
func Amount(raw string) Result[float64] {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Err[float64](MsgAmountPositive)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return Err[float64](MsgAmountPositive)
	}
	if v*100 >= math.MaxInt64 || toCents(v) < 1 {
		return Err[float64](MsgAmountPositive)
	}
	return Ok(v)
}

func Status(raw string) Result[model.InvoiceStatus] {
	s := model.InvoiceStatus(raw)
	if !s.Valid() {
		return Err[model.InvoiceStatus](MsgStatusRequired)
	}
	return Ok(s)
}
