// Package action holds the form actions behind the dashboard: invoice
// create/update/delete and sign-in.
package action

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"invoicedash/internal/model"
	"invoicedash/internal/service"
	"invoicedash/internal/validation"
)

const InvoicesPath = "/dashboard/invoices"

const (
	msgCreateInvalid = "Missing Fields. Failed to Create Invoice."
	msgUpdateInvalid = "Missing Fields. Failed to Update Invoice."
	MsgDeleted       = "Deleted Invoice"
)

// State is what a form re-renders with after a failed or in-place action.
type State struct {
	Errors  validation.FieldErrors `json:"errors,omitempty"`
	Message string                 `json:"message,omitempty"`
}

// Outcome is either a redirect or a state to render; never both.
type Outcome struct {
	Redirect string
	State    *State
}

func (o Outcome) IsRedirect() bool {
	return o.Redirect != ""
}

func redirectTo(path string) Outcome {
	return Outcome{Redirect: path}
}

func rendered(s State) Outcome {
	return Outcome{State: &s}
}

type InvoiceStore interface {
	Insert(ctx context.Context, inv model.NewInvoice) error
	Update(ctx context.Context, id, customerID string, amountCents int64, status model.InvoiceStatus) error
	Delete(ctx context.Context, id string) error
}

// Invalidator marks cached renders of a path stale.
type Invalidator interface {
	Invalidate(path string)
}

type InvoiceActions struct {
	store       InvoiceStore
	invalidator Invalidator
	now         func() time.Time
}

type Option func(*InvoiceActions)

func WithClock(now func() time.Time) Option {
	return func(a *InvoiceActions) { a.now = now }
}

func NewInvoiceActions(store InvoiceStore, invalidator Invalidator, opts ...Option) *InvoiceActions {
	a := &InvoiceActions{store: store, invalidator: invalidator, now: time.Now}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// CreateInvoice validates fields, inserts the invoice dated today (UTC) and
// redirects to the invoice list. prev is the state the form last rendered.
func (a *InvoiceActions) CreateInvoice(ctx context.Context, prev State, fields validation.Fields) Outcome {
	inv, errs := validation.ValidateInvoice(fields)
	if errs != nil {
		return rendered(State{Errors: errs, Message: msgCreateInvalid})
	}

	err := a.store.Insert(ctx, model.NewInvoice{
		CustomerID:  inv.CustomerID,
		AmountCents: inv.AmountCents(),
		Status:      inv.Status,
		Date:        a.now().UTC().Format(time.DateOnly),
	})
	if err != nil {
		return rendered(State{Message: persistenceMessage(err, service.OpCreate)})
	}

	a.invalidator.Invalidate(InvoicesPath)
	return redirectTo(InvoicesPath)
}

func (a *InvoiceActions) UpdateInvoice(ctx context.Context, id string, prev State, fields validation.Fields) Outcome {
	inv, errs := validation.ValidateInvoice(fields)
	if errs != nil {
		return rendered(State{Errors: errs, Message: msgUpdateInvalid})
	}

	if err := a.store.Update(ctx, id, inv.CustomerID, inv.AmountCents(), inv.Status); err != nil {
		return rendered(State{Message: persistenceMessage(err, service.OpUpdate)})
	}

	a.invalidator.Invalidate(InvoicesPath)
	return redirectTo(InvoicesPath)
}

// DeleteInvoice runs in place on the listing, so it reports a message
// instead of redirecting. The returned error is the store failure, if any;
// the State carries the message to show either way.
func (a *InvoiceActions) DeleteInvoice(ctx context.Context, id string) (State, error) {
	if err := a.store.Delete(ctx, id); err != nil {
		return State{Message: persistenceMessage(err, service.OpDelete)}, err
	}

	a.invalidator.Invalidate(InvoicesPath)
	return State{Message: MsgDeleted}, nil
}

// persistenceMessage never exposes a raw store error; anything that is not a
// PersistenceError gets the operation's fixed message as well.
func persistenceMessage(err error, op service.Op) string {
	var perr *service.PersistenceError
	if errors.As(err, &perr) {
		return perr.Error()
	}
	slog.Error("unexpected invoice store error", "op", op, "error", err)
	return (&service.PersistenceError{Op: op}).Error()
}
