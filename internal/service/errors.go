package service

import (
	"errors"
	"log/slog"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrInvoiceNotFound = errors.New("invoice not found")
	ErrUserNotFound    = errors.New("user not found")
)

type Op string

const (
	OpCreate Op = "create"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
)

var opMessages = map[Op]string{
	OpCreate: "Database Error: Failed to Create Invoice.",
	OpUpdate: "Database Error: Failed to Update Invoice.",
	OpDelete: "Database Error: Failed to Delete Invoice",
}

// PersistenceError is the only error an invoice write returns. Its message is
// fixed per operation; the driver error is kept for logs.
type PersistenceError struct {
	Op  Op
	Err error
}

func (e *PersistenceError) Error() string {
	return opMessages[e.Op]
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

func persistenceError(op Op, err error) *PersistenceError {
	attrs := []any{"op", op, "error", err}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		attrs = append(attrs, "sqlstate", pgErr.Code, "constraint", pgErr.ConstraintName)
	}
	slog.Error("invoice write failed", attrs...)
	return &PersistenceError{Op: op, Err: err}
}
