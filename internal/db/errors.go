package db

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"net"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrNotFound    = errors.New("record not found")
	ErrUnavailable = errors.New("store unavailable")
	ErrConflict    = errors.New("unique constraint violated")
	ErrStatement   = errors.New("statement failed")
)

const pgUniqueViolation = "23505"

// StoreError matches both its Kind and the driver error with errors.Is.
type StoreError struct {
	Op   string
	Kind error
	Err  error
}

func (e *StoreError) Error() string {
	return e.Op + ": " + e.Kind.Error() + ": " + e.Err.Error()
}

func (e *StoreError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

func IsNotFound(err error) bool    { return errors.Is(err, ErrNotFound) }
func IsUnavailable(err error) bool { return errors.Is(err, ErrUnavailable) }
func IsConflict(err error) bool    { return errors.Is(err, ErrConflict) }

func classify(err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrConflict
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == pgUniqueViolation:
			return ErrConflict
		case strings.HasPrefix(pgErr.Code, "08"), pgErr.Code == "57P01":
			return ErrUnavailable
		}
		return ErrStatement
	}

	if isConnectionError(err) {
		return ErrUnavailable
	}

	// sqlite reports constraint failures only as text.
	if strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return ErrConflict
	}

	return ErrStatement
}

func isConnectionError(err error) bool {
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) {
		return true
	}
	if pgconn.SafeToRetry(err) || pgconn.Timeout(err) {
		return true
	}

	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return true
	}

	var netErr net.Error
	return errors.As(err, &netErr)
}
