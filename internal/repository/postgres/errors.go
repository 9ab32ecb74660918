package postgres

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/zizouhuweidi/trivia/internal/domain"
)

// classify wraps a failed write in a domain.StoreError tagged with its kind
func classify(op string, err error) error {
	return &domain.StoreError{Op: op, Kind: kindOf(err), Err: err}
}

func kindOf(err error) domain.ErrorKind {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		// class 23: integrity constraint violation
		case strings.HasPrefix(pgErr.Code, "23"):
			return domain.KindConstraint
		// class 08: connection exception, 57P0x: operator intervention / shutdown
		case strings.HasPrefix(pgErr.Code, "08"), strings.HasPrefix(pgErr.Code, "57P0"):
			return domain.KindUnavailable
		}
		return domain.KindUnknown
	}

	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return domain.KindUnavailable
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) || pgconn.Timeout(err) {
		return domain.KindUnavailable
	}
	return domain.KindUnknown
}
