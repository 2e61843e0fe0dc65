package db

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrNotFound is returned when a requested record is not found.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateKey is returned when an insert collides with an existing primary or unique key.
	ErrDuplicateKey = errors.New("duplicate key violation")

	// ErrInvalidInput is returned when PostgreSQL rejects a parameter value itself,
	// e.g. bytes that are not valid in the database encoding.
	ErrInvalidInput = errors.New("invalid input value")
)

// sentinelByCode maps the SQLSTATE codes callers can act on.
var sentinelByCode = map[string]error{
	"23505": ErrDuplicateKey, // unique_violation
	"22021": ErrInvalidInput, // character_not_in_repertoire
	"22P02": ErrInvalidInput, // invalid_text_representation
	"22003": ErrInvalidInput, // numeric_value_out_of_range
}

// WrapError prefixes err with operation and maps known PostgreSQL failures to sentinels.
func WrapError(err error, operation string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", operation, ErrNotFound)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if sentinel, ok := sentinelByCode[pgErr.Code]; ok {
			return fmt.Errorf("%s: %w [%s]: %w", operation, sentinel, pgErr.Code, err)
		}
		return fmt.Errorf("%s: database error [%s]: %w", operation, pgErr.Code, err)
	}

	return fmt.Errorf("%s: %w", operation, err)
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsDuplicateKey(err error) bool {
	return errors.Is(err, ErrDuplicateKey)
}

func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}
