package usecase

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"
)

var (
	ErrBeneficiaryNotFound = errors.New("beneficiary not found")
	ErrInvalidBeneficiary  = errors.New("invalid beneficiary payload")
)

// pgErrorFields extracts the PostgreSQL error code and the offending
// constraint, table or column so failed writes can be logged with context.
func pgErrorFields(err error) logrus.Fields {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return logrus.Fields{}
	}
	fields := logrus.Fields{"pg_code": pgErr.Code}
	if pgErr.ConstraintName != "" {
		fields["pg_constraint"] = pgErr.ConstraintName
	}
	if pgErr.TableName != "" {
		fields["pg_table"] = pgErr.TableName
	}
	if pgErr.ColumnName != "" {
		fields["pg_column"] = pgErr.ColumnName
	}
	return fields
}

// isConstraintViolation reports whether err is a PostgreSQL integrity
// constraint violation (SQLSTATE class 23).
func isConstraintViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return strings.HasPrefix(pgErr.Code, "23")
	}
	return false
}

// writeOutcome labels the result of a beneficiary write for metrics.
func writeOutcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, ErrBeneficiaryNotFound):
		return "not_found"
	case errors.Is(err, ErrInvalidBeneficiary):
		return "invalid"
	case isConstraintViolation(err):
		return "constraint_violation"
	default:
		return "error"
	}
}
