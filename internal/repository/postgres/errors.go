package postgres

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dtroode/autocompany-server/internal/model"
)

const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
	codeNotNullViolation    = "23502"
)

// classify translates driver errors on table into model errors.
func classify(err error, table string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return model.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	cerr := &model.ConstraintError{
		Constraint: pgErr.ConstraintName,
		Column:     constraintColumn(pgErr.ConstraintName, table),
	}
	if pgErr.ColumnName != "" {
		cerr.Column = pgErr.ColumnName
	}

	switch pgErr.Code {
	case codeUniqueViolation:
		cerr.Err = model.ErrAlreadyExists
	case codeForeignKeyViolation:
		cerr.Err = model.ErrReference
	case codeCheckViolation, codeNotNullViolation:
		cerr.Err = model.ErrInvalid
	default:
		return err
	}

	return cerr
}

// constraintColumn extracts the column from Postgres default constraint names
// such as users_email_key or director_inn_company_fkey.
func constraintColumn(constraint, table string) string {
	name, ok := strings.CutPrefix(constraint, table+"_")
	if !ok {
		return ""
	}
	for _, suffix := range []string{"_fkey", "_key", "_check"} {
		if col, found := strings.CutSuffix(name, suffix); found {
			return col
		}
	}
	return ""
}
