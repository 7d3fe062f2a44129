package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/autocompany-server/internal/model"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	plain := errors.New("plain")

	tests := []struct {
		name       string
		err        error
		table      string
		wantErr    error
		wantColumn string
	}{
		{
			name:    "no rows",
			err:     sql.ErrNoRows,
			table:   "car",
			wantErr: model.ErrNotFound,
		},
		{
			name:       "unique violation",
			err:        &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"},
			table:      "users",
			wantErr:    model.ErrAlreadyExists,
			wantColumn: "email",
		},
		{
			name:       "foreign key violation",
			err:        fmt.Errorf("wrapped: %w", &pgconn.PgError{Code: "23503", ConstraintName: "director_inn_company_fkey"}),
			table:      "director",
			wantErr:    model.ErrReference,
			wantColumn: "inn_company",
		},
		{
			name:       "check violation",
			err:        &pgconn.PgError{Code: "23514", ConstraintName: "car_year_create_check"},
			table:      "car",
			wantErr:    model.ErrInvalid,
			wantColumn: "year_create",
		},
		{
			name:       "not null violation uses column name",
			err:        &pgconn.PgError{Code: "23502", ColumnName: "surname"},
			table:      "workers",
			wantErr:    model.ErrInvalid,
			wantColumn: "surname",
		},
		{
			name:    "other errors pass through",
			err:     plain,
			table:   "car",
			wantErr: plain,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := classify(tt.err, tt.table)
			require.ErrorIs(t, got, tt.wantErr)

			var cerr *model.ConstraintError
			if tt.wantColumn != "" {
				require.ErrorAs(t, got, &cerr)
				assert.Equal(t, tt.wantColumn, cerr.Column)
			}
		})
	}
}

func TestClassify_UnknownPgCode(t *testing.T) {
	t.Parallel()

	err := &pgconn.PgError{Code: "40001"}
	assert.Same(t, err, classify(err, "car").(*pgconn.PgError))
}

func TestConstraintColumn(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "username", constraintColumn("users_username_key", "users"))
	assert.Equal(t, "id_expanse", constraintColumn("workers_id_expanse_fkey", "workers"))
	assert.Equal(t, "salary", constraintColumn("workers_salary_check", "workers"))
	assert.Equal(t, "", constraintColumn("workers_pkey", "workers"))
	assert.Equal(t, "", constraintColumn("users_email_key", "workers"))
	assert.Equal(t, "", constraintColumn("", "workers"))
}
