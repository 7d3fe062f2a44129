package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/autocompany-server/internal/model"
)

func TestCompanyRepository_CRUD(t *testing.T) {
	cols := []string{"inn", "name_company", "address"}
	ctx := context.Background()

	t.Run("create", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewCompanyRepository(db)

		mock.ExpectQuery(`INSERT INTO company \(inn, name_company, address\)`).
			WithArgs(int64(7701), "Auto LLC", "Moscow").
			WillReturnRows(sqlmock.NewRows(cols).AddRow(int64(7701), "Auto LLC", "Moscow"))

		got, err := repo.Create(ctx, model.Company{INN: 7701, NameCompany: "Auto LLC", Address: "Moscow"})
		require.NoError(t, err)
		assert.Equal(t, "Auto LLC", got.NameCompany)
	})

	t.Run("create duplicate", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewCompanyRepository(db)

		mock.ExpectQuery(`INSERT INTO company`).
			WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "company_pkey"})

		_, err := repo.Create(ctx, model.Company{INN: 7701})
		assert.ErrorIs(t, err, model.ErrAlreadyExists)
	})

	t.Run("get missing", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewCompanyRepository(db)

		mock.ExpectQuery(`SELECT .+ FROM company WHERE inn = \$1`).
			WithArgs(int64(1)).
			WillReturnError(sql.ErrNoRows)

		_, err := repo.Get(ctx, 1)
		assert.ErrorIs(t, err, model.ErrNotFound)
	})

	t.Run("list empty is not nil", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewCompanyRepository(db)

		mock.ExpectQuery(`SELECT .+ FROM company ORDER BY inn`).
			WillReturnRows(sqlmock.NewRows(cols))

		got, err := repo.List(ctx)
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("list", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewCompanyRepository(db)

		mock.ExpectQuery(`FROM company ORDER BY inn`).
			WillReturnRows(sqlmock.NewRows(cols).
				AddRow(int64(1), "A", "a").
				AddRow(int64(2), "B", "b"))

		got, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, int64(2), got[1].INN)
	})

	t.Run("update missing", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewCompanyRepository(db)

		mock.ExpectQuery(`UPDATE company SET name_company = \$1, address = \$2`).
			WithArgs("New", "Addr", int64(5)).
			WillReturnError(sql.ErrNoRows)

		_, err := repo.Update(ctx, 5, model.Company{NameCompany: "New", Address: "Addr"})
		assert.ErrorIs(t, err, model.ErrNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewCompanyRepository(db)

		mock.ExpectExec(`DELETE FROM company WHERE inn = \$1`).
			WithArgs(int64(5)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`DELETE FROM company WHERE inn = \$1`).
			WithArgs(int64(6)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		require.NoError(t, repo.Delete(ctx, 5))
		assert.ErrorIs(t, repo.Delete(ctx, 6), model.ErrNotFound)
	})

	t.Run("delete referenced", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewCompanyRepository(db)

		mock.ExpectExec(`DELETE FROM company`).
			WillReturnError(&pgconn.PgError{Code: "23503", ConstraintName: "director_inn_company_fkey"})

		assert.ErrorIs(t, repo.Delete(ctx, 5), model.ErrReference)
	})
}

func TestWorkerRepository_Create(t *testing.T) {
	cols := []string{
		"worker_id", "salary", "post", "experience", "surname", "firstname",
		"lastname", "phone_number", "address", "id_expanse", "inn_director",
	}
	director := int64(500100)
	worker := model.Worker{
		Salary:      20000,
		Post:        model.PostDriver,
		Surname:     "Ivanov",
		Firstname:   "Ivan",
		Lastname:    "Ivanovich",
		PhoneNumber: "+79990000000",
		Address:     "Kazan",
		DirectorINN: &director,
	}

	t.Run("success", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewWorkerRepository(db)

		mock.ExpectQuery(`INSERT INTO workers`).
			WithArgs(int64(20000), model.PostDriver, 0, "Ivanov", "Ivan", "Ivanovich",
				"+79990000000", "Kazan", nil, &director).
			WillReturnRows(sqlmock.NewRows(cols).AddRow(
				int64(1), int64(20000), model.PostDriver, 0, "Ivanov", "Ivan",
				"Ivanovich", "+79990000000", "Kazan", nil, director))

		got, err := repo.Create(context.Background(), worker)
		require.NoError(t, err)
		assert.Equal(t, int64(1), got.ID)
		assert.Nil(t, got.ExpenseID)
		require.NotNil(t, got.DirectorINN)
		assert.Equal(t, director, *got.DirectorINN)
	})

	t.Run("salary below minimum", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewWorkerRepository(db)

		mock.ExpectQuery(`INSERT INTO workers`).
			WillReturnError(&pgconn.PgError{Code: "23514", ConstraintName: "workers_salary_check"})

		_, err := repo.Create(context.Background(), worker)
		require.ErrorIs(t, err, model.ErrInvalid)

		var cerr *model.ConstraintError
		require.ErrorAs(t, err, &cerr)
		assert.Equal(t, "salary", cerr.Column)
	})

	t.Run("unknown director", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewWorkerRepository(db)

		mock.ExpectQuery(`INSERT INTO workers`).
			WillReturnError(&pgconn.PgError{Code: "23503", ConstraintName: "workers_inn_director_fkey"})

		_, err := repo.Create(context.Background(), worker)
		assert.ErrorIs(t, err, model.ErrReference)
	})
}

func TestCarRepository_Get(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCarRepository(db)

	mock.ExpectQuery(`FROM car WHERE number_vin = \$1`).
		WithArgs("XTA21099").
		WillReturnRows(sqlmock.NewRows([]string{
			"number_vin", "complectation", "color", "mark", "model", "year_create", "app_number",
		}).AddRow("XTA21099", "Lux", "red", "Lada", "2109", 1995, nil))

	got, err := repo.Get(context.Background(), "XTA21099")
	require.NoError(t, err)
	assert.Equal(t, "Lada", got.Mark)
	assert.Nil(t, got.AppNumber)
}

func TestAdmissionRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAdmissionRepository(db)

	date := model.NewDate(2024, time.March, 4)
	mock.ExpectQuery(`INSERT INTO admission_journal`).
		WithArgs(date, "Base", "white", "Kia", "Rio", 2023).
		WillReturnRows(sqlmock.NewRows([]string{
			"id_number", "admission_date", "complectation", "color", "mark", "model", "year_create",
		}).AddRow(int64(3), date.Time, "Base", "white", "Kia", "Rio", 2023))

	got, err := repo.Create(context.Background(), model.Admission{
		AdmissionDate: date,
		Complectation: "Base",
		Color:         "white",
		Mark:          "Kia",
		Model:         "Rio",
		YearCreate:    2023,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), got.IDNumber)
	assert.Equal(t, "2024-03-04", got.AdmissionDate.String())
}

func TestAccountantRepository_Create(t *testing.T) {
	cols := []string{"worker_id", "qual", "kit", "id_number"}
	ctx := context.Background()

	t.Run("eligible worker", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewAccountantRepository(db)

		mock.ExpectQuery(`INSERT INTO accountant .+ FROM workers w\s+WHERE w.worker_id = \$1 AND w.post = \$5`).
			WithArgs(int64(4), 2, "Отсутствует", nil, model.PostAccountant).
			WillReturnRows(sqlmock.NewRows(cols).AddRow(int64(4), 2, "Отсутствует", nil))

		got, err := repo.Create(ctx, model.Accountant{WorkerID: 4, Qual: 2, Kit: "Отсутствует"})
		require.NoError(t, err)
		assert.Equal(t, int64(4), got.WorkerID)
	})

	t.Run("worker with other post", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewAccountantRepository(db)

		mock.ExpectQuery(`INSERT INTO accountant`).WillReturnError(sql.ErrNoRows)

		_, err := repo.Create(ctx, model.Accountant{WorkerID: 4})
		require.ErrorIs(t, err, model.ErrNotFound)
		assert.Contains(t, err.Error(), model.PostAccountant)
	})

	t.Run("already specialized", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewAccountantRepository(db)

		mock.ExpectQuery(`INSERT INTO accountant`).
			WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "accountant_pkey"})

		_, err := repo.Create(ctx, model.Accountant{WorkerID: 4})
		assert.ErrorIs(t, err, model.ErrAlreadyExists)
	})
}

func TestLifeguardRepository_UsesLifeguardsTable(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewLifeguardRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(`INSERT INTO lifeguards .+ w.post = \$5`).
		WithArgs(int64(8), "black", "Отсутствует", "Вход", model.PostLifeguard).
		WillReturnRows(sqlmock.NewRows([]string{"worker_id", "uniform", "kit", "security_zone"}).
			AddRow(int64(8), "black", "Отсутствует", "Вход"))
	mock.ExpectExec(`DELETE FROM lifeguards WHERE worker_id = \$1`).
		WithArgs(int64(8)).
		WillReturnError(errors.New("conn closed"))

	got, err := repo.Create(ctx, model.Lifeguard{WorkerID: 8, Uniform: "black", Kit: "Отсутствует", SecurityZone: "Вход"})
	require.NoError(t, err)
	assert.Equal(t, "Вход", got.SecurityZone)

	err = repo.Delete(ctx, 8)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to delete lifeguards")
}
