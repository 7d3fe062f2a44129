package postgres

import (
	"context"
	"fmt"

	"github.com/dtroode/autocompany-server/internal/model"
)

const expenseColumns = `id_expanse, expanse_type, expanse_sum, expanse_name`

var _ model.ResourceStore[model.Expense, int64] = (*ExpenseRepository)(nil)

// ExpenseRepository stores the expense journal.
type ExpenseRepository struct {
	db DBTX
}

func NewExpenseRepository(db DBTX) *ExpenseRepository {
	return &ExpenseRepository{db: db}
}

func scanExpense(row rowScanner) (model.Expense, error) {
	var e model.Expense
	err := row.Scan(&e.ID, &e.Type, &e.Sum, &e.Name)
	return e, err
}

func (r *ExpenseRepository) Create(ctx context.Context, e model.Expense) (model.Expense, error) {
	query := `INSERT INTO expanse_journal (expanse_type, expanse_sum, expanse_name)
			  VALUES ($1, $2, $3)
			  RETURNING ` + expenseColumns

	created, err := scanExpense(r.db.QueryRowContext(ctx, query, e.Type, e.Sum, e.Name))
	if err != nil {
		return model.Expense{}, fmt.Errorf("failed to create expense: %w", classify(err, "expanse_journal"))
	}
	return created, nil
}

func (r *ExpenseRepository) Get(ctx context.Context, id int64) (model.Expense, error) {
	return getRow(ctx, r.db, "expanse_journal",
		`SELECT `+expenseColumns+` FROM expanse_journal WHERE id_expanse = $1`, scanExpense, id)
}

func (r *ExpenseRepository) List(ctx context.Context) ([]model.Expense, error) {
	return listRows(ctx, r.db, "expanse_journal",
		`SELECT `+expenseColumns+` FROM expanse_journal ORDER BY id_expanse`, scanExpense)
}

func (r *ExpenseRepository) Update(ctx context.Context, id int64, e model.Expense) (model.Expense, error) {
	query := `UPDATE expanse_journal SET expanse_type = $1, expanse_sum = $2, expanse_name = $3
			  WHERE id_expanse = $4
			  RETURNING ` + expenseColumns

	updated, err := scanExpense(r.db.QueryRowContext(ctx, query, e.Type, e.Sum, e.Name, id))
	if err != nil {
		return model.Expense{}, fmt.Errorf("failed to update expense: %w", classify(err, "expanse_journal"))
	}
	return updated, nil
}

func (r *ExpenseRepository) Delete(ctx context.Context, id int64) error {
	return deleteRow(ctx, r.db, "expanse_journal", `DELETE FROM expanse_journal WHERE id_expanse = $1`, id)
}
