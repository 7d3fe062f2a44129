package postgres

import (
	"context"
	"fmt"

	"github.com/dtroode/autocompany-server/internal/model"
)

const accountantColumns = `worker_id, qual, kit, id_number`

var _ model.ResourceStore[model.Accountant, int64] = (*AccountantRepository)(nil)

type AccountantRepository struct {
	db DBTX
}

func NewAccountantRepository(db DBTX) *AccountantRepository {
	return &AccountantRepository{db: db}
}

func scanAccountant(row rowScanner) (model.Accountant, error) {
	var a model.Accountant
	err := row.Scan(&a.WorkerID, &a.Qual, &a.Kit, &a.IDNumber)
	return a, err
}

// Create inserts the row only for a worker whose post is PostAccountant.
func (r *AccountantRepository) Create(ctx context.Context, a model.Accountant) (model.Accountant, error) {
	query := `INSERT INTO accountant (worker_id, qual, kit, id_number)
			  SELECT w.worker_id, $2::integer, $3::text, $4::bigint
			  FROM workers w
			  WHERE w.worker_id = $1 AND w.post = $5
			  RETURNING ` + accountantColumns

	created, err := scanAccountant(r.db.QueryRowContext(ctx, query,
		a.WorkerID, a.Qual, a.Kit, a.IDNumber, model.PostAccountant))
	if err != nil {
		return model.Accountant{}, fmt.Errorf("failed to create accountant: %w",
			eligibleWorker(err, "accountant", model.PostAccountant))
	}
	return created, nil
}

func (r *AccountantRepository) Get(ctx context.Context, workerID int64) (model.Accountant, error) {
	return getRow(ctx, r.db, "accountant",
		`SELECT `+accountantColumns+` FROM accountant WHERE worker_id = $1`, scanAccountant, workerID)
}

func (r *AccountantRepository) List(ctx context.Context) ([]model.Accountant, error) {
	return listRows(ctx, r.db, "accountant",
		`SELECT `+accountantColumns+` FROM accountant ORDER BY worker_id`, scanAccountant)
}

func (r *AccountantRepository) Update(ctx context.Context, workerID int64, a model.Accountant) (model.Accountant, error) {
	query := `UPDATE accountant SET qual = $1, kit = $2, id_number = $3
			  WHERE worker_id = $4
			  RETURNING ` + accountantColumns

	updated, err := scanAccountant(r.db.QueryRowContext(ctx, query, a.Qual, a.Kit, a.IDNumber, workerID))
	if err != nil {
		return model.Accountant{}, fmt.Errorf("failed to update accountant: %w", classify(err, "accountant"))
	}
	return updated, nil
}

func (r *AccountantRepository) Delete(ctx context.Context, workerID int64) error {
	return deleteRow(ctx, r.db, "accountant", `DELETE FROM accountant WHERE worker_id = $1`, workerID)
}
