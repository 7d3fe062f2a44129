package postgres

import (
	"context"
	"fmt"

	"github.com/dtroode/autocompany-server/internal/model"
)

const workerColumns = `worker_id, salary, post, experience, surname, firstname,
	lastname, phone_number, address, id_expanse, inn_director`

var _ model.ResourceStore[model.Worker, int64] = (*WorkerRepository)(nil)

type WorkerRepository struct {
	db DBTX
}

func NewWorkerRepository(db DBTX) *WorkerRepository {
	return &WorkerRepository{db: db}
}

func scanWorker(row rowScanner) (model.Worker, error) {
	var w model.Worker
	err := row.Scan(
		&w.ID, &w.Salary, &w.Post, &w.Experience, &w.Surname, &w.Firstname,
		&w.Lastname, &w.PhoneNumber, &w.Address, &w.ExpenseID, &w.DirectorINN,
	)
	return w, err
}

func (r *WorkerRepository) Create(ctx context.Context, w model.Worker) (model.Worker, error) {
	query := `INSERT INTO workers (
				salary, post, experience, surname, firstname,
				lastname, phone_number, address, id_expanse, inn_director
			  ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			  RETURNING ` + workerColumns

	created, err := scanWorker(r.db.QueryRowContext(ctx, query,
		w.Salary, w.Post, w.Experience, w.Surname, w.Firstname,
		w.Lastname, w.PhoneNumber, w.Address, w.ExpenseID, w.DirectorINN,
	))
	if err != nil {
		return model.Worker{}, fmt.Errorf("failed to create worker: %w", classify(err, "workers"))
	}
	return created, nil
}

func (r *WorkerRepository) Get(ctx context.Context, id int64) (model.Worker, error) {
	return getRow(ctx, r.db, "workers", `SELECT `+workerColumns+` FROM workers WHERE worker_id = $1`, scanWorker, id)
}

func (r *WorkerRepository) List(ctx context.Context) ([]model.Worker, error) {
	return listRows(ctx, r.db, "workers", `SELECT `+workerColumns+` FROM workers ORDER BY worker_id`, scanWorker)
}

func (r *WorkerRepository) Update(ctx context.Context, id int64, w model.Worker) (model.Worker, error) {
	query := `UPDATE workers SET
				salary = $1, post = $2, experience = $3, surname = $4, firstname = $5,
				lastname = $6, phone_number = $7, address = $8, id_expanse = $9, inn_director = $10
			  WHERE worker_id = $11
			  RETURNING ` + workerColumns

	updated, err := scanWorker(r.db.QueryRowContext(ctx, query,
		w.Salary, w.Post, w.Experience, w.Surname, w.Firstname,
		w.Lastname, w.PhoneNumber, w.Address, w.ExpenseID, w.DirectorINN, id,
	))
	if err != nil {
		return model.Worker{}, fmt.Errorf("failed to update worker: %w", classify(err, "workers"))
	}
	return updated, nil
}

func (r *WorkerRepository) Delete(ctx context.Context, id int64) error {
	return deleteRow(ctx, r.db, "workers", `DELETE FROM workers WHERE worker_id = $1`, id)
}
