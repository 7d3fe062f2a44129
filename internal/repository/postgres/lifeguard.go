package postgres

import (
	"context"
	"fmt"

	"github.com/dtroode/autocompany-server/internal/model"
)

const lifeguardColumns = `worker_id, uniform, kit, security_zone`

var _ model.ResourceStore[model.Lifeguard, int64] = (*LifeguardRepository)(nil)

// LifeguardRepository stores security staff.
type LifeguardRepository struct {
	db DBTX
}

func NewLifeguardRepository(db DBTX) *LifeguardRepository {
	return &LifeguardRepository{db: db}
}

func scanLifeguard(row rowScanner) (model.Lifeguard, error) {
	var l model.Lifeguard
	err := row.Scan(&l.WorkerID, &l.Uniform, &l.Kit, &l.SecurityZone)
	return l, err
}

func (r *LifeguardRepository) Create(ctx context.Context, l model.Lifeguard) (model.Lifeguard, error) {
	query := `INSERT INTO lifeguards (worker_id, uniform, kit, security_zone)
			  SELECT w.worker_id, $2::text, $3::text, $4::text
			  FROM workers w
			  WHERE w.worker_id = $1 AND w.post = $5
			  RETURNING ` + lifeguardColumns

	created, err := scanLifeguard(r.db.QueryRowContext(ctx, query,
		l.WorkerID, l.Uniform, l.Kit, l.SecurityZone, model.PostLifeguard))
	if err != nil {
		return model.Lifeguard{}, fmt.Errorf("failed to create lifeguard: %w",
			eligibleWorker(err, "lifeguards", model.PostLifeguard))
	}
	return created, nil
}

func (r *LifeguardRepository) Get(ctx context.Context, workerID int64) (model.Lifeguard, error) {
	return getRow(ctx, r.db, "lifeguards",
		`SELECT `+lifeguardColumns+` FROM lifeguards WHERE worker_id = $1`, scanLifeguard, workerID)
}

func (r *LifeguardRepository) List(ctx context.Context) ([]model.Lifeguard, error) {
	return listRows(ctx, r.db, "lifeguards",
		`SELECT `+lifeguardColumns+` FROM lifeguards ORDER BY worker_id`, scanLifeguard)
}

func (r *LifeguardRepository) Update(ctx context.Context, workerID int64, l model.Lifeguard) (model.Lifeguard, error) {
	query := `UPDATE lifeguards SET uniform = $1, kit = $2, security_zone = $3
			  WHERE worker_id = $4
			  RETURNING ` + lifeguardColumns

	updated, err := scanLifeguard(r.db.QueryRowContext(ctx, query, l.Uniform, l.Kit, l.SecurityZone, workerID))
	if err != nil {
		return model.Lifeguard{}, fmt.Errorf("failed to update lifeguard: %w", classify(err, "lifeguards"))
	}
	return updated, nil
}

func (r *LifeguardRepository) Delete(ctx context.Context, workerID int64) error {
	return deleteRow(ctx, r.db, "lifeguards", `DELETE FROM lifeguards WHERE worker_id = $1`, workerID)
}
