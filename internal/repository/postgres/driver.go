package postgres

import (
	"context"
	"fmt"

	"github.com/dtroode/autocompany-server/internal/model"
)

const driverColumns = `worker_id, car_number, snacks, number_vin`

var _ model.ResourceStore[model.Driver, int64] = (*DriverRepository)(nil)

type DriverRepository struct {
	db DBTX
}

func NewDriverRepository(db DBTX) *DriverRepository {
	return &DriverRepository{db: db}
}

func scanDriver(row rowScanner) (model.Driver, error) {
	var d model.Driver
	err := row.Scan(&d.WorkerID, &d.CarNumber, &d.Snacks, &d.NumberVIN)
	return d, err
}

func (r *DriverRepository) Create(ctx context.Context, d model.Driver) (model.Driver, error) {
	query := `INSERT INTO driver (worker_id, car_number, snacks, number_vin)
			  SELECT w.worker_id, $2::text, $3::text, $4::text
			  FROM workers w
			  WHERE w.worker_id = $1 AND w.post = $5
			  RETURNING ` + driverColumns

	created, err := scanDriver(r.db.QueryRowContext(ctx, query,
		d.WorkerID, d.CarNumber, d.Snacks, d.NumberVIN, model.PostDriver))
	if err != nil {
		return model.Driver{}, fmt.Errorf("failed to create driver: %w",
			eligibleWorker(err, "driver", model.PostDriver))
	}
	return created, nil
}

func (r *DriverRepository) Get(ctx context.Context, workerID int64) (model.Driver, error) {
	return getRow(ctx, r.db, "driver",
		`SELECT `+driverColumns+` FROM driver WHERE worker_id = $1`, scanDriver, workerID)
}

func (r *DriverRepository) List(ctx context.Context) ([]model.Driver, error) {
	return listRows(ctx, r.db, "driver",
		`SELECT `+driverColumns+` FROM driver ORDER BY worker_id`, scanDriver)
}

func (r *DriverRepository) Update(ctx context.Context, workerID int64, d model.Driver) (model.Driver, error) {
	query := `UPDATE driver SET car_number = $1, snacks = $2, number_vin = $3
			  WHERE worker_id = $4
			  RETURNING ` + driverColumns

	updated, err := scanDriver(r.db.QueryRowContext(ctx, query, d.CarNumber, d.Snacks, d.NumberVIN, workerID))
	if err != nil {
		return model.Driver{}, fmt.Errorf("failed to update driver: %w", classify(err, "driver"))
	}
	return updated, nil
}

func (r *DriverRepository) Delete(ctx context.Context, workerID int64) error {
	return deleteRow(ctx, r.db, "driver", `DELETE FROM driver WHERE worker_id = $1`, workerID)
}
