package postgres

import (
	"context"
	"fmt"

	"github.com/dtroode/autocompany-server/internal/model"
)

const carColumns = `number_vin, complectation, color, mark, model, year_create, app_number`

var _ model.ResourceStore[model.Car, string] = (*CarRepository)(nil)

type CarRepository struct {
	db DBTX
}

func NewCarRepository(db DBTX) *CarRepository {
	return &CarRepository{db: db}
}

func scanCar(row rowScanner) (model.Car, error) {
	var c model.Car
	err := row.Scan(&c.NumberVIN, &c.Complectation, &c.Color, &c.Mark, &c.Model, &c.YearCreate, &c.AppNumber)
	return c, err
}

func (r *CarRepository) Create(ctx context.Context, c model.Car) (model.Car, error) {
	query := `INSERT INTO car (number_vin, complectation, color, mark, model, year_create, app_number)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  RETURNING ` + carColumns

	created, err := scanCar(r.db.QueryRowContext(ctx, query,
		c.NumberVIN, c.Complectation, c.Color, c.Mark, c.Model, c.YearCreate, c.AppNumber))
	if err != nil {
		return model.Car{}, fmt.Errorf("failed to create car: %w", classify(err, "car"))
	}
	return created, nil
}

func (r *CarRepository) Get(ctx context.Context, vin string) (model.Car, error) {
	return getRow(ctx, r.db, "car", `SELECT `+carColumns+` FROM car WHERE number_vin = $1`, scanCar, vin)
}

func (r *CarRepository) List(ctx context.Context) ([]model.Car, error) {
	return listRows(ctx, r.db, "car", `SELECT `+carColumns+` FROM car ORDER BY number_vin`, scanCar)
}

func (r *CarRepository) Update(ctx context.Context, vin string, c model.Car) (model.Car, error) {
	query := `UPDATE car
			  SET complectation = $1, color = $2, mark = $3, model = $4, year_create = $5, app_number = $6
			  WHERE number_vin = $7
			  RETURNING ` + carColumns

	updated, err := scanCar(r.db.QueryRowContext(ctx, query,
		c.Complectation, c.Color, c.Mark, c.Model, c.YearCreate, c.AppNumber, vin))
	if err != nil {
		return model.Car{}, fmt.Errorf("failed to update car: %w", classify(err, "car"))
	}
	return updated, nil
}

func (r *CarRepository) Delete(ctx context.Context, vin string) error {
	return deleteRow(ctx, r.db, "car", `DELETE FROM car WHERE number_vin = $1`, vin)
}
