package postgres

import (
	"context"
	"fmt"

	"github.com/dtroode/autocompany-server/internal/model"
)

const clientColumns = `app_number, budget, current_car, prefer_car`

var _ model.ResourceStore[model.Client, int64] = (*ClientRepository)(nil)

type ClientRepository struct {
	db DBTX
}

func NewClientRepository(db DBTX) *ClientRepository {
	return &ClientRepository{db: db}
}

func scanClient(row rowScanner) (model.Client, error) {
	var c model.Client
	err := row.Scan(&c.AppNumber, &c.Budget, &c.CurrentCar, &c.PreferCar)
	return c, err
}

func (r *ClientRepository) Create(ctx context.Context, c model.Client) (model.Client, error) {
	query := `INSERT INTO client (budget, current_car, prefer_car)
			  VALUES ($1, $2, $3)
			  RETURNING ` + clientColumns

	created, err := scanClient(r.db.QueryRowContext(ctx, query, c.Budget, c.CurrentCar, c.PreferCar))
	if err != nil {
		return model.Client{}, fmt.Errorf("failed to create client: %w", classify(err, "client"))
	}
	return created, nil
}

func (r *ClientRepository) Get(ctx context.Context, appNumber int64) (model.Client, error) {
	return getRow(ctx, r.db, "client", `SELECT `+clientColumns+` FROM client WHERE app_number = $1`, scanClient, appNumber)
}

func (r *ClientRepository) List(ctx context.Context) ([]model.Client, error) {
	return listRows(ctx, r.db, "client", `SELECT `+clientColumns+` FROM client ORDER BY app_number`, scanClient)
}

func (r *ClientRepository) Update(ctx context.Context, appNumber int64, c model.Client) (model.Client, error) {
	query := `UPDATE client SET budget = $1, current_car = $2, prefer_car = $3
			  WHERE app_number = $4
			  RETURNING ` + clientColumns

	updated, err := scanClient(r.db.QueryRowContext(ctx, query, c.Budget, c.CurrentCar, c.PreferCar, appNumber))
	if err != nil {
		return model.Client{}, fmt.Errorf("failed to update client: %w", classify(err, "client"))
	}
	return updated, nil
}

func (r *ClientRepository) Delete(ctx context.Context, appNumber int64) error {
	return deleteRow(ctx, r.db, "client", `DELETE FROM client WHERE app_number = $1`, appNumber)
}
