package postgres

import (
	"context"
	"fmt"

	"github.com/dtroode/autocompany-server/internal/model"
)

const directorColumns = `inn, profit, surname, firstname, lastname, inn_company`

var _ model.ResourceStore[model.Director, int64] = (*DirectorRepository)(nil)

type DirectorRepository struct {
	db DBTX
}

func NewDirectorRepository(db DBTX) *DirectorRepository {
	return &DirectorRepository{db: db}
}

func scanDirector(row rowScanner) (model.Director, error) {
	var d model.Director
	err := row.Scan(&d.INN, &d.Profit, &d.Surname, &d.Firstname, &d.Lastname, &d.INNCompany)
	return d, err
}

func (r *DirectorRepository) Create(ctx context.Context, d model.Director) (model.Director, error) {
	query := `INSERT INTO director (inn, profit, surname, firstname, lastname, inn_company)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING ` + directorColumns

	created, err := scanDirector(r.db.QueryRowContext(ctx, query,
		d.INN, d.Profit, d.Surname, d.Firstname, d.Lastname, d.INNCompany))
	if err != nil {
		return model.Director{}, fmt.Errorf("failed to create director: %w", classify(err, "director"))
	}
	return created, nil
}

func (r *DirectorRepository) Get(ctx context.Context, inn int64) (model.Director, error) {
	return getRow(ctx, r.db, "director", `SELECT `+directorColumns+` FROM director WHERE inn = $1`, scanDirector, inn)
}

func (r *DirectorRepository) List(ctx context.Context) ([]model.Director, error) {
	return listRows(ctx, r.db, "director", `SELECT `+directorColumns+` FROM director ORDER BY inn`, scanDirector)
}

func (r *DirectorRepository) Update(ctx context.Context, inn int64, d model.Director) (model.Director, error) {
	query := `UPDATE director
			  SET profit = $1, surname = $2, firstname = $3, lastname = $4, inn_company = $5
			  WHERE inn = $6
			  RETURNING ` + directorColumns

	updated, err := scanDirector(r.db.QueryRowContext(ctx, query,
		d.Profit, d.Surname, d.Firstname, d.Lastname, d.INNCompany, inn))
	if err != nil {
		return model.Director{}, fmt.Errorf("failed to update director: %w", classify(err, "director"))
	}
	return updated, nil
}

func (r *DirectorRepository) Delete(ctx context.Context, inn int64) error {
	return deleteRow(ctx, r.db, "director", `DELETE FROM director WHERE inn = $1`, inn)
}
