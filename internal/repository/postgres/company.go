package postgres

import (
	"context"
	"fmt"

	"github.com/dtroode/autocompany-server/internal/model"
)

const companyColumns = `inn, name_company, address`

var _ model.ResourceStore[model.Company, int64] = (*CompanyRepository)(nil)

type CompanyRepository struct {
	db DBTX
}

func NewCompanyRepository(db DBTX) *CompanyRepository {
	return &CompanyRepository{db: db}
}

func scanCompany(row rowScanner) (model.Company, error) {
	var c model.Company
	err := row.Scan(&c.INN, &c.NameCompany, &c.Address)
	return c, err
}

func (r *CompanyRepository) Create(ctx context.Context, c model.Company) (model.Company, error) {
	query := `INSERT INTO company (inn, name_company, address)
			  VALUES ($1, $2, $3)
			  RETURNING ` + companyColumns

	created, err := scanCompany(r.db.QueryRowContext(ctx, query, c.INN, c.NameCompany, c.Address))
	if err != nil {
		return model.Company{}, fmt.Errorf("failed to create company: %w", classify(err, "company"))
	}
	return created, nil
}

func (r *CompanyRepository) Get(ctx context.Context, inn int64) (model.Company, error) {
	return getRow(ctx, r.db, "company", `SELECT `+companyColumns+` FROM company WHERE inn = $1`, scanCompany, inn)
}

func (r *CompanyRepository) List(ctx context.Context) ([]model.Company, error) {
	return listRows(ctx, r.db, "company", `SELECT `+companyColumns+` FROM company ORDER BY inn`, scanCompany)
}

func (r *CompanyRepository) Update(ctx context.Context, inn int64, c model.Company) (model.Company, error) {
	query := `UPDATE company SET name_company = $1, address = $2
			  WHERE inn = $3
			  RETURNING ` + companyColumns

	updated, err := scanCompany(r.db.QueryRowContext(ctx, query, c.NameCompany, c.Address, inn))
	if err != nil {
		return model.Company{}, fmt.Errorf("failed to update company: %w", classify(err, "company"))
	}
	return updated, nil
}

func (r *CompanyRepository) Delete(ctx context.Context, inn int64) error {
	return deleteRow(ctx, r.db, "company", `DELETE FROM company WHERE inn = $1`, inn)
}
