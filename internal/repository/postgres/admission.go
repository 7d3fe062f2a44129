package postgres

import (
	"context"
	"fmt"

	"github.com/dtroode/autocompany-server/internal/model"
)

const admissionColumns = `id_number, admission_date, complectation, color, mark, model, year_create`

var _ model.ResourceStore[model.Admission, int64] = (*AdmissionRepository)(nil)

// AdmissionRepository stores the car admission journal.
type AdmissionRepository struct {
	db DBTX
}

func NewAdmissionRepository(db DBTX) *AdmissionRepository {
	return &AdmissionRepository{db: db}
}

func scanAdmission(row rowScanner) (model.Admission, error) {
	var a model.Admission
	err := row.Scan(&a.IDNumber, &a.AdmissionDate, &a.Complectation, &a.Color, &a.Mark, &a.Model, &a.YearCreate)
	return a, err
}

func (r *AdmissionRepository) Create(ctx context.Context, a model.Admission) (model.Admission, error) {
	query := `INSERT INTO admission_journal (admission_date, complectation, color, mark, model, year_create)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING ` + admissionColumns

	created, err := scanAdmission(r.db.QueryRowContext(ctx, query,
		a.AdmissionDate, a.Complectation, a.Color, a.Mark, a.Model, a.YearCreate))
	if err != nil {
		return model.Admission{}, fmt.Errorf("failed to create admission: %w", classify(err, "admission_journal"))
	}
	return created, nil
}

func (r *AdmissionRepository) Get(ctx context.Context, id int64) (model.Admission, error) {
	return getRow(ctx, r.db, "admission_journal",
		`SELECT `+admissionColumns+` FROM admission_journal WHERE id_number = $1`, scanAdmission, id)
}

func (r *AdmissionRepository) List(ctx context.Context) ([]model.Admission, error) {
	return listRows(ctx, r.db, "admission_journal",
		`SELECT `+admissionColumns+` FROM admission_journal ORDER BY id_number`, scanAdmission)
}

func (r *AdmissionRepository) Update(ctx context.Context, id int64, a model.Admission) (model.Admission, error) {
	query := `UPDATE admission_journal
			  SET admission_date = $1, complectation = $2, color = $3, mark = $4, model = $5, year_create = $6
			  WHERE id_number = $7
			  RETURNING ` + admissionColumns

	updated, err := scanAdmission(r.db.QueryRowContext(ctx, query,
		a.AdmissionDate, a.Complectation, a.Color, a.Mark, a.Model, a.YearCreate, id))
	if err != nil {
		return model.Admission{}, fmt.Errorf("failed to update admission: %w", classify(err, "admission_journal"))
	}
	return updated, nil
}

func (r *AdmissionRepository) Delete(ctx context.Context, id int64) error {
	return deleteRow(ctx, r.db, "admission_journal", `DELETE FROM admission_journal WHERE id_number = $1`, id)
}
