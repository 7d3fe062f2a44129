package postgres

import (
	"context"
	"fmt"

	"github.com/dtroode/autocompany-server/internal/model"
)

const sellerColumns = `worker_id, seller_type, app_number`

var _ model.ResourceStore[model.Seller, int64] = (*SellerRepository)(nil)

type SellerRepository struct {
	db DBTX
}

func NewSellerRepository(db DBTX) *SellerRepository {
	return &SellerRepository{db: db}
}

func scanSeller(row rowScanner) (model.Seller, error) {
	var s model.Seller
	err := row.Scan(&s.WorkerID, &s.SellerType, &s.AppNumber)
	return s, err
}

func (r *SellerRepository) Create(ctx context.Context, s model.Seller) (model.Seller, error) {
	query := `INSERT INTO seller (worker_id, seller_type, app_number)
			  SELECT w.worker_id, $2::text, $3::bigint
			  FROM workers w
			  WHERE w.worker_id = $1 AND w.post = $4
			  RETURNING ` + sellerColumns

	created, err := scanSeller(r.db.QueryRowContext(ctx, query,
		s.WorkerID, s.SellerType, s.AppNumber, model.PostSeller))
	if err != nil {
		return model.Seller{}, fmt.Errorf("failed to create seller: %w",
			eligibleWorker(err, "seller", model.PostSeller))
	}
	return created, nil
}

func (r *SellerRepository) Get(ctx context.Context, workerID int64) (model.Seller, error) {
	return getRow(ctx, r.db, "seller",
		`SELECT `+sellerColumns+` FROM seller WHERE worker_id = $1`, scanSeller, workerID)
}

func (r *SellerRepository) List(ctx context.Context) ([]model.Seller, error) {
	return listRows(ctx, r.db, "seller",
		`SELECT `+sellerColumns+` FROM seller ORDER BY worker_id`, scanSeller)
}

func (r *SellerRepository) Update(ctx context.Context, workerID int64, s model.Seller) (model.Seller, error) {
	query := `UPDATE seller SET seller_type = $1, app_number = $2
			  WHERE worker_id = $3
			  RETURNING ` + sellerColumns

	updated, err := scanSeller(r.db.QueryRowContext(ctx, query, s.SellerType, s.AppNumber, workerID))
	if err != nil {
		return model.Seller{}, fmt.Errorf("failed to update seller: %w", classify(err, "seller"))
	}
	return updated, nil
}

func (r *SellerRepository) Delete(ctx context.Context, workerID int64) error {
	return deleteRow(ctx, r.db, "seller", `DELETE FROM seller WHERE worker_id = $1`, workerID)
}
