package repository

import (
	"context"
	"database/sql"
	"time"

	"gstinvoice/models"
)

type PostgresSellerRepo struct {
	DB *sql.DB
}

func NewPostgresSellerRepo(db *sql.DB) *PostgresSellerRepo {
	return &PostgresSellerRepo{DB: db}
}

// SaveSeller updates the row when ID names an existing profile, otherwise appends a new one
func (r *PostgresSellerRepo) SaveSeller(ctx context.Context, seller *models.Seller) error {
	if seller.CreatedAt.IsZero() {
		seller.CreatedAt = time.Now().UTC()
	}

	if seller.ID > 0 {
		res, err := r.DB.ExecContext(ctx, `
			UPDATE seller_profile
			SET name=$1, gstin=$2, address=$3, phone=$4, bank_details=$5
			WHERE id=$6
		`, seller.Name, seller.GSTIN, seller.Address, seller.Phone, seller.BankDetails, seller.ID)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n > 0 {
			return nil
		}
		// unknown id, store it as a new profile
	}

	return r.DB.QueryRowContext(ctx, `
		INSERT INTO seller_profile (name, gstin, address, phone, bank_details, created_at)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING id
	`, seller.Name, seller.GSTIN, seller.Address, seller.Phone, seller.BankDetails, seller.CreatedAt).Scan(&seller.ID)
}

// GetSeller fetches the latest profile
func (r *PostgresSellerRepo) GetSeller(ctx context.Context) (*models.Seller, error) {
	s := &models.Seller{}
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, name, gstin, address, phone, bank_details, created_at
		FROM seller_profile
		ORDER BY id DESC LIMIT 1
	`).Scan(&s.ID, &s.Name, &s.GSTIN, &s.Address, &s.Phone, &s.BankDetails, &s.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return s, nil
}
