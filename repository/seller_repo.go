package repository

import (
	"context"
	"sync"
	"time"

	"gstinvoice/models"
)

// SellerRepository stores the issuing company's profile.
type SellerRepository interface {
	SaveSeller(ctx context.Context, seller *models.Seller) error
	// GetSeller returns the latest profile, or nil when none has been saved.
	GetSeller(ctx context.Context) (*models.Seller, error)
}

// CurrentSeller returns the stored profile, falling back to the built-in one.
func CurrentSeller(ctx context.Context, repo SellerRepository) (models.Seller, error) {
	s, err := repo.GetSeller(ctx)
	if err != nil {
		return models.Seller{}, err
	}
	if s == nil {
		return models.DefaultSeller(), nil
	}
	return *s, nil
}

// StaticSellerRepo keeps the profile in memory for the life of the process.
type StaticSellerRepo struct {
	mu     sync.RWMutex
	seller *models.Seller
}

func NewStaticSellerRepo() *StaticSellerRepo {
	return &StaticSellerRepo{}
}

func (r *StaticSellerRepo) SaveSeller(ctx context.Context, seller *models.Seller) error {
	if seller.CreatedAt.IsZero() {
		seller.CreatedAt = time.Now().UTC()
	}
	cp := *seller
	r.mu.Lock()
	r.seller = &cp
	r.mu.Unlock()
	return nil
}

func (r *StaticSellerRepo) GetSeller(ctx context.Context) (*models.Seller, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.seller == nil {
		return nil, nil
	}
	cp := *r.seller
	return &cp, nil
}
