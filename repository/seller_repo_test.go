package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gstinvoice/models"
)

func TestCurrentSeller_FallsBackToDefault(t *testing.T) {
	repo := NewStaticSellerRepo()

	s, err := CurrentSeller(context.Background(), repo)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultSeller(), s)
}

func TestStaticSellerRepo_SaveAndGet(t *testing.T) {
	ctx := context.Background()
	repo := NewStaticSellerRepo()

	in := &models.Seller{Name: "New Name", GSTIN: "09ABCDE1234F1Z5"}
	require.NoError(t, repo.SaveSeller(ctx, in))
	assert.False(t, in.CreatedAt.IsZero())

	in.Name = "mutated after save"

	s, err := CurrentSeller(ctx, repo)
	require.NoError(t, err)
	assert.Equal(t, "New Name", s.Name)
	assert.Equal(t, "09ABCDE1234F1Z5", s.GSTIN)
}
