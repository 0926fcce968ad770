package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gstinvoice/models"
)

func TestMemoryInvoiceStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryInvoiceStore(10, time.Hour)

	t.Run("missing invoice", func(t *testing.T) {
		_, err := store.Get(ctx, "nope")
		assert.ErrorIs(t, err, ErrInvoiceNotFound)
	})

	t.Run("set then get", func(t *testing.T) {
		rec := &models.InvoiceRecord{InvoiceNo: "SMH-1", GrandTotal: 118}
		require.NoError(t, store.Set(ctx, rec))

		got, err := store.Get(ctx, "SMH-1")
		require.NoError(t, err)
		assert.Equal(t, int64(118), got.GrandTotal)
	})

	t.Run("set replaces", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, &models.InvoiceRecord{InvoiceNo: "SMH-1", GrandTotal: 200}))

		got, err := store.Get(ctx, "SMH-1")
		require.NoError(t, err)
		assert.Equal(t, int64(200), got.GrandTotal)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, store.Delete(ctx, "SMH-1"))
		_, err := store.Get(ctx, "SMH-1")
		assert.ErrorIs(t, err, ErrInvoiceNotFound)
	})
}

func TestMemoryInvoiceStore_EvictsLeastRecentlyUsed(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryInvoiceStore(2, time.Hour)

	require.NoError(t, store.Set(ctx, &models.InvoiceRecord{InvoiceNo: "a"}))
	require.NoError(t, store.Set(ctx, &models.InvoiceRecord{InvoiceNo: "b"}))
	_, err := store.Get(ctx, "a")
	require.NoError(t, err)
	require.NoError(t, store.Set(ctx, &models.InvoiceRecord{InvoiceNo: "c"}))

	assert.Equal(t, 2, store.Len())
	_, err = store.Get(ctx, "b")
	assert.ErrorIs(t, err, ErrInvoiceNotFound)
	_, err = store.Get(ctx, "a")
	assert.NoError(t, err)
}

func TestMemoryInvoiceStore_Expires(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryInvoiceStore(10, 50*time.Millisecond)

	require.NoError(t, store.Set(ctx, &models.InvoiceRecord{InvoiceNo: "a"}))

	assert.Eventually(t, func() bool {
		_, err := store.Get(ctx, "a")
		return err == ErrInvoiceNotFound
	}, 2*time.Second, 20*time.Millisecond)
}
