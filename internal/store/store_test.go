package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentdesk/internal/kv"
	"rentdesk/internal/models"
	"rentdesk/internal/utils"
)

func pinClock(t *testing.T, at time.Time) {
	t.Helper()
	utils.NowHook = func() (time.Time, bool) { return at, true }
	t.Cleanup(func() { utils.NowHook = nil })
}

func TestCreateStampsAndPersists(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	pinClock(t, created)

	kvs := kv.NewMemory()
	props := NewCollection[models.Property, *models.Property](kvs, KeyProperties)

	p := &models.Property{Title: "Sunset Villa", Status: models.PropertyStatusAvailable}
	require.NoError(t, props.Create(ctx, p))

	assert.NotEqual(t, utils.SixID{}, p.ID)
	assert.Equal(t, created, p.CreatedAt)
	assert.Equal(t, p.CreatedAt, p.UpdatedAt)

	// A fresh collection over the same backend sees the record.
	reloaded := NewCollection[models.Property, *models.Property](kvs, KeyProperties)
	got, found, err := reloaded.Get(ctx, p.ID)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "Sunset Villa", got.Title)
}

func TestCreateRegeneratesDuplicateID(t *testing.T) {
	ctx := context.Background()
	props := NewCollection[models.Property, *models.Property](kv.NewMemory(), KeyProperties)

	first := &models.Property{Title: "First"}
	require.NoError(t, props.Create(ctx, first))

	// Force the generator to collide once, then fall back to random.
	calls := 0
	utils.NewSixIDHook = func() (utils.SixID, bool) {
		calls++
		if calls == 1 {
			return first.ID, true
		}
		return utils.SixID{}, false
	}
	defer func() { utils.NewSixIDHook = nil }()

	second := &models.Property{Title: "Second"}
	require.NoError(t, props.Create(ctx, second))
	assert.NotEqual(t, first.ID, second.ID)

	records, err := props.List(ctx)
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestUpdateMergesAndTouches(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	pinClock(t, created)

	props := NewCollection[models.Property, *models.Property](kv.NewMemory(), KeyProperties)
	p := &models.Property{Title: "Old Title", Location: "Pune", RentAmount: 15000}
	require.NoError(t, props.Create(ctx, p))

	later := created.Add(time.Hour)
	pinClock(t, later)

	updated, found, err := props.Update(ctx, p.ID, map[string]any{
		"title": "New Title",
		"id":    utils.NewSixID(), // must be ignored
	})
	require.NoError(t, err)
	require.True(t, found)

	assert.Equal(t, "New Title", updated.Title)
	assert.Equal(t, "Pune", updated.Location) // untouched fields survive
	assert.Equal(t, 15000.0, updated.RentAmount)
	assert.Equal(t, p.ID, updated.ID)
	assert.Equal(t, created, updated.CreatedAt)
	assert.Equal(t, later, updated.UpdatedAt)
}

func TestUpdateEmptyPatchTouchesOnlyUpdatedAt(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	pinClock(t, created)

	props := NewCollection[models.Property, *models.Property](kv.NewMemory(), KeyProperties)
	p := &models.Property{Title: "Untouched", Location: "Pune", RentAmount: 15000}
	require.NoError(t, props.Create(ctx, p))

	later := created.Add(time.Hour)
	pinClock(t, later)

	updated, found, err := props.Update(ctx, p.ID, map[string]any{})
	require.NoError(t, err)
	require.True(t, found)

	assert.Equal(t, later, updated.UpdatedAt)
	updated.UpdatedAt = p.UpdatedAt
	assert.Equal(t, *p, *updated)
}

func TestUpdateUnknownIDIsSilentNoOp(t *testing.T) {
	ctx := context.Background()
	props := NewCollection[models.Property, *models.Property](kv.NewMemory(), KeyProperties)

	updated, found, err := props.Update(ctx, utils.NewSixID(), map[string]any{"title": "x"})
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, updated)
}

func TestRemove(t *testing.T) {
	ctx := context.Background()
	props := NewCollection[models.Property, *models.Property](kv.NewMemory(), KeyProperties)

	p := &models.Property{Title: "Doomed"}
	require.NoError(t, props.Create(ctx, p))

	removed, err := props.Remove(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	_, found, err := props.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.False(t, found)

	// Removing again is a silent no-op.
	removed, err = props.Remove(ctx, p.ID)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestCreateFrontKeepsNewestFirst(t *testing.T) {
	ctx := context.Background()
	txns := NewCollection[models.Transaction, *models.Transaction](kv.NewMemory(), KeyTransactions)

	first := &models.Transaction{Amount: 100}
	second := &models.Transaction{Amount: 200}
	require.NoError(t, txns.CreateFront(ctx, first))
	require.NoError(t, txns.CreateFront(ctx, second))

	records, err := txns.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, 200.0, records[0].Amount)
	assert.Equal(t, 100.0, records[1].Amount)
}

func TestMergeRecordShallow(t *testing.T) {
	payment := models.Payment{
		ID:     utils.NewSixID(),
		Amount: 5000,
		Status: models.PaymentStatusPending,
		Notes:  "march rent",
	}

	merged, err := MergeRecord(payment, map[string]any{"status": "paid"})
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPaid, merged.Status)
	assert.Equal(t, 5000.0, merged.Amount)
	assert.Equal(t, "march rent", merged.Notes)
	assert.Equal(t, payment.ID, merged.ID)
}
