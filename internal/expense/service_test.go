package expense

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedCategorizer struct {
	category string
	calls    int
}

func (f *fixedCategorizer) Predict(text string) string {
	f.calls++
	return f.category
}

func TestService_CreateCategorizes(t *testing.T) {
	categorizer := &fixedCategorizer{category: "Food"}
	svc := NewService(newTestSQLiteStore(t), categorizer)
	ctx := context.Background()

	created, err := svc.Create(ctx, Expense{Amount: 12, Description: "pizza from dominos"})
	require.NoError(t, err)
	assert.Equal(t, "Food", created.Category)
	assert.False(t, created.CreatedAt.IsZero())
	_, err = uuid.Parse(created.ID)
	assert.NoError(t, err)

	kept, err := svc.Create(ctx, Expense{Description: "pizza", Category: "Party"})
	require.NoError(t, err)
	assert.Equal(t, "Party", kept.Category)
	assert.Equal(t, 1, categorizer.calls)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestService_CreateRejectsInvalid(t *testing.T) {
	svc := NewService(newTestSQLiteStore(t), nil)

	_, err := svc.Create(context.Background(), Expense{Amount: -3, Description: "refund"})
	assert.ErrorIs(t, err, ErrInvalidExpense)
}

func TestService_UpdateExisting(t *testing.T) {
	svc := NewService(newTestSQLiteStore(t), &fixedCategorizer{category: "Bills"})
	ctx := context.Background()

	created, err := svc.Create(ctx, Expense{Description: "electricity bill", Amount: 80})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, created.ID, Expense{Description: "water bill", Amount: 30, Category: "Utilities"})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Utilities", updated.Category)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "water bill", got.Description)
	assert.Equal(t, 30.0, got.Amount)
}

func TestService_UpdateMissingCreates(t *testing.T) {
	svc := NewService(newTestSQLiteStore(t), &fixedCategorizer{category: "Travel"})
	ctx := context.Background()

	created, err := svc.Update(ctx, "does-not-exist", Expense{Description: "uber ride"})
	require.NoError(t, err)
	assert.NotEqual(t, "does-not-exist", created.ID)
	assert.Equal(t, "Travel", created.Category)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, created.ID, list[0].ID)
}

func TestService_DeleteMissingIsNoop(t *testing.T) {
	svc := NewService(newTestSQLiteStore(t), nil)
	ctx := context.Background()

	assert.NoError(t, svc.Delete(ctx, "nope"))

	created, err := svc.Create(ctx, Expense{Description: "shoes"})
	require.NoError(t, err)
	assert.Equal(t, "", created.Category)
	require.NoError(t, svc.Delete(ctx, created.ID))

	_, err = svc.Get(ctx, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
