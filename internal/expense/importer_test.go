package expense

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_Import(t *testing.T) {
	categorizer := &fixedCategorizer{category: "Food"}
	svc := NewService(newTestSQLiteStore(t), categorizer)
	ctx := context.Background()

	n, err := svc.Import(ctx, strings.NewReader(`Date,Amount,Description,Category
2024-06-01,12.50,pizza from dominos,
2024-06-02, 40,bus ticket,Travel
,,"coffee, large",
`))
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, 2, categorizer.calls)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "coffee, large", list[0].Description)
	assert.Equal(t, "Food", list[0].Category)
	assert.Equal(t, 12.5, list[1].Amount)
	assert.Equal(t, "Travel", list[2].Category)
}

func TestService_ImportIsAllOrNothing(t *testing.T) {
	svc := NewService(newTestSQLiteStore(t), nil)
	ctx := context.Background()

	tests := []struct {
		name string
		csv  string
	}{
		{"Empty", ""},
		{"No description column", "amount,date\n3,2024-06-01\n"},
		{"Bad amount", "description,amount\npizza,3\nbus,three\n"},
		{"Negative amount", "description,amount\npizza,-3\n"},
		{"Bad date", "description,date\npizza,June 1st\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Import(ctx, strings.NewReader(tt.csv))
			assert.ErrorIs(t, err, ErrInvalidExpense)
		})
	}

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestService_ImportHeaderOnly(t *testing.T) {
	svc := NewService(newTestSQLiteStore(t), nil)

	n, err := svc.Import(context.Background(), strings.NewReader("description,amount\n"))
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestService_ImportWithByteOrderMark(t *testing.T) {
	svc := NewService(newTestSQLiteStore(t), &fixedCategorizer{category: "Shopping"})
	ctx := context.Background()

	n, err := svc.Import(ctx, strings.NewReader("\ufeffdescription,amount\namazon order,25\n"))
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "amazon order", list[0].Description)
	assert.Equal(t, 25.0, list[0].Amount)
}
