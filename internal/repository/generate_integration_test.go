//go:build integration

package repository

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/menu-order-service/internal/service"
)

// TestGenerateOrder_EndToEnd runs the full generation flow against real
// repositories: seed the catalog, generate, and read the stored order
// back.
func TestGenerateOrder_EndToEnd(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	days := seedMenu(t, db)

	dayRepo := NewDayRepository(db)
	quantityRepo := NewQuantityRepository(db)
	orderRepo := NewOrderRepository(db)
	generator := service.NewOrderGeneratorService(dayRepo, quantityRepo, orderRepo)

	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	orderID, err := generator.GenerateOrder(ctx, service.GenerateOrderInput{
		Name:   "Week 12",
		Date:   date,
		DayIDs: []int64{days[0].ID, days[1].ID},
	})
	require.NoError(t, err)

	order, err := orderRepo.GetByID(ctx, orderID)
	require.NoError(t, err)
	assert.Equal(t, "Week 12", order.Name)
	require.Len(t, order.Lines, 2, "one line per distinct (product, package, unit)")

	// Lines come back sorted by product name.
	beans, rice := order.Lines[0], order.Lines[1]

	// Beans: 0.25 x 10 (Toddlers) once per day-recipe pair = 2.50 + 2.50.
	assert.Equal(t, "Beans", beans.Name)
	assert.True(t, beans.Quantity.Equal(decimal.RequireFromString("5")), "got %s", beans.Quantity)
	assert.Equal(t, int64(5), beans.Total)
	assert.Equal(t, int64(1), beans.QtyPackage)

	// Rice: 1.5 x (10 + 20) per day = 45 + 45.
	assert.Equal(t, "Rice", rice.Name)
	assert.True(t, rice.Quantity.Equal(decimal.RequireFromString("90")), "got %s", rice.Quantity)
	assert.Equal(t, int64(90), rice.Total)
	assert.Equal(t, int64(18), rice.QtyPackage)

	// Unknown day IDs surface as a validation error without persisting.
	_, err = generator.GenerateOrder(ctx, service.GenerateOrderInput{
		Name:   "Bad",
		Date:   date,
		DayIDs: []int64{9999},
	})
	assert.ErrorIs(t, err, service.ErrUnknownDayIDs)

	orders, err := orderRepo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, orders, 1)
}
