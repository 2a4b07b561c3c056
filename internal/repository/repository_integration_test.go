//go:build integration

package repository

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/menu-order-service/internal/domain/model"
)

// seedMenu builds a small catalog: two products in one recipe, the
// recipe on two days, each product with one quantity row.
func seedMenu(t *testing.T, db *MongoDB) (days []*model.Day) {
	t.Helper()
	ctx := context.Background()
	catalog := NewCatalogRepository(db)
	dayRepo := NewDayRepository(db)

	rice, err := catalog.CreateProduct(ctx, "Rice", "Grains")
	require.NoError(t, err)
	beans, err := catalog.CreateProduct(ctx, "Beans", "Legumes")
	require.NoError(t, err)

	toddlers, err := catalog.CreateAgeGroup(ctx, "Toddlers", 10)
	require.NoError(t, err)
	teens, err := catalog.CreateAgeGroup(ctx, "Teens", 20)
	require.NoError(t, err)

	_, err = catalog.CreateProductQuantity(ctx, rice.ID, []int64{toddlers.ID, teens.ID}, "kg", decimal.RequireFromString("1.5"), "5")
	require.NoError(t, err)
	_, err = catalog.CreateProductQuantity(ctx, beans.ID, []int64{toddlers.ID}, "kg", decimal.RequireFromString("0.25"), "10")
	require.NoError(t, err)

	recipe, err := catalog.CreateRecipe(ctx, "Rice and beans", []int64{rice.ID, beans.ID})
	require.NoError(t, err)

	monday, err := dayRepo.Create(ctx, "Monday", []int64{recipe.ID})
	require.NoError(t, err)
	tuesday, err := dayRepo.Create(ctx, "Tuesday", []int64{recipe.ID})
	require.NoError(t, err)

	return []*model.Day{monday, tuesday}
}

func TestNextID_Sequences(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	first, err := db.NextID(ctx, "orders")
	require.NoError(t, err)
	second, err := db.NextID(ctx, "orders")
	require.NoError(t, err)
	other, err := db.NextID(ctx, "days")
	require.NoError(t, err)

	assert.Equal(t, int64(1), first)
	assert.Equal(t, int64(2), second)
	assert.Equal(t, int64(1), other, "sequences are independent per name")
}

func TestDayRepository_CRUD(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewDayRepository(db)

	day, err := repo.Create(ctx, "Monday", nil)
	require.NoError(t, err)
	assert.NotZero(t, day.ID)
	assert.Equal(t, []int64{}, day.RecipeIDs)

	got, err := repo.GetByID(ctx, day.ID)
	require.NoError(t, err)
	assert.Equal(t, "Monday", got.Name)

	updated, err := repo.Update(ctx, day.ID, "Monday (week 2)", []int64{7})
	require.NoError(t, err)
	assert.Equal(t, []int64{7}, updated.RecipeIDs)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, repo.Delete(ctx, day.ID))
	_, err = repo.GetByID(ctx, day.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, day.ID), ErrNotFound)
}

func TestDayRepository_ValidateIDs(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewDayRepository(db)

	monday, err := repo.Create(ctx, "Monday", nil)
	require.NoError(t, err)
	tuesday, err := repo.Create(ctx, "Tuesday", nil)
	require.NoError(t, err)

	ok, err := repo.ValidateIDs(ctx, []int64{monday.ID, tuesday.ID})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.ValidateIDs(ctx, []int64{monday.ID, monday.ID, tuesday.ID})
	require.NoError(t, err)
	assert.True(t, ok, "duplicate IDs count once")

	ok, err = repo.ValidateIDs(ctx, []int64{monday.ID, 999})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCatalogRepository_ProductCascade(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	catalog := NewCatalogRepository(db)

	product, err := catalog.CreateProduct(ctx, "Milk", "Dairy")
	require.NoError(t, err)
	_, err = catalog.CreateProductQuantity(ctx, product.ID, nil, "l", decimal.RequireFromString("0.2"), "12")
	require.NoError(t, err)

	require.NoError(t, catalog.DeleteProduct(ctx, product.ID))

	quantities, err := catalog.ListProductQuantities(ctx)
	require.NoError(t, err)
	assert.Empty(t, quantities, "deleting a product removes its quantity rows")
}

func TestCatalogRepository_AgeGroupUnlink(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	catalog := NewCatalogRepository(db)

	product, err := catalog.CreateProduct(ctx, "Milk", "Dairy")
	require.NoError(t, err)
	group, err := catalog.CreateAgeGroup(ctx, "Toddlers", 10)
	require.NoError(t, err)
	_, err = catalog.CreateProductQuantity(ctx, product.ID, []int64{group.ID}, "l", decimal.RequireFromString("0.2"), "12")
	require.NoError(t, err)

	require.NoError(t, catalog.DeleteAgeGroup(ctx, group.ID))

	quantities, err := catalog.ListProductQuantities(ctx)
	require.NoError(t, err)
	require.Len(t, quantities, 1)
	assert.Empty(t, quantities[0].AgeGroupIDs, "deleting an age group unlinks it from quantity rows")
}

func TestCatalogRepository_DuplicateName(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	catalog := NewCatalogRepository(db)

	_, err := catalog.CreateProduct(ctx, "Rice", "Grains")
	require.NoError(t, err)
	_, err = catalog.CreateProduct(ctx, "Rice", "Other")
	assert.Error(t, err, "product names are unique")
}

func TestQuantityRepository_ListByDayIDs(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	days := seedMenu(t, db)
	repo := NewQuantityRepository(db)

	records, err := repo.ListByDayIDs(ctx, []int64{days[0].ID})
	require.NoError(t, err)
	require.Len(t, records, 2)

	byName := map[string]model.ProductQuantityRecord{}
	for _, r := range records {
		byName[r.ProductName] = r
	}

	rice := byName["Rice"]
	assert.Equal(t, "kg", rice.UnitOfMeasure)
	assert.Equal(t, "5", rice.PackageType)
	assert.True(t, rice.Quantity.Equal(decimal.RequireFromString("1.5")))
	require.Len(t, rice.AgeGroups, 2)

	beans := byName["Beans"]
	require.Len(t, beans.AgeGroups, 1)
	assert.Equal(t, "Toddlers", beans.AgeGroups[0].Name)
	assert.Equal(t, int64(10), beans.AgeGroups[0].Quantity)

	// Both days share the recipe, so each quantity row comes back once
	// per day. Repeating a day ID does not add another copy.
	records, err = repo.ListByDayIDs(ctx, []int64{days[0].ID, days[1].ID})
	require.NoError(t, err)
	assert.Len(t, records, 4)

	records, err = repo.ListByDayIDs(ctx, []int64{days[0].ID, days[0].ID})
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestQuantityRepository_ListByDayIDs_NoRecipes(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	dayRepo := NewDayRepository(db)

	empty, err := dayRepo.Create(ctx, "Empty day", nil)
	require.NoError(t, err)

	records, err := NewQuantityRepository(db).ListByDayIDs(ctx, []int64{empty.ID})
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestOrderRepository_Roundtrip(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewOrderRepository(db)

	lines := []model.OrderLine{
		{
			Name:          "Rice",
			PackageType:   "5",
			UnitOfMeasure: "kg",
			Quantity:      decimal.RequireFromString("45.00"),
			Total:         45,
			QtyPackage:    9,
			Detail:        "1.5 x 10 (Toddlers) = 15.00\n1.5 x 20 (Teens) = 30.00\nTotal = 45.00\nQty package = ceil(45 / 5) = 9",
		},
	}
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	id, err := repo.CreateOrder(ctx, "Week 12", date, lines)
	require.NoError(t, err)
	assert.NotZero(t, id)

	order, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Week 12", order.Name)
	assert.True(t, date.Equal(order.Date))
	require.Len(t, order.Lines, 1)
	assert.True(t, order.Lines[0].Quantity.Equal(decimal.RequireFromString("45")))
	assert.Equal(t, lines[0].Detail, order.Lines[0].Detail)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, repo.Delete(ctx, id))
	_, err = repo.GetByID(ctx, id)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestOrderRepository_ListSortsNewestFirst(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewOrderRepository(db)

	older := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)

	_, err := repo.CreateOrder(ctx, "Week 12", older, nil)
	require.NoError(t, err)
	_, err = repo.CreateOrder(ctx, "Week 13", newer, nil)
	require.NoError(t, err)

	orders, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, "Week 13", orders[0].Name)
	assert.Equal(t, "Week 12", orders[1].Name)
}

func TestMongoDB_HealthCheck(t *testing.T) {
	db := newTestDB(t)
	assert.NoError(t, db.HealthCheck(context.Background()))
}
