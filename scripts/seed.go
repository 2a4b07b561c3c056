//go:build ignore

// This script seeds a local MongoDB with a small demo catalog so the
// order generation endpoint has data to work with.
// Run with: go run scripts/seed.go
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"

	"github.com/guttosm/menu-order-service/internal/repository"
)

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	uri := getenv("MONGODB_URI", "mongodb://localhost:27017")
	dbName := getenv("MONGODB_DATABASE", "menu_order_service")

	db, err := repository.NewMongoDB(uri, dbName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error connecting to MongoDB: %v\n", err)
		os.Exit(1)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	defer db.Close(ctx)

	catalog := repository.NewCatalogRepository(db)
	days := repository.NewDayRepository(db)

	rice, err := catalog.CreateProduct(ctx, "Rice", "Grains")
	if err != nil {
		fail("product", err)
	}
	beans, err := catalog.CreateProduct(ctx, "Beans", "Legumes")
	if err != nil {
		fail("product", err)
	}
	milk, err := catalog.CreateProduct(ctx, "Milk", "Dairy")
	if err != nil {
		fail("product", err)
	}

	toddlers, err := catalog.CreateAgeGroup(ctx, "Toddlers", 10)
	if err != nil {
		fail("age group", err)
	}
	teens, err := catalog.CreateAgeGroup(ctx, "Teens", 20)
	if err != nil {
		fail("age group", err)
	}

	quantities := []struct {
		productID   int64
		ageGroupIDs []int64
		unit        string
		quantity    string
		packageType string
	}{
		{rice.ID, []int64{toddlers.ID, teens.ID}, "kg", "1.5", "5"},
		{beans.ID, []int64{toddlers.ID}, "kg", "0.25", "10"},
		{milk.ID, []int64{toddlers.ID, teens.ID}, "l", "0.2", "12"},
	}
	for _, q := range quantities {
		if _, err := catalog.CreateProductQuantity(ctx, q.productID, q.ageGroupIDs, q.unit, decimal.RequireFromString(q.quantity), q.packageType); err != nil {
			fail("product quantity", err)
		}
	}

	riceAndBeans, err := catalog.CreateRecipe(ctx, "Rice and beans", []int64{rice.ID, beans.ID})
	if err != nil {
		fail("recipe", err)
	}
	breakfast, err := catalog.CreateRecipe(ctx, "Breakfast", []int64{milk.ID})
	if err != nil {
		fail("recipe", err)
	}

	monday, err := days.Create(ctx, "Monday", []int64{breakfast.ID, riceAndBeans.ID})
	if err != nil {
		fail("day", err)
	}
	tuesday, err := days.Create(ctx, "Tuesday", []int64{riceAndBeans.ID})
	if err != nil {
		fail("day", err)
	}

	fmt.Println("Seeded demo catalog.")
	fmt.Printf("Day IDs: %d (Monday), %d (Tuesday)\n", monday.ID, tuesday.ID)
	fmt.Println()
	fmt.Println("Try it:")
	fmt.Printf(`  curl -X POST localhost:8080/api/orders/generate -H 'Content-Type: application/json' \
    -d '{"name": "Week 1", "date": "2026-03-02", "day_ids": [%d, %d]}'`+"\n", monday.ID, tuesday.ID)
}

func fail(what string, err error) {
	fmt.Fprintf(os.Stderr, "Error creating %s: %v\n", what, err)
	os.Exit(1)
}
