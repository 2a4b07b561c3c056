// Package dto defines Data Transfer Objects for HTTP request and response handling.
//
// DTOs decouple the HTTP layer from the domain model, providing
// validation and serialization for API communication.
package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateFormat is the wire format for order dates.
const DateFormat = "2006-01-02"

// GenerateOrderRequest is the JSON body for the order generation endpoint.
//
// @Description Request to generate a consolidated purchase order from selected days
// @Example {"name": "Week 12", "date": "2026-03-02", "day_ids": [1, 2, 3]}
type GenerateOrderRequest struct {
	// Name is the label for the generated order.
	Name string `json:"name" binding:"required,max=120" example:"Week 12"`
	// Date is the order date in YYYY-MM-DD format. It is stored as-is.
	Date string `json:"date" binding:"required" example:"2026-03-02"`
	// DayIDs selects the days whose recipes feed the order. Must be
	// non-empty with positive IDs only.
	DayIDs []int64 `json:"day_ids" binding:"required,min=1,dive,gt=0"`
} // @name GenerateOrderRequest

// ParseDate parses the request date.
func (r *GenerateOrderRequest) ParseDate() (time.Time, error) {
	return time.Parse(DateFormat, r.Date)
}

// ProductRequest is the JSON body for creating or updating a product.
type ProductRequest struct {
	Name     string `json:"name" binding:"required,max=120"`
	Category string `json:"category" binding:"required,max=80"`
} // @name ProductRequest

// AgeGroupRequest is the JSON body for creating or updating an age group.
type AgeGroupRequest struct {
	Name     string `json:"name" binding:"required,max=50"`
	Quantity int64  `json:"quantity" binding:"required,gt=0"`
} // @name AgeGroupRequest

// ProductQuantityRequest is the JSON body for creating or updating a
// product quantity. AgeGroupIDs may be empty: such a record is valid
// and contributes zero to generated orders.
type ProductQuantityRequest struct {
	ProductID     int64           `json:"product" binding:"required,gt=0"`
	AgeGroupIDs   []int64         `json:"age_groups" binding:"omitempty,dive,gt=0"`
	UnitOfMeasure string          `json:"unit_of_measure" binding:"required,max=20"`
	Quantity      decimal.Decimal `json:"quantity" binding:"required"`
	PackageType   string          `json:"package_type" binding:"required,max=50"`
} // @name ProductQuantityRequest

// RecipeRequest is the JSON body for creating or updating a recipe.
type RecipeRequest struct {
	Name       string  `json:"name" binding:"required,max=120"`
	ProductIDs []int64 `json:"products" binding:"omitempty,dive,gt=0"`
} // @name RecipeRequest

// DayRequest is the JSON body for creating or updating a day.
type DayRequest struct {
	Name      string  `json:"name" binding:"required,max=50"`
	RecipeIDs []int64 `json:"recipes" binding:"omitempty,dive,gt=0"`
} // @name DayRequest
