// Package model defines the core domain entities for the menu order service.
package model

import (
	"github.com/shopspring/decimal"
)

// Product is a purchasable catalog item.
type Product struct {
	ID       int64  `json:"id" bson:"_id"`
	Name     string `json:"name" bson:"name"`
	Category string `json:"category" bson:"category"`
}

// AgeGroupProfile describes how much one age group consumes per recipe
// occurrence of a product. Reference data owned by the catalog; the
// generation core only reads it.
type AgeGroupProfile struct {
	ID       int64  `json:"id,omitempty" bson:"_id,omitempty"`
	Name     string `json:"name" bson:"name"`
	Quantity int64  `json:"quantity" bson:"quantity"`
}

// ProductQuantity links a product to its per-occurrence consumption,
// broken down by age group. An empty age-group list is valid and
// contributes zero to any order.
type ProductQuantity struct {
	ID            int64           `json:"id" bson:"_id"`
	ProductID     int64           `json:"product" bson:"product_id"`
	AgeGroupIDs   []int64         `json:"age_groups" bson:"age_group_ids"`
	UnitOfMeasure string          `json:"unit_of_measure" bson:"unit_of_measure"`
	Quantity      decimal.Decimal `json:"quantity" bson:"-"`
	PackageType   string          `json:"package_type" bson:"package_type"`
}

// Recipe is a named collection of products.
type Recipe struct {
	ID         int64   `json:"id" bson:"_id"`
	Name       string  `json:"name" bson:"name"`
	ProductIDs []int64 `json:"products" bson:"product_ids"`
}

// Day is a named selection of recipes representing one day's menu.
type Day struct {
	ID        int64   `json:"id" bson:"_id"`
	Name      string  `json:"name" bson:"name"`
	RecipeIDs []int64 `json:"recipes" bson:"recipe_ids"`
}

// ProductQuantityRecord is the flattened input to order generation:
// one product consumed at one quantity per occurrence, with the age
// groups that consume it resolved inline.
type ProductQuantityRecord struct {
	ProductName   string
	UnitOfMeasure string
	PackageType   string
	Quantity      decimal.Decimal
	AgeGroups     []AgeGroupProfile
}

// Key returns the grouping key for this record.
func (r ProductQuantityRecord) Key() GroupKey {
	return GroupKey{
		ProductName:   r.ProductName,
		PackageType:   r.PackageType,
		UnitOfMeasure: r.UnitOfMeasure,
	}
}

// GroupKey identifies one distinct purchasable line within an order.
// Records sharing a key are combined additively, no matter which day or
// recipe contributed them.
type GroupKey struct {
	ProductName   string
	PackageType   string
	UnitOfMeasure string
}

// Less orders keys lexicographically on (product, package, unit).
// Order lines are emitted in this order for determinism.
func (k GroupKey) Less(other GroupKey) bool {
	if k.ProductName != other.ProductName {
		return k.ProductName < other.ProductName
	}
	if k.PackageType != other.PackageType {
		return k.PackageType < other.PackageType
	}
	return k.UnitOfMeasure < other.UnitOfMeasure
}
