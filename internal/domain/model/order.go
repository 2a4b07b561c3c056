package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderLine is one consolidated purchase requirement for a single
// product/package/unit combination.
//
// Quantity is the 2-decimal rounded sum of all weighted contributions,
// Total is that quantity rounded up to a whole unit, and QtyPackage is
// the number of discrete packages covering Total. Detail holds the
// human-readable audit trail of how the numbers were derived.
type OrderLine struct {
	Name          string          `json:"name" bson:"name"`
	PackageType   string          `json:"package_type" bson:"package_type"`
	UnitOfMeasure string          `json:"unit_of_measure" bson:"unit_of_measure"`
	Quantity      decimal.Decimal `json:"quantity" bson:"-"`
	Total         int64           `json:"total" bson:"total"`
	QtyPackage    int64           `json:"qty_package" bson:"qty_package"`
	Detail        string          `json:"detail" bson:"detail"`
}

// Key returns the group key this line was aggregated under.
func (l OrderLine) Key() GroupKey {
	return GroupKey{
		ProductName:   l.Name,
		PackageType:   l.PackageType,
		UnitOfMeasure: l.UnitOfMeasure,
	}
}

// Order is a generated purchase order. Created once per successful
// generation and never mutated afterward.
type Order struct {
	ID    int64       `json:"id" bson:"_id"`
	Name  string      `json:"name" bson:"name"`
	Date  time.Time   `json:"date" bson:"date"`
	Lines []OrderLine `json:"lines" bson:"lines"`
}
