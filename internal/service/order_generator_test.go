package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/menu-order-service/internal/domain/model"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func record(product, unit, pkg, quantity string, ageGroups ...model.AgeGroupProfile) model.ProductQuantityRecord {
	return model.ProductQuantityRecord{
		ProductName:   product,
		UnitOfMeasure: unit,
		PackageType:   pkg,
		Quantity:      dec(quantity),
		AgeGroups:     ageGroups,
	}
}

func testInput(dayIDs ...int64) GenerateOrderInput {
	return GenerateOrderInput{
		Name:   "Week 12",
		Date:   time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		DayIDs: dayIDs,
	}
}

// TestBuildOrderLines_SingleRecord covers the reference scenario: one
// product consumed by two age groups, package size 5.
func TestBuildOrderLines_SingleRecord(t *testing.T) {
	svc := NewOrderGeneratorService(nil, nil, nil)

	records := []model.ProductQuantityRecord{
		record("Rice", "kg", "5", "1.0",
			model.AgeGroupProfile{Name: "Toddlers", Quantity: 10},
			model.AgeGroupProfile{Name: "Teens", Quantity: 20},
		),
	}

	lines, err := svc.BuildOrderLines(testInput(1), records)
	require.NoError(t, err)
	require.Len(t, lines, 1)

	line := lines[0]
	assert.Equal(t, "Rice", line.Name)
	assert.Equal(t, "5", line.PackageType)
	assert.Equal(t, "kg", line.UnitOfMeasure)
	assert.Equal(t, "30.00", line.Quantity.StringFixed(2))
	assert.Equal(t, int64(30), line.Total)
	assert.Equal(t, int64(6), line.QtyPackage)

	expectedDetail := "1 x 10 (Toddlers) = 10.00\n" +
		"1 x 20 (Teens) = 20.00\n" +
		"Total = 30.00\n" +
		"Qty package = ceil(30 / 5) = 6"
	assert.Equal(t, expectedDetail, line.Detail)
}

// TestBuildOrderLines_GroupsByKey verifies that records sharing
// (product, package type, unit) collapse into one line whose total is
// the sum of their weighted contributions, while differing keys stay apart.
func TestBuildOrderLines_GroupsByKey(t *testing.T) {
	svc := NewOrderGeneratorService(nil, nil, nil)

	records := []model.ProductQuantityRecord{
		record("Beans", "kg", "10", "2", model.AgeGroupProfile{Name: "Adults", Quantity: 3}),
		record("Beans", "kg", "10", "0.5", model.AgeGroupProfile{Name: "Kids", Quantity: 4}),
		record("Beans", "kg", "25", "1", model.AgeGroupProfile{Name: "Adults", Quantity: 3}),
	}

	lines, err := svc.BuildOrderLines(testInput(1, 2), records)
	require.NoError(t, err)
	require.Len(t, lines, 2)

	// 2*3 + 0.5*4 = 8.00 in the "10" package group.
	assert.Equal(t, "10", lines[0].PackageType)
	assert.Equal(t, "8.00", lines[0].Quantity.StringFixed(2))
	assert.Equal(t, int64(8), lines[0].Total)
	assert.Equal(t, int64(1), lines[0].QtyPackage)

	assert.Equal(t, "25", lines[1].PackageType)
	assert.Equal(t, "3.00", lines[1].Quantity.StringFixed(2))
}

// TestBuildOrderLines_ZeroAgeGroups: an empty age-group list contributes
// zero but still leaves an audit line.
func TestBuildOrderLines_ZeroAgeGroups(t *testing.T) {
	svc := NewOrderGeneratorService(nil, nil, nil)

	records := []model.ProductQuantityRecord{
		record("Salt", "g", "500", "2.5"),
	}

	lines, err := svc.BuildOrderLines(testInput(1), records)
	require.NoError(t, err)
	require.Len(t, lines, 1)

	assert.Equal(t, "0.00", lines[0].Quantity.StringFixed(2))
	assert.Equal(t, int64(0), lines[0].Total)
	assert.Equal(t, int64(0), lines[0].QtyPackage)

	expectedDetail := "no age groups: 2.5 x 0 = 0\n" +
		"Total = 0.00\n" +
		"Qty package = ceil(0 / 500) = 0"
	assert.Equal(t, expectedDetail, lines[0].Detail)
}

// TestBuildOrderLines_Rounding pins the rounding rules: quantity is
// rounded half-up to 2 decimals and total is its ceiling.
func TestBuildOrderLines_Rounding(t *testing.T) {
	svc := NewOrderGeneratorService(nil, nil, nil)

	tests := []struct {
		name         string
		quantities   []string
		wantQuantity string
		wantTotal    int64
	}{
		{
			name:         "exact value needs no rounding",
			quantities:   []string{"12"},
			wantQuantity: "12.00",
			wantTotal:    12,
		},
		{
			name:         "fraction rounds up to next whole unit",
			quantities:   []string{"12.01"},
			wantQuantity: "12.01",
			wantTotal:    13,
		},
		{
			name:         "third decimal rounds half up",
			quantities:   []string{"9.995"},
			wantQuantity: "10.00",
			wantTotal:    10,
		},
		{
			name:         "third decimal below half rounds down",
			quantities:   []string{"9.994"},
			wantQuantity: "9.99",
			wantTotal:    10,
		},
		{
			name:         "sum crosses rounding boundary",
			quantities:   []string{"9.996", "0.001"},
			wantQuantity: "10.00",
			wantTotal:    10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records := make([]model.ProductQuantityRecord, 0, len(tt.quantities))
			for _, q := range tt.quantities {
				records = append(records, record("Flour", "kg", "1", q,
					model.AgeGroupProfile{Name: "All", Quantity: 1}))
			}

			lines, err := svc.BuildOrderLines(testInput(1), records)
			require.NoError(t, err)
			require.Len(t, lines, 1)
			assert.Equal(t, tt.wantQuantity, lines[0].Quantity.StringFixed(2))
			assert.Equal(t, tt.wantTotal, lines[0].Total)
		})
	}
}

// TestBuildOrderLines_PackageCeiling checks the package ceiling law:
// qty_package * package_size >= total and (qty_package-1) * package_size < total.
func TestBuildOrderLines_PackageCeiling(t *testing.T) {
	svc := NewOrderGeneratorService(nil, nil, nil)

	tests := []struct {
		quantity    string
		packageType string
		wantPkgs    int64
	}{
		{"30", "5", 6},
		{"31", "5", 7},
		{"1", "5", 1},
		{"10", "3", 4},
		{"10", "2.5", 4},
		{"7", "2.5", 3},
		{"12.01", "1", 13},
	}

	for _, tt := range tests {
		records := []model.ProductQuantityRecord{
			record("Oil", "l", tt.packageType, tt.quantity,
				model.AgeGroupProfile{Name: "All", Quantity: 1}),
		}

		lines, err := svc.BuildOrderLines(testInput(1), records)
		require.NoError(t, err)
		require.Len(t, lines, 1)

		line := lines[0]
		assert.Equal(t, tt.wantPkgs, line.QtyPackage, "quantity %s package %s", tt.quantity, tt.packageType)

		size := dec(tt.packageType)
		total := decimal.NewFromInt(line.Total)
		covered := size.Mul(decimal.NewFromInt(line.QtyPackage))
		assert.True(t, covered.GreaterThanOrEqual(total), "packages must cover the total")
		if line.QtyPackage > 0 {
			under := size.Mul(decimal.NewFromInt(line.QtyPackage - 1))
			assert.True(t, under.LessThan(total), "one fewer package must not cover the total")
		}
	}
}

// TestBuildOrderLines_InvalidPackageSize: malformed or non-positive
// package types are the builder's only failure mode.
func TestBuildOrderLines_InvalidPackageSize(t *testing.T) {
	svc := NewOrderGeneratorService(nil, nil, nil)

	for _, pkg := range []string{"0", "-2", "box", ""} {
		t.Run("package_type "+pkg, func(t *testing.T) {
			records := []model.ProductQuantityRecord{
				record("Milk", "l", pkg, "1", model.AgeGroupProfile{Name: "All", Quantity: 1}),
			}

			_, err := svc.BuildOrderLines(testInput(1), records)
			require.Error(t, err)

			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Contains(t, vErr.Message, "invalid package_type value '"+pkg+"'")
		})
	}
}

// TestBuildOrderLines_Deterministic: reordering the input records must
// not change the output, which is sorted by group key.
func TestBuildOrderLines_Deterministic(t *testing.T) {
	svc := NewOrderGeneratorService(nil, nil, nil)

	records := []model.ProductQuantityRecord{
		record("Rice", "kg", "5", "1", model.AgeGroupProfile{Name: "Toddlers", Quantity: 10}),
		record("Beans", "kg", "10", "2", model.AgeGroupProfile{Name: "Adults", Quantity: 3}),
		record("Rice", "kg", "1", "0.5", model.AgeGroupProfile{Name: "Teens", Quantity: 20}),
		record("Beans", "kg", "10", "1", model.AgeGroupProfile{Name: "Kids", Quantity: 4}),
	}
	reversed := make([]model.ProductQuantityRecord, len(records))
	for i, r := range records {
		reversed[len(records)-1-i] = r
	}

	forward, err := svc.BuildOrderLines(testInput(1), records)
	require.NoError(t, err)
	backward, err := svc.BuildOrderLines(testInput(1), reversed)
	require.NoError(t, err)

	require.Len(t, forward, 3)
	for i := range forward {
		assert.Equal(t, forward[i].Key(), backward[i].Key())
		assert.Equal(t, forward[i].Total, backward[i].Total)
		assert.Equal(t, forward[i].QtyPackage, backward[i].QtyPackage)
	}
	for i := 1; i < len(forward); i++ {
		assert.True(t, forward[i-1].Key().Less(forward[i].Key()), "lines must be sorted by group key")
	}
}

func TestBuildOrderLines_ValidationFailures(t *testing.T) {
	svc := NewOrderGeneratorService(nil, nil, nil)

	t.Run("empty day selection", func(t *testing.T) {
		_, err := svc.BuildOrderLines(testInput(), []model.ProductQuantityRecord{record("Rice", "kg", "5", "1")})
		assert.ErrorIs(t, err, ErrEmptyDaySelection)
	})

	t.Run("no records", func(t *testing.T) {
		_, err := svc.BuildOrderLines(testInput(1), nil)
		assert.ErrorIs(t, err, ErrNoMatchingQuantities)
	})
}

// Collaborator fakes for orchestrator tests.

type fakeDayValidator struct {
	valid  bool
	err    error
	gotIDs []int64
	calls  int
}

func (f *fakeDayValidator) ValidateIDs(_ context.Context, dayIDs []int64) (bool, error) {
	f.calls++
	f.gotIDs = dayIDs
	return f.valid, f.err
}

type fakeQuantityReader struct {
	records []model.ProductQuantityRecord
	err     error
}

func (f *fakeQuantityReader) ListByDayIDs(_ context.Context, _ []int64) ([]model.ProductQuantityRecord, error) {
	return f.records, f.err
}

type fakeOrderWriter struct {
	id       int64
	err      error
	gotName  string
	gotDate  time.Time
	gotLines []model.OrderLine
	calls    int
}

func (f *fakeOrderWriter) CreateOrder(_ context.Context, name string, date time.Time, lines []model.OrderLine) (int64, error) {
	f.calls++
	f.gotName = name
	f.gotDate = date
	f.gotLines = lines
	return f.id, f.err
}

func TestGenerateOrder_Success(t *testing.T) {
	validator := &fakeDayValidator{valid: true}
	reader := &fakeQuantityReader{records: []model.ProductQuantityRecord{
		record("Rice", "kg", "5", "1",
			model.AgeGroupProfile{Name: "Toddlers", Quantity: 10},
			model.AgeGroupProfile{Name: "Teens", Quantity: 20}),
	}}
	writer := &fakeOrderWriter{id: 42}
	svc := NewOrderGeneratorService(validator, reader, writer)

	input := testInput(1, 2, 3)
	orderID, err := svc.GenerateOrder(context.Background(), input)

	require.NoError(t, err)
	assert.Equal(t, int64(42), orderID)
	assert.Equal(t, []int64{1, 2, 3}, validator.gotIDs)
	assert.Equal(t, "Week 12", writer.gotName)
	assert.Equal(t, input.Date, writer.gotDate, "order date passes through unchanged")
	require.Len(t, writer.gotLines, 1)
	assert.Equal(t, int64(6), writer.gotLines[0].QtyPackage)
}

func TestGenerateOrder_ValidationFailures(t *testing.T) {
	tests := []struct {
		name      string
		validator *fakeDayValidator
		reader    *fakeQuantityReader
		input     GenerateOrderInput
		wantErr   error
	}{
		{
			name:      "empty day selection rejected before any collaborator call",
			validator: &fakeDayValidator{valid: true},
			reader:    &fakeQuantityReader{},
			input:     testInput(),
			wantErr:   ErrEmptyDaySelection,
		},
		{
			name:      "unknown day IDs",
			validator: &fakeDayValidator{valid: false},
			reader:    &fakeQuantityReader{},
			input:     testInput(99),
			wantErr:   ErrUnknownDayIDs,
		},
		{
			name:      "no quantities for selected days",
			validator: &fakeDayValidator{valid: true},
			reader:    &fakeQuantityReader{records: nil},
			input:     testInput(1),
			wantErr:   ErrNoMatchingQuantities,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			writer := &fakeOrderWriter{}
			svc := NewOrderGeneratorService(tt.validator, tt.reader, writer)

			_, err := svc.GenerateOrder(context.Background(), tt.input)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Zero(t, writer.calls, "no partial order may be persisted")
		})
	}

	t.Run("empty selection skips day validation", func(t *testing.T) {
		validator := &fakeDayValidator{valid: true}
		svc := NewOrderGeneratorService(validator, &fakeQuantityReader{}, &fakeOrderWriter{})
		_, err := svc.GenerateOrder(context.Background(), testInput())
		assert.ErrorIs(t, err, ErrEmptyDaySelection)
		assert.Zero(t, validator.calls)
	})
}

func TestGenerateOrder_CollaboratorErrors(t *testing.T) {
	boom := errors.New("connection reset")

	t.Run("day validator failure", func(t *testing.T) {
		svc := NewOrderGeneratorService(&fakeDayValidator{err: boom}, &fakeQuantityReader{}, &fakeOrderWriter{})
		_, err := svc.GenerateOrder(context.Background(), testInput(1))
		assert.ErrorIs(t, err, boom)
	})

	t.Run("quantity reader failure", func(t *testing.T) {
		svc := NewOrderGeneratorService(&fakeDayValidator{valid: true}, &fakeQuantityReader{err: boom}, &fakeOrderWriter{})
		_, err := svc.GenerateOrder(context.Background(), testInput(1))
		assert.ErrorIs(t, err, boom)
	})

	t.Run("order writer failure", func(t *testing.T) {
		reader := &fakeQuantityReader{records: []model.ProductQuantityRecord{
			record("Rice", "kg", "5", "1", model.AgeGroupProfile{Name: "All", Quantity: 1}),
		}}
		svc := NewOrderGeneratorService(&fakeDayValidator{valid: true}, reader, &fakeOrderWriter{err: boom})
		_, err := svc.GenerateOrder(context.Background(), testInput(1))
		assert.ErrorIs(t, err, boom)
	})
}
