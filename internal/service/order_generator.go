// Package service implements the order generation core: aggregating
// per-age-group product consumption across selected days into a
// consolidated purchase order.
package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/guttosm/menu-order-service/internal/domain/model"
)

// DayValidator checks that a set of day IDs resolves to existing days.
type DayValidator interface {
	// ValidateIDs reports whether every ID resolves to an existing day.
	// Duplicate IDs in the input count once.
	ValidateIDs(ctx context.Context, dayIDs []int64) (bool, error)
}

// QuantityReader resolves selected days to their flattened product
// quantity records (days -> recipes -> products -> quantities -> age groups).
type QuantityReader interface {
	ListByDayIDs(ctx context.Context, dayIDs []int64) ([]model.ProductQuantityRecord, error)
}

// OrderWriter durably persists a generated order and its lines as a
// single atomic write, returning the new order identifier.
type OrderWriter interface {
	CreateOrder(ctx context.Context, name string, date time.Time, lines []model.OrderLine) (int64, error)
}

// GenerateOrderInput is the validated request boundary for order generation.
type GenerateOrderInput struct {
	Name   string
	Date   time.Time
	DayIDs []int64
}

// ValidationError is a bad-request-class failure: the caller can recover
// by supplying different input. All four generation failure modes
// (empty selection, unknown days, no quantities, bad package size) are
// ValidationErrors.
type ValidationError struct {
	Message string
}

// Error returns the human-readable validation message.
func (e *ValidationError) Error() string {
	return e.Message
}

var (
	// ErrEmptyDaySelection is returned when the request selects no days.
	ErrEmptyDaySelection = &ValidationError{Message: "at least one day must be selected"}
	// ErrUnknownDayIDs is returned when one or more selected day IDs do not exist.
	ErrUnknownDayIDs = &ValidationError{Message: "some day IDs do not exist"}
	// ErrNoMatchingQuantities is returned when the selected days resolve to zero records.
	ErrNoMatchingQuantities = &ValidationError{Message: "no product quantities found for the selected days"}
)

// newInvalidPackageSizeError reports a package_type value that does not
// parse as a positive number. This is a data-quality error on the
// catalog record, not on the request.
func newInvalidPackageSizeError(raw string) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf("invalid package_type value '%s': must be a positive number", raw)}
}

// OrderGenerator defines the single operation the core exposes.
type OrderGenerator interface {
	GenerateOrder(ctx context.Context, input GenerateOrderInput) (int64, error)
}

// OrderGeneratorService implements OrderGenerator as one synchronous,
// side-effect-free computation per invocation. All I/O happens through
// the injected collaborators; the computation itself holds no state, so
// concurrent invocations are independent.
type OrderGeneratorService struct {
	days       DayValidator
	quantities QuantityReader
	orders     OrderWriter
}

// NewOrderGeneratorService creates an OrderGeneratorService with the
// given collaborators.
func NewOrderGeneratorService(days DayValidator, quantities QuantityReader, orders OrderWriter) *OrderGeneratorService {
	return &OrderGeneratorService{
		days:       days,
		quantities: quantities,
		orders:     orders,
	}
}

// GenerateOrder validates the request, aggregates the product
// quantities reachable from the selected days, builds the order lines,
// and persists the result. It returns the durable order identifier.
//
// No partial order is ever persisted: aggregation and line building
// complete fully in memory before the single write.
func (s *OrderGeneratorService) GenerateOrder(ctx context.Context, input GenerateOrderInput) (int64, error) {
	if len(input.DayIDs) == 0 {
		return 0, ErrEmptyDaySelection
	}

	ok, err := s.days.ValidateIDs(ctx, input.DayIDs)
	if err != nil {
		return 0, fmt.Errorf("validating day IDs: %w", err)
	}
	if !ok {
		return 0, ErrUnknownDayIDs
	}

	records, err := s.quantities.ListByDayIDs(ctx, input.DayIDs)
	if err != nil {
		return 0, fmt.Errorf("listing product quantities: %w", err)
	}

	lines, err := s.BuildOrderLines(input, records)
	if err != nil {
		return 0, err
	}

	orderID, err := s.orders.CreateOrder(ctx, input.Name, orderDate(input), lines)
	if err != nil {
		return 0, fmt.Errorf("persisting order: %w", err)
	}
	return orderID, nil
}

// orderDate derives the order date from the request. The date passes
// through unchanged; no business rule transforms it.
func orderDate(input GenerateOrderInput) time.Time {
	return input.Date
}

// groupAccumulator holds the running total and audit lines for one
// group key while records are being aggregated.
type groupAccumulator struct {
	total   decimal.Decimal
	details []string
}

// BuildOrderLines aggregates the records by (product, package type,
// unit of measure) and converts each group into an order line. Lines
// are returned sorted by group key ascending, so the result is
// deterministic regardless of record order.
func (s *OrderGeneratorService) BuildOrderLines(input GenerateOrderInput, records []model.ProductQuantityRecord) ([]model.OrderLine, error) {
	groups, err := aggregateRecords(input, records)
	if err != nil {
		return nil, err
	}

	keys := make([]model.GroupKey, 0, len(groups))
	for key := range groups {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Less(keys[j]) })

	lines := make([]model.OrderLine, 0, len(keys))
	for _, key := range keys {
		group := groups[key]
		line, err := buildOrderLine(key, group.total, group.details)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, nil
}

// aggregateRecords sums each record's per-age-group contribution
// (quantity x age group quantity, exact decimal arithmetic) into its
// group's running total. A record without age groups contributes zero
// but still leaves an audit line. Audit lines keep encounter order
// within each group.
func aggregateRecords(input GenerateOrderInput, records []model.ProductQuantityRecord) (map[model.GroupKey]*groupAccumulator, error) {
	if len(input.DayIDs) == 0 {
		return nil, ErrEmptyDaySelection
	}
	if len(records) == 0 {
		return nil, ErrNoMatchingQuantities
	}

	groups := make(map[model.GroupKey]*groupAccumulator)
	for _, record := range records {
		key := record.Key()
		group, ok := groups[key]
		if !ok {
			group = &groupAccumulator{total: decimal.Zero}
			groups[key] = group
		}

		if len(record.AgeGroups) == 0 {
			group.details = append(group.details, fmt.Sprintf("no age groups: %s x 0 = 0", record.Quantity.String()))
			continue
		}

		for _, ageGroup := range record.AgeGroups {
			partial := record.Quantity.Mul(decimal.NewFromInt(ageGroup.Quantity))
			group.total = group.total.Add(partial)
			group.details = append(group.details, fmt.Sprintf(
				"%s x %d (%s) = %s",
				record.Quantity.String(), ageGroup.Quantity, ageGroup.Name, partial.StringFixed(2),
			))
		}
	}
	return groups, nil
}

// buildOrderLine converts one aggregated group into a purchase line.
//
// The running total is rounded half-up to 2 decimals, Total is its
// ceiling as a whole unit count, and QtyPackage is the ceiling of
// Total divided by the package size parsed from the package type.
func buildOrderLine(key model.GroupKey, total decimal.Decimal, details []string) (model.OrderLine, error) {
	quantity := total.Round(2)
	wholeUnits := quantity.Ceil().IntPart()

	packageSize, err := parsePackageSize(key.PackageType)
	if err != nil {
		return model.OrderLine{}, err
	}
	qtyPackage := decimal.NewFromInt(wholeUnits).Div(packageSize).Ceil().IntPart()

	detail := strings.Join(append(details,
		"Total = "+quantity.StringFixed(2),
		fmt.Sprintf("Qty package = ceil(%d / %s) = %d", wholeUnits, packageSize.String(), qtyPackage),
	), "\n")

	return model.OrderLine{
		Name:          key.ProductName,
		PackageType:   key.PackageType,
		UnitOfMeasure: key.UnitOfMeasure,
		Quantity:      quantity,
		Total:         wholeUnits,
		QtyPackage:    qtyPackage,
		Detail:        detail,
	}, nil
}

// parsePackageSize parses a package_type value as the positive number
// of units per package.
func parsePackageSize(raw string) (decimal.Decimal, error) {
	size, err := decimal.NewFromString(raw)
	if err != nil || !size.IsPositive() {
		return decimal.Decimal{}, newInvalidPackageSizeError(raw)
	}
	return size, nil
}
