package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/guttosm/menu-order-service/internal/domain/model"
	"github.com/guttosm/menu-order-service/internal/metrics"
)

// orderLineDoc is the persisted shape of an order line. Quantity is
// stored as a string to keep the 2-decimal value exact.
type orderLineDoc struct {
	Name          string `bson:"name"`
	PackageType   string `bson:"package_type"`
	UnitOfMeasure string `bson:"unit_of_measure"`
	Quantity      string `bson:"quantity"`
	Total         int64  `bson:"total"`
	QtyPackage    int64  `bson:"qty_package"`
	Detail        string `bson:"detail"`
}

// orderDoc embeds the lines in the order document so order + lines are
// written in one atomic insert.
type orderDoc struct {
	ID    int64          `bson:"_id"`
	Name  string         `bson:"name"`
	Date  time.Time      `bson:"date"`
	Lines []orderLineDoc `bson:"lines"`
}

func (d orderDoc) toModel() (model.Order, error) {
	lines := make([]model.OrderLine, 0, len(d.Lines))
	for _, line := range d.Lines {
		quantity, err := decimal.NewFromString(line.Quantity)
		if err != nil {
			return model.Order{}, fmt.Errorf("order %d: bad stored quantity %q: %w", d.ID, line.Quantity, err)
		}
		lines = append(lines, model.OrderLine{
			Name:          line.Name,
			PackageType:   line.PackageType,
			UnitOfMeasure: line.UnitOfMeasure,
			Quantity:      quantity,
			Total:         line.Total,
			QtyPackage:    line.QtyPackage,
			Detail:        line.Detail,
		})
	}
	return model.Order{ID: d.ID, Name: d.Name, Date: d.Date, Lines: lines}, nil
}

// OrderRepository persists generated orders and serves the order
// lifecycle (list, get, delete).
type OrderRepository struct {
	orders *mongo.Collection
	db     *MongoDB
}

// NewOrderRepository creates a new order repository.
func NewOrderRepository(db *MongoDB) *OrderRepository {
	return &OrderRepository{orders: db.Orders, db: db}
}

// CreateOrder writes the order and its lines as a single document and
// returns the new order ID. The write is all-or-nothing: a failed
// insert leaves no partial order behind.
func (r *OrderRepository) CreateOrder(ctx context.Context, name string, date time.Time, lines []model.OrderLine) (int64, error) {
	id, err := r.db.NextID(ctx, "orders")
	if err != nil {
		return 0, err
	}

	doc := orderDoc{
		ID:    id,
		Name:  name,
		Date:  date.UTC().Truncate(24 * time.Hour),
		Lines: make([]orderLineDoc, 0, len(lines)),
	}
	for _, line := range lines {
		doc.Lines = append(doc.Lines, orderLineDoc{
			Name:          line.Name,
			PackageType:   line.PackageType,
			UnitOfMeasure: line.UnitOfMeasure,
			Quantity:      line.Quantity.StringFixed(2),
			Total:         line.Total,
			QtyPackage:    line.QtyPackage,
			Detail:        line.Detail,
		})
	}

	if _, err := r.orders.InsertOne(ctx, doc); err != nil {
		return 0, err
	}
	metrics.ObserveOrderLines(len(lines))
	return id, nil
}

// List returns all orders, newest date first, then by name.
func (r *OrderRepository) List(ctx context.Context) ([]model.Order, error) {
	cursor, err := r.orders.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "date", Value: -1}, {Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	var docs []orderDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	orders := make([]model.Order, 0, len(docs))
	for _, doc := range docs {
		order, err := doc.toModel()
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, nil
}

// GetByID returns one order or ErrNotFound.
func (r *OrderRepository) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	var doc orderDoc
	err := r.orders.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	order, err := doc.toModel()
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// Delete removes an order and its embedded lines.
func (r *OrderRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.orders.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
