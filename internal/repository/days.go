package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/guttosm/menu-order-service/internal/domain/model"
)

// DayRepository provides day lookups and the day ID validation used by
// order generation.
type DayRepository struct {
	days *mongo.Collection
	db   *MongoDB
}

// NewDayRepository creates a new day repository.
func NewDayRepository(db *MongoDB) *DayRepository {
	return &DayRepository{days: db.Days, db: db}
}

// ValidateIDs reports whether every given day ID exists. Duplicates in
// the input count once, so a request repeating an existing ID is valid.
func (r *DayRepository) ValidateIDs(ctx context.Context, dayIDs []int64) (bool, error) {
	unique := make(map[int64]struct{}, len(dayIDs))
	for _, id := range dayIDs {
		unique[id] = struct{}{}
	}
	ids := make([]int64, 0, len(unique))
	for id := range unique {
		ids = append(ids, id)
	}

	count, err := r.days.CountDocuments(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return false, err
	}
	return count == int64(len(ids)), nil
}

// List returns all days ordered by ID.
func (r *DayRepository) List(ctx context.Context) ([]model.Day, error) {
	cursor, err := r.days.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	days := []model.Day{}
	if err := cursor.All(ctx, &days); err != nil {
		return nil, err
	}
	return days, nil
}

// GetByID returns one day or ErrNotFound.
func (r *DayRepository) GetByID(ctx context.Context, id int64) (*model.Day, error) {
	var day model.Day
	err := r.days.FindOne(ctx, bson.M{"_id": id}).Decode(&day)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &day, nil
}

// Create inserts a new day and returns it with its assigned ID.
func (r *DayRepository) Create(ctx context.Context, name string, recipeIDs []int64) (*model.Day, error) {
	id, err := r.db.NextID(ctx, "days")
	if err != nil {
		return nil, err
	}
	day := model.Day{ID: id, Name: name, RecipeIDs: normalizeIDs(recipeIDs)}
	if _, err := r.days.InsertOne(ctx, day); err != nil {
		return nil, err
	}
	return &day, nil
}

// Update replaces a day's name and recipe selection.
func (r *DayRepository) Update(ctx context.Context, id int64, name string, recipeIDs []int64) (*model.Day, error) {
	day := model.Day{ID: id, Name: name, RecipeIDs: normalizeIDs(recipeIDs)}
	result, err := r.days.ReplaceOne(ctx, bson.M{"_id": id}, day)
	if err != nil {
		return nil, err
	}
	if result.MatchedCount == 0 {
		return nil, ErrNotFound
	}
	return &day, nil
}

// Delete removes a day.
func (r *DayRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.days.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// normalizeIDs replaces a nil slice with an empty one so documents and
// API responses always carry an array.
func normalizeIDs(ids []int64) []int64 {
	if ids == nil {
		return []int64{}
	}
	return ids
}
