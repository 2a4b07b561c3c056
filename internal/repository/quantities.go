package repository

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/guttosm/menu-order-service/internal/domain/model"
)

// productQuantityDoc is the persisted shape of a product quantity.
// Quantity is stored as a string to keep decimal values exact.
type productQuantityDoc struct {
	ID            int64   `bson:"_id"`
	ProductID     int64   `bson:"product_id"`
	AgeGroupIDs   []int64 `bson:"age_group_ids"`
	UnitOfMeasure string  `bson:"unit_of_measure"`
	Quantity      string  `bson:"quantity"`
	PackageType   string  `bson:"package_type"`
}

func (d productQuantityDoc) toModel() (model.ProductQuantity, error) {
	quantity, err := decimal.NewFromString(d.Quantity)
	if err != nil {
		return model.ProductQuantity{}, fmt.Errorf("product quantity %d: bad stored quantity %q: %w", d.ID, d.Quantity, err)
	}
	return model.ProductQuantity{
		ID:            d.ID,
		ProductID:     d.ProductID,
		AgeGroupIDs:   normalizeIDs(d.AgeGroupIDs),
		UnitOfMeasure: d.UnitOfMeasure,
		Quantity:      quantity,
		PackageType:   d.PackageType,
	}, nil
}

// QuantityRepository resolves selected days to flattened product
// quantity records (days -> recipes -> products -> quantities -> age
// groups), the read side of order generation.
type QuantityRepository struct {
	db *MongoDB
}

// NewQuantityRepository creates a new quantity repository.
func NewQuantityRepository(db *MongoDB) *QuantityRepository {
	return &QuantityRepository{db: db}
}

// ListByDayIDs returns every product quantity reachable from the given
// days, with product names and age group profiles resolved inline.
//
// Multiplicity is preserved: a quantity row appears once per (day,
// recipe) path that reaches its product, so a recipe served on two
// selected days contributes its quantities twice. Duplicate day IDs in
// the input count once. Records come back sorted by quantity ID so
// repeated calls see the same order.
func (r *QuantityRepository) ListByDayIDs(ctx context.Context, dayIDs []int64) ([]model.ProductQuantityRecord, error) {
	pathCounts, err := r.productPathCounts(ctx, dayIDs)
	if err != nil {
		return nil, err
	}
	if len(pathCounts) == 0 {
		return nil, nil
	}

	productIDs := make([]int64, 0, len(pathCounts))
	for id := range pathCounts {
		productIDs = append(productIDs, id)
	}

	productNames, err := r.productNames(ctx, productIDs)
	if err != nil {
		return nil, err
	}

	cursor, err := r.db.ProductQuantities.Find(ctx,
		bson.M{"product_id": bson.M{"$in": productIDs}},
		options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}),
	)
	if err != nil {
		return nil, err
	}
	var docs []productQuantityDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	profiles, err := r.ageGroupProfiles(ctx, docs)
	if err != nil {
		return nil, err
	}

	records := make([]model.ProductQuantityRecord, 0, len(docs))
	for _, doc := range docs {
		quantity, err := decimal.NewFromString(doc.Quantity)
		if err != nil {
			return nil, fmt.Errorf("product quantity %d: bad stored quantity %q: %w", doc.ID, doc.Quantity, err)
		}
		ageGroups := make([]model.AgeGroupProfile, 0, len(doc.AgeGroupIDs))
		for _, agID := range doc.AgeGroupIDs {
			if profile, ok := profiles[agID]; ok {
				ageGroups = append(ageGroups, profile)
			}
		}
		record := model.ProductQuantityRecord{
			ProductName:   productNames[doc.ProductID],
			UnitOfMeasure: doc.UnitOfMeasure,
			PackageType:   doc.PackageType,
			Quantity:      quantity,
			AgeGroups:     ageGroups,
		}
		for i := int64(0); i < pathCounts[doc.ProductID]; i++ {
			records = append(records, record)
		}
	}
	return records, nil
}

// productPathCounts counts, per product, the (day, recipe) paths that
// reach it from the selected days.
func (r *QuantityRepository) productPathCounts(ctx context.Context, dayIDs []int64) (map[int64]int64, error) {
	cursor, err := r.db.Days.Find(ctx, bson.M{"_id": bson.M{"$in": dayIDs}})
	if err != nil {
		return nil, err
	}
	var days []model.Day
	if err := cursor.All(ctx, &days); err != nil {
		return nil, err
	}

	recipeIDSet := make(map[int64]struct{})
	for _, day := range days {
		for _, id := range day.RecipeIDs {
			recipeIDSet[id] = struct{}{}
		}
	}
	if len(recipeIDSet) == 0 {
		return nil, nil
	}
	recipeIDs := make([]int64, 0, len(recipeIDSet))
	for id := range recipeIDSet {
		recipeIDs = append(recipeIDs, id)
	}

	cursor, err = r.db.Recipes.Find(ctx, bson.M{"_id": bson.M{"$in": recipeIDs}})
	if err != nil {
		return nil, err
	}
	var recipes []model.Recipe
	if err := cursor.All(ctx, &recipes); err != nil {
		return nil, err
	}
	recipesByID := make(map[int64]model.Recipe, len(recipes))
	for _, recipe := range recipes {
		recipesByID[recipe.ID] = recipe
	}

	counts := make(map[int64]int64)
	for _, day := range days {
		for _, recipeID := range day.RecipeIDs {
			recipe, ok := recipesByID[recipeID]
			if !ok {
				continue
			}
			for _, productID := range recipe.ProductIDs {
				counts[productID]++
			}
		}
	}
	return counts, nil
}

func (r *QuantityRepository) productNames(ctx context.Context, productIDs []int64) (map[int64]string, error) {
	cursor, err := r.db.Products.Find(ctx, bson.M{"_id": bson.M{"$in": productIDs}})
	if err != nil {
		return nil, err
	}
	var products []model.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	names := make(map[int64]string, len(products))
	for _, p := range products {
		names[p.ID] = p.Name
	}
	return names, nil
}

func (r *QuantityRepository) ageGroupProfiles(ctx context.Context, docs []productQuantityDoc) (map[int64]model.AgeGroupProfile, error) {
	seen := make(map[int64]struct{})
	ids := make([]int64, 0)
	for _, doc := range docs {
		for _, id := range doc.AgeGroupIDs {
			if _, ok := seen[id]; !ok {
				seen[id] = struct{}{}
				ids = append(ids, id)
			}
		}
	}
	if len(ids) == 0 {
		return map[int64]model.AgeGroupProfile{}, nil
	}

	cursor, err := r.db.AgeGroups.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	var groups []model.AgeGroupProfile
	if err := cursor.All(ctx, &groups); err != nil {
		return nil, err
	}
	profiles := make(map[int64]model.AgeGroupProfile, len(groups))
	for _, g := range groups {
		profiles[g.ID] = g
	}
	return profiles, nil
}
