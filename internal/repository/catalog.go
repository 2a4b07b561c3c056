package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/guttosm/menu-order-service/internal/domain/model"
)

// CatalogRepository provides CRUD access to the catalog entities the
// order generation reads from: products, age groups, product
// quantities, and recipes.
type CatalogRepository struct {
	db *MongoDB
}

// NewCatalogRepository creates a new catalog repository.
func NewCatalogRepository(db *MongoDB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// ListProducts returns all products ordered by name.
func (r *CatalogRepository) ListProducts(ctx context.Context) ([]model.Product, error) {
	cursor, err := r.db.Products.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	products := []model.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// CreateProduct inserts a product and returns it with its assigned ID.
func (r *CatalogRepository) CreateProduct(ctx context.Context, name, category string) (*model.Product, error) {
	id, err := r.db.NextID(ctx, "products")
	if err != nil {
		return nil, err
	}
	product := model.Product{ID: id, Name: name, Category: category}
	if _, err := r.db.Products.InsertOne(ctx, product); err != nil {
		return nil, err
	}
	return &product, nil
}

// UpdateProduct replaces a product's fields.
func (r *CatalogRepository) UpdateProduct(ctx context.Context, id int64, name, category string) (*model.Product, error) {
	product := model.Product{ID: id, Name: name, Category: category}
	result, err := r.db.Products.ReplaceOne(ctx, bson.M{"_id": id}, product)
	if err != nil {
		return nil, err
	}
	if result.MatchedCount == 0 {
		return nil, ErrNotFound
	}
	return &product, nil
}

// DeleteProduct removes a product and its quantity rows, mirroring the
// catalog's cascade from product to quantities.
func (r *CatalogRepository) DeleteProduct(ctx context.Context, id int64) error {
	result, err := r.db.Products.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	_, err = r.db.ProductQuantities.DeleteMany(ctx, bson.M{"product_id": id})
	return err
}

// ListAgeGroups returns all age groups ordered by name.
func (r *CatalogRepository) ListAgeGroups(ctx context.Context) ([]model.AgeGroupProfile, error) {
	cursor, err := r.db.AgeGroups.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	groups := []model.AgeGroupProfile{}
	if err := cursor.All(ctx, &groups); err != nil {
		return nil, err
	}
	return groups, nil
}

// CreateAgeGroup inserts an age group and returns it with its assigned ID.
func (r *CatalogRepository) CreateAgeGroup(ctx context.Context, name string, quantity int64) (*model.AgeGroupProfile, error) {
	id, err := r.db.NextID(ctx, "age_groups")
	if err != nil {
		return nil, err
	}
	group := model.AgeGroupProfile{ID: id, Name: name, Quantity: quantity}
	if _, err := r.db.AgeGroups.InsertOne(ctx, group); err != nil {
		return nil, err
	}
	return &group, nil
}

// UpdateAgeGroup replaces an age group's fields.
func (r *CatalogRepository) UpdateAgeGroup(ctx context.Context, id int64, name string, quantity int64) (*model.AgeGroupProfile, error) {
	group := model.AgeGroupProfile{ID: id, Name: name, Quantity: quantity}
	result, err := r.db.AgeGroups.ReplaceOne(ctx, bson.M{"_id": id}, group)
	if err != nil {
		return nil, err
	}
	if result.MatchedCount == 0 {
		return nil, ErrNotFound
	}
	return &group, nil
}

// DeleteAgeGroup removes an age group and unlinks it from quantity rows.
func (r *CatalogRepository) DeleteAgeGroup(ctx context.Context, id int64) error {
	result, err := r.db.AgeGroups.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	_, err = r.db.ProductQuantities.UpdateMany(ctx,
		bson.M{"age_group_ids": id},
		bson.M{"$pull": bson.M{"age_group_ids": id}})
	return err
}

// ListProductQuantities returns all quantity rows ordered by ID.
func (r *CatalogRepository) ListProductQuantities(ctx context.Context) ([]model.ProductQuantity, error) {
	cursor, err := r.db.ProductQuantities.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	var docs []productQuantityDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	quantities := make([]model.ProductQuantity, 0, len(docs))
	for _, doc := range docs {
		quantity, err := doc.toModel()
		if err != nil {
			return nil, err
		}
		quantities = append(quantities, quantity)
	}
	return quantities, nil
}

// CreateProductQuantity inserts a quantity row and returns it with its
// assigned ID.
func (r *CatalogRepository) CreateProductQuantity(ctx context.Context, productID int64, ageGroupIDs []int64, unit string, quantity decimal.Decimal, packageType string) (*model.ProductQuantity, error) {
	id, err := r.db.NextID(ctx, "product_quantities")
	if err != nil {
		return nil, err
	}
	doc := productQuantityDoc{
		ID:            id,
		ProductID:     productID,
		AgeGroupIDs:   normalizeIDs(ageGroupIDs),
		UnitOfMeasure: unit,
		Quantity:      quantity.String(),
		PackageType:   packageType,
	}
	if _, err := r.db.ProductQuantities.InsertOne(ctx, doc); err != nil {
		return nil, err
	}
	result, err := doc.toModel()
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// UpdateProductQuantity replaces a quantity row.
func (r *CatalogRepository) UpdateProductQuantity(ctx context.Context, id int64, productID int64, ageGroupIDs []int64, unit string, quantity decimal.Decimal, packageType string) (*model.ProductQuantity, error) {
	doc := productQuantityDoc{
		ID:            id,
		ProductID:     productID,
		AgeGroupIDs:   normalizeIDs(ageGroupIDs),
		UnitOfMeasure: unit,
		Quantity:      quantity.String(),
		PackageType:   packageType,
	}
	updateResult, err := r.db.ProductQuantities.ReplaceOne(ctx, bson.M{"_id": id}, doc)
	if err != nil {
		return nil, err
	}
	if updateResult.MatchedCount == 0 {
		return nil, ErrNotFound
	}
	result, err := doc.toModel()
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// DeleteProductQuantity removes a quantity row.
func (r *CatalogRepository) DeleteProductQuantity(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.db.ProductQuantities, id)
}

// ListRecipes returns all recipes ordered by name.
func (r *CatalogRepository) ListRecipes(ctx context.Context) ([]model.Recipe, error) {
	cursor, err := r.db.Recipes.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	recipes := []model.Recipe{}
	if err := cursor.All(ctx, &recipes); err != nil {
		return nil, err
	}
	return recipes, nil
}

// CreateRecipe inserts a recipe and returns it with its assigned ID.
func (r *CatalogRepository) CreateRecipe(ctx context.Context, name string, productIDs []int64) (*model.Recipe, error) {
	id, err := r.db.NextID(ctx, "recipes")
	if err != nil {
		return nil, err
	}
	recipe := model.Recipe{ID: id, Name: name, ProductIDs: normalizeIDs(productIDs)}
	if _, err := r.db.Recipes.InsertOne(ctx, recipe); err != nil {
		return nil, err
	}
	return &recipe, nil
}

// UpdateRecipe replaces a recipe's fields.
func (r *CatalogRepository) UpdateRecipe(ctx context.Context, id int64, name string, productIDs []int64) (*model.Recipe, error) {
	recipe := model.Recipe{ID: id, Name: name, ProductIDs: normalizeIDs(productIDs)}
	result, err := r.db.Recipes.ReplaceOne(ctx, bson.M{"_id": id}, recipe)
	if err != nil {
		return nil, err
	}
	if result.MatchedCount == 0 {
		return nil, ErrNotFound
	}
	return &recipe, nil
}

// DeleteRecipe removes a recipe and unlinks it from days.
func (r *CatalogRepository) DeleteRecipe(ctx context.Context, id int64) error {
	if err := deleteByID(ctx, r.db.Recipes, id); err != nil {
		return err
	}
	_, err := r.db.Days.UpdateMany(ctx,
		bson.M{"recipe_ids": id},
		bson.M{"$pull": bson.M{"recipe_ids": id}})
	return err
}

func deleteByID(ctx context.Context, coll *mongo.Collection, id int64) error {
	result, err := coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
