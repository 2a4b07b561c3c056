package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/guttosm/menu-order-service/internal/domain/dto"
	"github.com/guttosm/menu-order-service/internal/domain/model"
	"github.com/guttosm/menu-order-service/internal/i18n"
	"github.com/guttosm/menu-order-service/internal/repository"
)

// CatalogStore provides CRUD access to the reference data the order
// generation reads from.
type CatalogStore interface {
	ListProducts(ctx context.Context) ([]model.Product, error)
	CreateProduct(ctx context.Context, name, category string) (*model.Product, error)
	UpdateProduct(ctx context.Context, id int64, name, category string) (*model.Product, error)
	DeleteProduct(ctx context.Context, id int64) error

	ListAgeGroups(ctx context.Context) ([]model.AgeGroupProfile, error)
	CreateAgeGroup(ctx context.Context, name string, quantity int64) (*model.AgeGroupProfile, error)
	UpdateAgeGroup(ctx context.Context, id int64, name string, quantity int64) (*model.AgeGroupProfile, error)
	DeleteAgeGroup(ctx context.Context, id int64) error

	ListProductQuantities(ctx context.Context) ([]model.ProductQuantity, error)
	CreateProductQuantity(ctx context.Context, productID int64, ageGroupIDs []int64, unit string, quantity decimal.Decimal, packageType string) (*model.ProductQuantity, error)
	UpdateProductQuantity(ctx context.Context, id int64, productID int64, ageGroupIDs []int64, unit string, quantity decimal.Decimal, packageType string) (*model.ProductQuantity, error)
	DeleteProductQuantity(ctx context.Context, id int64) error

	ListRecipes(ctx context.Context) ([]model.Recipe, error)
	CreateRecipe(ctx context.Context, name string, productIDs []int64) (*model.Recipe, error)
	UpdateRecipe(ctx context.Context, id int64, name string, productIDs []int64) (*model.Recipe, error)
	DeleteRecipe(ctx context.Context, id int64) error
}

// DayStore provides CRUD access to days.
type DayStore interface {
	List(ctx context.Context) ([]model.Day, error)
	GetByID(ctx context.Context, id int64) (*model.Day, error)
	Create(ctx context.Context, name string, recipeIDs []int64) (*model.Day, error)
	Update(ctx context.Context, id int64, name string, recipeIDs []int64) (*model.Day, error)
	Delete(ctx context.Context, id int64) error
}

// CatalogHandler provides HTTP handlers for the catalog entities:
// products, age groups, product quantities, recipes, and days.
type CatalogHandler struct {
	catalog CatalogStore
	days    DayStore
}

// NewCatalogHandler creates a new CatalogHandler instance.
func NewCatalogHandler(catalog CatalogStore, days DayStore) *CatalogHandler {
	return &CatalogHandler{catalog: catalog, days: days}
}

// writeError maps repository errors to API responses: missing documents
// to 404, unique index violations to 409, everything else to 500.
func writeError(builder *ResponseBuilder, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		builder.Error(http.StatusNotFound, i18n.ErrKeyNotFound, err)
	case mongo.IsDuplicateKeyError(err):
		builder.Error(http.StatusConflict, i18n.ErrKeyConflict, err)
	default:
		builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
	}
}

// ListProducts handles GET /api/products requests.
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	builder := NewResponseBuilder(c)
	products, err := h.catalog.ListProducts(c.Request.Context())
	if err != nil {
		writeError(builder, err)
		return
	}
	builder.SuccessOK(products)
}

// CreateProduct handles POST /api/products requests.
func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	builder := NewResponseBuilder(c)
	req, err := BuildRequest[dto.ProductRequest](c)
	if err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		return
	}
	product, err := h.catalog.CreateProduct(c.Request.Context(), req.Name, req.Category)
	if err != nil {
		writeError(builder, err)
		return
	}
	builder.SuccessCreated(product)
}

// UpdateProduct handles PUT /api/products/:id requests.
func (h *CatalogHandler) UpdateProduct(c *gin.Context) {
	builder := NewResponseBuilder(c)
	id, err := pathID(c)
	if err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		return
	}
	req, err := BuildRequest[dto.ProductRequest](c)
	if err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		return
	}
	product, err := h.catalog.UpdateProduct(c.Request.Context(), id, req.Name, req.Category)
	if err != nil {
		writeError(builder, err)
		return
	}
	builder.SuccessOK(product)
}

// DeleteProduct handles DELETE /api/products/:id requests. Quantity rows
// referencing the product are removed with it.
func (h *CatalogHandler) DeleteProduct(c *gin.Context) {
	h.deleteByID(c, h.catalog.DeleteProduct)
}

// ListAgeGroups handles GET /api/age-groups requests.
func (h *CatalogHandler) ListAgeGroups(c *gin.Context) {
	builder := NewResponseBuilder(c)
	groups, err := h.catalog.ListAgeGroups(c.Request.Context())
	if err != nil {
		writeError(builder, err)
		return
	}
	builder.SuccessOK(groups)
}

// CreateAgeGroup handles POST /api/age-groups requests.
func (h *CatalogHandler) CreateAgeGroup(c *gin.Context) {
	builder := NewResponseBuilder(c)
	req, err := BuildRequest[dto.AgeGroupRequest](c)
	if err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		return
	}
	group, err := h.catalog.CreateAgeGroup(c.Request.Context(), req.Name, req.Quantity)
	if err != nil {
		writeError(builder, err)
		return
	}
	builder.SuccessCreated(group)
}

// UpdateAgeGroup handles PUT /api/age-groups/:id requests.
func (h *CatalogHandler) UpdateAgeGroup(c *gin.Context) {
	builder := NewResponseBuilder(c)
	id, err := pathID(c)
	if err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		return
	}
	req, err := BuildRequest[dto.AgeGroupRequest](c)
	if err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		return
	}
	group, err := h.catalog.UpdateAgeGroup(c.Request.Context(), id, req.Name, req.Quantity)
	if err != nil {
		writeError(builder, err)
		return
	}
	builder.SuccessOK(group)
}

// DeleteAgeGroup handles DELETE /api/age-groups/:id requests. The group
// is unlinked from quantity rows that reference it.
func (h *CatalogHandler) DeleteAgeGroup(c *gin.Context) {
	h.deleteByID(c, h.catalog.DeleteAgeGroup)
}

// ListProductQuantities handles GET /api/product-quantities requests.
func (h *CatalogHandler) ListProductQuantities(c *gin.Context) {
	builder := NewResponseBuilder(c)
	quantities, err := h.catalog.ListProductQuantities(c.Request.Context())
	if err != nil {
		writeError(builder, err)
		return
	}
	builder.SuccessOK(quantities)
}

// CreateProductQuantity handles POST /api/product-quantities requests.
func (h *CatalogHandler) CreateProductQuantity(c *gin.Context) {
	builder := NewResponseBuilder(c)
	req, err := BuildRequest[dto.ProductQuantityRequest](c)
	if err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		return
	}
	quantity, err := h.catalog.CreateProductQuantity(c.Request.Context(),
		req.ProductID, req.AgeGroupIDs, req.UnitOfMeasure, req.Quantity, req.PackageType)
	if err != nil {
		writeError(builder, err)
		return
	}
	builder.SuccessCreated(quantity)
}

// UpdateProductQuantity handles PUT /api/product-quantities/:id requests.
func (h *CatalogHandler) UpdateProductQuantity(c *gin.Context) {
	builder := NewResponseBuilder(c)
	id, err := pathID(c)
	if err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		return
	}
	req, err := BuildRequest[dto.ProductQuantityRequest](c)
	if err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		return
	}
	quantity, err := h.catalog.UpdateProductQuantity(c.Request.Context(),
		id, req.ProductID, req.AgeGroupIDs, req.UnitOfMeasure, req.Quantity, req.PackageType)
	if err != nil {
		writeError(builder, err)
		return
	}
	builder.SuccessOK(quantity)
}

// DeleteProductQuantity handles DELETE /api/product-quantities/:id requests.
func (h *CatalogHandler) DeleteProductQuantity(c *gin.Context) {
	h.deleteByID(c, h.catalog.DeleteProductQuantity)
}

// ListRecipes handles GET /api/recipes requests.
func (h *CatalogHandler) ListRecipes(c *gin.Context) {
	builder := NewResponseBuilder(c)
	recipes, err := h.catalog.ListRecipes(c.Request.Context())
	if err != nil {
		writeError(builder, err)
		return
	}
	builder.SuccessOK(recipes)
}

// CreateRecipe handles POST /api/recipes requests.
func (h *CatalogHandler) CreateRecipe(c *gin.Context) {
	builder := NewResponseBuilder(c)
	req, err := BuildRequest[dto.RecipeRequest](c)
	if err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		return
	}
	recipe, err := h.catalog.CreateRecipe(c.Request.Context(), req.Name, req.ProductIDs)
	if err != nil {
		writeError(builder, err)
		return
	}
	builder.SuccessCreated(recipe)
}

// UpdateRecipe handles PUT /api/recipes/:id requests.
func (h *CatalogHandler) UpdateRecipe(c *gin.Context) {
	builder := NewResponseBuilder(c)
	id, err := pathID(c)
	if err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		return
	}
	req, err := BuildRequest[dto.RecipeRequest](c)
	if err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		return
	}
	recipe, err := h.catalog.UpdateRecipe(c.Request.Context(), id, req.Name, req.ProductIDs)
	if err != nil {
		writeError(builder, err)
		return
	}
	builder.SuccessOK(recipe)
}

// DeleteRecipe handles DELETE /api/recipes/:id requests. The recipe is
// unlinked from days that reference it.
func (h *CatalogHandler) DeleteRecipe(c *gin.Context) {
	h.deleteByID(c, h.catalog.DeleteRecipe)
}

// ListDays handles GET /api/days requests.
func (h *CatalogHandler) ListDays(c *gin.Context) {
	builder := NewResponseBuilder(c)
	days, err := h.days.List(c.Request.Context())
	if err != nil {
		writeError(builder, err)
		return
	}
	builder.SuccessOK(days)
}

// GetDay handles GET /api/days/:id requests.
func (h *CatalogHandler) GetDay(c *gin.Context) {
	builder := NewResponseBuilder(c)
	id, err := pathID(c)
	if err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		return
	}
	day, err := h.days.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(builder, err)
		return
	}
	builder.SuccessOK(day)
}

// CreateDay handles POST /api/days requests.
func (h *CatalogHandler) CreateDay(c *gin.Context) {
	builder := NewResponseBuilder(c)
	req, err := BuildRequest[dto.DayRequest](c)
	if err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		return
	}
	day, err := h.days.Create(c.Request.Context(), req.Name, req.RecipeIDs)
	if err != nil {
		writeError(builder, err)
		return
	}
	builder.SuccessCreated(day)
}

// UpdateDay handles PUT /api/days/:id requests.
func (h *CatalogHandler) UpdateDay(c *gin.Context) {
	builder := NewResponseBuilder(c)
	id, err := pathID(c)
	if err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		return
	}
	req, err := BuildRequest[dto.DayRequest](c)
	if err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		return
	}
	day, err := h.days.Update(c.Request.Context(), id, req.Name, req.RecipeIDs)
	if err != nil {
		writeError(builder, err)
		return
	}
	builder.SuccessOK(day)
}

// DeleteDay handles DELETE /api/days/:id requests.
func (h *CatalogHandler) DeleteDay(c *gin.Context) {
	h.deleteByID(c, h.days.Delete)
}

// deleteByID is the shared delete flow: parse the ID, delete, 204.
func (h *CatalogHandler) deleteByID(c *gin.Context, del func(ctx context.Context, id int64) error) {
	builder := NewResponseBuilder(c)
	id, err := pathID(c)
	if err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		return
	}
	if err := del(c.Request.Context(), id); err != nil {
		writeError(builder, err)
		return
	}
	c.Status(http.StatusNoContent)
}
