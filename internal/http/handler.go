package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/menu-order-service/internal/domain/dto"
	"github.com/guttosm/menu-order-service/internal/domain/model"
	"github.com/guttosm/menu-order-service/internal/i18n"
	"github.com/guttosm/menu-order-service/internal/metrics"
	"github.com/guttosm/menu-order-service/internal/repository"
	"github.com/guttosm/menu-order-service/internal/service"
)

// OrderStore provides read and delete access to persisted orders.
type OrderStore interface {
	List(ctx context.Context) ([]model.Order, error)
	GetByID(ctx context.Context, id int64) (*model.Order, error)
	Delete(ctx context.Context, id int64) error
}

// OrderHandler provides HTTP handlers for order generation and the
// order lifecycle.
type OrderHandler struct {
	generator service.OrderGenerator
	orders    OrderStore
}

// NewOrderHandler creates a new OrderHandler instance.
func NewOrderHandler(generator service.OrderGenerator, orders OrderStore) *OrderHandler {
	return &OrderHandler{generator: generator, orders: orders}
}

// GenerateOrder handles POST /api/orders/generate requests.
//
// @Summary      Generate a purchase order
// @Description  Aggregates the product quantities reachable from the selected days into a consolidated purchase order and persists it. Validation failures (empty selection, unknown day IDs, no matching quantities, invalid package sizes) return 400 with a contract message.
// @Tags         Orders
// @Accept       json
// @Produce      json
// @Param        request body dto.GenerateOrderRequest true "Order name, date, and selected day IDs"
// @Success      201 {object} dto.SuccessResponse "Identifier of the generated order"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid input or selection"
// @Failure      429 {object} dto.ErrorResponse "Too many requests - rate limit exceeded"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Router       /api/orders/generate [post]
func (h *OrderHandler) GenerateOrder(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, err := BuildRequest[dto.GenerateOrderRequest](c)
	if err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		return
	}

	date, err := req.ParseDate()
	if err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidDate, err)
		return
	}

	start := time.Now()
	orderID, err := h.generator.GenerateOrder(c.Request.Context(), service.GenerateOrderInput{
		Name:   req.Name,
		Date:   date,
		DayIDs: req.DayIDs,
	})
	if err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			metrics.RecordOrderGeneration(time.Since(start), "validation_error")
			builder.ErrorWithMessage(http.StatusBadRequest, verr.Message, err)
			return
		}
		metrics.RecordOrderGeneration(time.Since(start), "error")
		builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
		return
	}

	metrics.RecordOrderGeneration(time.Since(start), "success")
	builder.SuccessCreated(dto.OrderCreatedResponse{OrderID: orderID})
}

// ListOrders handles GET /api/orders requests.
//
// @Summary      List orders
// @Description  Returns all generated orders, newest date first.
// @Tags         Orders
// @Produce      json
// @Success      200 {object} dto.SuccessResponse "All orders with their lines"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Router       /api/orders [get]
func (h *OrderHandler) ListOrders(c *gin.Context) {
	builder := NewResponseBuilder(c)

	orders, err := h.orders.List(c.Request.Context())
	if err != nil {
		builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
		return
	}
	builder.SuccessOK(orders)
}

// GetOrder handles GET /api/orders/:id requests.
//
// @Summary      Get one order
// @Description  Returns one order with its lines and per-line audit detail.
// @Tags         Orders
// @Produce      json
// @Param        id path int true "Order ID"
// @Success      200 {object} dto.SuccessResponse "The order"
// @Failure      404 {object} dto.ErrorResponse "Order not found"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Router       /api/orders/{id} [get]
func (h *OrderHandler) GetOrder(c *gin.Context) {
	builder := NewResponseBuilder(c)

	id, err := pathID(c)
	if err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		return
	}

	order, err := h.orders.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			builder.Error(http.StatusNotFound, i18n.ErrKeyNotFound, err)
			return
		}
		builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
		return
	}
	builder.SuccessOK(order)
}

// DeleteOrder handles DELETE /api/orders/:id requests.
//
// @Summary      Delete an order
// @Description  Removes an order and its lines.
// @Tags         Orders
// @Param        id path int true "Order ID"
// @Success      204 "Order deleted"
// @Failure      404 {object} dto.ErrorResponse "Order not found"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Router       /api/orders/{id} [delete]
func (h *OrderHandler) DeleteOrder(c *gin.Context) {
	builder := NewResponseBuilder(c)

	id, err := pathID(c)
	if err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		return
	}

	if err := h.orders.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			builder.Error(http.StatusNotFound, i18n.ErrKeyNotFound, err)
			return
		}
		builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// pathID parses the :id path parameter as a positive int64.
func pathID(c *gin.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}
