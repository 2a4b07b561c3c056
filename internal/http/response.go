// Package http provides the HTTP transport layer: handlers, the router,
// and request/response building helpers.
package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/menu-order-service/internal/domain/dto"
	"github.com/guttosm/menu-order-service/internal/i18n"
	"github.com/guttosm/menu-order-service/internal/middleware"
)

// ResponseBuilder builds the standard response envelopes. Success
// payloads are wrapped in dto.SuccessResponse, errors in
// dto.ErrorResponse, both carrying the request ID and a timestamp.
type ResponseBuilder struct {
	c *gin.Context
}

// NewResponseBuilder creates a new response builder for the given context.
func NewResponseBuilder(c *gin.Context) *ResponseBuilder {
	return &ResponseBuilder{c: c}
}

// Success sends a successful response with the given data.
func (b *ResponseBuilder) Success(statusCode int, data interface{}) {
	b.c.JSON(statusCode, dto.SuccessResponse{
		Data:      data,
		RequestID: middleware.GetRequestID(b.c),
		Timestamp: time.Now(),
	})
}

// SuccessOK sends a 200 OK response with the given data.
func (b *ResponseBuilder) SuccessOK(data interface{}) {
	b.Success(http.StatusOK, data)
}

// SuccessCreated sends a 201 Created response with the given data.
func (b *ResponseBuilder) SuccessCreated(data interface{}) {
	b.Success(http.StatusCreated, data)
}

// Error sends an error response with the message resolved from the
// translation key for the request's locale. The underlying error is
// attached to the context so the error handler middleware logs it.
func (b *ResponseBuilder) Error(statusCode int, messageKey string, err error) {
	locale := i18n.GetLocale(b.c)
	message := i18n.GetTranslator().Translate(messageKey, locale)
	b.abortWithError(statusCode, message, err)
}

// ErrorWithMessage sends an error response with a literal message,
// bypassing translation. Used for validation messages produced by the
// domain, which are part of the API contract.
func (b *ResponseBuilder) ErrorWithMessage(statusCode int, message string, err error) {
	b.abortWithError(statusCode, message, err)
}

func (b *ResponseBuilder) abortWithError(statusCode int, message string, err error) {
	if err != nil {
		_ = b.c.Error(err)
	}
	resp := dto.NewError(dto.ErrCodeFromStatus(statusCode), message).
		WithRequestID(middleware.GetRequestID(b.c))
	b.c.AbortWithStatusJSON(statusCode, resp)
}

// BuildRequest binds the JSON body of the request into T.
func BuildRequest[T any](c *gin.Context) (*T, error) {
	var req T
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, err
	}
	return &req, nil
}
