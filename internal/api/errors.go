package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/culinary-compass/backend/internal/errs"
	"github.com/culinary-compass/backend/internal/logging"
	"github.com/culinary-compass/backend/internal/service"
)

// ErrorResponse is the body of every failed API call.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
	// Invalid and Valid are set for unknown nutrient names.
	Invalid []string `json:"invalid,omitempty"`
	Valid   []string `json:"valid,omitempty"`
}

// writeError maps a recommendation error onto an HTTP status.
func writeError(c *gin.Context, err error) {
	code := service.ErrorReason(err)
	resp := ErrorResponse{Error: err.Error(), Code: code}

	var status int
	var invalid *errs.InvalidNutrientError
	switch {
	case errors.As(err, &invalid):
		status = http.StatusBadRequest
		resp.Invalid, resp.Valid = invalid.Names, invalid.Valid
	case errors.Is(err, errs.ErrInvalidInput), errors.Is(err, errs.ErrEmptyIngredients):
		status = http.StatusBadRequest
	case errors.Is(err, errs.ErrNoResults):
		status = http.StatusNotFound
	case errors.Is(err, errs.ErrModelUnavailable):
		status = http.StatusServiceUnavailable
		resp.Error = "embedding model unavailable, try again later"
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		status = http.StatusServiceUnavailable
		resp.Error = "request timed out"
	default:
		status = http.StatusInternalServerError
		resp.Error = "internal server error"
		logging.Ctx(c.Request.Context()).Error().Err(err).Str("path", c.Request.URL.Path).Msg("request failed")
	}
	c.AbortWithStatusJSON(status, resp)
}

// badRequest reports a malformed request body.
func badRequest(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{
		Error: "invalid request body: " + err.Error(),
		Code:  "invalid_input",
	})
}
