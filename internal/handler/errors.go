package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/Freeeeeet/artist_booking/internal/handler/dto"
	"github.com/Freeeeeet/artist_booking/internal/lock"
	"github.com/Freeeeeet/artist_booking/internal/model"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (h *Handler) handleError(c *gin.Context, err error) {
	var budgetErr *model.BudgetExceededError
	if errors.As(err, &budgetErr) {
		c.JSON(http.StatusBadRequest, dto.BudgetErrorResponse{
			Error:     err.Error(),
			Allocated: budgetErr.Allocated,
			Budget:    budgetErr.Budget,
			Breakdown: budgetErr.Breakdown,
		})
		return
	}

	var conflictErr *model.ConflictError
	if errors.As(err, &conflictErr) {
		c.JSON(http.StatusConflict, dto.ConflictErrorResponse{
			Error:      err.Error(),
			BookingIDs: conflictErr.BookingIDs,
		})
		return
	}

	status := statusFor(err)
	if status == http.StatusInternalServerError {
		h.logger.Error("Request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err))
		c.JSON(status, dto.ErrorResponse{Error: "internal error"})
		return
	}

	c.JSON(status, dto.ErrorResponse{Error: err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, model.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, model.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, model.ErrInvalidTransition), errors.Is(err, model.ErrBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, model.ErrConflict), errors.Is(err, model.ErrStaleWrite):
		return http.StatusConflict
	case errors.Is(err, lock.ErrNotAcquired), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
