package handler

import (
	"net/http"

	"github.com/Freeeeeet/artist_booking/internal/handler/dto"
	"github.com/Freeeeeet/artist_booking/internal/model"
	"github.com/Freeeeeet/artist_booking/internal/service"
	"github.com/gin-gonic/gin"
)

func (h *Handler) CreateBooking(c *gin.Context) {
	var req dto.CreateBookingRequest
	if !bindJSON(c, &req) {
		return
	}

	booking, err := h.bookings.Create(c.Request.Context(), req.ToInput(), actorFrom(c))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToBookingResponse(booking))
}

// ListBookings - все бронирования, только для администратора
func (h *Handler) ListBookings(c *gin.Context) {
	if !actorFrom(c).IsAdmin() {
		c.JSON(http.StatusForbidden, dto.ErrorResponse{Error: "only admins can list all bookings"})
		return
	}

	bookings, err := h.bookings.List(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToBookingResponses(bookings))
}

func (h *Handler) ListMyBookings(c *gin.Context) {
	bookings, err := h.bookings.ListMine(c.Request.Context(), actorFrom(c))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToBookingResponses(bookings))
}

func (h *Handler) ListArtistBookings(c *gin.Context) {
	bookings, err := h.bookings.ListByArtist(c.Request.Context(), c.Param("artistId"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToBookingResponses(bookings))
}

func (h *Handler) GetBooking(c *gin.Context) {
	booking, err := h.bookings.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

func (h *Handler) UpdateBooking(c *gin.Context) {
	var req dto.UpdateBookingRequest
	if !bindJSON(c, &req) {
		return
	}

	booking, err := h.bookings.Update(c.Request.Context(), c.Param("id"), req.ToInput(), actorFrom(c))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

func (h *Handler) UpdateBookingStatus(c *gin.Context) {
	var req dto.StatusRequest
	if !bindJSON(c, &req) {
		return
	}

	booking, err := h.bookings.UpdateStatus(c.Request.Context(), c.Param("id"), service.UpdateStatusInput{
		Status: model.BookingStatus(req.Status),
		Notes:  req.Notes,
	}, actorFrom(c))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

func (h *Handler) DeleteBooking(c *gin.Context) {
	booking, err := h.bookings.Remove(c.Request.Context(), c.Param("id"), actorFrom(c))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}
