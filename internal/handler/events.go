package handler

import (
	"net/http"

	"github.com/Freeeeeet/artist_booking/internal/handler/dto"
	"github.com/Freeeeeet/artist_booking/internal/model"
	"github.com/Freeeeeet/artist_booking/internal/service"
	"github.com/gin-gonic/gin"
)

func (h *Handler) CreateEvent(c *gin.Context) {
	var req dto.CreateEventRequest
	if !bindJSON(c, &req) {
		return
	}

	event, err := h.events.CreateEvent(c.Request.Context(), req.ToInput(), actorFrom(c))
	if err != nil {
		h.handleError(c, err)
		return
	}

	h.respondEvent(c, http.StatusCreated, event)
}

func (h *Handler) ListEvents(c *gin.Context) {
	events, err := h.events.ListEvents(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	resp := make([]dto.EventResponse, 0, len(events))
	for _, e := range events {
		resp = append(resp, dto.ToEventResponse(e, nil))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) ListMyEvents(c *gin.Context) {
	events, err := h.events.ListByOrganizer(c.Request.Context(), actorFrom(c).ID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	resp := make([]dto.EventResponse, 0, len(events))
	for _, e := range events {
		resp = append(resp, dto.ToEventResponse(e, nil))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) GetEvent(c *gin.Context) {
	event, err := h.events.GetEvent(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	h.respondEvent(c, http.StatusOK, event)
}

func (h *Handler) UpdateEvent(c *gin.Context) {
	var req dto.UpdateEventRequest
	if !bindJSON(c, &req) {
		return
	}

	event, err := h.events.UpdateEvent(c.Request.Context(), c.Param("id"), req.ToInput(), actorFrom(c))
	if err != nil {
		h.handleError(c, err)
		return
	}

	h.respondEvent(c, http.StatusOK, event)
}

func (h *Handler) UpdateEventStatus(c *gin.Context) {
	var req dto.StatusRequest
	if !bindJSON(c, &req) {
		return
	}

	event, err := h.events.UpdateEventStatus(c.Request.Context(), c.Param("id"), model.EventStatus(req.Status), actorFrom(c))
	if err != nil {
		h.handleError(c, err)
		return
	}

	h.respondEvent(c, http.StatusOK, event)
}

func (h *Handler) DeleteEvent(c *gin.Context) {
	event, err := h.events.RemoveEvent(c.Request.Context(), c.Param("id"), actorFrom(c))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToEventResponse(event, nil))
}

func (h *Handler) AddSlot(c *gin.Context) {
	var req dto.SlotRequest
	if !bindJSON(c, &req) {
		return
	}

	event, err := h.events.AddSlot(c.Request.Context(), c.Param("id"), req.ToInput(), actorFrom(c))
	if err != nil {
		h.handleError(c, err)
		return
	}

	h.respondEvent(c, http.StatusCreated, event)
}

func (h *Handler) AddSlots(c *gin.Context) {
	var req dto.AddSlotsRequest
	if !bindJSON(c, &req) {
		return
	}

	inputs := make([]service.SlotInput, 0, len(req.Slots))
	for _, s := range req.Slots {
		inputs = append(inputs, s.ToInput())
	}

	event, err := h.events.AddSlots(c.Request.Context(), c.Param("id"), inputs, actorFrom(c))
	if err != nil {
		h.handleError(c, err)
		return
	}

	h.respondEvent(c, http.StatusCreated, event)
}

func (h *Handler) UpdateSlot(c *gin.Context) {
	idx, err := slotIndex(c)
	if err != nil {
		h.handleError(c, err)
		return
	}

	var req dto.UpdateSlotRequest
	if !bindJSON(c, &req) {
		return
	}

	event, err := h.events.UpdateSlot(c.Request.Context(), c.Param("id"), idx, req.ToUpdate(), actorFrom(c))
	if err != nil {
		h.handleError(c, err)
		return
	}

	h.respondEvent(c, http.StatusOK, event)
}

func (h *Handler) RemoveSlot(c *gin.Context) {
	idx, err := slotIndex(c)
	if err != nil {
		h.handleError(c, err)
		return
	}

	event, err := h.events.RemoveSlot(c.Request.Context(), c.Param("id"), idx, actorFrom(c))
	if err != nil {
		h.handleError(c, err)
		return
	}

	h.respondEvent(c, http.StatusOK, event)
}
