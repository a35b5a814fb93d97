package handler

import (
	"net/http"

	"github.com/Freeeeeet/artist_booking/internal/handler/dto"
	"github.com/Freeeeeet/artist_booking/internal/model"
	"github.com/gin-gonic/gin"
)

func (h *Handler) CreateArtist(c *gin.Context) {
	var req dto.CreateArtistRequest
	if !bindJSON(c, &req) {
		return
	}

	artist, err := h.artists.CreateProfile(c.Request.Context(), req.ToInput(), actorFrom(c))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, artist)
}

func (h *Handler) ListArtists(c *gin.Context) {
	artists, err := h.artists.List(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, artists)
}

func (h *Handler) GetMyArtist(c *gin.Context) {
	artist, err := h.artists.GetByUserID(c.Request.Context(), actorFrom(c).ID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, artist)
}

func (h *Handler) GetArtist(c *gin.Context) {
	artist, err := h.artists.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, artist)
}

func (h *Handler) UpdateArtistStatus(c *gin.Context) {
	var req dto.StatusRequest
	if !bindJSON(c, &req) {
		return
	}

	artist, err := h.artists.UpdateStatus(c.Request.Context(), c.Param("id"), model.ArtistStatus(req.Status), actorFrom(c))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, artist)
}

func (h *Handler) UpdateArtistAvailability(c *gin.Context) {
	var req dto.UpdateAvailabilityRequest
	if !bindJSON(c, &req) {
		return
	}

	artist, err := h.artists.UpdateAvailability(c.Request.Context(), c.Param("id"), req.ToEntries(), actorFrom(c))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, artist)
}
