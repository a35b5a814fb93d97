package handler

import (
	"net/http"

	"github.com/Freeeeeet/artist_booking/internal/handler/dto"
	"github.com/gin-gonic/gin"
)

// RegisterMe создаёт или обновляет пользователя из токена
func (h *Handler) RegisterMe(c *gin.Context) {
	var req dto.RegisterUserRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.users.RegisterUser(c.Request.Context(), actorFrom(c), req.Name, req.Email)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *Handler) GetMe(c *gin.Context) {
	user, err := h.users.GetByID(c.Request.Context(), actorFrom(c).ID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *Handler) LinkTelegram(c *gin.Context) {
	var req dto.LinkTelegramRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.users.LinkTelegram(c.Request.Context(), actorFrom(c), req.ChatID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}
