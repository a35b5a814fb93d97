package handler

import (
	"github.com/gin-gonic/gin"
)

// NewRouter собирает маршруты API. Всё, кроме /health, требует токен.
func NewRouter(h *Handler, jwtSecret []byte, limiter *RateLimiter) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogger(h.logger))
	if limiter != nil {
		r.Use(limiter.Middleware())
	}

	r.GET("/health", h.Health)

	api := r.Group("/api/v1", Auth(jwtSecret))
	{
		api.POST("/users/me", h.RegisterMe)
		api.GET("/users/me", h.GetMe)
		api.PUT("/users/me/telegram", h.LinkTelegram)

		api.POST("/artists", h.CreateArtist)
		api.GET("/artists", h.ListArtists)
		api.GET("/artists/me", h.GetMyArtist)
		api.GET("/artists/:id", h.GetArtist)
		api.PATCH("/artists/:id/status", h.UpdateArtistStatus)
		api.PUT("/artists/:id/availability", h.UpdateArtistAvailability)

		api.POST("/events", h.CreateEvent)
		api.GET("/events", h.ListEvents)
		api.GET("/events/mine", h.ListMyEvents)
		api.GET("/events/:id", h.GetEvent)
		api.PATCH("/events/:id", h.UpdateEvent)
		api.PATCH("/events/:id/status", h.UpdateEventStatus)
		api.DELETE("/events/:id", h.DeleteEvent)

		api.POST("/events/:id/slots", h.AddSlot)
		api.POST("/events/:id/slots/batch", h.AddSlots)
		api.PATCH("/events/:id/slots/:index", h.UpdateSlot)
		api.DELETE("/events/:id/slots/:index", h.RemoveSlot)

		api.POST("/bookings", h.CreateBooking)
		api.GET("/bookings", h.ListBookings)
		api.GET("/bookings/mine", h.ListMyBookings)
		api.GET("/bookings/artist/:artistId", h.ListArtistBookings)
		api.GET("/bookings/:id", h.GetBooking)
		api.PATCH("/bookings/:id", h.UpdateBooking)
		api.PATCH("/bookings/:id/status", h.UpdateBookingStatus)
		api.DELETE("/bookings/:id", h.DeleteBooking)
	}

	return r
}
