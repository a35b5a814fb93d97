package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Freeeeeet/artist_booking/internal/app"
	"github.com/Freeeeeet/artist_booking/internal/handler"
	"github.com/Freeeeeet/artist_booking/internal/handler/dto"
	"github.com/Freeeeeet/artist_booking/internal/lock"
	"github.com/Freeeeeet/artist_booking/internal/model"
	"github.com/Freeeeeet/artist_booking/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var secret = []byte("test-secret")

var (
	organizer = model.Actor{ID: "org-1", Role: model.RoleOrganizer}
	stranger  = model.Actor{ID: "org-2", Role: model.RoleOrganizer}
	admin     = model.Actor{ID: "admin-1", Role: model.RoleAdmin}
)

type testServer struct {
	router  http.Handler
	storage *app.Storage
}

func setupServer(t *testing.T, limiter *handler.RateLimiter) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := zap.NewNop()
	storage := app.NewMemoryStorage()
	svc := app.NewServices(storage, lock.NewLocal(), service.NopNotifier{}, time.Second, logger)

	h := handler.NewHandler(svc.Events, svc.Bookings, svc.Artists, svc.Users, logger)
	return &testServer{
		router:  handler.NewRouter(h, secret, limiter),
		storage: storage,
	}
}

func (s *testServer) addArtist(t *testing.T, name string, rate, hours float64) *model.Artist {
	t.Helper()

	artist := &model.Artist{
		ID:        "artist-" + name,
		UserID:    "user-" + name,
		Name:      name,
		Status:    model.ArtistStatusActive,
		Pricing:   model.Pricing{HourlyRate: rate, MinimumHours: hours},
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	require.NoError(t, s.storage.Artists.Create(context.Background(), artist))
	return artist
}

func (s *testServer) do(t *testing.T, method, path string, actor *model.Actor, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if actor != nil {
		token, err := handler.IssueToken(secret, *actor, time.Hour)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func eventBody(budget float64, slots ...dto.SlotRequest) dto.CreateEventRequest {
	return dto.CreateEventRequest{
		Title:       "Summer Fest",
		Venue:       "Main stage",
		Date:        time.Now().Add(30 * 24 * time.Hour).UTC(),
		Budget:      budget,
		ArtistSlots: slots,
	}
}

func TestHealth(t *testing.T) {
	s := setupServer(t, nil)

	w := s.do(t, http.MethodGet, "/health", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuth(t *testing.T) {
	s := setupServer(t, nil)

	w := s.do(t, http.MethodGet, "/api/v1/events", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/events", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	foreign, err := handler.IssueToken([]byte("other"), organizer, time.Hour)
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodGet, "/api/v1/events", nil)
	req.Header.Set("Authorization", "Bearer "+foreign)
	rec = httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	w = s.do(t, http.MethodGet, "/api/v1/events", &organizer, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCreateEvent(t *testing.T) {
	s := setupServer(t, nil)
	nova := s.addArtist(t, "Nova", 100, 2)

	w := s.do(t, http.MethodPost, "/api/v1/events", &organizer, eventBody(1000,
		dto.SlotRequest{Role: "headliner", ArtistID: nova.ID},
	))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	resp := decode[dto.EventResponse](t, w)
	assert.Equal(t, "Summer Fest", resp.Title)
	assert.Equal(t, organizer.ID, resp.OrganizerID)
	require.Len(t, resp.ArtistSlots, 1)
	require.NotNil(t, resp.ArtistSlots[0].Artist)
	assert.Equal(t, "Nova", resp.ArtistSlots[0].Artist.Name)
	assert.Equal(t, 200.0, resp.ArtistSlots[0].Artist.Cost)

	w = s.do(t, http.MethodGet, "/api/v1/events/"+resp.ID, &stranger, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodGet, "/api/v1/events/missing", &organizer, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateEvent_ArtistForbidden(t *testing.T) {
	s := setupServer(t, nil)
	artist := model.Actor{ID: "user-x", Role: model.RoleArtist}

	w := s.do(t, http.MethodPost, "/api/v1/events", &artist, eventBody(100))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCreateEvent_BadBody(t *testing.T) {
	s := setupServer(t, nil)

	w := s.do(t, http.MethodPost, "/api/v1/events", &organizer, map[string]any{"venue": "somewhere"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAddSlot_BudgetExceeded(t *testing.T) {
	s := setupServer(t, nil)
	p := s.addArtist(t, "P", 150, 3)
	q := s.addArtist(t, "Q", 50, 2)

	w := s.do(t, http.MethodPost, "/api/v1/events", &organizer, eventBody(500, dto.SlotRequest{Role: "headliner", ArtistID: p.ID}))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	event := decode[dto.EventResponse](t, w)

	w = s.do(t, http.MethodPost, "/api/v1/events/"+event.ID+"/slots", &organizer, dto.SlotRequest{Role: "support", ArtistID: q.ID})
	require.Equal(t, http.StatusBadRequest, w.Code)

	resp := decode[dto.BudgetErrorResponse](t, w)
	assert.Equal(t, 550.0, resp.Allocated)
	assert.Equal(t, 500.0, resp.Budget)
	assert.Len(t, resp.Breakdown, 2)
	assert.Contains(t, resp.Error, "would exceed event budget")
}

func TestSlotLifecycle(t *testing.T) {
	s := setupServer(t, nil)
	nova := s.addArtist(t, "Nova", 100, 2)
	novaActor := model.Actor{ID: nova.UserID, Role: model.RoleArtist}

	w := s.do(t, http.MethodPost, "/api/v1/events", &organizer, eventBody(1000, dto.SlotRequest{Role: "opener"}))
	require.Equal(t, http.StatusCreated, w.Code)
	event := decode[dto.EventResponse](t, w)

	w = s.do(t, http.MethodPatch, "/api/v1/events/"+event.ID+"/slots/0", &organizer, dto.UpdateSlotRequest{ArtistID: &nova.ID})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	event = decode[dto.EventResponse](t, w)
	assert.Equal(t, model.SlotStatusPending, event.ArtistSlots[0].Status)

	w = s.do(t, http.MethodGet, "/api/v1/bookings/mine", &novaActor, nil)
	require.Equal(t, http.StatusOK, w.Code)
	bookings := decode[[]dto.BookingResponse](t, w)
	require.Len(t, bookings, 1)
	bookingID := bookings[0].ID

	for _, step := range []struct {
		status string
		actor  *model.Actor
	}{
		{"in_review", &novaActor},
		{"accepted", &novaActor},
		{"paid", &organizer},
	} {
		w = s.do(t, http.MethodPatch, "/api/v1/bookings/"+bookingID+"/status", step.actor, dto.StatusRequest{Status: step.status})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}

	w = s.do(t, http.MethodGet, "/api/v1/events/"+event.ID, &organizer, nil)
	require.Equal(t, http.StatusOK, w.Code)
	event = decode[dto.EventResponse](t, w)
	assert.Equal(t, model.SlotStatusConfirmed, event.ArtistSlots[0].Status)

	w = s.do(t, http.MethodPatch, "/api/v1/bookings/"+bookingID+"/status", &organizer, dto.StatusRequest{Status: "requested"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodDelete, "/api/v1/events/"+event.ID+"/slots/x", &organizer, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodDelete, "/api/v1/events/"+event.ID+"/slots/4", &organizer, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateBooking_Conflict(t *testing.T) {
	s := setupServer(t, nil)
	nova := s.addArtist(t, "Nova", 100, 2)

	w := s.do(t, http.MethodPost, "/api/v1/events", &organizer, eventBody(1000))
	require.Equal(t, http.StatusCreated, w.Code)
	event := decode[dto.EventResponse](t, w)

	start := time.Date(2030, time.June, 1, 20, 0, 0, 0, time.UTC)
	end := start.Add(2 * time.Hour)

	body := dto.CreateBookingRequest{ArtistID: nova.ID, EventID: event.ID, StartTime: &start, EndTime: &end}
	w = s.do(t, http.MethodPost, "/api/v1/bookings", &organizer, body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	first := decode[dto.BookingResponse](t, w)

	overlap := start.Add(time.Hour)
	body.StartTime = &overlap
	w = s.do(t, http.MethodPost, "/api/v1/bookings", &organizer, body)
	require.Equal(t, http.StatusConflict, w.Code)

	resp := decode[dto.ConflictErrorResponse](t, w)
	assert.Equal(t, []string{first.ID}, resp.BookingIDs)
}

func TestListBookings_AdminOnly(t *testing.T) {
	s := setupServer(t, nil)

	w := s.do(t, http.MethodGet, "/api/v1/bookings", &organizer, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(t, http.MethodGet, "/api/v1/bookings", &admin, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUsers(t *testing.T) {
	s := setupServer(t, nil)

	w := s.do(t, http.MethodGet, "/api/v1/users/me", &organizer, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(t, http.MethodPost, "/api/v1/users/me", &organizer, dto.RegisterUserRequest{Name: "Olga", Email: "olga@example.com"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do(t, http.MethodPut, "/api/v1/users/me/telegram", &organizer, dto.LinkTelegramRequest{ChatID: 77})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	user := decode[model.User](t, w)
	require.NotNil(t, user.TelegramChatID)
	assert.EqualValues(t, 77, *user.TelegramChatID)
}

func TestRateLimiter(t *testing.T) {
	s := setupServer(t, handler.NewRateLimiter(1, 2))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		codes = append(codes, s.do(t, http.MethodGet, "/health", nil, nil).Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}
