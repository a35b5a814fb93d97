package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Freeeeeet/artist_booking/internal/config"
	"github.com/Freeeeeet/artist_booking/internal/handler"
	"github.com/Freeeeeet/artist_booking/internal/lock"
	"github.com/Freeeeeet/artist_booking/internal/notification"
	"github.com/Freeeeeet/artist_booking/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/go-telegram/bot"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

// Services - собранный слой бизнес-логики
type Services struct {
	Artists  *service.ArtistService
	Users    *service.UserService
	Events   *service.EventService
	Bookings *service.BookingService
	Syncer   *service.SlotSynchronizer
}

// NewServices связывает сервисы между собой. EventService и BookingService зависят
// друг от друга через синхронизатор, поэтому создатель бронирований подключается последним.
func NewServices(storage *Storage, locker lock.Locker, notifier service.BookingNotifier, syncTimeout time.Duration, logger *zap.Logger) *Services {
	budget := service.NewBudgetValidator(storage.Artists, logger.Named("budget"))
	events := service.NewEventService(storage.Events, storage.Artists, budget, locker, logger.Named("events"))
	syncer := service.NewSlotSynchronizer(storage.Events, storage.Bookings, events, logger.Named("sync"))
	bookings := service.NewBookingService(
		storage.Bookings,
		storage.Events,
		storage.Artists,
		syncer,
		notifier,
		syncTimeout,
		logger.Named("bookings"),
	)
	events.SetBookingCreator(bookings)

	return &Services{
		Artists:  service.NewArtistService(storage.Artists, logger.Named("artists")),
		Users:    service.NewUserService(storage.Users, logger.Named("users")),
		Events:   events,
		Bookings: bookings,
		Syncer:   syncer,
	}
}

type App struct {
	cfg       *config.Config
	logger    *zap.Logger
	storage   *Storage
	redis     *redis.Client
	bot       *bot.Bot
	services  *Services
	scheduler *Scheduler
	server    *http.Server
}

func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	a := &App{cfg: cfg, logger: logger}

	storage, err := NewStorage(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("init storage: %w", err)
	}
	a.storage = storage

	locker, err := a.newLocker(ctx)
	if err != nil {
		a.close()
		return nil, err
	}

	notifier, err := a.newNotifier()
	if err != nil {
		a.close()
		return nil, err
	}

	a.services = NewServices(storage, locker, notifier, cfg.SyncTimeout, logger)
	a.scheduler = NewScheduler(a.services.Syncer, cfg.ReconcileInterval, logger.Named("scheduler"))

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	h := handler.NewHandler(a.services.Events, a.services.Bookings, a.services.Artists, a.services.Users, logger.Named("http"))
	router := handler.NewRouter(h, []byte(cfg.JWTSecret), handler.NewRateLimiter(cfg.RateLimit, int(cfg.RateLimit)*2))

	a.server = &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           corsHandler(cfg.CORSOrigins).Handler(router),
		ReadTimeout:       7 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       120 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
	}

	return a, nil
}

// Run запускает сервер и фоновые задачи и блокируется до отмены ctx
func (a *App) Run(ctx context.Context) error {
	defer a.close()

	a.scheduler.Start(ctx)
	defer a.scheduler.Stop()

	if a.bot != nil {
		go a.bot.Start(ctx)
		a.logger.Info("Telegram bot started")
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server listening", zap.String("addr", a.cfg.HTTPAddr))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	a.logger.Info("Shutdown signal received, shutting down gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}

	a.logger.Info("Server stopped cleanly",
		zap.Int64("slot_sync_failures", a.services.Bookings.SyncFailures()))

	return nil
}

func (a *App) newLocker(ctx context.Context) (lock.Locker, error) {
	if a.cfg.RedisAddr == "" {
		a.logger.Info("Using in-process event locks")
		return lock.NewLocal(), nil
	}

	client := redis.NewClient(&redis.Options{Addr: a.cfg.RedisAddr})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	a.redis = client

	a.logger.Info("Using Redis event locks", zap.String("addr", a.cfg.RedisAddr))
	return lock.NewRedis(client, 0), nil
}

func (a *App) newNotifier() (service.BookingNotifier, error) {
	if a.cfg.TelegramToken == "" {
		a.logger.Info("TELEGRAM_TOKEN not set, booking notifications disabled")
		return service.NopNotifier{}, nil
	}

	b, err := bot.New(a.cfg.TelegramToken)
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}
	a.bot = b

	notification.NewCommands(a.logger.Named("telegram")).Register(b)

	return notification.NewTelegram(b, a.storage.Users, a.storage.Artists, a.logger.Named("telegram")), nil
}

func (a *App) close() {
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Warn("Failed to close redis client", zap.Error(err))
		}
	}
	if a.storage != nil {
		a.storage.Close()
	}
}

func corsHandler(origins []string) *cors.Cors {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	})
}
