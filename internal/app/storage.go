package app

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/artist_booking/internal/config"
	"github.com/Freeeeeet/artist_booking/internal/repository/memory"
	"github.com/Freeeeeet/artist_booking/internal/repository/mongodb"
	"github.com/Freeeeeet/artist_booking/internal/repository/postgres"
	"github.com/Freeeeeet/artist_booking/internal/service"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// Storage - репозитории выбранного хранилища
type Storage struct {
	Artists  service.ArtistRepository
	Users    service.UserRepository
	Events   service.EventRepository
	Bookings service.BookingRepository

	close func()
}

func (s *Storage) Close() {
	if s.close != nil {
		s.close()
	}
}

// NewStorage подключает хранилище по STORAGE_DRIVER
func NewStorage(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Storage, error) {
	switch cfg.StorageDriver {
	case config.StoragePostgres:
		return newPostgresStorage(ctx, cfg, logger)
	case config.StorageMongo:
		return newMongoStorage(ctx, cfg, logger)
	case config.StorageMemory:
		logger.Warn("Using in-memory storage, data is lost on restart")
		return NewMemoryStorage(), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}

func NewMemoryStorage() *Storage {
	return &Storage{
		Artists:  memory.NewArtistRepository(),
		Users:    memory.NewUserRepository(),
		Events:   memory.NewEventRepository(),
		Bookings: memory.NewBookingRepository(),
	}
}

func newPostgresStorage(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Storage, error) {
	pool, err := pgxpool.New(ctx, cfg.DBDSN)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	if err = pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	logger.Info("Connected to PostgreSQL")

	migrator, err := NewMigrator(pool, cfg.MigrationsPath, logger)
	if err != nil {
		pool.Close()
		return nil, err
	}
	defer migrator.Close()

	if err = migrator.Run(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return &Storage{
		Artists:  postgres.NewArtistRepository(pool),
		Users:    postgres.NewUserRepository(pool),
		Events:   postgres.NewEventRepository(pool),
		Bookings: postgres.NewBookingRepository(pool),
		close:    pool.Close,
	}, nil
}

func newMongoStorage(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Storage, error) {
	client, err := mongodb.Connect(ctx, cfg.MongoURI)
	if err != nil {
		return nil, err
	}
	logger.Info("Connected to MongoDB", zap.String("database", cfg.MongoDB))

	db := client.Database(cfg.MongoDB)
	if err = mongodb.EnsureIndexes(ctx, db); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}

	return &Storage{
		Artists:  mongodb.NewArtistRepository(db),
		Users:    mongodb.NewUserRepository(db),
		Events:   mongodb.NewEventRepository(db),
		Bookings: mongodb.NewBookingRepository(db),
		close: func() {
			if err := client.Disconnect(context.Background()); err != nil {
				logger.Warn("Failed to disconnect from MongoDB", zap.Error(err))
			}
		},
	}, nil
}
