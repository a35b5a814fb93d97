package app

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

type reconciler interface {
	Reconcile(ctx context.Context) (int, error)
}

// Scheduler периодически сверяет статусы слотов с бронированиями.
// Нужен, когда синхронизация после смены статуса не успела или упала.
type Scheduler struct {
	reconciler reconciler
	interval   time.Duration
	logger     *zap.Logger
	stopChan   chan struct{}
	stopOnce   sync.Once
	wg         sync.WaitGroup
}

func NewScheduler(reconciler reconciler, interval time.Duration, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		reconciler: reconciler,
		interval:   interval,
		logger:     logger,
		stopChan:   make(chan struct{}),
	}
}

// Start запускает фоновые задачи
func (s *Scheduler) Start(ctx context.Context) {
	if s.interval <= 0 {
		s.logger.Info("Slot reconciliation disabled")
		return
	}

	s.logger.Info("Starting background scheduler", zap.Duration("interval", s.interval))

	s.wg.Add(1)
	go s.runReconcileTask(ctx)
}

// Stop останавливает фоновые задачи и ждёт их завершения
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		s.logger.Info("Stopping background scheduler")
		close(s.stopChan)
	})
	s.wg.Wait()
}

func (s *Scheduler) runReconcileTask(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.reconcile(ctx)
		case <-s.stopChan:
			s.logger.Info("Slot reconciliation task stopped")
			return
		case <-ctx.Done():
			s.logger.Info("Slot reconciliation task cancelled")
			return
		}
	}
}

func (s *Scheduler) reconcile(ctx context.Context) {
	fixed, err := s.reconciler.Reconcile(ctx)
	if err != nil {
		s.logger.Error("Failed to reconcile slots", zap.Error(err))
		return
	}

	if fixed > 0 {
		s.logger.Info("Slot statuses reconciled", zap.Int("fixed", fixed))
	}
}
