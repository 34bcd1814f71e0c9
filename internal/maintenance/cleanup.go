package maintenance

import (
	"context"
	"time"

	"linkpulse/internal/repository"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

type Scheduler struct {
	c             *cron.Cron
	log           *zap.Logger
	clicks        *repository.ClickRepository
	retentionDays int
}

func NewScheduler(log *zap.Logger, clicks *repository.ClickRepository, retentionDays int) *Scheduler {
	// Используем cron с секундами отключёнными (стандартный 5-полюсный синтаксис) и локацией из системы.
	c := cron.New(cron.WithParser(cron.NewParser(cron.Minute|cron.Hour|cron.Dom|cron.Month|cron.Dow)), cron.WithChain())
	return &Scheduler{c: c, log: log, clicks: clicks, retentionDays: retentionDays}
}

func (s *Scheduler) Start(ctx context.Context) error {
	if s.retentionDays <= 0 {
		return nil
	}
	_, err := s.c.AddFunc("0 3 * * *", func() {
		s.purgeOldClicks()
	})
	if err != nil {
		return err
	}
	s.c.Start()

	go func() {
		<-ctx.Done()
		ctxStop := s.c.Stop()
		<-ctxStop.Done()
	}()
	return nil
}

func (s *Scheduler) purgeOldClicks() {
	horizon := time.Now().AddDate(0, 0, -s.retentionDays)
	deleted, err := s.clicks.DeleteOlderThan(horizon)
	if err != nil {
		s.log.Error("Ошибка очистки старых кликов", zap.Error(err))
		return
	}
	if deleted > 0 {
		s.log.Info("Удалены клики старше горизонта хранения", zap.Int64("count", deleted))
	}
}
