package dashboard

import (
	"context"
	"fmt"
	"time"

	"amigo-admin/internal/config"

	"github.com/robfig/cron/v3"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const refreshTimeout = 30 * time.Second

// Scheduler refreshes the stats snapshot on the configured cron spec
type Scheduler struct {
	service StatsService
	spec    string
	cron    *cron.Cron
	log     *zap.Logger
}

func NewScheduler(service StatsService, cfg *config.Config, log *zap.Logger) *Scheduler {
	return &Scheduler{
		service: service,
		spec:    cfg.DashboardRefreshCron,
		cron:    cron.New(),
		log:     log,
	}
}

func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.spec, s.refresh); err != nil {
		return fmt.Errorf("invalid dashboard refresh schedule %q: %w", s.spec, err)
	}
	s.cron.Start()
	s.log.Info("dashboard refresh scheduled", zap.String("spec", s.spec))
	return nil
}

func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

func (s *Scheduler) refresh() {
	ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
	defer cancel()
	if _, err := s.service.Refresh(ctx); err != nil {
		s.log.Warn("dashboard refresh failed", zap.Error(err))
	}
}

// RegisterScheduler ties the scheduler to the application lifecycle
func RegisterScheduler(lc fx.Lifecycle, s *Scheduler) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return s.Start()
		},
		OnStop: func(ctx context.Context) error {
			s.Stop()
			return nil
		},
	})
}
