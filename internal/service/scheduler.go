package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"golang-lwcharts/config"
	"golang-lwcharts/internal/model"
	"golang-lwcharts/internal/repository"
	"golang-lwcharts/pkg/logger"
	"golang-lwcharts/pkg/metrics"
	"golang-lwcharts/pkg/utils"
)

const refreshBatchSize = 100

type SchedulerService interface {
	// Start runs Execute on the configured cron until Stop is called.
	Start(ctx context.Context) error
	Stop()
	// Execute refreshes every saved market chart that is due and waits for the refreshes.
	Execute(ctx context.Context) error
	// RefreshChart rebuilds one saved chart immediately, regardless of its schedule.
	RefreshChart(ctx context.Context, id string) error
}

type schedulerService struct {
	cfg          *config.Config
	log          *logger.Logger
	cron         *cron.Cron
	chartRepo    repository.ChartRepository
	unitOfWork   repository.UnitOfWork
	chartService ChartService
	semaphore    chan struct{}
	now          func() time.Time
}

func NewSchedulerService(
	cfg *config.Config,
	log *logger.Logger,
	chartRepo repository.ChartRepository,
	unitOfWork repository.UnitOfWork,
	chartService ChartService,
) SchedulerService {
	concurrency := cfg.Scheduler.MaxConcurrency
	if concurrency <= 0 {
		concurrency = 1
	}
	return &schedulerService{
		cfg:          cfg,
		log:          log,
		cron:         cron.New(cron.WithParser(refreshCronParser), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		chartRepo:    chartRepo,
		unitOfWork:   unitOfWork,
		chartService: chartService,
		semaphore:    make(chan struct{}, concurrency),
		now:          time.Now,
	}
}

func (s *schedulerService) Start(ctx context.Context) error {
	if !s.cfg.Scheduler.Enabled {
		s.log.Info("Chart refresh scheduler disabled")
		return nil
	}
	_, err := s.cron.AddFunc(s.cfg.Scheduler.Cron, func() {
		if err := s.Execute(ctx); err != nil {
			s.log.ErrorContext(ctx, "Scheduled refresh run failed", logger.ErrorField(err))
		}
	})
	if err != nil {
		return fmt.Errorf("invalid scheduler cron %q: %w", s.cfg.Scheduler.Cron, err)
	}
	s.cron.Start()
	s.log.Info("Chart refresh scheduler started",
		logger.StringField("cron", s.cfg.Scheduler.Cron),
		logger.IntField("max_concurrency", cap(s.semaphore)))
	return nil
}

func (s *schedulerService) Stop() {
	<-s.cron.Stop().Done()
	s.log.Info("Chart refresh scheduler stopped")
}

func (s *schedulerService) Execute(ctx context.Context) error {
	charts, err := s.chartRepo.FindDueForRefresh(ctx, s.now(), refreshBatchSize)
	if err != nil {
		s.log.ErrorContext(ctx, "Failed to find charts to refresh", logger.ErrorField(err))
		return fmt.Errorf("failed to find charts to refresh: %w", err)
	}
	if len(charts) == 0 {
		s.log.DebugContext(ctx, "No charts to refresh")
		return nil
	}
	s.log.InfoContext(ctx, "Start refreshing charts",
		logger.IntField("chart_count", len(charts)),
		logger.IntField("max_concurrency", cap(s.semaphore)))

	var wg sync.WaitGroup
	for i := range charts {
		if !utils.ShouldContinue(ctx, s.log) {
			break
		}
		saved := &charts[i]
		s.semaphore <- struct{}{}
		wg.Add(1)
		utils.GoSafe(s.log, func() {
			defer wg.Done()
			defer func() { <-s.semaphore }()
			if err := s.refresh(ctx, saved); err != nil {
				s.log.ErrorContext(ctx, "Failed to refresh chart",
					logger.ErrorField(err),
					logger.StringField("chart_id", saved.ID))
			}
		})
	}
	wg.Wait()
	return nil
}

func (s *schedulerService) RefreshChart(ctx context.Context, id string) error {
	saved, err := s.chartRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	return s.refresh(ctx, saved)
}

// refresh rebuilds saved, records the attempt and moves its schedule forward. The
// schedule advances even when the rebuild fails so a broken chart does not block the queue.
func (s *schedulerService) refresh(ctx context.Context, saved *model.SavedChart) (err error) {
	defer func() { metrics.ScheduledRefresh(err) }()

	history := &model.ChartRefreshHistory{
		ChartID:   saved.ID,
		Status:    model.RefreshStatusRunning,
		StartedAt: s.now(),
	}
	if err := s.chartRepo.CreateRefreshHistory(ctx, history); err != nil {
		return fmt.Errorf("failed to create refresh history: %w", err)
	}

	timeout := s.cfg.Scheduler.TimeoutDuration
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	buildCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	cfg, buildErr := s.chartService.Rebuild(buildCtx, saved)

	now := s.now()
	history.CompletedAt = &now
	if buildErr != nil {
		history.Status = model.RefreshStatusFailed
		history.Error = buildErr.Error()
	} else {
		history.Status = model.RefreshStatusCompleted
		saved.Config = cfg
		saved.LastRefreshedAt = &now
	}
	if saved.RefreshCron != "" {
		schedule, perr := refreshCronParser.Parse(saved.RefreshCron)
		if perr != nil {
			s.log.WarnContext(ctx, "Invalid refresh cron on saved chart",
				logger.ErrorField(perr),
				logger.StringField("chart_id", saved.ID))
			saved.RefreshCron = ""
			saved.NextRefreshAt = nil
		} else {
			saved.NextRefreshAt = utils.ToPointer(schedule.Next(now))
		}
	}

	err = s.unitOfWork.Run(func(opts ...utils.DBOption) error {
		if err := s.chartRepo.Update(ctx, saved, opts...); err != nil {
			return fmt.Errorf("failed to update chart: %w", err)
		}
		if err := s.chartRepo.UpdateRefreshHistory(ctx, history, opts...); err != nil {
			return fmt.Errorf("failed to update refresh history: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	if buildErr != nil {
		return buildErr
	}
	s.log.InfoContext(ctx, "Chart refreshed",
		logger.StringField("chart_id", saved.ID),
		logger.Field("next_refresh_at", saved.NextRefreshAt))
	return nil
}
