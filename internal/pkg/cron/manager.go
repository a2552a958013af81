package cron

import (
	"Inkstone/internal/job"
	log "log/slog"

	"github.com/robfig/cron/v3"
)

type Manager struct {
	engine          *cron.Cron
	counterFlushJob *job.CounterFlushJob
	mediaCleanJob   *job.MediaCleanJob
	cachePurgeJob   *job.CachePurgeJob
}

func NewCronManager(counterFlushJob *job.CounterFlushJob, mediaCleanJob *job.MediaCleanJob, cachePurgeJob *job.CachePurgeJob) *Manager {
	return &Manager{
		engine:          cron.New(cron.WithSeconds()),
		counterFlushJob: counterFlushJob,
		mediaCleanJob:   mediaCleanJob,
		cachePurgeJob:   cachePurgeJob,
	}
}

// RegisterJobs 注册定时任务
func (s *Manager) RegisterJobs() error {
	if _, err := s.engine.AddJob("0 */5 * * * *", s.counterFlushJob); err != nil {
		return err
	}
	// 每天凌晨四点清理临时媒体
	if _, err := s.engine.AddJob("0 0 4 * * *", s.mediaCleanJob); err != nil {
		return err
	}
	// 每小时清理一次进程内缓存
	if _, err := s.engine.AddJob("0 0 * * * *", s.cachePurgeJob); err != nil {
		return err
	}
	return nil
}

func (s *Manager) Start() {
	log.Info("Cron 定时任务引擎启动")
	s.engine.Start()
}

func (s *Manager) Stop() {
	log.Info("Cron 定时任务引擎停止")
	s.engine.Stop()
}
