package cron

import (
	"ChatCV/internal/job"
	log "log/slog"

	"github.com/robfig/cron/v3"
)

// Manager 持有 cron 引擎与会话清理任务，调度表达式带秒字段
type Manager struct {
	engine       *cron.Cron
	sweepSpec    string
	sessionSweep *job.SessionSweepJob
}

func NewCronManager(sweepSpec string, sessionSweep *job.SessionSweepJob) *Manager {
	return &Manager{
		engine:       cron.New(cron.WithSeconds()),
		sweepSpec:    sweepSpec,
		sessionSweep: sessionSweep,
	}
}

// InitCron 注册任务并启动引擎，表达式非法时不启动
func InitCron(mgr *Manager) error {
	if err := mgr.RegisterJobs(); err != nil {
		log.Error("注册会话清理任务失败", "spec", mgr.sweepSpec, "err", err)
		return err
	}
	mgr.Start()
	return nil
}

// RegisterJobs 注册定时任务
func (s *Manager) RegisterJobs() error {
	id, err := s.engine.AddJob(s.sweepSpec, s.sessionSweep)
	if err != nil {
		return err
	}
	log.Info("会话清理任务已注册", "spec", s.sweepSpec, "entry", id)
	return nil
}

func (s *Manager) Start() {
	log.Info("Cron 定时任务引擎启动", "jobs", len(s.engine.Entries()))
	s.engine.Start()
}

// Stop 等待正在执行的任务结束
func (s *Manager) Stop() {
	<-s.engine.Stop().Done()
	log.Info("Cron 定时任务引擎停止")
}
