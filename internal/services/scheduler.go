package services

import (
	"github.com/fitforge/fitforge/pkg/logger"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

const (
	defaultSnapshotCron = "0 3 * * *"
	logCleanupCron      = "30 4 * * *"
)

// Scheduler owns the background cron jobs: the nightly pattern snapshot
// refresh and the daily log retention cleanup.
type Scheduler struct {
	cronScheduler *cron.Cron
	db            *gorm.DB
	snapshots     *PatternSnapshotService
	configSvc     *SystemConfigService
}

func NewScheduler(db *gorm.DB, snapshots *PatternSnapshotService) *Scheduler {
	return &Scheduler{
		db:        db,
		snapshots: snapshots,
		configSvc: NewSystemConfigService(db),
	}
}

// Start registers the jobs and begins the cron loop. The snapshot schedule
// is read from system config so operators can move it off peak hours.
func (s *Scheduler) Start() {
	s.cronScheduler = cron.New()

	snapshotExpr := s.configSvc.GetWithDefault("pattern_snapshot_cron", defaultSnapshotCron)
	if _, err := s.cronScheduler.AddFunc(snapshotExpr, s.runSnapshotRefresh); err != nil {
		logger.Errorf("[Scheduler] invalid pattern snapshot cron %q, falling back to %q: %v",
			snapshotExpr, defaultSnapshotCron, err)
		snapshotExpr = defaultSnapshotCron
		if _, err := s.cronScheduler.AddFunc(defaultSnapshotCron, s.runSnapshotRefresh); err != nil {
			logger.Errorf("[Scheduler] failed to add snapshot job: %v", err)
		}
	}

	if _, err := s.cronScheduler.AddFunc(logCleanupCron, s.runLogCleanup); err != nil {
		logger.Errorf("[Scheduler] failed to add log cleanup job: %v", err)
	}

	s.cronScheduler.Start()
	logger.Info().Str("snapshot_cron", snapshotExpr).Msg("[Scheduler] started")
}

func (s *Scheduler) Stop() {
	if s.cronScheduler != nil {
		s.cronScheduler.Stop()
		logger.Info().Msg("[Scheduler] stopped")
	}
}

func (s *Scheduler) runSnapshotRefresh() {
	refreshed, err := s.snapshots.RefreshAll()
	if err != nil {
		logger.Errorf("[Scheduler] pattern snapshot refresh failed: %v", err)
		LogError("scheduler", "pattern_snapshot_refresh", err.Error(), nil, "", "", nil)
		return
	}
	logger.Infof("[Scheduler] refreshed pattern snapshots for %d campaigns", refreshed)
	LogInfo("scheduler", "pattern_snapshot_refresh", "snapshot refresh completed", nil, "", "",
		map[string]int{"campaigns": refreshed})
}

func (s *Scheduler) runLogCleanup() {
	RunLogCleanup(s.db)
}
