package services

import (
	"testing"

	"github.com/robfig/cron/v3"
)

func TestBuiltInCronExpressionsParse(t *testing.T) {
	// The snapshot fallback path silently loses the job if the built-in
	// expressions stop parsing, so pin them here.
	for _, expr := range []string{defaultSnapshotCron, logCleanupCron} {
		if _, err := cron.ParseStandard(expr); err != nil {
			t.Errorf("built-in cron %q does not parse: %v", expr, err)
		}
	}
}

func TestSchedulerStop_WithoutStart(t *testing.T) {
	s := &Scheduler{}
	s.Stop()
}
