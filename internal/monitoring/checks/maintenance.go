package checks

import (
	"context"
	"time"

	"github.com/charlesng35/codeshelf/internal/monitoring"
)

// RunReporter exposes the outcome of the most recent background job run.
type RunReporter interface {
	LastRun() (time.Time, error)
}

// Maintenance reports the duplicate cleaner as degraded when its last run failed. A cleaner
// that has not run yet is considered healthy.
func Maintenance(reporter RunReporter) monitoring.Check {
	return monitoring.NewCheck("maintenance", func(ctx context.Context) monitoring.ProbeResult {
		if reporter == nil {
			return monitoring.ProbeResult{Status: monitoring.StatusUp, Details: "maintenance disabled"}
		}

		at, err := reporter.LastRun()
		switch {
		case at.IsZero():
			return monitoring.ProbeResult{Status: monitoring.StatusUp, Details: "pending first run"}
		case err != nil:
			return monitoring.ProbeResult{
				Status:  monitoring.StatusDegraded,
				Details: "last run at " + at.UTC().Format(time.RFC3339) + " failed: " + err.Error(),
			}
		default:
			return monitoring.ProbeResult{Status: monitoring.StatusUp}
		}
	})
}
