package monitoring_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/charlesng35/codeshelf/internal/monitoring"
)

func staticCheck(name string, status monitoring.ProbeStatus) monitoring.Check {
	return monitoring.NewCheck(name, func(context.Context) monitoring.ProbeResult {
		return monitoring.ProbeResult{Status: status}
	})
}

func TestHealthManagerEvaluate(t *testing.T) {
	t.Parallel()

	manager := monitoring.NewHealthManager(time.Second)
	manager.RegisterReadiness(staticCheck("database", monitoring.StatusUp))
	manager.RegisterReadiness(staticCheck("maintenance", monitoring.StatusDown))

	report := manager.EvaluateReadiness(context.Background())
	require.False(t, report.Success)
	require.Equal(t, monitoring.StatusDown, report.Status)
	require.Len(t, report.Checks, 2)
	require.Equal(t, "database", report.Checks[0].Component)
	require.Equal(t, "maintenance", report.Checks[1].Component)
}

func TestHealthManagerEmptyIsUp(t *testing.T) {
	t.Parallel()

	report := monitoring.NewHealthManager(0).EvaluateLiveness(context.Background())
	require.True(t, report.Success)
	require.Equal(t, monitoring.StatusUp, report.Status)
	require.NotNil(t, report.Checks)
}

func TestHealthManagerIgnoresUnnamedChecks(t *testing.T) {
	t.Parallel()

	manager := monitoring.NewHealthManager(0)
	manager.RegisterLiveness(staticCheck("", monitoring.StatusDown))
	require.True(t, manager.EvaluateLiveness(context.Background()).Success)
}

func TestHealthManagerRecoversPanics(t *testing.T) {
	t.Parallel()

	manager := monitoring.NewHealthManager(0)
	manager.RegisterLiveness(monitoring.NewCheck("boom", func(context.Context) monitoring.ProbeResult {
		panic("exploded")
	}))
	manager.RegisterLiveness(monitoring.NewCheck("blank", func(context.Context) monitoring.ProbeResult {
		return monitoring.ProbeResult{}
	}))

	report := manager.EvaluateLiveness(context.Background())
	require.Equal(t, monitoring.StatusDown, report.Status)
	require.Equal(t, "boom", report.Checks[0].Component)
	require.Equal(t, "exploded", report.Checks[0].Details)
	require.Equal(t, monitoring.StatusDown, report.Checks[1].Status)
}

func TestHealthManagerAppliesTimeout(t *testing.T) {
	t.Parallel()

	manager := monitoring.NewHealthManager(10 * time.Millisecond)
	manager.RegisterReadiness(monitoring.NewCheck("slow", func(ctx context.Context) monitoring.ProbeResult {
		<-ctx.Done()
		return monitoring.ResultFromError("slow", ctx.Err(), 0)
	}))

	report := manager.EvaluateReadiness(context.Background())
	require.Equal(t, monitoring.StatusDegraded, report.Status)
	require.False(t, report.Success)
}

func TestMergeReportsTakesWorstStatus(t *testing.T) {
	t.Parallel()

	live := monitoring.HealthReport{Checks: []monitoring.ProbeResult{{Component: "process", Status: monitoring.StatusUp}}}
	ready := monitoring.HealthReport{Checks: []monitoring.ProbeResult{{Component: "maintenance", Status: monitoring.StatusDegraded}}}

	merged := monitoring.MergeReports(live, ready)
	require.Equal(t, monitoring.StatusDegraded, merged.Status)
	require.False(t, merged.Success)
	require.Len(t, merged.Checks, 2)
}

func TestResultFromError(t *testing.T) {
	t.Parallel()

	require.Equal(t, monitoring.StatusUp, monitoring.ResultFromError("db", nil, -time.Second).Status)
	require.Equal(t, monitoring.StatusDown, monitoring.ResultFromError("db", errors.New("refused"), 0).Status)
	require.Equal(t, monitoring.StatusDegraded, monitoring.ResultFromError("db", context.Canceled, 0).Status)
}
