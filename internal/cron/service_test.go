package cron

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/maisonvelour/storefront-backend/pkg/logger"
	"github.com/maisonvelour/storefront-backend/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLock struct {
	acquired   bool
	releases   int
	acquireErr error
}

func (f *fakeLock) Acquire(context.Context) (bool, error) {
	if f.acquireErr != nil {
		return false, f.acquireErr
	}
	if f.acquired {
		return false, nil
	}
	f.acquired = true
	return true, nil
}

func (f *fakeLock) Release(context.Context) error {
	f.acquired = false
	f.releases++
	return nil
}

type testJob struct {
	name string
	err  error
	runs int
}

func (t *testJob) Name() string { return t.name }

func (t *testJob) Run(context.Context) error {
	t.runs++
	return t.err
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "cron-test", Output: io.Discard})
}

func TestRunOnceRunsAllJobsAndJoinsFailures(t *testing.T) {
	ok := &testJob{name: "inventory-alerts"}
	failing := &testJob{name: "activity-retention", err: errors.New("boom")}
	lock := &fakeLock{}
	service, err := NewService(ServiceParams{
		Logger:   testLogger(),
		Registry: NewRegistry(ok, failing),
		Lock:     lock,
	})
	require.NoError(t, err)

	err = service.RunOnce(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "activity-retention: boom")
	assert.Equal(t, 1, ok.runs)
	assert.Equal(t, 1, failing.runs)
	assert.Equal(t, 1, lock.releases)
	assert.False(t, lock.acquired)
}

func TestRunOnceSkipsWhenLockHeld(t *testing.T) {
	job := &testJob{name: "inventory-alerts"}
	service, err := NewService(ServiceParams{
		Logger:   testLogger(),
		Registry: NewRegistry(job),
		Lock:     &fakeLock{acquired: true},
	})
	require.NoError(t, err)

	require.NoError(t, service.RunOnce(context.Background()))
	assert.Zero(t, job.runs)
}

func TestRunOnceSurfacesLockErrors(t *testing.T) {
	service, err := NewService(ServiceParams{
		Logger: testLogger(),
		Lock:   &fakeLock{acquireErr: errors.New("redis down")},
	})
	require.NoError(t, err)

	err = service.RunOnce(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "lock acquire")
}

func TestNewServiceDefaults(t *testing.T) {
	_, err := NewService(ServiceParams{Lock: &fakeLock{}})
	assert.Error(t, err)

	_, err = NewService(ServiceParams{Logger: testLogger()})
	assert.Error(t, err)

	service, err := NewService(ServiceParams{Logger: testLogger(), Lock: &fakeLock{}})
	require.NoError(t, err)
	assert.Equal(t, defaultInterval, service.interval)
	assert.Empty(t, service.registry.Jobs())
}

func TestRunStopsOnContextCancel(t *testing.T) {
	job := &testJob{name: "inventory-alerts"}
	service, err := NewService(ServiceParams{
		Logger:   testLogger(),
		Registry: NewRegistry(job),
		Lock:     &fakeLock{},
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = service.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, job.runs)
}

func TestRunOnceRecordsJobMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	service, err := NewService(ServiceParams{
		Logger: testLogger(),
		Registry: NewRegistry(
			&testJob{name: "inventory-alerts"},
			&testJob{name: "activity-retention", err: errors.New("db gone")},
		),
		Lock:    &fakeLock{},
		Metrics: metrics.NewCronJobMetrics(reg),
	})
	require.NoError(t, err)

	require.Error(t, service.RunOnce(context.Background()))

	successes, err := testutil.GatherAndCount(reg, "velour_cron_job_success_total")
	require.NoError(t, err)
	assert.Equal(t, 1, successes)
	failures, err := testutil.GatherAndCount(reg, "velour_cron_job_failure_total")
	require.NoError(t, err)
	assert.Equal(t, 1, failures)
	durations, err := testutil.GatherAndCount(reg, "velour_cron_job_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 2, durations)
}
