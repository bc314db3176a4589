package jobs

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"fooddelivery/internal/core/application/usecases/queries"
)

type MockDeliveryStatsHandler struct{ mock.Mock }

func (m *MockDeliveryStatsHandler) Handle(
	ctx context.Context,
	query queries.GetDeliveryStatsQuery,
) (queries.DeliveryStatsResponse, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(queries.DeliveryStatsResponse), args.Error(1)
}

type MockJob struct{ mock.Mock }

func (m *MockJob) Start() error {
	return m.Called().Error(0)
}

func (m *MockJob) Stop() {
	m.Called()
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newGauges() (prometheus.Gauge, prometheus.Gauge) {
	return prometheus.NewGauge(prometheus.GaugeOpts{Name: "available"}),
		prometheus.NewGauge(prometheus.GaugeOpts{Name: "active"})
}

func TestDeliveryStatsJob_RefreshSetsGauges(t *testing.T) {
	handler := &MockDeliveryStatsHandler{}
	handler.On("Handle", mock.Anything, mock.Anything).
		Return(queries.DeliveryStatsResponse{AvailableDrivers: 3, ActiveDeliveries: 2}, nil).
		Once()
	available, active := newGauges()

	job := NewDeliveryStatsJob(handler, available, active, discardLogger())
	job.refresh(t.Context())

	assert.InDelta(t, 3, testutil.ToFloat64(available), 0)
	assert.InDelta(t, 2, testutil.ToFloat64(active), 0)
	handler.AssertExpectations(t)
}

func TestDeliveryStatsJob_RefreshKeepsGaugesOnError(t *testing.T) {
	handler := &MockDeliveryStatsHandler{}
	handler.On("Handle", mock.Anything, mock.Anything).
		Return(queries.DeliveryStatsResponse{}, errors.New("connection refused")).
		Once()
	available, active := newGauges()
	available.Set(5)
	active.Set(1)

	job := NewDeliveryStatsJob(handler, available, active, discardLogger())
	job.refresh(t.Context())

	assert.InDelta(t, 5, testutil.ToFloat64(available), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(active), 0)
}

func TestDeliveryStatsJob_StartRefreshesImmediately(t *testing.T) {
	handler := &MockDeliveryStatsHandler{}
	handler.On("Handle", mock.Anything, mock.Anything).
		Return(queries.DeliveryStatsResponse{AvailableDrivers: 1}, nil)
	available, active := newGauges()

	job := NewDeliveryStatsJob(handler, available, active, discardLogger())
	require.NoError(t, job.Start())
	job.Stop()

	assert.InDelta(t, 1, testutil.ToFloat64(available), 0)
}

func TestJobManager_StartAllStopsStartedJobsOnFailure(t *testing.T) {
	first := &MockJob{}
	second := &MockJob{}
	first.On("Start").Return(nil).Once()
	first.On("Stop").Return().Once()
	second.On("Start").Return(errors.New("bad schedule")).Once()

	jm := &JobManager{}
	jm.Add("first", first)
	jm.Add("second", second)

	err := jm.StartAll()

	require.ErrorContains(t, err, "failed to start second job")
	first.AssertExpectations(t)
	second.AssertExpectations(t)
	second.AssertNotCalled(t, "Stop")
}

func TestJobManager_StopAllInReverseOrder(t *testing.T) {
	var stopped []string
	first := &MockJob{}
	second := &MockJob{}
	first.On("Stop").Run(func(mock.Arguments) { stopped = append(stopped, "first") }).Return()
	second.On("Stop").Run(func(mock.Arguments) { stopped = append(stopped, "second") }).Return()

	jm := &JobManager{}
	jm.Add("first", first)
	jm.Add("second", second)
	jm.StopAll()

	assert.Equal(t, []string{"second", "first"}, stopped)
}
