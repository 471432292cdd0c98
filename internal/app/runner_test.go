package app

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeService struct {
	name     string
	startErr error
	block    bool
	stopped  atomic.Bool
}

func (s *fakeService) Name() string { return s.name }

func (s *fakeService) Start(ctx context.Context) error {
	if s.block {
		<-ctx.Done()
		return nil
	}
	return s.startErr
}

func (s *fakeService) Stop(ctx context.Context) error {
	s.stopped.Store(true)
	return nil
}

func TestRunnerStopsAllServicesOnFailure(t *testing.T) {
	failing := &fakeService{name: "http", startErr: errors.New("bind failed")}
	blocking := &fakeService{name: "scheduler", block: true}

	err := NewRunner(failing, blocking).Run(context.Background(), time.Second, zap.NewNop().Sugar())
	require.EqualError(t, err, "http: bind failed")
	require.True(t, failing.stopped.Load())
	require.True(t, blocking.stopped.Load())
}

func TestRunnerCancelReturnsNil(t *testing.T) {
	blocking := &fakeService{name: "http", block: true}
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	err := NewRunner(blocking).Run(ctx, time.Second, nil)
	require.NoError(t, err)
	require.True(t, blocking.stopped.Load())
}

func TestRunnerWithoutServices(t *testing.T) {
	require.Error(t, NewRunner().Run(context.Background(), time.Second, nil))
	require.Error(t, RunWithOptions(nil, Options{}))
}

func TestNewSchedulerServiceValidation(t *testing.T) {
	_, err := NewSchedulerService(nil, "")
	require.Error(t, err)
}

func TestRunnerStopsInReverseOrder(t *testing.T) {
	var order []string
	first := &orderedService{fakeService: fakeService{name: "http", block: true}, stops: &order}
	second := &orderedService{fakeService: fakeService{name: "scheduler", block: true}, stops: &order}
	runner := NewRunner(first, nil, second)
	require.Equal(t, []string{"http", "scheduler"}, runner.Names())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, runner.Run(ctx, time.Second, nil))
	require.Equal(t, []string{"scheduler", "http"}, order)
}

type orderedService struct {
	fakeService
	stops *[]string
}

func (s *orderedService) Stop(ctx context.Context) error {
	*s.stops = append(*s.stops, s.name)
	return nil
}

func TestParseMode(t *testing.T) {
	mode, err := ParseMode("")
	require.NoError(t, err)
	require.Equal(t, ModeAll, mode)

	mode, err = ParseMode(" Worker ")
	require.NoError(t, err)
	require.Equal(t, ModeWorker, mode)

	_, err = ParseMode("cron")
	require.Error(t, err)
}

func TestNormalizeOptionsDefaults(t *testing.T) {
	opts := normalizeOptions(Options{})
	require.Equal(t, ModeAll, opts.Mode)
	require.Equal(t, 10*time.Second, opts.ShutdownTimeout)
	require.NotNil(t, opts.Logger)
}

func TestHTTPServiceStopCancelsBaseContext(t *testing.T) {
	svc := NewHTTPService("127.0.0.1:0", nil)
	require.NoError(t, svc.baseCtx.Err())
	require.NoError(t, svc.Stop(context.Background()))
	require.ErrorIs(t, svc.baseCtx.Err(), context.Canceled)
}

func TestHTTPServiceStartInvalidAddr(t *testing.T) {
	svc := NewHTTPService("256.0.0.1:-1", nil)
	require.Error(t, svc.Start(context.Background()))
}
