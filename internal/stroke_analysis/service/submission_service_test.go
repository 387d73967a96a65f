package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/GoSim-25-26J-441/stroke-coach/internal/stroke_analysis/domain"
	"github.com/GoSim-25-26J-441/stroke-coach/internal/stroke_analysis/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAnalyzer struct {
	mu       sync.Mutex
	calls    int
	last     domain.AnalysisRequest
	deadline time.Time
	result   *domain.AnalysisResult
	err      error
	started  chan struct{}
	release  chan struct{}
	hang     bool // block until ctx is done
}

func (f *fakeAnalyzer) Analyze(ctx context.Context, req domain.AnalysisRequest) (*domain.AnalysisResult, error) {
	f.mu.Lock()
	f.calls++
	f.last = req
	f.deadline, _ = ctx.Deadline()
	f.mu.Unlock()

	if f.started != nil {
		f.started <- struct{}{}
	}
	if f.hang {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if f.release != nil {
		<-f.release
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func (f *fakeAnalyzer) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func okResult() *domain.AnalysisResult {
	return &domain.AnalysisResult{
		Student: "Ana",
		Stroke:  "backhand",
		Suggestions: domain.Suggestions{
			DoingWell: []string{"Early preparation"},
			WorkOn:    []string{},
		},
	}
}

func validRequest() domain.AnalysisRequest {
	return domain.AnalysisRequest{
		StudentName: "  Ana ",
		StrokeType:  "Backhand",
		Video:       testVideo("video"),
	}
}

func newTestService(a Analyzer) (*SubmissionService, *repository.MemoryStore) {
	store := repository.NewMemoryStore(time.Minute, time.Minute)
	return NewSubmissionService(a, store, store), store
}

func TestSubmit_Success(t *testing.T) {
	analyzer := &fakeAnalyzer{result: okResult()}
	svc, store := newTestService(analyzer)
	ctx := context.Background()

	h, err := svc.Submit(ctx, "sess-1", validRequest())
	require.NoError(t, err)
	assert.NotEmpty(t, h.ID)
	assert.Equal(t, *okResult(), h.Result)

	assert.Equal(t, "Ana", analyzer.last.StudentName)
	assert.Equal(t, domain.StrokeBackhand, analyzer.last.StrokeType)

	got, err := svc.Result(ctx, "sess-1", h.ID)
	require.NoError(t, err)
	assert.Equal(t, *okResult(), *got)
	assert.Equal(t, 1, store.Len())

	_, ok, err := store.Acquire(ctx, "sess-1")
	require.NoError(t, err)
	assert.True(t, ok, "lock is released after a successful submission")
}

func TestSubmit_MissingFileNeverCallsBackend(t *testing.T) {
	ResetMetrics()
	analyzer := &fakeAnalyzer{result: okResult()}
	svc, _ := newTestService(analyzer)

	cases := map[string]*domain.VideoFile{
		"nil video":   nil,
		"empty file":  {Filename: "clip.mp4", Size: 0, Reader: nil},
		"no filename": {Size: 10, Reader: testVideo("0123456789").Reader},
	}
	for name, video := range cases {
		t.Run(name, func(t *testing.T) {
			req := validRequest()
			req.Video = video
			_, err := svc.Submit(context.Background(), "sess-1", req)
			assert.ErrorIs(t, err, domain.ErrMissingFile)
		})
	}
	assert.Equal(t, 0, analyzer.callCount())
	assert.Equal(t, int64(3), GetMetrics().MissingFile)
}

func TestSubmit_MissingFileReportedBeforeOtherProblems(t *testing.T) {
	svc, _ := newTestService(&fakeAnalyzer{result: okResult()})

	_, err := svc.Submit(context.Background(), "", domain.AnalysisRequest{StrokeType: "smash"})
	assert.ErrorIs(t, err, domain.ErrMissingFile)
}

func TestSubmit_ValidationErrors(t *testing.T) {
	analyzer := &fakeAnalyzer{result: okResult()}
	svc, _ := newTestService(analyzer)

	req := validRequest()
	req.StudentName = "   "
	_, err := svc.Submit(context.Background(), "sess-1", req)
	assert.ErrorIs(t, err, domain.ErrMissingStudentName)

	req = validRequest()
	req.StrokeType = "smash"
	_, err = svc.Submit(context.Background(), "sess-1", req)
	assert.ErrorIs(t, err, domain.ErrInvalidStroke)

	assert.Equal(t, 0, analyzer.callCount())
}

func TestSubmit_EmptyStrokeDefaultsToForehand(t *testing.T) {
	analyzer := &fakeAnalyzer{result: okResult()}
	svc, _ := newTestService(analyzer)

	req := validRequest()
	req.StrokeType = ""
	_, err := svc.Submit(context.Background(), "", req)
	require.NoError(t, err)
	assert.Equal(t, domain.StrokeForehand, analyzer.last.StrokeType)
}

func TestSubmit_BackendFailureReleasesLock(t *testing.T) {
	analyzer := &fakeAnalyzer{err: &UpstreamError{StatusCode: 500}}
	svc, store := newTestService(analyzer)
	ctx := context.Background()

	_, err := svc.Submit(ctx, "sess-1", validRequest())
	assert.ErrorIs(t, err, domain.ErrRequestFailed)
	assert.Equal(t, 0, store.Len())

	_, ok, err := store.Acquire(ctx, "sess-1")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestSubmit_OneOutstandingPerSession(t *testing.T) {
	ResetMetrics()
	analyzer := &fakeAnalyzer{
		result:  okResult(),
		started: make(chan struct{}, 1),
		release: make(chan struct{}),
	}
	svc, _ := newTestService(analyzer)
	ctx := context.Background()

	done := make(chan error, 1)
	go func() {
		_, err := svc.Submit(ctx, "sess-1", validRequest())
		done <- err
	}()
	<-analyzer.started

	_, err := svc.Submit(ctx, "sess-1", validRequest())
	assert.ErrorIs(t, err, domain.ErrSubmissionInFlight)
	assert.Equal(t, int64(1), GetMetrics().InflightRejections)

	close(analyzer.release)
	require.NoError(t, <-done)

	analyzer.started = nil
	_, err = svc.Submit(ctx, "sess-1", validRequest())
	assert.NoError(t, err, "session can submit again once the first call resolves")
}

type failingStore struct{}

func (failingStore) Put(ctx context.Context, h *domain.Handoff) error {
	return errors.New("store unavailable")
}

func (failingStore) Get(ctx context.Context, id string) (*domain.Handoff, error) {
	return nil, domain.ErrResultNotFound
}

func (failingStore) Delete(ctx context.Context, id string) error { return nil }

func TestSubmit_StoreFailure(t *testing.T) {
	locks := repository.NewMemoryStore(time.Minute, time.Minute)
	svc := NewSubmissionService(&fakeAnalyzer{result: okResult()}, failingStore{}, locks)

	_, err := svc.Submit(context.Background(), "sess-1", validRequest())
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrRequestFailed)
}

func TestResult_NotFound(t *testing.T) {
	svc, _ := newTestService(&fakeAnalyzer{})

	_, err := svc.Result(context.Background(), "sess-1", "")
	assert.ErrorIs(t, err, domain.ErrResultNotFound)

	_, err = svc.Result(context.Background(), "sess-1", "missing")
	assert.ErrorIs(t, err, domain.ErrResultNotFound)
}

func TestResult_OtherSessionNotFound(t *testing.T) {
	svc, _ := newTestService(&fakeAnalyzer{result: okResult()})
	ctx := context.Background()

	h, err := svc.Submit(ctx, "sess-a", validRequest())
	require.NoError(t, err)

	_, err = svc.Result(ctx, "sess-b", h.ID)
	assert.ErrorIs(t, err, domain.ErrResultNotFound)
	_, err = svc.Result(ctx, "", h.ID)
	assert.ErrorIs(t, err, domain.ErrResultNotFound)

	got, err := svc.Result(ctx, "sess-a", h.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana", got.Student)
}

func TestLockTTL_OutlivesCallWindow(t *testing.T) {
	assert.Equal(t, 3*time.Minute+30*time.Second, LockTTL(3*time.Minute))
	assert.Equal(t, LockTTL(AnalyzeTimeout), LockTTL(0))
	assert.Greater(t, LockTTL(time.Second), time.Second)
}

func TestSubmit_BackendCallIsBounded(t *testing.T) {
	analyzer := &fakeAnalyzer{result: okResult()}
	svc, _ := newTestService(analyzer)
	svc.WithCallTimeout(2 * time.Second)

	before := time.Now()
	_, err := svc.Submit(context.Background(), "sess-1", validRequest())
	require.NoError(t, err)

	require.False(t, analyzer.deadline.IsZero(), "backend call carries a deadline")
	assert.WithinDuration(t, before.Add(2*time.Second), analyzer.deadline, time.Second)
}

func TestSubmit_HungCallEndsBeforeLockExpires(t *testing.T) {
	const callTimeout = 50 * time.Millisecond
	analyzer := &fakeAnalyzer{hang: true, started: make(chan struct{}, 1)}
	store := repository.NewMemoryStore(time.Minute, LockTTL(callTimeout))
	svc := NewSubmissionService(analyzer, store, store).WithCallTimeout(callTimeout)
	ctx := context.Background()

	done := make(chan error, 1)
	go func() {
		_, err := svc.Submit(ctx, "sess-1", validRequest())
		done <- err
	}()
	<-analyzer.started

	_, err := svc.Submit(ctx, "sess-1", validRequest())
	assert.ErrorIs(t, err, domain.ErrSubmissionInFlight)

	err = <-done
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 1, analyzer.callCount())

	analyzer.hang = false
	analyzer.result = okResult()
	_, err = svc.Submit(ctx, "sess-1", validRequest())
	require.NoError(t, err, "lock is released once the bounded call ends")
	assert.Equal(t, 2, analyzer.callCount())
}
