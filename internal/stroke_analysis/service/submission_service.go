package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/GoSim-25-26J-441/stroke-coach/internal/stroke_analysis/domain"
	"github.com/GoSim-25-26J-441/stroke-coach/internal/stroke_analysis/repository"
)

// Analyzer is the backend call the submission flow depends on.
type Analyzer interface {
	Analyze(ctx context.Context, req domain.AnalysisRequest) (*domain.AnalysisResult, error)
}

// SubmissionService runs one upload from validation to handoff.
type SubmissionService struct {
	analyzer    Analyzer
	store       repository.ResultStore
	locks       repository.SessionLock
	callTimeout time.Duration
}

// NewSubmissionService wires the analyzer to a handoff store and session locks.
// The locks must live at least LockTTL(AnalyzeTimeout) unless WithCallTimeout
// changes the window.
func NewSubmissionService(analyzer Analyzer, store repository.ResultStore, locks repository.SessionLock) *SubmissionService {
	return &SubmissionService{
		analyzer:    analyzer,
		store:       store,
		locks:       locks,
		callTimeout: AnalyzeTimeout,
	}
}

// WithCallTimeout bounds the backend call and handoff write of each
// submission. Pair it with session locks of LockTTL(d).
func (s *SubmissionService) WithCallTimeout(d time.Duration) *SubmissionService {
	if d > 0 {
		s.callTimeout = d
	}
	return s
}

// Submit validates req, calls the backend while holding the session lock and
// stores the result for the result view. A request without a video never
// reaches the backend. An empty sessionID skips the lock.
func (s *SubmissionService) Submit(ctx context.Context, sessionID string, req domain.AnalysisRequest) (*domain.Handoff, error) {
	logger := NewLogger(ctx)

	if err := req.Validate(); err != nil {
		if errors.Is(err, domain.ErrMissingFile) {
			recordMissingFile()
		}
		logger.LogWarnf("submit", "rejected: %v", err)
		return nil, err
	}

	if sessionID != "" {
		token, ok, err := s.locks.Acquire(ctx, sessionID)
		if err != nil {
			logger.LogError("submit", err)
			return nil, fmt.Errorf("acquire session lock: %w", err)
		}
		if !ok {
			recordInflightRejection()
			logger.LogWarnf("submit", "session %s already has an analysis running", sessionID)
			return nil, domain.ErrSubmissionInFlight
		}
		defer func() {
			if err := s.locks.Release(context.WithoutCancel(ctx), sessionID, token); err != nil {
				logger.LogError("submit", err)
			}
		}()
	}

	// Locks live LockTTL(callTimeout), longer than this window.
	callCtx, cancel := context.WithTimeout(ctx, s.callTimeout)
	defer cancel()

	recordSubmission()
	result, err := s.analyzer.Analyze(callCtx, req)
	if err != nil {
		return nil, err
	}

	h := &domain.Handoff{SessionID: sessionID, Result: *result}
	if err := s.store.Put(callCtx, h); err != nil {
		logger.LogError("submit", err)
		return nil, fmt.Errorf("store result: %w", err)
	}
	logger.LogInfof("submit", "stored handoff %s for %s", h.ID, req.StudentName)
	return h, nil
}

// Result loads a handed-off analysis for the session that submitted it.
// Handoffs belonging to another session are reported as not found.
func (s *SubmissionService) Result(ctx context.Context, sessionID, handoffID string) (*domain.AnalysisResult, error) {
	handoffID = strings.TrimSpace(handoffID)
	if handoffID == "" {
		return nil, domain.ErrResultNotFound
	}
	h, err := s.store.Get(ctx, handoffID)
	if err != nil {
		return nil, err
	}
	if h.SessionID != sessionID {
		NewLogger(ctx).LogWarnf("result", "handoff %s requested from another session", handoffID)
		return nil, domain.ErrResultNotFound
	}
	return &h.Result, nil
}
