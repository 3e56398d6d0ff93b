package scheduler

import (
	"context"
	"fmt"
	"io/fs"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mrlokans/openbible/internal/config"
)

const (
	CheckUnchanged = "unchanged"
	CheckChanged   = "changed"
	CheckError     = "error"
)

// Status strings reported to /health.
const (
	StatusNotWatched = "not watched"
	StatusUnchanged  = "unchanged"
	StatusChanged    = "changed on disk; restart to reload"
)

// CheckObserver is notified of every drift check outcome.
type CheckObserver interface {
	ObserveWatchCheck(result string)
}

// WatchStatus is a point-in-time view of the watcher.
type WatchStatus struct {
	Running     bool
	Drifted     bool
	LastChecked time.Time
	LastError   error
	NextRun     *time.Time
}

// CorpusWatchScheduler periodically compares the corpus on disk with the
// snapshot taken when the catalog was loaded. It only reports drift; the
// loaded catalog is never replaced.
type CorpusWatchScheduler struct {
	fsys     fs.FS
	schedule string
	logger   *zap.Logger
	observer CheckObserver

	cron       *cron.Cron
	entryID    cron.EntryID
	mu         sync.RWMutex
	isRunning  bool
	cancelFunc context.CancelFunc

	baseline    string
	drifted     bool
	lastChecked time.Time
	lastErr     error
}

type WatchOption func(*CorpusWatchScheduler)

func WithLogger(logger *zap.Logger) WatchOption {
	return func(s *CorpusWatchScheduler) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func WithObserver(observer CheckObserver) WatchOption {
	return func(s *CorpusWatchScheduler) {
		s.observer = observer
	}
}

// NewCorpusWatchScheduler creates a watcher for the corpus served by fsys.
func NewCorpusWatchScheduler(fsys fs.FS, cfg config.CorpusWatch, opts ...WatchOption) *CorpusWatchScheduler {
	s := &CorpusWatchScheduler{
		fsys:     fsys,
		schedule: cfg.Schedule,
		logger:   zap.NewNop(),
		cron:     cron.New(cron.WithParser(parser)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Baseline records the current corpus snapshot as the reference state.
// Call it right after the catalog has been loaded.
func (s *CorpusWatchScheduler) Baseline(ctx context.Context) error {
	digest, err := Snapshot(ctx, s.fsys)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.baseline = digest
	s.drifted = false
	s.lastErr = nil
	s.mu.Unlock()
	return nil
}

// Start schedules the drift check. A missing baseline is taken first.
func (s *CorpusWatchScheduler) Start(ctx context.Context) error {
	if err := ValidateCronSchedule(s.schedule); err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", s.schedule, err)
	}

	s.mu.RLock()
	hasBaseline := s.baseline != ""
	s.mu.RUnlock()
	if !hasBaseline {
		if err := s.Baseline(ctx); err != nil {
			return err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	var cancelCtx context.Context
	cancelCtx, s.cancelFunc = context.WithCancel(ctx)

	entryID, err := s.cron.AddFunc(s.schedule, func() {
		_, _ = s.RunNow(cancelCtx)
	})
	if err != nil {
		s.cancelFunc()
		s.cancelFunc = nil
		return fmt.Errorf("failed to schedule corpus check: %w", err)
	}
	s.entryID = entryID

	s.cron.Start()
	s.isRunning = true

	nextRun, _ := GetNextRunTime(s.schedule)
	s.logger.Info("Corpus watch scheduler: started",
		zap.String("schedule", s.schedule),
		zap.String("description", GetCronDescription(s.schedule)),
		zap.Timep("next_run", nextRun))

	go func() {
		<-cancelCtx.Done()
		s.Stop()
	}()

	return nil
}

// Stop stops the scheduler and waits for a running check to return.
func (s *CorpusWatchScheduler) Stop() {
	_ = s.StopContext(context.Background())
}

// StopContext stops the scheduler and interrupts a running check. It waits
// for the check to return until ctx is done, then gives up with ctx.Err().
func (s *CorpusWatchScheduler) StopContext(ctx context.Context) error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = false
	cancel := s.cancelFunc
	s.cancelFunc = nil
	s.cron.Remove(s.entryID)
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}

	// A running check takes the lock to record its result, so wait unlocked.
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		s.logger.Warn("Corpus watch scheduler: gave up waiting for the running check", zap.Error(ctx.Err()))
		return ctx.Err()
	}

	s.logger.Info("Corpus watch scheduler: stopped")
	return nil
}

// RunNow compares the corpus with the baseline immediately and reports
// whether it has drifted.
func (s *CorpusWatchScheduler) RunNow(ctx context.Context) (bool, error) {
	digest, err := Snapshot(ctx, s.fsys)
	if err != nil && ctx.Err() != nil {
		s.logger.Debug("Corpus watch: check interrupted", zap.Error(err))
		return s.Drifted(), err
	}

	s.mu.Lock()
	s.lastChecked = time.Now()
	s.lastErr = err
	wasDrifted := s.drifted
	if err == nil {
		s.drifted = digest != s.baseline
	}
	drifted := s.drifted
	s.mu.Unlock()

	switch {
	case err != nil:
		s.logger.Error("Corpus watch: check failed", zap.Error(err))
		s.observe(CheckError)
		return drifted, err
	case drifted && !wasDrifted:
		s.logger.Warn("Corpus watch: translations changed on disk; restart to reload")
	case !drifted && wasDrifted:
		s.logger.Info("Corpus watch: translations on disk match the loaded catalog again")
	}

	if drifted {
		s.observe(CheckChanged)
	} else {
		s.observe(CheckUnchanged)
	}
	return drifted, nil
}

func (s *CorpusWatchScheduler) observe(result string) {
	if s.observer != nil {
		s.observer.ObserveWatchCheck(result)
	}
}

// IsRunning returns whether the scheduler is active
func (s *CorpusWatchScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// Drifted reports whether the last check found the corpus changed.
func (s *CorpusWatchScheduler) Drifted() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.drifted
}

// GetNextRunTime returns when the next check will occur
func (s *CorpusWatchScheduler) GetNextRunTime() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return nil
	}

	for _, entry := range s.cron.Entries() {
		if entry.ID == s.entryID {
			t := entry.Next
			return &t
		}
	}
	return nil
}

func (s *CorpusWatchScheduler) Status() WatchStatus {
	next := s.GetNextRunTime()

	s.mu.RLock()
	defer s.mu.RUnlock()
	return WatchStatus{
		Running:     s.isRunning,
		Drifted:     s.drifted,
		LastChecked: s.lastChecked,
		LastError:   s.lastErr,
		NextRun:     next,
	}
}

// CorpusStatus summarises the watcher state for health checks.
func (s *CorpusWatchScheduler) CorpusStatus() string {
	st := s.Status()
	switch {
	case st.Drifted:
		return StatusChanged
	case st.LastError != nil:
		return "error: " + st.LastError.Error()
	case !st.Running:
		return StatusNotWatched
	default:
		return StatusUnchanged
	}
}
