// Package scheduler runs the ingestion adapters on cron schedules and hands
// new rows to the notifier.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/jaideeprtx/nj-trades/internal/config"
	"github.com/jaideeprtx/nj-trades/internal/ingest"
	"github.com/jaideeprtx/nj-trades/internal/metrics"
)

// HoldingsUpdated is broadcast after every 13F run.
var HoldingsUpdated = map[string]string{"message": "13F holdings updated"}

// Notifier receives the rows a cycle created.
type Notifier interface {
	Broadcast(source ingest.Source, data any)
}

type job struct {
	spec       string
	adapter    ingest.Adapter
	runAtStart bool
}

// Scheduler owns the cron loop. Runs of the same adapter may overlap.
type Scheduler struct {
	cron         *cron.Cron
	jobs         []job
	notifier     Notifier
	initialDelay time.Duration
	log          *zap.Logger

	mu       sync.Mutex // guards stopping and wg.Add
	stopping bool
	wg       sync.WaitGroup
	cancel   context.CancelFunc
	timer  *time.Timer
}

// New creates an idle scheduler.
func New(notifier Notifier, initialDelay time.Duration, log *zap.Logger) *Scheduler {
	return &Scheduler{
		cron:         cron.New(),
		notifier:     notifier,
		initialDelay: initialDelay,
		log:          log,
	}
}

// FromConfig registers the three adapters with the configured specs. The
// insider and congress adapters also run once shortly after Start.
func FromConfig(cfg config.ScheduleConfig, notifier Notifier, log *zap.Logger, insider, congress, sec13f ingest.Adapter) (*Scheduler, error) {
	s := New(notifier, cfg.InitialDelay, log)
	for _, j := range []job{
		{cfg.Insider, insider, true},
		{cfg.Congress, congress, true},
		{cfg.SEC13F, sec13f, false},
	} {
		if err := s.Add(j.spec, j.adapter, j.runAtStart); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Add schedules a on a standard five-field cron spec.
func (s *Scheduler) Add(spec string, a ingest.Adapter, runAtStart bool) error {
	if _, err := cron.ParseStandard(spec); err != nil {
		return fmt.Errorf("schedule %s %q: %w", a.Source(), spec, err)
	}
	s.jobs = append(s.jobs, job{spec: spec, adapter: a, runAtStart: runAtStart})
	return nil
}

// Start begins the cron loop. Jobs run with a context derived from ctx.
func (s *Scheduler) Start(ctx context.Context) error {
	ctx, s.cancel = context.WithCancel(ctx)

	for _, j := range s.jobs {
		a := j.adapter
		if _, err := s.cron.AddFunc(j.spec, func() { s.track(ctx, a) }); err != nil {
			s.cancel()
			return fmt.Errorf("schedule %s: %w", a.Source(), err)
		}
		s.log.Info("scheduled adapter", zap.String("source", string(a.Source())), zap.String("spec", j.spec))
	}
	s.cron.Start()

	s.timer = time.AfterFunc(s.initialDelay, func() {
		for _, j := range s.jobs {
			if j.runAtStart {
				s.track(ctx, j.adapter)
			}
		}
	})
	return nil
}

// Stop prevents new runs and waits for the running ones to return.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	s.stopping = true
	s.mu.Unlock()

	if s.timer != nil {
		s.timer.Stop()
	}
	// stop crons so no new ones start
	stopped := s.cron.Stop()
	if s.cancel != nil {
		s.cancel()
	}
	// wait for existing runs to finish
	<-stopped.Done()
	s.wg.Wait()
}

func (s *Scheduler) track(ctx context.Context, a ingest.Adapter) {
	s.mu.Lock()
	if s.stopping {
		s.mu.Unlock()
		return
	}
	s.wg.Add(1)
	s.mu.Unlock()
	defer s.wg.Done()
	if ctx.Err() != nil {
		return
	}
	_, _ = s.Run(ctx, a)
}

// Run performs one cycle of a. Failures are logged and returned; new rows
// are broadcast. 13F runs always broadcast a refresh notice.
func (s *Scheduler) Run(ctx context.Context, a ingest.Adapter) (res ingest.Result, err error) {
	src := a.Source()
	started := time.Now()
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%s adapter panicked: %v", src, r)
			s.log.Error("adapter panicked", zap.String("source", string(src)), zap.Any("panic", r))
		}
		metrics.ObserveFetch(string(src), started, res.Created, res.Dropped, err)
	}()

	res, err = a.Fetch(ctx)
	if err != nil {
		s.log.Error("fetch failed", zap.String("source", string(src)), zap.Error(err),
			zap.Duration("took", time.Since(started)))
	} else {
		s.log.Info("fetch complete", zap.String("source", string(src)),
			zap.Int("fetched", res.Fetched), zap.Int("created", res.Created),
			zap.Duration("took", time.Since(started)))
	}

	switch {
	case src == ingest.Source13F:
		s.notifier.Broadcast(src, HoldingsUpdated)
	case err == nil && res.Created > 0:
		s.notifier.Broadcast(src, res.Records)
	}
	return res, err
}
