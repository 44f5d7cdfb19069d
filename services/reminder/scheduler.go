package reminder

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/prathameshp107/ClinLabOps-sub003/models/channel"
)

// Scheduler runs the scan-and-notify cycle once per day at the configured
// wall-clock time and on demand through RunCycle. Both paths execute the same
// code; there is no separate test mode.
//
// Overlapping runs are possible (an admin trigger during the daily run) and
// are safe only because the Store enforces the idempotency key — the
// scheduler itself takes no lock.
type Scheduler struct {
	cfg        Config
	scanner    *Scanner
	resolver   *Resolver
	dispatcher *Dispatcher
	log        *zap.Logger

	now      func() time.Time
	loc      *time.Location
	running  atomic.Bool
	stopCh   chan struct{}
	stopOnce sync.Once
}

func New(db *gorm.DB, email channel.Channel, cfg Config, log *zap.Logger) (*Scheduler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("reminder config: %w", err)
	}
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	store := NewStore(db, log, cfg.CallTimeout)
	return &Scheduler{
		cfg:        cfg,
		scanner:    NewScanner(db, log, loc),
		resolver:   NewResolver(db, log, cfg.FallbackRecipient, cfg.CallTimeout),
		dispatcher: NewDispatcher(db, store, email, log, cfg.CallTimeout),
		log:        log,
		now:        time.Now,
		loc:        loc,
		stopCh:     make(chan struct{}),
	}, nil
}

// Store exposes the notification store for read paths (the notifications API).
func (s *Scheduler) Store() *Store { return s.dispatcher.store }

// Start launches the daily timer loop.
func (s *Scheduler) Start() {
	go s.loop()
	s.log.Info("reminder scheduler started",
		zap.String("fire_at", s.cfg.FireAt),
		zap.String("timezone", s.cfg.Timezone),
		zap.Int("offsets", len(s.cfg.Offsets)))
}

// Stop halts the timer loop. A cycle already in flight runs to completion.
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() { close(s.stopCh) })
}

// Running reports whether a cycle is currently executing.
func (s *Scheduler) Running() bool { return s.running.Load() }

func (s *Scheduler) loop() {
	for {
		next := s.nextFire(s.now())
		timer := time.NewTimer(next.Sub(s.now()))
		select {
		case <-s.stopCh:
			timer.Stop()
			return
		case <-timer.C:
			if err := s.RunCycle(context.Background()); err != nil {
				s.log.Error("reminder cycle aborted", zap.Error(err))
			}
		}
	}
}

// nextFire returns the next occurrence of the configured fire time strictly
// after now.
func (s *Scheduler) nextFire(now time.Time) time.Time {
	hour, minute, _ := s.cfg.fireTime()
	now = now.In(s.loc)
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, s.loc)
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

// RunCycle executes one full scan-and-notify pass over every configured
// offset and entity kind. Unit failures (a failed scan, an unresolvable
// recipient, a failed insert or send) are logged and isolated; the only error
// returned is exhaustion of the cycle deadline.
func (s *Scheduler) RunCycle(ctx context.Context) error {
	s.running.Store(true)
	defer s.running.Store(false)
	cyclesTotal.Inc()

	if s.cfg.CycleTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.CycleTimeout)
		defer cancel()
	}

	started := s.now()
	s.log.Info("reminder cycle started")

	var created int
	for _, off := range s.cfg.Offsets {
		for _, kind := range Kinds {
			if err := ctx.Err(); err != nil {
				return fmt.Errorf("reminder cycle deadline exceeded: %w", err)
			}
			created += s.processPair(ctx, started, off, kind)
		}
	}

	s.log.Info("reminder cycle finished",
		zap.Int("notifications_created", created),
		zap.Duration("took", s.now().Sub(started)))
	return nil
}

func (s *Scheduler) processPair(ctx context.Context, now time.Time, off Offset, kind Kind) int {
	scanCtx := ctx
	if s.cfg.CallTimeout > 0 {
		var cancel context.CancelFunc
		scanCtx, cancel = context.WithTimeout(ctx, s.cfg.CallTimeout)
		defer cancel()
	}

	entities, err := s.scanner.Scan(scanCtx, now, off, kind)
	if err != nil {
		scanFailures.WithLabelValues(string(kind)).Inc()
		s.log.Error("deadline scan failed, skipping pair",
			zap.String("kind", string(kind)),
			zap.Int("offset_days", off.Days),
			zap.Error(err))
		return 0
	}

	var created int
	for _, ent := range entities {
		recipients := s.resolver.Resolve(ctx, ent)
		for _, recipient := range recipients {
			if s.dispatcher.Deliver(ctx, ent, recipient, off) {
				created++
			}
		}
	}
	return created
}
