package store

import (
	"context"
	"sync"
	"time"

	"roster-app/internal/model"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

type WriterConfig struct {
	MaxRetries   int
	RetryDelay   time.Duration
	WriteTimeout time.Duration
}

func DefaultWriterConfig() WriterConfig {
	return WriterConfig{
		MaxRetries:   3,
		RetryDelay:   time.Second,
		WriteTimeout: 10 * time.Second,
	}
}

// Writer persists roster snapshots one at a time. Only the latest submitted
// snapshot is kept; older pending ones are dropped before they are written.
type Writer struct {
	slot   Slot
	clock  clockwork.Clock
	config WriterConfig

	ctx    context.Context
	cancel context.CancelFunc
	wake   chan struct{}
	wg     sync.WaitGroup

	mu         sync.Mutex
	pending    []model.Team
	hasPending bool
	submitted  uint64
	settled    uint64
	written    uint64
	lastErr    error
	settledCh  chan struct{}
	closed     bool
}

func NewWriter(slot Slot, clock clockwork.Clock, cfg WriterConfig) *Writer {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	ctx, cancel := context.WithCancel(context.Background())
	w := &Writer{
		slot:      slot,
		clock:     clock,
		config:    cfg,
		ctx:       ctx,
		cancel:    cancel,
		wake:      make(chan struct{}, 1),
		settledCh: make(chan struct{}),
	}
	w.wg.Add(1)
	go w.run()
	return w
}

// Submit replaces the pending snapshot and returns without waiting for I/O.
// The snapshot must not be modified afterwards.
func (w *Writer) Submit(teams []model.Team) {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		log.Warn().Msg("roster snapshot submitted after writer close")
		return
	}
	w.pending = teams
	w.hasPending = true
	w.submitted++
	w.mu.Unlock()

	select {
	case w.wake <- struct{}{}:
	default:
	}
}

// Flush waits until every snapshot submitted before the call has been written
// or given up on. It returns the last write error when the latest one failed.
func (w *Writer) Flush(ctx context.Context) error {
	w.mu.Lock()
	target := w.submitted
	for w.settled < target {
		ch := w.settledCh
		w.mu.Unlock()
		select {
		case <-ch:
		case <-ctx.Done():
			return ctx.Err()
		}
		w.mu.Lock()
	}
	defer w.mu.Unlock()
	if w.written < target {
		return w.lastErr
	}
	return nil
}

// LastError reports the most recent failed write, or nil once a later write succeeds.
func (w *Writer) LastError() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lastErr
}

func (w *Writer) Close(ctx context.Context) error {
	err := w.Flush(ctx)

	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return err
	}
	w.closed = true
	w.mu.Unlock()

	w.cancel()
	w.wg.Wait()
	return err
}

func (w *Writer) run() {
	defer w.wg.Done()
	for {
		select {
		case <-w.ctx.Done():
			return
		case <-w.wake:
		}
		w.drain()
	}
}

func (w *Writer) drain() {
	for {
		w.mu.Lock()
		if !w.hasPending {
			w.mu.Unlock()
			return
		}
		snapshot, gen := w.pending, w.submitted
		w.pending = nil
		w.hasPending = false
		w.mu.Unlock()

		err := w.writeWithRetry(snapshot, gen)
		w.settle(gen, err)
	}
}

func (w *Writer) writeWithRetry(teams []model.Team, gen uint64) error {
	payload, err := encodeTeams(teams)
	if err != nil {
		log.Error().Err(err).Uint64("generation", gen).Msg("failed to encode roster snapshot")
		return err
	}
	for attempt := 0; ; attempt++ {
		err = w.write(payload)
		if err == nil {
			log.Debug().Uint64("generation", gen).Int("bytes", len(payload)).Msg("roster snapshot written")
			return nil
		}
		log.Error().
			Err(err).
			Uint64("generation", gen).
			Int("attempt", attempt+1).
			Msg("failed to write roster snapshot")
		if attempt >= w.config.MaxRetries || w.superseded(gen) {
			return err
		}
		select {
		case <-w.clock.After(w.config.RetryDelay):
		case <-w.ctx.Done():
			return err
		}
		if w.superseded(gen) {
			return err
		}
	}
}

func (w *Writer) write(payload []byte) error {
	ctx := w.ctx
	if w.config.WriteTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(w.ctx, w.config.WriteTimeout)
		defer cancel()
	}
	return w.slot.Write(ctx, payload)
}

func (w *Writer) superseded(gen uint64) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.submitted > gen
}

func (w *Writer) settle(gen uint64, err error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.settled = gen
	if err == nil {
		w.written = gen
		w.lastErr = nil
	} else {
		w.lastErr = err
	}
	close(w.settledCh)
	w.settledCh = make(chan struct{})
}
