package interview

import (
	"time"

	"github.com/rs/zerolog/log"

	"github.com/hirelane/interview-server/internal/config"
	"github.com/hirelane/interview-server/session"
)

// Sweeper runs the two background cleanup cadences: a frequent sweep that
// force-expires sessions past their time budget, and an infrequent sweep
// that fully tears down records past the maximum session age. Both go
// through the service's per-session lock, so they can run concurrently with
// the request path without corrupting records.
type Sweeper struct {
	service        *Service
	expiryInterval time.Duration
	maxAgeInterval time.Duration

	stop chan struct{}
	done chan struct{}
}

// NewSweeper creates a sweeper for the given service. It does not start
// sweeping until Start is called; tests drive SweepExpired and SweepMaxAge
// directly instead of waiting on timers.
func NewSweeper(service *Service, cfg config.InterviewConfig) *Sweeper {
	return &Sweeper{
		service:        service,
		expiryInterval: cfg.GetExpirySweepInterval(),
		maxAgeInterval: cfg.GetMaxAgeSweepInterval(),
	}
}

// Start launches the background loop. Calling Start on a running sweeper is
// an error in the caller; the sweeper is not reference-counted.
func (w *Sweeper) Start() {
	w.stop = make(chan struct{})
	w.done = make(chan struct{})

	go w.run()
	log.Info().Dur("expiry_interval", w.expiryInterval).Dur("max_age_interval", w.maxAgeInterval).
		Msg("cleanup sweeper started")
}

// Stop halts the background loop and waits for the in-flight sweep, if any,
// to finish.
func (w *Sweeper) Stop() {
	if w.stop == nil {
		return
	}
	close(w.stop)
	<-w.done
	w.stop = nil
	log.Info().Msg("cleanup sweeper stopped")
}

func (w *Sweeper) run() {
	defer close(w.done)

	expiryTicker := time.NewTicker(w.expiryInterval)
	defer expiryTicker.Stop()
	maxAgeTicker := time.NewTicker(w.maxAgeInterval)
	defer maxAgeTicker.Stop()

	for {
		select {
		case <-w.stop:
			return
		case <-expiryTicker.C:
			if n := w.SweepExpired(); n > 0 {
				log.Info().Int("count", n).Msg("auto-ended interviews past their time budget")
			}
		case <-maxAgeTicker.C:
			if n := w.SweepMaxAge(); n > 0 {
				log.Info().Int("count", n).Msg("tore down sessions past max age")
			}
		}
	}
}

// SweepExpired finalizes every active session whose budget is exhausted.
// It walks a snapshot of all ids and inspects each record only under its
// per-session lock; record state is never read outside that lock. Partial
// results count; the store entry is retained for status queries until the
// max-age sweep or an explicit end removes it. Returns how many sessions
// were expired.
func (w *Sweeper) SweepExpired() int {
	expired := 0
	for _, sessionID := range w.service.repos.Store.IDs() {
		if w.sweepOneExpired(sessionID) {
			expired++
		}
	}
	return expired
}

func (w *Sweeper) sweepOneExpired(sessionID string) (swept bool) {
	// One bad record must not halt the sweep for all others
	defer func() {
		if r := recover(); r != nil {
			log.Error().Str("session_id", sessionID).Interface("panic", r).
				Msg("expiry sweep failed for session")
			swept = false
		}
	}()

	unlock := w.service.sessionLocks.Lock(sessionID)
	defer unlock()

	record, ok := w.service.repos.Store.Get(sessionID)
	if !ok || record.Status != session.StatusActive {
		// Raced with the request path; nothing to do
		return false
	}

	now := w.service.nowTime()
	if !session.Expired(record.TimerStart, record.TimeLimit, now) {
		return false
	}

	w.service.finalize(record, now, session.StatusExpired, endReasonTimeExpired)
	return true
}

// SweepMaxAge fully tears down every record older than the maximum session
// age, whatever its status. This bounds how long an abandoned record may
// linger, independent of the interview time budget. Returns how many
// sessions were removed.
func (w *Sweeper) SweepMaxAge() int {
	removed := 0
	for _, sessionID := range w.service.repos.Store.IDs() {
		if w.sweepOneMaxAge(sessionID) {
			removed++
		}
	}
	return removed
}

func (w *Sweeper) sweepOneMaxAge(sessionID string) (swept bool) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Str("session_id", sessionID).Interface("panic", r).
				Msg("max-age sweep failed for session")
			swept = false
		}
	}()

	unlock := w.service.sessionLocks.Lock(sessionID)
	defer unlock()

	record, ok := w.service.repos.Store.Get(sessionID)
	if !ok {
		return false
	}

	now := w.service.nowTime()
	if now.Sub(record.CreatedAt) < w.service.maxSessionAge {
		return false
	}

	if record.Status == session.StatusActive {
		// Never delete an unfinalized record; its partial results still
		// need a report
		w.service.finalize(record, now, session.StatusExpired, endReasonMaxAge)
	}
	w.service.teardownLocked(sessionID)
	return true
}
