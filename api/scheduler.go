/*
scheduler.go - Automated history retention

PURPOSE:
  Every API calculation is recorded in the history table. The scheduler
  periodically deletes records older than the retention window so the
  database does not grow without bound.

DESIGN:
  - Runs a background goroutine with configurable check interval
  - Each sweep deletes calculations created before now - Retention
  - A Retention of zero keeps history forever (scheduler does not start)

CONFIGURATION:
  - CheckInterval: How often to sweep (default: 1 hour)
  - Retention: Age after which records are removed (default: 90 days)
  - Enabled: Whether scheduler is active (default: true)

USAGE:
  scheduler := NewRetentionScheduler(store)
  scheduler.Start()
  // ... later
  scheduler.Stop()

SEE ALSO:
  - store/sqlite/sqlite.go: PruneCalculations
  - cmd/server/main.go: -history-retention and -scheduler-interval flags
*/
package api

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/warp/payroll-engine/store/sqlite"
)

// DefaultRetention is how long calculation history is kept.
const DefaultRetention = 90 * 24 * time.Hour

// RetentionScheduler prunes old calculation history.
type RetentionScheduler struct {
	Store         *sqlite.Store
	CheckInterval time.Duration
	Retention     time.Duration
	Enabled       bool

	// Now is the clock used to compute the cutoff.
	Now func() time.Time

	ticker *time.Ticker
	stop   chan bool
	wg     sync.WaitGroup
	mu     sync.Mutex
}

// NewRetentionScheduler creates a new scheduler.
func NewRetentionScheduler(store *sqlite.Store) *RetentionScheduler {
	return &RetentionScheduler{
		Store:         store,
		CheckInterval: 1 * time.Hour,
		Retention:     DefaultRetention,
		Enabled:       true,
		Now:           time.Now,
		stop:          make(chan bool),
	}
}

// Start begins the scheduler.
func (rs *RetentionScheduler) Start() {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	if !rs.Enabled || rs.Retention <= 0 {
		log.Println("[Scheduler] Disabled, not starting")
		return
	}

	rs.ticker = time.NewTicker(rs.CheckInterval)
	rs.wg.Add(1)

	go rs.run()

	log.Printf("[Scheduler] Started with check interval %v, retention %v", rs.CheckInterval, rs.Retention)
}

// Stop stops the scheduler.
func (rs *RetentionScheduler) Stop() {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	if rs.ticker != nil {
		rs.ticker.Stop()
		close(rs.stop)
		rs.wg.Wait()
		rs.ticker = nil
		log.Println("[Scheduler] Stopped")
	}
}

func (rs *RetentionScheduler) run() {
	defer rs.wg.Done()

	// Run immediately on start
	rs.Sweep(context.Background())

	for {
		select {
		case <-rs.ticker.C:
			rs.Sweep(context.Background())
		case <-rs.stop:
			return
		}
	}
}

// Sweep deletes history older than the retention window and returns the
// number of removed records.
func (rs *RetentionScheduler) Sweep(ctx context.Context) int64 {
	cutoff := rs.Now().Add(-rs.Retention)

	removed, err := rs.Store.PruneCalculations(ctx, cutoff)
	if err != nil {
		log.Printf("[Scheduler] Error pruning history: %v", err)
		return 0
	}
	if removed > 0 {
		log.Printf("[Scheduler] Pruned %d calculations older than %s", removed, cutoff.Format(time.RFC3339))
	}
	return removed
}
