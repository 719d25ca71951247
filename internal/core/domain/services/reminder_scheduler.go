package services

import (
	"sort"
	"sync"
	"time"

	"bistro/internal/core/domain/model/kernel"
)

// Reminder protocol defaults.
const (
	// DefaultMaxReminders is how many times an unacknowledged order may trigger
	// a staff alert before it goes silent for manual follow-up.
	DefaultMaxReminders = 3
	// DefaultReminderInterval is the fixed spacing between two alerts for the
	// same order.
	DefaultReminderInterval = 30 * time.Second
	// DefaultDismissCooldown is how long a staff dismissal suppresses new
	// alerts without consuming the remaining budget.
	DefaultDismissCooldown = 30 * time.Second
)

// ReminderAlert is an attention-required signal for one unacknowledged order.
// ShownCount includes the alert being emitted.
type ReminderAlert struct {
	OrderID    kernel.UUID
	Ref        string
	ShownCount int
}

// ReminderConfig tunes the reminder protocol.
type ReminderConfig struct {
	MaxReminders int
	Interval     time.Duration
	Cooldown     time.Duration
}

// DefaultReminderConfig returns the production reminder protocol settings.
func DefaultReminderConfig() ReminderConfig {
	return ReminderConfig{
		MaxReminders: DefaultMaxReminders,
		Interval:     DefaultReminderInterval,
		Cooldown:     DefaultDismissCooldown,
	}
}

// reminderEntry is the per-order bookkeeping of the reminder protocol.
type reminderEntry struct {
	orderID        kernel.UUID
	ref            string
	trackedSince   time.Time
	shownCount     int
	lastShown      time.Time
	dismissedUntil time.Time
}

// ReminderScheduler decides, for the set of unacknowledged orders, whether to
// surface an attention-required alert to staff.
//
// Protocol, evaluated on every Tick:
//  1. Orders that left the unacknowledged set are dropped via Untrack.
//  2. An order never alerts more than MaxReminders times; it stays tracked for
//     manual follow-up but goes silent.
//  3. A dismissal suppresses alerts until its cool-down expires. It does not
//     reset the count: the budget is consumed whether staff acted or merely
//     closed the alert, so the subsystem can never degrade into infinite nagging.
//  4. Only one alert is surfaced at a time system-wide; when several orders are
//     unacknowledged, the oldest alerts first (FIFO).
//
// Acknowledge clears the active slot and immediately evaluates the next-oldest
// order, bypassing the tick interval so staff are not left waiting.
//
// The scheduler is the single owner of all reminder state. Every operation takes
// the internal lock, so a dismissal and an in-flight tick serialize: a tick
// arriving just after a dismissal observes the cool-down and cannot resurrect
// the alert that was just closed.
//
// The now parameter is injected on every operation, keeping the scheduler
// deterministic and directly testable; the cron layer passes wall-clock time.
type ReminderScheduler struct {
	mu      sync.Mutex
	cfg     ReminderConfig
	entries map[kernel.UUID]*reminderEntry

	// active is the order currently holding the single system-wide alert slot,
	// nil when no alert is up.
	active *kernel.UUID
}

// NewReminderScheduler creates a scheduler with the given protocol settings.
// Non-positive settings fall back to their defaults.
func NewReminderScheduler(cfg ReminderConfig) *ReminderScheduler {
	defaults := DefaultReminderConfig()
	if cfg.MaxReminders <= 0 {
		cfg.MaxReminders = defaults.MaxReminders
	}
	if cfg.Interval <= 0 {
		cfg.Interval = defaults.Interval
	}
	if cfg.Cooldown <= 0 {
		cfg.Cooldown = defaults.Cooldown
	}

	return &ReminderScheduler{
		cfg:     cfg,
		entries: make(map[kernel.UUID]*reminderEntry),
	}
}

// Track starts reminder bookkeeping for a newly placed (or re-seeded) order.
// Tracking an already tracked order is a no-op so that startup re-seeding
// cannot reset a live count.
func (s *ReminderScheduler) Track(orderID kernel.UUID, ref string, since time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[orderID]; ok {
		return
	}

	s.entries[orderID] = &reminderEntry{
		orderID:      orderID,
		ref:          ref,
		trackedSince: since,
	}
}

// Untrack drops an order from reminder bookkeeping, releasing the alert slot
// if that order holds it. Called when an order leaves the unacknowledged set.
func (s *ReminderScheduler) Untrack(orderID kernel.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, orderID)
	if s.active != nil && s.active.IsEqual(orderID) {
		s.active = nil
	}
}

// TrackedCount returns the number of orders under reminder bookkeeping,
// including those whose budget is exhausted.
func (s *ReminderScheduler) TrackedCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.entries)
}

// Tick evaluates the reminder protocol once and returns the alert to surface,
// or nil when nothing is due.
func (s *ReminderScheduler) Tick(now time.Time) *ReminderAlert {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active != nil {
		entry, ok := s.entries[*s.active]
		switch {
		case !ok:
			// Holder disappeared without Untrack; free the slot.
			s.active = nil
		case s.eligible(entry, now, true):
			return s.emit(entry, now)
		case entry.shownCount >= s.cfg.MaxReminders && now.Sub(entry.lastShown) >= s.cfg.Interval:
			// Budget spent and the last alert has aged out; free the slot so
			// the next-oldest order gets its turn.
			s.active = nil
		default:
			return nil
		}
	}

	return s.selectNext(now, true)
}

// Dismiss records that staff closed the alert for an order without acting on
// it. The cool-down starts, the remaining budget is untouched, and the alert
// slot is released synchronously so an in-flight tick cannot re-show the alert
// before the cool-down expires.
func (s *ReminderScheduler) Dismiss(orderID kernel.UUID, now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[orderID]
	if !ok {
		return
	}

	entry.dismissedUntil = now.Add(s.cfg.Cooldown)
	if s.active != nil && s.active.IsEqual(orderID) {
		s.active = nil
	}
}

// Acknowledge records that staff confirmed an order. Its reminder state is
// discarded and the next-oldest unacknowledged order is evaluated immediately,
// bypassing the tick interval (cool-downs and budgets still apply).
// Returns the follow-up alert to surface, or nil.
func (s *ReminderScheduler) Acknowledge(orderID kernel.UUID, now time.Time) *ReminderAlert {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, orderID)
	if s.active != nil && s.active.IsEqual(orderID) {
		s.active = nil
	}

	if s.active != nil {
		return nil
	}

	return s.selectNext(now, false)
}

// selectNext picks the oldest eligible order and emits its alert.
// Caller must hold the lock and have cleared or verified the active slot.
func (s *ReminderScheduler) selectNext(now time.Time, respectInterval bool) *ReminderAlert {
	if s.active != nil {
		return nil
	}

	candidates := make([]*reminderEntry, 0, len(s.entries))
	for _, entry := range s.entries {
		if s.eligible(entry, now, respectInterval) {
			candidates = append(candidates, entry)
		}
	}
	if len(candidates) == 0 {
		return nil
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].trackedSince.Equal(candidates[j].trackedSince) {
			return candidates[i].ref < candidates[j].ref
		}
		return candidates[i].trackedSince.Before(candidates[j].trackedSince)
	})

	return s.emit(candidates[0], now)
}

// eligible reports whether an entry may alert at the given time.
// Caller must hold the lock.
func (s *ReminderScheduler) eligible(entry *reminderEntry, now time.Time, respectInterval bool) bool {
	if entry.shownCount >= s.cfg.MaxReminders {
		return false
	}
	if now.Before(entry.dismissedUntil) {
		return false
	}
	if respectInterval && !entry.lastShown.IsZero() && now.Sub(entry.lastShown) < s.cfg.Interval {
		return false
	}
	return true
}

// emit consumes one unit of the entry's budget and hands it the alert slot.
// Caller must hold the lock.
func (s *ReminderScheduler) emit(entry *reminderEntry, now time.Time) *ReminderAlert {
	entry.shownCount++
	entry.lastShown = now
	id := entry.orderID
	s.active = &id

	return &ReminderAlert{
		OrderID:    entry.orderID,
		Ref:        entry.ref,
		ShownCount: entry.shownCount,
	}
}
