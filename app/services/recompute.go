package services

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/mrisho2348/matimbwa-ss-sub000/app/events"
	"github.com/mrisho2348/matimbwa-ss-sub000/app/grading"
	"github.com/mrisho2348/matimbwa-ss-sub000/app/models"
)

// ErrReferenceData is returned when the reference snapshot cannot be loaded;
// the flush aborts without touching stored metrics.
var ErrReferenceData = errors.New("reference data unavailable")

// FlushStats reports the outcome of one flush.
type FlushStats struct {
	// Students recomputed in this flush.
	Students int
	// Failed counts students whose computation errored and was skipped;
	// their previous metrics remain in place.
	Failed int
}

// Partial reports whether some students were skipped.
func (s FlushStats) Partial() bool { return s.Failed > 0 }

const (
	DefaultDebounce    = 250 * time.Millisecond
	DefaultMaxCoalesce = 5 * time.Second
	applyAttempts      = 3
	applyBackoff       = 100 * time.Millisecond
)

type pendingSession struct {
	students map[string]bool
	full     bool
	timer    *time.Timer
	deadline time.Time
}

// Recomputer debounces result-change events per session and recomputes
// metrics and positions. Work for different sessions runs in parallel;
// everything inside one session is serialized by the session lock.
type Recomputer struct {
	store       Store
	bus         *events.Bus
	locks       *SessionLocks
	debounce    time.Duration
	maxCoalesce time.Duration

	mu      sync.Mutex
	pending map[string]*pendingSession

	baseCtx context.Context
}

// NewRecomputer wires the orchestrator. Zero debounce or maxCoalesce pick the
// defaults.
func NewRecomputer(store Store, bus *events.Bus, debounce, maxCoalesce time.Duration) *Recomputer {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if maxCoalesce <= 0 {
		maxCoalesce = DefaultMaxCoalesce
	}
	return &Recomputer{
		store:       store,
		bus:         bus,
		locks:       NewSessionLocks(),
		debounce:    debounce,
		maxCoalesce: maxCoalesce,
		pending:     make(map[string]*pendingSession),
		baseCtx:     context.Background(),
	}
}

// Locks exposes the per-session locks so repository writers serialize with
// flushes of the same session.
func (r *Recomputer) Locks() *SessionLocks { return r.locks }

// Bus returns the change bus mutations publish on.
func (r *Recomputer) Bus() *events.Bus { return r.bus }

// Start consumes change events until ctx is cancelled. Debounced flushes
// begun before cancellation run to completion.
func (r *Recomputer) Start(ctx context.Context) {
	r.mu.Lock()
	r.baseCtx = context.WithoutCancel(ctx)
	r.mu.Unlock()
	ch := r.bus.Subscribe()
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case c, ok := <-ch:
				if !ok {
					return
				}
				r.enqueue(c.SessionID, c.StudentID, false)
			}
		}
	}()
}

// EnqueueSession schedules a debounced whole-session recompute, as after a
// grading-scale edit.
func (r *Recomputer) EnqueueSession(sessionID string) {
	r.enqueue(sessionID, "", true)
}

func (r *Recomputer) enqueue(sessionID, studentID string, full bool) {
	r.mu.Lock()
	p, ok := r.pending[sessionID]
	if !ok {
		p = &pendingSession{
			students: make(map[string]bool),
			deadline: time.Now().Add(r.maxCoalesce),
		}
		r.pending[sessionID] = p
	}
	if full {
		p.full = true
	} else if studentID != "" {
		p.students[studentID] = true
	}

	if p.timer != nil {
		p.timer.Stop()
	}
	if time.Now().After(p.deadline) {
		// Coalescing interval exhausted; fire immediately instead of
		// pushing the flush out again.
		r.mu.Unlock()
		r.fire(sessionID)
		return
	}
	p.timer = time.AfterFunc(r.debounce, func() { r.fire(sessionID) })
	r.mu.Unlock()
}

// fire drains the pending set for a session and flushes it in the background.
func (r *Recomputer) fire(sessionID string) {
	r.mu.Lock()
	p, ok := r.pending[sessionID]
	if !ok {
		r.mu.Unlock()
		return
	}
	delete(r.pending, sessionID)
	if p.timer != nil {
		p.timer.Stop()
	}
	ctx := r.baseCtx
	r.mu.Unlock()

	var ids []string
	if !p.full {
		for id := range p.students {
			ids = append(ids, id)
		}
	}
	go func() {
		if _, err := r.flush(ctx, sessionID, ids); err != nil {
			log.Printf("Recompute flush for session %s failed: %v", sessionID, err)
		}
	}()
}

// Flush synchronously recomputes the whole session, pre-empting any pending
// debounce timer for it. An in-flight flush is not interrupted; this call
// serializes behind it on the session lock.
func (r *Recomputer) Flush(ctx context.Context, sessionID string) (FlushStats, error) {
	r.mu.Lock()
	if p, ok := r.pending[sessionID]; ok {
		if p.timer != nil {
			p.timer.Stop()
		}
		delete(r.pending, sessionID)
	}
	r.mu.Unlock()
	return r.flush(ctx, sessionID, nil)
}

// flush recomputes the given students (nil means all students with results)
// and reranks the session. Metrics and positions are written in a single
// transaction so readers never see a half-updated session.
func (r *Recomputer) flush(ctx context.Context, sessionID string, studentIDs []string) (FlushStats, error) {
	lock := r.locks.Get(sessionID)
	lock.Lock()
	defer lock.Unlock()

	// Derived writes must not feed events back into the debounce loop.
	r.bus.Suppress(sessionID)
	defer r.bus.Release(sessionID)

	var stats FlushStats

	sess, err := r.store.Session(ctx, sessionID)
	if err != nil {
		return stats, err
	}
	snap, err := r.store.Snapshot(ctx)
	if err != nil {
		return stats, errors.Wrap(ErrReferenceData, err.Error())
	}

	allIDs, err := r.store.StudentIDsWithResults(ctx, sessionID)
	if err != nil {
		return stats, err
	}
	if studentIDs == nil {
		studentIDs = allIDs
	}

	// Eligible set before this flush; recomputed students are replaced below.
	entries := make(map[string]grading.RankEntry)
	existing, err := r.store.RankEntries(ctx, sessionID)
	if err != nil {
		return stats, err
	}
	for _, e := range existing {
		entries[e.StudentID] = e
	}
	// Reasons recorded by earlier flushes, for students not touched this time.
	reasons := make(map[string]string)
	oldPositions, err := r.store.Positions(ctx, sessionID)
	if err != nil {
		return stats, err
	}
	for _, p := range oldPositions {
		if p.EligibilityReason != nil {
			reasons[p.StudentID] = *p.EligibilityReason
		}
	}

	var comps []*flushComputation
	for _, studentID := range studentIDs {
		comp, err := r.computeStudent(ctx, snap, sess, studentID)
		if err != nil {
			// Isolated: this student keeps their previous metrics.
			log.Printf("Recompute for student %s in session %s failed: %v", studentID, sessionID, err)
			stats.Failed++
			continue
		}
		stats.Students++
		comps = append(comps, comp)
		delete(entries, studentID)
		delete(reasons, studentID)
		if comp.Metrics != nil {
			if e, ok := comp.rankEntry(); ok {
				entries[studentID] = e
			}
		} else {
			reasons[studentID] = comp.Eligibility.Reason
		}
	}

	ranked := make([]grading.RankEntry, 0, len(entries))
	for _, e := range entries {
		ranked = append(ranked, e)
	}
	var ineligible []grading.Ineligible
	for _, id := range allIDs {
		if _, ok := entries[id]; ok {
			continue
		}
		ineligible = append(ineligible, grading.Ineligible{StudentID: id, Reason: reasons[id]})
	}
	positions := grading.RankSession(sessionID, ranked, ineligible)

	if err := r.apply(ctx, sessionID, comps, positions); err != nil {
		return stats, err
	}
	return stats, nil
}

func (r *Recomputer) computeStudent(ctx context.Context, snap *grading.Snapshot, sess *models.ExamSession, studentID string) (*flushComputation, error) {
	student, err := r.store.Student(ctx, studentID)
	if err != nil {
		return nil, err
	}
	results, err := r.store.Results(ctx, sess.ID, studentID)
	if err != nil {
		return nil, err
	}
	comp, err := snap.ComputeMetrics(sess, student, results)
	if err != nil {
		return nil, err
	}
	return &flushComputation{Computation: comp, student: student}, nil
}

// flushComputation pairs a computation with its student for rank-entry
// construction.
type flushComputation struct {
	*grading.Computation
	student *models.Student
}

// rankEntry builds the ranking key; only active students are ranked.
func (c *flushComputation) rankEntry() (grading.RankEntry, bool) {
	if c.Metrics == nil || c.student.Status != models.StudentActive {
		return grading.RankEntry{}, false
	}
	return grading.RankEntry{
		StudentID:         c.student.ID,
		RegNo:             c.student.RegNo,
		Stream:            c.student.Stream,
		AveragePercentage: c.Metrics.AveragePercentage,
		TotalMarks:        c.Metrics.TotalMarks,
	}, true
}

// apply retries transient storage failures with exponential backoff before
// giving up on the flush.
func (r *Recomputer) apply(ctx context.Context, sessionID string, comps []*flushComputation, positions []models.StudentExamPosition) error {
	plain := make([]*grading.Computation, len(comps))
	for i, c := range comps {
		plain[i] = c.Computation
	}

	backoff := applyBackoff
	var err error
	for attempt := 1; attempt <= applyAttempts; attempt++ {
		err = r.store.Apply(ctx, sessionID, plain, positions)
		if err == nil {
			return nil
		}
		if ctx.Err() != nil || attempt == applyAttempts {
			break
		}
		log.Printf("Flush write for session %s failed (attempt %d/%d): %v", sessionID, attempt, applyAttempts, err)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
	}
	return errors.Wrapf(err, "flush write for session %s", sessionID)
}
