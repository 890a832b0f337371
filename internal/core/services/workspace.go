package services

import (
	"context"
	"sync"
	"time"

	"github.com/comitanigiacomo/kanso-diet/internal/core/domain"
)

// Workspace owns the stored state shared by every service. All
// read-modify-write cycles run under its lock, so there is one logical writer
// even though HTTP requests arrive concurrently.
type Workspace struct {
	repo domain.StateRepository
	loc  *time.Location
	now  func() time.Time

	mu sync.Mutex
}

func NewWorkspace(repo domain.StateRepository, loc *time.Location) *Workspace {
	if loc == nil {
		loc = time.UTC
	}
	return &Workspace{
		repo: repo,
		loc:  loc,
		now:  time.Now,
	}
}

// SetClock replaces the wall clock. Used by tests.
func (w *Workspace) SetClock(now func() time.Time) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.now = now
}

func (w *Workspace) Location() *time.Location {
	return w.loc
}

func (w *Workspace) clock() time.Time {
	return w.now().In(w.loc)
}

func (w *Workspace) today() string {
	return domain.DateOf(w.now(), w.loc)
}

// activeDay loads the stored day and reconciles it against the clock and the
// current goals, persisting the result only when it changed. Callers must
// hold the lock.
func (w *Workspace) activeDay(ctx context.Context) (*domain.ActiveDay, error) {
	goals, err := w.repo.LoadGoals(ctx)
	if err != nil {
		return nil, err
	}

	stored, err := w.repo.LoadActiveDay(ctx)
	if err != nil {
		return nil, err
	}

	day := domain.Reconcile(stored, w.today(), goals)
	if day != stored {
		if err := w.repo.SaveActiveDay(ctx, day); err != nil {
			return nil, err
		}
	}

	return day, nil
}
