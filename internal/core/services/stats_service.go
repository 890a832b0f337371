package services

import (
	"context"

	"github.com/comitanigiacomo/kanso-diet/internal/core/domain"
)

type StatsService struct {
	ws *Workspace
}

func NewStatsService(ws *Workspace) *StatsService {
	return &StatsService{ws: ws}
}

// GetWeeklyBalance compares archived calories with their goals over the
// requested window. A zero EndDate means today.
func (s *StatsService) GetWeeklyBalance(ctx context.Context, input domain.StatsInput) (*domain.WeeklyBalance, error) {
	s.ws.mu.Lock()
	defer s.ws.mu.Unlock()

	history, err := s.ws.repo.LoadHistory(ctx)
	if err != nil {
		return nil, err
	}

	if input.EndDate.IsZero() {
		input.EndDate = s.ws.clock()
	}
	if input.Location == nil {
		input.Location = s.ws.loc
	}

	return domain.BuildBalance(history, input), nil
}
