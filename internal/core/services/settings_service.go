package services

import (
	"context"

	"github.com/comitanigiacomo/kanso-diet/internal/core/domain"
)

type SettingsService struct {
	ws *Workspace
}

func NewSettingsService(ws *Workspace) *SettingsService {
	return &SettingsService{ws: ws}
}

func (s *SettingsService) Goals(ctx context.Context) (domain.DailyGoals, error) {
	s.ws.mu.Lock()
	defer s.ws.mu.Unlock()

	return s.ws.repo.LoadGoals(ctx)
}

// UpdateGoals replaces the goals and patches the active day to match.
func (s *SettingsService) UpdateGoals(ctx context.Context, goals domain.DailyGoals) (domain.DailyGoals, error) {
	if err := goals.Validate(); err != nil {
		return domain.DailyGoals{}, err
	}

	s.ws.mu.Lock()
	defer s.ws.mu.Unlock()

	if err := s.ws.repo.SaveGoals(ctx, goals); err != nil {
		return domain.DailyGoals{}, err
	}

	if _, err := s.ws.activeDay(ctx); err != nil {
		return domain.DailyGoals{}, err
	}

	return goals, nil
}

func (s *SettingsService) Preferences(ctx context.Context) (domain.Preferences, error) {
	s.ws.mu.Lock()
	defer s.ws.mu.Unlock()

	return s.ws.repo.LoadPreferences(ctx)
}

func (s *SettingsService) UpdatePreferences(ctx context.Context, prefs domain.Preferences) (domain.Preferences, error) {
	if err := prefs.Validate(); err != nil {
		return domain.Preferences{}, err
	}

	s.ws.mu.Lock()
	defer s.ws.mu.Unlock()

	if err := s.ws.repo.SavePreferences(ctx, prefs); err != nil {
		return domain.Preferences{}, err
	}
	return prefs, nil
}
