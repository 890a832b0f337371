package services

import (
	"context"

	"github.com/comitanigiacomo/kanso-diet/internal/core/domain"
)

type HistoryService struct {
	ws *Workspace
}

func NewHistoryService(ws *Workspace) *HistoryService {
	return &HistoryService{ws: ws}
}

// List returns the archive newest first.
func (s *HistoryService) List(ctx context.Context) (domain.Archive, error) {
	s.ws.mu.Lock()
	defer s.ws.mu.Unlock()

	history, err := s.ws.repo.LoadHistory(ctx)
	if err != nil {
		return nil, err
	}
	return history.Sorted(), nil
}

func (s *HistoryService) Get(ctx context.Context, id string) (*domain.ArchivedDay, error) {
	history, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	day, ok := history.Find(id)
	if !ok {
		return nil, domain.ErrArchiveNotFound
	}
	return &day, nil
}

// Delete removes an archived day. Unknown ids are a no-op.
func (s *HistoryService) Delete(ctx context.Context, id string) error {
	s.ws.mu.Lock()
	defer s.ws.mu.Unlock()

	history, err := s.ws.repo.LoadHistory(ctx)
	if err != nil {
		return err
	}

	if _, ok := history.Find(id); !ok {
		return nil
	}

	return s.ws.repo.SaveHistory(ctx, history.Delete(id))
}
