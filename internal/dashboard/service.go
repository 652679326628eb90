// Package dashboard aggregates employee and unit statistics for the landing
// page.
package dashboard

import (
	"context"

	"github.com/asnhub/asndash/internal/logging"
)

type Service struct {
	repo Repository
	log  logging.Logger
}

func NewService(repo Repository, log logging.Logger) *Service {
	return &Service{repo: repo, log: log.With("component", "dashboard")}
}

func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	stats, err := s.repo.Collect(ctx)
	if err != nil {
		s.log.Error(ctx, "stats collection failed", "error", err)
		return nil, err
	}
	return stats, nil
}
