package usage

import "context"

// Service is the usage ledger. It owns UsageReference rows and drives the
// used/unused transitions of the owning file.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// MarkUsed registers one logical consumer of a file. A duplicate triple is a
// conflict, not an upsert: the caller decides whether to treat it as success.
func (s *Service) MarkUsed(ctx context.Context, fileID, usageType string, usageID int64) (*UsageReference, error) {
	return s.repo.MarkUsed(ctx, fileID, usageType, usageID)
}

// MarkUnused drops one consumer and reports how many remain; zero means the
// file is back to unused and eligible for cleanup once it ages out.
func (s *Service) MarkUnused(ctx context.Context, fileID, usageType string, usageID int64) (int64, error) {
	return s.repo.MarkUnused(ctx, fileID, usageType, usageID)
}

// ListByFile returns every active reference for a file.
func (s *Service) ListByFile(ctx context.Context, fileID string) ([]*UsageReference, error) {
	return s.repo.ListByFile(ctx, fileID)
}
