// Package usecase implements the business logic for target catalog operations.
package usecase

import (
	"context"
	"fmt"

	"treasure_backend/internal/feature/target/domain"
	"treasure_backend/internal/feature/target/domain/entity"
)

// TargetRepository abstracts the read-only target catalog.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider.
type TargetRepository interface {
	Targets() []entity.Target
	Target(id string) (entity.Target, bool)
}

// TargetUsecase provides business logic for target lookups.
type TargetUsecase struct {
	repo TargetRepository
}

// NewTargetUsecase creates a new TargetUsecase with the given repository.
func NewTargetUsecase(r TargetRepository) *TargetUsecase {
	return &TargetUsecase{repo: r}
}

// ListTargets returns every target in catalog order.
func (u *TargetUsecase) ListTargets(ctx context.Context) ([]entity.Target, error) {
	return u.repo.Targets(), nil
}

// GetTarget returns the target with the given id or domain.ErrTargetNotFound.
func (u *TargetUsecase) GetTarget(ctx context.Context, id string) (entity.Target, error) {
	t, ok := u.repo.Target(id)
	if !ok {
		return entity.Target{}, fmt.Errorf("%w: %q", domain.ErrTargetNotFound, id)
	}
	return t, nil
}
