package usecases

import (
	"context"
	"fmt"

	"github.com/bizblocks/bizblocks/internal/application/catalog/dto"
	"github.com/bizblocks/bizblocks/internal/domain/entitlement"
	"github.com/bizblocks/bizblocks/internal/shared/logger"
)

// OwnershipLoader resolves which blocks a user owns.
type OwnershipLoader interface {
	Load(ctx context.Context, userID, businessID uint) (map[string]entitlement.Ownership, error)
}

type GetResolvedBlocksQuery struct {
	// UserID is 0 for anonymous callers.
	UserID     uint
	BusinessID uint
}

type GetResolvedBlocksUseCase struct {
	snapshots SnapshotLoader
	ownership OwnershipLoader
	currency  string
	logger    logger.Interface
}

func NewGetResolvedBlocksUseCase(
	snapshots SnapshotLoader,
	ownership OwnershipLoader,
	currency string,
	logger logger.Interface,
) *GetResolvedBlocksUseCase {
	return &GetResolvedBlocksUseCase{
		snapshots: snapshots,
		ownership: ownership,
		currency:  currency,
		logger:    logger,
	}
}

func (uc *GetResolvedBlocksUseCase) Execute(ctx context.Context, query GetResolvedBlocksQuery) ([]*dto.ResolvedBlockDTO, error) {
	snapshot, err := uc.snapshots.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog snapshot: %w", err)
	}

	owned, err := uc.ownership.Load(ctx, query.UserID, query.BusinessID)
	if err != nil {
		uc.logger.Errorw("failed to load ownership", "error", err, "user_id", query.UserID)
		return nil, fmt.Errorf("failed to load ownership: %w", err)
	}

	blocks := snapshot.Blocks()
	result := make([]*dto.ResolvedBlockDTO, 0, len(blocks))
	for _, block := range blocks {
		result = append(result, dto.ToResolvedBlockDTO(block, owned[block.Name], uc.currency))
	}

	return result, nil
}
