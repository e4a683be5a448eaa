package usecases

import (
	"context"
	"fmt"

	"github.com/bizblocks/bizblocks/internal/application/catalog/dto"
	"github.com/bizblocks/bizblocks/internal/domain/catalog"
	"github.com/bizblocks/bizblocks/internal/shared/logger"
)

// ListPricingUseCase lists every stored pricing record and flags the ones
// whose block is missing from the catalog.
type ListPricingUseCase struct {
	source      catalog.Source
	pricingRepo catalog.PricingRepository
	logger      logger.Interface
}

func NewListPricingUseCase(
	source catalog.Source,
	pricingRepo catalog.PricingRepository,
	logger logger.Interface,
) *ListPricingUseCase {
	return &ListPricingUseCase{
		source:      source,
		pricingRepo: pricingRepo,
		logger:      logger,
	}
}

func (uc *ListPricingUseCase) Execute(ctx context.Context) ([]*dto.PricingRecordDTO, error) {
	entries, err := uc.source.Entries(ctx)
	if err != nil {
		uc.logger.Errorw("failed to load catalog entries", "error", err)
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	records, err := uc.pricingRepo.List(ctx)
	if err != nil {
		uc.logger.Errorw("failed to list pricing records", "error", err)
		return nil, fmt.Errorf("failed to list pricing records: %w", err)
	}

	result := make([]*dto.PricingRecordDTO, 0, len(records))
	for _, record := range records {
		result = append(result, dto.ToPricingRecordDTO(record, containsBlock(entries, record.BlockName())))
	}
	return result, nil
}
