package usecases

import (
	"context"
	"errors"
	"fmt"

	"github.com/bizblocks/bizblocks/internal/application/catalog/dto"
	"github.com/bizblocks/bizblocks/internal/domain/catalog"
	apperrors "github.com/bizblocks/bizblocks/internal/shared/errors"
	"github.com/bizblocks/bizblocks/internal/shared/logger"
	"github.com/bizblocks/bizblocks/internal/shared/utils"
)

type UpsertPricingCommand struct {
	BlockName string
	dto.UpsertPricingRequest
}

type UpsertPricingUseCase struct {
	source      catalog.Source
	pricingRepo catalog.PricingRepository
	logger      logger.Interface
}

func NewUpsertPricingUseCase(
	source catalog.Source,
	pricingRepo catalog.PricingRepository,
	logger logger.Interface,
) *UpsertPricingUseCase {
	return &UpsertPricingUseCase{
		source:      source,
		pricingRepo: pricingRepo,
		logger:      logger,
	}
}

func (uc *UpsertPricingUseCase) Execute(ctx context.Context, cmd UpsertPricingCommand) (*dto.PricingRecordDTO, error) {
	if err := utils.ValidateStruct(cmd.UpsertPricingRequest); err != nil {
		return nil, err
	}

	entries, err := uc.source.Entries(ctx)
	if err != nil {
		uc.logger.Errorw("failed to load catalog entries", "error", err)
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	if !containsBlock(entries, cmd.BlockName) {
		return nil, apperrors.NewNotFoundError("block not found", cmd.BlockName)
	}

	pricingType := catalog.PricingType(cmd.PricingType)

	record, err := uc.pricingRepo.GetByBlockName(ctx, cmd.BlockName)
	if err != nil {
		uc.logger.Errorw("failed to get pricing record", "error", err, "block_name", cmd.BlockName)
		return nil, fmt.Errorf("failed to get pricing record: %w", err)
	}

	if record == nil {
		record, err = catalog.NewPricingRecord(cmd.BlockName, cmd.PriceCents, cmd.MonthlyPriceCents, pricingType, cmd.IsFree)
	} else {
		err = record.Update(cmd.PriceCents, cmd.MonthlyPriceCents, pricingType, cmd.IsFree)
	}
	if err != nil {
		return nil, toPricingValidationError(err)
	}

	if err := uc.pricingRepo.Upsert(ctx, record); err != nil {
		uc.logger.Errorw("failed to upsert pricing record", "error", err, "block_name", cmd.BlockName)
		return nil, fmt.Errorf("failed to save pricing record: %w", err)
	}

	uc.logger.Infow("pricing record saved",
		"block_name", record.BlockName(),
		"pricing_type", record.PricingType(),
		"price_cents", record.PriceCents(),
		"monthly_price_cents", record.MonthlyPriceCents(),
		"is_free", record.IsFree(),
	)

	return dto.ToPricingRecordDTO(record, true), nil
}

func toPricingValidationError(err error) error {
	switch {
	case errors.Is(err, catalog.ErrFreeFlagMismatch),
		errors.Is(err, catalog.ErrInvalidPricingType),
		errors.Is(err, catalog.ErrInvalidPrice),
		errors.Is(err, catalog.ErrBlockNameRequired):
		return apperrors.NewValidationError("invalid pricing", err.Error())
	default:
		return err
	}
}

func containsBlock(entries []catalog.CatalogEntry, name string) bool {
	for _, e := range entries {
		if e.Name == name {
			return true
		}
	}
	return false
}
