package usecases

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/text/cases"

	"github.com/bizblocks/bizblocks/internal/application/admin/dto"
	subdto "github.com/bizblocks/bizblocks/internal/application/subscription/dto"
	"github.com/bizblocks/bizblocks/internal/domain/subscription"
	"github.com/bizblocks/bizblocks/internal/shared/biztime"
	apperrors "github.com/bizblocks/bizblocks/internal/shared/errors"
	"github.com/bizblocks/bizblocks/internal/shared/logger"
	"github.com/bizblocks/bizblocks/internal/shared/query"
	"github.com/bizblocks/bizblocks/internal/shared/utils"
)

type ListPaymentFailuresQuery struct {
	dto.ListPaymentFailuresRequest
}

type ListPaymentFailuresResult struct {
	Items    []*dto.PaymentFailureListItem
	Total    int64
	Page     int
	PageSize int
}

// ListPaymentFailuresUseCase backs the admin payment failure dashboard.
type ListPaymentFailuresUseCase struct {
	failureRepo      subscription.PaymentFailureRepository
	subscriptionRepo subscription.SubscriptionRepository
	policy           subscription.Policy
	clock            biztime.Clock
	logger           logger.Interface
}

func NewListPaymentFailuresUseCase(
	failureRepo subscription.PaymentFailureRepository,
	subscriptionRepo subscription.SubscriptionRepository,
	policy subscription.Policy,
	clock biztime.Clock,
	logger logger.Interface,
) *ListPaymentFailuresUseCase {
	return &ListPaymentFailuresUseCase{
		failureRepo:      failureRepo,
		subscriptionRepo: subscriptionRepo,
		policy:           policy,
		clock:            clock,
		logger:           logger,
	}
}

func (uc *ListPaymentFailuresUseCase) Execute(ctx context.Context, q ListPaymentFailuresQuery) (*ListPaymentFailuresResult, error) {
	if err := utils.ValidateStruct(q.ListPaymentFailuresRequest); err != nil {
		return nil, err
	}

	filter, err := buildFailureFilter(q.ListPaymentFailuresRequest)
	if err != nil {
		return nil, err
	}

	failures, total, err := uc.failureRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list payment failures", "error", err)
		return nil, fmt.Errorf("failed to list payment failures: %w", err)
	}

	ids := make([]uint, 0, len(failures))
	for _, f := range failures {
		ids = append(ids, f.SubscriptionID())
	}
	subs, err := uc.subscriptionRepo.GetByIDs(ctx, ids)
	if err != nil {
		uc.logger.Errorw("failed to load subscriptions for payment failures", "error", err)
		return nil, fmt.Errorf("failed to load subscriptions: %w", err)
	}

	now := uc.clock.Now()
	items := make([]*dto.PaymentFailureListItem, 0, len(failures))
	for _, f := range failures {
		item := &dto.PaymentFailureListItem{
			PaymentFailureDTO: *subdto.ToPaymentFailureDTO(f),
			CanRemind:         f.CanSendReminder(now, uc.policy.ReminderCooldown) == nil,
		}
		if sub, ok := subs[f.SubscriptionID()]; ok {
			item.UserID = sub.UserID()
			item.BusinessID = sub.BusinessID()
			item.BlockName = sub.BlockName()
			item.CustomerEmail = sub.CustomerEmail()
			item.SubscriptionStatus = sub.EffectiveStatus(now).String()
		} else {
			uc.logger.Warnw("payment failure references missing subscription",
				"failure_id", f.ID(),
				"subscription_id", f.SubscriptionID(),
			)
		}
		items = append(items, item)
	}

	return &ListPaymentFailuresResult{
		Items:    items,
		Total:    total,
		Page:     filter.Number,
		PageSize: filter.Size,
	}, nil
}

func buildFailureFilter(req dto.ListPaymentFailuresRequest) (subscription.PaymentFailureFilter, error) {
	filter := subscription.PaymentFailureFilter{
		ListFilter: query.ListFilter{
			Page: query.NewPage(req.Page, req.PageSize),
			Sort: query.NewSort("created_at", "desc"),
		},
		Status:      subscription.FailureStatus(req.Status),
		EmailSearch: foldEmail(req.Email),
	}

	if req.From != "" {
		from, err := biztime.ParseDateInBizTimezone(req.From)
		if err != nil {
			return filter, apperrors.NewValidationError("invalid from date", err.Error())
		}
		start := biztime.StartOfDayUTC(from)
		filter.From = &start
	}
	if req.To != "" {
		to, err := biztime.ParseDateInBizTimezone(req.To)
		if err != nil {
			return filter, apperrors.NewValidationError("invalid to date", err.Error())
		}
		end := biztime.EndOfDayUTC(to)
		filter.To = &end
	}
	if filter.From != nil && filter.To != nil && filter.To.Before(*filter.From) {
		return filter, apperrors.NewValidationError("to date must not be before from date")
	}

	return filter, nil
}

// foldEmail normalizes an email search term so matching ignores case.
func foldEmail(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}
