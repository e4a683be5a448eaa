package usecases

import (
	"context"
	"errors"
	"fmt"

	"github.com/bizblocks/bizblocks/internal/application/notification"
	"github.com/bizblocks/bizblocks/internal/domain/outbox"
	"github.com/bizblocks/bizblocks/internal/shared/biztime"
	"github.com/bizblocks/bizblocks/internal/shared/logger"
)

const (
	DefaultRelayBatchSize   = 50
	DefaultRelayMaxAttempts = 8
)

type RelayOutboxResult struct {
	Claimed   int
	Delivered int
	Retried   int
	Failed    int
}

// RelayOutboxUseCase delivers due outbox messages as emails. A message is
// delivered only when all of its emails were sent.
type RelayOutboxUseCase struct {
	outboxRepo  outbox.Repository
	notifier    notification.Notifier
	settings    notification.MessageSettings
	batchSize   int
	maxAttempts int
	clock       biztime.Clock
	logger      logger.Interface
}

func NewRelayOutboxUseCase(
	outboxRepo outbox.Repository,
	notifier notification.Notifier,
	settings notification.MessageSettings,
	batchSize int,
	maxAttempts int,
	clock biztime.Clock,
	logger logger.Interface,
) *RelayOutboxUseCase {
	if batchSize <= 0 {
		batchSize = DefaultRelayBatchSize
	}
	if maxAttempts <= 0 {
		maxAttempts = DefaultRelayMaxAttempts
	}
	return &RelayOutboxUseCase{
		outboxRepo:  outboxRepo,
		notifier:    notifier,
		settings:    settings,
		batchSize:   batchSize,
		maxAttempts: maxAttempts,
		clock:       clock,
		logger:      logger,
	}
}

func (uc *RelayOutboxUseCase) Execute(ctx context.Context) (*RelayOutboxResult, error) {
	messages, err := uc.outboxRepo.ClaimDue(ctx, uc.clock.Now(), uc.batchSize)
	if err != nil {
		uc.logger.Errorw("failed to claim outbox messages", "error", err)
		return nil, fmt.Errorf("failed to claim outbox messages: %w", err)
	}

	result := &RelayOutboxResult{Claimed: len(messages)}
	for _, msg := range messages {
		if ctx.Err() != nil {
			break
		}

		deliveryErr := uc.deliver(ctx, msg)
		now := uc.clock.Now()
		if deliveryErr == nil {
			msg.MarkDelivered(now)
			result.Delivered++
		} else {
			msg.MarkAttemptFailed(deliveryErr, now, uc.maxAttempts)
			if msg.Status() == outbox.StatusFailed {
				result.Failed++
				uc.logger.Errorw("outbox message parked after final attempt", "error", deliveryErr,
					"message_id", msg.ID(),
					"event_type", msg.EventType(),
					"attempts", msg.Attempts(),
				)
			} else {
				result.Retried++
				uc.logger.Warnw("outbox delivery failed, will retry", "error", deliveryErr,
					"message_id", msg.ID(),
					"event_type", msg.EventType(),
					"attempts", msg.Attempts(),
					"available_at", msg.AvailableAt(),
				)
			}
		}

		if err := uc.outboxRepo.Update(ctx, msg); err != nil {
			uc.logger.Errorw("failed to save outbox message", "error", err, "message_id", msg.ID())
			return result, fmt.Errorf("failed to save outbox message %s: %w", msg.ID(), err)
		}
	}

	if result.Claimed > 0 {
		uc.logger.Infow("outbox relay pass finished",
			"claimed", result.Claimed,
			"delivered", result.Delivered,
			"retried", result.Retried,
			"failed", result.Failed,
		)
	}
	return result, nil
}

func (uc *RelayOutboxUseCase) deliver(ctx context.Context, msg *outbox.Message) error {
	emails, err := notification.BuildEmails(msg, uc.settings)
	if err != nil {
		return err
	}
	if len(emails) == 0 {
		uc.logger.Debugw("outbox message produces no email", "message_id", msg.ID(), "event_type", msg.EventType())
		return nil
	}

	var errs []error
	for _, email := range emails {
		if err := uc.notifier.Send(ctx, email); err != nil {
			errs = append(errs, fmt.Errorf("send to %s: %w", email.To, err))
		}
	}
	return errors.Join(errs...)
}
