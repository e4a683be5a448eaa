package checkout

import (
	"context"
	"time"
)

type SessionRepository interface {
	Create(ctx context.Context, session *Session) error
	GetByID(ctx context.Context, id string) (*Session, error)
	Update(ctx context.Context, session *Session) error
	// CompleteIfPending moves a pending session to completed with one
	// conditional UPDATE. It reports false when the session was no longer
	// pending, so only one webhook delivery grants its blocks.
	CompleteIfPending(ctx context.Context, id string, now time.Time) (bool, error)
}
