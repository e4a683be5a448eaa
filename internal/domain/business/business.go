// Package business models the small business a user assembles from blocks.
package business

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrBusinessNotFound = errors.New("business not found")
	ErrNameRequired     = errors.New("business name is required")
)

// Business groups the blocks a user unlocks, buys or subscribes to.
type Business struct {
	id          uint
	ownerUserID uint
	name        string
	createdAt   time.Time
	updatedAt   time.Time
}

func NewBusiness(ownerUserID uint, name string, now time.Time) (*Business, error) {
	if ownerUserID == 0 {
		return nil, fmt.Errorf("owner user ID is required")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}

	return &Business{
		ownerUserID: ownerUserID,
		name:        name,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// ReconstructBusiness reconstructs a business from persistence
func ReconstructBusiness(id, ownerUserID uint, name string, createdAt, updatedAt time.Time) (*Business, error) {
	if id == 0 {
		return nil, fmt.Errorf("business ID cannot be zero")
	}
	return &Business{
		id:          id,
		ownerUserID: ownerUserID,
		name:        name,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}, nil
}

func (b *Business) ID() uint             { return b.id }
func (b *Business) OwnerUserID() uint    { return b.ownerUserID }
func (b *Business) Name() string         { return b.name }
func (b *Business) CreatedAt() time.Time { return b.createdAt }
func (b *Business) UpdatedAt() time.Time { return b.updatedAt }

func (b *Business) SetID(id uint) {
	b.id = id
}

// IsOwnedBy reports whether userID owns the business.
func (b *Business) IsOwnedBy(userID uint) bool {
	return userID != 0 && b.ownerUserID == userID
}

type Repository interface {
	Create(ctx context.Context, business *Business) error
	GetByID(ctx context.Context, id uint) (*Business, error)
	ListByOwner(ctx context.Context, ownerUserID uint) ([]*Business, error)
}
