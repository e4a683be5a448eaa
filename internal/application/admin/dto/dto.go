package dto

import (
	subdto "github.com/bizblocks/bizblocks/internal/application/subscription/dto"
)

// PaymentFailureListItem is a failure joined with the subscription context an
// admin needs to follow up.
type PaymentFailureListItem struct {
	subdto.PaymentFailureDTO
	UserID             uint   `json:"user_id"`
	BusinessID         uint   `json:"business_id"`
	BlockName          string `json:"block_name"`
	CustomerEmail      string `json:"customer_email"`
	SubscriptionStatus string `json:"subscription_status"`
	CanRemind          bool   `json:"can_remind"`
}

// ListPaymentFailuresRequest is bound from the admin listing query string.
type ListPaymentFailuresRequest struct {
	Status   string `form:"status" json:"status" validate:"omitempty,oneof=open resolved"`
	From     string `form:"from" json:"from" validate:"omitempty,datetime=2006-01-02"`
	To       string `form:"to" json:"to" validate:"omitempty,datetime=2006-01-02"`
	Email    string `form:"email" json:"email" validate:"max=255"`
	Page     int    `form:"page" json:"page"`
	PageSize int    `form:"page_size" json:"page_size"`
}
