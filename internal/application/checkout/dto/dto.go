package dto

import (
	"github.com/bizblocks/bizblocks/internal/domain/checkout"
)

// SelectAndCheckoutRequest is the body of POST /checkout.
type SelectAndCheckoutRequest struct {
	BusinessID uint     `json:"business_id" validate:"required,gt=0"`
	BlockNames []string `json:"block_names" validate:"required,min=1,dive,required"`
}

// CheckoutPlanDTO reports what a selection did and where to pay for the rest.
type CheckoutPlanDTO struct {
	Route             string   `json:"route"`
	GrantedBlocks     []string `json:"granted_blocks"`
	AlreadyOwned      []string `json:"already_owned"`
	CheckoutBlocks    []string `json:"checkout_blocks"`
	CheckoutSessionID string   `json:"checkout_session_id,omitempty"`
	CheckoutURL       string   `json:"checkout_url,omitempty"`
	AmountCents       int64    `json:"amount_cents"`
	Rejection         string   `json:"rejection,omitempty"`
}

// NewCheckoutPlanDTO starts a response for a routed plan.
func NewCheckoutPlanDTO(plan *checkout.Plan) *CheckoutPlanDTO {
	result := &CheckoutPlanDTO{
		Route:          string(plan.Route),
		GrantedBlocks:  []string{},
		AlreadyOwned:   plan.AlreadyOwned,
		CheckoutBlocks: plan.CheckoutBlockNames(),
		AmountCents:    plan.CheckoutTotalCents(),
	}
	if result.AlreadyOwned == nil {
		result.AlreadyOwned = []string{}
	}
	if plan.Rejection != nil {
		result.Rejection = plan.Rejection.Error()
	}
	return result
}
