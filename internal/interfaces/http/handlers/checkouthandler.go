package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bizblocks/bizblocks/internal/application/checkout/dto"
	"github.com/bizblocks/bizblocks/internal/application/checkout/usecases"
	"github.com/bizblocks/bizblocks/internal/shared/constants"
	"github.com/bizblocks/bizblocks/internal/shared/logger"
	"github.com/bizblocks/bizblocks/internal/shared/utils"
)

// CheckoutHandler turns a block selection into grants and a checkout session.
type CheckoutHandler struct {
	selectAndCheckoutUC selectAndCheckoutUseCase
	logger              logger.Interface
}

func NewCheckoutHandler(selectAndCheckoutUC selectAndCheckoutUseCase, logger logger.Interface) *CheckoutHandler {
	return &CheckoutHandler{
		selectAndCheckoutUC: selectAndCheckoutUC,
		logger:              logger,
	}
}

// Checkout handles POST /checkout
func (h *CheckoutHandler) Checkout(c *gin.Context) {
	userID, err := getUserIDFromContext(c, h.logger)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req dto.SelectAndCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for checkout", "error", err, "user_id", userID)
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	plan, err := h.selectAndCheckoutUC.Execute(c.Request.Context(), usecases.SelectAndCheckoutCommand{
		UserID:                   userID,
		CustomerEmail:            c.GetString(constants.ContextKeyUserEmail),
		SelectAndCheckoutRequest: req,
	})
	if err != nil {
		if plan != nil {
			// Rejected mixed cart: the free blocks were still granted.
			utils.ErrorResponseWithErrorAndData(c, err, plan)
			return
		}
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, checkoutMessage(plan), plan)
}

func checkoutMessage(plan *dto.CheckoutPlanDTO) string {
	if plan.CheckoutURL != "" {
		return "checkout session created"
	}
	return "blocks unlocked"
}
