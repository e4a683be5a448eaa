package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bizblocks/bizblocks/internal/application/subscription/dto"
	"github.com/bizblocks/bizblocks/internal/application/subscription/usecases"
	"github.com/bizblocks/bizblocks/internal/shared/constants"
	"github.com/bizblocks/bizblocks/internal/shared/logger"
	"github.com/bizblocks/bizblocks/internal/shared/utils"
)

// SubscriptionHandler handles the caller's own subscriptions.
type SubscriptionHandler struct {
	listUC   listUserSubscriptionsUseCase
	changeUC changeSubscriptionUseCase
	cancelUC cancelSubscriptionUseCase
	logger   logger.Interface
}

func NewSubscriptionHandler(
	listUC listUserSubscriptionsUseCase,
	changeUC changeSubscriptionUseCase,
	cancelUC cancelSubscriptionUseCase,
	logger logger.Interface,
) *SubscriptionHandler {
	return &SubscriptionHandler{
		listUC:   listUC,
		changeUC: changeUC,
		cancelUC: cancelUC,
		logger:   logger,
	}
}

// List handles GET /subscriptions?business_id=
func (h *SubscriptionHandler) List(c *gin.Context) {
	userID, err := getUserIDFromContext(c, h.logger)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	businessID, err := utils.ParseOptionalUintQuery(c, "business_id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	subs, err := h.listUC.Execute(c.Request.Context(), usecases.ListUserSubscriptionsQuery{
		UserID:     userID,
		BusinessID: businessID,
	})
	if err != nil {
		h.logger.Errorw("failed to list subscriptions", "error", err, "user_id", userID)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", subs)
}

// Change handles POST /subscriptions/:id/change
func (h *SubscriptionHandler) Change(c *gin.Context) {
	userID, err := getUserIDFromContext(c, h.logger)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	subscriptionID, err := utils.ParseUintParam(c, "id", "subscription")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req dto.ChangeSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for change subscription", "error", err, "subscription_id", subscriptionID)
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	result, err := h.changeUC.Execute(c.Request.Context(), usecases.ChangeSubscriptionCommand{
		UserID:                    userID,
		CustomerEmail:             c.GetString(constants.ContextKeyUserEmail),
		SubscriptionID:            subscriptionID,
		ChangeSubscriptionRequest: req,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "subscription change accepted", result)
}

// Cancel handles POST /subscriptions/:id/cancel
func (h *SubscriptionHandler) Cancel(c *gin.Context) {
	userID, err := getUserIDFromContext(c, h.logger)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	subscriptionID, err := utils.ParseUintParam(c, "id", "subscription")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.cancelUC.Execute(c.Request.Context(), usecases.CancelSubscriptionCommand{
		UserID:         userID,
		SubscriptionID: subscriptionID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "subscription will end with the current period", result)
}
