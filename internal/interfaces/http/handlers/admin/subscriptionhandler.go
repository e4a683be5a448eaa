package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bizblocks/bizblocks/internal/shared/logger"
	"github.com/bizblocks/bizblocks/internal/shared/utils"
)

type SubscriptionHandler struct {
	sweepUC sweepLapsedSubscriptionsUseCase
	logger  logger.Interface
}

func NewSubscriptionHandler(sweepUC sweepLapsedSubscriptionsUseCase, logger logger.Interface) *SubscriptionHandler {
	return &SubscriptionHandler{
		sweepUC: sweepUC,
		logger:  logger,
	}
}

// Sweep handles POST /admin/subscriptions/sweep
func (h *SubscriptionHandler) Sweep(c *gin.Context) {
	result, err := h.sweepUC.Execute(c.Request.Context())
	if err != nil {
		h.logger.Errorw("lapsed subscription sweep failed", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "sweep completed", result)
}
