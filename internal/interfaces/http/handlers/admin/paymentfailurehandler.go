package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bizblocks/bizblocks/internal/application/admin/dto"
	adminusecases "github.com/bizblocks/bizblocks/internal/application/admin/usecases"
	subusecases "github.com/bizblocks/bizblocks/internal/application/subscription/usecases"
	"github.com/bizblocks/bizblocks/internal/shared/logger"
	"github.com/bizblocks/bizblocks/internal/shared/utils"
)

// PaymentFailureHandler backs the admin payment failure dashboard.
type PaymentFailureHandler struct {
	listUC    listPaymentFailuresUseCase
	remindUC  sendPaymentReminderUseCase
	resolveUC resolvePaymentFailureUseCase
	logger    logger.Interface
}

func NewPaymentFailureHandler(
	listUC listPaymentFailuresUseCase,
	remindUC sendPaymentReminderUseCase,
	resolveUC resolvePaymentFailureUseCase,
	logger logger.Interface,
) *PaymentFailureHandler {
	return &PaymentFailureHandler{
		listUC:    listUC,
		remindUC:  remindUC,
		resolveUC: resolveUC,
		logger:    logger,
	}
}

// List handles GET /admin/payment-failures?status=&from=&to=&email=&page=&page_size=
func (h *PaymentFailureHandler) List(c *gin.Context) {
	var req dto.ListPaymentFailuresRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	result, err := h.listUC.Execute(c.Request.Context(), adminusecases.ListPaymentFailuresQuery{
		ListPaymentFailuresRequest: req,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Items, result.Total, result.Page, result.PageSize)
}

// Remind handles POST /admin/payment-failures/:id/remind
// Answers 409 while the reminder cooldown is running.
func (h *PaymentFailureHandler) Remind(c *gin.Context) {
	failureID, err := utils.ParseUintParam(c, "id", "payment failure")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.remindUC.Execute(c.Request.Context(), subusecases.SendPaymentReminderCommand{FailureID: failureID})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "payment reminder queued", result)
}

// Resolve handles POST /admin/payment-failures/:id/resolve
func (h *PaymentFailureHandler) Resolve(c *gin.Context) {
	failureID, err := utils.ParseUintParam(c, "id", "payment failure")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	failure, err := h.resolveUC.Execute(c.Request.Context(), subusecases.ResolvePaymentFailureCommand{FailureID: failureID})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "payment failure resolved", failure)
}
