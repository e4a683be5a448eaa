package admin

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/bizblocks/bizblocks/internal/application/catalog/dto"
	"github.com/bizblocks/bizblocks/internal/application/catalog/usecases"
	"github.com/bizblocks/bizblocks/internal/shared/errors"
	"github.com/bizblocks/bizblocks/internal/shared/logger"
	"github.com/bizblocks/bizblocks/internal/shared/utils"
)

// PricingHandler lets admins read and edit block pricing.
type PricingHandler struct {
	listUC   listPricingUseCase
	upsertUC upsertPricingUseCase
	logger   logger.Interface
}

func NewPricingHandler(listUC listPricingUseCase, upsertUC upsertPricingUseCase, logger logger.Interface) *PricingHandler {
	return &PricingHandler{
		listUC:   listUC,
		upsertUC: upsertUC,
		logger:   logger,
	}
}

// List handles GET /admin/pricing
func (h *PricingHandler) List(c *gin.Context) {
	records, err := h.listUC.Execute(c.Request.Context())
	if err != nil {
		h.logger.Errorw("failed to list pricing", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", records)
}

// Upsert handles PUT /admin/pricing/:block_name
func (h *PricingHandler) Upsert(c *gin.Context) {
	blockName := strings.TrimSpace(c.Param("block_name"))
	if blockName == "" {
		utils.ErrorResponseWithError(c, errors.NewValidationError("block name is required"))
		return
	}

	var req dto.UpsertPricingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for upsert pricing", "error", err, "block_name", blockName)
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	record, err := h.upsertUC.Execute(c.Request.Context(), usecases.UpsertPricingCommand{
		BlockName:            blockName,
		UpsertPricingRequest: req,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "pricing updated", record)
}
