package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bizblocks/bizblocks/internal/application/catalog/usecases"
	"github.com/bizblocks/bizblocks/internal/shared/logger"
	"github.com/bizblocks/bizblocks/internal/shared/utils"
)

// BlockHandler serves the resolved block catalog.
type BlockHandler struct {
	getResolvedBlocksUC getResolvedBlocksUseCase
	logger              logger.Interface
}

func NewBlockHandler(getResolvedBlocksUC getResolvedBlocksUseCase, logger logger.Interface) *BlockHandler {
	return &BlockHandler{
		getResolvedBlocksUC: getResolvedBlocksUC,
		logger:              logger,
	}
}

// ListBlocks handles GET /blocks?business_id=
// Anonymous callers get prices without ownership.
func (h *BlockHandler) ListBlocks(c *gin.Context) {
	businessID, err := utils.ParseOptionalUintQuery(c, "business_id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	blocks, err := h.getResolvedBlocksUC.Execute(c.Request.Context(), usecases.GetResolvedBlocksQuery{
		UserID:     getOptionalUserID(c),
		BusinessID: businessID,
	})
	if err != nil {
		h.logger.Errorw("failed to resolve blocks", "error", err, "business_id", businessID)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", blocks)
}
