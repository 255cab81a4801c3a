package dto

// ── 检测报告 DTO ──

// CreateTestReportRequest 新建检测报告（multipart 表单字段，文件另取）
type CreateTestReportRequest struct {
	Title         string `form:"title"          binding:"required,max=300"`
	ReportNumber  string `form:"report_number"  binding:"omitempty,max=100"`
	ReportDate    string `form:"report_date"    binding:"omitempty"` // YYYY-MM-DD
	SourceCompany string `form:"source_company" binding:"omitempty,max=200"`
	Notes         string `form:"notes"          binding:"omitempty,max=5000"`
}

// TestReportResponse 检测报告响应
type TestReportResponse struct {
	ID               string `json:"id"`
	Title            string `json:"title"`
	ReportNumber     string `json:"report_number,omitempty"`
	ReportDate       string `json:"report_date,omitempty"`
	SourceCompany    string `json:"source_company,omitempty"`
	Notes            string `json:"notes,omitempty"`
	OriginalFilename string `json:"original_filename,omitempty"`
	LinkedRecords    int    `json:"linked_records"`
	CreatedAt        string `json:"created_at"`
}

// ── 附件 DTO ──

// AttachmentResponse 附件响应
type AttachmentResponse struct {
	ID                  string `json:"id"`
	ToolID              string `json:"tool_id,omitempty"`
	CalibrationRecordID *int64 `json:"calibration_record_id,omitempty"`
	OriginalFilename    string `json:"original_filename"`
	FileType            string `json:"file_type"`
	Notes               string `json:"notes,omitempty"`
	UploadedAt          string `json:"uploaded_at"`
}
