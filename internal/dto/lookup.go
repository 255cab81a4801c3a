package dto

// ── 批量查找 DTO ──

// LookupRequest 批量查找请求（手工粘贴/扫码录入的原始字符串）
type LookupRequest struct {
	Queries []string `json:"queries" binding:"required,min=1"`
}

// LookupResult 单条查找结果；未命中是正常结果而非错误
type LookupResult struct {
	Query     string       `json:"query"`
	Found     bool         `json:"found"`
	MatchedBy string       `json:"matched_by,omitempty"` // serial_number | log_number | sticker_id
	Tool      *ToolSummary `json:"tool,omitempty"`
}

// LookupResponse 批量查找响应，结果保持输入顺序
type LookupResponse struct {
	Results []LookupResult `json:"results"`
}
