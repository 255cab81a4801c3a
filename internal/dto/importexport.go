package dto

// ── 台账导入导出 DTO ──

// ImportToolsResponse 台账导入结果汇总
type ImportToolsResponse struct {
	Imported  int      `json:"imported"`
	Updated   int      `json:"updated"`
	Skipped   int      `json:"skipped"`
	RowErrors []string `json:"row_errors,omitempty"`
}
