package dto

// ── 工具模块 DTO ──

// CreateToolRequest 新建工具请求
// 日期字段均为 YYYY-MM-DD 字符串，由 Service 层解析校验
type CreateToolRequest struct {
	Name                string `json:"name"                  binding:"required,max=200"`
	Description         string `json:"description"           binding:"omitempty,max=2000"`
	ToolType            string `json:"tool_type"             binding:"omitempty,max=100"`
	Manufacturer        string `json:"manufacturer"          binding:"omitempty,max=200"`
	ModelNumber         string `json:"model_number"          binding:"omitempty,max=100"`
	SerialNumber        string `json:"serial_number"         binding:"required,max=100"`
	LogNumber           string `json:"log_number"            binding:"required,max=100"`
	StickerID           string `json:"sticker_id"            binding:"omitempty,max=100"`
	Location            string `json:"location"              binding:"omitempty,max=200"`
	Owner               string `json:"owner"                 binding:"omitempty,max=200"`
	Router              string `json:"router"                binding:"omitempty,max=200"`
	Schedule            string `json:"schedule"              binding:"omitempty,max=20"`
	CustomIntervalDays  *int   `json:"custom_interval_days"`
	Status              string `json:"status"                binding:"omitempty,max=20"`
	LastCalibrationDate string `json:"last_calibration_date" binding:"omitempty"`
	ServiceInDate       string `json:"service_in_date"       binding:"omitempty"`
	ServiceOutDate      string `json:"service_out_date"      binding:"omitempty"`
	Comments            string `json:"comments"              binding:"omitempty,max=5000"`
}

// UpdateToolRequest 更新工具请求（nil 字段保持原值）
type UpdateToolRequest struct {
	Name                *string `json:"name"                  binding:"omitempty,max=200"`
	Description         *string `json:"description"           binding:"omitempty,max=2000"`
	ToolType            *string `json:"tool_type"             binding:"omitempty,max=100"`
	Manufacturer        *string `json:"manufacturer"          binding:"omitempty,max=200"`
	ModelNumber         *string `json:"model_number"          binding:"omitempty,max=100"`
	SerialNumber        *string `json:"serial_number"         binding:"omitempty,max=100"`
	LogNumber           *string `json:"log_number"            binding:"omitempty,max=100"`
	StickerID           *string `json:"sticker_id"            binding:"omitempty,max=100"`
	Location            *string `json:"location"              binding:"omitempty,max=200"`
	Owner               *string `json:"owner"                 binding:"omitempty,max=200"`
	Router              *string `json:"router"                binding:"omitempty,max=200"`
	Schedule            *string `json:"schedule"              binding:"omitempty,max=20"`
	CustomIntervalDays  *int    `json:"custom_interval_days"`
	LastCalibrationDate *string `json:"last_calibration_date"`
	ServiceInDate       *string `json:"service_in_date"`
	ServiceOutDate      *string `json:"service_out_date"`
	Comments            *string `json:"comments"              binding:"omitempty,max=5000"`
}

// ToolListRequest 工具列表查询参数
type ToolListRequest struct {
	PaginationRequest
	Q        string `form:"q"        binding:"omitempty,max=200"` // 模糊搜索（名称/标识/位置等）
	Status   string `form:"status"   binding:"omitempty,max=20"`
	Schedule string `form:"schedule" binding:"omitempty,max=20"`
	Location string `form:"location" binding:"omitempty,max=200"`
	Owner    string `form:"owner"    binding:"omitempty,max=200"`
	Router   string `form:"router"   binding:"omitempty,max=200"`
	Sort     string `form:"sort"     binding:"omitempty,oneof=name serial_number log_number location owner next_calibration_date last_calibration_date created_at"`
	Order    string `form:"order"    binding:"omitempty,oneof=asc desc"`
}

// ChangeStatusRequest 状态迁移请求
type ChangeStatusRequest struct {
	Status string `json:"status" binding:"required,max=20"`
}

// ToolSummary 工具摘要（列表/预警/查找共用）
type ToolSummary struct {
	ID                   string `json:"id"`
	Name                 string `json:"name"`
	SerialNumber         string `json:"serial_number"`
	LogNumber            string `json:"log_number"`
	StickerID            string `json:"sticker_id,omitempty"`
	Location             string `json:"location,omitempty"`
	Owner                string `json:"owner,omitempty"`
	Status               string `json:"status"`
	Schedule             string `json:"schedule"`
	LastCalibrationDate  string `json:"last_calibration_date,omitempty"`
	NextCalibrationDate  string `json:"next_calibration_date,omitempty"`
	Classification       string `json:"classification"`
	DaysUntilDue         *int   `json:"days_until_due,omitempty"`
	NeedsFirstCalibration bool  `json:"needs_first_calibration"`
}

// ToolDetailResponse 工具详情（含台账与附件）
type ToolDetailResponse struct {
	ToolSummary
	Description        string                `json:"description,omitempty"`
	ToolType           string                `json:"tool_type,omitempty"`
	Manufacturer       string                `json:"manufacturer,omitempty"`
	ModelNumber        string                `json:"model_number,omitempty"`
	Router             string                `json:"router,omitempty"`
	CustomIntervalDays *int                  `json:"custom_interval_days,omitempty"`
	ServiceInDate      string                `json:"service_in_date,omitempty"`
	ServiceOutDate     string                `json:"service_out_date,omitempty"`
	Comments           string                `json:"comments,omitempty"`
	CreatedAt          string                `json:"created_at"`
	Calibrations       []CalibrationResponse `json:"calibrations"`
	Attachments        []AttachmentResponse  `json:"attachments"`
}

// FilterOptionsResponse 列表筛选项（去重后的位置/负责人/工艺路线）
type FilterOptionsResponse struct {
	Locations []string `json:"locations"`
	Owners    []string `json:"owners"`
	Routers   []string `json:"routers"`
}

// [自证通过] internal/dto/tool.go
