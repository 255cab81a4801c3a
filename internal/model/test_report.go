package model

import "time"

// TestReport 检测报告表 — 对应 test_reports
// 独立文档记录，可被零或多条校准记录引用
type TestReport struct {
	TestReportID     string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"test_report_id"`
	Title            string     `gorm:"type:varchar(300);not null"                     json:"title"`
	ReportNumber     string     `gorm:"type:varchar(100);not null;default:''"          json:"report_number"`
	ReportDate       *time.Time `gorm:"type:date"                                      json:"report_date,omitempty"`
	SourceCompany    string     `gorm:"type:varchar(200);not null;default:''"          json:"source_company"` // 出具报告的机构
	Notes            string     `gorm:"type:text;not null;default:''"                  json:"notes"`
	StoredFilename   string     `gorm:"type:varchar(300);not null;default:''"          json:"stored_filename"`
	OriginalFilename string     `gorm:"type:varchar(300);not null;default:''"          json:"original_filename"`
	BaseModel

	// 关联
	Calibrations []CalibrationRecord `gorm:"foreignKey:TestReportID;references:TestReportID" json:"calibrations,omitempty"`
}

// TableName 指定表名
func (TestReport) TableName() string { return "test_reports" }
