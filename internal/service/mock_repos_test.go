package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/RangerDevv/AllClad/internal/calibration"
	"github.com/RangerDevv/AllClad/internal/model"
	"github.com/RangerDevv/AllClad/internal/repository"
)

// ── Mock ToolRepository ──

type mockToolRepo struct {
	tools     []*model.Tool
	idCounter int
}

func newMockToolRepo() *mockToolRepo {
	return &mockToolRepo{}
}

func (m *mockToolRepo) Create(_ context.Context, tool *model.Tool) error {
	if tool.ToolID == "" {
		m.idCounter++
		tool.ToolID = fmt.Sprintf("tool-%03d", m.idCounter)
	}
	tool.CreatedAt = time.Now()
	tool.UpdatedAt = time.Now()
	m.tools = append(m.tools, tool)
	return nil
}

func (m *mockToolRepo) GetByID(_ context.Context, id string) (*model.Tool, error) {
	for _, t := range m.tools {
		if t.ToolID == id {
			return t, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockToolRepo) GetDetail(_ context.Context, id string) (*model.Tool, error) {
	return m.GetByID(context.Background(), id)
}

func (m *mockToolRepo) Update(_ context.Context, tool *model.Tool) error {
	for i, t := range m.tools {
		if t.ToolID == tool.ToolID {
			tool.UpdatedAt = time.Now()
			m.tools[i] = tool
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (m *mockToolRepo) List(_ context.Context, filter *repository.ToolFilter) ([]model.Tool, int64, error) {
	var result []model.Tool
	for _, t := range m.tools {
		if filter.Status != "" && t.Status != filter.Status {
			continue
		}
		if filter.Schedule != "" && t.Schedule != filter.Schedule {
			continue
		}
		if filter.Location != "" && t.Location != filter.Location {
			continue
		}
		if filter.Owner != "" && t.Owner != filter.Owner {
			continue
		}
		if filter.Q != "" {
			q := strings.ToLower(filter.Q)
			hay := strings.ToLower(t.Name + " " + t.SerialNumber + " " + t.LogNumber + " " + t.StickerID)
			if !strings.Contains(hay, q) {
				continue
			}
		}
		result = append(result, *t)
	}
	return result, int64(len(result)), nil
}

func (m *mockToolRepo) ListByStatuses(_ context.Context, statuses []calibration.Status) ([]model.Tool, error) {
	var result []model.Tool
	for _, t := range m.tools {
		for _, s := range statuses {
			if t.Status == s {
				result = append(result, *t)
				break
			}
		}
	}
	return result, nil
}

func (m *mockToolRepo) FindByIdentifier(_ context.Context, query string) (*model.Tool, repository.IdentifierMatch, error) {
	lower := strings.ToLower(query)
	// serial → log → sticker 优先级与生产实现一致
	for _, t := range m.tools {
		if strings.ToLower(t.SerialNumber) == lower {
			return t, repository.MatchBySerial, nil
		}
	}
	for _, t := range m.tools {
		if strings.ToLower(t.LogNumber) == lower {
			return t, repository.MatchByLog, nil
		}
	}
	for _, t := range m.tools {
		if t.StickerID != "" && strings.ToLower(t.StickerID) == lower {
			return t, repository.MatchBySticker, nil
		}
	}
	return nil, "", gorm.ErrRecordNotFound
}

func (m *mockToolRepo) IdentifierTaken(_ context.Context, column, value, excludeID string) (bool, error) {
	if value == "" {
		return false, nil
	}
	lower := strings.ToLower(value)
	for _, t := range m.tools {
		if t.Status == calibration.StatusRetired || t.ToolID == excludeID {
			continue
		}
		var field string
		switch column {
		case "serial_number":
			field = t.SerialNumber
		case "log_number":
			field = t.LogNumber
		case "sticker_id":
			field = t.StickerID
		}
		if field != "" && strings.ToLower(field) == lower {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockToolRepo) DistinctValues(_ context.Context, column string) ([]string, error) {
	seen := make(map[string]bool)
	var values []string
	for _, t := range m.tools {
		var v string
		switch column {
		case "location":
			v = t.Location
		case "owner":
			v = t.Owner
		case "router":
			v = t.Router
		}
		if v != "" && !seen[v] {
			seen[v] = true
			values = append(values, v)
		}
	}
	return values, nil
}

// ── Mock CalibrationRepository ──

type mockCalibrationRepo struct {
	records   []model.CalibrationRecord
	idCounter int64
}

func newMockCalibrationRepo() *mockCalibrationRepo {
	return &mockCalibrationRepo{}
}

func (m *mockCalibrationRepo) Create(_ context.Context, record *model.CalibrationRecord) error {
	m.idCounter++
	record.CalibrationRecordID = m.idCounter
	record.CreatedAt = time.Now()
	m.records = append(m.records, *record)
	return nil
}

func (m *mockCalibrationRepo) ListByTool(_ context.Context, toolID string) ([]model.CalibrationRecord, error) {
	var result []model.CalibrationRecord
	for _, r := range m.records {
		if r.ToolID == toolID {
			result = append(result, r)
		}
	}
	return result, nil
}

func (m *mockCalibrationRepo) Latest(_ context.Context, toolID string) (*model.CalibrationRecord, error) {
	var latest *model.CalibrationRecord
	for i := range m.records {
		r := &m.records[i]
		if r.ToolID != toolID {
			continue
		}
		if latest == nil ||
			r.CalibrationDate.After(latest.CalibrationDate) ||
			(r.CalibrationDate.Equal(latest.CalibrationDate) &&
				r.CalibrationRecordID > latest.CalibrationRecordID) {
			latest = r
		}
	}
	if latest == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return latest, nil
}

func (m *mockCalibrationRepo) List(_ context.Context, result calibration.Result, offset, limit int) ([]model.CalibrationRecord, int64, error) {
	var filtered []model.CalibrationRecord
	for _, r := range m.records {
		if result != "" && r.Result != result {
			continue
		}
		filtered = append(filtered, r)
	}
	total := int64(len(filtered))
	if offset >= len(filtered) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[offset:end], total, nil
}

// ── Mock TestReportRepository ──

type mockTestReportRepo struct {
	reports map[string]*model.TestReport
}

func newMockTestReportRepo() *mockTestReportRepo {
	return &mockTestReportRepo{reports: make(map[string]*model.TestReport)}
}

func (m *mockTestReportRepo) Create(_ context.Context, report *model.TestReport) error {
	if report.TestReportID == "" {
		report.TestReportID = fmt.Sprintf("report-%d", len(m.reports)+1)
	}
	report.CreatedAt = time.Now()
	m.reports[report.TestReportID] = report
	return nil
}

func (m *mockTestReportRepo) GetByID(_ context.Context, id string) (*model.TestReport, error) {
	if r, ok := m.reports[id]; ok {
		return r, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTestReportRepo) List(_ context.Context, offset, limit int) ([]model.TestReport, int64, error) {
	var result []model.TestReport
	for _, r := range m.reports {
		result = append(result, *r)
	}
	total := int64(len(result))
	if offset >= len(result) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(result) {
		end = len(result)
	}
	return result[offset:end], total, nil
}

func (m *mockTestReportRepo) CountLinkedRecords(_ context.Context, reportID string) (int64, error) {
	return 0, nil
}

// ── Mock AttachmentRepository ──

type mockAttachmentRepo struct {
	attachments map[string]*model.FileAttachment
	idCounter   int
}

func newMockAttachmentRepo() *mockAttachmentRepo {
	return &mockAttachmentRepo{attachments: make(map[string]*model.FileAttachment)}
}

func (m *mockAttachmentRepo) Create(_ context.Context, att *model.FileAttachment) error {
	if att.FileAttachmentID == "" {
		m.idCounter++
		att.FileAttachmentID = fmt.Sprintf("att-%d", m.idCounter)
	}
	att.UploadedAt = time.Now()
	m.attachments[att.FileAttachmentID] = att
	return nil
}

func (m *mockAttachmentRepo) GetByID(_ context.Context, id string) (*model.FileAttachment, error) {
	if a, ok := m.attachments[id]; ok {
		return a, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAttachmentRepo) Delete(_ context.Context, id string) error {
	delete(m.attachments, id)
	return nil
}

func (m *mockAttachmentRepo) ListByType(_ context.Context, fileType string, offset, limit int) ([]model.FileAttachment, int64, error) {
	var result []model.FileAttachment
	for _, a := range m.attachments {
		if fileType != "" && a.FileType != fileType {
			continue
		}
		result = append(result, *a)
	}
	total := int64(len(result))
	if offset >= len(result) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(result) {
		end = len(result)
	}
	return result[offset:end], total, nil
}
