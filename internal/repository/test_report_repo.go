package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/RangerDevv/AllClad/internal/model"
)

// TestReportRepository 检测报告数据访问接口
type TestReportRepository interface {
	Create(ctx context.Context, report *model.TestReport) error
	GetByID(ctx context.Context, id string) (*model.TestReport, error)
	List(ctx context.Context, offset, limit int) ([]model.TestReport, int64, error)
	CountLinkedRecords(ctx context.Context, reportID string) (int64, error)
}

// testReportRepo TestReportRepository 的 GORM 实现
type testReportRepo struct {
	db *gorm.DB
}

// NewTestReportRepo 创建 TestReportRepository 实例
func NewTestReportRepo(db *gorm.DB) TestReportRepository {
	return &testReportRepo{db: db}
}

func (r *testReportRepo) Create(ctx context.Context, report *model.TestReport) error {
	return r.db.WithContext(ctx).Create(report).Error
}

func (r *testReportRepo) GetByID(ctx context.Context, id string) (*model.TestReport, error) {
	var report model.TestReport
	err := r.db.WithContext(ctx).
		Where("test_report_id = ?", id).
		First(&report).Error
	if err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *testReportRepo) List(ctx context.Context, offset, limit int) ([]model.TestReport, int64, error) {
	var reports []model.TestReport
	var total int64

	db := r.db.WithContext(ctx).Model(&model.TestReport{})

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&reports).Error; err != nil {
		return nil, 0, err
	}

	return reports, total, nil
}

func (r *testReportRepo) CountLinkedRecords(ctx context.Context, reportID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.CalibrationRecord{}).
		Where("test_report_id = ?", reportID).
		Count(&count).Error
	return count, err
}
