package service

import (
	"context"
	"errors"
	"io"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/RangerDevv/AllClad/internal/dto"
	"github.com/RangerDevv/AllClad/internal/model"
	"github.com/RangerDevv/AllClad/internal/repository"
	apperr "github.com/RangerDevv/AllClad/pkg/errors"
	"github.com/RangerDevv/AllClad/pkg/filestore"
)

// ReportService 检测报告业务接口
type ReportService interface {
	// Create 新建报告；file 可为 nil（仅登记元数据）
	Create(ctx context.Context, req *dto.CreateTestReportRequest, file io.Reader, filename string) (*dto.TestReportResponse, error)
	Get(ctx context.Context, reportID string) (*dto.TestReportResponse, error)
	List(ctx context.Context, page *dto.PaginationRequest) ([]dto.TestReportResponse, int64, error)
	// FilePath 报告文件的落盘路径（下载用）
	FilePath(ctx context.Context, reportID string) (path, originalName string, err error)
}

type reportService struct {
	repo   *repository.Repository
	files  *filestore.Store
	logger *zap.Logger
}

// NewReportService 创建 ReportService 实例
func NewReportService(repo *repository.Repository, files *filestore.Store, logger *zap.Logger) ReportService {
	return &reportService{repo: repo, files: files, logger: logger}
}

func (s *reportService) Create(ctx context.Context, req *dto.CreateTestReportRequest, file io.Reader, filename string) (*dto.TestReportResponse, error) {
	reportDate, err := parseOptionalDate("report_date", req.ReportDate)
	if err != nil {
		return nil, err
	}

	report := &model.TestReport{
		Title:         req.Title,
		ReportNumber:  req.ReportNumber,
		ReportDate:    reportDate,
		SourceCompany: req.SourceCompany,
		Notes:         req.Notes,
	}

	if file != nil {
		if !s.files.Allowed(filename) {
			return nil, apperr.NewValidation("file", "不支持的文件类型")
		}
		stored, err := s.files.Save(file, filename)
		if err != nil {
			s.logger.Error("保存报告文件失败", zap.Error(err))
			return nil, err
		}
		report.StoredFilename = stored
		report.OriginalFilename = filename
	}

	if err := s.repo.TestReport.Create(ctx, report); err != nil {
		s.logger.Error("创建检测报告失败", zap.Error(err))
		if report.StoredFilename != "" {
			s.files.Remove(report.StoredFilename)
		}
		return nil, err
	}

	s.logger.Info("检测报告已登记",
		zap.String("report_id", report.TestReportID),
		zap.String("title", report.Title),
	)

	return s.buildResponse(ctx, report), nil
}

func (s *reportService) Get(ctx context.Context, reportID string) (*dto.TestReportResponse, error) {
	report, err := s.repo.TestReport.GetByID(ctx, reportID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReportNotFound
		}
		s.logger.Error("查询检测报告失败", zap.Error(err))
		return nil, err
	}
	return s.buildResponse(ctx, report), nil
}

func (s *reportService) List(ctx context.Context, page *dto.PaginationRequest) ([]dto.TestReportResponse, int64, error) {
	reports, total, err := s.repo.TestReport.List(ctx, page.GetOffset(), page.GetPageSize())
	if err != nil {
		s.logger.Error("查询检测报告列表失败", zap.Error(err))
		return nil, 0, err
	}

	responses := make([]dto.TestReportResponse, 0, len(reports))
	for i := range reports {
		responses = append(responses, *s.buildResponse(ctx, &reports[i]))
	}
	return responses, total, nil
}

func (s *reportService) FilePath(ctx context.Context, reportID string) (string, string, error) {
	report, err := s.repo.TestReport.GetByID(ctx, reportID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", "", ErrReportNotFound
		}
		s.logger.Error("查询检测报告失败", zap.Error(err))
		return "", "", err
	}
	if report.StoredFilename == "" {
		return "", "", ErrReportNotFound
	}
	return s.files.Path(report.StoredFilename), report.OriginalFilename, nil
}

func (s *reportService) buildResponse(ctx context.Context, report *model.TestReport) *dto.TestReportResponse {
	linked, err := s.repo.TestReport.CountLinkedRecords(ctx, report.TestReportID)
	if err != nil {
		// 关联数仅展示用，失败不阻断
		s.logger.Warn("统计报告关联记录失败", zap.Error(err))
	}

	return &dto.TestReportResponse{
		ID:               report.TestReportID,
		Title:            report.Title,
		ReportNumber:     report.ReportNumber,
		ReportDate:       formatDate(report.ReportDate),
		SourceCompany:    report.SourceCompany,
		Notes:            report.Notes,
		OriginalFilename: report.OriginalFilename,
		LinkedRecords:    int(linked),
		CreatedAt:        report.CreatedAt.Format(time.RFC3339),
	}
}
