package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/RangerDevv/AllClad/config"
	"github.com/RangerDevv/AllClad/internal/calibration"
	"github.com/RangerDevv/AllClad/internal/model"
	"github.com/RangerDevv/AllClad/internal/repository"
	"github.com/RangerDevv/AllClad/pkg/database"
	applogger "github.com/RangerDevv/AllClad/pkg/logger"
)

// 演示/联调用样例数据，取自车间真实台账的脱敏子集

func date(year int, month time.Month, day int) *time.Time {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &t
}

func daysAgo(n int) *time.Time {
	t := time.Now().AddDate(0, 0, -n).Truncate(24 * time.Hour)
	return &t
}

var sampleTools = []model.Tool{
	{
		Name:                "Floor Scale 2256",
		ToolType:            "Floor Scale",
		Manufacturer:        "Mettler Toledo",
		ModelNumber:         "2256",
		SerialNumber:        "1124667-1ME",
		LogNumber:           "CLAD-0001",
		StickerID:           "Asset #1",
		Location:            "Clad",
		Owner:               "Blanking Cell",
		Schedule:            calibration.ScheduleSemiannual,
		Status:              calibration.StatusActive,
		LastCalibrationDate: date(2024, 9, 11),
		Comments:            "Terminal Model Panther Plus / Term #0068616-6MF.",
	},
	{
		Name:                "Floor Scale 2156",
		ToolType:            "Floor Scale",
		Manufacturer:        "Mettler Toledo",
		ModelNumber:         "2156",
		SerialNumber:        "01240720B1",
		LogNumber:           "CLAD-0002",
		StickerID:           "Asset #2",
		Location:            "Clad",
		Owner:               "Rowe Line",
		Schedule:            calibration.ScheduleSemiannual,
		Status:              calibration.StatusActive,
		LastCalibrationDate: date(2024, 9, 11),
		Comments:            "Terminal Model Panther Plus.",
	},
	{
		Name:                "Lloyd Pull Tester",
		ToolType:            "Pull Tester",
		Manufacturer:        "Lloyd Instrument",
		ModelNumber:         "xlc-5000N",
		SerialNumber:        "10000504",
		LogNumber:           "CLAD-0003",
		StickerID:           "98626",
		Location:            "Clad",
		Schedule:            calibration.ScheduleAnnual,
		Status:              calibration.StatusActive,
		LastCalibrationDate: daysAgo(300),
	},
	{
		Name:                "RA Meter SR160",
		ToolType:            "RA Meter",
		Manufacturer:        "Starrett",
		ModelNumber:         "SR160",
		SerialNumber:        "C07441",
		LogNumber:           "CLAD-0005",
		Location:            "Clad",
		Schedule:            calibration.ScheduleSemiannual,
		Status:              calibration.StatusActive,
		LastCalibrationDate: date(2026, 1, 15),
		Comments:            "Passed at Jan 2026 calibration.",
	},
	{
		Name:                "Micrometer - Analog Outside",
		ToolType:            "Micrometer - Analog Outside",
		Manufacturer:        "Mitutoyo",
		SerialNumber:        "M-15 (S/N 71436098)",
		LogNumber:           "CLAD-0007",
		StickerID:           "M-15",
		Location:            "Clad",
		Owner:               "Mike M.",
		Schedule:            calibration.ScheduleSemiannual,
		Status:              calibration.StatusActive,
		LastCalibrationDate: date(2026, 1, 15),
	},
	{
		Name:                "12\" Height Gauge",
		ToolType:            "Height Gauge",
		Manufacturer:        "Mitutoyo",
		ModelNumber:         "HDS-12\"CX",
		SerialNumber:        "15126678",
		LogNumber:           "QA-0001",
		Location:            "Quality",
		Schedule:            calibration.ScheduleSemiannual,
		Status:              calibration.StatusActive,
		LastCalibrationDate: date(2026, 1, 15),
		Comments:            "Can't go above 10\".",
	},
	{
		Name:                "Caliper - 12\"",
		ToolType:            "Caliper",
		Manufacturer:        "Mitutoyo",
		ModelNumber:         "CD-12\"C",
		SerialNumber:        "QA-SC2 (S/N 01027381)",
		LogNumber:           "QA-0002",
		StickerID:           "QA-SC2",
		Location:            "Quality",
		Schedule:            calibration.ScheduleSemiannual,
		Status:              calibration.StatusActive,
		LastCalibrationDate: date(2026, 1, 15),
		Comments:            "In quality cabinet.",
	},
	{
		Name:                "Thermocouple Reader OM-CP-OCTPRO",
		ToolType:            "Thermocouple Reader",
		Manufacturer:        "Omega",
		ModelNumber:         "OM-CP-OCTPRO",
		SerialNumber:        "S30255",
		LogNumber:           "CLAD-0009",
		Location:            "Clad",
		Schedule:            calibration.ScheduleSemiannual,
		Status:              calibration.StatusActive,
		LastCalibrationDate: date(2026, 1, 15),
	},
	{
		// 预警联调用：长期未校准且已标记缺失
		Name:                "Micrometer - Digital Dial QA 202",
		ToolType:            "Micrometer - Digital Dial",
		Manufacturer:        "Mitutoyo",
		SerialNumber:        "QA-202",
		LogNumber:           "CLAD-0010",
		Location:            "Clad",
		Schedule:            calibration.ScheduleSemiannual,
		Status:              calibration.StatusNotInUse,
		LastCalibrationDate: date(2025, 4, 1),
		Comments:            "At Blank Deburr machine inspection station. MISSING 10/31/25.",
	},
	{
		// 备用清单联调用：损坏待处置
		Name:                "Micrometer - Analog Outside M-12",
		ToolType:            "Micrometer - Analog Outside",
		Manufacturer:        "Fowler",
		SerialNumber:        "M-12",
		LogNumber:           "CLAD-0011",
		Location:            "Clad",
		Schedule:            calibration.ScheduleSemiannual,
		Status:              calibration.StatusNotInUse,
		LastCalibrationDate: date(2024, 7, 1),
		Comments:            "Broken 12/14/24.",
	},
}

func main() {
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}

	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化日志失败: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	db, err := database.NewDB(&cfg.Database, logger)
	if err != nil {
		logger.Fatal("数据库连接失败", zap.Error(err))
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("获取底层 sql.DB 失败", zap.Error(err))
	}
	if err := database.RunMigrations(sqlDB, logger); err != nil {
		logger.Fatal("数据库迁移失败", zap.Error(err))
	}

	repo := repository.NewRepository(db)
	ctx := context.Background()

	// 样例检测报告
	report := &model.TestReport{
		Title:         "Mettler Toledo Floor Scale Calibration - PA 24713",
		ReportNumber:  "PA 24713",
		ReportDate:    date(2024, 9, 11),
		SourceCompany: "Mettler Toledo",
		Notes:         "Floor scale calibration report for Clad and Forming areas.",
	}
	if err := repo.TestReport.Create(ctx, report); err != nil {
		logger.Fatal("写入样例报告失败", zap.Error(err))
	}

	seeded := 0
	for i := range sampleTools {
		tool := sampleTools[i]
		if err := repo.Tool.Create(ctx, &tool); err != nil {
			logger.Warn("写入样例工具失败（可能已存在）",
				zap.String("serial", tool.SerialNumber), zap.Error(err))
			continue
		}

		// 最近一次校准同步写入台账，保证详情页有历史可看
		if tool.LastCalibrationDate != nil {
			record := &model.CalibrationRecord{
				ToolID:          tool.ToolID,
				CalibrationDate: *tool.LastCalibrationDate,
				Result:          calibration.ResultPass,
				PerformedBy:     "Seed",
			}
			if tool.SerialNumber == "1124667-1ME" || tool.SerialNumber == "01240720B1" {
				record.CalibrationCompany = "Mettler Toledo"
				record.TestReportID = &report.TestReportID
			}
			if err := repo.Calibration.Create(ctx, record); err != nil {
				logger.Warn("写入样例校准记录失败", zap.Error(err))
			}
		}
		seeded++
	}

	logger.Info("样例数据写入完成", zap.Int("tools", seeded))
}
