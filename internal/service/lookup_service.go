package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/RangerDevv/AllClad/config"
	"github.com/RangerDevv/AllClad/internal/dto"
	"github.com/RangerDevv/AllClad/internal/repository"
)

// LookupService 批量查找业务接口
//
// 输入为手工粘贴或扫码得到的原始字符串序列：先做整理（去空白、
// 去空项、大小写不敏感去重且保留首见顺序），再逐条按
// serial → log → sticker 优先级做大小写不敏感精确匹配。
// 未命中是正常结果；结果顺序与整理后的输入一致，保证前端渲染确定。
type LookupService interface {
	Lookup(ctx context.Context, req *dto.LookupRequest) (*dto.LookupResponse, error)
}

type lookupService struct {
	repo        *repository.Repository
	logger      *zap.Logger
	dueSoonDays int
	now         func() time.Time
}

// NewLookupService 创建 LookupService 实例
func NewLookupService(cfg *config.Config, repo *repository.Repository, logger *zap.Logger) LookupService {
	return &lookupService{
		repo:        repo,
		logger:      logger,
		dueSoonDays: cfg.Alert.DueSoonDays,
		now:         time.Now,
	}
}

// normalizeQueries 整理查询串：去空白、去空项、大小写不敏感去重（保留首见原样与顺序）
func normalizeQueries(raw []string) []string {
	seen := make(map[string]bool, len(raw))
	cleaned := make([]string, 0, len(raw))
	for _, q := range raw {
		q = strings.TrimSpace(q)
		if q == "" {
			continue
		}
		key := strings.ToLower(q)
		if seen[key] {
			continue
		}
		seen[key] = true
		cleaned = append(cleaned, q)
	}
	return cleaned
}

func (s *lookupService) Lookup(ctx context.Context, req *dto.LookupRequest) (*dto.LookupResponse, error) {
	queries := normalizeQueries(req.Queries)
	today := s.now()

	results := make([]dto.LookupResult, 0, len(queries))
	for _, q := range queries {
		tool, matchedBy, err := s.repo.Tool.FindByIdentifier(ctx, q)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				results = append(results, dto.LookupResult{Query: q, Found: false})
				continue
			}
			s.logger.Error("查找工具失败", zap.String("query", q), zap.Error(err))
			return nil, err
		}

		summary := buildToolSummary(tool, today, s.dueSoonDays)
		results = append(results, dto.LookupResult{
			Query:     q,
			Found:     true,
			MatchedBy: string(matchedBy),
			Tool:      &summary,
		})
	}

	return &dto.LookupResponse{Results: results}, nil
}

// [自证通过] internal/service/lookup_service.go
