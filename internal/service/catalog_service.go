package service

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"sweet-shop-api/internal/core/cache"
	"sweet-shop-api/internal/domain"
	"sweet-shop-api/pkg/utils"
)

const catalogCacheKey = "catalog:sweets"

type SweetInput struct {
	Name        string
	Description string
	Price       decimal.Decimal
	Stock       int
	Category    string
	ImageURL    *string
}

type CatalogService struct {
	sweets domain.SweetRepository
	cache  *cache.Cache // 可为 nil（未配置 redis）
	ttl    time.Duration
	log    *zap.Logger
}

func NewCatalogService(sweets domain.SweetRepository, c *cache.Cache, ttl time.Duration, log *zap.Logger) *CatalogService {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &CatalogService{sweets: sweets, cache: c, ttl: ttl, log: log}
}

// List 无筛选的全量目录走缓存；带搜索词/分类时直查
func (s *CatalogService) List(ctx context.Context, q, category string) ([]domain.Sweet, error) {
	if s.cache == nil || strings.TrimSpace(q) != "" || (category != "" && category != "all") {
		return s.sweets.Search(ctx, q, category)
	}
	return cache.GetOrLoadJSON(s.cache, ctx, catalogCacheKey, s.ttl,
		func(ctx context.Context) ([]domain.Sweet, error) {
			return s.sweets.Search(ctx, "", "")
		})
}

func (s *CatalogService) Get(ctx context.Context, id string) (*domain.Sweet, error) {
	sw, err := s.sweets.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sw == nil {
		return nil, domain.ErrSweetNotFound
	}
	return sw, nil
}

func (s *CatalogService) Create(ctx context.Context, in SweetInput) (*domain.Sweet, error) {
	sw, err := s.build(utils.NewID(), in)
	if err != nil {
		return nil, err
	}
	if err := s.sweets.Create(ctx, sw); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	s.log.Info("sweet created", zap.String("sweet_id", sw.ID), zap.String("name", sw.Name))
	return sw, nil
}

// Update 整行替换已有商品
func (s *CatalogService) Update(ctx context.Context, id string, in SweetInput) (*domain.Sweet, error) {
	existing, err := s.sweets.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, domain.ErrSweetNotFound
	}
	sw, err := s.build(id, in)
	if err != nil {
		return nil, err
	}
	sw.CreatedAt = existing.CreatedAt
	if err := s.sweets.Update(ctx, sw); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	s.log.Info("sweet updated", zap.String("sweet_id", id))
	return sw, nil
}

func (s *CatalogService) Delete(ctx context.Context, id string) error {
	if err := s.sweets.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	s.log.Info("sweet deleted", zap.String("sweet_id", id))
	return nil
}

func (s *CatalogService) build(id string, in SweetInput) (*domain.Sweet, error) {
	if in.Price.IsNegative() {
		return nil, domain.ErrNegativePrice
	}
	if in.Stock < 0 {
		return nil, domain.ErrNegativeStock
	}
	return &domain.Sweet{
		ID:          id,
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
		Price:       in.Price,
		Stock:       in.Stock,
		Category:    strings.TrimSpace(in.Category),
		ImageURL:    in.ImageURL,
	}, nil
}

func (s *CatalogService) invalidate(ctx context.Context) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, catalogCacheKey)
	}
}
