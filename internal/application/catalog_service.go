package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/juicyplanet/internal/domain/entity"
	repo "github.com/oksasatya/juicyplanet/internal/domain/repository"
	"github.com/oksasatya/juicyplanet/pkg/helpers"
)

const (
	productCachePrefix     = "products:list:"
	DefaultProductCacheTTL = 60 * time.Second
	defaultPageSize        = 20
	maxPageSize            = 100
)

// ProductIndex is the full-text side of the catalog
type ProductIndex interface {
	Index(ctx context.Context, p entity.Product) error
	Delete(ctx context.Context, id string) error
	// Search returns matching product ids, best match first
	Search(ctx context.Context, f entity.ProductFilter) ([]string, error)
}

// ImageStore stores an object and returns its public URL
type ImageStore interface {
	Upload(ctx context.Context, objectPath, contentType string, r io.Reader) (string, error)
}

type CatalogService struct {
	Products repo.ProductRepository
	Index    ProductIndex
	Images   ImageStore
	Cache    redis.Cmdable
	CacheTTL time.Duration
	Logger   *logrus.Logger
}

// NewCatalogService wires the catalog. index, images and cache may be nil.
func NewCatalogService(products repo.ProductRepository, index ProductIndex, images ImageStore, cache redis.Cmdable, logger *logrus.Logger) *CatalogService {
	if logger == nil {
		logger = helpers.NopLogger()
	}
	return &CatalogService{
		Products: products,
		Index:    index,
		Images:   images,
		Cache:    cache,
		CacheTTL: DefaultProductCacheTTL,
		Logger:   logger,
	}
}

type CreateProductInput struct {
	Name        string
	Description string
	Category    string
	PriceCents  int64
	Stock       int
	ImageURL    string
}

func pageBounds(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

func productCacheKey(f entity.ProductFilter) string {
	return fmt.Sprintf("%s%s:%s:%d:%d", productCachePrefix, f.Category, strings.ToLower(f.Query), f.Limit, f.Offset)
}

// List filters products by category and text query. Results are cached per
// filter until the next catalog write.
func (s *CatalogService) List(ctx context.Context, f entity.ProductFilter) ([]entity.Product, error) {
	f.Category = strings.TrimSpace(f.Category)
	f.Query = strings.TrimSpace(f.Query)
	f.Limit, f.Offset = pageBounds(f.Limit, f.Offset)

	key := productCacheKey(f)
	if s.Cache != nil {
		var cached []entity.Product
		if ok, err := helpers.RedisGetJSON(ctx, s.Cache, key, &cached); err != nil {
			s.Logger.WithError(err).WithField("key", key).Warn("product cache read failed")
		} else if ok {
			return cached, nil
		}
	}

	items, err := s.list(ctx, f)
	if err != nil {
		return nil, s.upstream("list products", err, nil)
	}

	if s.Cache != nil {
		if err := helpers.RedisSetJSON(ctx, s.Cache, key, items, s.CacheTTL); err != nil {
			s.Logger.WithError(err).WithField("key", key).Warn("product cache write failed")
		}
	}
	return items, nil
}

func (s *CatalogService) list(ctx context.Context, f entity.ProductFilter) ([]entity.Product, error) {
	if f.Query == "" || s.Index == nil {
		return s.Products.List(ctx, f)
	}
	ids, err := s.Index.Search(ctx, f)
	if err != nil {
		s.Logger.WithError(err).Warn("product search failed, falling back to sql")
		return s.Products.List(ctx, f)
	}
	return s.Products.GetByIDs(ctx, ids)
}

func (s *CatalogService) Get(ctx context.Context, id string) (*entity.Product, error) {
	p, err := s.Products.GetByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, fail(KindNotFound, "product not found")
	}
	if err != nil {
		return nil, s.upstream("get product", err, logrus.Fields{"product_id": id})
	}
	return p, nil
}

func (s *CatalogService) Create(ctx context.Context, in CreateProductInput) (*entity.Product, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fail(KindValidation, "name is required")
	}
	if in.PriceCents < 0 || in.Stock < 0 {
		return nil, fail(KindValidation, "price and stock must not be negative")
	}
	p := &entity.Product{
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		Category:    strings.TrimSpace(in.Category),
		PriceCents:  in.PriceCents,
		Stock:       in.Stock,
		ImageURL:    in.ImageURL,
	}
	if err := s.Products.Create(ctx, p); err != nil {
		return nil, s.upstream("create product", err, nil)
	}
	s.reindex(ctx, *p)
	s.invalidate(ctx)
	return p, nil
}

func (s *CatalogService) Delete(ctx context.Context, id string) error {
	err := s.Products.Delete(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return fail(KindNotFound, "product not found")
	}
	if err != nil {
		return s.upstream("delete product", err, logrus.Fields{"product_id": id})
	}
	if s.Index != nil {
		if err := s.Index.Delete(ctx, id); err != nil {
			s.Logger.WithError(err).WithField("product_id", id).Warn("product unindex failed")
		}
	}
	s.invalidate(ctx)
	return nil
}

// UploadImage stores an image for the product and records its URL
func (s *CatalogService) UploadImage(ctx context.Context, id, filename, contentType string, r io.Reader) (string, error) {
	if s.Images == nil {
		return "", upstream("upload product image", errors.New("image storage not configured"))
	}
	if !strings.HasPrefix(contentType, "image/") {
		return "", fail(KindValidation, "file must be an image")
	}
	p, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}

	objectPath := path.Join("products", p.ID, uuid.NewString()+strings.ToLower(path.Ext(filename)))
	url, err := s.Images.Upload(ctx, objectPath, contentType, r)
	if err != nil {
		return "", s.upstream("upload product image", err, logrus.Fields{"product_id": id})
	}
	if err := s.Products.SetImageURL(ctx, p.ID, url); err != nil {
		return "", s.upstream("save product image", err, logrus.Fields{"product_id": id})
	}
	p.ImageURL = url
	s.reindex(ctx, *p)
	s.invalidate(ctx)
	return url, nil
}

func (s *CatalogService) reindex(ctx context.Context, p entity.Product) {
	if s.Index == nil {
		return
	}
	if err := s.Index.Index(ctx, p); err != nil {
		s.Logger.WithError(err).WithField("product_id", p.ID).Warn("product index failed")
	}
}

func (s *CatalogService) invalidate(ctx context.Context) {
	if s.Cache == nil {
		return
	}
	if err := helpers.RedisDelPattern(ctx, s.Cache, productCachePrefix+"*"); err != nil {
		s.Logger.WithError(err).Warn("product cache invalidation failed")
	}
}

func (s *CatalogService) upstream(msg string, err error, fields logrus.Fields) error {
	helpers.LogError(s.Logger, msg+" failed", err, fields)
	return upstream(msg, err)
}
