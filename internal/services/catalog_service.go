package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"store-service/internal/domain"
	"store-service/internal/repository"

	"github.com/go-redis/redis/v8"
	"golang.org/x/sync/errgroup"
)

const (
	searchResultLimit = 10
	minSearchQueryLen = 2

	productCacheTTL = time.Minute
	searchCacheTTL  = 10 * time.Second
)

// CatalogService serves category and product reads and writes. Product
// fetches and searches go through Redis cache-aside when a client is set.
type CatalogService struct {
	store       repository.Store
	redisClient *redis.Client
}

func NewCatalogService(store repository.Store) *CatalogService {
	return &CatalogService{store: store}
}

func (s *CatalogService) SetRedisClient(client *redis.Client) {
	s.redisClient = client
}

func (s *CatalogService) CreateCategory(ctx context.Context, c *domain.Category) error {
	if strings.TrimSpace(c.Name) == "" {
		return FieldErrors{"name": "This field is required"}
	}
	return s.store.Categories().Create(ctx, c)
}

func (s *CatalogService) GetCategory(ctx context.Context, id uint64) (*domain.Category, error) {
	c, err := s.store.Categories().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrNotFound
	}
	return c, nil
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return s.store.Categories().List(ctx)
}

func (s *CatalogService) UpdateCategory(ctx context.Context, c *domain.Category) error {
	existing, err := s.store.Categories().FindByID(ctx, c.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrNotFound
	}
	if strings.TrimSpace(c.Name) == "" {
		return FieldErrors{"name": "This field is required"}
	}
	return s.store.Categories().Update(ctx, c)
}

// DeleteCategory detaches products rather than deleting them; the repository
// nulls category_id on every referencing product.
func (s *CatalogService) DeleteCategory(ctx context.Context, id uint64) error {
	existing, err := s.store.Categories().FindByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrNotFound
	}
	return s.store.Categories().Delete(ctx, id)
}

func (s *CatalogService) CreateProduct(ctx context.Context, p *domain.Product) error {
	if err := validateProduct(p); err != nil {
		return err
	}
	return s.store.Products().Create(ctx, p)
}

func (s *CatalogService) GetProduct(ctx context.Context, id uint64) (*domain.Product, error) {
	cacheKey := fmt.Sprintf("product:%d", id)

	if s.redisClient != nil {
		cached, err := s.redisClient.Get(ctx, cacheKey).Result()
		if err == nil {
			var p domain.Product
			if err := json.Unmarshal([]byte(cached), &p); err == nil {
				return &p, nil
			}
		}
	}

	p, err := s.store.Products().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrNotFound
	}

	if s.redisClient != nil {
		if data, err := json.Marshal(p); err == nil {
			s.redisClient.Set(ctx, cacheKey, data, productCacheTTL)
		}
	}
	return p, nil
}

func (s *CatalogService) ListProducts(ctx context.Context, categoryID *uint64) ([]domain.Product, error) {
	return s.store.Products().List(ctx, categoryID)
}

func (s *CatalogService) UpdateProduct(ctx context.Context, p *domain.Product) error {
	existing, err := s.store.Products().FindByID(ctx, p.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrNotFound
	}
	if err := validateProduct(p); err != nil {
		return err
	}
	if err := s.store.Products().Update(ctx, p); err != nil {
		return err
	}
	s.invalidateProduct(ctx, p.ID)
	return nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id uint64) error {
	existing, err := s.store.Products().FindByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrNotFound
	}
	if err := s.store.Products().Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateProduct(ctx, id)
	return nil
}

// Search returns up to ten products whose name or description contains the
// query, case-insensitively. A trimmed query shorter than two characters is
// not an error: browsing UIs fire on every keystroke, so it yields an empty
// list. Results sit in Redis for a few seconds; staleness is bounded by the
// TTL instead of write invalidation.
func (s *CatalogService) Search(ctx context.Context, query string) ([]domain.Product, error) {
	trimmed := strings.TrimSpace(query)
	if len(trimmed) < minSearchQueryLen {
		return []domain.Product{}, nil
	}

	cacheKey := "search:" + strings.ToLower(trimmed)
	if s.redisClient != nil {
		cached, err := s.redisClient.Get(ctx, cacheKey).Result()
		if err == nil {
			var out []domain.Product
			if err := json.Unmarshal([]byte(cached), &out); err == nil {
				return out, nil
			}
		}
	}

	out, err := s.store.Products().Search(ctx, trimmed, searchResultLimit)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []domain.Product{}
	}

	if s.redisClient != nil {
		if data, err := json.Marshal(out); err == nil {
			s.redisClient.Set(ctx, cacheKey, data, searchCacheTTL)
		}
	}
	return out, nil
}

// WarmupProductCache primes the product cache, typically at startup. A miss
// on one product does not stop the rest.
func (s *CatalogService) WarmupProductCache(ctx context.Context, productIDs []uint64) error {
	if s.redisClient == nil {
		return nil
	}
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for _, id := range productIDs {
		id := id
		g.Go(func() error {
			p, err := s.store.Products().FindByID(ctx, id)
			if err != nil {
				log.Printf("failed to warm up cache for product %d: %v", id, err)
				return nil
			}
			if p == nil {
				return nil
			}
			cacheKey := fmt.Sprintf("product:%d", id)
			if data, err := json.Marshal(p); err == nil {
				s.redisClient.Set(ctx, cacheKey, data, 5*time.Minute)
			}
			return nil
		})
	}
	return g.Wait()
}

func (s *CatalogService) invalidateProduct(ctx context.Context, id uint64) {
	if s.redisClient == nil {
		return
	}
	s.redisClient.Del(ctx, fmt.Sprintf("product:%d", id))
}

func validateProduct(p *domain.Product) error {
	fe := FieldErrors{}
	if strings.TrimSpace(p.Name) == "" {
		fe["name"] = "This field is required"
	}
	if p.Price.IsNegative() {
		fe["price"] = "Price must not be negative"
	}
	if len(fe) > 0 {
		return fe
	}
	return nil
}
