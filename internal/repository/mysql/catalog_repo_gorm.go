package mysql

import (
	"context"
	"errors"
	"log"
	"strings"

	"store-service/internal/domain"

	"gorm.io/gorm"
)

type categoryRepo struct {
	db *gorm.DB
}

func (r *categoryRepo) Create(ctx context.Context, c *domain.Category) error {
	if err := r.db.WithContext(ctx).Create(c).Error; err != nil {
		log.Printf("category create error: %v", err)
		return err
	}
	return nil
}

func (r *categoryRepo) FindByID(ctx context.Context, id uint64) (*domain.Category, error) {
	var c domain.Category
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		log.Printf("category FindByID error: %v", err)
		return nil, err
	}
	return &c, nil
}

func (r *categoryRepo) List(ctx context.Context) ([]domain.Category, error) {
	var out []domain.Category
	if err := r.db.WithContext(ctx).Find(&out).Error; err != nil {
		log.Printf("category list error: %v", err)
		return nil, err
	}
	return out, nil
}

func (r *categoryRepo) Update(ctx context.Context, c *domain.Category) error {
	if err := r.db.WithContext(ctx).Save(c).Error; err != nil {
		log.Printf("category update error: %v", err)
		return err
	}
	return nil
}

// Delete detaches referencing products before removing the category, so a
// product survives its category (category_id goes null).
func (r *categoryRepo) Delete(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&domain.Product{}).Where("category_id = ?", id).
			Update("category_id", nil).Error; err != nil {
			log.Printf("category detach error: %v", err)
			return err
		}
		if err := tx.Delete(&domain.Category{}, id).Error; err != nil {
			log.Printf("category delete error: %v", err)
			return err
		}
		return nil
	})
}

type productRepo struct {
	db *gorm.DB
}

func (r *productRepo) Create(ctx context.Context, p *domain.Product) error {
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		log.Printf("product create error: %v", err)
		return err
	}
	return nil
}

func (r *productRepo) FindByID(ctx context.Context, id uint64) (*domain.Product, error) {
	var p domain.Product
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		log.Printf("product FindByID error: %v", err)
		return nil, err
	}
	return &p, nil
}

func (r *productRepo) List(ctx context.Context, categoryID *uint64) ([]domain.Product, error) {
	q := r.db.WithContext(ctx)
	if categoryID != nil {
		q = q.Where("category_id = ?", *categoryID)
	}
	var out []domain.Product
	if err := q.Find(&out).Error; err != nil {
		log.Printf("product list error: %v", err)
		return nil, err
	}
	return out, nil
}

// Search matches the query as a case-insensitive substring of name or
// description. MySQL LIKE is case-insensitive under the default collation,
// the LOWER pair keeps it so regardless of column collation.
func (r *productRepo) Search(ctx context.Context, query string, limit int) ([]domain.Product, error) {
	pattern := "%" + strings.ToLower(query) + "%"
	var out []domain.Product
	err := r.db.WithContext(ctx).
		Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern).
		Limit(limit).
		Find(&out).Error
	if err != nil {
		log.Printf("product search error: %v", err)
		return nil, err
	}
	return out, nil
}

func (r *productRepo) Update(ctx context.Context, p *domain.Product) error {
	if err := r.db.WithContext(ctx).Save(p).Error; err != nil {
		log.Printf("product update error: %v", err)
		return err
	}
	return nil
}

func (r *productRepo) Delete(ctx context.Context, id uint64) error {
	if err := r.db.WithContext(ctx).Delete(&domain.Product{}, id).Error; err != nil {
		log.Printf("product delete error: %v", err)
		return err
	}
	return nil
}

type reviewRepo struct {
	db *gorm.DB
}

func (r *reviewRepo) Create(ctx context.Context, rv *domain.Review) error {
	if err := r.db.WithContext(ctx).Create(rv).Error; err != nil {
		log.Printf("review create error: %v", err)
		return err
	}
	return nil
}

func (r *reviewRepo) FindByID(ctx context.Context, id uint64) (*domain.Review, error) {
	var rv domain.Review
	if err := r.db.WithContext(ctx).First(&rv, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		log.Printf("review FindByID error: %v", err)
		return nil, err
	}
	return &rv, nil
}

func (r *reviewRepo) List(ctx context.Context) ([]domain.Review, error) {
	var out []domain.Review
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&out).Error; err != nil {
		log.Printf("review list error: %v", err)
		return nil, err
	}
	return out, nil
}

func (r *reviewRepo) Update(ctx context.Context, rv *domain.Review) error {
	if err := r.db.WithContext(ctx).Save(rv).Error; err != nil {
		log.Printf("review update error: %v", err)
		return err
	}
	return nil
}

func (r *reviewRepo) Delete(ctx context.Context, id uint64) error {
	if err := r.db.WithContext(ctx).Delete(&domain.Review{}, id).Error; err != nil {
		log.Printf("review delete error: %v", err)
		return err
	}
	return nil
}
