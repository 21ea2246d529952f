package mysql

import (
	"context"
	"errors"
	"log"

	"store-service/internal/domain"
	"store-service/internal/repository"

	"gorm.io/gorm"
)

type accountRepo struct {
	db *gorm.DB
}

func (r *accountRepo) Create(ctx context.Context, a *domain.Account) error {
	if err := r.db.WithContext(ctx).Create(a).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return repository.ErrDuplicateKey
		}
		log.Printf("account create error: %v", err)
		return err
	}
	return nil
}

func (r *accountRepo) FindByID(ctx context.Context, id uint64) (*domain.Account, error) {
	var a domain.Account
	if err := r.db.WithContext(ctx).First(&a, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		log.Printf("account FindByID error: %v", err)
		return nil, err
	}
	return &a, nil
}

func (r *accountRepo) FindByUsername(ctx context.Context, username string) (*domain.Account, error) {
	var a domain.Account
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&a).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		log.Printf("account FindByUsername error: %v", err)
		return nil, err
	}
	return &a, nil
}
