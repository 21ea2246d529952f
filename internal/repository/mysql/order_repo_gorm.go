package mysql

import (
	"context"
	"errors"
	"log"

	"store-service/internal/domain"
	"store-service/internal/repository"

	"gorm.io/gorm"
)

type cartItemRepo struct {
	db *gorm.DB
}

func (r *cartItemRepo) Create(ctx context.Context, ci *domain.CartItem) error {
	if err := r.db.WithContext(ctx).Create(ci).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return repository.ErrDuplicateKey
		}
		log.Printf("cart item create error: %v", err)
		return err
	}
	return nil
}

func (r *cartItemRepo) FindByID(ctx context.Context, id uint64) (*domain.CartItem, error) {
	var ci domain.CartItem
	if err := r.db.WithContext(ctx).First(&ci, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		log.Printf("cart item FindByID error: %v", err)
		return nil, err
	}
	return &ci, nil
}

func (r *cartItemRepo) FindByAccountAndProduct(ctx context.Context, accountID, productID uint64) (*domain.CartItem, error) {
	var ci domain.CartItem
	err := r.db.WithContext(ctx).
		Where("account_id = ? AND product_id = ?", accountID, productID).
		First(&ci).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		log.Printf("cart item FindByAccountAndProduct error: %v", err)
		return nil, err
	}
	return &ci, nil
}

func (r *cartItemRepo) List(ctx context.Context) ([]domain.CartItem, error) {
	var out []domain.CartItem
	if err := r.db.WithContext(ctx).Find(&out).Error; err != nil {
		log.Printf("cart item list error: %v", err)
		return nil, err
	}
	return out, nil
}

func (r *cartItemRepo) Update(ctx context.Context, ci *domain.CartItem) error {
	if err := r.db.WithContext(ctx).Save(ci).Error; err != nil {
		log.Printf("cart item update error: %v", err)
		return err
	}
	return nil
}

func (r *cartItemRepo) Delete(ctx context.Context, id uint64) error {
	if err := r.db.WithContext(ctx).Delete(&domain.CartItem{}, id).Error; err != nil {
		log.Printf("cart item delete error: %v", err)
		return err
	}
	return nil
}

type orderRepo struct {
	db *gorm.DB
}

func (r *orderRepo) Create(ctx context.Context, o *domain.Order) error {
	result := r.db.WithContext(ctx).Create(o)
	if result.Error != nil {
		log.Printf("order create error: %v", result.Error)
		return result.Error
	}
	if o.ID == 0 {
		log.Printf("order saved but ID is still 0, rows affected: %d", result.RowsAffected)
		return errors.New("failed to assign order ID")
	}
	return nil
}

func (r *orderRepo) FindByID(ctx context.Context, id uint64) (*domain.Order, error) {
	var o domain.Order
	if err := r.db.WithContext(ctx).Preload("Items").First(&o, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		log.Printf("order FindByID error: %v", err)
		return nil, err
	}
	return &o, nil
}

func (r *orderRepo) List(ctx context.Context) ([]domain.Order, error) {
	var out []domain.Order
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&out).Error; err != nil {
		log.Printf("order list error: %v", err)
		return nil, err
	}
	return out, nil
}

func (r *orderRepo) Update(ctx context.Context, o *domain.Order) error {
	if err := r.db.WithContext(ctx).Save(o).Error; err != nil {
		log.Printf("order update error: %v", err)
		return err
	}
	return nil
}

func (r *orderRepo) Delete(ctx context.Context, id uint64) error {
	if err := r.db.WithContext(ctx).Delete(&domain.Order{}, id).Error; err != nil {
		log.Printf("order delete error: %v", err)
		return err
	}
	return nil
}

func (r *orderRepo) AttachItem(ctx context.Context, o *domain.Order, ci *domain.CartItem) error {
	if err := r.db.WithContext(ctx).Model(o).Association("Items").Append(ci); err != nil {
		log.Printf("order attach item error: %v", err)
		return err
	}
	return nil
}

type paymentRepo struct {
	db *gorm.DB
}

func (r *paymentRepo) Create(ctx context.Context, p *domain.Payment) error {
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		log.Printf("payment create error: %v", err)
		return err
	}
	return nil
}

func (r *paymentRepo) FindByID(ctx context.Context, id uint64) (*domain.Payment, error) {
	var p domain.Payment
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		log.Printf("payment FindByID error: %v", err)
		return nil, err
	}
	return &p, nil
}

func (r *paymentRepo) FindByOrderID(ctx context.Context, orderID uint64) (*domain.Payment, error) {
	var p domain.Payment
	err := r.db.WithContext(ctx).Where("order_id = ?", orderID).First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		log.Printf("payment FindByOrderID error: %v", err)
		return nil, err
	}
	return &p, nil
}

func (r *paymentRepo) List(ctx context.Context) ([]domain.Payment, error) {
	var out []domain.Payment
	if err := r.db.WithContext(ctx).Order("paid_at DESC").Find(&out).Error; err != nil {
		log.Printf("payment list error: %v", err)
		return nil, err
	}
	return out, nil
}

func (r *paymentRepo) Update(ctx context.Context, p *domain.Payment) error {
	if err := r.db.WithContext(ctx).Save(p).Error; err != nil {
		log.Printf("payment update error: %v", err)
		return err
	}
	return nil
}

func (r *paymentRepo) Delete(ctx context.Context, id uint64) error {
	if err := r.db.WithContext(ctx).Delete(&domain.Payment{}, id).Error; err != nil {
		log.Printf("payment delete error: %v", err)
		return err
	}
	return nil
}
