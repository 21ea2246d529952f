package mysql

import (
	"context"

	"store-service/internal/repository"

	"gorm.io/gorm"
)

type gormStore struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) repository.Store {
	return &gormStore{db: db}
}

func (s *gormStore) Accounts() repository.AccountRepository    { return &accountRepo{db: s.db} }
func (s *gormStore) Categories() repository.CategoryRepository { return &categoryRepo{db: s.db} }
func (s *gormStore) Products() repository.ProductRepository    { return &productRepo{db: s.db} }
func (s *gormStore) Reviews() repository.ReviewRepository      { return &reviewRepo{db: s.db} }
func (s *gormStore) CartItems() repository.CartItemRepository  { return &cartItemRepo{db: s.db} }
func (s *gormStore) Orders() repository.OrderRepository        { return &orderRepo{db: s.db} }
func (s *gormStore) Payments() repository.PaymentRepository    { return &paymentRepo{db: s.db} }

// InTx rebinds the store to a single transaction; returning an error from fn
// rolls back every write issued through the bound store.
func (s *gormStore) InTx(ctx context.Context, fn func(repository.Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormStore{db: tx})
	})
}

var _ repository.Store = (*gormStore)(nil)
