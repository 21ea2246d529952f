package services

import (
	"context"
	"errors"

	"store-service/internal/domain"
	"store-service/internal/repository"
)

type CartService struct {
	store repository.Store
}

func NewCartService(store repository.Store) *CartService {
	return &CartService{store: store}
}

// Create rejects a second row for the same (account, product) pair with
// ErrDuplicateCartItem before the database constraint gets a say.
func (s *CartService) Create(ctx context.Context, ci *domain.CartItem) error {
	if ci.Quantity < 1 {
		return ErrInvalidQuantity
	}
	product, err := s.store.Products().FindByID(ctx, ci.ProductID)
	if err != nil {
		return err
	}
	if product == nil {
		return ErrProductNotFound
	}
	existing, err := s.store.CartItems().FindByAccountAndProduct(ctx, ci.AccountID, ci.ProductID)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrDuplicateCartItem
	}
	if ci.ProductName == "" {
		ci.ProductName = product.Name
		ci.UnitPrice = product.Price
	}
	if err := s.store.CartItems().Create(ctx, ci); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return ErrDuplicateCartItem
		}
		return err
	}
	return nil
}

func (s *CartService) Get(ctx context.Context, id uint64) (*domain.CartItem, error) {
	ci, err := s.store.CartItems().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ci == nil {
		return nil, ErrNotFound
	}
	return ci, nil
}

func (s *CartService) List(ctx context.Context) ([]domain.CartItem, error) {
	return s.store.CartItems().List(ctx)
}

func (s *CartService) Update(ctx context.Context, ci *domain.CartItem) error {
	existing, err := s.store.CartItems().FindByID(ctx, ci.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrNotFound
	}
	if ci.Quantity < 1 {
		return ErrInvalidQuantity
	}
	return s.store.CartItems().Update(ctx, ci)
}

func (s *CartService) Delete(ctx context.Context, id uint64) error {
	existing, err := s.store.CartItems().FindByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrNotFound
	}
	return s.store.CartItems().Delete(ctx, id)
}
