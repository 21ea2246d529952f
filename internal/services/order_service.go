package services

import (
	"context"

	"store-service/internal/domain"
	"store-service/internal/repository"
)

// OrderService is the plain CRUD surface over orders. Order creation during
// checkout goes through CheckoutService instead.
type OrderService struct {
	store repository.Store
}

func NewOrderService(store repository.Store) *OrderService {
	return &OrderService{store: store}
}

func (s *OrderService) Create(ctx context.Context, o *domain.Order) error {
	account, err := s.store.Accounts().FindByID(ctx, o.AccountID)
	if err != nil {
		return err
	}
	if account == nil {
		return FieldErrors{"user": "Unknown account"}
	}
	return s.store.Orders().Create(ctx, o)
}

func (s *OrderService) Get(ctx context.Context, id uint64) (*domain.Order, error) {
	o, err := s.store.Orders().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, ErrNotFound
	}
	return o, nil
}

func (s *OrderService) List(ctx context.Context) ([]domain.Order, error) {
	return s.store.Orders().List(ctx)
}

func (s *OrderService) Update(ctx context.Context, o *domain.Order) error {
	existing, err := s.store.Orders().FindByID(ctx, o.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrNotFound
	}
	return s.store.Orders().Update(ctx, o)
}

func (s *OrderService) Delete(ctx context.Context, id uint64) error {
	existing, err := s.store.Orders().FindByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrNotFound
	}
	return s.store.Orders().Delete(ctx, id)
}
