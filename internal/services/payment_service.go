package services

import (
	"context"

	"store-service/internal/domain"
	"store-service/internal/repository"
)

type PaymentService struct {
	store repository.Store
}

func NewPaymentService(store repository.Store) *PaymentService {
	return &PaymentService{store: store}
}

func (s *PaymentService) Create(ctx context.Context, p *domain.Payment) error {
	if err := s.validate(ctx, p); err != nil {
		return err
	}
	existing, err := s.store.Payments().FindByOrderID(ctx, p.OrderID)
	if err != nil {
		return err
	}
	if existing != nil {
		return FieldErrors{"order": "Payment for this order already exists"}
	}
	return s.store.Payments().Create(ctx, p)
}

func (s *PaymentService) Get(ctx context.Context, id uint64) (*domain.Payment, error) {
	p, err := s.store.Payments().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrNotFound
	}
	return p, nil
}

func (s *PaymentService) List(ctx context.Context) ([]domain.Payment, error) {
	return s.store.Payments().List(ctx)
}

func (s *PaymentService) Update(ctx context.Context, p *domain.Payment) error {
	existing, err := s.store.Payments().FindByID(ctx, p.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrNotFound
	}
	if err := s.validate(ctx, p); err != nil {
		return err
	}
	return s.store.Payments().Update(ctx, p)
}

func (s *PaymentService) Delete(ctx context.Context, id uint64) error {
	existing, err := s.store.Payments().FindByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrNotFound
	}
	return s.store.Payments().Delete(ctx, id)
}

func (s *PaymentService) validate(ctx context.Context, p *domain.Payment) error {
	if p.Method != domain.MethodCard && p.Method != domain.MethodCash {
		return ErrInvalidMethod
	}
	order, err := s.store.Orders().FindByID(ctx, p.OrderID)
	if err != nil {
		return err
	}
	if order == nil {
		return FieldErrors{"order": "Unknown order"}
	}
	return nil
}
