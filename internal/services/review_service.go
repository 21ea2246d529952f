package services

import (
	"context"

	"store-service/internal/domain"
	"store-service/internal/repository"
)

type ReviewService struct {
	store repository.Store
}

func NewReviewService(store repository.Store) *ReviewService {
	return &ReviewService{store: store}
}

func (s *ReviewService) Create(ctx context.Context, r *domain.Review) error {
	if err := s.validate(ctx, r); err != nil {
		return err
	}
	return s.store.Reviews().Create(ctx, r)
}

func (s *ReviewService) Get(ctx context.Context, id uint64) (*domain.Review, error) {
	r, err := s.store.Reviews().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, ErrNotFound
	}
	return r, nil
}

func (s *ReviewService) List(ctx context.Context) ([]domain.Review, error) {
	return s.store.Reviews().List(ctx)
}

func (s *ReviewService) Update(ctx context.Context, r *domain.Review) error {
	existing, err := s.store.Reviews().FindByID(ctx, r.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrNotFound
	}
	if err := s.validate(ctx, r); err != nil {
		return err
	}
	return s.store.Reviews().Update(ctx, r)
}

func (s *ReviewService) Delete(ctx context.Context, id uint64) error {
	existing, err := s.store.Reviews().FindByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrNotFound
	}
	return s.store.Reviews().Delete(ctx, id)
}

func (s *ReviewService) validate(ctx context.Context, r *domain.Review) error {
	if r.Rating < 1 || r.Rating > 5 {
		return ErrInvalidRating
	}
	product, err := s.store.Products().FindByID(ctx, r.ProductID)
	if err != nil {
		return err
	}
	if product == nil {
		return ErrProductNotFound
	}
	account, err := s.store.Accounts().FindByID(ctx, r.AccountID)
	if err != nil {
		return err
	}
	if account == nil {
		return FieldErrors{"user": "Unknown account"}
	}
	return nil
}
