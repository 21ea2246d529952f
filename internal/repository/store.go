package repository

import (
	"context"
	"errors"

	"store-service/internal/domain"
)

// ErrDuplicateKey reports a uniqueness constraint violation, e.g. two
// concurrent writers inserting the same (account, product) cart item.
var ErrDuplicateKey = errors.New("duplicate key")

// Store groups the per-entity repositories behind one handle so a service can
// run several writes against the same transaction. InTx executes fn with a
// Store bound to a single transaction; any error rolls everything back.
type Store interface {
	Accounts() AccountRepository
	Categories() CategoryRepository
	Products() ProductRepository
	Reviews() ReviewRepository
	CartItems() CartItemRepository
	Orders() OrderRepository
	Payments() PaymentRepository

	InTx(ctx context.Context, fn func(Store) error) error
}

// Find* methods return (nil, nil) when no row matches.

type AccountRepository interface {
	Create(ctx context.Context, a *domain.Account) error
	FindByID(ctx context.Context, id uint64) (*domain.Account, error)
	FindByUsername(ctx context.Context, username string) (*domain.Account, error)
}

type CategoryRepository interface {
	Create(ctx context.Context, c *domain.Category) error
	FindByID(ctx context.Context, id uint64) (*domain.Category, error)
	List(ctx context.Context) ([]domain.Category, error)
	Update(ctx context.Context, c *domain.Category) error
	Delete(ctx context.Context, id uint64) error
}

type ProductRepository interface {
	Create(ctx context.Context, p *domain.Product) error
	FindByID(ctx context.Context, id uint64) (*domain.Product, error)
	List(ctx context.Context, categoryID *uint64) ([]domain.Product, error)
	Search(ctx context.Context, query string, limit int) ([]domain.Product, error)
	Update(ctx context.Context, p *domain.Product) error
	Delete(ctx context.Context, id uint64) error
}

type ReviewRepository interface {
	Create(ctx context.Context, r *domain.Review) error
	FindByID(ctx context.Context, id uint64) (*domain.Review, error)
	List(ctx context.Context) ([]domain.Review, error)
	Update(ctx context.Context, r *domain.Review) error
	Delete(ctx context.Context, id uint64) error
}

type CartItemRepository interface {
	Create(ctx context.Context, ci *domain.CartItem) error
	FindByID(ctx context.Context, id uint64) (*domain.CartItem, error)
	FindByAccountAndProduct(ctx context.Context, accountID, productID uint64) (*domain.CartItem, error)
	List(ctx context.Context) ([]domain.CartItem, error)
	Update(ctx context.Context, ci *domain.CartItem) error
	Delete(ctx context.Context, id uint64) error
}

type OrderRepository interface {
	Create(ctx context.Context, o *domain.Order) error
	FindByID(ctx context.Context, id uint64) (*domain.Order, error)
	List(ctx context.Context) ([]domain.Order, error)
	Update(ctx context.Context, o *domain.Order) error
	Delete(ctx context.Context, id uint64) error
	AttachItem(ctx context.Context, o *domain.Order, ci *domain.CartItem) error
}

type PaymentRepository interface {
	Create(ctx context.Context, p *domain.Payment) error
	FindByID(ctx context.Context, id uint64) (*domain.Payment, error)
	FindByOrderID(ctx context.Context, orderID uint64) (*domain.Payment, error)
	List(ctx context.Context) ([]domain.Payment, error)
	Update(ctx context.Context, p *domain.Payment) error
	Delete(ctx context.Context, id uint64) error
}
