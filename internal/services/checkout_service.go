package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"store-service/internal/domain"
	rabbit "store-service/internal/infra/rabbitmq"
	"store-service/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type LineItem struct {
	ProductID uint64
	Quantity  int
	Price     decimal.Decimal
}

type CheckoutRequest struct {
	Name    string
	Email   string
	Address string
	Items   []LineItem
}

// CheckoutService turns a submitted line-item list into persisted Order,
// CartItem and Payment rows. Every write runs inside one transaction; a
// failure at any step leaves no rows behind.
type CheckoutService struct {
	store     repository.Store
	publisher rabbit.PublisherInterface
}

func NewCheckoutService(store repository.Store, publisher rabbit.PublisherInterface) *CheckoutService {
	return &CheckoutService{store: store, publisher: publisher}
}

// PlaceOrder does not require a prior login: the purchasing account is looked
// up by email-as-username and provisioned on the spot when absent. Submitted
// prices are a display echo only; totals come from the catalog price, and the
// whole checkout is rejected when the two diverge.
func (s *CheckoutService) PlaceOrder(ctx context.Context, req CheckoutRequest) (*domain.Order, error) {
	if strings.TrimSpace(req.Name) == "" ||
		strings.TrimSpace(req.Email) == "" ||
		strings.TrimSpace(req.Address) == "" ||
		len(req.Items) == 0 {
		return nil, ErrMissingFields
	}

	var order *domain.Order
	err := s.store.InTx(ctx, func(tx repository.Store) error {
		account, err := s.resolveAccount(ctx, tx, req.Email)
		if err != nil {
			return err
		}

		products := make([]*domain.Product, len(req.Items))
		total := decimal.Zero
		for i, item := range req.Items {
			if item.Quantity < 1 {
				return ErrInvalidQuantity
			}
			product, err := tx.Products().FindByID(ctx, item.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return fmt.Errorf("%w: id %d", ErrProductNotFound, item.ProductID)
			}
			if !product.Price.Equal(item.Price) {
				return fmt.Errorf("%w: product %d", ErrPriceMismatch, item.ProductID)
			}
			products[i] = product
			total = total.Add(product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
		}

		order = &domain.Order{
			AccountID:       account.ID,
			TotalPrice:      total,
			ShippingAddress: req.Address,
		}
		if err := tx.Orders().Create(ctx, order); err != nil {
			return err
		}

		for i, item := range req.Items {
			cartItem, err := s.upsertCartItem(ctx, tx, account.ID, products[i], item.Quantity)
			if err != nil {
				return err
			}
			if err := tx.Orders().AttachItem(ctx, order, cartItem); err != nil {
				return err
			}
		}

		// Simulated gateway: every payment succeeds. The order's paid flag
		// flips in the same transaction so the two never disagree.
		payment := &domain.Payment{
			OrderID:      order.ID,
			Method:       domain.MethodCash,
			PaymentRef:   uuid.NewString(),
			AmountPaid:   total,
			IsSuccessful: true,
			PaidAt:       time.Now(),
		}
		if err := tx.Payments().Create(ctx, payment); err != nil {
			return err
		}

		order.IsPaid = true
		return tx.Orders().Update(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	go s.publishOrderPlaced(context.Background(), order, len(req.Items))

	return order, nil
}

func (s *CheckoutService) resolveAccount(ctx context.Context, tx repository.Store, email string) (*domain.Account, error) {
	account, err := tx.Accounts().FindByUsername(ctx, email)
	if err != nil {
		return nil, err
	}
	if account != nil {
		return account, nil
	}
	account = &domain.Account{Username: email, Email: email}
	if err := tx.Accounts().Create(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

// upsertCartItem merges quantity into an existing (account, product) row
// instead of tripping the uniqueness constraint; a fresh row snapshots the
// catalog price and name at purchase time.
func (s *CheckoutService) upsertCartItem(ctx context.Context, tx repository.Store, accountID uint64, product *domain.Product, quantity int) (*domain.CartItem, error) {
	existing, err := tx.CartItems().FindByAccountAndProduct(ctx, accountID, product.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		existing.Quantity += quantity
		existing.UnitPrice = product.Price
		existing.ProductName = product.Name
		if err := tx.CartItems().Update(ctx, existing); err != nil {
			return nil, err
		}
		return existing, nil
	}

	cartItem := &domain.CartItem{
		AccountID:   accountID,
		ProductID:   product.ID,
		Quantity:    quantity,
		UnitPrice:   product.Price,
		ProductName: product.Name,
	}
	if err := tx.CartItems().Create(ctx, cartItem); err != nil {
		// A concurrent checkout inserted the same pair between our lookup
		// and this insert. Report a conflict the client can retry.
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrDuplicateCartItem
		}
		return nil, err
	}
	return cartItem, nil
}

func (s *CheckoutService) publishOrderPlaced(ctx context.Context, order *domain.Order, itemCount int) {
	evt := domain.OrderPlacedEvent{
		OrderID:    order.ID,
		AccountID:  order.AccountID,
		TotalPrice: order.TotalPrice,
		ItemCount:  itemCount,
		CreatedAt:  order.CreatedAt,
	}
	if err := s.publisher.Publish(ctx, "order.placed", evt); err != nil {
		log.Printf("failed to publish order.placed for order %d: %v", order.ID, err)
	}
}
