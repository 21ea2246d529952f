package services

import (
	"context"
	"errors"
	"testing"

	"store-service/internal/domain"
	"store-service/internal/mocks"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func checkoutItems() []LineItem {
	return []LineItem{
		{ProductID: 1, Quantity: 2, Price: decimal.RequireFromString("9.99")},
		{ProductID: 2, Quantity: 1, Price: decimal.RequireFromString("5.00")},
	}
}

func TestCheckoutService_PlaceOrder_MissingFields(t *testing.T) {
	tests := []struct {
		name string
		req  CheckoutRequest
	}{
		{
			name: "missing name",
			req:  CheckoutRequest{Email: TestEmail, Address: TestAddress, Items: checkoutItems()},
		},
		{
			name: "missing email",
			req:  CheckoutRequest{Name: TestName, Address: TestAddress, Items: checkoutItems()},
		},
		{
			name: "missing address",
			req:  CheckoutRequest{Name: TestName, Email: TestEmail, Items: checkoutItems()},
		},
		{
			name: "empty items",
			req:  CheckoutRequest{Name: TestName, Email: TestEmail, Address: TestAddress},
		},
		{
			name: "blank name",
			req:  CheckoutRequest{Name: "   ", Email: TestEmail, Address: TestAddress, Items: checkoutItems()},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := mocks.NewMockStore()
			publisher := new(mocks.MockPublisher)
			service := NewCheckoutService(store, publisher)

			order, err := service.PlaceOrder(context.Background(), tt.req)

			assert.ErrorIs(t, err, ErrMissingFields)
			assert.Nil(t, order)
			store.AccountsRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			store.OrderRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			store.CartItemRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			store.PaymentRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestCheckoutService_PlaceOrder(t *testing.T) {
	tests := []struct {
		name          string
		req           CheckoutRequest
		setupMocks    func(*mocks.MockStore, *mocks.MockPublisher)
		expectedError error
		verify        func(*testing.T, *mocks.MockStore, *domain.Order)
	}{
		{
			name: "successful checkout with existing account",
			req: CheckoutRequest{
				Name:    TestName,
				Email:   TestEmail,
				Address: TestAddress,
				Items:   checkoutItems(),
			},
			setupMocks: func(store *mocks.MockStore, pub *mocks.MockPublisher) {
				store.AccountsRepo.On("FindByUsername", mock.Anything, TestEmail).
					Return(CreateMockAccount(TestAccountID, TestEmail, TestEmail), nil)
				store.ProductRepo.On("FindByID", mock.Anything, uint64(1)).
					Return(CreateMockProduct(1, "Coffee Beans", "9.99"), nil)
				store.ProductRepo.On("FindByID", mock.Anything, uint64(2)).
					Return(CreateMockProduct(2, "Filter Papers", "5.00"), nil)
				store.OrderRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Order")).
					Return(nil).Run(func(args mock.Arguments) {
					args.Get(1).(*domain.Order).ID = 42
				})
				store.CartItemRepo.On("FindByAccountAndProduct", mock.Anything, TestAccountID, mock.AnythingOfType("uint64")).
					Return(nil, nil)
				store.CartItemRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.CartItem")).
					Return(nil)
				store.OrderRepo.On("AttachItem", mock.Anything, mock.Anything, mock.Anything).
					Return(nil)
				store.PaymentRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Payment")).
					Return(nil)
				store.OrderRepo.On("Update", mock.Anything, mock.AnythingOfType("*domain.Order")).
					Return(nil)
				pub.On("Publish", mock.Anything, "order.placed", mock.Anything).Return(nil).Maybe()
			},
			verify: func(t *testing.T, store *mocks.MockStore, order *domain.Order) {
				assert.Equal(t, uint64(42), order.ID)
				assert.True(t, order.TotalPrice.Equal(decimal.RequireFromString("24.98")),
					"expected total 24.98, got %s", order.TotalPrice)
				assert.True(t, order.IsPaid)
				assert.Equal(t, TestAddress, order.ShippingAddress)

				store.CartItemRepo.AssertNumberOfCalls(t, "Create", 2)
				payment := store.PaymentRepo.Calls[0].Arguments.Get(1).(*domain.Payment)
				assert.Equal(t, uint64(42), payment.OrderID)
				assert.True(t, payment.AmountPaid.Equal(decimal.RequireFromString("24.98")))
				assert.True(t, payment.IsSuccessful)
				assert.Equal(t, domain.MethodCash, payment.Method)
				assert.NotEmpty(t, payment.PaymentRef)
			},
		},
		{
			name: "unknown customer gets provisioned",
			req: CheckoutRequest{
				Name:    TestName,
				Email:   "new@example.com",
				Address: TestAddress,
				Items:   []LineItem{{ProductID: 1, Quantity: 1, Price: decimal.RequireFromString("9.99")}},
			},
			setupMocks: func(store *mocks.MockStore, pub *mocks.MockPublisher) {
				store.AccountsRepo.On("FindByUsername", mock.Anything, "new@example.com").
					Return(nil, nil)
				store.AccountsRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Account")).
					Return(nil).Run(func(args mock.Arguments) {
					args.Get(1).(*domain.Account).ID = 9
				})
				store.ProductRepo.On("FindByID", mock.Anything, uint64(1)).
					Return(CreateMockProduct(1, "Coffee Beans", "9.99"), nil)
				store.OrderRepo.On("Create", mock.Anything, mock.Anything).Return(nil).
					Run(func(args mock.Arguments) { args.Get(1).(*domain.Order).ID = 7 })
				store.CartItemRepo.On("FindByAccountAndProduct", mock.Anything, uint64(9), uint64(1)).
					Return(nil, nil)
				store.CartItemRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
				store.OrderRepo.On("AttachItem", mock.Anything, mock.Anything, mock.Anything).Return(nil)
				store.PaymentRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
				store.OrderRepo.On("Update", mock.Anything, mock.Anything).Return(nil)
				pub.On("Publish", mock.Anything, "order.placed", mock.Anything).Return(nil).Maybe()
			},
			verify: func(t *testing.T, store *mocks.MockStore, order *domain.Order) {
				assert.Equal(t, uint64(9), order.AccountID)
				account := store.AccountsRepo.Calls[1].Arguments.Get(1).(*domain.Account)
				assert.Equal(t, "new@example.com", account.Username)
				assert.Equal(t, "new@example.com", account.Email)
			},
		},
		{
			name: "duplicate cart item merges quantity",
			req: CheckoutRequest{
				Name:    TestName,
				Email:   TestEmail,
				Address: TestAddress,
				Items:   []LineItem{{ProductID: 1, Quantity: 2, Price: decimal.RequireFromString("9.99")}},
			},
			setupMocks: func(store *mocks.MockStore, pub *mocks.MockPublisher) {
				store.AccountsRepo.On("FindByUsername", mock.Anything, TestEmail).
					Return(CreateMockAccount(TestAccountID, TestEmail, TestEmail), nil)
				store.ProductRepo.On("FindByID", mock.Anything, uint64(1)).
					Return(CreateMockProduct(1, "Coffee Beans", "9.99"), nil)
				store.OrderRepo.On("Create", mock.Anything, mock.Anything).Return(nil).
					Run(func(args mock.Arguments) { args.Get(1).(*domain.Order).ID = 8 })
				store.CartItemRepo.On("FindByAccountAndProduct", mock.Anything, TestAccountID, uint64(1)).
					Return(&domain.CartItem{ID: 7, AccountID: TestAccountID, ProductID: 1, Quantity: 1}, nil)
				store.CartItemRepo.On("Update", mock.Anything, mock.AnythingOfType("*domain.CartItem")).
					Return(nil)
				store.OrderRepo.On("AttachItem", mock.Anything, mock.Anything, mock.Anything).Return(nil)
				store.PaymentRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
				store.OrderRepo.On("Update", mock.Anything, mock.Anything).Return(nil)
				pub.On("Publish", mock.Anything, "order.placed", mock.Anything).Return(nil).Maybe()
			},
			verify: func(t *testing.T, store *mocks.MockStore, order *domain.Order) {
				store.CartItemRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
				var updated *domain.CartItem
				for _, call := range store.CartItemRepo.Calls {
					if call.Method == "Update" {
						updated = call.Arguments.Get(1).(*domain.CartItem)
					}
				}
				if assert.NotNil(t, updated) {
					assert.Equal(t, 3, updated.Quantity)
					assert.Equal(t, "Coffee Beans", updated.ProductName)
				}
			},
		},
		{
			name: "unknown product id",
			req: CheckoutRequest{
				Name:    TestName,
				Email:   TestEmail,
				Address: TestAddress,
				Items:   []LineItem{{ProductID: 999, Quantity: 1, Price: decimal.RequireFromString("9.99")}},
			},
			setupMocks: func(store *mocks.MockStore, pub *mocks.MockPublisher) {
				store.AccountsRepo.On("FindByUsername", mock.Anything, TestEmail).
					Return(CreateMockAccount(TestAccountID, TestEmail, TestEmail), nil)
				store.ProductRepo.On("FindByID", mock.Anything, uint64(999)).
					Return(nil, nil)
			},
			expectedError: ErrProductNotFound,
			verify: func(t *testing.T, store *mocks.MockStore, order *domain.Order) {
				store.OrderRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
				store.CartItemRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
				store.PaymentRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			},
		},
		{
			name: "submitted price diverges from catalog",
			req: CheckoutRequest{
				Name:    TestName,
				Email:   TestEmail,
				Address: TestAddress,
				Items:   []LineItem{{ProductID: 1, Quantity: 1, Price: decimal.RequireFromString("8.99")}},
			},
			setupMocks: func(store *mocks.MockStore, pub *mocks.MockPublisher) {
				store.AccountsRepo.On("FindByUsername", mock.Anything, TestEmail).
					Return(CreateMockAccount(TestAccountID, TestEmail, TestEmail), nil)
				store.ProductRepo.On("FindByID", mock.Anything, uint64(1)).
					Return(CreateMockProduct(1, "Coffee Beans", "9.99"), nil)
			},
			expectedError: ErrPriceMismatch,
			verify: func(t *testing.T, store *mocks.MockStore, order *domain.Order) {
				store.OrderRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			},
		},
		{
			name: "zero quantity",
			req: CheckoutRequest{
				Name:    TestName,
				Email:   TestEmail,
				Address: TestAddress,
				Items:   []LineItem{{ProductID: 1, Quantity: 0, Price: decimal.RequireFromString("9.99")}},
			},
			setupMocks: func(store *mocks.MockStore, pub *mocks.MockPublisher) {
				store.AccountsRepo.On("FindByUsername", mock.Anything, TestEmail).
					Return(CreateMockAccount(TestAccountID, TestEmail, TestEmail), nil)
			},
			expectedError: ErrInvalidQuantity,
		},
		{
			name: "payment write failure aborts the transaction",
			req: CheckoutRequest{
				Name:    TestName,
				Email:   TestEmail,
				Address: TestAddress,
				Items:   []LineItem{{ProductID: 1, Quantity: 1, Price: decimal.RequireFromString("9.99")}},
			},
			setupMocks: func(store *mocks.MockStore, pub *mocks.MockPublisher) {
				store.AccountsRepo.On("FindByUsername", mock.Anything, TestEmail).
					Return(CreateMockAccount(TestAccountID, TestEmail, TestEmail), nil)
				store.ProductRepo.On("FindByID", mock.Anything, uint64(1)).
					Return(CreateMockProduct(1, "Coffee Beans", "9.99"), nil)
				store.OrderRepo.On("Create", mock.Anything, mock.Anything).Return(nil).
					Run(func(args mock.Arguments) { args.Get(1).(*domain.Order).ID = 3 })
				store.CartItemRepo.On("FindByAccountAndProduct", mock.Anything, TestAccountID, uint64(1)).
					Return(nil, nil)
				store.CartItemRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
				store.OrderRepo.On("AttachItem", mock.Anything, mock.Anything, mock.Anything).Return(nil)
				store.PaymentRepo.On("Create", mock.Anything, mock.Anything).
					Return(errors.New("database error"))
			},
			expectedError: nil,
			verify: func(t *testing.T, store *mocks.MockStore, order *domain.Order) {
				store.OrderRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := mocks.NewMockStore()
			publisher := new(mocks.MockPublisher)
			tt.setupMocks(store, publisher)

			service := NewCheckoutService(store, publisher)
			order, err := service.PlaceOrder(context.Background(), tt.req)

			failing := tt.name == "payment write failure aborts the transaction"
			if tt.expectedError != nil || failing {
				assert.Error(t, err)
				if tt.expectedError != nil {
					assert.ErrorIs(t, err, tt.expectedError)
				}
				assert.Nil(t, order)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, order)
			}
			if tt.verify != nil {
				tt.verify(t, store, order)
			}
		})
	}
}
