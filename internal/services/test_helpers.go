package services

import (
	"store-service/internal/domain"

	"github.com/shopspring/decimal"
)

func CreateMockAccount(id uint64, username, email string) *domain.Account {
	return &domain.Account{
		ID:       id,
		Username: username,
		Email:    email,
	}
}

func CreateMockProduct(id uint64, name, price string) *domain.Product {
	return &domain.Product{
		ID:          id,
		Name:        name,
		Description: name + " description",
		Price:       decimal.RequireFromString(price),
	}
}

const (
	TestAccountID = uint64(1)
	TestEmail     = "buyer@example.com"
	TestAddress   = "1 Main Street"
	TestName      = "Buyer"
)
