package http

import "github.com/shopspring/decimal"

type PlaceOrderItem struct {
	ID       uint64          `json:"id"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

type PlaceOrderRequest struct {
	Name    string           `json:"name"`
	Email   string           `json:"email"`
	Address string           `json:"address"`
	Items   []PlaceOrderItem `json:"items"`
}

type RegisterRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Password2 string `json:"password2"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
