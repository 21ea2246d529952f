package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentMethod string

const (
	MethodCard PaymentMethod = "card"
	MethodCash PaymentMethod = "cash"
)

// CartItem links an account to a product it intends to buy. At most one row
// exists per (account, product) pair. UnitPrice and ProductName are snapshots
// taken at checkout time so order history survives catalog edits.
type CartItem struct {
	ID          uint64          `json:"id" gorm:"primaryKey;autoIncrement"`
	AccountID   uint64          `json:"user" gorm:"not null;uniqueIndex:idx_cart_account_product"`
	Account     *Account        `json:"-" gorm:"foreignKey:AccountID;constraint:OnDelete:CASCADE"`
	ProductID   uint64          `json:"product" gorm:"not null;uniqueIndex:idx_cart_account_product"`
	Product     *Product        `json:"-" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Quantity    int             `json:"quantity" gorm:"not null;default:1"`
	UnitPrice   decimal.Decimal `json:"unit_price" gorm:"type:decimal(8,2)"`
	ProductName string          `json:"product_name" gorm:"size:255"`
}

type Order struct {
	ID              uint64          `json:"id" gorm:"primaryKey;autoIncrement"`
	AccountID       uint64          `json:"user" gorm:"not null;index"`
	Account         *Account        `json:"-" gorm:"foreignKey:AccountID;constraint:OnDelete:CASCADE"`
	Items           []CartItem      `json:"-" gorm:"many2many:order_items"`
	TotalPrice      decimal.Decimal `json:"total_price" gorm:"type:decimal(10,2);not null"`
	IsPaid          bool            `json:"is_paid" gorm:"not null;default:false"`
	ShippingAddress string          `json:"shipping_address" gorm:"type:text"`
	CreatedAt       time.Time       `json:"created_at" gorm:"autoCreateTime"`
}

type Payment struct {
	ID           uint64          `json:"id" gorm:"primaryKey;autoIncrement"`
	OrderID      uint64          `json:"order" gorm:"not null;uniqueIndex"`
	Order        *Order          `json:"-" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Method       PaymentMethod   `json:"payment_method" gorm:"type:enum('card','cash');default:'cash'"`
	PaymentRef   string          `json:"payment_id" gorm:"size:100"`
	AmountPaid   decimal.Decimal `json:"amount_paid" gorm:"type:decimal(10,2);not null"`
	IsSuccessful bool            `json:"is_successful" gorm:"not null;default:false"`
	PaidAt       time.Time       `json:"paid_at" gorm:"autoCreateTime"`
}
